package ahm

import (
	"bytes"

	cbg "github.com/whyrusleeping/cbor-gen"
	"golang.org/x/xerrors"

	"github.com/ahm-project/migrator/actors/runtime"
)

// WeightOfFunc is the destination chain weight of a message carrying n records like rec.
type WeightOfFunc func(n uint32, rec Record) runtime.Weight

// Batch accumulates the records produced in one step, split into messages of bounded size.
type Batch struct {
	maxSize  int
	weightOf WeightOfFunc
	pushCost func(size int) runtime.Weight

	messages [][]cbg.Deferred
	curSize  int
	len      int
	weight   runtime.Weight
	unpaid   runtime.Weight
}

type encodedRecord struct {
	rec Record
	raw []byte
}

func NewBatch(maxSize int, weightOf WeightOfFunc, pushCost func(size int) runtime.Weight) *Batch {
	return &Batch{maxSize: maxSize, weightOf: weightOf, pushCost: pushCost}
}

// Len is the number of records in the batch.
func (b *Batch) Len() int {
	return b.len
}

func (b *Batch) IsEmpty() bool {
	return b.len == 0
}

// BatchCount is the number of messages the batch is split into.
func (b *Batch) BatchCount() int {
	return len(b.messages)
}

// Weight is the destination chain weight of every message in the batch.
func (b *Batch) Weight() runtime.Weight {
	return b.weight
}

// ConsumeWeight returns the source chain cost of the pushes made since the previous call.
func (b *Batch) ConsumeWeight() runtime.Weight {
	w := b.unpaid
	b.unpaid = runtime.ZeroWeight
	return w
}

// Messages returns the encoded records of each message.
func (b *Batch) Messages() [][]cbg.Deferred {
	return b.messages
}

// Push appends a record, opening a new message if it does not fit the current one.
func (b *Batch) Push(rec Record) error {
	items, err := b.encode([]Record{rec})
	if err != nil {
		return err
	}
	b.push(items)
	return nil
}

func (b *Batch) encode(recs []Record) ([]encodedRecord, error) {
	out := make([]encodedRecord, 0, len(recs))
	for _, rec := range recs {
		buf := new(bytes.Buffer)
		if err := rec.MarshalCBOR(buf); err != nil {
			return nil, xerrors.Errorf("failed to encode record: %w", err)
		}
		out = append(out, encodedRecord{rec: rec, raw: buf.Bytes()})
	}
	return out, nil
}

// opens reports whether an item of size bytes starts a new message, given the current message
// holds count items of curSize bytes.
func (b *Batch) opens(count, curSize, size int) bool {
	return count == 0 || curSize+size > b.maxSize
}

func (b *Batch) currentCount() int {
	if len(b.messages) == 0 {
		return 0
	}
	return len(b.messages[len(b.messages)-1])
}

// marginal is the destination weight pushing items would add and the number of messages the push
// would open, without pushing them.
func (b *Batch) marginal(items []encodedRecord) (runtime.Weight, int) {
	count, size := b.currentCount(), b.curSize
	total := runtime.ZeroWeight
	opened := 0
	for _, it := range items {
		if b.opens(count, size, len(it.raw)) {
			count, size = 0, 0
			opened++
		}
		total = total.Add(b.weightOf(uint32(count+1), it.rec).Sub(b.weightOf(uint32(count), it.rec)))
		count++
		size += len(it.raw)
	}
	return total, opened
}

// pushWeight is the source chain cost of pushing items.
func (b *Batch) pushWeight(items []encodedRecord) runtime.Weight {
	total := runtime.ZeroWeight
	for _, it := range items {
		total = total.Add(b.pushCost(len(it.raw)))
	}
	return total
}

func (b *Batch) push(items []encodedRecord) {
	for _, it := range items {
		count := b.currentCount()
		if b.opens(count, b.curSize, len(it.raw)) {
			b.messages = append(b.messages, nil)
			b.curSize = 0
			count = 0
		}
		b.weight = b.weight.Add(b.weightOf(uint32(count+1), it.rec).Sub(b.weightOf(uint32(count), it.rec)))
		last := len(b.messages) - 1
		b.messages[last] = append(b.messages[last], cbg.Deferred{Raw: it.raw})
		b.curSize += len(it.raw)
		b.len++
		b.unpaid = b.unpaid.Add(b.pushCost(len(it.raw)))
	}
}
