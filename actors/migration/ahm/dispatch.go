package ahm

import (
	"context"
	"encoding/binary"

	"github.com/filecoin-project/go-state-types/rt"
	"github.com/ipfs/go-cid"
	"github.com/minio/blake2b-simd"
	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multihash"
	cbg "github.com/whyrusleeping/cbor-gen"
	"golang.org/x/xerrors"

	"github.com/ahm-project/migrator/actors/util/adt"
)

const (
	NonceKey = "ahm/nonce"
	// Domain of message topics.
	TopicDomain = "rc-migrator/outbound"
)

// Sender delivers messages to the destination chain.
// Delivery is at least once; the destination applies each topic once.
type Sender interface {
	Send(ctx context.Context, env *Envelope) error
}

// Dispatcher wraps batches into messages and hands them to a sender.
type Dispatcher struct {
	store  adt.Store
	sender Sender
	log    Logger
}

func NewDispatcher(s adt.Store, sender Sender, log Logger) *Dispatcher {
	return &Dispatcher{store: s, sender: sender, log: log}
}

// Topic is the identifier of the message with the given nonce.
func Topic(nonce uint64) []byte {
	buf := make([]byte, 0, len(TopicDomain)+8)
	buf = append(buf, TopicDomain...)
	buf = binary.BigEndian.AppendUint64(buf, nonce)
	sum := blake2b.Sum256(buf)
	return sum[:]
}

// TopicCid expresses a topic as a content identifier.
func TopicCid(topic []byte) (cid.Cid, error) {
	mh, err := multihash.Encode(topic, multihash.BLAKE2B_MIN+31)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, mh), nil
}

// TopicString renders a topic for humans.
func TopicString(topic []byte) string {
	s, err := multibase.Encode(multibase.Base32, topic)
	if err != nil {
		return "<invalid topic>"
	}
	return s
}

func (d *Dispatcher) nextNonce() (uint64, error) {
	var n cbg.CborInt
	v := adt.AsValue(d.store, NonceKey)
	if _, err := v.Get(&n); err != nil {
		return 0, xerrors.Errorf("failed to load message nonce: %w", err)
	}
	next := n + 1
	if err := v.Put(&next); err != nil {
		return 0, xerrors.Errorf("failed to store message nonce: %w", err)
	}
	return uint64(n), nil
}

// SendChunked sends each message of a batch as the given destination call, returning the
// number of messages sent. Sending stops at the first failure.
func (d *Dispatcher) SendChunked(ctx context.Context, batch *Batch, call uint64) (int, error) {
	sent := 0
	for _, items := range batch.Messages() {
		nonce, err := d.nextNonce()
		if err != nil {
			return sent, err
		}
		env := &Envelope{Nonce: nonce, Topic: Topic(nonce), Call: call, Items: items}
		if err := d.sender.Send(ctx, env); err != nil {
			return sent, xerrors.Errorf("failed to send %s message %d with %d items: %w", CallName(call), nonce, len(items), err)
		}
		d.log.Log(rt.DEBUG, "sent %s message %d (%s) with %d items", CallName(call), nonce, TopicString(env.Topic), len(items))
		sent++
	}
	return sent, nil
}
