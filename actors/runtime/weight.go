package runtime

import (
	"fmt"
	"math"

	"golang.org/x/xerrors"
)

// Weight is a two-dimensional execution cost: computation time and storage proof size.
type Weight struct {
	RefTime   uint64
	ProofSize uint64
}

func NewWeight(refTime, proofSize uint64) Weight {
	return Weight{RefTime: refTime, ProofSize: proofSize}
}

// WeightFromAll returns a weight with every dimension set to v.
func WeightFromAll(v uint64) Weight {
	return Weight{RefTime: v, ProofSize: v}
}

var ZeroWeight = Weight{}

func (w Weight) IsZero() bool {
	return w.RefTime == 0 && w.ProofSize == 0
}

// Add returns the component-wise sum, saturating at the maximum.
func (w Weight) Add(o Weight) Weight {
	return Weight{RefTime: satAdd(w.RefTime, o.RefTime), ProofSize: satAdd(w.ProofSize, o.ProofSize)}
}

// Sub returns the component-wise difference, saturating at zero.
func (w Weight) Sub(o Weight) Weight {
	return Weight{RefTime: satSub(w.RefTime, o.RefTime), ProofSize: satSub(w.ProofSize, o.ProofSize)}
}

// Mul scales every component by n, saturating at the maximum.
func (w Weight) Mul(n uint64) Weight {
	return Weight{RefTime: satMul(w.RefTime, n), ProofSize: satMul(w.ProofSize, n)}
}

// AnyGt checks whether any component of w exceeds the same component of o.
func (w Weight) AnyGt(o Weight) bool {
	return w.RefTime > o.RefTime || w.ProofSize > o.ProofSize
}

// AllLte checks whether every component of w is at most the same component of o.
func (w Weight) AllLte(o Weight) bool {
	return !w.AnyGt(o)
}

func (w Weight) String() string {
	return fmt.Sprintf("{ref_time: %d, proof_size: %d}", w.RefTime, w.ProofSize)
}

func satAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}

func satSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}

func satMul(a, n uint64) uint64 {
	if a != 0 && n > math.MaxUint64/a {
		return math.MaxUint64
	}
	return a * n
}

var ErrWeightExhausted = xerrors.New("weight limit exhausted")

// WeightMeter accumulates consumed weight against a fixed limit.
type WeightMeter struct {
	limit    Weight
	consumed Weight
}

func NewWeightMeter(limit Weight) *WeightMeter {
	return &WeightMeter{limit: limit}
}

// CanConsume checks whether w fits in the remaining budget.
func (m *WeightMeter) CanConsume(w Weight) bool {
	return m.consumed.Add(w).AllLte(m.limit)
}

// TryConsume consumes w if it fits in the remaining budget and otherwise leaves the meter unchanged.
func (m *WeightMeter) TryConsume(w Weight) error {
	if !m.CanConsume(w) {
		return xerrors.Errorf("consuming %s with %s of %s used: %w", w, m.consumed, m.limit, ErrWeightExhausted)
	}
	m.consumed = m.consumed.Add(w)
	return nil
}

func (m *WeightMeter) Consumed() Weight {
	return m.consumed
}

func (m *WeightMeter) Limit() Weight {
	return m.limit
}

func (m *WeightMeter) Remaining() Weight {
	return m.limit.Sub(m.consumed)
}
