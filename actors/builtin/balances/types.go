package balances

import (
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
)

// AccountInfo is the ledger entry of one account.
// Holds are carved out of Reserved; Frozen is a floor on Free derived from locks and freezes.
type AccountInfo struct {
	Nonce     uint64
	Consumers uint64
	Providers uint64
	Free      abi.TokenAmount
	Reserved  abi.TokenAmount
	Frozen    abi.TokenAmount
}

func (a *AccountInfo) Total() abi.TokenAmount {
	return big.Add(a.Free, a.Reserved)
}

func (a *AccountInfo) IsZero() bool {
	return a.Free.IsZero() && a.Reserved.IsZero() && a.Frozen.IsZero()
}

// IDAmount is an amount attributed to a reason, used for holds and freezes.
type IDAmount struct {
	ID     string
	Amount abi.TokenAmount
}

type IDAmounts struct {
	Entries []IDAmount
}

// Lock reason bits.
const (
	ReasonFee uint64 = 1 << iota
	ReasonMisc
)

type BalanceLock struct {
	ID      string
	Amount  abi.TokenAmount
	Reasons uint64
}

type Locks struct {
	Entries []BalanceLock
}

// Preservation controls whether an operation may reap an account.
type Preservation int

const (
	Expendable Preservation = iota
	Protect
	Preserve
)

// Fortitude controls whether frozen funds may be touched.
type Fortitude int

const (
	Polite Fortitude = iota
	Force
)

// Precision controls whether an operation may do less than asked.
type Precision int

const (
	Exact Precision = iota
	BestEffort
)

// SumAmounts totals a list of holds or freezes.
func SumAmounts(entries []IDAmount) abi.TokenAmount {
	sum := big.Zero()
	for _, e := range entries {
		sum = big.Add(sum, e.Amount)
	}
	return sum
}

// MaxAmount is the largest amount in a list of freezes, or zero.
func MaxAmount(entries []IDAmount) abi.TokenAmount {
	out := big.Zero()
	for _, e := range entries {
		out = big.Max(out, e.Amount)
	}
	return out
}
