package ahm

import (
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"golang.org/x/xerrors"

	"github.com/ahm-project/migrator/actors/util/adt"
)

const TrackerKey = "ahm/tracker"

// MaxBalance bounds every balance, as the ledger stores them in 128 bits.
var MaxBalance = big.Sub(big.Lsh(big.NewInt(1), 128), big.NewInt(1))

func NewTracker(issuance abi.TokenAmount) *Tracker {
	return &Tracker{Kept: issuance, Migrated: big.Zero()}
}

// Withdraw moves amount from kept to migrated.
func (t *Tracker) Withdraw(amount abi.TokenAmount) error {
	if amount.Sign() < 0 {
		return xerrors.Errorf("withdraw negative amount %v: %w", amount, ErrBalanceUnderflow)
	}
	if t.Kept.LessThan(amount) {
		return xerrors.Errorf("withdraw %v with %v kept: %w", amount, t.Kept, ErrBalanceUnderflow)
	}
	migrated := big.Add(t.Migrated, amount)
	if migrated.GreaterThan(MaxBalance) {
		return xerrors.Errorf("withdraw %v with %v migrated: %w", amount, t.Migrated, ErrBalanceOverflow)
	}
	t.Kept = big.Sub(t.Kept, amount)
	t.Migrated = migrated
	return nil
}

// Total is the issuance the tracker started from.
func (t *Tracker) Total() abi.TokenAmount {
	return big.Add(t.Kept, t.Migrated)
}

// LoadTracker reads the persisted tracker, if any.
func LoadTracker(s adt.Store) (*Tracker, bool, error) {
	var t Tracker
	found, err := adt.AsValue(s, TrackerKey).Get(&t)
	if err != nil || !found {
		return nil, found, err
	}
	return &t, true, nil
}

func SaveTracker(s adt.Store, t *Tracker) error {
	return adt.AsValue(s, TrackerKey).Put(t)
}
