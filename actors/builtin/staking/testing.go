package staking

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/big"

	"github.com/ahm-project/migrator/actors/builtin"
	"github.com/ahm-project/migrator/actors/util/adt"
)

type StateSummary struct {
	Bonded      int
	Ledgers     int
	Nominators  int
	Validators  int
	EntryCounts map[string]int
}

// CheckStateInvariants checks the cross references between bonded stashes, ledgers and
// nominations of a staking state.
func CheckStateInvariants(st *State) (*StateSummary, *builtin.MessageAccumulator, error) {
	acc := &builtin.MessageAccumulator{}
	sum := &StateSummary{EntryCounts: map[string]int{}}

	for _, prefix := range Prefixes {
		n := 0
		if err := st.Map(prefix).ForEachRaw(func(_, _ []byte) error {
			n++
			return nil
		}); err != nil {
			return nil, nil, err
		}
		sum.EntryCounts[prefix] = n
	}
	sum.Bonded = sum.EntryCounts[BondedPrefix]
	sum.Ledgers = sum.EntryCounts[LedgerPrefix]
	sum.Nominators = sum.EntryCounts[NominatorsPrefix]
	sum.Validators = sum.EntryCounts[ValidatorsPrefix]

	controllers := map[addr.Address]addr.Address{}
	var controller addr.Address
	if err := st.Bonded().ForEach(&controller, func(key []byte) error {
		stash, err := adt.ParseAddrKey(key)
		if err != nil {
			return err
		}
		controllers[controller] = stash
		return nil
	}); err != nil {
		return nil, nil, err
	}

	var ledger StakingLedger
	if err := st.Ledger().ForEach(&ledger, func(key []byte) error {
		ctrl, err := adt.ParseAddrKey(key)
		if err != nil {
			return err
		}
		stash, ok := controllers[ctrl]
		acc.Require(ok, "ledger of controller %v has no bonded stash", ctrl)
		if ok {
			acc.Require(stash == ledger.Stash, "ledger of controller %v names stash %v, bonded stash is %v", ctrl, ledger.Stash, stash)
		}
		acc.Require(ledger.Active.GreaterThanEqual(big.Zero()), "ledger of %v has negative active stake", ctrl)
		expected := big.Add(ledger.Active, ledger.UnlockingTotal())
		acc.Require(ledger.Total.Equals(expected), "ledger of %v total %v != active + unlocking %v", ctrl, ledger.Total, expected)
		return nil
	}); err != nil {
		return nil, nil, err
	}
	acc.Require(sum.Ledgers == sum.Bonded, "%d ledgers for %d bonded stashes", sum.Ledgers, sum.Bonded)

	bonded := map[addr.Address]bool{}
	for _, stash := range controllers {
		bonded[stash] = true
	}
	if err := st.Nominators().ForEach(nil, func(key []byte) error {
		stash, err := adt.ParseAddrKey(key)
		if err != nil {
			return err
		}
		acc.Require(bonded[stash], "nominator %v is not bonded", stash)
		return nil
	}); err != nil {
		return nil, nil, err
	}
	if err := st.Validators().ForEach(nil, func(key []byte) error {
		stash, err := adt.ParseAddrKey(key)
		if err != nil {
			return err
		}
		acc.Require(bonded[stash], "validator %v is not bonded", stash)
		return nil
	}); err != nil {
		return nil, nil, err
	}

	return sum, acc, nil
}
