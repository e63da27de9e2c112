package balances

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"

	"github.com/ahm-project/migrator/actors/builtin"
	"github.com/ahm-project/migrator/actors/util/adt"
)

type StateSummary struct {
	AccountCount  int
	TotalBalance  abi.TokenAmount
	TotalIssuance abi.TokenAmount
}

// Checks internal invariants of the ledger.
func CheckStateInvariants(l *Ledger) (*StateSummary, *builtin.MessageAccumulator, error) {
	acc := &builtin.MessageAccumulator{}
	summary := &StateSummary{TotalBalance: big.Zero()}

	accounts := map[string]bool{}
	err := l.ForEachAccount(func(who addr.Address, info *AccountInfo) error {
		acc := acc.WithPrefix("account %v: ", who) // Intentional shadow
		accounts[string(who.Bytes())] = true
		summary.AccountCount++
		summary.TotalBalance = big.Add(summary.TotalBalance, info.Total())

		acc.Require(info.Free.GreaterThanEqual(big.Zero()), "negative free balance %v", info.Free)
		acc.Require(info.Reserved.GreaterThanEqual(big.Zero()), "negative reserved balance %v", info.Reserved)

		holds, err := l.Holds(who)
		if err != nil {
			return err
		}
		held := SumAmounts(holds)
		acc.Require(held.LessThanEqual(info.Reserved), "holds %v exceed reserved balance %v", held, info.Reserved)

		freezes, err := l.Freezes(who)
		if err != nil {
			return err
		}
		locks, err := l.Locks(who)
		if err != nil {
			return err
		}
		frozen := MaxAmount(freezes)
		for _, lk := range locks {
			frozen = big.Max(frozen, lk.Amount)
		}
		acc.Require(frozen.Equals(info.Frozen), "frozen %v does not match largest lock or freeze %v", info.Frozen, frozen)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	for _, prefix := range []string{HoldsPrefix, FreezesPrefix, LocksPrefix} {
		prefix := prefix
		if err := adt.AsMap(l.store, prefix).ForEach(nil, func(key []byte) error {
			acc.Require(accounts[string(key)], "%s entry %x without an account", prefix, key)
			return nil
		}); err != nil {
			return nil, nil, err
		}
	}

	issuance, err := l.TotalIssuance()
	if err != nil {
		return nil, nil, err
	}
	summary.TotalIssuance = issuance
	acc.Require(issuance.Equals(summary.TotalBalance), "total issuance %v does not match sum of balances %v", issuance, summary.TotalBalance)

	return summary, acc, nil
}
