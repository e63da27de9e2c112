package ahm

import (
	"bytes"
	"context"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/rt"
	"golang.org/x/xerrors"

	"github.com/ahm-project/migrator/actors/builtin/balances"
	"github.com/ahm-project/migrator/actors/runtime"
	"github.com/ahm-project/migrator/actors/util/adt"
)

// Currency is the set of ledger primitives used to withdraw accounts.
type Currency interface {
	Account(who addr.Address) (balances.AccountInfo, bool, error)
	Balance(who addr.Address) (abi.TokenAmount, error)
	TotalBalance(who addr.Address) (abi.TokenAmount, error)
	Holds(who addr.Address) ([]balances.IDAmount, error)
	Freezes(who addr.Address) ([]balances.IDAmount, error)
	Locks(who addr.Address) ([]balances.BalanceLock, error)
	Thaw(who addr.Address, id string) error
	Release(who addr.Address, id string, amount abi.TokenAmount, precision balances.Precision) (abi.TokenAmount, error)
	ReleaseToReserve(who addr.Address, id string, amount abi.TokenAmount) (abi.TokenAmount, error)
	RemoveLock(who addr.Address, id string) error
	Unreserve(who addr.Address, amount abi.TokenAmount) (abi.TokenAmount, error)
	SetRefCounts(who addr.Address, consumers, providers uint64) error
	ReducibleBalance(who addr.Address, keep balances.Preservation, force balances.Fortitude) (abi.TokenAmount, error)
	BurnFrom(who addr.Address, amount abi.TokenAmount, keep balances.Preservation, precision balances.Precision, force balances.Fortitude) (abi.TokenAmount, error)
}

var _ Currency = (*balances.Ledger)(nil)

// AccountsMigrator withdraws accounts from the source chain ledger.
type AccountsMigrator struct {
	sc *StepContext
	// Ledger primitives, defaulting to the ledger in the step's store.
	Currency Currency
}

func NewAccountsMigrator(sc *StepContext) *AccountsMigrator {
	return &AccountsMigrator{
		sc:       sc,
		Currency: balances.NewLedger(sc.Store, sc.Config.RcExistentialDeposit),
	}
}

func (m *AccountsMigrator) controller() *controller {
	return &controller{
		Name: "accounts",
		Call: CallReceiveAccounts,
		Stages: []stageDescriptor{{
			Name:   "Accounts",
			Prefix: balances.AccountsPrefix,
			Cost:   runtime.RcWeightInfo.WithdrawAccount,
			Convert: func(_ *StepContext, key, raw []byte) ([]Record, error) {
				return m.convert(key, raw)
			},
		}},
		WeightOf: func(w runtime.AhWeightInfo) WeightOfFunc {
			return func(n uint32, rec Record) runtime.Weight {
				return w.ReceiveAccounts(n, rec.(*AccountRecord).IsLiquid())
			}
		},
	}
}

// MigrateMany withdraws accounts after last until a budget is exhausted or every account has
// been visited, in which case it returns nil.
func (m *AccountsMigrator) MigrateMany(ctx context.Context, last *Cursor, meter *runtime.WeightMeter) (*Cursor, error) {
	return migrateMany(ctx, m.sc, m.controller(), last, meter)
}

func (m *AccountsMigrator) convert(key, raw []byte) ([]Record, error) {
	who, err := adt.ParseAddrKey(key)
	if err != nil {
		return nil, xerrors.Errorf("invalid account key %x: %w", key, err)
	}
	var info balances.AccountInfo
	if err := info.UnmarshalCBOR(bytes.NewReader(raw)); err != nil {
		return nil, xerrors.Errorf("failed to decode account %v: %w", who, err)
	}
	rec, err := m.withdrawAccount(who, &info)
	if err != nil || rec == nil {
		return nil, err
	}
	return []Record{rec}, nil
}

func withdrawErr(err error, format string, args ...interface{}) error {
	return xerrors.Errorf(format+": %v: %w", append(args, err, ErrFailedToWithdrawAccount)...)
}

// withdrawAccount releases every encumbrance of an account, burns what is not kept on the
// source chain and returns the record recreating it on the destination chain.
// Accounts with nothing to migrate yield a nil record.
func (m *AccountsMigrator) withdrawAccount(who addr.Address, info *balances.AccountInfo) (*AccountRecord, error) {
	cfg, log, c := m.sc.Config, m.sc.Log, m.Currency

	disp, err := LoadDisposition(m.sc.Store, who)
	if err != nil {
		return nil, err
	}
	if disp.Kind == DispositionPreserve {
		log.Log(rt.DEBUG, "preserving account %v", who)
		return nil, nil
	}
	if info.Free.IsZero() && info.Reserved.IsZero() && info.Frozen.IsZero() {
		if info.Nonce == 0 {
			log.Log(rt.WARN, "possible system account %v with %d consumers and %d providers", who, info.Consumers, info.Providers)
		} else {
			log.Log(rt.WARN, "empty account %v with nonce %d", who, info.Nonce)
		}
		return nil, nil
	}

	holds, err := c.Holds(who)
	if err != nil {
		return nil, err
	}
	freezes, err := c.Freezes(who)
	if err != nil {
		return nil, err
	}
	locks, err := c.Locks(who)
	if err != nil {
		return nil, err
	}
	portableHolds, err := PortableHolds(holds)
	if err != nil {
		return nil, withdrawErr(err, "account %v", who)
	}
	portableFreezes, err := PortableFreezes(freezes)
	if err != nil {
		return nil, withdrawErr(err, "account %v", who)
	}
	unnamed := satSub(info.Reserved, balances.SumAmounts(holds))

	for _, f := range freezes {
		if err := c.Thaw(who, f.ID); err != nil {
			return nil, withdrawErr(err, "thaw %q of %v", f.ID, who)
		}
	}
	for _, h := range holds {
		if err := m.releaseHold(who, h); err != nil {
			return nil, withdrawErr(err, "release hold %q of %v", h.ID, who)
		}
	}
	for _, l := range locks {
		if err := c.RemoveLock(who, l.ID); err != nil {
			return nil, withdrawErr(err, "remove lock %q of %v", l.ID, who)
		}
	}

	released, _, err := c.Account(who)
	if err != nil {
		return nil, err
	}
	if _, err := c.Unreserve(who, satSub(unnamed, disp.KeptReserved)); err != nil {
		return nil, withdrawErr(err, "unreserve %v", who)
	}
	providers := uint64(1)
	if info.Free.LessThan(cfg.RcExistentialDeposit) && info.Free.GreaterThanEqual(cfg.AhExistentialDeposit) {
		providers = 0
	}
	if err := c.SetRefCounts(who, disp.KeptConsumers, providers); err != nil {
		return nil, withdrawErr(err, "set references of %v", who)
	}

	reducible, err := c.ReducibleBalance(who, balances.Expendable, balances.Polite)
	if err != nil {
		return nil, withdrawErr(err, "reducible balance of %v", who)
	}
	total, err := c.TotalBalance(who)
	if err != nil {
		return nil, err
	}
	teleport := big.Min(reducible, satSub(total, disp.Kept()))
	if teleport.IsZero() {
		log.Log(rt.DEBUG, "nothing to migrate for %v with total %v", who, total)
		return nil, nil
	}
	m.sc.defender().Check(teleport.Equals(big.Sub(total, disp.Kept())),
		"account %v teleports %v of total %v keeping %v", who, teleport, total, disp.Kept())

	burned, err := c.BurnFrom(who, teleport, balances.Expendable, balances.Exact, balances.Polite)
	if err != nil {
		return nil, withdrawErr(err, "burn %v from %v", teleport, who)
	}
	teleportFree, teleportReserved := splitTeleport(burned, released.Reserved, disp.KeptReserved)
	if err := m.sc.Tracker.Withdraw(burned); err != nil {
		return nil, err
	}

	consumers := uint64(0)
	if info.Consumers > disp.KeptConsumers {
		consumers = info.Consumers - disp.KeptConsumers
	}
	return &AccountRecord{
		Who:            who,
		Free:           teleportFree,
		Reserved:       teleportReserved,
		Frozen:         info.Frozen,
		Holds:          portableHolds,
		Freezes:        portableFreezes,
		Locks:          locks,
		UnnamedReserve: big.Min(satSub(unnamed, disp.KeptReserved), teleportReserved),
		Consumers:      consumers,
		Providers:      info.Providers,
	}, nil
}

// releaseHold returns a hold to free balance. When partial hold release is configured and the
// hold is larger than the shortfall of free balance from the existential deposit while the free
// balance left after it would be dust, only the shortfall is released and the rest of the hold
// stays reserved.
func (m *AccountsMigrator) releaseHold(who addr.Address, hold balances.IDAmount) error {
	c := m.Currency
	if m.sc.Config.PartialHoldRelease {
		free, err := c.Balance(who)
		if err != nil {
			return err
		}
		if partial, ok := partialRelease(free, hold.Amount, m.sc.Config.RcExistentialDeposit); ok {
			if !partial.IsZero() {
				if _, err := c.Release(who, hold.ID, partial, balances.Exact); err != nil {
					return err
				}
			}
			_, err := c.ReleaseToReserve(who, hold.ID, big.Sub(hold.Amount, partial))
			return err
		}
	}
	_, err := c.Release(who, hold.ID, hold.Amount, balances.Exact)
	return err
}

// partialRelease returns the part of a hold of amount to release to a free balance, when only
// part of it should be.
func partialRelease(free, amount, ed abi.TokenAmount) (abi.TokenAmount, bool) {
	shortfall := satSub(ed, free)
	if satSub(free, amount).LessThan(ed) && amount.GreaterThan(shortfall) {
		return shortfall, true
	}
	return big.Zero(), false
}

// splitTeleport divides a teleported amount into the part reserved on the destination chain and
// the free rest. The reserved part is bounded by the reserve left after releasing holds, net of
// the reserve kept on the source chain.
func splitTeleport(teleport, reserved, keptReserved abi.TokenAmount) (free, res abi.TokenAmount) {
	res = big.Min(teleport, satSub(reserved, keptReserved))
	return big.Sub(teleport, res), res
}

func satSub(a, b abi.TokenAmount) abi.TokenAmount {
	return big.Max(big.Zero(), big.Sub(a, b))
}
