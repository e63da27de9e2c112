package ahm

import (
	"bytes"
	"context"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/rt"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"

	"github.com/ahm-project/migrator/actors/builtin"
	"github.com/ahm-project/migrator/actors/builtin/balances"
	"github.com/ahm-project/migrator/actors/builtin/staking"
	"github.com/ahm-project/migrator/actors/util"
	"github.com/ahm-project/migrator/actors/util/adt"
)

// PreCheck captures the state the migration is expected to produce, before it starts.
func PreCheck(ctx context.Context, db *adt.DB, cfg *Config, log Logger) (*Snapshot, error) {
	snap := &Snapshot{}
	grp, ctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		view := db.NewView()
		defer func() { _ = view.Close() }()
		issuance, accounts, err := expectAccounts(ctx, view, cfg)
		if err != nil {
			return xerrors.Errorf("accounts pre-check: %w", err)
		}
		snap.TotalIssuance = issuance
		snap.Accounts = accounts
		return nil
	})
	grp.Go(func() error {
		view := db.NewView()
		defer func() { _ = view.Close() }()
		msgs, err := expectStaking(ctx, view, util.Defender{Mode: cfg.Defensive, Log: log})
		if err != nil {
			return xerrors.Errorf("staking pre-check: %w", err)
		}
		snap.Staking = msgs
		return nil
	})
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	log.Log(rt.INFO, "pre-check: issuance %v, %d accounts to migrate, %d staking messages",
		snap.TotalIssuance, len(snap.Accounts), len(snap.Staking))
	return snap, nil
}

func expectAccounts(ctx context.Context, s adt.Store, cfg *Config) (abi.TokenAmount, []AccountExpectation, error) {
	ledger := balances.NewLedger(s, cfg.RcExistentialDeposit)
	issuance, err := ledger.TotalIssuance()
	if err != nil {
		return big.Zero(), nil, err
	}
	dispositions, err := DeriveDispositions(s, cfg)
	if err != nil {
		return big.Zero(), nil, err
	}
	var out []AccountExpectation
	err = ledger.ForEachAccount(func(who addr.Address, info *balances.AccountInfo) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		disp, ok := dispositions[who]
		if !ok {
			disp = MigrateDisposition()
		}
		exp, err := expectAccount(ledger, cfg, who, info, disp)
		if err != nil || exp == nil {
			return err
		}
		out = append(out, *exp)
		return nil
	})
	return issuance, out, err
}

// expectAccount predicts the record produced by withdrawing an account, without touching it.
// It follows the withdrawal rules step by step and must be kept in line with them.
func expectAccount(ledger *balances.Ledger, cfg *Config, who addr.Address, info *balances.AccountInfo, disp AccountDisposition) (*AccountExpectation, error) {
	if disp.Kind == DispositionPreserve {
		return nil, nil
	}
	if info.Free.IsZero() && info.Reserved.IsZero() && info.Frozen.IsZero() {
		return nil, nil
	}
	holds, err := ledger.Holds(who)
	if err != nil {
		return nil, err
	}
	freezes, err := ledger.Freezes(who)
	if err != nil {
		return nil, err
	}
	locks, err := ledger.Locks(who)
	if err != nil {
		return nil, err
	}
	portableHolds, err := PortableHolds(holds)
	if err != nil {
		// The withdrawal skips the account.
		return nil, nil
	}
	portableFreezes, err := PortableFreezes(freezes)
	if err != nil {
		return nil, nil
	}

	free, reserved := info.Free, info.Reserved
	unnamed := satSub(reserved, balances.SumAmounts(holds))
	for _, h := range holds {
		release := h.Amount
		if cfg.PartialHoldRelease {
			if partial, ok := partialRelease(free, h.Amount, cfg.RcExistentialDeposit); ok {
				release = partial
			}
		}
		free = big.Add(free, release)
		reserved = big.Sub(reserved, release)
	}
	released := reserved

	unreserved := big.Min(satSub(unnamed, disp.KeptReserved), reserved)
	free = big.Add(free, unreserved)
	reserved = big.Sub(reserved, unreserved)

	total := big.Add(free, reserved)
	reducible := total
	selfProviding := !(info.Free.LessThan(cfg.RcExistentialDeposit) && info.Free.GreaterThanEqual(cfg.AhExistentialDeposit))
	if selfProviding && total.LessThan(cfg.RcExistentialDeposit) {
		reducible = big.Zero()
	} else if disp.KeptConsumers > 0 {
		reducible = satSub(total, cfg.RcExistentialDeposit)
	}
	teleport := big.Min(reducible, satSub(total, disp.Kept()))
	if teleport.IsZero() {
		return nil, nil
	}
	teleportFree, teleportReserved := splitTeleport(teleport, released, disp.KeptReserved)
	return &AccountExpectation{
		Who:      who,
		Free:     teleportFree,
		Reserved: teleportReserved,
		Frozen:   info.Frozen,
		Holds:    portableHolds,
		Freezes:  portableFreezes,
		Locks:    locks,
	}, nil
}

func expectStaking(ctx context.Context, s adt.Store, d util.Defender) ([]StakingMessage, error) {
	var out []StakingMessage
	for i, cat := range stakingCategories {
		stage := uint64(i)
		err := adt.AsMap(s, cat.Prefix).ForEachRaw(func(key, raw []byte) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			msgs, err := translateStaking(d, stage, key, raw)
			if err != nil {
				return err
			}
			for _, m := range msgs {
				out = append(out, *m)
			}
			return nil
		})
		if err != nil {
			return nil, xerrors.Errorf("failed to read %s: %w", cat.Name, err)
		}
	}
	return out, nil
}

// PostCheck validates the source chain state left by a finished migration against the snapshot
// taken before it. When delivered is not nil, the records carried by the delivered envelopes are
// also compared with the snapshot. Violations accumulate in the returned accumulator; the error
// reports failures to read state.
func PostCheck(s adt.Store, cfg *Config, snap *Snapshot, delivered []*Envelope) (*builtin.MessageAccumulator, error) {
	acc := &builtin.MessageAccumulator{}

	stage, err := LoadStage(s)
	if err != nil {
		return nil, err
	}
	acc.Require(stage.Kind == StageFinished, "migration is in stage %v", stage)

	tracker, found, err := LoadTracker(s)
	if err != nil {
		return nil, err
	}
	if !found {
		acc.Add("no balance tracker")
		tracker = NewTracker(snap.TotalIssuance)
	}
	ledger := balances.NewLedger(s, cfg.RcExistentialDeposit)
	issuance, err := ledger.TotalIssuance()
	if err != nil {
		return nil, err
	}
	acc.Require(issuance.Equals(big.Sub(snap.TotalIssuance, tracker.Migrated)),
		"issuance %v is not %v less migrated %v", issuance, snap.TotalIssuance, tracker.Migrated)
	acc.Require(issuance.Equals(tracker.Kept), "issuance %v differs from kept %v", issuance, tracker.Kept)

	if err := checkAccounts(s, cfg, ledger, acc.WithPrefix("accounts: ")); err != nil {
		return nil, err
	}
	_, msgs, err := balances.CheckStateInvariants(ledger)
	if err != nil {
		return nil, err
	}
	acc.WithPrefix("ledger: ").AddAll(msgs)

	empty, prefix, err := staking.NewState(s).IsEmpty()
	if err != nil {
		return nil, err
	}
	acc.Require(empty, "staking: %s not migrated", prefix)

	if delivered != nil {
		if err := checkDelivered(snap, delivered, acc.WithPrefix("delivered: ")); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func checkAccounts(s adt.Store, cfg *Config, ledger *balances.Ledger, acc *builtin.MessageAccumulator) error {
	derived, err := DeriveDispositions(s, cfg)
	if err != nil {
		return err
	}
	var stored AccountDisposition
	if err := Dispositions(s).ForEach(&stored, func(key []byte) error {
		who, err := adt.ParseAddrKey(key)
		if err != nil {
			return err
		}
		d, ok := derived[who]
		if !ok {
			d = MigrateDisposition()
		}
		acc.Require(d.Equals(stored), "%v has disposition %v, expected %v", who, stored, d)
		return nil
	}); err != nil {
		return err
	}

	return ledger.ForEachAccount(func(who addr.Address, info *balances.AccountInfo) error {
		disp, ok := derived[who]
		if !ok {
			disp = MigrateDisposition()
		}
		holds, err := ledger.Holds(who)
		if err != nil {
			return err
		}
		freezes, err := ledger.Freezes(who)
		if err != nil {
			return err
		}
		locks, err := ledger.Locks(who)
		if err != nil {
			return err
		}
		switch disp.Kind {
		case DispositionMigrate:
			acc.Require(info.Total().LessThan(cfg.RcExistentialDeposit), "migrated %v still holds %v", who, info.Total())
			acc.Require(info.Reserved.IsZero(), "migrated %v still reserves %v", who, info.Reserved)
			acc.Require(len(holds) == 0 && len(freezes) == 0 && len(locks) == 0,
				"migrated %v still has %d holds, %d freezes and %d locks", who, len(holds), len(freezes), len(locks))
		case DispositionPart:
			acc.Require(info.Free.Equals(disp.KeptFree), "part %v has free %v, expected %v", who, info.Free, disp.KeptFree)
			acc.Require(info.Reserved.Equals(disp.KeptReserved), "part %v has reserved %v, expected %v", who, info.Reserved, disp.KeptReserved)
			acc.Require(info.Consumers == disp.KeptConsumers, "part %v has %d consumers, expected %d", who, info.Consumers, disp.KeptConsumers)
			acc.Require(len(holds) == 0 && len(freezes) == 0 && len(locks) == 0,
				"part %v still has %d holds, %d freezes and %d locks", who, len(holds), len(freezes), len(locks))
		case DispositionPreserve:
			acc.Require(info.Total().LessThan(cfg.RcExistentialDeposit) || cfg.isPreserved(who),
				"preserved %v with %v is not a system account", who, info.Total())
		default:
			acc.Addf("%v has unknown disposition %v", who, disp)
		}
		return nil
	})
}

func checkDelivered(snap *Snapshot, delivered []*Envelope, acc *builtin.MessageAccumulator) error {
	var records []AccountRecord
	var msgs []StakingMessage
	for _, env := range delivered {
		for i, item := range env.Items {
			r := bytes.NewReader(item.Raw)
			switch env.Call {
			case CallReceiveAccounts:
				var rec AccountRecord
				if err := rec.UnmarshalCBOR(r); err != nil {
					return xerrors.Errorf("message %d item %d: %w", env.Nonce, i, err)
				}
				records = append(records, rec)
			case CallReceiveStakingMessages:
				var msg StakingMessage
				if err := msg.UnmarshalCBOR(r); err != nil {
					return xerrors.Errorf("message %d item %d: %w", env.Nonce, i, err)
				}
				msgs = append(msgs, msg)
			default:
				acc.Addf("message %d has unknown call %d", env.Nonce, env.Call)
			}
		}
	}

	acc.Require(len(records) == len(snap.Accounts), "%d account records, expected %d", len(records), len(snap.Accounts))
	for i := 0; i < len(records) && i < len(snap.Accounts); i++ {
		rec, exp := &records[i], &snap.Accounts[i]
		if rec.Who != exp.Who {
			acc.Addf("record %d is for %v, expected %v", i, rec.Who, exp.Who)
			continue
		}
		acc.Require(rec.Free.Equals(exp.Free), "%v free %v, expected %v", rec.Who, rec.Free, exp.Free)
		acc.Require(rec.Reserved.Equals(exp.Reserved), "%v reserved %v, expected %v", rec.Who, rec.Reserved, exp.Reserved)
		acc.Require(rec.Frozen.Equals(exp.Frozen), "%v frozen %v, expected %v", rec.Who, rec.Frozen, exp.Frozen)
		acc.Require(equalAmounts(rec.Holds, exp.Holds), "%v holds %v, expected %v", rec.Who, rec.Holds, exp.Holds)
		acc.Require(equalAmounts(rec.Freezes, exp.Freezes), "%v freezes %v, expected %v", rec.Who, rec.Freezes, exp.Freezes)
		acc.Require(equalLocks(rec.Locks, exp.Locks), "%v locks %v, expected %v", rec.Who, rec.Locks, exp.Locks)
	}

	acc.Require(len(msgs) == len(snap.Staking), "%d staking messages, expected %d", len(msgs), len(snap.Staking))
	for i := 0; i < len(msgs) && i < len(snap.Staking); i++ {
		got, exp := &msgs[i], &snap.Staking[i]
		acc.Require(got.Stage == exp.Stage && bytes.Equal(got.Key, exp.Key) && bytes.Equal(got.Value, exp.Value),
			"staking message %d is %s/%x, expected %s/%x", i, stageLabel(got.Stage), got.Key, stageLabel(exp.Stage), exp.Key)
	}
	return nil
}

func equalAmounts(a, b []PortableAmount) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Reason != b[i].Reason || !a[i].Amount.Equals(b[i].Amount) {
			return false
		}
	}
	return true
}

func equalLocks(a, b []balances.BalanceLock) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Reasons != b[i].Reasons || !a[i].Amount.Equals(b[i].Amount) {
			return false
		}
	}
	return true
}

func stageLabel(stage uint64) string {
	if stage < uint64(len(stakingCategories)) {
		return stakingCategories[stage].Name
	}
	return StageName(stage)
}
