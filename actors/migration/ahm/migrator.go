package ahm

import (
	"context"

	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/rt"
	"golang.org/x/xerrors"

	"github.com/ahm-project/migrator/actors/builtin/balances"
	"github.com/ahm-project/migrator/actors/runtime"
	"github.com/ahm-project/migrator/actors/util/adt"
)

const StageKey = "ahm/stage"

func LoadStage(s adt.Store) (MigrationStage, error) {
	var stage MigrationStage
	if _, err := adt.AsValue(s, StageKey).Get(&stage); err != nil {
		return MigrationStage{}, xerrors.Errorf("failed to load migration stage: %w", err)
	}
	return stage, nil
}

func SaveStage(s adt.Store, stage MigrationStage) error {
	return adt.AsValue(s, StageKey).Put(&stage)
}

// Migrator drives the migration one step at a time.
type Migrator struct {
	db     *adt.DB
	cfg    Config
	log    Logger
	sender Sender
	// Optional.
	Metrics *Metrics
	Skips   SkipRecorder
}

func NewMigrator(db *adt.DB, cfg Config, log Logger, sender Sender) (*Migrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, xerrors.Errorf("invalid migration config: %w", err)
	}
	return &Migrator{db: db, cfg: cfg, log: log, sender: sender}, nil
}

// Stage returns the committed migration stage.
func (m *Migrator) Stage() (MigrationStage, error) {
	view := m.db.NewView()
	defer func() { _ = view.Close() }()
	return LoadStage(view)
}

// Step does one block's worth of migration work in a single transaction, returning true once
// the migration is finished. A failed step commits nothing and is retried by the next call.
func (m *Migrator) Step(ctx context.Context) (bool, error) {
	txn := m.db.NewTxn()
	defer func() { _ = txn.Close() }()

	stage, err := LoadStage(txn)
	if err != nil {
		return false, err
	}
	if stage.Kind == StageFinished {
		return true, nil
	}
	tracker, found, err := LoadTracker(txn)
	if err != nil {
		return false, xerrors.Errorf("failed to load tracker: %w", err)
	}
	if !found {
		tracker = NewTracker(big.Zero())
	}

	sc := &StepContext{
		Store:      txn,
		Config:     &m.cfg,
		Log:        m.log,
		Tracker:    tracker,
		Dispatcher: NewDispatcher(txn, m.sender, m.log),
		Metrics:    m.Metrics,
		Skips:      m.Skips,
	}
	meter := runtime.NewWeightMeter(m.cfg.MaxRcWeight)
	next, err := m.advance(ctx, sc, stage, meter)
	if err != nil {
		return false, xerrors.Errorf("step in stage %v failed: %w", stage, err)
	}
	if next.Kind != stage.Kind {
		m.log.Log(rt.INFO, "migration stage %s -> %s", StageName(stage.Kind), StageName(next.Kind))
	}

	if err := SaveStage(txn, next); err != nil {
		return false, err
	}
	if err := SaveTracker(txn, tracker); err != nil {
		return false, err
	}
	if err := txn.Commit(); err != nil {
		return false, xerrors.Errorf("failed to commit step: %w", err)
	}
	sc.Commit()
	m.Metrics.step()
	return next.Kind == StageFinished, nil
}

func (m *Migrator) advance(ctx context.Context, sc *StepContext, stage MigrationStage, meter *runtime.WeightMeter) (MigrationStage, error) {
	switch stage.Kind {
	case StagePending:
		return MigrationStage{Kind: StageAccountsInit}, nil

	case StageAccountsInit:
		if err := ObtainRcAccounts(sc.Store, sc.Config, sc.Log); err != nil {
			return stage, err
		}
		issuance, err := balances.NewLedger(sc.Store, sc.Config.RcExistentialDeposit).TotalIssuance()
		if err != nil {
			return stage, err
		}
		*sc.Tracker = *NewTracker(issuance)
		m.log.Log(rt.INFO, "migrating accounts with total issuance %v", issuance)
		return MigrationStage{Kind: StageMigratingAccounts}, nil

	case StageMigratingAccounts:
		cur, err := NewAccountsMigrator(sc).MigrateMany(ctx, stage.Cursor, meter)
		if err != nil {
			return stage, err
		}
		if cur == nil {
			return MigrationStage{Kind: StageMigratingStaking}, nil
		}
		return MigrationStage{Kind: StageMigratingAccounts, Cursor: cur}, nil

	case StageMigratingStaking:
		cur, err := NewStakingMigrator(sc).MigrateMany(ctx, stage.Cursor, meter)
		if err != nil {
			return stage, err
		}
		if cur == nil {
			return MigrationStage{Kind: StageStakingDone}, nil
		}
		return MigrationStage{Kind: StageMigratingStaking, Cursor: cur}, nil

	case StageStakingDone:
		return MigrationStage{Kind: StageFinished}, nil

	default:
		return stage, xerrors.Errorf("%v: %w", stage, ErrUnknownStage)
	}
}

// Run steps the migration until it finishes, returning the number of steps taken.
func (m *Migrator) Run(ctx context.Context, maxSteps int) (int, error) {
	for i := 0; maxSteps <= 0 || i < maxSteps; i++ {
		done, err := m.Step(ctx)
		if err != nil {
			return i, err
		}
		if done {
			return i + 1, nil
		}
	}
	return maxSteps, xerrors.Errorf("migration unfinished after %d steps", maxSteps)
}
