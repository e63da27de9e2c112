package main

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/rt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"

	"github.com/ahm-project/migrator/actors/builtin/balances"
	"github.com/ahm-project/migrator/actors/migration/ahm"
	"github.com/ahm-project/migrator/actors/util/adt"
	"github.com/ahm-project/migrator/support/audit"
	"github.com/ahm-project/migrator/support/ipld"
)

type runOptions struct {
	dbPath       string
	workDir      string
	auditPath    string
	snapshotPath string
	inPlace      bool
	maxSteps     int
}

func newRunCmd(v *viper.Viper) *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Migrate a checkpoint of the source chain database and check the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			zl, err := newLogger(logLevel)
			if err != nil {
				return err
			}
			defer func() { _ = zl.Sync() }()

			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			return dryRun(cmd.Context(), cmd.OutOrStdout(), zapLogger{s: zl.Sugar()}, &cfg, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.dbPath, "db", "", "source chain database directory")
	cmd.Flags().StringVar(&opts.workDir, "work-dir", "", "directory for the checkpoint and audit log (default is a new temporary directory)")
	cmd.Flags().StringVar(&opts.auditPath, "audit", "", "audit log of skipped items (default is audit.db in the work directory)")
	cmd.Flags().StringVar(&opts.snapshotPath, "snapshot", "", "write the pre-check snapshot to this file")
	cmd.Flags().BoolVar(&opts.inPlace, "in-place", false, "migrate the database itself instead of a checkpoint")
	cmd.Flags().IntVar(&opts.maxSteps, "max-steps", 0, "give up after this many steps (0 for no limit)")
	_ = cmd.MarkFlagRequired("db")
	return cmd
}

func dryRun(ctx context.Context, w io.Writer, log ahm.Logger, cfg *ahm.Config, opts *runOptions) error {
	workDir := opts.workDir
	if workDir == "" {
		dir, err := os.MkdirTemp("", "ahm-dryrun-")
		if err != nil {
			return err
		}
		workDir = dir
	}
	db, err := openSource(opts, workDir, log)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	snap, err := ahm.PreCheck(ctx, db, cfg, log)
	if err != nil {
		return err
	}
	if opts.snapshotPath != "" {
		if err := writeSnapshot(opts.snapshotPath, snap); err != nil {
			return err
		}
	}

	auditPath := opts.auditPath
	if auditPath == "" {
		auditPath = filepath.Join(workDir, "audit.db")
	}
	skips, err := audit.Open(auditPath)
	if err != nil {
		return err
	}
	defer func() { _ = skips.Close() }()

	outbox, err := ipld.NewOutbox()
	if err != nil {
		return err
	}
	metrics, err := ahm.NewMetrics(prometheus.NewRegistry())
	if err != nil {
		return err
	}
	m, err := ahm.NewMigrator(db, *cfg, log, outbox)
	if err != nil {
		return err
	}
	m.Metrics = metrics
	m.Skips = skips

	steps, err := m.Run(ctx, opts.maxSteps)
	if err != nil {
		return xerrors.Errorf("migration failed after %d steps: %w", steps, err)
	}

	envs, err := outbox.Envelopes(ctx)
	if err != nil {
		return err
	}
	view := db.NewView()
	defer func() { _ = view.Close() }()
	acc, err := ahm.PostCheck(view, cfg, snap, envs)
	if err != nil {
		return xerrors.Errorf("post-check failed: %w", err)
	}
	for _, msg := range acc.Messages() {
		log.Log(rt.ERROR, "post-check: %s", msg)
	}

	r := report{
		RunID:       skips.RunID(),
		Steps:       steps,
		IssuanceIn:  snap.TotalIssuance,
		Messages:    outbox.Len(),
		Redelivered: outbox.Redelivered(),
		Violations:  len(acc.Messages()),
	}
	if r.IssuanceOut, err = balances.NewLedger(view, cfg.RcExistentialDeposit).TotalIssuance(); err != nil {
		return err
	}
	r.Migrated = big.Sub(r.IssuanceIn, r.IssuanceOut)
	for _, env := range envs {
		switch env.Call {
		case ahm.CallReceiveAccounts:
			r.Accounts += len(env.Items)
		case ahm.CallReceiveStakingMessages:
			r.Staking += len(env.Items)
		}
		r.LastTopic = env.Topic
	}
	if r.NonceRoot, r.TopicRoot, err = outbox.Flush(ctx); err != nil {
		return err
	}
	if r.Skipped, err = skips.CountByStage(ctx, skips.RunID()); err != nil {
		return err
	}
	writeReport(w, &r)
	return acc.Err()
}

// openSource opens the database to migrate, by default a checkpoint of the source in workDir.
func openSource(opts *runOptions, workDir string, log ahm.Logger) (*adt.DB, error) {
	src, err := adt.Open(opts.dbPath)
	if err != nil {
		return nil, err
	}
	if opts.inPlace {
		return src, nil
	}
	dir := filepath.Join(workDir, "state")
	err = src.Checkpoint(dir)
	if cerr := src.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}
	log.Log(rt.INFO, "migrating checkpoint %s", dir)
	return adt.Open(dir)
}

func writeSnapshot(path string, snap *ahm.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := ahm.WriteSnapshot(f, snap); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
