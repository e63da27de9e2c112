package test_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahm-project/migrator/actors/builtin/balances"
	"github.com/ahm-project/migrator/actors/builtin/staking"
	"github.com/ahm-project/migrator/actors/migration/ahm"
	"github.com/ahm-project/migrator/actors/runtime"
	"github.com/ahm-project/migrator/actors/util/adt"
)

func preCheck(t *testing.T, db *adt.DB, cfg ahm.Config) *ahm.Snapshot {
	snap, err := ahm.PreCheck(context.Background(), db, &cfg, ahm.TestLogger{TB: t})
	require.NoError(t, err)
	return snap
}

func postCheck(t *testing.T, db *adt.DB, cfg ahm.Config, snap *ahm.Snapshot, envs []*ahm.Envelope) {
	view := db.NewView()
	defer func() { _ = view.Close() }()
	acc, err := ahm.PostCheck(view, &cfg, snap, envs)
	require.NoError(t, err)
	assert.True(t, acc.IsEmpty(), "post-check: %v", acc.Messages())
}

func TestMigrateChain(t *testing.T) {
	ctx := context.Background()
	a := newActors(t)
	db := buildChain(t, a)
	cfg := chainConfig(a)
	snap := preCheck(t, db, cfg)
	assertTokens(t, fixtureIssuance, snap.TotalIssuance)
	assert.Len(t, snap.Accounts, 5)

	outbox := newOutbox(t)
	m := newMigrator(t, db, cfg, outbox)
	reg := prometheus.NewRegistry()
	metrics, err := ahm.NewMetrics(reg)
	require.NoError(t, err)
	m.Metrics = metrics
	steps := stepToCompletion(t, m, db, cfg)

	stage, err := m.Stage()
	require.NoError(t, err)
	assert.Equal(t, ahm.MigrationStage{Kind: ahm.StageFinished}, stage)

	envs, err := outbox.Envelopes(ctx)
	require.NoError(t, err)
	postCheck(t, db, cfg, snap, envs)

	t.Run("records", func(t *testing.T) {
		recs := accountRecords(t, deliveredItems(t, outbox)[ahm.CallReceiveAccounts])
		require.Len(t, recs, 5)
		assert.NotContains(t, recs, a.dusty)
		assert.NotContains(t, recs, a.treasury)

		alice := recs[a.alice]
		assert.True(t, alice.IsLiquid())
		assertTokens(t, 1000, alice.Free)

		bob := recs[a.bob]
		assertTokens(t, 500, bob.Free)
		assertTokens(t, 0, bob.Reserved)
		assertTokens(t, 100, bob.Frozen)
		require.Len(t, bob.Holds, 1)
		assert.Equal(t, ahm.HoldStaking, bob.Holds[0].Reason)
		require.Len(t, bob.Freezes, 1)
		assert.Equal(t, ahm.FreezeNominationPools, bob.Freezes[0].Reason)
		require.Len(t, bob.Locks, 1)
		assert.Equal(t, "vesting", bob.Locks[0].ID)

		carol := recs[a.carol]
		assertTokens(t, 100, carol.Free)
		assertTokens(t, 60, carol.Reserved)

		dave := recs[a.dave]
		assertTokens(t, 50, dave.Free)

		manager := recs[a.manager]
		assertTokens(t, 600, manager.Free)
		assertTokens(t, 0, manager.Reserved)
	})

	t.Run("source chain", func(t *testing.T) {
		view := db.NewView()
		defer func() { _ = view.Close() }()
		ledger := balances.NewLedger(view, rcED)

		issuance, err := ledger.TotalIssuance()
		require.NoError(t, err)
		assertTokens(t, 5405, issuance)

		tracker, found, err := ahm.LoadTracker(view)
		require.NoError(t, err)
		require.True(t, found)
		assertTokens(t, 2310, tracker.Migrated)
		assertTokens(t, 5405, tracker.Kept)

		_, found, err = ledger.Account(a.alice)
		require.NoError(t, err)
		assert.False(t, found)
		dusty, found, err := ledger.Account(a.dusty)
		require.NoError(t, err)
		require.True(t, found)
		assertTokens(t, 5, dusty.Free)
		requireAccount(t, view, a.manager, 100, 300, 0)
		requireAccount(t, view, a.treasury, 5000, 0, 0)
	})

	t.Run("staking", func(t *testing.T) {
		items := deliveredItems(t, outbox)[ahm.CallReceiveStakingMessages]
		require.Len(t, items, len(snap.Staking))
		spans := stageIndex(t, "SlashingSpans")
		for _, raw := range items {
			var msg ahm.StakingMessage
			require.NoError(t, msg.UnmarshalCBOR(bytes.NewReader(raw)))
			assert.NotEqual(t, spans, msg.Stage)
		}
	})

	t.Run("metrics", func(t *testing.T) {
		assert.Equal(t, float64(7), testutil.ToFloat64(metrics.Migrated.WithLabelValues("Accounts")))
		assert.Equal(t, float64(1), testutil.ToFloat64(metrics.Migrated.WithLabelValues("SlashingSpans")))
		assert.Equal(t, float64(steps), testutil.ToFloat64(metrics.Steps))
		assert.Equal(t, float64(0), testutil.ToFloat64(metrics.Skipped.WithLabelValues("Accounts")))
		sent := testutil.ToFloat64(metrics.Messages.WithLabelValues("ReceiveAccounts")) +
			testutil.ToFloat64(metrics.Messages.WithLabelValues("ReceiveStakingMessages"))
		assert.Equal(t, float64(outbox.Len()), sent)
	})

	t.Run("finished migration does nothing", func(t *testing.T) {
		before := dumpState(t, db)
		done, err := m.Step(ctx)
		require.NoError(t, err)
		assert.True(t, done)
		assert.Equal(t, before, dumpState(t, db))
	})
}

func stageIndex(t *testing.T, name string) uint64 {
	for i, s := range ahm.StakingStages() {
		if s.Name == name {
			return uint64(i)
		}
	}
	require.FailNow(t, "no staking stage "+name)
	return 0
}

func TestPostCheckDetectsLeftovers(t *testing.T) {
	a := newActors(t)
	db := buildChain(t, a)
	cfg := chainConfig(a)
	snap := preCheck(t, db, cfg)

	view := db.NewView()
	defer func() { _ = view.Close() }()
	acc, err := ahm.PostCheck(view, &cfg, snap, nil)
	require.NoError(t, err)
	msgs := acc.Messages()
	assert.Contains(t, msgs, "migration is in stage Pending")
	assert.Contains(t, msgs, "no balance tracker")
	assert.Contains(t, msgs, "staking: "+staking.ValuesPrefix+" not migrated")
}

func TestResumptionIsIdempotent(t *testing.T) {
	a := newActors(t)

	run := func(cfg ahm.Config) (map[string][]byte, map[uint64][][]byte, int) {
		db := buildChain(t, a)
		outbox := newOutbox(t)
		_, steps := runMigration(t, db, cfg, outbox)
		return dumpState(t, db), deliveredItems(t, outbox), steps
	}

	cfg := chainConfig(a)
	state, items, steps := run(cfg)

	cfg.MaxRcWeight = runtime.NewWeight(200, 1000)
	cfg.MaxXcmSize = 64
	smallState, smallItems, smallSteps := run(cfg)

	assert.Greater(t, smallSteps, steps)
	assert.Equal(t, state, smallState)
	assert.Equal(t, items, smallItems)
	// Fails on an account migrated twice.
	accountRecords(t, smallItems[ahm.CallReceiveAccounts])
}

// messageWeight is the destination cost of applying an envelope under linear weights.
func messageWeight(t *testing.T, w runtime.LinearAhWeights, env *ahm.Envelope) runtime.Weight {
	total := w.MessageBase
	for _, item := range env.Items {
		if env.Call != ahm.CallReceiveAccounts {
			total = total.Add(w.StakingMessage)
			continue
		}
		var rec ahm.AccountRecord
		require.NoError(t, rec.UnmarshalCBOR(bytes.NewReader(item.Raw)))
		if rec.IsLiquid() {
			total = total.Add(w.LiquidAccount)
		} else {
			total = total.Add(w.Account)
		}
	}
	return total
}

func TestDestinationBudgetBoundsEveryStep(t *testing.T) {
	ctx := context.Background()
	a := newActors(t)
	cfg := chainConfig(a)

	refDB := buildChain(t, a)
	ref := newOutbox(t)
	_, refSteps := runMigration(t, refDB, cfg, ref)

	// A liquid and a complex record fit in a message, a second complex one does not.
	cfg.MaxAhWeight = runtime.NewWeight(10, 100)
	db := buildChain(t, a)
	outbox := newOutbox(t)
	m := newMigrator(t, db, cfg, outbox)
	initial := issuanceOf(t, db, cfg)

	steps := 0
	for done := false; !done; {
		steps++
		require.Less(t, steps, 1000, "migration did not finish")
		sent := outbox.Len()
		var err error
		done, err = m.Step(ctx)
		require.NoError(t, err)
		checkConservation(t, db, cfg, initial)

		envs, err := outbox.Envelopes(ctx)
		require.NoError(t, err)
		used := runtime.ZeroWeight
		for _, env := range envs[sent:] {
			used = used.Add(messageWeight(t, cfg.AhWeights.(runtime.LinearAhWeights), env))
		}
		assert.True(t, used.AllLte(cfg.MaxAhWeight), "step %d used %s of %s", steps, used, cfg.MaxAhWeight)
	}

	assert.Greater(t, steps, refSteps)
	assert.Equal(t, dumpState(t, refDB), dumpState(t, db))
	assert.Equal(t, deliveredItems(t, ref), deliveredItems(t, outbox))
}

func TestFailedStepIsReplayed(t *testing.T) {
	ctx := context.Background()
	a := newActors(t)
	db := buildChain(t, a)
	cfg := chainConfig(a)
	// Every account record travels in a message of its own.
	cfg.MaxXcmSize = 1
	snap := preCheck(t, db, cfg)

	outbox := newOutbox(t)
	sender := &flakySender{Sender: outbox, failAt: 2}
	m := newMigrator(t, db, cfg, sender)
	metrics, err := ahm.NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	m.Metrics = metrics

	initial := issuanceOf(t, db, cfg)
	var failed bool
	steps := 0
	for i := 0; i < 10_000; i++ {
		before := dumpState(t, db)
		stage, err := m.Stage()
		require.NoError(t, err)

		done, err := m.Step(ctx)
		if err != nil {
			require.False(t, failed, "second failure: %v", err)
			failed = true
			assert.Equal(t, before, dumpState(t, db))
			after, err := m.Stage()
			require.NoError(t, err)
			assert.Equal(t, stage, after)
			continue
		}
		steps++
		checkConservation(t, db, cfg, initial)
		if done {
			break
		}
	}
	require.True(t, failed)
	assert.Equal(t, 1, outbox.Redelivered())

	// The discarded step is not counted.
	assert.Equal(t, float64(steps), testutil.ToFloat64(metrics.Steps))
	assert.Equal(t, float64(7), testutil.ToFloat64(metrics.Migrated.WithLabelValues("Accounts")))
	assert.Equal(t, float64(outbox.Len()), testutil.ToFloat64(metrics.Messages.WithLabelValues("ReceiveAccounts"))+
		testutil.ToFloat64(metrics.Messages.WithLabelValues("ReceiveStakingMessages")))

	envs, err := outbox.Envelopes(ctx)
	require.NoError(t, err)
	postCheck(t, db, cfg, snap, envs)
}

func TestSnapshotRoundTrip(t *testing.T) {
	a := newActors(t)
	cfg := chainConfig(a)
	snap := preCheck(t, buildChain(t, a), cfg)

	buf := new(bytes.Buffer)
	require.NoError(t, ahm.WriteSnapshot(buf, snap))
	encoded := buf.Bytes()

	read, err := ahm.ReadSnapshot(bytes.NewReader(encoded))
	require.NoError(t, err)
	assert.True(t, read.TotalIssuance.Equals(snap.TotalIssuance))
	assert.Len(t, read.Accounts, len(snap.Accounts))
	assert.Equal(t, snap.Staking, read.Staking)

	corrupt := append([]byte(nil), encoded...)
	corrupt[len(corrupt)-1] ^= 0xff
	_, err = ahm.ReadSnapshot(bytes.NewReader(corrupt))
	assert.ErrorIs(t, err, ahm.ErrSnapshotChecksum)
}
