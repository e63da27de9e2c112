package test_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xorcare/golden"

	"github.com/ahm-project/migrator/actors/builtin/staking"
	"github.com/ahm-project/migrator/actors/migration/ahm"
	"github.com/ahm-project/migrator/actors/runtime"
	"github.com/ahm-project/migrator/actors/util"
	"github.com/ahm-project/migrator/actors/util/adt"
	"github.com/ahm-project/migrator/support/mock"
	tutil "github.com/ahm-project/migrator/support/testing"
)

func TestStageOrder(t *testing.T) {
	b := &bytes.Buffer{}
	for kind := ahm.StagePending; kind <= ahm.StageFinished; kind++ {
		fmt.Fprintf(b, "%d %s\n", kind, ahm.StageName(kind))
	}
	b.WriteString("\n")
	for i, s := range ahm.StakingStages() {
		fmt.Fprintf(b, "%2d %-20s %s", i, s.Name, s.Prefix)
		if s.Dropped {
			b.WriteString(" dropped")
		}
		b.WriteString("\n")
	}
	golden.Assert(t, b.Bytes())
}

func stakingMessages(t *testing.T, items [][]byte) []ahm.StakingMessage {
	out := make([]ahm.StakingMessage, len(items))
	for i, raw := range items {
		require.NoError(t, out[i].UnmarshalCBOR(bytes.NewReader(raw)))
	}
	return out
}

func TestOversizedNominations(t *testing.T) {
	a := newActors(t)
	targets := tutil.NewIDAddrs(t, 1000, ahm.MaxNominations+5)
	build := func() *adt.DB {
		return mock.NewStateBuilder(t, rcED).
			WithAccount(a.alice, tokens(1000)).
			WithNominator(a.alice, 4, targets...).
			WithNominator(a.bob, 4, a.validator1).
			Build()
	}

	t.Run("soft mode truncates and logs", func(t *testing.T) {
		db := build()
		cfg := testConfig()
		cfg.Defensive = util.DefensiveSoft
		snap := preCheck(t, db, cfg)

		outbox := newOutbox(t)
		log := &captureLogger{TestLogger: ahm.TestLogger{TB: t}}
		m, err := ahm.NewMigrator(db, cfg, log, outbox)
		require.NoError(t, err)
		stepToCompletion(t, m, db, cfg)

		msgs := stakingMessages(t, deliveredItems(t, outbox)[ahm.CallReceiveStakingMessages])
		require.Len(t, msgs, 2)
		for _, msg := range msgs {
			assert.Equal(t, stageIndex(t, "Nominators"), msg.Stage)
		}
		var n staking.Nominations
		require.NoError(t, n.UnmarshalCBOR(bytes.NewReader(msgs[0].Value)))
		assert.Equal(t, []byte(adt.AddrKey(a.alice).Key()), msgs[0].Key)
		assert.Equal(t, targets[:ahm.MaxNominations], n.Targets)
		assert.Equal(t, uint64(4), n.SubmittedIn)

		errs := log.Errors()
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0], fmt.Sprintf("%d targets", len(targets)))

		envs, err := outbox.Envelopes(context.Background())
		require.NoError(t, err)
		postCheck(t, db, cfg, snap, envs)
	})

	t.Run("hard mode panics", func(t *testing.T) {
		db := build()
		cfg := testConfig()
		m := newMigrator(t, db, cfg, newOutbox(t))
		assert.Panics(t, func() {
			for i := 0; i < 100; i++ {
				if done, err := m.Step(context.Background()); done || err != nil {
					return
				}
			}
		})
		stage, err := m.Stage()
		require.NoError(t, err)
		assert.Equal(t, ahm.StageMigratingStaking, stage.Kind)
	})
}

func TestStakingStages(t *testing.T) {
	ctx := context.Background()
	a := newActors(t)
	era := uint32(9)
	db := mock.NewStateBuilder(t, rcED).
		WithBond(a.alice, a.controller, tokens(100)).
		WithStakingEntry(staking.SlashingSpansPrefix, adt.AddrKey(a.validator1), &staking.Marker{}).
		WithStakingEntry(staking.SpanSlashPrefix, staking.AddrSpanKey{Addr: a.validator1, Span: 2}, &staking.Marker{}).
		WithUnappliedSlash(era, staking.UnappliedSlash{Validator: a.validator1, Own: tokens(7), Others: []staking.SlashOther{}, Reporters: []addr.Address{}, Payout: tokens(1)}).
		WithUnappliedSlash(era, staking.UnappliedSlash{Validator: a.validator2, Own: tokens(3), Others: []staking.SlashOther{}, Reporters: []addr.Address{a.bob}, Payout: tokens(0)}).
		Build()
	cfg := testConfig()
	outbox := newOutbox(t)
	_, _ = runMigration(t, db, cfg, outbox)

	msgs := stakingMessages(t, deliveredItems(t, outbox)[ahm.CallReceiveStakingMessages])
	var stages []string
	for _, msg := range msgs {
		stages = append(stages, ahm.StakingStages()[msg.Stage].Name)
	}
	// Dropped maps send nothing and each unapplied slash travels alone.
	assert.Equal(t, []string{"Bonded", "Ledger", "UnappliedSlashes", "UnappliedSlashes"}, stages)

	slashes := msgs[2:]
	for i, own := range []int64{7, 3} {
		assert.Equal(t, []byte(adt.U32Key(era).Key()), slashes[i].Key)
		var slash staking.UnappliedSlash
		require.NoError(t, slash.UnmarshalCBOR(bytes.NewReader(slashes[i].Value)))
		assertTokens(t, own, slash.Own)
	}

	view := db.NewView()
	defer func() { _ = view.Close() }()
	empty, prefix, err := staking.NewState(view).IsEmpty()
	require.NoError(t, err)
	assert.True(t, empty, "%s not migrated", prefix)

	envs, err := outbox.Envelopes(ctx)
	require.NoError(t, err)
	for _, env := range envs {
		assert.NotEmpty(t, env.Items)
	}
}

func TestEmptyStagesAreProgress(t *testing.T) {
	ctx := context.Background()
	total := tokens(900)
	db := mock.NewStateBuilder(t, rcED).
		WithStakingEntry(staking.ErasTotalStakePrefix, adt.U32Key(3), &total).
		Build()
	cfg := testConfig()
	cfg.RcWeights = runtime.LinearRcWeights{
		Withdraw:    runtime.NewWeight(10, 1),
		StakingItem: runtime.NewWeight(5, 1),
	}
	// Room for a single staking entry, far less than a charge per empty map would need.
	cfg.MaxRcWeight = runtime.NewWeight(6, 100)
	outbox := newOutbox(t)
	m := newMigrator(t, db, cfg, outbox)

	_, err := m.Run(ctx, 50)
	require.NoError(t, err)
	stage, err := m.Stage()
	require.NoError(t, err)
	assert.Equal(t, ahm.StageFinished, stage.Kind)

	msgs := stakingMessages(t, deliveredItems(t, outbox)[ahm.CallReceiveStakingMessages])
	require.Len(t, msgs, 1)
	assert.Equal(t, stageIndex(t, "ErasTotalStake"), msgs[0].Stage)
}

func TestSlashesStayWithinStepLimits(t *testing.T) {
	ctx := context.Background()
	a := newActors(t)
	slash := func(v addr.Address) staking.UnappliedSlash {
		return staking.UnappliedSlash{Validator: v, Own: tokens(1), Others: []staking.SlashOther{}, Reporters: []addr.Address{}, Payout: tokens(0)}
	}
	db := mock.NewStateBuilder(t, rcED).
		WithBond(a.alice, a.controller, tokens(100)).
		WithUnappliedSlash(7, slash(a.validator1)).
		WithUnappliedSlash(7, slash(a.validator2)).
		WithUnappliedSlash(7, slash(a.dave)).
		Build()
	cfg := testConfig()
	cfg.MaxItemsPerBlock = 3
	outbox := newOutbox(t)

	var sent []int
	var cur *ahm.Cursor
	for i := 0; i < 10; i++ {
		txn := db.NewTxn()
		sc := newStepContext(t, txn, &cfg, outbox, nil)
		before := len(deliveredItems(t, outbox)[ahm.CallReceiveStakingMessages])
		next, err := ahm.NewStakingMigrator(sc).MigrateMany(ctx, cur, runtime.NewWeightMeter(cfg.MaxRcWeight))
		require.NoError(t, err)
		require.NoError(t, txn.Commit())
		sent = append(sent, len(deliveredItems(t, outbox)[ahm.CallReceiveStakingMessages])-before)
		if i == 0 {
			// The slashes of era 7 would overshoot the limit and wait for the next call.
			require.NotNil(t, next)
			assert.Equal(t, stageIndex(t, "UnappliedSlashes"), next.Stage)
			assert.Nil(t, next.LastKey)
		}
		if cur = next; cur == nil {
			break
		}
	}
	require.Nil(t, cur)
	// Bonded and Ledger, then the three slashes of one era together.
	assert.Equal(t, []int{2, 3, 0}, sent)
}
