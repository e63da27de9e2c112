package test_test

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/rt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cbg "github.com/whyrusleeping/cbor-gen"
	"golang.org/x/xerrors"

	"github.com/ahm-project/migrator/actors/builtin/balances"
	"github.com/ahm-project/migrator/actors/builtin/staking"
	"github.com/ahm-project/migrator/actors/migration/ahm"
	"github.com/ahm-project/migrator/actors/runtime"
	"github.com/ahm-project/migrator/actors/util"
	"github.com/ahm-project/migrator/actors/util/adt"
	"github.com/ahm-project/migrator/support/ipld"
	"github.com/ahm-project/migrator/support/mock"
	tutil "github.com/ahm-project/migrator/support/testing"
)

var (
	rcED = big.NewInt(100)
	ahED = big.NewInt(10)
)

func tokens(v int64) abi.TokenAmount {
	return big.NewInt(v)
}

func assertTokens(t *testing.T, expected int64, actual abi.TokenAmount) {
	t.Helper()
	assert.True(t, tokens(expected).Equals(actual), "expected %d, got %v", expected, actual)
}

// testConfig has small deposits, unit costs and unlimited budgets.
func testConfig() ahm.Config {
	cfg := ahm.DefaultConfig()
	cfg.RcExistentialDeposit = rcED
	cfg.AhExistentialDeposit = ahED
	cfg.RcWeights = runtime.LinearRcWeights{
		Withdraw:    runtime.NewWeight(10, 1),
		StakingItem: runtime.NewWeight(5, 1),
		PerByte:     runtime.NewWeight(1, 0),
	}
	cfg.AhWeights = runtime.LinearAhWeights{
		MessageBase:    runtime.NewWeight(2, 0),
		LiquidAccount:  runtime.NewWeight(1, 1),
		Account:        runtime.NewWeight(4, 1),
		StakingMessage: runtime.NewWeight(1, 1),
	}
	cfg.MaxRcWeight = runtime.NewWeight(1<<40, 1<<40)
	cfg.MaxAhWeight = runtime.NewWeight(1<<40, 1<<40)
	cfg.Defensive = util.DefensiveHard
	return cfg
}

type actors struct {
	alice, bob, carol, dave, dusty, manager, treasury addr.Address
	controller, validator1, validator2                addr.Address
}

func newActors(t *testing.T) actors {
	return actors{
		alice:      tutil.NewIDAddr(t, 101),
		bob:        tutil.NewIDAddr(t, 102),
		carol:      tutil.NewIDAddr(t, 103),
		dave:       tutil.NewIDAddr(t, 104),
		dusty:      tutil.NewIDAddr(t, 105),
		manager:    tutil.NewIDAddr(t, 106),
		treasury:   tutil.NewIDAddr(t, 107),
		controller: tutil.NewIDAddr(t, 201),
		validator1: tutil.NewIDAddr(t, 301),
		validator2: tutil.NewIDAddr(t, 302),
	}
}

// chainConfig is the configuration matching buildChain.
func chainConfig(a actors) ahm.Config {
	cfg := testConfig()
	cfg.PreservedAccounts = []addr.Address{a.treasury}
	return cfg
}

const fixtureIssuance = 1000 + 500 + 160 + 50 + 5 + 1000 + 5000

// buildChain populates a source chain exercising every kind of account and staking entry.
func buildChain(t *testing.T, a actors) *adt.DB {
	era := cbg.CborInt(5)
	return mock.NewStateBuilder(t, rcED).
		// Liquid.
		WithAccount(a.alice, tokens(1000)).
		// Encumbered by every kind of reserve and lock.
		WithAccount(a.bob, tokens(500)).
		WithHold(a.bob, "staking", tokens(200)).
		WithFreeze(a.bob, "nomination_pools", tokens(100)).
		WithLock(a.bob, "vesting", tokens(50), 1).
		// Free balance below the deposit after the hold.
		WithAccount(a.carol, tokens(160)).
		WithHold(a.carol, "preimage", tokens(100)).
		// Below the source deposit, above the destination one.
		WithAccount(a.dave, tokens(50)).
		// Below both deposits.
		WithAccount(a.dusty, tokens(5)).
		WithAccount(a.manager, tokens(1000)).
		WithPara(2000, a.manager, tokens(300)).
		WithAccount(a.treasury, tokens(5000)).
		WithStakingEntry(staking.ValuesPrefix, adt.StringKey(staking.ValueCurrentEra), &era).
		WithStakingEntry(staking.InvulnerablesPrefix, adt.AddrKey(a.validator1), &staking.Marker{}).
		WithBond(a.alice, a.controller, tokens(600), tokens(10), tokens(20)).
		WithNominator(a.alice, 4, a.validator1, a.validator2).
		WithValidator(a.validator1, 5).
		WithRewardPoints(3,
			staking.RewardPoint{Validator: a.validator1, Points: 20},
			staking.RewardPoint{Validator: a.validator2, Points: 10}).
		WithUnappliedSlash(4, staking.UnappliedSlash{Validator: a.validator1, Own: tokens(7), Others: []staking.SlashOther{}, Reporters: []addr.Address{}, Payout: tokens(1)}).
		WithUnappliedSlash(4, staking.UnappliedSlash{Validator: a.validator2, Own: tokens(3), Others: []staking.SlashOther{}, Reporters: []addr.Address{}, Payout: tokens(0)}).
		WithStakingEntry(staking.SlashingSpansPrefix, adt.AddrKey(a.validator1), &staking.Marker{}).
		Build()
}

// runMigration steps a new migrator to completion.
func runMigration(t *testing.T, db *adt.DB, cfg ahm.Config, sender ahm.Sender) (*ahm.Migrator, int) {
	m := newMigrator(t, db, cfg, sender)
	return m, stepToCompletion(t, m, db, cfg)
}

func newMigrator(t *testing.T, db *adt.DB, cfg ahm.Config, sender ahm.Sender) *ahm.Migrator {
	m, err := ahm.NewMigrator(db, cfg, ahm.TestLogger{TB: t}, sender)
	require.NoError(t, err)
	return m
}

// stepToCompletion checks the balance tracker after every step.
func stepToCompletion(t *testing.T, m *ahm.Migrator, db *adt.DB, cfg ahm.Config) int {
	ctx := context.Background()
	initial := issuanceOf(t, db, cfg)
	for steps := 1; steps < 10_000; steps++ {
		done, err := m.Step(ctx)
		require.NoError(t, err)
		checkConservation(t, db, cfg, initial)
		if done {
			return steps
		}
	}
	require.FailNow(t, "migration did not finish")
	return 0
}

func issuanceOf(t *testing.T, db *adt.DB, cfg ahm.Config) abi.TokenAmount {
	view := db.NewView()
	defer func() { _ = view.Close() }()
	issuance, err := ledgerIssuance(view, cfg)
	require.NoError(t, err)
	return issuance
}

// checkConservation asserts the tracker accounts for the whole issuance at migration start.
func checkConservation(t *testing.T, db *adt.DB, cfg ahm.Config, initial abi.TokenAmount) {
	view := db.NewView()
	defer func() { _ = view.Close() }()
	stage, err := ahm.LoadStage(view)
	require.NoError(t, err)
	if stage.Kind < ahm.StageMigratingAccounts {
		return
	}
	tracker, found, err := ahm.LoadTracker(view)
	require.NoError(t, err)
	require.True(t, found)
	require.True(t, tracker.Total().Equals(initial), "tracker total %v in stage %v", tracker.Total(), stage)
	issuance, err := ledgerIssuance(view, cfg)
	require.NoError(t, err)
	require.True(t, issuance.Equals(tracker.Kept), "issuance %v, kept %v", issuance, tracker.Kept)
}

func ledgerIssuance(s adt.Store, cfg ahm.Config) (abi.TokenAmount, error) {
	return balances.NewLedger(s, cfg.RcExistentialDeposit).TotalIssuance()
}

// dumpState copies every entry of the database except the message nonce.
func dumpState(t *testing.T, db *adt.DB) map[string][]byte {
	view := db.NewView()
	defer func() { _ = view.Close() }()
	out := map[string][]byte{}
	require.NoError(t, view.Iterate(nil, nil, func(k, v []byte) error {
		if string(k) != ahm.NonceKey {
			out[string(k)] = append([]byte(nil), v...)
		}
		return nil
	}))
	return out
}

// deliveredItems flattens the encoded records of every delivered message, per call.
func deliveredItems(t *testing.T, outbox *ipld.Outbox) map[uint64][][]byte {
	envs, err := outbox.Envelopes(context.Background())
	require.NoError(t, err)
	out := map[uint64][][]byte{}
	for _, env := range envs {
		for _, item := range env.Items {
			out[env.Call] = append(out[env.Call], item.Raw)
		}
	}
	return out
}

func accountRecords(t *testing.T, items [][]byte) map[addr.Address]*ahm.AccountRecord {
	out := map[addr.Address]*ahm.AccountRecord{}
	for _, raw := range items {
		var rec ahm.AccountRecord
		require.NoError(t, rec.UnmarshalCBOR(bytes.NewReader(raw)))
		_, dup := out[rec.Who]
		require.False(t, dup, "account %v migrated twice", rec.Who)
		out[rec.Who] = &rec
	}
	return out
}

func newOutbox(t *testing.T) *ipld.Outbox {
	outbox, err := ipld.NewOutbox()
	require.NoError(t, err)
	return outbox
}

// flakySender drops the message with the given position in a first attempt.
type flakySender struct {
	ahm.Sender
	failAt int
	sends  int
}

func (s *flakySender) Send(ctx context.Context, env *ahm.Envelope) error {
	s.sends++
	if s.sends == s.failAt {
		return xerrors.New("link down")
	}
	return s.Sender.Send(ctx, env)
}

// captureLogger records the errors logged through it.
type captureLogger struct {
	ahm.TestLogger
	mu     sync.Mutex
	errors []string
}

func (l *captureLogger) Log(level rt.LogLevel, msg string, args ...interface{}) {
	if level == rt.ERROR {
		l.mu.Lock()
		l.errors = append(l.errors, fmt.Sprintf(msg, args...))
		l.mu.Unlock()
	}
	l.TestLogger.Log(level, msg, args...)
}

func (l *captureLogger) Errors() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.errors...)
}
