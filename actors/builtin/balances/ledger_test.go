package balances_test

import (
	"testing"

	"github.com/filecoin-project/go-state-types/big"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"github.com/ahm-project/migrator/actors/builtin/balances"
	"github.com/ahm-project/migrator/actors/util/adt"
	tutil "github.com/ahm-project/migrator/support/testing"
)

var ed = big.NewInt(100)

func newLedger(t *testing.T) *balances.Ledger {
	db, err := adt.OpenInMemory()
	require.NoError(t, err)
	txn := db.NewTxn()
	t.Cleanup(func() {
		_ = txn.Close()
		_ = db.Close()
	})
	return balances.NewLedger(txn, ed)
}

func checkInvariants(t *testing.T, l *balances.Ledger) *balances.StateSummary {
	summary, msgs, err := balances.CheckStateInvariants(l)
	require.NoError(t, err)
	assert.Empty(t, msgs.Messages())
	return summary
}

func TestMintAndReserve(t *testing.T) {
	l := newLedger(t)
	alice := tutil.NewIDAddr(t, 1)

	require.NoError(t, l.Mint(alice, big.NewInt(1000)))
	require.NoError(t, l.Reserve(alice, big.NewInt(300)))
	require.NoError(t, l.Hold(alice, "preimage", big.NewInt(200)))

	info, found, err := l.Account(alice)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, big.NewInt(500), info.Free)
	assert.Equal(t, big.NewInt(500), info.Reserved)
	assert.Equal(t, uint64(1), info.Providers)

	err = l.Reserve(alice, big.NewInt(501))
	assert.True(t, xerrors.Is(err, balances.ErrInsufficientBalance))

	summary := checkInvariants(t, l)
	assert.Equal(t, 1, summary.AccountCount)
	assert.Equal(t, big.NewInt(1000), summary.TotalIssuance)
}

func TestHoldsRelease(t *testing.T) {
	l := newLedger(t)
	alice := tutil.NewIDAddr(t, 1)
	require.NoError(t, l.Mint(alice, big.NewInt(1000)))
	require.NoError(t, l.Hold(alice, "preimage", big.NewInt(400)))

	t.Run("exact release beyond the hold fails", func(t *testing.T) {
		_, err := l.Release(alice, "preimage", big.NewInt(401), balances.Exact)
		assert.True(t, xerrors.Is(err, balances.ErrInsufficientBalance))
	})

	t.Run("unknown hold fails", func(t *testing.T) {
		_, err := l.Release(alice, "staking", big.NewInt(1), balances.Exact)
		assert.True(t, xerrors.Is(err, balances.ErrNoSuchHold))
	})

	t.Run("release to reserve keeps funds reserved", func(t *testing.T) {
		released, err := l.ReleaseToReserve(alice, "preimage", big.NewInt(100))
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(100), released)
		reserved, err := l.ReservedBalance(alice)
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(400), reserved)
	})

	t.Run("release returns funds to free", func(t *testing.T) {
		released, err := l.Release(alice, "preimage", big.NewInt(300), balances.Exact)
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(300), released)
		holds, err := l.Holds(alice)
		require.NoError(t, err)
		assert.Empty(t, holds)
		free, err := l.Balance(alice)
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(900), free)
	})

	t.Run("unreserve only touches the unnamed reserve", func(t *testing.T) {
		require.NoError(t, l.Hold(alice, "staking", big.NewInt(50)))
		leftover, err := l.Unreserve(alice, big.NewInt(500))
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(400), leftover)
		reserved, err := l.ReservedBalance(alice)
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(50), reserved)
	})

	checkInvariants(t, l)
}

func TestFreezesAndLocks(t *testing.T) {
	l := newLedger(t)
	alice := tutil.NewIDAddr(t, 1)
	require.NoError(t, l.Mint(alice, big.NewInt(1000)))

	require.NoError(t, l.SetFreeze(alice, "governance", big.NewInt(300)))
	require.NoError(t, l.SetLock(alice, "vesting ", big.NewInt(500), balances.ReasonFee|balances.ReasonMisc))
	info, _, err := l.Account(alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(500), info.Frozen)

	require.NoError(t, l.RemoveLock(alice, "vesting "))
	info, _, err = l.Account(alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(300), info.Frozen)

	require.NoError(t, l.Thaw(alice, "governance"))
	info, _, err = l.Account(alice)
	require.NoError(t, err)
	assert.True(t, info.Frozen.IsZero())

	err = l.Thaw(alice, "governance")
	assert.True(t, xerrors.Is(err, balances.ErrNoSuchFreeze))

	checkInvariants(t, l)
}

func TestReducibleBalance(t *testing.T) {
	l := newLedger(t)
	alice := tutil.NewIDAddr(t, 1)
	require.NoError(t, l.Mint(alice, big.NewInt(1000)))
	require.NoError(t, l.Reserve(alice, big.NewInt(200)))
	require.NoError(t, l.SetFreeze(alice, "governance", big.NewInt(300)))

	reducible, err := l.ReducibleBalance(alice, balances.Expendable, balances.Polite)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(700), reducible)

	reducible, err = l.ReducibleBalance(alice, balances.Expendable, balances.Force)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), reducible)

	require.NoError(t, l.Thaw(alice, "governance"))
	reducible, err = l.ReducibleBalance(alice, balances.Preserve, balances.Polite)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(900), reducible)

	require.NoError(t, l.SetRefCounts(alice, 1, 1))
	reducible, err = l.ReducibleBalance(alice, balances.Expendable, balances.Polite)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(900), reducible)

	t.Run("dust that provides for itself is not reducible", func(t *testing.T) {
		bob := tutil.NewIDAddr(t, 2)
		require.NoError(t, l.Mint(bob, big.NewInt(99)))
		reducible, err := l.ReducibleBalance(bob, balances.Expendable, balances.Polite)
		require.NoError(t, err)
		assert.True(t, reducible.IsZero())

		require.NoError(t, l.SetRefCounts(bob, 0, 0))
		reducible, err = l.ReducibleBalance(bob, balances.Expendable, balances.Polite)
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(99), reducible)
	})
}

func TestBurnFrom(t *testing.T) {
	l := newLedger(t)
	alice := tutil.NewIDAddr(t, 1)
	require.NoError(t, l.Mint(alice, big.NewInt(1000)))
	require.NoError(t, l.Reserve(alice, big.NewInt(200)))

	_, err := l.BurnFrom(alice, big.NewInt(1001), balances.Expendable, balances.Exact, balances.Polite)
	assert.True(t, xerrors.Is(err, balances.ErrFundsUnavailable))

	burned, err := l.BurnFrom(alice, big.NewInt(900), balances.Expendable, balances.Exact, balances.Polite)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(900), burned)
	info, found, err := l.Account(alice)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, info.Free.IsZero())
	assert.Equal(t, big.NewInt(100), info.Reserved)

	burned, err = l.BurnFrom(alice, big.NewInt(100), balances.Expendable, balances.Exact, balances.Polite)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(100), burned)
	_, found, err = l.Account(alice)
	require.NoError(t, err)
	assert.False(t, found, "account should be reaped")

	issuance, err := l.TotalIssuance()
	require.NoError(t, err)
	assert.True(t, issuance.IsZero())
	checkInvariants(t, l)
}

func TestBurnDoesNotConsumeHolds(t *testing.T) {
	l := newLedger(t)
	alice := tutil.NewIDAddr(t, 1)
	require.NoError(t, l.Mint(alice, big.NewInt(1000)))
	require.NoError(t, l.Hold(alice, "preimage", big.NewInt(200)))

	_, err := l.BurnFrom(alice, big.NewInt(900), balances.Expendable, balances.Exact, balances.Polite)
	assert.True(t, xerrors.Is(err, balances.ErrFundsUnavailable))
}
