package ahm

import (
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahm-project/migrator/actors/runtime"
)

func stakingRecord(size int) *StakingMessage {
	return &StakingMessage{Stage: 1, Key: []byte{1}, Value: make([]byte, size)}
}

func TestBatch(t *testing.T) {
	weights := runtime.LinearAhWeights{
		MessageBase:    runtime.NewWeight(100, 10),
		StakingMessage: runtime.NewWeight(1, 1),
	}
	weightOf := func(n uint32, _ Record) runtime.Weight { return weights.ReceiveStakingMessages(n) }
	pushCost := func(size int) runtime.Weight { return runtime.NewWeight(uint64(size), 0) }

	// A record with a 20 byte value encodes to 25 bytes.
	rec := stakingRecord(20)
	items, err := (&Batch{}).encode([]Record{rec})
	require.NoError(t, err)
	size := len(items[0].raw)
	require.Equal(t, 25, size)

	t.Run("fills messages up to the size ceiling", func(t *testing.T) {
		b := NewBatch(2*size, weightOf, pushCost)
		assert.True(t, b.IsEmpty())
		for i := 0; i < 5; i++ {
			require.NoError(t, b.Push(rec))
		}
		assert.Equal(t, 5, b.Len())
		assert.Equal(t, 3, b.BatchCount())
		assert.Len(t, b.Messages()[0], 2)
		assert.Len(t, b.Messages()[2], 1)
		// Each message pays its base cost once.
		assert.Equal(t, runtime.NewWeight(3*100+5, 3*10+5), b.Weight())
	})

	t.Run("oversized record gets a message of its own", func(t *testing.T) {
		b := NewBatch(size-1, weightOf, pushCost)
		require.NoError(t, b.Push(rec))
		require.NoError(t, b.Push(rec))
		assert.Equal(t, 2, b.BatchCount())
	})

	t.Run("push cost is paid once", func(t *testing.T) {
		b := NewBatch(10*size, weightOf, pushCost)
		require.NoError(t, b.Push(rec))
		require.NoError(t, b.Push(rec))
		assert.Equal(t, runtime.NewWeight(uint64(2*size), 0), b.ConsumeWeight())
		assert.True(t, b.ConsumeWeight().IsZero())
	})

	t.Run("marginal weight matches push", func(t *testing.T) {
		b := NewBatch(2*size, weightOf, pushCost)
		require.NoError(t, b.Push(rec))
		items, err := b.encode([]Record{rec, rec, rec})
		require.NoError(t, err)
		before := b.Weight()
		w, opened := b.marginal(items)
		// Fills the first message, then opens a second holding two.
		assert.Equal(t, runtime.NewWeight(1+100+2, 1+10+2), w)
		assert.Equal(t, 1, opened)
		assert.Equal(t, before, b.Weight(), "marginal must not push")
		assert.Equal(t, runtime.NewWeight(uint64(3*size), 0), b.pushWeight(items))

		b.ConsumeWeight()
		b.push(items)
		assert.Equal(t, before.Add(w), b.Weight())
		assert.Equal(t, 1+opened, b.BatchCount())
		assert.Equal(t, b.pushWeight(items), b.ConsumeWeight())
	})
}

func TestAccountWeights(t *testing.T) {
	weights := runtime.LinearAhWeights{LiquidAccount: runtime.NewWeight(1, 1), Account: runtime.NewWeight(4, 1)}
	weightOf := func(n uint32, rec Record) runtime.Weight {
		return weights.ReceiveAccounts(n, rec.(*AccountRecord).IsLiquid())
	}
	b := NewBatch(1<<20, weightOf, func(int) runtime.Weight { return runtime.ZeroWeight })

	who, err := addr.NewIDAddress(101)
	require.NoError(t, err)
	liquid := &AccountRecord{Who: who, Free: big.NewInt(5), Reserved: big.Zero(), Frozen: big.Zero(), UnnamedReserve: big.Zero()}
	complexRec := &AccountRecord{Who: who, Free: big.NewInt(5), Reserved: big.NewInt(1), Frozen: big.Zero(), UnnamedReserve: big.Zero()}
	require.True(t, liquid.IsLiquid())
	require.False(t, complexRec.IsLiquid())

	require.NoError(t, b.Push(liquid))
	require.NoError(t, b.Push(complexRec))
	assert.Equal(t, runtime.NewWeight(1+4, 2), b.Weight())
}
