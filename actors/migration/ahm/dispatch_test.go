package ahm_test

import (
	"context"
	"strings"
	"testing"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"github.com/ahm-project/migrator/actors/migration/ahm"
	"github.com/ahm-project/migrator/actors/runtime"
	"github.com/ahm-project/migrator/actors/util/adt"
)

type recordingSender struct {
	envs   []*ahm.Envelope
	failAt int
}

func (s *recordingSender) Send(_ context.Context, env *ahm.Envelope) error {
	if s.failAt > 0 && len(s.envs)+1 == s.failAt {
		return xerrors.New("link down")
	}
	s.envs = append(s.envs, env)
	return nil
}

func TestTopics(t *testing.T) {
	assert.Len(t, ahm.Topic(0), 32)
	assert.Equal(t, ahm.Topic(7), ahm.Topic(7))
	assert.NotEqual(t, ahm.Topic(7), ahm.Topic(8))

	c, err := ahm.TopicCid(ahm.Topic(7))
	require.NoError(t, err)
	assert.Equal(t, uint64(cid.Raw), c.Type())
	decoded, err := multihash.Decode(c.Hash())
	require.NoError(t, err)
	assert.Equal(t, ahm.Topic(7), decoded.Digest)

	s := ahm.TopicString(ahm.Topic(7))
	assert.True(t, strings.HasPrefix(s, "b"), s)
}

func TestSendChunked(t *testing.T) {
	ctx := context.Background()
	db, err := adt.OpenInMemory()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	txn := db.NewTxn()
	defer func() { _ = txn.Close() }()

	batch := ahm.NewBatch(1, func(n uint32, _ ahm.Record) runtime.Weight {
		return runtime.NewWeight(uint64(n), 0)
	}, func(int) runtime.Weight { return runtime.ZeroWeight })
	for i := 0; i < 3; i++ {
		require.NoError(t, batch.Push(&ahm.StakingMessage{Stage: uint64(i), Key: []byte{1}, Value: []byte{2}}))
	}
	require.Equal(t, 3, batch.BatchCount())

	sender := &recordingSender{failAt: 3}
	d := ahm.NewDispatcher(txn, sender, ahm.TestLogger{TB: t})
	n, err := d.SendChunked(ctx, batch, ahm.CallReceiveStakingMessages)
	require.Error(t, err)
	assert.Equal(t, 2, n)

	sender.failAt = 0
	n, err = d.SendChunked(ctx, batch, ahm.CallReceiveStakingMessages)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// Nonces keep increasing across calls, including over the failed message.
	var nonces []uint64
	for _, env := range sender.envs {
		nonces = append(nonces, env.Nonce)
		assert.Equal(t, ahm.Topic(env.Nonce), env.Topic)
		assert.Equal(t, ahm.CallReceiveStakingMessages, env.Call)
		assert.Len(t, env.Items, 1)
	}
	assert.Equal(t, []uint64{0, 1, 3, 4, 5}, nonces)
}
