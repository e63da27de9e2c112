package paras_test

import (
	"testing"

	"github.com/filecoin-project/go-state-types/big"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahm-project/migrator/actors/builtin/paras"
	"github.com/ahm-project/migrator/actors/util/adt"
	tutil "github.com/ahm-project/migrator/support/testing"
)

func TestRegistrar(t *testing.T) {
	db, err := adt.OpenInMemory()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	txn := db.NewTxn()
	defer func() { _ = txn.Close() }()

	st := paras.NewState(txn)
	manager := tutil.NewIDAddr(t, 7)
	require.NoError(t, st.Register(2000, &paras.ParaInfo{Manager: manager, Deposit: big.NewInt(500), Locked: true}))
	require.NoError(t, st.Register(1000, &paras.ParaInfo{Manager: manager, Deposit: big.NewInt(300)}))

	info, found, err := st.Get(2000)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, manager, info.Manager)
	assert.True(t, info.Locked)

	var ids []uint32
	require.NoError(t, st.ForEach(func(id uint32, info *paras.ParaInfo) error {
		ids = append(ids, id)
		return nil
	}))
	assert.Equal(t, []uint32{1000, 2000}, ids)
}
