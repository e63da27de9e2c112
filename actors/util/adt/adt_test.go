package adt_test

import (
	"testing"

	cbg "github.com/whyrusleeping/cbor-gen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahm-project/migrator/actors/util/adt"
	tutil "github.com/ahm-project/migrator/support/testing"
)

func TestAddrKey(t *testing.T) {
	idAddress1 := tutil.NewIDAddr(t, 101)
	idAddress2 := tutil.NewIDAddr(t, 102)
	actorAddress1 := tutil.NewActorAddr(t, "actor1")

	t.Run("address to key string conversion", func(t *testing.T) {
		assert.Equal(t, "\x00\x65", adt.AddrKey(idAddress1).Key())
		assert.Equal(t, "\x00\x66", adt.AddrKey(idAddress2).Key())
		assert.Equal(t, "\x02\x58\xbe\x4f\xd7\x75\xa0\xc8\xcd\x9a\xed\x86\x4e\x73\xab\xb1\x86\x46\x5f\xef\xe1", adt.AddrKey(actorAddress1).Key())
	})

	t.Run("round trips", func(t *testing.T) {
		parsed, err := adt.ParseAddrKey([]byte(adt.AddrKey(actorAddress1).Key()))
		require.NoError(t, err)
		assert.Equal(t, actorAddress1, parsed)
	})
}

func TestUIntKeyOrder(t *testing.T) {
	assert.Less(t, adt.UIntKey(255).Key(), adt.UIntKey(256).Key())
	assert.Less(t, adt.U32Key(9).Key(), adt.U32Key(10).Key())

	v, err := adt.ParseU32Key([]byte(adt.U32Key(77).Key()))
	require.NoError(t, err)
	assert.Equal(t, uint32(77), v)

	_, err = adt.ParseUIntKey([]byte{1, 2})
	assert.Error(t, err)
}

func TestPrefixEnd(t *testing.T) {
	assert.Equal(t, []byte("ab"), adt.PrefixEnd([]byte("aa")))
	assert.Equal(t, []byte{0x02}, adt.PrefixEnd([]byte{0x01, 0xff}))
	assert.Nil(t, adt.PrefixEnd([]byte{0xff, 0xff}))
}

func newDB(t *testing.T) *adt.DB {
	db, err := adt.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMap(t *testing.T) {
	db := newDB(t)
	txn := db.NewTxn()
	defer func() { _ = txn.Close() }()

	m := adt.AsMap(txn, "m/")
	other := adt.AsMap(txn, "n/")
	require.NoError(t, other.Put(adt.StringKey("x"), cborUint(9)))

	empty, err := m.IsEmpty()
	require.NoError(t, err)
	assert.True(t, empty)

	for i := uint64(3); i > 0; i-- {
		require.NoError(t, m.Put(adt.UIntKey(i), cborUint(i*10)))
	}

	var out cbg.CborInt
	found, err := m.Get(adt.UIntKey(2), &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, cbg.CborInt(20), out)

	found, err = m.Get(adt.UIntKey(7), &out)
	require.NoError(t, err)
	assert.False(t, found)

	t.Run("next after walks in key order", func(t *testing.T) {
		var seen []uint64
		var last []byte
		for {
			k, _, found, err := m.NextAfter(last)
			require.NoError(t, err)
			if !found {
				break
			}
			v, err := adt.ParseUIntKey(k)
			require.NoError(t, err)
			seen = append(seen, v)
			last = k
		}
		assert.Equal(t, []uint64{1, 2, 3}, seen)
	})

	t.Run("next after an absent key", func(t *testing.T) {
		sparse := adt.AsMap(txn, "s/")
		for _, i := range []uint64{10, 20, 30} {
			require.NoError(t, sparse.Put(adt.UIntKey(i), cborUint(i)))
		}
		next := func(after uint64) (uint64, bool) {
			k, _, found, err := sparse.NextAfter([]byte(adt.UIntKey(after).Key()))
			require.NoError(t, err)
			if !found {
				return 0, false
			}
			v, err := adt.ParseUIntKey(k)
			require.NoError(t, err)
			return v, true
		}
		for after, expected := range map[uint64]uint64{0: 10, 10: 20, 15: 20, 29: 30} {
			v, found := next(after)
			assert.True(t, found, "after %d", after)
			assert.Equal(t, expected, v, "after %d", after)
		}
		_, found := next(30)
		assert.False(t, found)
		_, found = next(35)
		assert.False(t, found)
	})

	t.Run("pop removes", func(t *testing.T) {
		raw, found, err := m.Pop(adt.UIntKey(1))
		require.NoError(t, err)
		assert.True(t, found)
		assert.NotEmpty(t, raw)

		keys, err := m.CollectKeys()
		require.NoError(t, err)
		assert.Len(t, keys, 2)
	})
}

func TestValue(t *testing.T) {
	db := newDB(t)
	txn := db.NewTxn()
	defer func() { _ = txn.Close() }()

	v := adt.AsValue(txn, "v")
	exists, err := v.Exists()
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, v.Put(cborUint(5)))
	var out cbg.CborInt
	found, err := v.Take(&out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, cbg.CborInt(5), out)

	exists, err = v.Exists()
	require.NoError(t, err)
	assert.False(t, exists)
}

func cborUint(v uint64) *cbg.CborInt {
	i := cbg.CborInt(v)
	return &i
}
