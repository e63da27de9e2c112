package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/filecoin-project/go-state-types/big"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahm-project/migrator/actors/builtin/balances"
	"github.com/ahm-project/migrator/actors/migration/ahm"
	"github.com/ahm-project/migrator/actors/util"
	"github.com/ahm-project/migrator/actors/util/adt"
	tutil "github.com/ahm-project/migrator/support/testing"
)

func TestLoadConfig(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, ahm.DefaultConfig().MaxXcmSize, cfg.MaxXcmSize)
	assert.Equal(t, util.DefensiveSoft, cfg.Defensive)

	v.Set(keyRcExistentialDeposit, "5_00")
	v.Set(keyDefensive, "hard")
	v.Set(keyPreservedAccounts, []string{"f0107"})
	v.Set(keyMaxXcmSize, 1024)
	cfg, err = loadConfig(v)
	require.NoError(t, err)
	assert.True(t, cfg.RcExistentialDeposit.Equals(big.NewInt(500)))
	assert.Equal(t, util.DefensiveHard, cfg.Defensive)
	assert.Equal(t, 1024, cfg.MaxXcmSize)
	require.Len(t, cfg.PreservedAccounts, 1)
	assert.Equal(t, tutil.NewIDAddr(t, 107), cfg.PreservedAccounts[0])

	t.Run("rejects unknown defensive mode", func(t *testing.T) {
		v.Set(keyDefensive, "lenient")
		_, err := loadConfig(v)
		assert.Error(t, err)
		v.Set(keyDefensive, "soft")
	})

	t.Run("rejects invalid limits", func(t *testing.T) {
		v.Set(keyMaxItemsPerBlock, 0)
		_, err := loadConfig(v)
		assert.Error(t, err)
	})
}

func TestDryRun(t *testing.T) {
	ed := big.NewInt(100)
	src := filepath.Join(t.TempDir(), "src")
	db, err := adt.Open(src)
	require.NoError(t, err)
	txn := db.NewTxn()
	ledger := balances.NewLedger(txn, ed)
	require.NoError(t, ledger.Mint(tutil.NewIDAddr(t, 101), big.NewInt(1500)))
	require.NoError(t, ledger.Mint(tutil.NewIDAddr(t, 102), big.NewInt(2500)))
	require.NoError(t, ledger.Mint(tutil.NewIDAddr(t, 103), big.NewInt(5)))
	require.NoError(t, txn.Commit())
	require.NoError(t, db.Close())

	v := viper.New()
	setDefaults(v)
	v.Set(keyRcExistentialDeposit, "100")
	v.Set(keyAhExistentialDeposit, "10")
	v.Set(keyDefensive, "hard")
	cfg, err := loadConfig(v)
	require.NoError(t, err)

	work := t.TempDir()
	opts := &runOptions{dbPath: src, workDir: work, snapshotPath: filepath.Join(work, "snapshot")}
	out := &bytes.Buffer{}
	require.NoError(t, dryRun(context.Background(), out, ahm.TestLogger{TB: t}, &cfg, opts))

	report := out.String()
	assert.Contains(t, report, "issuance:    4,005 -> 5\n")
	assert.Contains(t, report, "migrated:    4,000\n")
	assert.Contains(t, report, "accounts:    2 records\n")
	assert.Contains(t, report, "messages:    1 (0 redelivered)\n")
	assert.Contains(t, report, "post-check:  ok\n")
	assert.NotContains(t, report, "skipped:")

	// The source database is left untouched.
	db, err = adt.Open(src)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	view := db.NewView()
	defer func() { _ = view.Close() }()
	issuance, err := balances.NewLedger(view, ed).TotalIssuance()
	require.NoError(t, err)
	assert.True(t, issuance.Equals(big.NewInt(4005)))
}
