package mock

import (
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/stretchr/testify/require"
	cbg "github.com/whyrusleeping/cbor-gen"

	"github.com/ahm-project/migrator/actors/builtin/balances"
	"github.com/ahm-project/migrator/actors/builtin/paras"
	"github.com/ahm-project/migrator/actors/builtin/staking"
	"github.com/ahm-project/migrator/actors/util/adt"
)

// StateBuilder fluently populates source chain state in an in-memory database.
type StateBuilder struct {
	t       testing.TB
	db      *adt.DB
	txn     *adt.Txn
	ledger  *balances.Ledger
	staking *staking.State
	paras   *paras.State
}

// NewStateBuilder starts an empty source chain with the given existential deposit.
func NewStateBuilder(t testing.TB, ed abi.TokenAmount) *StateBuilder {
	db, err := adt.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	txn := db.NewTxn()
	return &StateBuilder{
		t:       t,
		db:      db,
		txn:     txn,
		ledger:  balances.NewLedger(txn, ed),
		staking: staking.NewState(txn),
		paras:   paras.NewState(txn),
	}
}

// Builds the state, returning the database holding it.
func (b *StateBuilder) Build() *adt.DB {
	require.NoError(b.t, b.txn.Commit())
	b.txn = b.db.NewTxn()
	b.ledger = balances.NewLedger(b.txn, b.ledger.MinimumBalance())
	b.staking = staking.NewState(b.txn)
	b.paras = paras.NewState(b.txn)
	return b.db
}

// Mints free balance to an account, creating it if needed.
func (b *StateBuilder) WithAccount(who addr.Address, free abi.TokenAmount) *StateBuilder {
	require.NoError(b.t, b.ledger.Mint(who, free))
	return b
}

// Moves free balance into the unnamed reserve.
func (b *StateBuilder) WithReserve(who addr.Address, amount abi.TokenAmount) *StateBuilder {
	require.NoError(b.t, b.ledger.Reserve(who, amount))
	return b
}

func (b *StateBuilder) WithHold(who addr.Address, id string, amount abi.TokenAmount) *StateBuilder {
	require.NoError(b.t, b.ledger.Hold(who, id, amount))
	return b
}

func (b *StateBuilder) WithFreeze(who addr.Address, id string, amount abi.TokenAmount) *StateBuilder {
	require.NoError(b.t, b.ledger.SetFreeze(who, id, amount))
	return b
}

func (b *StateBuilder) WithLock(who addr.Address, id string, amount abi.TokenAmount, reasons uint64) *StateBuilder {
	require.NoError(b.t, b.ledger.SetLock(who, id, amount, reasons))
	return b
}

func (b *StateBuilder) WithRefCounts(who addr.Address, consumers, providers uint64) *StateBuilder {
	require.NoError(b.t, b.ledger.SetRefCounts(who, consumers, providers))
	return b
}

func (b *StateBuilder) WithNonce(who addr.Address, nonce uint64) *StateBuilder {
	info, found, err := b.ledger.Account(who)
	require.NoError(b.t, err)
	require.True(b.t, found, "no account %v", who)
	info.Nonce = nonce
	require.NoError(b.t, b.ledger.PutAccount(who, info))
	return b
}

// Registers a parachain, reserving its deposit from the manager.
func (b *StateBuilder) WithPara(id uint32, manager addr.Address, deposit abi.TokenAmount) *StateBuilder {
	require.NoError(b.t, b.paras.Register(id, &paras.ParaInfo{Manager: manager, Deposit: deposit}))
	return b.WithReserve(manager, deposit)
}

// Bonds a stash with active stake and unlocking chunks of the given values.
func (b *StateBuilder) WithBond(stash, controller addr.Address, active abi.TokenAmount, unlocking ...abi.TokenAmount) *StateBuilder {
	ledger := &staking.StakingLedger{Stash: stash, Active: active}
	for i, v := range unlocking {
		ledger.Unlocking = append(ledger.Unlocking, staking.UnlockChunk{Value: v, Era: uint64(i + 1)})
	}
	ledger.Total = big.Add(active, ledger.UnlockingTotal())
	require.NoError(b.t, b.staking.Bond(stash, controller, ledger))
	return b
}

func (b *StateBuilder) WithNominator(stash addr.Address, era uint64, targets ...addr.Address) *StateBuilder {
	require.NoError(b.t, b.staking.Nominate(stash, &staking.Nominations{Targets: targets, SubmittedIn: era}))
	return b
}

func (b *StateBuilder) WithValidator(stash addr.Address, commission uint64) *StateBuilder {
	require.NoError(b.t, b.staking.Validate(stash, &staking.ValidatorPrefs{Commission: commission}))
	return b
}

func (b *StateBuilder) WithRewardPoints(era uint32, points ...staking.RewardPoint) *StateBuilder {
	total := uint64(0)
	for _, p := range points {
		total += p.Points
	}
	require.NoError(b.t, b.staking.ErasRewardPoints().Put(adt.U32Key(era), &staking.EraRewardPoints{Total: total, Individual: points}))
	return b
}

func (b *StateBuilder) WithUnappliedSlash(era uint32, slash staking.UnappliedSlash) *StateBuilder {
	require.NoError(b.t, b.staking.AddUnappliedSlash(era, slash))
	return b
}

// Puts an arbitrary entry into a staking map.
func (b *StateBuilder) WithStakingEntry(prefix string, k adt.Keyer, v cbg.CBORMarshaler) *StateBuilder {
	require.NoError(b.t, b.staking.Map(prefix).Put(k, v))
	return b
}
