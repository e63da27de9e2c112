package ahm

import (
	"fmt"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	cbg "github.com/whyrusleeping/cbor-gen"

	"github.com/ahm-project/migrator/actors/builtin/balances"
)

// Record is an item carried by an outbound message.
type Record interface {
	cbg.CBORMarshaler
}

// Kinds of AccountDisposition.
const (
	DispositionMigrate = uint64(iota)
	DispositionPreserve
	DispositionPart
)

// AccountDisposition decides what stays on the source chain for an account.
// An account without a stored disposition migrates entirely.
type AccountDisposition struct {
	Kind          uint64
	KeptFree      abi.TokenAmount
	KeptReserved  abi.TokenAmount
	KeptConsumers uint64
}

func MigrateDisposition() AccountDisposition {
	return AccountDisposition{Kind: DispositionMigrate, KeptFree: big.Zero(), KeptReserved: big.Zero()}
}

func PreserveDisposition() AccountDisposition {
	return AccountDisposition{Kind: DispositionPreserve, KeptFree: big.Zero(), KeptReserved: big.Zero()}
}

func PartDisposition(free, reserved abi.TokenAmount, consumers uint64) AccountDisposition {
	return AccountDisposition{Kind: DispositionPart, KeptFree: free, KeptReserved: reserved, KeptConsumers: consumers}
}

// Kept is the total balance staying on the source chain.
func (d *AccountDisposition) Kept() abi.TokenAmount {
	return big.Add(d.KeptFree, d.KeptReserved)
}

func (d AccountDisposition) Equals(o AccountDisposition) bool {
	return d.Kind == o.Kind && d.KeptConsumers == o.KeptConsumers &&
		d.KeptFree.Equals(o.KeptFree) && d.KeptReserved.Equals(o.KeptReserved)
}

func (d AccountDisposition) String() string {
	switch d.Kind {
	case DispositionMigrate:
		return "Migrate"
	case DispositionPreserve:
		return "Preserve"
	case DispositionPart:
		return fmt.Sprintf("Part{free: %v, reserved: %v, consumers: %d}", d.KeptFree, d.KeptReserved, d.KeptConsumers)
	default:
		return fmt.Sprintf("Disposition(%d)", d.Kind)
	}
}

// PortableAmount is a hold or freeze identified by its destination chain reason.
type PortableAmount struct {
	Reason uint64
	Amount abi.TokenAmount
}

// AccountRecord is the state of an account as received by the destination chain.
// Free plus Reserved is the amount withdrawn from the source chain.
type AccountRecord struct {
	Who            addr.Address
	Free           abi.TokenAmount
	Reserved       abi.TokenAmount
	Frozen         abi.TokenAmount
	Holds          []PortableAmount
	Freezes        []PortableAmount
	Locks          []balances.BalanceLock
	UnnamedReserve abi.TokenAmount
	Consumers      uint64
	Providers      uint64
}

// IsLiquid reports records carrying nothing but free balance, which are cheaper to apply.
func (r *AccountRecord) IsLiquid() bool {
	return len(r.Holds) == 0 && len(r.Freezes) == 0 && len(r.Locks) == 0 &&
		r.Reserved.IsZero() && r.UnnamedReserve.IsZero()
}

// StakingMessage carries one staking storage entry, keyed as on the source chain.
type StakingMessage struct {
	Stage uint64
	Key   []byte
	Value []byte
}

// Destination calls receiving migrated records.
const (
	CallReceiveAccounts = uint64(iota + 1)
	CallReceiveStakingMessages
)

func CallName(call uint64) string {
	switch call {
	case CallReceiveAccounts:
		return "ReceiveAccounts"
	case CallReceiveStakingMessages:
		return "ReceiveStakingMessages"
	default:
		return fmt.Sprintf("Call(%d)", call)
	}
}

// Envelope is one outbound message.
type Envelope struct {
	Nonce uint64
	Topic []byte
	Call  uint64
	Items []cbg.Deferred
}

// Tracker accounts for the balance leaving the source chain.
// Kept plus Migrated equals the total issuance when the migration started.
type Tracker struct {
	Kept     abi.TokenAmount
	Migrated abi.TokenAmount
}

// Cursor is the resumption point within a sequence of stages.
// A nil LastKey starts the stage from its first key.
type Cursor struct {
	Stage   uint64
	LastKey []byte
}

// Kinds of MigrationStage.
const (
	StagePending = uint64(iota)
	StageAccountsInit
	StageMigratingAccounts
	StageMigratingStaking
	StageStakingDone
	StageFinished
)

// MigrationStage is the persisted progress of the whole migration.
type MigrationStage struct {
	Kind   uint64
	Cursor *Cursor
}

func (s MigrationStage) String() string {
	name := StageName(s.Kind)
	if s.Cursor == nil {
		return name
	}
	return fmt.Sprintf("%s{stage: %d, last: %x}", name, s.Cursor.Stage, s.Cursor.LastKey)
}

func StageName(kind uint64) string {
	switch kind {
	case StagePending:
		return "Pending"
	case StageAccountsInit:
		return "AccountsInit"
	case StageMigratingAccounts:
		return "MigratingAccounts"
	case StageMigratingStaking:
		return "MigratingStaking"
	case StageStakingDone:
		return "StakingDone"
	case StageFinished:
		return "Finished"
	default:
		return fmt.Sprintf("Stage(%d)", kind)
	}
}

// AccountExpectation is the post-migration state of an account predicted before migrating.
type AccountExpectation struct {
	Who      addr.Address
	Free     abi.TokenAmount
	Reserved abi.TokenAmount
	Frozen   abi.TokenAmount
	Holds    []PortableAmount
	Freezes  []PortableAmount
	Locks    []balances.BalanceLock
}

// Snapshot is the state captured before migration to be checked after it.
type Snapshot struct {
	TotalIssuance abi.TokenAmount
	Accounts      []AccountExpectation
	Staking       []StakingMessage
}
