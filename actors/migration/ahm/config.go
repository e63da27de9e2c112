package ahm

import (
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/rt"
	"golang.org/x/xerrors"

	"github.com/ahm-project/migrator/actors/runtime"
	"github.com/ahm-project/migrator/actors/util"
)

// One token in base units.
var Unit = big.NewInt(10_000_000_000)

// Config parameterizes the migration of source chain state.
type Config struct {
	// Minimum balance of an account on the source chain.
	RcExistentialDeposit abi.TokenAmount
	// Minimum balance of an account on the destination chain.
	AhExistentialDeposit abi.TokenAmount
	// Budget for source chain work done in one step.
	MaxRcWeight runtime.Weight
	// Budget for destination chain work caused by the messages sent in one step.
	MaxAhWeight runtime.Weight
	// Maximum encoded size of one outbound message, in bytes.
	// A single record larger than this is sent in a message of its own.
	MaxXcmSize int
	// Maximum number of records produced in one step.
	MaxItemsPerBlock int
	// Maximum number of outbound messages sent in one step.
	MaxXcmMsgPerBlock int
	RcWeights         runtime.RcWeightInfo
	AhWeights         runtime.AhWeightInfo
	// System accounts left untouched on the source chain.
	PreservedAccounts []addr.Address
	// Release holds only up to the existential deposit when the remaining free balance would
	// otherwise be dust, keeping the rest reserved.
	PartialHoldRelease bool
	// Reaction to violated internal expectations.
	Defensive util.DefensiveMode
}

// DefaultConfig returns the parameters of a production migration.
func DefaultConfig() Config {
	return Config{
		RcExistentialDeposit: Unit,
		AhExistentialDeposit: big.Div(Unit, big.NewInt(100)),
		MaxRcWeight:          runtime.NewWeight(1_000_000_000_000, 2_500_000),
		MaxAhWeight:          runtime.NewWeight(1_000_000_000_000, 2_500_000),
		MaxXcmSize:           50_000,
		MaxItemsPerBlock:     1600,
		MaxXcmMsgPerBlock:    10,
		RcWeights:            runtime.DefaultRcWeights,
		AhWeights:            runtime.DefaultAhWeights,
		PartialHoldRelease:   true,
		Defensive:            util.DefensiveSoft,
	}
}

func (c *Config) Validate() error {
	if c.RcExistentialDeposit.Nil() || c.RcExistentialDeposit.Sign() <= 0 {
		return xerrors.Errorf("invalid source existential deposit %v", c.RcExistentialDeposit)
	}
	if c.AhExistentialDeposit.Nil() || c.AhExistentialDeposit.Sign() <= 0 {
		return xerrors.Errorf("invalid destination existential deposit %v", c.AhExistentialDeposit)
	}
	if c.MaxRcWeight.IsZero() || c.MaxAhWeight.IsZero() {
		return xerrors.Errorf("weight limits must be non-zero, got %s and %s", c.MaxRcWeight, c.MaxAhWeight)
	}
	if c.MaxXcmSize <= 0 {
		return xerrors.Errorf("invalid message size limit %d", c.MaxXcmSize)
	}
	if c.MaxItemsPerBlock <= 0 || c.MaxXcmMsgPerBlock <= 0 {
		return xerrors.Errorf("invalid per step limits: %d items, %d messages", c.MaxItemsPerBlock, c.MaxXcmMsgPerBlock)
	}
	if c.RcWeights == nil || c.AhWeights == nil {
		return xerrors.Errorf("missing weight information")
	}
	return nil
}

func (c *Config) isPreserved(who addr.Address) bool {
	for _, a := range c.PreservedAccounts {
		if a == who {
			return true
		}
	}
	return false
}

type Logger interface {
	// This is the same logging interface provided by the Runtime
	Log(level rt.LogLevel, msg string, args ...interface{})
}

// TestLogger logs through a test's log.
type TestLogger struct {
	TB testing.TB
}

func (t TestLogger) Log(level rt.LogLevel, msg string, args ...interface{}) {
	switch level {
	case rt.DEBUG:
		t.TB.Logf("(DEBUG) "+msg, args...)
	case rt.INFO:
		t.TB.Logf("(INFO) "+msg, args...)
	case rt.WARN:
		t.TB.Logf("(WARN) "+msg, args...)
	case rt.ERROR:
		t.TB.Logf("(ERROR) "+msg, args...)
	}
}
