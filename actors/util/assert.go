package util

import (
	"fmt"

	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/filecoin-project/go-state-types/rt"
)

type abort struct {
	code exitcode.ExitCode
	msg  string
}

func (a abort) String() string {
	return fmt.Sprintf("abort(%d): %s", a.code, a.msg)
}

// Indicates a condition that should never happen. If encountered, execution will halt and the
// resulting state is undefined.
func AssertMsg(b bool, format string, a ...interface{}) {
	if !b {
		panic(abort{exitcode.ErrIllegalState, fmt.Sprintf(format, a...)})
	}
}

func AssertNoError(e error) {
	if e != nil {
		panic(abort{exitcode.ErrIllegalState, e.Error()})
	}
}

// DefensiveMode selects how a Defender reacts to a failed check.
type DefensiveMode int

const (
	// DefensiveHard halts execution. Used in tests.
	DefensiveHard DefensiveMode = iota
	// DefensiveSoft logs the failure and continues.
	DefensiveSoft
)

func (m DefensiveMode) String() string {
	switch m {
	case DefensiveHard:
		return "hard"
	case DefensiveSoft:
		return "soft"
	default:
		return fmt.Sprintf("DefensiveMode(%d)", int(m))
	}
}

type Logger interface {
	Log(level rt.LogLevel, msg string, args ...interface{})
}

// Defender checks conditions that are expected to hold but that production code tolerates.
type Defender struct {
	Mode DefensiveMode
	Log  Logger
}

// Check returns b. A false b panics in hard mode and is logged in soft mode.
func (d Defender) Check(b bool, format string, a ...interface{}) bool {
	if b {
		return true
	}
	if d.Mode == DefensiveHard || d.Log == nil {
		AssertMsg(false, "defensive check failed: "+format, a...)
	}
	d.Log.Log(rt.ERROR, "defensive check failed: "+format, a...)
	return false
}
