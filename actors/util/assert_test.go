package util_test

import (
	"fmt"
	"testing"

	"github.com/filecoin-project/go-state-types/rt"
	"github.com/stretchr/testify/assert"

	"github.com/ahm-project/migrator/actors/util"
)

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) Log(level rt.LogLevel, msg string, args ...interface{}) {
	r.lines = append(r.lines, fmt.Sprintf("%d "+msg, append([]interface{}{level}, args...)...))
}

func TestDefender(t *testing.T) {
	t.Run("hard mode panics", func(t *testing.T) {
		d := util.Defender{Mode: util.DefensiveHard, Log: &recordingLogger{}}
		assert.True(t, d.Check(true, "fine"))
		assert.Panics(t, func() { d.Check(false, "broken %d", 1) })
	})

	t.Run("soft mode logs and continues", func(t *testing.T) {
		log := &recordingLogger{}
		d := util.Defender{Mode: util.DefensiveSoft, Log: log}
		assert.False(t, d.Check(false, "broken %d", 2))
		assert.Len(t, log.lines, 1)
		assert.Contains(t, log.lines[0], "broken 2")
	})

	t.Run("soft mode without a logger still halts", func(t *testing.T) {
		d := util.Defender{Mode: util.DefensiveSoft}
		assert.Panics(t, func() { d.Check(false, "nowhere to log") })
	})
}

func TestAssertMsg(t *testing.T) {
	assert.NotPanics(t, func() { util.AssertMsg(true, "ok") })
	assert.Panics(t, func() { util.AssertMsg(false, "bad %s", "state") })
	assert.Panics(t, func() { util.AssertNoError(fmt.Errorf("boom")) })
}
