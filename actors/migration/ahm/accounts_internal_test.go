package ahm

import (
	"testing"

	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/stretchr/testify/assert"
)

func TestPartialRelease(t *testing.T) {
	ed := big.NewInt(100)
	for _, tc := range []struct {
		name    string
		free    int64
		hold    int64
		partial bool
		amount  int64
	}{
		{name: "free at ED keeps the whole hold reserved", free: 100, hold: 30, partial: true, amount: 0},
		{name: "free below ED is topped up", free: 60, hold: 50, partial: true, amount: 40},
		{name: "hold smaller than shortfall is released", free: 60, hold: 40, partial: false},
		{name: "free stays above ED", free: 300, hold: 200, partial: false},
		{name: "empty free balance", free: 0, hold: 150, partial: true, amount: 100},
	} {
		t.Run(tc.name, func(t *testing.T) {
			amount, partial := partialRelease(big.NewInt(tc.free), big.NewInt(tc.hold), ed)
			assert.Equal(t, tc.partial, partial)
			if tc.partial {
				assert.Equal(t, big.NewInt(tc.amount), amount)
			}
		})
	}
}

func TestSatSub(t *testing.T) {
	assert.Equal(t, big.NewInt(3), satSub(big.NewInt(5), big.NewInt(2)))
	assert.Equal(t, big.Zero(), satSub(big.NewInt(2), big.NewInt(5)))
	assert.Equal(t, abi.NewTokenAmount(0), satSub(big.Zero(), big.Zero()))
}
