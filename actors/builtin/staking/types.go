package staking

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
)

// Marker is the empty value of set-like maps (invulnerables, virtual stakers).
type Marker struct{}

type UnlockChunk struct {
	Value abi.TokenAmount
	Era   uint64
}

// StakingLedger is keyed by controller.
type StakingLedger struct {
	Stash     addr.Address
	Total     abi.TokenAmount
	Active    abi.TokenAmount
	Unlocking []UnlockChunk
}

// UnlockingTotal sums the value of every unlocking chunk.
func (l *StakingLedger) UnlockingTotal() abi.TokenAmount {
	sum := big.Zero()
	for _, c := range l.Unlocking {
		sum = big.Add(sum, c.Value)
	}
	return sum
}

type Nominations struct {
	Targets     []addr.Address
	SubmittedIn uint64
	Suppressed  bool
}

type ValidatorPrefs struct {
	// Commission in parts per billion.
	Commission uint64
	Blocked    bool
}

type RewardPoint struct {
	Validator addr.Address
	Points    uint64
}

type EraRewardPoints struct {
	Total      uint64
	Individual []RewardPoint
}

type SlashOther struct {
	Who    addr.Address
	Amount abi.TokenAmount
}

type UnappliedSlash struct {
	Validator addr.Address
	Own       abi.TokenAmount
	Others    []SlashOther
	Reporters []addr.Address
	Payout    abi.TokenAmount
}

// UnappliedSlashes holds every slash deferred to one era.
type UnappliedSlashes struct {
	Entries []UnappliedSlash
}
