package ahm

import (
	"golang.org/x/xerrors"

	"github.com/ahm-project/migrator/actors/builtin/balances"
)

// Destination chain hold reasons.
const (
	HoldPreimage = uint64(iota)
	HoldStaking
	HoldStateTrieMigration
	HoldDelegatedStaking
	HoldSession
	HoldXcm
)

// Destination chain freeze reasons.
const (
	FreezeNominationPools = uint64(iota)
)

var portableHolds = map[string]uint64{
	"preimage":             HoldPreimage,
	"staking":              HoldStaking,
	"state_trie_migration": HoldStateTrieMigration,
	"delegated_staking":    HoldDelegatedStaking,
	"session":              HoldSession,
	"xcm":                  HoldXcm,
}

var portableFreezes = map[string]uint64{
	"nomination_pools": FreezeNominationPools,
}

var ErrUnknownReason = xerrors.New("unknown reason")

func portable(table map[string]uint64, kind string, entries []balances.IDAmount) ([]PortableAmount, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	out := make([]PortableAmount, 0, len(entries))
	for _, e := range entries {
		reason, ok := table[e.ID]
		if !ok {
			return nil, xerrors.Errorf("%s %q: %w", kind, e.ID, ErrUnknownReason)
		}
		out = append(out, PortableAmount{Reason: reason, Amount: e.Amount})
	}
	return out, nil
}

// PortableHolds translates source chain holds to destination chain reasons.
func PortableHolds(holds []balances.IDAmount) ([]PortableAmount, error) {
	return portable(portableHolds, "hold", holds)
}

// PortableFreezes translates source chain freezes to destination chain reasons.
func PortableFreezes(freezes []balances.IDAmount) ([]PortableAmount, error) {
	return portable(portableFreezes, "freeze", freezes)
}
