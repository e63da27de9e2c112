package staking

import (
	"encoding/binary"

	addr "github.com/filecoin-project/go-address"
	"golang.org/x/xerrors"
)

// Storage prefixes of the staking maps, in migration order.
const (
	ValuesPrefix              = "staking/values/"
	InvulnerablesPrefix       = "staking/invulnerables/"
	BondedPrefix              = "staking/bonded/"
	LedgerPrefix              = "staking/ledger/"
	PayeePrefix               = "staking/payee/"
	ValidatorsPrefix          = "staking/validators/"
	NominatorsPrefix          = "staking/nominators/"
	VirtualStakersPrefix      = "staking/virtual/"
	ErasStakersOverviewPrefix = "staking/eras/overview/"
	ErasStakersPagedPrefix    = "staking/eras/paged/"
	ClaimedRewardsPrefix      = "staking/eras/claimed/"
	ErasValidatorPrefsPrefix  = "staking/eras/prefs/"
	ErasValidatorRewardPrefix = "staking/eras/reward/"
	ErasRewardPointsPrefix    = "staking/eras/points/"
	ErasTotalStakePrefix      = "staking/eras/total/"
	UnappliedSlashesPrefix    = "staking/slashes/unapplied/"
	BondedErasPrefix          = "staking/bonded_eras/"
	ValidatorSlashInEraPrefix = "staking/slashes/validator/"
	NominatorSlashInEraPrefix = "staking/slashes/nominator/"
	SlashingSpansPrefix       = "staking/slashes/spans/"
	SpanSlashPrefix           = "staking/slashes/span/"
)

// Names of the single values stored under ValuesPrefix.
const (
	ValueValidatorCount        = "validator_count"
	ValueMinValidatorCount     = "min_validator_count"
	ValueMinNominatorBond      = "min_nominator_bond"
	ValueMinValidatorBond      = "min_validator_bond"
	ValueMinActiveStake        = "min_active_stake"
	ValueMinCommission         = "min_commission"
	ValueMaxValidatorsCount    = "max_validators_count"
	ValueMaxNominatorsCount    = "max_nominators_count"
	ValueCurrentEra            = "current_era"
	ValueActiveEra             = "active_era"
	ValueForceEra              = "force_era"
	ValueSlashRewardFraction   = "slash_reward_fraction"
	ValueCanceledSlashPayout   = "canceled_slash_payout"
	ValueCurrentPlannedSession = "current_planned_session"
	ValueChillThreshold        = "chill_threshold"
)

// Prefixes lists every staking map prefix.
var Prefixes = []string{
	ValuesPrefix,
	InvulnerablesPrefix,
	BondedPrefix,
	LedgerPrefix,
	PayeePrefix,
	ValidatorsPrefix,
	NominatorsPrefix,
	VirtualStakersPrefix,
	ErasStakersOverviewPrefix,
	ErasStakersPagedPrefix,
	ClaimedRewardsPrefix,
	ErasValidatorPrefsPrefix,
	ErasValidatorRewardPrefix,
	ErasRewardPointsPrefix,
	ErasTotalStakePrefix,
	UnappliedSlashesPrefix,
	BondedErasPrefix,
	ValidatorSlashInEraPrefix,
	NominatorSlashInEraPrefix,
	SlashingSpansPrefix,
	SpanSlashPrefix,
}

func putAddr(buf []byte, a addr.Address) []byte {
	b := a.Bytes()
	buf = append(buf, byte(len(b)))
	return append(buf, b...)
}

func putU32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

func readAddr(k []byte) (addr.Address, []byte, error) {
	if len(k) < 1 || len(k) < 1+int(k[0]) {
		return addr.Undef, nil, xerrors.Errorf("truncated address in key %x", k)
	}
	n := int(k[0])
	a, err := addr.NewFromBytes(k[1 : 1+n])
	if err != nil {
		return addr.Undef, nil, xerrors.Errorf("invalid address in key %x: %w", k, err)
	}
	return a, k[1+n:], nil
}

func readU32(k []byte) (uint32, []byte, error) {
	if len(k) < 4 {
		return 0, nil, xerrors.Errorf("truncated u32 in key %x", k)
	}
	return binary.BigEndian.Uint32(k[:4]), k[4:], nil
}

// EraAddrKey keys per-era, per-validator entries.
// The era is encoded big-endian first so that entries of one era are contiguous and eras sort numerically.
type EraAddrKey struct {
	Era  uint32
	Addr addr.Address
}

func (k EraAddrKey) Key() string {
	return string(putAddr(putU32(nil, k.Era), k.Addr))
}

func ParseEraAddrKey(k []byte) (EraAddrKey, error) {
	era, rest, err := readU32(k)
	if err != nil {
		return EraAddrKey{}, err
	}
	a, rest, err := readAddr(rest)
	if err != nil {
		return EraAddrKey{}, err
	}
	if len(rest) != 0 {
		return EraAddrKey{}, xerrors.Errorf("trailing bytes in era key %x", k)
	}
	return EraAddrKey{Era: era, Addr: a}, nil
}

// EraAddrPageKey keys paged exposures.
type EraAddrPageKey struct {
	Era  uint32
	Addr addr.Address
	Page uint32
}

func (k EraAddrPageKey) Key() string {
	return string(putU32(putAddr(putU32(nil, k.Era), k.Addr), k.Page))
}

func ParseEraAddrPageKey(k []byte) (EraAddrPageKey, error) {
	era, rest, err := readU32(k)
	if err != nil {
		return EraAddrPageKey{}, err
	}
	a, rest, err := readAddr(rest)
	if err != nil {
		return EraAddrPageKey{}, err
	}
	page, rest, err := readU32(rest)
	if err != nil {
		return EraAddrPageKey{}, err
	}
	if len(rest) != 0 {
		return EraAddrPageKey{}, xerrors.Errorf("trailing bytes in page key %x", k)
	}
	return EraAddrPageKey{Era: era, Addr: a, Page: page}, nil
}

// AddrSpanKey keys per-stash slashing spans.
type AddrSpanKey struct {
	Addr addr.Address
	Span uint32
}

func (k AddrSpanKey) Key() string {
	return string(putU32(putAddr(nil, k.Addr), k.Span))
}

func ParseAddrSpanKey(k []byte) (AddrSpanKey, error) {
	a, rest, err := readAddr(k)
	if err != nil {
		return AddrSpanKey{}, err
	}
	span, rest, err := readU32(rest)
	if err != nil {
		return AddrSpanKey{}, err
	}
	if len(rest) != 0 {
		return AddrSpanKey{}, xerrors.Errorf("trailing bytes in span key %x", k)
	}
	return AddrSpanKey{Addr: a, Span: span}, nil
}
