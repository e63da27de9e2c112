package ahm

import (
	"bytes"
	"context"

	cbg "github.com/whyrusleeping/cbor-gen"
	"golang.org/x/xerrors"

	"github.com/ahm-project/migrator/actors/builtin/staking"
	"github.com/ahm-project/migrator/actors/runtime"
	"github.com/ahm-project/migrator/actors/util"
	"github.com/ahm-project/migrator/actors/util/adt"
)

// Bounds of nested vectors in staking messages.
const (
	MaxUnlockingChunks  = 100
	MaxNominations      = 100
	MaxRewardPoints     = 100
	MaxUnappliedSlashes = 1000
)

type stakingTranslation func(d util.Defender, key []byte, raw []byte) ([][]byte, error)

type stakingCategory struct {
	Name   string
	Prefix string
	// Nil sends the entry verbatim.
	Translate stakingTranslation
	// Dropped entries are removed without being sent.
	Dropped bool
}

var stakingCategories = []stakingCategory{
	{Name: "Values", Prefix: staking.ValuesPrefix},
	{Name: "Invulnerables", Prefix: staking.InvulnerablesPrefix},
	{Name: "Bonded", Prefix: staking.BondedPrefix},
	{Name: "Ledger", Prefix: staking.LedgerPrefix, Translate: translateLedger},
	{Name: "Payee", Prefix: staking.PayeePrefix},
	{Name: "Validators", Prefix: staking.ValidatorsPrefix},
	{Name: "Nominators", Prefix: staking.NominatorsPrefix, Translate: translateNominations},
	{Name: "VirtualStakers", Prefix: staking.VirtualStakersPrefix},
	{Name: "ErasStakersOverview", Prefix: staking.ErasStakersOverviewPrefix},
	{Name: "ErasStakersPaged", Prefix: staking.ErasStakersPagedPrefix},
	{Name: "ClaimedRewards", Prefix: staking.ClaimedRewardsPrefix},
	{Name: "ErasValidatorPrefs", Prefix: staking.ErasValidatorPrefsPrefix},
	{Name: "ErasValidatorReward", Prefix: staking.ErasValidatorRewardPrefix},
	{Name: "ErasRewardPoints", Prefix: staking.ErasRewardPointsPrefix, Translate: translateRewardPoints},
	{Name: "ErasTotalStake", Prefix: staking.ErasTotalStakePrefix},
	{Name: "UnappliedSlashes", Prefix: staking.UnappliedSlashesPrefix, Translate: translateUnappliedSlashes},
	{Name: "BondedEras", Prefix: staking.BondedErasPrefix},
	{Name: "ValidatorSlashInEra", Prefix: staking.ValidatorSlashInEraPrefix},
	{Name: "NominatorSlashInEra", Prefix: staking.NominatorSlashInEraPrefix, Dropped: true},
	{Name: "SlashingSpans", Prefix: staking.SlashingSpansPrefix, Dropped: true},
	{Name: "SpanSlash", Prefix: staking.SpanSlashPrefix, Dropped: true},
}

// StakingStage describes a staking stage.
type StakingStage struct {
	Name    string
	Prefix  string
	Dropped bool
}

// StakingStages lists the staking stages in migration order.
func StakingStages() []StakingStage {
	out := make([]StakingStage, len(stakingCategories))
	for i, c := range stakingCategories {
		out[i] = StakingStage{Name: c.Name, Prefix: c.Prefix, Dropped: c.Dropped}
	}
	return out
}

// StakingMigrator moves the staking maps to the destination chain.
type StakingMigrator struct {
	sc *StepContext
}

func NewStakingMigrator(sc *StepContext) *StakingMigrator {
	return &StakingMigrator{sc: sc}
}

func (m *StakingMigrator) controller() *controller {
	stages := make([]stageDescriptor, len(stakingCategories))
	for i := range stakingCategories {
		idx := uint64(i)
		cat := stakingCategories[i]
		stages[i] = stageDescriptor{
			Name:   cat.Name,
			Prefix: cat.Prefix,
			Cost:   runtime.RcWeightInfo.MigrateStakingItem,
			Convert: func(sc *StepContext, key, raw []byte) ([]Record, error) {
				if err := adt.AsMap(sc.Store, cat.Prefix).Delete(adt.RawKey(key)); err != nil {
					return nil, err
				}
				msgs, err := translateStaking(sc.defender(), idx, key, raw)
				if err != nil {
					return nil, err
				}
				recs := make([]Record, len(msgs))
				for i := range msgs {
					recs[i] = msgs[i]
				}
				return recs, nil
			},
		}
	}
	return &controller{
		Name:   "staking",
		Call:   CallReceiveStakingMessages,
		Stages: stages,
		WeightOf: func(w runtime.AhWeightInfo) WeightOfFunc {
			return func(n uint32, _ Record) runtime.Weight {
				return w.ReceiveStakingMessages(n)
			}
		},
	}
}

// MigrateMany moves staking entries after last until a budget is exhausted or every map is
// empty, in which case it returns nil.
func (m *StakingMigrator) MigrateMany(ctx context.Context, last *Cursor, meter *runtime.WeightMeter) (*Cursor, error) {
	return migrateMany(ctx, m.sc, m.controller(), last, meter)
}

// translateStaking converts the entry of a staking stage into the messages carrying it.
func translateStaking(d util.Defender, stage uint64, key, raw []byte) ([]*StakingMessage, error) {
	if stage >= uint64(len(stakingCategories)) {
		return nil, xerrors.Errorf("staking stage %d: %w", stage, ErrUnknownStage)
	}
	cat := stakingCategories[stage]
	if cat.Dropped {
		return nil, nil
	}
	values := [][]byte{raw}
	if cat.Translate != nil {
		var err error
		if values, err = cat.Translate(d, key, raw); err != nil {
			return nil, xerrors.Errorf("failed to translate %s entry %x: %w", cat.Name, key, err)
		}
	}
	out := make([]*StakingMessage, len(values))
	for i, v := range values {
		out[i] = &StakingMessage{Stage: stage, Key: append([]byte(nil), key...), Value: v}
	}
	return out, nil
}

func encodeValue(v cbg.CBORMarshaler) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := v.MarshalCBOR(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func translateLedger(d util.Defender, key, raw []byte) ([][]byte, error) {
	var ledger staking.StakingLedger
	if err := ledger.UnmarshalCBOR(bytes.NewReader(raw)); err != nil {
		return nil, err
	}
	if !d.Check(len(ledger.Unlocking) <= MaxUnlockingChunks, "ledger %x has %d unlocking chunks", key, len(ledger.Unlocking)) {
		ledger.Unlocking = ledger.Unlocking[:MaxUnlockingChunks]
	}
	v, err := encodeValue(&ledger)
	return [][]byte{v}, err
}

func translateNominations(d util.Defender, key, raw []byte) ([][]byte, error) {
	var n staking.Nominations
	if err := n.UnmarshalCBOR(bytes.NewReader(raw)); err != nil {
		return nil, err
	}
	if !d.Check(len(n.Targets) <= MaxNominations, "nominator %x has %d targets", key, len(n.Targets)) {
		n.Targets = n.Targets[:MaxNominations]
	}
	v, err := encodeValue(&n)
	return [][]byte{v}, err
}

func translateRewardPoints(d util.Defender, key, raw []byte) ([][]byte, error) {
	var points staking.EraRewardPoints
	if err := points.UnmarshalCBOR(bytes.NewReader(raw)); err != nil {
		return nil, err
	}
	if !d.Check(len(points.Individual) <= MaxRewardPoints, "era %x has %d rewarded validators", key, len(points.Individual)) {
		points.Individual = points.Individual[:MaxRewardPoints]
	}
	v, err := encodeValue(&points)
	return [][]byte{v}, err
}

// translateUnappliedSlashes sends each slash of an era in a message of its own.
func translateUnappliedSlashes(d util.Defender, key, raw []byte) ([][]byte, error) {
	var slashes staking.UnappliedSlashes
	if err := slashes.UnmarshalCBOR(bytes.NewReader(raw)); err != nil {
		return nil, err
	}
	entries := slashes.Entries
	if !d.Check(len(entries) <= MaxUnappliedSlashes, "era %x has %d unapplied slashes", key, len(entries)) {
		entries = entries[:MaxUnappliedSlashes]
	}
	out := make([][]byte, 0, len(entries))
	for i := range entries {
		v, err := encodeValue(&entries[i])
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
