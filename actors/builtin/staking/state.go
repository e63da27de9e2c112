package staking

import (
	addr "github.com/filecoin-project/go-address"
	"golang.org/x/xerrors"

	"github.com/ahm-project/migrator/actors/util/adt"
)

// State gives typed access to the staking maps of a store.
type State struct {
	store adt.Store
}

func NewState(s adt.Store) *State {
	return &State{store: s}
}

func (st *State) Map(prefix string) *adt.Map {
	return adt.AsMap(st.store, prefix)
}

func (st *State) Values() *adt.Map              { return st.Map(ValuesPrefix) }
func (st *State) Invulnerables() *adt.Map       { return st.Map(InvulnerablesPrefix) }
func (st *State) Bonded() *adt.Map              { return st.Map(BondedPrefix) }
func (st *State) Ledger() *adt.Map              { return st.Map(LedgerPrefix) }
func (st *State) Payee() *adt.Map               { return st.Map(PayeePrefix) }
func (st *State) Validators() *adt.Map          { return st.Map(ValidatorsPrefix) }
func (st *State) Nominators() *adt.Map          { return st.Map(NominatorsPrefix) }
func (st *State) VirtualStakers() *adt.Map      { return st.Map(VirtualStakersPrefix) }
func (st *State) ErasRewardPoints() *adt.Map    { return st.Map(ErasRewardPointsPrefix) }
func (st *State) UnappliedSlashes() *adt.Map    { return st.Map(UnappliedSlashesPrefix) }
func (st *State) ErasStakersPaged() *adt.Map    { return st.Map(ErasStakersPagedPrefix) }
func (st *State) ErasValidatorPrefs() *adt.Map  { return st.Map(ErasValidatorPrefsPrefix) }
func (st *State) ErasStakersOverview() *adt.Map { return st.Map(ErasStakersOverviewPrefix) }

// Bond records stash as bonded by controller with the given ledger.
func (st *State) Bond(stash, controller addr.Address, ledger *StakingLedger) error {
	if err := st.Bonded().Put(adt.AddrKey(stash), &controller); err != nil {
		return xerrors.Errorf("failed to bond %v: %w", stash, err)
	}
	if err := st.Ledger().Put(adt.AddrKey(controller), ledger); err != nil {
		return xerrors.Errorf("failed to put ledger of %v: %w", controller, err)
	}
	return nil
}

func (st *State) Nominate(stash addr.Address, n *Nominations) error {
	return st.Nominators().Put(adt.AddrKey(stash), n)
}

func (st *State) Validate(stash addr.Address, prefs *ValidatorPrefs) error {
	return st.Validators().Put(adt.AddrKey(stash), prefs)
}

func (st *State) AddUnappliedSlash(era uint32, slash UnappliedSlash) error {
	var slashes UnappliedSlashes
	if _, err := st.UnappliedSlashes().Get(adt.U32Key(era), &slashes); err != nil {
		return err
	}
	slashes.Entries = append(slashes.Entries, slash)
	return st.UnappliedSlashes().Put(adt.U32Key(era), &slashes)
}

// IsEmpty reports the first staking map still holding entries, if any.
func (st *State) IsEmpty() (bool, string, error) {
	for _, prefix := range Prefixes {
		empty, err := st.Map(prefix).IsEmpty()
		if err != nil {
			return false, prefix, xerrors.Errorf("failed to check %s: %w", prefix, err)
		}
		if !empty {
			return false, prefix, nil
		}
	}
	return true, "", nil
}
