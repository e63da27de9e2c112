package paras

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"golang.org/x/xerrors"

	"github.com/ahm-project/migrator/actors/util/adt"
)

const ParasPrefix = "registrar/paras/"

// ParaInfo is the registrar entry of a parachain: the account managing it and the deposit
// reserved from that account for the registration.
type ParaInfo struct {
	Manager addr.Address
	Deposit abi.TokenAmount
	Locked  bool
}

type State struct {
	store adt.Store
}

func NewState(s adt.Store) *State {
	return &State{store: s}
}

func (st *State) Paras() *adt.Map {
	return adt.AsMap(st.store, ParasPrefix)
}

func (st *State) Register(id uint32, info *ParaInfo) error {
	return st.Paras().Put(adt.U32Key(id), info)
}

func (st *State) Get(id uint32) (*ParaInfo, bool, error) {
	var info ParaInfo
	found, err := st.Paras().Get(adt.U32Key(id), &info)
	if err != nil || !found {
		return nil, found, err
	}
	return &info, true, nil
}

// ForEach visits every registered parachain in id order.
func (st *State) ForEach(fn func(id uint32, info *ParaInfo) error) error {
	var info ParaInfo
	return st.Paras().ForEach(&info, func(key []byte) error {
		id, err := adt.ParseU32Key(key)
		if err != nil {
			return xerrors.Errorf("invalid para key %x: %w", key, err)
		}
		return fn(id, &info)
	})
}
