package ahm

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/rt"
	"golang.org/x/xerrors"

	"github.com/ahm-project/migrator/actors/builtin/paras"
	"github.com/ahm-project/migrator/actors/util/adt"
)

const DispositionsPrefix = "ahm/disposition/"

func Dispositions(s adt.Store) *adt.Map {
	return adt.AsMap(s, DispositionsPrefix)
}

// LoadDisposition returns the stored disposition of an account, Migrate if there is none.
func LoadDisposition(s adt.Store, who addr.Address) (AccountDisposition, error) {
	var d AccountDisposition
	found, err := Dispositions(s).Get(adt.AddrKey(who), &d)
	if err != nil {
		return AccountDisposition{}, xerrors.Errorf("failed to load disposition of %v: %w", who, err)
	}
	if !found {
		return MigrateDisposition(), nil
	}
	return d, nil
}

// DeriveDispositions computes the disposition of every account that does not migrate entirely.
// Configured system accounts are preserved. Parachain managers keep the existential deposit and
// their registration deposits.
func DeriveDispositions(s adt.Store, cfg *Config) (map[addr.Address]AccountDisposition, error) {
	out := map[addr.Address]AccountDisposition{}
	deposits := map[addr.Address]abi.TokenAmount{}
	if err := paras.NewState(s).ForEach(func(id uint32, info *paras.ParaInfo) error {
		prev, ok := deposits[info.Manager]
		if !ok {
			prev = big.Zero()
		}
		deposits[info.Manager] = big.Add(prev, info.Deposit)
		return nil
	}); err != nil {
		return nil, xerrors.Errorf("failed to load parachain managers: %w", err)
	}
	for manager, deposit := range deposits {
		out[manager] = PartDisposition(cfg.RcExistentialDeposit, deposit, 1)
	}
	for _, who := range cfg.PreservedAccounts {
		out[who] = PreserveDisposition()
	}
	return out, nil
}

// ObtainRcAccounts stores the disposition of every account that does not migrate entirely.
func ObtainRcAccounts(s adt.Store, cfg *Config, log Logger) error {
	dispositions, err := DeriveDispositions(s, cfg)
	if err != nil {
		return err
	}
	m := Dispositions(s)
	for who, d := range dispositions {
		d := d
		if err := m.Put(adt.AddrKey(who), &d); err != nil {
			return xerrors.Errorf("failed to store disposition of %v: %w", who, err)
		}
		log.Log(rt.DEBUG, "account %v: %v", who, d)
	}
	log.Log(rt.INFO, "stored %d account dispositions", len(dispositions))
	return nil
}
