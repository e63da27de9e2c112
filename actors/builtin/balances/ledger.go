package balances

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"golang.org/x/xerrors"

	"github.com/ahm-project/migrator/actors/util/adt"
)

// Storage prefixes of the balances ledger.
const (
	AccountsPrefix   = "balances/account/"
	HoldsPrefix      = "balances/holds/"
	FreezesPrefix    = "balances/freezes/"
	LocksPrefix      = "balances/locks/"
	TotalIssuanceKey = "balances/issuance"
)

var (
	ErrAccountNotFound     = xerrors.New("account not found")
	ErrNoSuchHold          = xerrors.New("no such hold")
	ErrNoSuchFreeze        = xerrors.New("no such freeze")
	ErrInsufficientBalance = xerrors.New("insufficient balance")
	ErrFundsUnavailable    = xerrors.New("funds unavailable")
)

// Ledger is the account and currency ledger of the source chain.
type Ledger struct {
	store adt.Store
	ed    abi.TokenAmount
}

func NewLedger(s adt.Store, existentialDeposit abi.TokenAmount) *Ledger {
	return &Ledger{store: s, ed: existentialDeposit}
}

func (l *Ledger) Accounts() *adt.Map {
	return adt.AsMap(l.store, AccountsPrefix)
}

func (l *Ledger) holds() *adt.Map {
	return adt.AsMap(l.store, HoldsPrefix)
}

func (l *Ledger) freezes() *adt.Map {
	return adt.AsMap(l.store, FreezesPrefix)
}

func (l *Ledger) locks() *adt.Map {
	return adt.AsMap(l.store, LocksPrefix)
}

// MinimumBalance is the existential deposit.
func (l *Ledger) MinimumBalance() abi.TokenAmount {
	return l.ed
}

func (l *Ledger) Account(who addr.Address) (AccountInfo, bool, error) {
	var info AccountInfo
	found, err := l.Accounts().Get(adt.AddrKey(who), &info)
	if err != nil {
		return AccountInfo{}, false, xerrors.Errorf("failed to load account %v: %w", who, err)
	}
	if !found {
		return emptyAccount(), false, nil
	}
	return info, true, nil
}

func (l *Ledger) mustAccount(who addr.Address) (AccountInfo, error) {
	info, found, err := l.Account(who)
	if err != nil {
		return AccountInfo{}, err
	}
	if !found {
		return AccountInfo{}, xerrors.Errorf("%v: %w", who, ErrAccountNotFound)
	}
	return info, nil
}

func (l *Ledger) PutAccount(who addr.Address, info AccountInfo) error {
	return l.Accounts().Put(adt.AddrKey(who), &info)
}

func emptyAccount() AccountInfo {
	return AccountInfo{Free: big.Zero(), Reserved: big.Zero(), Frozen: big.Zero()}
}

// Balance is the free balance of an account.
func (l *Ledger) Balance(who addr.Address) (abi.TokenAmount, error) {
	info, _, err := l.Account(who)
	return info.Free, err
}

func (l *Ledger) TotalBalance(who addr.Address) (abi.TokenAmount, error) {
	info, _, err := l.Account(who)
	return info.Total(), err
}

func (l *Ledger) ReservedBalance(who addr.Address) (abi.TokenAmount, error) {
	info, _, err := l.Account(who)
	return info.Reserved, err
}

func (l *Ledger) TotalIssuance() (abi.TokenAmount, error) {
	issuance := big.Zero()
	if _, err := adt.AsValue(l.store, TotalIssuanceKey).Get(&issuance); err != nil {
		return big.Zero(), xerrors.Errorf("failed to load total issuance: %w", err)
	}
	return issuance, nil
}

func (l *Ledger) setTotalIssuance(v abi.TokenAmount) error {
	return adt.AsValue(l.store, TotalIssuanceKey).Put(&v)
}

func (l *Ledger) Holds(who addr.Address) ([]IDAmount, error) {
	var out IDAmounts
	if _, err := l.holds().Get(adt.AddrKey(who), &out); err != nil {
		return nil, err
	}
	return out.Entries, nil
}

func (l *Ledger) Freezes(who addr.Address) ([]IDAmount, error) {
	var out IDAmounts
	if _, err := l.freezes().Get(adt.AddrKey(who), &out); err != nil {
		return nil, err
	}
	return out.Entries, nil
}

func (l *Ledger) Locks(who addr.Address) ([]BalanceLock, error) {
	var out Locks
	if _, err := l.locks().Get(adt.AddrKey(who), &out); err != nil {
		return nil, err
	}
	return out.Entries, nil
}

func (l *Ledger) putHolds(who addr.Address, entries []IDAmount) error {
	if len(entries) == 0 {
		return l.holds().Delete(adt.AddrKey(who))
	}
	return l.holds().Put(adt.AddrKey(who), &IDAmounts{Entries: entries})
}

func (l *Ledger) putFreezes(who addr.Address, entries []IDAmount) error {
	if len(entries) == 0 {
		return l.freezes().Delete(adt.AddrKey(who))
	}
	return l.freezes().Put(adt.AddrKey(who), &IDAmounts{Entries: entries})
}

func (l *Ledger) putLocks(who addr.Address, entries []BalanceLock) error {
	if len(entries) == 0 {
		return l.locks().Delete(adt.AddrKey(who))
	}
	return l.locks().Put(adt.AddrKey(who), &Locks{Entries: entries})
}

// Recomputes the frozen floor as the largest lock or freeze.
func (l *Ledger) updateFrozen(who addr.Address, info *AccountInfo) error {
	freezes, err := l.Freezes(who)
	if err != nil {
		return err
	}
	locks, err := l.Locks(who)
	if err != nil {
		return err
	}
	frozen := MaxAmount(freezes)
	for _, lk := range locks {
		frozen = big.Max(frozen, lk.Amount)
	}
	info.Frozen = frozen
	return nil
}

// Mint credits free balance, creating the account if needed, and increases total issuance.
func (l *Ledger) Mint(who addr.Address, amount abi.TokenAmount) error {
	info, found, err := l.Account(who)
	if err != nil {
		return err
	}
	if !found {
		info.Providers = 1
	}
	info.Free = big.Add(info.Free, amount)
	issuance, err := l.TotalIssuance()
	if err != nil {
		return err
	}
	if err := l.setTotalIssuance(big.Add(issuance, amount)); err != nil {
		return err
	}
	return l.PutAccount(who, info)
}

// Reserve moves free balance into the unnamed reserve.
func (l *Ledger) Reserve(who addr.Address, amount abi.TokenAmount) error {
	info, err := l.mustAccount(who)
	if err != nil {
		return err
	}
	if info.Free.LessThan(amount) {
		return xerrors.Errorf("reserve %v from %v with free %v: %w", amount, who, info.Free, ErrInsufficientBalance)
	}
	info.Free = big.Sub(info.Free, amount)
	info.Reserved = big.Add(info.Reserved, amount)
	return l.PutAccount(who, info)
}

// Hold moves free balance into a named hold.
func (l *Ledger) Hold(who addr.Address, id string, amount abi.TokenAmount) error {
	if err := l.Reserve(who, amount); err != nil {
		return err
	}
	holds, err := l.Holds(who)
	if err != nil {
		return err
	}
	for i := range holds {
		if holds[i].ID == id {
			holds[i].Amount = big.Add(holds[i].Amount, amount)
			return l.putHolds(who, holds)
		}
	}
	return l.putHolds(who, append(holds, IDAmount{ID: id, Amount: amount}))
}

// SetFreeze sets the freeze with the given id, replacing any previous amount.
func (l *Ledger) SetFreeze(who addr.Address, id string, amount abi.TokenAmount) error {
	info, err := l.mustAccount(who)
	if err != nil {
		return err
	}
	freezes, err := l.Freezes(who)
	if err != nil {
		return err
	}
	replaced := false
	for i := range freezes {
		if freezes[i].ID == id {
			freezes[i].Amount = amount
			replaced = true
		}
	}
	if !replaced {
		freezes = append(freezes, IDAmount{ID: id, Amount: amount})
	}
	if err := l.putFreezes(who, freezes); err != nil {
		return err
	}
	if err := l.updateFrozen(who, &info); err != nil {
		return err
	}
	return l.PutAccount(who, info)
}

// SetLock sets the lock with the given id, replacing any previous lock.
func (l *Ledger) SetLock(who addr.Address, id string, amount abi.TokenAmount, reasons uint64) error {
	info, err := l.mustAccount(who)
	if err != nil {
		return err
	}
	locks, err := l.Locks(who)
	if err != nil {
		return err
	}
	replaced := false
	for i := range locks {
		if locks[i].ID == id {
			locks[i] = BalanceLock{ID: id, Amount: amount, Reasons: reasons}
			replaced = true
		}
	}
	if !replaced {
		locks = append(locks, BalanceLock{ID: id, Amount: amount, Reasons: reasons})
	}
	if err := l.putLocks(who, locks); err != nil {
		return err
	}
	if err := l.updateFrozen(who, &info); err != nil {
		return err
	}
	return l.PutAccount(who, info)
}

// Thaw removes a freeze.
func (l *Ledger) Thaw(who addr.Address, id string) error {
	info, err := l.mustAccount(who)
	if err != nil {
		return err
	}
	freezes, err := l.Freezes(who)
	if err != nil {
		return err
	}
	kept := freezes[:0]
	for _, f := range freezes {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	if len(kept) == len(freezes) {
		return xerrors.Errorf("thaw %q on %v: %w", id, who, ErrNoSuchFreeze)
	}
	if err := l.putFreezes(who, kept); err != nil {
		return err
	}
	if err := l.updateFrozen(who, &info); err != nil {
		return err
	}
	return l.PutAccount(who, info)
}

// RemoveLock removes a lock. Removing an absent lock is a no-op.
func (l *Ledger) RemoveLock(who addr.Address, id string) error {
	info, err := l.mustAccount(who)
	if err != nil {
		return err
	}
	locks, err := l.Locks(who)
	if err != nil {
		return err
	}
	kept := locks[:0]
	for _, lk := range locks {
		if lk.ID != id {
			kept = append(kept, lk)
		}
	}
	if err := l.putLocks(who, kept); err != nil {
		return err
	}
	if err := l.updateFrozen(who, &info); err != nil {
		return err
	}
	return l.PutAccount(who, info)
}

// Release returns up to amount of a hold to free balance.
func (l *Ledger) Release(who addr.Address, id string, amount abi.TokenAmount, precision Precision) (abi.TokenAmount, error) {
	return l.dropHold(who, id, amount, precision, true)
}

// ReleaseToReserve removes up to amount from a hold while keeping the funds reserved.
// The released funds become part of the unnamed reserve.
func (l *Ledger) ReleaseToReserve(who addr.Address, id string, amount abi.TokenAmount) (abi.TokenAmount, error) {
	return l.dropHold(who, id, amount, Exact, false)
}

func (l *Ledger) dropHold(who addr.Address, id string, amount abi.TokenAmount, precision Precision, toFree bool) (abi.TokenAmount, error) {
	info, err := l.mustAccount(who)
	if err != nil {
		return big.Zero(), err
	}
	holds, err := l.Holds(who)
	if err != nil {
		return big.Zero(), err
	}
	idx := -1
	for i := range holds {
		if holds[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return big.Zero(), xerrors.Errorf("release %q on %v: %w", id, who, ErrNoSuchHold)
	}
	actual := amount
	if holds[idx].Amount.LessThan(amount) {
		if precision == Exact {
			return big.Zero(), xerrors.Errorf("release %v of hold %q holding %v on %v: %w", amount, id, holds[idx].Amount, who, ErrInsufficientBalance)
		}
		actual = holds[idx].Amount
	}
	if info.Reserved.LessThan(actual) {
		return big.Zero(), xerrors.Errorf("release %v of hold %q on %v with reserve %v: %w", actual, id, who, info.Reserved, ErrFundsUnavailable)
	}
	holds[idx].Amount = big.Sub(holds[idx].Amount, actual)
	if holds[idx].Amount.IsZero() {
		holds = append(holds[:idx], holds[idx+1:]...)
	}
	if err := l.putHolds(who, holds); err != nil {
		return big.Zero(), err
	}
	if toFree {
		info.Reserved = big.Sub(info.Reserved, actual)
		info.Free = big.Add(info.Free, actual)
		if err := l.PutAccount(who, info); err != nil {
			return big.Zero(), err
		}
	}
	return actual, nil
}

// Unreserve moves up to amount of the unnamed reserve back to free balance, returning the
// amount that could not be unreserved. Funds under a hold are not touched.
func (l *Ledger) Unreserve(who addr.Address, amount abi.TokenAmount) (abi.TokenAmount, error) {
	info, found, err := l.Account(who)
	if err != nil {
		return amount, err
	}
	if !found || amount.IsZero() {
		return amount, nil
	}
	holds, err := l.Holds(who)
	if err != nil {
		return amount, err
	}
	unnamed := big.Max(big.Zero(), big.Sub(info.Reserved, SumAmounts(holds)))
	actual := big.Min(amount, unnamed)
	info.Reserved = big.Sub(info.Reserved, actual)
	info.Free = big.Add(info.Free, actual)
	if err := l.PutAccount(who, info); err != nil {
		return amount, err
	}
	return big.Sub(amount, actual), nil
}

// SetRefCounts overwrites the reference counters of an account.
func (l *Ledger) SetRefCounts(who addr.Address, consumers, providers uint64) error {
	info, err := l.mustAccount(who)
	if err != nil {
		return err
	}
	info.Consumers = consumers
	info.Providers = providers
	return l.PutAccount(who, info)
}

// ReducibleBalance is the amount that may be withdrawn from an account.
// Reserved funds count as withdrawable since BurnFrom draws from free balance first and then from
// the reserve. Polite withdrawals respect the frozen floor; an account that must stay alive (or
// that still has consumers) keeps the existential deposit. An account below the existential
// deposit that still provides for itself cannot be withdrawn from at all.
func (l *Ledger) ReducibleBalance(who addr.Address, keep Preservation, force Fortitude) (abi.TokenAmount, error) {
	info, found, err := l.Account(who)
	if err != nil || !found {
		return big.Zero(), err
	}
	total := info.Total()
	if keep == Expendable && info.Providers > 0 && total.LessThan(l.ed) {
		return big.Zero(), nil
	}
	untouchable := big.Zero()
	if force == Polite {
		untouchable = info.Frozen
	}
	if keep != Expendable || info.Consumers > 0 {
		untouchable = big.Max(untouchable, l.ed)
	}
	return big.Max(big.Zero(), big.Sub(total, untouchable)), nil
}

// BurnFrom destroys amount from an account, reducing total issuance. An expendable account left
// with nothing is reaped along with its holds, freezes and locks.
func (l *Ledger) BurnFrom(who addr.Address, amount abi.TokenAmount, keep Preservation, precision Precision, force Fortitude) (abi.TokenAmount, error) {
	info, err := l.mustAccount(who)
	if err != nil {
		return big.Zero(), err
	}
	reducible, err := l.ReducibleBalance(who, keep, force)
	if err != nil {
		return big.Zero(), err
	}
	if reducible.LessThan(amount) {
		if precision == Exact {
			return big.Zero(), xerrors.Errorf("burn %v from %v with reducible %v: %w", amount, who, reducible, ErrFundsUnavailable)
		}
		amount = reducible
	}
	holds, err := l.Holds(who)
	if err != nil {
		return big.Zero(), err
	}
	fromFree := big.Min(info.Free, amount)
	fromReserve := big.Sub(amount, fromFree)
	if big.Sub(info.Reserved, fromReserve).LessThan(SumAmounts(holds)) {
		return big.Zero(), xerrors.Errorf("burn %v from %v would consume held funds: %w", amount, who, ErrFundsUnavailable)
	}
	info.Free = big.Sub(info.Free, fromFree)
	info.Reserved = big.Sub(info.Reserved, fromReserve)

	issuance, err := l.TotalIssuance()
	if err != nil {
		return big.Zero(), err
	}
	if err := l.setTotalIssuance(big.Sub(issuance, amount)); err != nil {
		return big.Zero(), err
	}

	if total := info.Total(); keep == Expendable && total.IsZero() {
		return amount, l.reap(who)
	}
	return amount, l.PutAccount(who, info)
}

func (l *Ledger) reap(who addr.Address) error {
	for _, m := range []*adt.Map{l.Accounts(), l.holds(), l.freezes(), l.locks()} {
		if err := m.Delete(adt.AddrKey(who)); err != nil {
			return xerrors.Errorf("failed to reap %v: %w", who, err)
		}
	}
	return nil
}

// ForEachAccount visits every account in key order.
func (l *Ledger) ForEachAccount(fn func(who addr.Address, info *AccountInfo) error) error {
	var info AccountInfo
	return l.Accounts().ForEach(&info, func(key []byte) error {
		who, err := adt.ParseAddrKey(key)
		if err != nil {
			return xerrors.Errorf("invalid account key %x: %w", key, err)
		}
		return fn(who, &info)
	})
}
