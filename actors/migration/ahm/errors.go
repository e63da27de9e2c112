package ahm

import "golang.org/x/xerrors"

var (
	// The step budget does not allow converting a single item.
	ErrOutOfWeight = xerrors.New("out of weight")
	// A ledger primitive failed while withdrawing an account.
	ErrFailedToWithdrawAccount = xerrors.New("failed to withdraw account")
	ErrBalanceOverflow         = xerrors.New("balance overflow")
	ErrBalanceUnderflow        = xerrors.New("balance underflow")
	ErrUnknownStage            = xerrors.New("unknown migration stage")
)

// isFatal reports errors that abort a step regardless of progress.
func isFatal(err error) bool {
	return xerrors.Is(err, ErrBalanceOverflow) || xerrors.Is(err, ErrBalanceUnderflow)
}
