package math

import (
	"strings"

	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"golang.org/x/xerrors"
)

// ParseTokenAmount parses a non-negative decimal integer amount.
// Underscores may be used as digit separators, e.g. "10_000_000_000".
func ParseTokenAmount(s string) (abi.TokenAmount, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	if clean == "" {
		return big.Zero(), xerrors.Errorf("empty amount")
	}
	v, err := big.FromString(clean)
	if err != nil {
		return big.Zero(), xerrors.Errorf("could not parse amount %q: %w", s, err)
	}
	if v.Sign() < 0 {
		return big.Zero(), xerrors.Errorf("negative amount %q", s)
	}
	return v, nil
}
