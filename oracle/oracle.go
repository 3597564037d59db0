// Copyright (c) 2025 The TECH HY developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package oracle abstracts the liquidity venue that prices burned
// utility tokens in locked liquidity-position units.
package oracle

import (
	"errors"

	"github.com/techhy-ecosystem/tokenomics/errs"
	"github.com/techhy-ecosystem/tokenomics/umath"
)

// LiquidityOracle quotes the locked value obtained for a burned
// utility-token amount. A failed quote is a transient external
// condition, not ledger corruption; callers retry the whole operation.
type LiquidityOracle interface {
	QuoteVCToLocked(vcAmount uint64) (lockedValue uint64, err error)
}

// FixedRatio is a deterministic oracle quoting at a constant
// num/den ratio. It backs single-node deployments and tests.
type FixedRatio struct {
	num uint64
	den uint64
}

// NewFixedRatio creates a fixed-ratio oracle. The denominator must be
// non-zero.
func NewFixedRatio(num, den uint64) (*FixedRatio, error) {
	if den == 0 {
		return nil, errs.ErrInvalidAmount
	}
	return &FixedRatio{num: num, den: den}, nil
}

func (o *FixedRatio) QuoteVCToLocked(vcAmount uint64) (uint64, error) {
	locked, err := umath.CheckedMulDiv(vcAmount, o.num, o.den)
	if err != nil {
		return 0, err
	}
	return locked, nil
}

// Failing is an oracle that rejects every quote. It exists for failure
// injection in tests and as a placeholder when no venue is configured.
type Failing struct{}

func (Failing) QuoteVCToLocked(uint64) (uint64, error) {
	return 0, errors.Join(errs.ErrLiquidityPool, errors.New("no liquidity venue configured"))
}
