// Copyright (c) 2025 The TECH HY developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package umath provides checked fixed-point arithmetic over uint64 token
// amounts. All engine arithmetic goes through these primitives; silent
// wraparound is never permitted.
package umath

import (
	"math"

	"github.com/holiman/uint256"

	"github.com/techhy-ecosystem/tokenomics/errs"
)

// CheckedAdd returns a + b, failing with ErrMathOverflow on wraparound.
func CheckedAdd(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, errs.ErrMathOverflow
	}
	return sum, nil
}

// CheckedSub returns a - b, failing with ErrInvalidAmount if b > a.
func CheckedSub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, errs.ErrInvalidAmount
	}
	return a - b, nil
}

// CheckedMul returns a * b, failing with ErrMathOverflow on wraparound.
func CheckedMul(a, b uint64) (uint64, error) {
	if a != 0 && b > math.MaxUint64/a {
		return 0, errs.ErrMathOverflow
	}
	return a * b, nil
}

// CheckedMulDiv returns value * numerator / denominator, truncating toward
// zero. The intermediate product is accumulated in 256 bits so it never
// overflows; the call fails with ErrMathOverflow if the quotient does not
// fit into uint64, or if denominator is zero.
func CheckedMulDiv(value, numerator, denominator uint64) (uint64, error) {
	if denominator == 0 {
		return 0, errs.ErrMathOverflow
	}
	product := new(uint256.Int).Mul(
		uint256.NewInt(value),
		uint256.NewInt(numerator),
	)
	quotient := product.Div(product, uint256.NewInt(denominator))
	if !quotient.IsUint64() {
		return 0, errs.ErrMathOverflow
	}
	return quotient.Uint64(), nil
}
