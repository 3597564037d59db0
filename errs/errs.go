// Copyright (c) 2025 The TECH HY developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package errs defines the error taxonomy shared by the tokenomics engines.
// Every failure aborts the enclosing operation; the engine facade reverts
// state so no record is left half-updated.
package errs

import "errors"

var (
	// ErrUnauthorized the caller lacks the required authority. Fatal, not retried.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidAmount zero or otherwise unusable amount input.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrMathOverflow arithmetic would wrap or lose precision.
	ErrMathOverflow = errors.New("math overflow")

	// ErrInsufficientBalance account balance is lower than the debit amount.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrAccountNotFound the (owner, mint) account record does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrNoEligibleNFT locked value is below the lowest tier threshold.
	// Expected, non-fatal; the caller may retry after locking more value.
	ErrNoEligibleNFT = errors.New("no eligible nft")

	// ErrLiquidityPool the external liquidity pool integration failed.
	// Transient; the whole burn-and-lock call is safe to retry.
	ErrLiquidityPool = errors.New("liquidity pool error")

	// ErrVGMint VG minting failed in the token collaborator.
	ErrVGMint = errors.New("vg mint error")

	// ErrNFTCreation the external NFT minter failed. Distinguished from
	// ErrNoEligibleNFT: eligibility was met but the mint itself failed.
	ErrNFTCreation = errors.New("nft creation error")

	// ErrAlreadySet a one-way authority transition was attempted twice.
	ErrAlreadySet = errors.New("authority already set")
)

// IsTransient reports whether the caller may safely retry the whole
// operation. Only external integration failures qualify; the failed call
// left no partial state behind.
func IsTransient(err error) bool {
	return errors.Is(err, ErrLiquidityPool)
}
