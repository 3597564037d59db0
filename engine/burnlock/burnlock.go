// Copyright (c) 2025 The TECH HY developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package burnlock converts utility tokens into locked
// liquidity-position value and mints governance tokens as the reward.
// It owns the per-user conversion records, the global aggregates, and
// the tier-gated fee-key eligibility check.
package burnlock

import (
	"errors"

	"github.com/techhy-ecosystem/tokenomics/engine/tier"
	"github.com/techhy-ecosystem/tokenomics/engine/token"
	"github.com/techhy-ecosystem/tokenomics/errs"
	"github.com/techhy-ecosystem/tokenomics/nft"
	"github.com/techhy-ecosystem/tokenomics/oracle"
	"github.com/techhy-ecosystem/tokenomics/slot"
	"github.com/techhy-ecosystem/tokenomics/state"
	"github.com/techhy-ecosystem/tokenomics/thy"
	"github.com/techhy-ecosystem/tokenomics/umath"
)

// Ratio is an exact num/den conversion rate applied through checked
// widened multiplication.
type Ratio struct {
	Num uint64
	Den uint64
}

// GlobalState is the ledger-wide singleton. Its totals always equal
// the sums over all user records; only conversions mutate it.
type GlobalState struct {
	Authority        thy.Address
	VCMint           thy.Address
	VGMint           thy.Address
	TotalLockedValue uint64
	TotalVGMinted    uint64
	TotalVCBurned    uint64
}

// UserRecord accumulates one owner's conversions. LockedValue is
// monotonically non-decreasing; there is no unlock path.
type UserRecord struct {
	Owner       thy.Address
	LockedValue uint64
	VGMinted    uint64
	VCBurned    uint64
	Tier        tier.Tier
	LastUpdate  uint64
}

// Result reports the value movements of one conversion.
type Result struct {
	LockedDelta uint64
	VGDelta     uint64
	Tier        tier.Tier
}

// BurnLock is the conversion engine over one namespace.
type BurnLock struct {
	ctx    *slot.Context
	global *slot.Value[GlobalState]
	ratio  *slot.Value[Ratio]
	users  *slot.Mapping[thy.Address, UserRecord]

	vc     *token.Token
	vg     *token.Token
	oracle oracle.LiquidityOracle
	minter nft.Minter
}

func New(
	ns thy.Address,
	st *state.State,
	vc, vg *token.Token,
	lp oracle.LiquidityOracle,
	minter nft.Minter,
) *BurnLock {
	ctx := slot.NewContext(ns, st)
	return &BurnLock{
		ctx:    ctx,
		global: slot.NewValue[GlobalState](ctx, thy.BytesToBytes32([]byte("global"))),
		ratio:  slot.NewValue[Ratio](ctx, thy.BytesToBytes32([]byte("locked-to-vg-ratio"))),
		users:  slot.NewMapping[thy.Address, UserRecord](ctx, thy.BytesToBytes32([]byte("users"))),
		vc:     vc,
		vg:     vg,
		oracle: lp,
		minter: minter,
	}
}

// Initialize writes the global singleton and the locked→VG ratio. It
// fails if the ledger was already initialized.
func (b *BurnLock) Initialize(authority thy.Address, lockedToVG Ratio) error {
	if _, found, err := b.global.Get(); err != nil {
		return err
	} else if found {
		return errs.ErrAlreadySet
	}
	if lockedToVG.Den == 0 {
		return errs.ErrInvalidAmount
	}
	if err := b.ratio.Set(lockedToVG); err != nil {
		return err
	}
	return b.global.Set(GlobalState{
		Authority: authority,
		VCMint:    b.vc.Address(),
		VGMint:    b.vg.Address(),
	})
}

// GlobalStatistics returns the ledger-wide aggregates.
func (b *BurnLock) GlobalStatistics() (GlobalState, error) {
	global, found, err := b.global.Get()
	if err != nil {
		return GlobalState{}, err
	}
	if !found {
		return GlobalState{}, errs.ErrAccountNotFound
	}
	return global, nil
}

// Statistics returns an owner's record alongside the global
// aggregates. It fails with AccountNotFound before the owner's first
// conversion.
func (b *BurnLock) Statistics(owner thy.Address) (UserRecord, GlobalState, error) {
	global, err := b.GlobalStatistics()
	if err != nil {
		return UserRecord{}, GlobalState{}, err
	}
	user, found, err := b.users.Get(owner)
	if err != nil {
		return UserRecord{}, GlobalState{}, err
	}
	if !found {
		return UserRecord{}, GlobalState{}, errs.ErrAccountNotFound
	}
	return user, global, nil
}

// BurnAndLock burns vcAmount from owner, credits the quoted locked
// value to the owner's record and mints the corresponding governance
// amount. The external quote happens before any ledger mutation, so an
// oracle failure leaves no state behind; the caller brackets the whole
// call in a state checkpoint against mid-operation failures.
func (b *BurnLock) BurnAndLock(owner thy.Address, vcAmount uint64, now uint64) (Result, error) {
	if vcAmount == 0 {
		return Result{}, errs.ErrInvalidAmount
	}
	global, found, err := b.global.Get()
	if err != nil {
		return Result{}, err
	}
	if !found {
		return Result{}, errs.ErrAccountNotFound
	}

	lockedDelta, err := b.oracle.QuoteVCToLocked(vcAmount)
	if err != nil {
		return Result{}, errors.Join(errs.ErrLiquidityPool, err)
	}
	ratio, _, err := b.ratio.Get()
	if err != nil {
		return Result{}, err
	}
	vgDelta, err := umath.CheckedMulDiv(lockedDelta, ratio.Num, ratio.Den)
	if err != nil {
		return Result{}, err
	}

	if err := b.vc.Burn(owner, vcAmount); err != nil {
		return Result{}, err
	}
	if err := b.vg.Mint(global.Authority, owner, vgDelta); err != nil {
		return Result{}, errors.Join(errs.ErrVGMint, err)
	}

	user, _, err := b.users.Get(owner)
	if err != nil {
		return Result{}, err
	}
	user.Owner = owner
	if user.LockedValue, err = umath.CheckedAdd(user.LockedValue, lockedDelta); err != nil {
		return Result{}, err
	}
	if user.VGMinted, err = umath.CheckedAdd(user.VGMinted, vgDelta); err != nil {
		return Result{}, err
	}
	if user.VCBurned, err = umath.CheckedAdd(user.VCBurned, vcAmount); err != nil {
		return Result{}, err
	}
	user.Tier = tier.Classify(user.LockedValue)
	user.LastUpdate = now
	if err := b.users.Set(owner, user); err != nil {
		return Result{}, err
	}

	if global.TotalLockedValue, err = umath.CheckedAdd(global.TotalLockedValue, lockedDelta); err != nil {
		return Result{}, err
	}
	if global.TotalVGMinted, err = umath.CheckedAdd(global.TotalVGMinted, vgDelta); err != nil {
		return Result{}, err
	}
	if global.TotalVCBurned, err = umath.CheckedAdd(global.TotalVCBurned, vcAmount); err != nil {
		return Result{}, err
	}
	if err := b.global.Set(global); err != nil {
		return Result{}, err
	}

	return Result{LockedDelta: lockedDelta, VGDelta: vgDelta, Tier: user.Tier}, nil
}

// CreateNFTFeeKey issues a fee-key NFT to an owner whose locked value
// has reached at least the lowest tier. The check reads the user
// record without mutating it, so repeated calls for an eligible owner
// are harmless.
func (b *BurnLock) CreateNFTFeeKey(owner thy.Address) (nft.ID, error) {
	user, found, err := b.users.Get(owner)
	if err != nil {
		return 0, err
	}
	if !found || tier.Classify(user.LockedValue) == tier.None {
		return 0, errs.ErrNoEligibleNFT
	}
	id, err := b.minter.MintFeeKey(owner, user.Tier)
	if err != nil {
		return 0, errors.Join(errs.ErrNFTCreation, err)
	}
	return id, nil
}
