// Copyright (c) 2025 The TECH HY developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staking tracks governance-token stakes and their
// time-weighted reward accrual. Rewards accrue at an annual
// basis-point rate selected by the stake's tier and are settled lazily
// into the record on every mutation.
package staking

import (
	"github.com/techhy-ecosystem/tokenomics/engine/tier"
	"github.com/techhy-ecosystem/tokenomics/engine/token"
	"github.com/techhy-ecosystem/tokenomics/errs"
	"github.com/techhy-ecosystem/tokenomics/slot"
	"github.com/techhy-ecosystem/tokenomics/state"
	"github.com/techhy-ecosystem/tokenomics/thy"
	"github.com/techhy-ecosystem/tokenomics/umath"
)

// Config is the staking singleton: the per-tier annual reward table
// and the aggregate counters. TotalStaked always equals the sum of all
// principals and StakersCount the number of records with a non-zero
// principal.
type Config struct {
	Authority      thy.Address
	RewardRatesBps [tier.Count]uint32
	TotalStaked    uint64
	StakersCount   uint64
}

// StakeRecord is one owner's position. AccruedReward carries rewards
// settled by past mutations; the live remainder since StakeTimestamp
// is computed on read.
type StakeRecord struct {
	Owner          thy.Address
	Principal      uint64
	Tier           tier.Tier
	StakeTimestamp uint64
	AccruedReward  uint64
}

// Staking is the accrual engine over one namespace. Stake principal is
// escrowed on a vault account of the governance ledger so staked
// tokens leave the owner's spendable balance.
type Staking struct {
	ctx    *slot.Context
	config *slot.Value[Config]
	stakes *slot.Mapping[thy.Address, StakeRecord]
	vg     *token.Token
	vault  thy.Address
}

func New(ns thy.Address, st *state.State, vg *token.Token) *Staking {
	ctx := slot.NewContext(ns, st)
	return &Staking{
		ctx:    ctx,
		config: slot.NewValue[Config](ctx, thy.BytesToBytes32([]byte("config"))),
		stakes: slot.NewMapping[thy.Address, StakeRecord](ctx, thy.BytesToBytes32([]byte("stakes"))),
		vg:     vg,
		vault:  ns,
	}
}

// Vault returns the escrow account holding all staked principal.
func (s *Staking) Vault() thy.Address {
	return s.vault
}

// Initialize writes the config singleton with the given reward table.
func (s *Staking) Initialize(authority thy.Address, rewardRatesBps [tier.Count]uint32) error {
	if _, found, err := s.config.Get(); err != nil {
		return err
	} else if found {
		return errs.ErrAlreadySet
	}
	for _, rate := range rewardRatesBps {
		if uint64(rate) > thy.BpsDenominator {
			return errs.ErrInvalidAmount
		}
	}
	return s.config.Set(Config{Authority: authority, RewardRatesBps: rewardRatesBps})
}

// Config returns the current staking configuration.
func (s *Staking) Config() (Config, error) {
	cfg, found, err := s.config.Get()
	if err != nil {
		return Config{}, err
	}
	if !found {
		return Config{}, errs.ErrAccountNotFound
	}
	return cfg, nil
}

// SetRewardRates replaces the per-tier reward table. Only the staking
// authority may call it; running stakes pick up the new rate from
// their next settlement.
func (s *Staking) SetRewardRates(caller thy.Address, rates [tier.Count]uint32) error {
	cfg, err := s.Config()
	if err != nil {
		return err
	}
	if caller != cfg.Authority {
		return errs.ErrUnauthorized
	}
	for _, rate := range rates {
		if uint64(rate) > thy.BpsDenominator {
			return errs.ErrInvalidAmount
		}
	}
	cfg.RewardRatesBps = rates
	return s.config.Set(cfg)
}

// pendingReward computes the unsettled reward of a record at time now:
// principal * rate * elapsed / (seconds-per-year * 10000).
func pendingReward(cfg Config, rec StakeRecord, now uint64) (uint64, error) {
	if rec.Principal == 0 || now <= rec.StakeTimestamp {
		return 0, nil
	}
	elapsed := now - rec.StakeTimestamp
	rate := uint64(cfg.RewardRatesBps[rec.Tier])
	num, err := umath.CheckedMul(rate, elapsed)
	if err != nil {
		return 0, err
	}
	return umath.CheckedMulDiv(rec.Principal, num, thy.SecondsPerYear*thy.BpsDenominator)
}

// Stake adds amount to the owner's position. Any reward pending under
// the old principal and tier is settled into AccruedReward first, then
// the clock restarts and the tier is reclassified from the new
// principal. The amount moves from the owner's balance into the vault.
func (s *Staking) Stake(owner thy.Address, amount uint64, now uint64) (StakeRecord, error) {
	if amount == 0 {
		return StakeRecord{}, errs.ErrInvalidAmount
	}
	cfg, err := s.Config()
	if err != nil {
		return StakeRecord{}, err
	}
	rec, _, err := s.stakes.Get(owner)
	if err != nil {
		return StakeRecord{}, err
	}

	pending, err := pendingReward(cfg, rec, now)
	if err != nil {
		return StakeRecord{}, err
	}
	if rec.AccruedReward, err = umath.CheckedAdd(rec.AccruedReward, pending); err != nil {
		return StakeRecord{}, err
	}

	if err := s.vg.Transfer(owner, s.vault, amount); err != nil {
		return StakeRecord{}, err
	}

	firstStake := rec.Principal == 0
	rec.Owner = owner
	if rec.Principal, err = umath.CheckedAdd(rec.Principal, amount); err != nil {
		return StakeRecord{}, err
	}
	rec.Tier = tier.Classify(rec.Principal)
	rec.StakeTimestamp = now
	if err := s.stakes.Set(owner, rec); err != nil {
		return StakeRecord{}, err
	}

	if cfg.TotalStaked, err = umath.CheckedAdd(cfg.TotalStaked, amount); err != nil {
		return StakeRecord{}, err
	}
	if firstStake {
		cfg.StakersCount++
	}
	if err := s.config.Set(cfg); err != nil {
		return StakeRecord{}, err
	}
	return rec, nil
}

// Unstake withdraws the owner's full position: principal plus all
// settled and pending rewards return to the owner's balance, rewards
// minted fresh by the ledger authority. Partial withdrawal is not
// supported.
func (s *Staking) Unstake(owner thy.Address, now uint64) (principal, reward uint64, err error) {
	cfg, err := s.Config()
	if err != nil {
		return 0, 0, err
	}
	rec, found, err := s.stakes.Get(owner)
	if err != nil {
		return 0, 0, err
	}
	if !found || rec.Principal == 0 {
		return 0, 0, errs.ErrAccountNotFound
	}

	pending, err := pendingReward(cfg, rec, now)
	if err != nil {
		return 0, 0, err
	}
	if reward, err = umath.CheckedAdd(rec.AccruedReward, pending); err != nil {
		return 0, 0, err
	}
	principal = rec.Principal

	if err := s.vg.Transfer(s.vault, owner, principal); err != nil {
		return 0, 0, err
	}
	if reward > 0 {
		if err := s.vg.Mint(cfg.Authority, owner, reward); err != nil {
			return 0, 0, err
		}
	}

	rec.Principal = 0
	rec.Tier = tier.None
	rec.StakeTimestamp = now
	rec.AccruedReward = 0
	if err := s.stakes.Set(owner, rec); err != nil {
		return 0, 0, err
	}

	if cfg.TotalStaked, err = umath.CheckedSub(cfg.TotalStaked, principal); err != nil {
		return 0, 0, err
	}
	if cfg.StakersCount, err = umath.CheckedSub(cfg.StakersCount, 1); err != nil {
		return 0, 0, err
	}
	if err := s.config.Set(cfg); err != nil {
		return 0, 0, err
	}
	return principal, reward, nil
}

// StakeOf returns the owner's record and its total reward (settled
// plus pending) as of time now.
func (s *Staking) StakeOf(owner thy.Address, now uint64) (StakeRecord, uint64, error) {
	cfg, err := s.Config()
	if err != nil {
		return StakeRecord{}, 0, err
	}
	rec, found, err := s.stakes.Get(owner)
	if err != nil {
		return StakeRecord{}, 0, err
	}
	if !found {
		return StakeRecord{}, 0, errs.ErrAccountNotFound
	}
	pending, err := pendingReward(cfg, rec, now)
	if err != nil {
		return StakeRecord{}, 0, err
	}
	total, err := umath.CheckedAdd(rec.AccruedReward, pending)
	if err != nil {
		return StakeRecord{}, 0, err
	}
	return rec, total, nil
}
