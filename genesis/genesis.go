// Copyright (c) 2025 The TECH HY developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis constructs the initial ledger state: the full VC
// supply minted once with the mint authority revoked right after, the
// VG token at zero supply, the tax configuration and the staking
// reward table.
package genesis

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/techhy-ecosystem/tokenomics/engine/burnlock"
	"github.com/techhy-ecosystem/tokenomics/engine/staking"
	"github.com/techhy-ecosystem/tokenomics/engine/tax"
	"github.com/techhy-ecosystem/tokenomics/engine/tier"
	"github.com/techhy-ecosystem/tokenomics/engine/token"
	"github.com/techhy-ecosystem/tokenomics/thy"
)

// Ratio is a num/den conversion rate in the genesis file.
type Ratio struct {
	Num uint64 `yaml:"num"`
	Den uint64 `yaml:"den"`
}

// Config describes the initial ledger state.
type Config struct {
	Authority       thy.Address        `yaml:"authority"`
	Treasury        thy.Address        `yaml:"treasury"`
	DAOWallet       thy.Address        `yaml:"daoWallet"`
	FeePoolWallet   thy.Address        `yaml:"feePoolWallet"`
	TaxRateBps      uint32             `yaml:"taxRateBps"`
	DAOShareBps     uint32             `yaml:"daoShareBps"`
	RewardRatesBps  [tier.Count]uint32 `yaml:"rewardRatesBps"`
	LockedToVGRatio Ratio              `yaml:"lockedToVGRatio"`
}

// Default returns the stock configuration: protocol default tax and
// reward rates, unit locked→VG ratio, authority-owned wallets.
func Default() Config {
	return Config{
		Authority:       thy.BytesToAddress([]byte("techhy-authority")),
		Treasury:        thy.BytesToAddress([]byte("techhy-treasury")),
		DAOWallet:       thy.BytesToAddress([]byte("techhy-dao")),
		FeePoolWallet:   thy.BytesToAddress([]byte("techhy-fee-pool")),
		TaxRateBps:      thy.DefaultTaxRateBps,
		DAOShareBps:     thy.DefaultDAOShareBps,
		RewardRatesBps:  thy.DefaultRewardRatesBps,
		LockedToVGRatio: Ratio{Num: 1, Den: 1},
	}
}

// FromYAML reads a custom genesis config, filling unset sections with
// defaults.
func FromYAML(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode genesis config")
	}
	if cfg.LockedToVGRatio.Den == 0 {
		return Config{}, errors.New("genesis config: lockedToVGRatio.den must be non-zero")
	}
	return cfg, nil
}

// FromYAMLFile reads a custom genesis config from a file.
func FromYAMLFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "open genesis config")
	}
	defer f.Close()
	return FromYAML(f)
}

// Build stages the genesis state: VC fully minted to the treasury with
// the mint authority revoked, VG at zero supply with the DAO as freeze
// authority, tax and staking configs written. The caller commits.
func Build(cfg Config, vc, vg *token.Token, tx *tax.Tax, stk *staking.Staking, bl *burnlock.BurnLock) error {
	if err := vc.Initialize(cfg.Authority); err != nil {
		return errors.Wrap(err, "init vc")
	}
	if err := vc.Mint(cfg.Authority, cfg.Treasury, thy.VCTotalSupply); err != nil {
		return errors.Wrap(err, "mint vc supply")
	}
	if err := vc.RevokeMintAuthority(cfg.Authority); err != nil {
		return errors.Wrap(err, "revoke vc mint authority")
	}

	if err := vg.Initialize(cfg.Authority); err != nil {
		return errors.Wrap(err, "init vg")
	}
	if err := vg.SetFreezeAuthority(cfg.Authority, cfg.DAOWallet); err != nil {
		return errors.Wrap(err, "set vg freeze authority")
	}

	if err := tx.Initialize(tax.Config{
		Authority:     cfg.Authority,
		RateBps:       cfg.TaxRateBps,
		DAOShareBps:   cfg.DAOShareBps,
		DAOWallet:     cfg.DAOWallet,
		FeePoolWallet: cfg.FeePoolWallet,
	}); err != nil {
		return errors.Wrap(err, "init tax")
	}

	if err := stk.Initialize(cfg.Authority, cfg.RewardRatesBps); err != nil {
		return errors.Wrap(err, "init staking")
	}

	if err := bl.Initialize(cfg.Authority, burnlock.Ratio(cfg.LockedToVGRatio)); err != nil {
		return errors.Wrap(err, "init ledger")
	}
	return nil
}
