// Copyright (c) 2025 The TECH HY developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package tax implements the transfer tax applied to governance token
// movements. Every taxed transfer deducts a basis-point levy from the
// gross amount and splits it between the DAO treasury and the fee pool;
// the recipient receives the remainder.
package tax

import (
	"github.com/techhy-ecosystem/tokenomics/engine/token"
	"github.com/techhy-ecosystem/tokenomics/errs"
	"github.com/techhy-ecosystem/tokenomics/slot"
	"github.com/techhy-ecosystem/tokenomics/state"
	"github.com/techhy-ecosystem/tokenomics/thy"
	"github.com/techhy-ecosystem/tokenomics/umath"
)

// Config is the tax singleton. Shares are expressed in basis points of
// the levy and must sum to the full denominator.
type Config struct {
	Authority     thy.Address
	RateBps       uint32
	DAOShareBps   uint32
	DAOWallet     thy.Address
	FeePoolWallet thy.Address
}

// Split is the exact decomposition of a gross transfer amount.
// Net + DAOShare + FeePoolShare always equals the gross amount.
type Split struct {
	Net          uint64
	DAOShare     uint64
	FeePoolShare uint64
}

// Tax levies and splits the transfer tax against a fungible ledger.
type Tax struct {
	ctx    *slot.Context
	config *slot.Value[Config]
	ledger *token.Token
}

// New creates the tax engine bound to its namespace address and the
// ledger it levies against.
func New(ns thy.Address, st *state.State, ledger *token.Token) *Tax {
	ctx := slot.NewContext(ns, st)
	return &Tax{
		ctx:    ctx,
		config: slot.NewValue[Config](ctx, thy.BytesToBytes32([]byte("config"))),
		ledger: ledger,
	}
}

// Initialize writes the config singleton. It fails if the rate or the
// share split is out of range.
func (t *Tax) Initialize(cfg Config) error {
	if err := validate(cfg); err != nil {
		return err
	}
	return t.config.Set(cfg)
}

func validate(cfg Config) error {
	if uint64(cfg.RateBps) > thy.BpsDenominator {
		return errs.ErrInvalidAmount
	}
	if uint64(cfg.DAOShareBps) > thy.BpsDenominator {
		return errs.ErrInvalidAmount
	}
	return nil
}

// Config returns the current tax configuration.
func (t *Tax) Config() (Config, error) {
	cfg, _, err := t.config.Get()
	return cfg, err
}

// SetRate updates the levy rate. Only the tax authority may call it.
func (t *Tax) SetRate(caller thy.Address, rateBps uint32) error {
	cfg, _, err := t.config.Get()
	if err != nil {
		return err
	}
	if caller != cfg.Authority {
		return errs.ErrUnauthorized
	}
	if uint64(rateBps) > thy.BpsDenominator {
		return errs.ErrInvalidAmount
	}
	cfg.RateBps = rateBps
	return t.config.Set(cfg)
}

// SetShares updates the DAO share of the levy; the fee pool share is
// the complement. Only the tax authority may call it.
func (t *Tax) SetShares(caller thy.Address, daoShareBps uint32) error {
	cfg, _, err := t.config.Get()
	if err != nil {
		return err
	}
	if caller != cfg.Authority {
		return errs.ErrUnauthorized
	}
	if uint64(daoShareBps) > thy.BpsDenominator {
		return errs.ErrInvalidAmount
	}
	cfg.DAOShareBps = daoShareBps
	return t.config.Set(cfg)
}

// ComputeSplit decomposes a gross amount under the current config.
// Rounding always favors the sender side: the levy rounds down, the
// DAO share rounds down within the levy, and the fee pool absorbs the
// remainder so the identity net+dao+pool == amount holds exactly.
func (t *Tax) ComputeSplit(amount uint64) (Split, error) {
	cfg, _, err := t.config.Get()
	if err != nil {
		return Split{}, err
	}
	return computeSplit(cfg, amount)
}

func computeSplit(cfg Config, amount uint64) (Split, error) {
	levy, err := umath.CheckedMulDiv(amount, uint64(cfg.RateBps), thy.BpsDenominator)
	if err != nil {
		return Split{}, err
	}
	daoShare, err := umath.CheckedMulDiv(levy, uint64(cfg.DAOShareBps), thy.BpsDenominator)
	if err != nil {
		return Split{}, err
	}
	return Split{
		Net:          amount - levy,
		DAOShare:     daoShare,
		FeePoolShare: levy - daoShare,
	}, nil
}

// Transfer moves a gross amount from sender to recipient applying the
// levy. It performs up to four ledger mutations; the caller is expected
// to run it inside a state checkpoint so a failure leaves no partial
// movement.
func (t *Tax) Transfer(sender, recipient thy.Address, amount uint64) (Split, error) {
	if amount == 0 {
		return Split{}, errs.ErrInvalidAmount
	}
	cfg, _, err := t.config.Get()
	if err != nil {
		return Split{}, err
	}
	split, err := computeSplit(cfg, amount)
	if err != nil {
		return Split{}, err
	}
	if err := t.ledger.Debit(sender, amount); err != nil {
		return Split{}, err
	}
	if err := t.ledger.Credit(recipient, split.Net); err != nil {
		return Split{}, err
	}
	if split.DAOShare > 0 {
		if err := t.ledger.Credit(cfg.DAOWallet, split.DAOShare); err != nil {
			return Split{}, err
		}
	}
	if split.FeePoolShare > 0 {
		if err := t.ledger.Credit(cfg.FeePoolWallet, split.FeePoolShare); err != nil {
			return Split{}, err
		}
	}
	return split, nil
}
