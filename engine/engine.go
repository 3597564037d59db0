// Copyright (c) 2025 The TECH HY developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package engine wires the token ledger, tax, burn-and-lock and
// staking engines over one state and exposes the ledger operations.
// Every mutating operation runs under the single writer lock inside a
// state checkpoint: it either commits whole or reverts to the
// pre-call state.
package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/techhy-ecosystem/tokenomics/engine/burnlock"
	"github.com/techhy-ecosystem/tokenomics/engine/staking"
	"github.com/techhy-ecosystem/tokenomics/engine/tax"
	"github.com/techhy-ecosystem/tokenomics/engine/tier"
	"github.com/techhy-ecosystem/tokenomics/engine/token"
	"github.com/techhy-ecosystem/tokenomics/errs"
	"github.com/techhy-ecosystem/tokenomics/eventdb"
	"github.com/techhy-ecosystem/tokenomics/genesis"
	"github.com/techhy-ecosystem/tokenomics/kv"
	"github.com/techhy-ecosystem/tokenomics/log"
	"github.com/techhy-ecosystem/tokenomics/metrics"
	"github.com/techhy-ecosystem/tokenomics/nft"
	"github.com/techhy-ecosystem/tokenomics/oracle"
	"github.com/techhy-ecosystem/tokenomics/state"
	"github.com/techhy-ecosystem/tokenomics/thy"
)

var (
	logger = log.WithContext("pkg", "engine")

	metricOpCount = metrics.LazyLoadCounterVec("operation_count", []string{"op", "outcome"})
)

// stateBucket namespaces the ledger state within the main db, leaving
// the rest of the keyspace to auxiliary data.
const stateBucket = kv.Bucket("state/")

// Options configures the optional collaborators of an Engine.
type Options struct {
	// Oracle prices burned VC in locked liquidity-position units.
	// Defaults to a failing oracle that rejects every conversion.
	Oracle oracle.LiquidityOracle
	// Minter issues fee-key NFTs. Defaults to an in-memory minter.
	Minter nft.Minter
	// EventDB records the operation history. Nil disables recording.
	EventDB *eventdb.EventDB
	// Now supplies operation timestamps, defaulting to wall time.
	Now func() uint64
}

// Engine is the tokenomics facade.
type Engine struct {
	lock sync.Mutex

	state   *state.State
	vc      *token.Token
	vg      *token.Token
	tax     *tax.Tax
	burn    *burnlock.BurnLock
	staking *staking.Staking
	events  *eventdb.EventDB
	now     func() uint64
}

// New opens an engine over the given store, running the genesis build
// on first use.
func New(store kv.GetPutter, cfg genesis.Config, opts Options) (*Engine, error) {
	if opts.Oracle == nil {
		opts.Oracle = oracle.Failing{}
	}
	if opts.Minter == nil {
		opts.Minter = nft.NewMemoryMinter()
	}
	if opts.Now == nil {
		opts.Now = func() uint64 { return uint64(time.Now().Unix()) }
	}

	st := state.New(stateBucket.NewStore(store))
	vc := token.New(thy.VCMintAddress, st)
	vg := token.New(thy.VGMintAddress, st)
	vgTax := tax.New(thy.TaxEngineAddress, st, vg)
	stk := staking.New(thy.StakingVaultAddress, st, vg)
	burn := burnlock.New(thy.LedgerAddress, st, vc, vg, opts.Oracle, opts.Minter)

	e := &Engine{
		state:   st,
		vc:      vc,
		vg:      vg,
		tax:     vgTax,
		burn:    burn,
		staking: stk,
		events:  opts.EventDB,
		now:     opts.Now,
	}

	if _, err := burn.GlobalStatistics(); err != nil {
		if !errors.Is(err, errs.ErrAccountNotFound) {
			return nil, err
		}
		checkpoint := st.NewCheckpoint()
		if err := genesis.Build(cfg, vc, vg, vgTax, stk, burn); err != nil {
			st.RevertTo(checkpoint)
			return nil, err
		}
		if err := st.Commit(); err != nil {
			return nil, err
		}
		logger.Info("genesis state built",
			"authority", cfg.Authority,
			"treasury", cfg.Treasury,
			"vcSupply", thy.VCTotalSupply)
	}
	return e, nil
}

// atomically runs fn inside the writer lock and a state checkpoint,
// committing on success and reverting on failure.
func (e *Engine) atomically(op string, fn func() error) error {
	e.lock.Lock()
	defer e.lock.Unlock()

	checkpoint := e.state.NewCheckpoint()
	if err := fn(); err != nil {
		e.state.RevertTo(checkpoint)
		metricOpCount().AddWithLabel(1, map[string]string{"op": op, "outcome": "reverted"})
		return err
	}
	if err := e.state.Commit(); err != nil {
		// the batch write is atomic, so nothing was persisted;
		// dropping the journaled mutations keeps reads consistent
		// with the store.
		e.state.RevertTo(checkpoint)
		metricOpCount().AddWithLabel(1, map[string]string{"op": op, "outcome": "failed"})
		return err
	}
	metricOpCount().AddWithLabel(1, map[string]string{"op": op, "outcome": "committed"})
	return nil
}

func (e *Engine) record(ev *eventdb.Event) {
	if e.events == nil {
		return
	}
	if err := e.events.Write(context.Background(), ev); err != nil {
		logger.Warn("failed to record event", "kind", ev.Kind, "err", err)
	}
}

// BurnAndLock burns vcAmount of the owner's VC, locks the quoted value
// and mints the VG reward.
func (e *Engine) BurnAndLock(owner thy.Address, vcAmount uint64) (burnlock.Result, error) {
	var res burnlock.Result
	now := e.now()
	err := e.atomically("burn_and_lock", func() (err error) {
		res, err = e.burn.BurnAndLock(owner, vcAmount, now)
		return err
	})
	if err != nil {
		return burnlock.Result{}, err
	}
	e.record(&eventdb.Event{
		Kind:      eventdb.KindBurnLock,
		Timestamp: now,
		Owner:     owner,
		Amount:    vcAmount,
		Minted:    res.VGDelta,
	})
	return res, nil
}

// TransferWithTax moves a gross VG amount from sender to recipient,
// splitting the levy between the DAO treasury and the fee pool.
func (e *Engine) TransferWithTax(sender, recipient thy.Address, amount uint64) (tax.Split, error) {
	var split tax.Split
	now := e.now()
	err := e.atomically("transfer_with_tax", func() (err error) {
		split, err = e.tax.Transfer(sender, recipient, amount)
		return err
	})
	if err != nil {
		return tax.Split{}, err
	}
	e.record(&eventdb.Event{
		Kind:         eventdb.KindTransfer,
		Timestamp:    now,
		Owner:        sender,
		Counterparty: &recipient,
		Amount:       amount,
		Tax:          split.DAOShare + split.FeePoolShare,
	})
	return split, nil
}

// Stake moves amount of the owner's VG into the staking vault,
// settling any pending reward first.
func (e *Engine) Stake(owner thy.Address, amount uint64) (staking.StakeRecord, error) {
	var rec staking.StakeRecord
	now := e.now()
	err := e.atomically("stake", func() (err error) {
		rec, err = e.staking.Stake(owner, amount, now)
		return err
	})
	if err != nil {
		return staking.StakeRecord{}, err
	}
	e.record(&eventdb.Event{
		Kind:      eventdb.KindStake,
		Timestamp: now,
		Owner:     owner,
		Amount:    amount,
	})
	return rec, nil
}

// Unstake withdraws the owner's full position with its rewards.
func (e *Engine) Unstake(owner thy.Address) (principal, reward uint64, err error) {
	now := e.now()
	err = e.atomically("unstake", func() (err error) {
		principal, reward, err = e.staking.Unstake(owner, now)
		return err
	})
	if err != nil {
		return 0, 0, err
	}
	e.record(&eventdb.Event{
		Kind:      eventdb.KindUnstake,
		Timestamp: now,
		Owner:     owner,
		Amount:    principal,
		Minted:    reward,
	})
	return principal, reward, nil
}

// CreateNFTFeeKey issues a fee-key NFT if the owner's locked value has
// reached at least the Bronze tier.
func (e *Engine) CreateNFTFeeKey(owner thy.Address) (nft.ID, error) {
	var id nft.ID
	now := e.now()
	err := e.atomically("create_nft_fee_key", func() (err error) {
		id, err = e.burn.CreateNFTFeeKey(owner)
		return err
	})
	if err != nil {
		return 0, err
	}
	e.record(&eventdb.Event{
		Kind:      eventdb.KindFeeKey,
		Timestamp: now,
		Owner:     owner,
		Amount:    uint64(id),
	})
	return id, nil
}

// SetTaxRate updates the transfer tax rate, authority only.
func (e *Engine) SetTaxRate(caller thy.Address, rateBps uint32) error {
	return e.atomically("set_tax_rate", func() error {
		return e.tax.SetRate(caller, rateBps)
	})
}

// SetTaxShares updates the DAO share of the levy, authority only.
func (e *Engine) SetTaxShares(caller thy.Address, daoShareBps uint32) error {
	return e.atomically("set_tax_shares", func() error {
		return e.tax.SetShares(caller, daoShareBps)
	})
}

// SetRewardRates replaces the staking reward table, authority only.
func (e *Engine) SetRewardRates(caller thy.Address, rates [tier.Count]uint32) error {
	return e.atomically("set_reward_rates", func() error {
		return e.staking.SetRewardRates(caller, rates)
	})
}

// Statistics returns an owner's conversion record and the global
// aggregates.
func (e *Engine) Statistics(owner thy.Address) (burnlock.UserRecord, burnlock.GlobalState, error) {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.burn.Statistics(owner)
}

// GlobalStatistics returns the ledger-wide aggregates.
func (e *Engine) GlobalStatistics() (burnlock.GlobalState, error) {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.burn.GlobalStatistics()
}

// StakeOf returns an owner's stake record and total reward as of now.
func (e *Engine) StakeOf(owner thy.Address) (staking.StakeRecord, uint64, error) {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.staking.StakeOf(owner, e.now())
}

// StakingConfig returns the staking configuration and aggregates.
func (e *Engine) StakingConfig() (staking.Config, error) {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.staking.Config()
}

// TaxConfig returns the transfer tax configuration.
func (e *Engine) TaxConfig() (tax.Config, error) {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.tax.Config()
}

// Balance returns the owner's balance on the given token mint.
func (e *Engine) Balance(mint, owner thy.Address) (uint64, error) {
	e.lock.Lock()
	defer e.lock.Unlock()
	switch mint {
	case e.vc.Address():
		return e.vc.Balance(owner)
	case e.vg.Address():
		return e.vg.Balance(owner)
	default:
		return 0, errs.ErrAccountNotFound
	}
}

// TokenInfo reports a mint's supply counters.
func (e *Engine) TokenInfo(mint thy.Address) (supply, burned uint64, err error) {
	e.lock.Lock()
	defer e.lock.Unlock()
	var tok *token.Token
	switch mint {
	case e.vc.Address():
		tok = e.vc
	case e.vg.Address():
		tok = e.vg
	default:
		return 0, 0, errs.ErrAccountNotFound
	}
	if supply, err = tok.TotalSupply(); err != nil {
		return 0, 0, err
	}
	if burned, err = tok.TotalBurned(); err != nil {
		return 0, 0, err
	}
	return supply, burned, nil
}

// Events returns the recorded operation history, nil when recording is
// disabled.
func (e *Engine) Events(ctx context.Context, filter *eventdb.Filter) ([]*eventdb.Event, error) {
	if e.events == nil {
		return nil, nil
	}
	return e.events.Filter(ctx, filter)
}
