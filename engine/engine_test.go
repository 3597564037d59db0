// Copyright (c) 2025 The TECH HY developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package engine

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techhy-ecosystem/tokenomics/engine/tier"
	"github.com/techhy-ecosystem/tokenomics/errs"
	"github.com/techhy-ecosystem/tokenomics/eventdb"
	"github.com/techhy-ecosystem/tokenomics/genesis"
	"github.com/techhy-ecosystem/tokenomics/kv"
	"github.com/techhy-ecosystem/tokenomics/lvldb"
	"github.com/techhy-ecosystem/tokenomics/oracle"
	"github.com/techhy-ecosystem/tokenomics/thy"
)

var alice = thy.BytesToAddress([]byte("alice"))

type stubOracle struct {
	quote uint64
	err   error
}

func (o *stubOracle) QuoteVCToLocked(uint64) (uint64, error) {
	return o.quote, o.err
}

func newTestEngine(t *testing.T, opts Options) (*Engine, genesis.Config) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	if opts.Oracle == nil {
		opts.Oracle, err = oracle.NewFixedRatio(1, 1)
		require.NoError(t, err)
	}
	if opts.Now == nil {
		clock := uint64(0)
		opts.Now = func() uint64 { clock++; return clock }
	}

	cfg := genesis.Default()
	e, err := New(db, cfg, opts)
	require.NoError(t, err)
	return e, cfg
}

func TestGenesisState(t *testing.T) {
	e, cfg := newTestEngine(t, Options{})

	supply, burned, err := e.TokenInfo(thy.VCMintAddress)
	require.NoError(t, err)
	assert.Equal(t, thy.VCTotalSupply, supply)
	assert.Equal(t, uint64(0), burned)

	balance, err := e.Balance(thy.VCMintAddress, cfg.Treasury)
	require.NoError(t, err)
	assert.Equal(t, thy.VCTotalSupply, balance)

	supply, _, err = e.TokenInfo(thy.VGMintAddress)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), supply)

	global, err := e.GlobalStatistics()
	require.NoError(t, err)
	assert.Equal(t, cfg.Authority, global.Authority)

	taxCfg, err := e.TaxConfig()
	require.NoError(t, err)
	assert.Equal(t, thy.DefaultTaxRateBps, taxCfg.RateBps)

	stakingCfg, err := e.StakingConfig()
	require.NoError(t, err)
	assert.Equal(t, thy.DefaultRewardRatesBps, stakingCfg.RewardRatesBps)
}

func TestGenesisRunsOnce(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := genesis.Default()
	_, err = New(db, cfg, Options{})
	require.NoError(t, err)

	// reopening over the same store must not rebuild genesis
	e2, err := New(db, cfg, Options{})
	require.NoError(t, err)
	balance, err := e2.Balance(thy.VCMintAddress, cfg.Treasury)
	require.NoError(t, err)
	assert.Equal(t, thy.VCTotalSupply, balance)
}

func TestBurnAndLockEndToEnd(t *testing.T) {
	events, err := eventdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { events.Close() })

	e, cfg := newTestEngine(t, Options{EventDB: events})

	// fund alice from the treasury
	require.NoError(t, e.vc.Transfer(cfg.Treasury, alice, 10_000*thy.BaseUnit))
	require.NoError(t, e.state.Commit())

	res, err := e.BurnAndLock(alice, 1_000*thy.BaseUnit)
	require.NoError(t, err)
	assert.Equal(t, 1_000*thy.BaseUnit, res.LockedDelta)
	assert.Equal(t, 1_000*thy.BaseUnit, res.VGDelta)
	assert.Equal(t, tier.Bronze, res.Tier)

	user, global, err := e.Statistics(alice)
	require.NoError(t, err)
	assert.Equal(t, 1_000*thy.BaseUnit, user.LockedValue)
	assert.Equal(t, 1_000*thy.BaseUnit, global.TotalVCBurned)

	recorded, err := e.Events(context.Background(), nil)
	require.NoError(t, err)
	require.NotEmpty(t, recorded)
	last := recorded[len(recorded)-1]
	assert.Equal(t, eventdb.KindBurnLock, last.Kind)
	assert.Equal(t, alice, last.Owner)
	assert.Equal(t, 1_000*thy.BaseUnit, last.Amount)
	assert.Equal(t, 1_000*thy.BaseUnit, last.Minted)
}

func TestFailedOperationRevertsState(t *testing.T) {
	lp := &stubOracle{quote: math.MaxUint64}
	e, cfg := newTestEngine(t, Options{Oracle: lp})

	require.NoError(t, e.vc.Transfer(cfg.Treasury, alice, 10_000))
	require.NoError(t, e.state.Commit())

	// the first conversion mints nearly the full uint64 range of VG
	_, err := e.BurnAndLock(alice, 1_000)
	require.NoError(t, err)

	// the second overflows the VG supply after VC was already burned;
	// the whole operation must roll back
	_, err = e.BurnAndLock(alice, 1_000)
	require.ErrorIs(t, err, errs.ErrMathOverflow)

	balance, err := e.Balance(thy.VCMintAddress, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(9_000), balance)

	user, global, err := e.Statistics(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000), user.VCBurned)
	assert.Equal(t, uint64(1_000), global.TotalVCBurned)
}

func TestTransferAndStakeFlow(t *testing.T) {
	e, cfg := newTestEngine(t, Options{})
	require.NoError(t, e.vc.Transfer(cfg.Treasury, alice, 1_000_000*thy.BaseUnit))
	require.NoError(t, e.state.Commit())

	_, err := e.BurnAndLock(alice, 100_000*thy.BaseUnit)
	require.NoError(t, err)

	bob := thy.BytesToAddress([]byte("bob"))
	split, err := e.TransferWithTax(alice, bob, 10_000*thy.BaseUnit)
	require.NoError(t, err)
	assert.Equal(t, 9_000*thy.BaseUnit, split.Net)

	daoBal, err := e.Balance(thy.VGMintAddress, cfg.DAOWallet)
	require.NoError(t, err)
	assert.Equal(t, 500*thy.BaseUnit, daoBal)

	rec, err := e.Stake(bob, 9_000*thy.BaseUnit)
	require.NoError(t, err)
	assert.Equal(t, tier.Bronze, rec.Tier)

	principal, _, err := e.Unstake(bob)
	require.NoError(t, err)
	assert.Equal(t, 9_000*thy.BaseUnit, principal)
}

func TestAdminOperations(t *testing.T) {
	e, cfg := newTestEngine(t, Options{})

	assert.ErrorIs(t, e.SetTaxRate(alice, 500), errs.ErrUnauthorized)
	require.NoError(t, e.SetTaxRate(cfg.Authority, 500))

	taxCfg, err := e.TaxConfig()
	require.NoError(t, err)
	assert.Equal(t, uint32(500), taxCfg.RateBps)

	rates := thy.DefaultRewardRatesBps
	rates[tier.Platinum] = 2000
	require.NoError(t, e.SetRewardRates(cfg.Authority, rates))
	stakingCfg, err := e.StakingConfig()
	require.NoError(t, err)
	assert.Equal(t, uint32(2000), stakingCfg.RewardRatesBps[tier.Platinum])
}

type faultyStore struct {
	kv.GetPutter
	failWrites bool
}

func (s *faultyStore) NewBatch() kv.Batch {
	return &faultyBatch{s.GetPutter.NewBatch(), s}
}

type faultyBatch struct {
	kv.Batch
	store *faultyStore
}

func (b *faultyBatch) Write() error {
	if b.store.failWrites {
		return errors.New("disk full")
	}
	return b.Batch.Write()
}

func TestCommitFailureLeavesNoState(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	store := &faultyStore{GetPutter: db}

	lp, err := oracle.NewFixedRatio(1, 1)
	require.NoError(t, err)
	clock := uint64(0)
	cfg := genesis.Default()
	e, err := New(store, cfg, Options{
		Oracle: lp,
		Now:    func() uint64 { clock++; return clock },
	})
	require.NoError(t, err)

	require.NoError(t, e.vc.Transfer(cfg.Treasury, alice, 10_000*thy.BaseUnit))
	require.NoError(t, e.state.Commit())

	store.failWrites = true
	_, err = e.BurnAndLock(alice, 1_000*thy.BaseUnit)
	require.Error(t, err)
	store.failWrites = false

	// the failed operation left nothing behind
	_, _, err = e.Statistics(alice)
	assert.ErrorIs(t, err, errs.ErrAccountNotFound)

	balance, err := e.Balance(thy.VCMintAddress, alice)
	require.NoError(t, err)
	assert.Equal(t, 10_000*thy.BaseUnit, balance)

	supply, burned, err := e.TokenInfo(thy.VCMintAddress)
	require.NoError(t, err)
	assert.Equal(t, thy.VCTotalSupply, supply)
	assert.Equal(t, uint64(0), burned)

	// and the next operation applies exactly once
	res, err := e.BurnAndLock(alice, 500*thy.BaseUnit)
	require.NoError(t, err)
	assert.Equal(t, 500*thy.BaseUnit, res.VGDelta)

	user, _, err := e.Statistics(alice)
	require.NoError(t, err)
	assert.Equal(t, 500*thy.BaseUnit, user.VCBurned)
	assert.Equal(t, 500*thy.BaseUnit, user.LockedValue)
}
