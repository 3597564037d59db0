// Copyright (c) 2025 The TECH HY developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package burnlock

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techhy-ecosystem/tokenomics/engine/tier"
	"github.com/techhy-ecosystem/tokenomics/engine/token"
	"github.com/techhy-ecosystem/tokenomics/errs"
	"github.com/techhy-ecosystem/tokenomics/lvldb"
	"github.com/techhy-ecosystem/tokenomics/nft"
	"github.com/techhy-ecosystem/tokenomics/oracle"
	"github.com/techhy-ecosystem/tokenomics/state"
	"github.com/techhy-ecosystem/tokenomics/thy"
)

var (
	authority = thy.BytesToAddress([]byte("ledger-authority"))
	alice     = thy.BytesToAddress([]byte("alice"))
	bob       = thy.BytesToAddress([]byte("bob"))
)

type fixture struct {
	bl *BurnLock
	vc *token.Token
	vg *token.Token
	st *state.State
}

func newFixture(t *testing.T, lp oracle.LiquidityOracle, minter nft.Minter) *fixture {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	st := state.New(db)

	vc := token.New(thy.BytesToAddress([]byte("vc-mint")), st)
	require.NoError(t, vc.Initialize(authority))
	vg := token.New(thy.BytesToAddress([]byte("vg-mint")), st)
	require.NoError(t, vg.Initialize(authority))

	if lp == nil {
		lp, err = oracle.NewFixedRatio(1, 1)
		require.NoError(t, err)
	}
	if minter == nil {
		minter = nft.NewMemoryMinter()
	}

	bl := New(thy.BytesToAddress([]byte("burnlock-ns")), st, vc, vg, lp, minter)
	require.NoError(t, bl.Initialize(authority, Ratio{Num: 1, Den: 1}))
	return &fixture{bl: bl, vc: vc, vg: vg, st: st}
}

func (f *fixture) fund(t *testing.T, owner thy.Address, amount uint64) {
	require.NoError(t, f.vc.Mint(authority, owner, amount))
}

func TestInitializeOnce(t *testing.T) {
	f := newFixture(t, nil, nil)
	assert.ErrorIs(t, f.bl.Initialize(authority, Ratio{Num: 1, Den: 1}), errs.ErrAlreadySet)
}

func TestBurnAndLockUnitRatios(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.fund(t, alice, 10_000*thy.BaseUnit)

	res, err := f.bl.BurnAndLock(alice, 1_000*thy.BaseUnit, 42)
	require.NoError(t, err)
	assert.Equal(t, 1_000*thy.BaseUnit, res.LockedDelta)
	assert.Equal(t, 1_000*thy.BaseUnit, res.VGDelta)
	assert.Equal(t, tier.Bronze, res.Tier)

	user, global, err := f.bl.Statistics(alice)
	require.NoError(t, err)
	assert.Equal(t, 1_000*thy.BaseUnit, user.LockedValue)
	assert.Equal(t, 1_000*thy.BaseUnit, user.VGMinted)
	assert.Equal(t, 1_000*thy.BaseUnit, user.VCBurned)
	assert.Equal(t, tier.Bronze, user.Tier)
	assert.Equal(t, uint64(42), user.LastUpdate)
	assert.Equal(t, 1_000*thy.BaseUnit, global.TotalVCBurned)

	vgBal, err := f.vg.Balance(alice)
	require.NoError(t, err)
	assert.Equal(t, 1_000*thy.BaseUnit, vgBal)

	vcSupply, err := f.vc.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, 9_000*thy.BaseUnit, vcSupply)
}

func TestBurnAndLockZeroAmount(t *testing.T) {
	f := newFixture(t, nil, nil)
	_, err := f.bl.BurnAndLock(alice, 0, 1)
	assert.ErrorIs(t, err, errs.ErrInvalidAmount)
}

func TestBurnAndLockInsufficientBalance(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.fund(t, alice, 10)
	_, err := f.bl.BurnAndLock(alice, 11, 1)
	assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
}

func TestOracleFailureLeavesNoState(t *testing.T) {
	f := newFixture(t, oracle.Failing{}, nil)
	f.fund(t, alice, 1_000)

	_, err := f.bl.BurnAndLock(alice, 1_000, 1)
	assert.ErrorIs(t, err, errs.ErrLiquidityPool)
	assert.True(t, errs.IsTransient(err))

	balance, err := f.vc.Balance(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000), balance)

	_, _, err = f.bl.Statistics(alice)
	assert.ErrorIs(t, err, errs.ErrAccountNotFound)
}

func TestAggregateConsistencyAcrossUsers(t *testing.T) {
	f := newFixture(t, nil, nil)

	owners := make([]thy.Address, 5)
	for i := range owners {
		owners[i] = thy.BytesToAddress([]byte(fmt.Sprintf("owner-%d", i)))
		f.fund(t, owners[i], 1_000_000*thy.BaseUnit)
	}
	for round := 1; round <= 3; round++ {
		for i, owner := range owners {
			amount := uint64(round*(i+1)) * 700 * thy.BaseUnit
			_, err := f.bl.BurnAndLock(owner, amount, uint64(round))
			require.NoError(t, err)
		}
	}

	var sumLocked, sumMinted, sumBurned uint64
	for _, owner := range owners {
		user, _, err := f.bl.Statistics(owner)
		require.NoError(t, err)
		sumLocked += user.LockedValue
		sumMinted += user.VGMinted
		sumBurned += user.VCBurned
	}
	global, err := f.bl.GlobalStatistics()
	require.NoError(t, err)
	assert.Equal(t, sumLocked, global.TotalLockedValue)
	assert.Equal(t, sumMinted, global.TotalVGMinted)
	assert.Equal(t, sumBurned, global.TotalVCBurned)
}

func TestTierNeverDecreases(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.fund(t, alice, 2_000_000*thy.BaseUnit)

	last := tier.None
	for i := 0; i < 12; i++ {
		res, err := f.bl.BurnAndLock(alice, 90_000*thy.BaseUnit, uint64(i))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, uint8(res.Tier), uint8(last))
		last = res.Tier
	}
	assert.Equal(t, tier.Platinum, last)
}

func TestCreateNFTFeeKey(t *testing.T) {
	minter := nft.NewMemoryMinter()
	f := newFixture(t, nil, minter)
	f.fund(t, alice, 10_000*thy.BaseUnit)

	// below the Bronze threshold
	_, err := f.bl.BurnAndLock(alice, 500*thy.BaseUnit, 1)
	require.NoError(t, err)
	_, err = f.bl.CreateNFTFeeKey(alice)
	assert.ErrorIs(t, err, errs.ErrNoEligibleNFT)

	// unknown owner
	_, err = f.bl.CreateNFTFeeKey(bob)
	assert.ErrorIs(t, err, errs.ErrNoEligibleNFT)

	_, err = f.bl.BurnAndLock(alice, 500*thy.BaseUnit, 2)
	require.NoError(t, err)

	id, err := f.bl.CreateNFTFeeKey(alice)
	require.NoError(t, err)
	assert.Equal(t, nft.ID(1), id)

	// the eligibility check does not mutate the record
	before, _, err := f.bl.Statistics(alice)
	require.NoError(t, err)
	_, err = f.bl.CreateNFTFeeKey(alice)
	require.NoError(t, err)
	after, _, err := f.bl.Statistics(alice)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Len(t, minter.Issued(alice), 2)
}

func TestNFTCreationFailureDistinguished(t *testing.T) {
	f := newFixture(t, nil, nft.FailingMinter{Reason: "collection full"})
	f.fund(t, alice, 10_000*thy.BaseUnit)
	_, err := f.bl.BurnAndLock(alice, 1_000*thy.BaseUnit, 1)
	require.NoError(t, err)

	_, err = f.bl.CreateNFTFeeKey(alice)
	assert.ErrorIs(t, err, errs.ErrNFTCreation)
	assert.NotErrorIs(t, err, errs.ErrNoEligibleNFT)
}
