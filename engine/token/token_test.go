// Copyright (c) 2025 The TECH HY developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techhy-ecosystem/tokenomics/errs"
	"github.com/techhy-ecosystem/tokenomics/lvldb"
	"github.com/techhy-ecosystem/tokenomics/state"
	"github.com/techhy-ecosystem/tokenomics/thy"
)

var (
	authority = thy.BytesToAddress([]byte("authority"))
	alice     = thy.BytesToAddress([]byte("alice"))
	bob       = thy.BytesToAddress([]byte("bob"))
)

func newTestToken(t *testing.T) *Token {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	tok := New(thy.BytesToAddress([]byte("vc-mint")), state.New(db))
	require.NoError(t, tok.Initialize(authority))
	return tok
}

func TestInitializeOnce(t *testing.T) {
	tok := newTestToken(t)
	assert.ErrorIs(t, tok.Initialize(authority), errs.ErrAlreadySet)
}

func TestMintAndBalances(t *testing.T) {
	tok := newTestToken(t)

	require.NoError(t, tok.Mint(authority, alice, 1000))

	supply, err := tok.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), supply)

	balance, err := tok.Balance(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), balance)

	// not the authority
	assert.ErrorIs(t, tok.Mint(alice, alice, 1), errs.ErrUnauthorized)
}

func TestRevokeMintAuthority(t *testing.T) {
	tok := newTestToken(t)

	assert.ErrorIs(t, tok.RevokeMintAuthority(alice), errs.ErrUnauthorized)
	require.NoError(t, tok.RevokeMintAuthority(authority))

	_, revoked, err := tok.MintAuthority()
	require.NoError(t, err)
	assert.True(t, revoked)

	// minting after revocation fails, even for the former authority
	assert.ErrorIs(t, tok.Mint(authority, alice, 1), errs.ErrUnauthorized)
	// revocation is one-way and unrepeatable
	assert.ErrorIs(t, tok.RevokeMintAuthority(authority), errs.ErrUnauthorized)
}

func TestFreezeAuthorityOneWay(t *testing.T) {
	tok := newTestToken(t)
	dao := thy.BytesToAddress([]byte("dao"))

	_, set, err := tok.FreezeAuthority()
	require.NoError(t, err)
	assert.False(t, set)

	assert.ErrorIs(t, tok.SetFreezeAuthority(alice, dao), errs.ErrUnauthorized)
	require.NoError(t, tok.SetFreezeAuthority(authority, dao))

	got, set, err := tok.FreezeAuthority()
	require.NoError(t, err)
	assert.True(t, set)
	assert.Equal(t, dao, got)

	assert.ErrorIs(t, tok.SetFreezeAuthority(authority, alice), errs.ErrAlreadySet)
}

func TestDebitCredit(t *testing.T) {
	tok := newTestToken(t)

	// debit of a never-credited account
	assert.ErrorIs(t, tok.Debit(bob, 1), errs.ErrAccountNotFound)
	_, err := tok.Balance(bob)
	assert.ErrorIs(t, err, errs.ErrAccountNotFound)

	// lazy creation on first credit
	require.NoError(t, tok.Credit(bob, 50))
	balance, err := tok.Balance(bob)
	require.NoError(t, err)
	assert.Equal(t, uint64(50), balance)

	assert.ErrorIs(t, tok.Debit(bob, 51), errs.ErrInsufficientBalance)
	require.NoError(t, tok.Debit(bob, 50))

	// drained account still exists with zero balance
	balance, err = tok.Balance(bob)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balance)
}

func TestCreateAccountIdempotent(t *testing.T) {
	tok := newTestToken(t)

	require.NoError(t, tok.CreateAccount(alice))
	require.NoError(t, tok.Credit(alice, 10))
	// re-creation leaves the record untouched
	require.NoError(t, tok.CreateAccount(alice))

	balance, err := tok.Balance(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), balance)
}

func TestBurn(t *testing.T) {
	tok := newTestToken(t)
	require.NoError(t, tok.Mint(authority, alice, 1000))

	require.NoError(t, tok.Burn(alice, 400))

	supply, _ := tok.TotalSupply()
	burned, _ := tok.TotalBurned()
	balance, _ := tok.Balance(alice)
	assert.Equal(t, uint64(600), supply)
	assert.Equal(t, uint64(400), burned)
	assert.Equal(t, uint64(600), balance)

	assert.ErrorIs(t, tok.Burn(alice, 601), errs.ErrInsufficientBalance)
}

func TestTransfer(t *testing.T) {
	tok := newTestToken(t)
	require.NoError(t, tok.Mint(authority, alice, 100))

	require.NoError(t, tok.Transfer(alice, bob, 30))

	aBal, _ := tok.Balance(alice)
	bBal, _ := tok.Balance(bob)
	assert.Equal(t, uint64(70), aBal)
	assert.Equal(t, uint64(30), bBal)
}
