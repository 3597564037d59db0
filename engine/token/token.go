// Copyright (c) 2025 The TECH HY developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token implements the ledger/account service for one fungible
// mint: supply and authority state plus per-owner balance records mutated
// only via atomic debit/credit.
package token

import (
	"github.com/techhy-ecosystem/tokenomics/errs"
	"github.com/techhy-ecosystem/tokenomics/slot"
	"github.com/techhy-ecosystem/tokenomics/state"
	"github.com/techhy-ecosystem/tokenomics/thy"
	"github.com/techhy-ecosystem/tokenomics/umath"
)

var (
	slotSupply        = thy.BytesToBytes32([]byte("total-supply"))
	slotBurned        = thy.BytesToBytes32([]byte("total-burned"))
	slotMintAuthority = thy.BytesToBytes32([]byte("mint-authority"))
	slotFreezeAuth    = thy.BytesToBytes32([]byte("freeze-authority"))
	slotBalances      = thy.BytesToBytes32([]byte("balances"))
)

// mintAuthority is the tagged authority state. Revocation is one-way;
// a revoked mint can never be minted again.
type mintAuthority struct {
	Addr    thy.Address
	Revoked bool
}

// Token binds the mint state of one fungible asset.
type Token struct {
	ctx       *slot.Context
	supply    *slot.Uint64
	burned    *slot.Uint64
	authority *slot.Value[mintAuthority]
	balances  *slot.Mapping[thy.Address, uint64]
	freeze    *slot.OnceAddress
}

// New creates a token instance bound to the given mint namespace.
func New(mint thy.Address, st *state.State) *Token {
	ctx := slot.NewContext(mint, st)
	return &Token{
		ctx:       ctx,
		supply:    slot.NewUint64(ctx, slotSupply),
		burned:    slot.NewUint64(ctx, slotBurned),
		authority: slot.NewValue[mintAuthority](ctx, slotMintAuthority),
		balances:  slot.NewMapping[thy.Address, uint64](ctx, slotBalances),
		freeze:    slot.NewOnceAddress(ctx, slotFreezeAuth),
	}
}

// Address returns the mint namespace address.
func (t *Token) Address() thy.Address {
	return t.ctx.Namespace()
}

// Initialize assigns the mint authority. It fails with ErrAlreadySet when
// called twice; a mint is initialized exactly once.
func (t *Token) Initialize(authority thy.Address) error {
	_, found, err := t.authority.Get()
	if err != nil {
		return err
	}
	if found {
		return errs.ErrAlreadySet
	}
	return t.authority.Set(mintAuthority{Addr: authority})
}

func (t *Token) getAuthority() (mintAuthority, error) {
	auth, _, err := t.authority.Get()
	return auth, err
}

// MintAuthority returns the mint authority address and whether it has
// been permanently revoked.
func (t *Token) MintAuthority() (thy.Address, bool, error) {
	auth, err := t.getAuthority()
	return auth.Addr, auth.Revoked, err
}

// RevokeMintAuthority permanently revokes minting. One-way; only the
// current authority may revoke.
func (t *Token) RevokeMintAuthority(caller thy.Address) error {
	auth, err := t.getAuthority()
	if err != nil {
		return err
	}
	if auth.Revoked || auth.Addr != caller {
		return errs.ErrUnauthorized
	}
	auth.Revoked = true
	return t.authority.Set(auth)
}

// SetFreezeAuthority assigns the freeze authority to the DAO address.
// Settable exactly once, by the mint authority only.
func (t *Token) SetFreezeAuthority(caller, dao thy.Address) error {
	auth, err := t.getAuthority()
	if err != nil {
		return err
	}
	if auth.Addr != caller {
		return errs.ErrUnauthorized
	}
	return t.freeze.Set(dao)
}

// FreezeAuthority returns the freeze authority and whether it is set.
func (t *Token) FreezeAuthority() (thy.Address, bool, error) {
	return t.freeze.Get()
}

// TotalSupply returns the circulating supply in base units.
func (t *Token) TotalSupply() (uint64, error) {
	return t.supply.Get()
}

// TotalBurned returns the amount permanently removed from circulation.
func (t *Token) TotalBurned() (uint64, error) {
	return t.burned.Get()
}

// CreateAccount ensures a balance record exists for the owner.
// Idempotent: an existing record is left untouched.
func (t *Token) CreateAccount(owner thy.Address) error {
	_, found, err := t.balances.Get(owner)
	if err != nil {
		return err
	}
	if found {
		return nil
	}
	return t.balances.Set(owner, 0)
}

// Exists reports whether a balance record exists for the owner.
func (t *Token) Exists(owner thy.Address) (bool, error) {
	_, found, err := t.balances.Get(owner)
	return found, err
}

// Balance returns the owner's balance.
// It fails with ErrAccountNotFound if the record does not exist.
func (t *Token) Balance(owner thy.Address) (uint64, error) {
	balance, found, err := t.balances.Get(owner)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, errs.ErrAccountNotFound
	}
	return balance, nil
}

// Credit adds amount to the owner's balance, lazily creating the record
// on first credit.
func (t *Token) Credit(owner thy.Address, amount uint64) error {
	balance, _, err := t.balances.Get(owner)
	if err != nil {
		return err
	}
	sum, err := umath.CheckedAdd(balance, amount)
	if err != nil {
		return err
	}
	return t.balances.Set(owner, sum)
}

// Debit subtracts amount from the owner's balance.
// It fails with ErrAccountNotFound if the record does not exist, or
// ErrInsufficientBalance if the balance is lower than amount.
func (t *Token) Debit(owner thy.Address, amount uint64) error {
	balance, found, err := t.balances.Get(owner)
	if err != nil {
		return err
	}
	if !found {
		return errs.ErrAccountNotFound
	}
	if balance < amount {
		return errs.ErrInsufficientBalance
	}
	return t.balances.Set(owner, balance-amount)
}

// Mint creates amount new tokens into the recipient's account.
// Only the unrevoked mint authority may mint.
func (t *Token) Mint(caller, to thy.Address, amount uint64) error {
	auth, err := t.getAuthority()
	if err != nil {
		return err
	}
	if auth.Revoked || auth.Addr != caller {
		return errs.ErrUnauthorized
	}
	if err := t.supply.Add(amount); err != nil {
		return err
	}
	return t.Credit(to, amount)
}

// Burn debits amount from the owner and permanently removes it from the
// circulating supply. Burned tokens are never re-credited.
func (t *Token) Burn(owner thy.Address, amount uint64) error {
	if err := t.Debit(owner, amount); err != nil {
		return err
	}
	if err := t.supply.Sub(amount); err != nil {
		return err
	}
	return t.burned.Add(amount)
}

// Transfer moves amount between two accounts without tax.
func (t *Token) Transfer(from, to thy.Address, amount uint64) error {
	if err := t.Debit(from, amount); err != nil {
		return err
	}
	return t.Credit(to, amount)
}
