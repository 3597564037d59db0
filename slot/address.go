// Copyright (c) 2025 The TECH HY developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slot

import (
	"github.com/techhy-ecosystem/tokenomics/errs"
	"github.com/techhy-ecosystem/tokenomics/thy"
)

// address is a storage wrapper for a single address value.
type address struct {
	ctx *Context
	pos thy.Bytes32
}

// Set stores the address.
func (a *address) Set(addr thy.Address) error {
	return a.ctx.state.SetStructured(a.ctx.position(a.pos), addr)
}

// OnceAddress is an address slot with a one-way Unset -> Set transition,
// used for authorities that may be assigned exactly once (e.g. the VG
// freeze authority). A second Set fails.
type OnceAddress struct {
	inner address
}

// NewOnceAddress declares a set-once address slot at the given position.
func NewOnceAddress(ctx *Context, pos thy.Bytes32) *OnceAddress {
	return &OnceAddress{inner: address{ctx: ctx, pos: pos}}
}

// Get returns the stored address and whether the transition has happened.
func (o *OnceAddress) Get() (thy.Address, bool, error) {
	var addr thy.Address
	found, err := o.inner.ctx.state.GetStructured(o.inner.ctx.position(o.inner.pos), &addr)
	if err != nil {
		return thy.Address{}, false, err
	}
	return addr, found, nil
}

// Set performs the Unset -> Set transition.
// It fails with ErrAlreadySet if the slot was assigned before.
func (o *OnceAddress) Set(addr thy.Address) error {
	_, set, err := o.Get()
	if err != nil {
		return err
	}
	if set {
		return errs.ErrAlreadySet
	}
	return o.inner.Set(addr)
}
