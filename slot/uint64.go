// Copyright (c) 2025 The TECH HY developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slot

import (
	"github.com/techhy-ecosystem/tokenomics/thy"
	"github.com/techhy-ecosystem/tokenomics/umath"
)

// Uint64 is a storage wrapper for a single uint64 value, such as a supply
// counter or a global aggregate. Add and Sub are checked; aggregates can
// neither wrap nor go negative.
type Uint64 struct {
	ctx *Context
	pos thy.Bytes32
}

// NewUint64 declares a uint64 slot at the given position.
func NewUint64(ctx *Context, pos thy.Bytes32) *Uint64 {
	return &Uint64{ctx: ctx, pos: pos}
}

// Get returns the stored value, zero if the slot is empty.
func (u *Uint64) Get() (uint64, error) {
	var value uint64
	if _, err := u.ctx.state.GetStructured(u.ctx.position(u.pos), &value); err != nil {
		return 0, err
	}
	return value, nil
}

// Set stores the value.
func (u *Uint64) Set(value uint64) error {
	return u.ctx.state.SetStructured(u.ctx.position(u.pos), value)
}

// Add increases the stored value, failing with ErrMathOverflow on wrap.
func (u *Uint64) Add(delta uint64) error {
	value, err := u.Get()
	if err != nil {
		return err
	}
	sum, err := umath.CheckedAdd(value, delta)
	if err != nil {
		return err
	}
	return u.Set(sum)
}

// Sub decreases the stored value, failing with ErrInvalidAmount when the
// stored value is lower than delta.
func (u *Uint64) Sub(delta uint64) error {
	value, err := u.Get()
	if err != nil {
		return err
	}
	diff, err := umath.CheckedSub(value, delta)
	if err != nil {
		return err
	}
	return u.Set(diff)
}
