// Copyright (c) 2025 The TECH HY developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slot

import (
	"github.com/techhy-ecosystem/tokenomics/thy"
)

// Value is a storage wrapper for a single RLP-encodable record, such as a
// config struct or a tagged authority state.
type Value[T any] struct {
	ctx *Context
	pos thy.Bytes32
}

// NewValue declares a structured slot at the given position.
func NewValue[T any](ctx *Context, pos thy.Bytes32) *Value[T] {
	return &Value[T]{ctx: ctx, pos: pos}
}

// Get returns the stored record.
// The second return value reports whether the slot holds a record.
func (v *Value[T]) Get() (value T, found bool, err error) {
	found, err = v.ctx.state.GetStructured(v.ctx.position(v.pos), &value)
	return
}

// Set stores the record.
func (v *Value[T]) Set(value T) error {
	return v.ctx.state.SetStructured(v.ctx.position(v.pos), value)
}
