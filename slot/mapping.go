// Copyright (c) 2025 The TECH HY developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slot

import (
	"github.com/techhy-ecosystem/tokenomics/thy"
)

// Key constrains mapping keys to byte-representable types.
type Key interface {
	Bytes() []byte
}

// Mapping is a key/value storage abstraction for engine records, similar
// to a mapping in Solidity. Values are RLP-encoded.
type Mapping[K Key, V any] struct {
	ctx  *Context
	base thy.Bytes32
}

// NewMapping declares a mapping rooted at the given position.
func NewMapping[K Key, V any](ctx *Context, pos thy.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{ctx: ctx, base: pos}
}

func (m *Mapping[K, V]) position(key K) thy.Bytes32 {
	return m.ctx.position(thy.Blake2b(key.Bytes(), m.base.Bytes()))
}

// Get returns the value for the given key.
// The second return value reports whether a record exists.
func (m *Mapping[K, V]) Get(key K) (value V, found bool, err error) {
	found, err = m.ctx.state.GetStructured(m.position(key), &value)
	return
}

// Set stores the value for the given key.
func (m *Mapping[K, V]) Set(key K, value V) error {
	return m.ctx.state.SetStructured(m.position(key), value)
}
