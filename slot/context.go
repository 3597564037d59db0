// Copyright (c) 2025 The TECH HY developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package slot provides typed storage slots for the tokenomics engines,
// similar to state variables of a smart contract. Every engine owns a
// namespace address; slot positions are derived from it so engines can
// never collide in storage.
package slot

import (
	"github.com/techhy-ecosystem/tokenomics/state"
	"github.com/techhy-ecosystem/tokenomics/thy"
)

// Context binds an engine namespace to the world state.
type Context struct {
	ns    thy.Address
	state *state.State
}

// NewContext creates a storage context for the given engine namespace.
func NewContext(ns thy.Address, st *state.State) *Context {
	return &Context{ns: ns, state: st}
}

// Namespace returns the engine namespace address.
func (c *Context) Namespace() thy.Address {
	return c.ns
}

// State returns the underlying state.
func (c *Context) State() *state.State {
	return c.state
}

func (c *Context) position(pos thy.Bytes32) thy.Bytes32 {
	return thy.Blake2b(c.ns.Bytes(), pos.Bytes())
}
