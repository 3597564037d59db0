// Copyright (c) 2025 The TECH HY developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package nft abstracts the collection that issues fee-key NFTs to
// tier-eligible users.
package nft

import (
	"fmt"
	"sync"

	"github.com/techhy-ecosystem/tokenomics/engine/tier"
	"github.com/techhy-ecosystem/tokenomics/thy"
)

// ID identifies an issued fee key within its collection.
type ID uint64

// Minter issues a fee-key NFT for an owner at a given tier. Minting is
// a side-effecting external call; a failure must abort the enclosing
// operation without leaving ledger state behind.
type Minter interface {
	MintFeeKey(owner thy.Address, t tier.Tier) (ID, error)
}

// MemoryMinter issues sequential IDs in memory. It backs single-node
// deployments and tests.
type MemoryMinter struct {
	mu     sync.Mutex
	nextID ID
	issued map[thy.Address][]ID
}

func NewMemoryMinter() *MemoryMinter {
	return &MemoryMinter{nextID: 1, issued: make(map[thy.Address][]ID)}
}

func (m *MemoryMinter) MintFeeKey(owner thy.Address, _ tier.Tier) (ID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.issued[owner] = append(m.issued[owner], id)
	return id, nil
}

// Issued returns the IDs minted for an owner, oldest first.
func (m *MemoryMinter) Issued(owner thy.Address) []ID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ID(nil), m.issued[owner]...)
}

// FailingMinter rejects every mint with the given reason. It exists
// for failure injection in tests.
type FailingMinter struct {
	Reason string
}

func (f FailingMinter) MintFeeKey(thy.Address, tier.Tier) (ID, error) {
	return 0, fmt.Errorf("mint fee key: %s", f.Reason)
}
