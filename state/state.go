// Copyright (c) 2025 The TECH HY developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages the ledger world state. All engine mutations are
// journaled; an operation either commits as a whole or is reverted to its
// checkpoint, so records never observe a partial update.
package state

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	lru "github.com/hashicorp/golang-lru"

	"github.com/techhy-ecosystem/tokenomics/kv"
	"github.com/techhy-ecosystem/tokenomics/stackedmap"
	"github.com/techhy-ecosystem/tokenomics/thy"
)

const readCacheSize = 2048

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

type storageKey thy.Bytes32

// State presents the ledger storage with checkpoint/revert semantics.
type State struct {
	store kv.GetPutter
	cache *lru.Cache // raw slot values already read from the store
	sm    *stackedmap.StackedMap
}

// New creates a state instance over the given store.
func New(store kv.GetPutter) *State {
	cache, _ := lru.New(readCacheSize)
	s := &State{
		store: store,
		cache: cache,
	}
	s.sm = stackedmap.New(func(key any) (any, bool, error) {
		return s.storeGetter(key)
	})
	// base level, so puts before the first checkpoint are legal
	s.sm.Push()
	return s
}

func (s *State) storeGetter(key any) (any, bool, error) {
	sk := key.(storageKey)
	if cached, ok := s.cache.Get(sk); ok {
		return cached.([]byte), true, nil
	}
	raw, err := s.store.Get(sk[:])
	if err != nil {
		if s.store.IsNotFound(err) {
			s.cache.Add(sk, []byte(nil))
			return []byte(nil), true, nil
		}
		return nil, false, &Error{err}
	}
	s.cache.Add(sk, raw)
	return raw, true, nil
}

// GetRaw returns the raw value stored at the given position.
// A missing position yields an empty slice.
func (s *State) GetRaw(pos thy.Bytes32) ([]byte, error) {
	v, _, err := s.sm.Get(storageKey(pos))
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// SetRaw stores the raw value at the given position.
// Storing an empty value deletes the position.
func (s *State) SetRaw(pos thy.Bytes32, raw []byte) {
	s.sm.Put(storageKey(pos), raw)
}

// GetStructured decodes the RLP-encoded value at the given position into val.
// val is left untouched when the position is empty; the second return value
// reports whether a value was present.
func (s *State) GetStructured(pos thy.Bytes32, val any) (bool, error) {
	raw, err := s.GetRaw(pos)
	if err != nil {
		return false, err
	}
	if len(raw) == 0 {
		return false, nil
	}
	if err := rlp.DecodeBytes(raw, val); err != nil {
		return false, &Error{err}
	}
	return true, nil
}

// SetStructured RLP-encodes val and stores it at the given position.
func (s *State) SetStructured(pos thy.Bytes32, val any) error {
	raw, err := rlp.EncodeToBytes(val)
	if err != nil {
		return &Error{err}
	}
	s.SetRaw(pos, raw)
	return nil
}

// NewCheckpoint makes a checkpoint of the current state.
// It returns the checkpoint to be passed to RevertTo.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo reverts the state to the given checkpoint.
func (s *State) RevertTo(checkpoint int) {
	s.sm.PopTo(checkpoint)
}

// Commit writes all journaled changes to the backing store in one batch
// and collapses the journal. Pending checkpoints are consumed.
func (s *State) Commit() error {
	batch := s.store.NewBatch()
	written := make(map[storageKey][]byte)
	var batchErr error
	s.sm.Journal(func(key, value any) bool {
		sk := key.(storageKey)
		raw := value.([]byte)
		if len(raw) == 0 {
			batchErr = batch.Delete(sk[:])
		} else {
			batchErr = batch.Put(sk[:], raw)
		}
		written[sk] = raw
		return batchErr == nil
	})
	if batchErr != nil {
		return &Error{batchErr}
	}
	if err := batch.Write(); err != nil {
		return &Error{err}
	}
	for sk, raw := range written {
		s.cache.Add(sk, raw)
	}
	s.sm.PopTo(0)
	s.sm.Push()
	return nil
}
