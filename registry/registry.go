// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package registry - dense index of claims awaiting processing
//
// positions 0 .. Entries-1 are always occupied; removing from the
// middle moves the last entry into the hole so the set stays
// contiguous.
package registry

import (
	"encoding/binary"

	"github.com/bitmark-inc/savepool/fault"
	"github.com/bitmark-inc/savepool/storage"
)

// key in the state pool
var entriesKey = []byte("entries")

// Registry - position -> claim id table
type Registry struct {
	entries *storage.PoolHandle
	state   *storage.PoolHandle
}

// Relocation - an entry that moved to fill a removed slot
type Relocation struct {
	ID       []byte
	Position uint64
}

// Removal - result of Unregister
//
// when Relocated is not nil the owner of that claim must have its
// position changed to Relocated.Position
type Removal struct {
	Removed   []byte
	Relocated *Relocation
}

// Entry - a registry slot
type Entry struct {
	Position uint64
	ID       []byte
}

// New - create a registry over a position pool with its count in a state pool
func New(entries *storage.PoolHandle, state *storage.PoolHandle) *Registry {
	return &Registry{
		entries: entries,
		state:   state,
	}
}

// Entries - number of occupied positions
func (r *Registry) Entries(trx storage.Transaction) uint64 {
	n, _ := trx.GetN(r.state, entriesKey)
	return n
}

// Register - append a claim, returning its position
func (r *Registry) Register(trx storage.Transaction, id []byte) uint64 {
	position := r.Entries(trx)
	trx.Put(r.entries, positionKey(position), id)
	trx.PutN(r.state, entriesKey, position+1)
	return position
}

// Unregister - remove the claim at a position and compact
func (r *Registry) Unregister(trx storage.Transaction, position uint64) (*Removal, error) {
	count := r.Entries(trx)
	if position >= count {
		return nil, fault.ErrPositionNotFound
	}

	removed := trx.Get(r.entries, positionKey(position))
	if nil == removed {
		return nil, fault.ErrPositionNotFound
	}

	last := count - 1
	result := &Removal{
		Removed: removed,
	}

	if position != last {
		moved := trx.Get(r.entries, positionKey(last))
		if nil == moved {
			return nil, fault.ErrPositionNotFound
		}
		trx.Put(r.entries, positionKey(position), moved)
		result.Relocated = &Relocation{
			ID:       moved,
			Position: position,
		}
	}

	trx.Delete(r.entries, positionKey(last))
	trx.PutN(r.state, entriesKey, last)

	return result, nil
}

// At - the claim at a processing cursor
func (r *Registry) At(trx storage.Transaction, cursor uint64) ([]byte, error) {
	if cursor >= r.Entries(trx) {
		return nil, fault.ErrCursorOutOfRange
	}
	id := trx.Get(r.entries, positionKey(cursor))
	if nil == id {
		return nil, fault.ErrCursorOutOfRange
	}
	return id, nil
}

// Page - up to count committed entries from start in position order
func (r *Registry) Page(start uint64, count int) ([]Entry, error) {
	elements, err := r.entries.NewFetchCursor().Seek(positionKey(start)).Fetch(count)
	if nil != err {
		return nil, err
	}
	entries := make([]Entry, 0, len(elements))
	for _, e := range elements {
		if 8 != len(e.Key) {
			return nil, fault.ErrInvalidRecord
		}
		entries = append(entries, Entry{
			Position: binary.BigEndian.Uint64(e.Key),
			ID:       e.Value,
		})
	}
	return entries, nil
}

// big endian so that leveldb order is position order
func positionKey(position uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, position)
	return key
}
