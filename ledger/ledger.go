// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - receipt record store
//
// each deposited supply proof has exactly one live receipt record,
// keyed by the receipt serial number.  A record is destroyed when
// the supply proof is withdrawn or its share redeemed.
package ledger

import (
	"encoding/binary"

	"github.com/shopspring/decimal"

	"github.com/bitmark-inc/savepool/amount"
	"github.com/bitmark-inc/savepool/fault"
	"github.com/bitmark-inc/savepool/storage"
)

// Record - data held by a receipt
type Record struct {
	Contributed decimal.Decimal `json:"contributed"`
	ClaimID     string          `json:"claimId"`
	Position    uint64          `json:"position"`
	Used        bool            `json:"used"`
}

// Ledger - operations on receipt records
type Ledger interface {
	Mint(storage.Transaction, uint64, *Record) error
	Read(storage.Transaction, uint64) (*Record, error)
	SetPosition(storage.Transaction, uint64, uint64) error
	MarkUsed(storage.Transaction, uint64) error
	Burn(storage.Transaction, uint64) error
	Holder(storage.Transaction, string) (uint64, error)
}

// Store - ledger kept in a storage pool
type Store struct {
	pool    *storage.PoolHandle
	holders *storage.PoolHandle
}

// New - create a ledger over a record pool and its claim id index
func New(pool *storage.PoolHandle, holders *storage.PoolHandle) *Store {
	return &Store{
		pool:    pool,
		holders: holders,
	}
}

// Mint - create a new record
func (s *Store) Mint(trx storage.Transaction, serial uint64, record *Record) error {
	if nil == record || !amount.Valid(record.Contributed) || 0 == len(record.ClaimID) {
		return fault.ErrInvalidRecord
	}
	key := serialKey(serial)
	if trx.Has(s.pool, key) || trx.Has(s.holders, []byte(record.ClaimID)) {
		return fault.ErrReceiptAlreadyExists
	}
	trx.Put(s.pool, key, record.pack())
	trx.PutN(s.holders, []byte(record.ClaimID), serial)
	return nil
}

// Read - fetch a live record
func (s *Store) Read(trx storage.Transaction, serial uint64) (*Record, error) {
	return unpack(trx.Get(s.pool, serialKey(serial)))
}

// SetPosition - follow a registry relocation
func (s *Store) SetPosition(trx storage.Transaction, serial uint64, position uint64) error {
	return s.update(trx, serial, func(r *Record) {
		r.Position = position
	})
}

// MarkUsed - flag the record as redeemed
func (s *Store) MarkUsed(trx storage.Transaction, serial uint64) error {
	return s.update(trx, serial, func(r *Record) {
		r.Used = true
	})
}

// Burn - destroy a record
func (s *Store) Burn(trx storage.Transaction, serial uint64) error {
	record, err := s.Read(trx, serial)
	if nil != err {
		return err
	}
	trx.Delete(s.pool, serialKey(serial))
	trx.Delete(s.holders, []byte(record.ClaimID))
	return nil
}

// Holder - serial of the live receipt issued for a claim
func (s *Store) Holder(trx storage.Transaction, claimID string) (uint64, error) {
	serial, found := trx.GetN(s.holders, []byte(claimID))
	if !found {
		return 0, fault.ErrReceiptNotFound
	}
	return serial, nil
}

func (s *Store) update(trx storage.Transaction, serial uint64, f func(*Record)) error {
	record, err := s.Read(trx, serial)
	if nil != err {
		return err
	}
	f(record)
	trx.Put(s.pool, serialKey(serial), record.pack())
	return nil
}

// storage key of a receipt
func serialKey(serial uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, serial)
	return key
}

// packed layout:
//   position(8) ++ used(1) ++ len(varint) ++ claim id ++ contributed amount text
func (r *Record) pack() []byte {
	buffer := make([]byte, 9, 9+binary.MaxVarintLen64+len(r.ClaimID)+32)
	binary.BigEndian.PutUint64(buffer[:8], r.Position)
	if r.Used {
		buffer[8] = 1
	}
	n := make([]byte, binary.MaxVarintLen64)
	buffer = append(buffer, n[:binary.PutUvarint(n, uint64(len(r.ClaimID)))]...)
	buffer = append(buffer, r.ClaimID...)
	return append(buffer, amount.Pack(r.Contributed)...)
}

func unpack(buffer []byte) (*Record, error) {
	if nil == buffer {
		return nil, fault.ErrReceiptNotFound
	}
	if len(buffer) < 10 {
		return nil, fault.ErrInvalidRecord
	}

	r := &Record{
		Position: binary.BigEndian.Uint64(buffer[:8]),
		Used:     0 != buffer[8],
	}

	idLength, n := binary.Uvarint(buffer[9:])
	if n <= 0 {
		return nil, fault.ErrInvalidRecord
	}
	start := 9 + n
	end := start + int(idLength)
	if idLength > uint64(len(buffer)) || end > len(buffer) {
		return nil, fault.ErrInvalidRecord
	}
	r.ClaimID = string(buffer[start:end])

	contributed, err := amount.Unpack(buffer[end:])
	if nil != err {
		return nil, err
	}
	r.Contributed = contributed

	return r, nil
}
