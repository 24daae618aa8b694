// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// All modifications are made through a Transaction which collects
// them in a single LevelDB batch.  Reads through the transaction see
// its own uncommitted writes; reads through a pool handle only see
// committed data.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. position     = big endian uint64 (8 bytes)
// 4. serial       = receipt number as big endian uint64 (8 bytes)
// 5. claim id     = supply proof local id as raw bytes
// 6. amount       = decimal text (see package amount)
//
// State:
//
//   S ++ name                  - scalar pool state (stage, counters, totals, badge digest)
//                                data: uint64 or amount
//
// Registry:
//
//   K ++ position              - claim awaiting processing
//                                data: claim id
//
// Receipts:
//
//   R ++ serial                - receipt record
//                                data: packed ledger record
//
//   H ++ claim id              - index from claim to its live receipt
//                                data: serial
//
// Custody:
//
//   C ++ claim id              - supply proof held by the pool
//                                data: packed claim
//
// Vaults:
//
//   V ++ name                  - fungible vault balance
//                                data: amount
package storage
