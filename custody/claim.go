// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package custody

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/bitmark-inc/savepool/fault"
	"github.com/bitmark-inc/savepool/storage"
)

// SupplierData - the record attached to a supply proof
type SupplierData struct {
	Box    uint64          `json:"box"`
	Amount decimal.Decimal `json:"amount"`
}

// Claim - a supply proof
type Claim struct {
	Resource string       `json:"resource"`
	ID       string       `json:"id"`
	Data     SupplierData `json:"data"`
}

// Claims - vault of supply proofs keyed by id
type Claims struct {
	pool *storage.PoolHandle
}

// NewClaims - create a claim vault over a storage pool
func NewClaims(pool *storage.PoolHandle) *Claims {
	return &Claims{
		pool: pool,
	}
}

// Put - take custody of a claim
func (c *Claims) Put(trx storage.Transaction, claim *Claim) error {
	if nil == claim || "" == claim.ID {
		return fault.ErrInvalidRecord
	}
	if c.Has(trx, claim.ID) {
		return fault.ErrClaimAlreadyHeld
	}
	packed, err := json.Marshal(claim)
	if nil != err {
		return err
	}
	trx.Put(c.pool, []byte(claim.ID), packed)
	return nil
}

// Take - release custody of a claim
func (c *Claims) Take(trx storage.Transaction, id string) (*Claim, error) {
	key := []byte(id)
	packed := trx.Get(c.pool, key)
	if nil == packed {
		return nil, fault.ErrClaimNotHeld
	}
	var claim Claim
	if err := json.Unmarshal(packed, &claim); nil != err {
		return nil, fault.ErrInvalidRecord
	}
	trx.Delete(c.pool, key)
	return &claim, nil
}

// Has - check custody
func (c *Claims) Has(trx storage.Transaction, id string) bool {
	return trx.Has(c.pool, []byte(id))
}

// Count - number of committed claims held
func (c *Claims) Count() (int, error) {
	n := 0
	err := c.pool.NewFetchCursor().Map(func(key []byte, value []byte) error {
		n += 1
		return nil
	})
	return n, err
}
