// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package custody - vaults holding pooled assets
package custody

import (
	"github.com/shopspring/decimal"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/savepool/amount"
	"github.com/bitmark-inc/savepool/fault"
	"github.com/bitmark-inc/savepool/storage"
)

// Vault - a fungible balance
type Vault struct {
	name []byte
	pool *storage.PoolHandle
}

// NewVault - create a named vault within a storage pool
func NewVault(name string, pool *storage.PoolHandle) *Vault {
	return &Vault{
		name: []byte(name),
		pool: pool,
	}
}

// Amount - balance as seen by a transaction
func (v *Vault) Amount(trx storage.Transaction) decimal.Decimal {
	return v.decode(trx.Get(v.pool, v.name))
}

// Committed - last committed balance
func (v *Vault) Committed() decimal.Decimal {
	return v.decode(v.pool.Get(v.name))
}

// Put - add to the balance
func (v *Vault) Put(trx storage.Transaction, value decimal.Decimal) error {
	if !amount.Valid(value) {
		return fault.ErrInvalidAmount
	}
	trx.Put(v.pool, v.name, amount.Pack(v.Amount(trx).Add(value)))
	return nil
}

// Take - remove from the balance, never going negative
func (v *Vault) Take(trx storage.Transaction, value decimal.Decimal) error {
	if !amount.Valid(value) {
		return fault.ErrInvalidAmount
	}
	balance := v.Amount(trx)
	if value.GreaterThan(balance) {
		return fault.ErrInsufficientBalance
	}
	trx.Put(v.pool, v.name, amount.Pack(balance.Sub(value)))
	return nil
}

func (v *Vault) decode(buffer []byte) decimal.Decimal {
	d, err := amount.Unpack(buffer)
	logger.PanicIfError("vault", err)
	return d
}
