// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pool

import (
	"bytes"

	"github.com/bitmark-inc/savepool/amount"
	"github.com/bitmark-inc/savepool/custody"
	"github.com/bitmark-inc/savepool/fault"
	"github.com/bitmark-inc/savepool/ledger"
	"github.com/bitmark-inc/savepool/stage"
	"github.com/bitmark-inc/savepool/storage"
)

// Deposit - place a supply proof in the pool in return for a receipt
func (e *Engine) Deposit(claim *custody.Claim) (*Receipt, error) {
	e.Lock()
	defer e.Unlock()

	var receipt *Receipt
	err := e.update(func(trx storage.Transaction) error {
		if err := e.stage.Require(trx, stage.Deposit); nil != err {
			return err
		}

		if nil == claim || e.settings.ClaimResource != claim.Resource {
			return fault.ErrInvalidClaimKind
		}
		contributed := claim.Data.Amount
		if !amount.Valid(contributed) || !contributed.IsPositive() {
			return fault.ErrInvalidAmount
		}

		if err := e.claims.Put(trx, claim); nil != err {
			return err
		}

		supply := e.amountOf(trx, supplyAmountKey).Add(contributed)
		e.setAmount(trx, supplyAmountKey, supply)

		position := e.registry.Register(trx, []byte(claim.ID))

		serial := e.counter(trx, supplyCounterKey)
		record := &ledger.Record{
			Contributed: contributed,
			ClaimID:     claim.ID,
			Position:    position,
		}
		if err := e.ledger.Mint(trx, serial, record); nil != err {
			return err
		}
		trx.PutN(e.state, supplyCounterKey, serial+1)

		receipt = &Receipt{
			Resource: e.settings.ReceiptResource,
			ID:       serial,
		}
		e.log.Debugf("deposit: %q  amount: %s  position: %d  receipt: %d", claim.ID, contributed, position, serial)
		return nil
	})
	if nil != err {
		return nil, err
	}
	return receipt, nil
}

// Withdraw - return a receipt to get the original supply proof back
func (e *Engine) Withdraw(receipt *Receipt) (*custody.Claim, error) {
	e.Lock()
	defer e.Unlock()

	var claim *custody.Claim
	err := e.update(func(trx storage.Transaction) error {
		if err := e.stage.Require(trx, stage.Deposit); nil != err {
			return err
		}

		serial, err := e.serial(receipt)
		if nil != err {
			return err
		}
		record, err := e.ledger.Read(trx, serial)
		if fault.IsErrNotFound(err) {
			return fault.ErrInvalidReceipt
		} else if nil != err {
			return err
		}

		supply := e.amountOf(trx, supplyAmountKey).Sub(record.Contributed)
		if supply.IsNegative() {
			e.log.Criticalf("withdraw: receipt: %d  supply would be: %s", serial, supply)
			return fault.ErrInsufficientBalance
		}
		e.setAmount(trx, supplyAmountKey, supply)

		claim, err = e.claims.Take(trx, record.ClaimID)
		if nil != err {
			return err
		}

		removal, err := e.registry.Unregister(trx, record.Position)
		if nil != err {
			return err
		}
		if !bytes.Equal(removal.Removed, []byte(record.ClaimID)) {
			e.log.Criticalf("withdraw: receipt: %d  position: %d  holds: %q  expected: %q", serial, record.Position, removal.Removed, record.ClaimID)
			return fault.ErrInvalidRecord
		}

		if nil != removal.Relocated {
			moved, err := e.ledger.Holder(trx, string(removal.Relocated.ID))
			if nil != err {
				return err
			}
			err = e.ledger.SetPosition(trx, moved, removal.Relocated.Position)
			if nil != err {
				return err
			}
			e.log.Debugf("withdraw: receipt: %d  moved to position: %d", moved, removal.Relocated.Position)
		}

		if err := e.ledger.Burn(trx, serial); nil != err {
			return err
		}

		e.log.Debugf("withdraw: %q  amount: %s  receipt: %d", claim.ID, record.Contributed, serial)
		return nil
	})
	if nil != err {
		return nil, err
	}
	return claim, nil
}
