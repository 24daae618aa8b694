// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pool

import (
	"github.com/shopspring/decimal"

	"github.com/bitmark-inc/savepool/amount"
	"github.com/bitmark-inc/savepool/ledger"
	"github.com/bitmark-inc/savepool/storage"
)

// Status - summary of the pool
//
// Pending counts registered supply proofs not yet passed to the
// exchange; after redemption opens these remain in custody
type Status struct {
	Stage         string          `json:"stage"`
	SupplyAmount  decimal.Decimal `json:"supplyAmount"`
	SupplyCounter uint64          `json:"supplyCounter"`
	Cursor        uint64          `json:"cursor"`
	Entries       uint64          `json:"entries"`
	Pending       uint64          `json:"pending"`
	Held          int             `json:"held"`
	Earnings      decimal.Decimal `json:"earnings"`
	LSUs          decimal.Decimal `json:"lsus"`
	FinalEarnings decimal.Decimal `json:"finalEarnings"`
	FinalLSUs     decimal.Decimal `json:"finalLSUs"`
}

// ReceiptStatus - a live receipt and its part of the supply
type ReceiptStatus struct {
	ledger.Record
	Fraction decimal.Decimal `json:"fraction"`
}

// Status - read the current pool summary
func (e *Engine) Status() (*Status, error) {
	e.Lock()
	defer e.Unlock()

	var status *Status
	err := e.view(func(trx storage.Transaction) error {
		current, err := e.stage.Current(trx)
		if nil != err {
			return err
		}
		held, err := e.claims.Count()
		if nil != err {
			return err
		}

		cursor := e.counter(trx, cursorKey)
		entries := e.registry.Entries(trx)
		pending := uint64(0)
		if entries > cursor {
			pending = entries - cursor
		}

		status = &Status{
			Stage:         current.String(),
			SupplyAmount:  e.amountOf(trx, supplyAmountKey),
			SupplyCounter: e.counter(trx, supplyCounterKey),
			Cursor:        cursor,
			Entries:       entries,
			Pending:       pending,
			Held:          held,
			Earnings:      e.earnings.Amount(trx),
			LSUs:          e.lsus.Amount(trx),
			FinalEarnings: e.amountOf(trx, finalEarningsKey),
			FinalLSUs:     e.amountOf(trx, finalLSUsKey),
		}
		return nil
	})
	if nil != err {
		return nil, err
	}
	return status, nil
}

// Receipt - a live receipt with the fraction of the supply it will redeem
func (e *Engine) Receipt(serial uint64) (*ReceiptStatus, error) {
	e.Lock()
	defer e.Unlock()

	var receipt *ReceiptStatus
	err := e.view(func(trx storage.Transaction) error {
		record, err := e.ledger.Read(trx, serial)
		if nil != err {
			return err
		}
		receipt = &ReceiptStatus{
			Record:   *record,
			Fraction: amount.Fraction(record.Contributed, e.amountOf(trx, supplyAmountKey)),
		}
		return nil
	})
	if nil != err {
		return nil, err
	}
	return receipt, nil
}
