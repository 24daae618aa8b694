// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pool

import (
	"github.com/bitmark-inc/savepool/amount"
	"github.com/bitmark-inc/savepool/exchange"
	"github.com/bitmark-inc/savepool/fault"
	"github.com/bitmark-inc/savepool/stage"
	"github.com/bitmark-inc/savepool/storage"
)

// StartProcessing - close deposits
func (e *Engine) StartProcessing(badge Badge) error {
	e.Lock()
	defer e.Unlock()

	return e.update(func(trx storage.Transaction) error {
		if err := e.authorise(trx, badge); nil != err {
			return err
		}
		return e.stage.StartProcessing(trx)
	})
}

// ClaimRewards - collect validator rewards using the held owner badge
//
// allowed in any stage
func (e *Engine) ClaimRewards(badge Badge, validator string) error {
	e.Lock()
	defer e.Unlock()

	return e.view(func(trx storage.Transaction) error {
		if err := e.authorise(trx, badge); nil != err {
			return err
		}
		if "" == validator {
			return fault.ErrMissingParameters
		}
		if err := e.exchange.ClaimRewards(e.settings.OwnerBadge, validator); nil != err {
			e.log.Errorf("claim rewards: %q  error: %s", validator, err)
			return err
		}
		e.log.Infof("claimed rewards for: %q", validator)
		return nil
	})
}

// ProcessNext - pass the supply proof at the cursor to the exchange
func (e *Engine) ProcessNext(badge Badge) (*exchange.Output, error) {
	e.Lock()
	defer e.Unlock()

	var output *exchange.Output
	err := e.update(func(trx storage.Transaction) error {
		if err := e.authorise(trx, badge); nil != err {
			return err
		}
		if err := e.stage.Require(trx, stage.Processing); nil != err {
			return err
		}

		cursor := e.counter(trx, cursorKey)
		id, err := e.registry.At(trx, cursor)
		if nil != err {
			return err
		}

		claim, err := e.claims.Take(trx, string(id))
		if nil != err {
			return err
		}

		output, err = e.exchange.Withdraw(claim)
		if nil != err {
			e.log.Errorf("process: %q  exchange error: %s", claim.ID, err)
			return err
		}
		if nil == output || !amount.Valid(output.Earnings) || !amount.Valid(output.LSUs) {
			e.log.Errorf("process: %q  invalid exchange output", claim.ID)
			return fault.ErrExchangeFailed
		}

		if err := e.earnings.Put(trx, output.Earnings); nil != err {
			return err
		}
		if err := e.lsus.Put(trx, output.LSUs); nil != err {
			return err
		}
		trx.PutN(e.state, cursorKey, cursor+1)

		e.log.Debugf("process: %d: %q  earnings: %s  lsus: %s", cursor, claim.ID, output.Earnings, output.LSUs)
		return nil
	})
	if nil != err {
		return nil, err
	}
	return output, nil
}

// FinishProcessing - open redemption and fix the totals to be shared
func (e *Engine) FinishProcessing(badge Badge) error {
	e.Lock()
	defer e.Unlock()

	return e.update(func(trx storage.Transaction) error {
		if err := e.authorise(trx, badge); nil != err {
			return err
		}
		if err := e.stage.FinishProcessing(trx); nil != err {
			return err
		}

		earnings := e.earnings.Amount(trx)
		lsus := e.lsus.Amount(trx)
		e.setAmount(trx, finalEarningsKey, earnings)
		e.setAmount(trx, finalLSUsKey, lsus)

		cursor := e.counter(trx, cursorKey)
		entries := e.registry.Entries(trx)
		if cursor != entries {
			e.log.Warnf("finish: %d of %d supply proofs processed", cursor, entries)
		}
		e.log.Infof("finish: earnings: %s  lsus: %s", earnings, lsus)
		return nil
	})
}

// Redeem - exchange a receipt for its share of both vaults
func (e *Engine) Redeem(receipt *Receipt) (*Shares, error) {
	e.Lock()
	defer e.Unlock()

	var shares *Shares
	err := e.update(func(trx storage.Transaction) error {
		if err := e.stage.Require(trx, stage.Redemption); nil != err {
			return err
		}

		serial, err := e.serial(receipt)
		if nil != err {
			return err
		}
		// a redeemed receipt is burned so it reads as not found
		record, err := e.ledger.Read(trx, serial)
		if fault.IsErrNotFound(err) {
			return fault.ErrInvalidReceipt
		} else if nil != err {
			return err
		}

		supply := e.amountOf(trx, supplyAmountKey)
		s := &Shares{
			LSUs:     amount.Share(record.Contributed, supply, e.amountOf(trx, finalLSUsKey)),
			Earnings: amount.Share(record.Contributed, supply, e.amountOf(trx, finalEarningsKey)),
		}

		if err := e.ledger.MarkUsed(trx, serial); nil != err {
			return err
		}
		if err := e.ledger.Burn(trx, serial); nil != err {
			return err
		}
		if err := e.lsus.Take(trx, s.LSUs); nil != err {
			return err
		}
		if err := e.earnings.Take(trx, s.Earnings); nil != err {
			return err
		}

		shares = s
		e.log.Debugf("redeem: receipt: %d  lsus: %s  earnings: %s", serial, s.LSUs, s.Earnings)
		return nil
	})
	if nil != err {
		return nil, err
	}
	return shares, nil
}
