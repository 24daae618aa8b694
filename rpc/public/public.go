// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package public - RPC calls open to any depositor
package public

import (
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/savepool/custody"
	"github.com/bitmark-inc/savepool/fault"
	"github.com/bitmark-inc/savepool/pool"
	"github.com/bitmark-inc/savepool/rpc/ratelimit"
)

const (
	rateLimitPool = 200
	rateBurstPool = 100
)

// Pool - type for RPC calls
type Pool struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Pool    pool.Pool
}

// New - create the public handlers
func New(log *logger.L, p pool.Pool) *Pool {
	return &Pool{
		Log:     log,
		Limiter: ratelimit.New(rateLimitPool, rateBurstPool),
		Pool:    p,
	}
}

// ---

// DepositArguments - supply proof to deposit
type DepositArguments struct {
	Claim *custody.Claim `json:"claim"`
}

// DepositReply - receipt for the deposit
type DepositReply struct {
	Receipt *pool.Receipt `json:"receipt"`
}

// Deposit - place a supply proof in the pool
func (p *Pool) Deposit(arguments *DepositArguments, reply *DepositReply) error {
	if err := ratelimit.Limit(p.Limiter); nil != err {
		return err
	}
	if nil == arguments || nil == arguments.Claim {
		return fault.ErrMissingParameters
	}

	p.Log.Infof("Pool.Deposit: %q", arguments.Claim.ID)

	receipt, err := p.Pool.Deposit(arguments.Claim)
	if nil != err {
		return err
	}
	reply.Receipt = receipt
	return nil
}

// ---

// WithdrawArguments - receipt to return
type WithdrawArguments struct {
	Receipt *pool.Receipt `json:"receipt"`
}

// WithdrawReply - the original supply proof
type WithdrawReply struct {
	Claim *custody.Claim `json:"claim"`
}

// Withdraw - give back a receipt for the supply proof
func (p *Pool) Withdraw(arguments *WithdrawArguments, reply *WithdrawReply) error {
	if err := ratelimit.Limit(p.Limiter); nil != err {
		return err
	}
	if nil == arguments || nil == arguments.Receipt {
		return fault.ErrMissingParameters
	}

	p.Log.Infof("Pool.Withdraw: %d", arguments.Receipt.ID)

	claim, err := p.Pool.Withdraw(arguments.Receipt)
	if nil != err {
		return err
	}
	reply.Claim = claim
	return nil
}

// ---

// RedeemArguments - receipt to redeem
type RedeemArguments struct {
	Receipt *pool.Receipt `json:"receipt"`
}

// RedeemReply - assets paid out
type RedeemReply struct {
	LSUs     decimal.Decimal `json:"lsus"`
	Earnings decimal.Decimal `json:"earnings"`
}

// Redeem - exchange a receipt for its share
func (p *Pool) Redeem(arguments *RedeemArguments, reply *RedeemReply) error {
	if err := ratelimit.Limit(p.Limiter); nil != err {
		return err
	}
	if nil == arguments || nil == arguments.Receipt {
		return fault.ErrMissingParameters
	}

	p.Log.Infof("Pool.Redeem: %d", arguments.Receipt.ID)

	shares, err := p.Pool.Redeem(arguments.Receipt)
	if nil != err {
		return err
	}
	reply.LSUs = shares.LSUs
	reply.Earnings = shares.Earnings
	return nil
}

// ---

// StatusArguments - empty arguments for status request
type StatusArguments struct{}

// StatusReply - pool summary
type StatusReply struct {
	pool.Status
}

// Status - return the pool summary
func (p *Pool) Status(_ *StatusArguments, reply *StatusReply) error {
	if err := ratelimit.Limit(p.Limiter); nil != err {
		return err
	}

	status, err := p.Pool.Status()
	if nil != err {
		return err
	}
	reply.Status = *status
	return nil
}

// ---

// ReceiptArguments - receipt serial to look up
type ReceiptArguments struct {
	ID uint64 `json:"id,string"`
}

// ReceiptReply - the receipt record and its fraction of the supply
type ReceiptReply struct {
	pool.ReceiptStatus
}

// Receipt - read the record behind a live receipt
func (p *Pool) Receipt(arguments *ReceiptArguments, reply *ReceiptReply) error {
	if err := ratelimit.Limit(p.Limiter); nil != err {
		return err
	}
	if nil == arguments {
		return fault.ErrMissingParameters
	}

	receipt, err := p.Pool.Receipt(arguments.ID)
	if nil != err {
		return err
	}
	reply.ReceiptStatus = *receipt
	return nil
}
