// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package operator - RPC calls that require the operator badge
package operator

import (
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/savepool/fault"
	"github.com/bitmark-inc/savepool/pool"
	"github.com/bitmark-inc/savepool/rpc/ratelimit"
)

// badge checked calls are limited more strictly
const (
	rateLimitOperator = 5
	rateBurstOperator = 5
)

// Operator - type for RPC calls
type Operator struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Pool    pool.Pool
}

// New - create the operator handlers
func New(log *logger.L, p pool.Pool) *Operator {
	return &Operator{
		Log:     log,
		Limiter: ratelimit.New(rateLimitOperator, rateBurstOperator),
		Pool:    p,
	}
}

// BadgeArguments - arguments for calls needing only the badge
type BadgeArguments struct {
	Badge pool.Badge `json:"badge"`
}

// StageReply - stage after the call
type StageReply struct {
	Stage string `json:"stage"`
}

// StartProcessing - close deposits
func (o *Operator) StartProcessing(arguments *BadgeArguments, reply *StageReply) error {
	if err := ratelimit.Limit(o.Limiter); nil != err {
		return err
	}
	if nil == arguments {
		return fault.ErrMissingParameters
	}

	o.Log.Info("Operator.StartProcessing")

	if err := o.Pool.StartProcessing(arguments.Badge); nil != err {
		return err
	}
	return o.stage(reply)
}

// ---

// ClaimRewardsArguments - validator whose rewards are claimed
type ClaimRewardsArguments struct {
	Badge     pool.Badge `json:"badge"`
	Validator string     `json:"validator"`
}

// ClaimRewardsReply - empty result
type ClaimRewardsReply struct{}

// ClaimRewards - collect validator rewards
func (o *Operator) ClaimRewards(arguments *ClaimRewardsArguments, reply *ClaimRewardsReply) error {
	if err := ratelimit.Limit(o.Limiter); nil != err {
		return err
	}
	if nil == arguments || "" == arguments.Validator {
		return fault.ErrMissingParameters
	}

	o.Log.Infof("Operator.ClaimRewards: %q", arguments.Validator)

	return o.Pool.ClaimRewards(arguments.Badge, arguments.Validator)
}

// ---

// ProcessNextReply - what the exchange returned
type ProcessNextReply struct {
	Earnings  decimal.Decimal `json:"earnings"`
	LSUs      decimal.Decimal `json:"lsus"`
	Processed uint64          `json:"processed"`
	Remaining uint64          `json:"remaining"`
}

// ProcessNext - pass the next supply proof to the exchange
func (o *Operator) ProcessNext(arguments *BadgeArguments, reply *ProcessNextReply) error {
	if err := ratelimit.Limit(o.Limiter); nil != err {
		return err
	}
	if nil == arguments {
		return fault.ErrMissingParameters
	}

	out, err := o.Pool.ProcessNext(arguments.Badge)
	if nil != err {
		return err
	}

	status, err := o.Pool.Status()
	if nil != err {
		return err
	}

	reply.Earnings = out.Earnings
	reply.LSUs = out.LSUs
	reply.Processed = status.Cursor
	reply.Remaining = status.Entries - status.Cursor
	return nil
}

// FinishProcessing - open redemption
func (o *Operator) FinishProcessing(arguments *BadgeArguments, reply *StageReply) error {
	if err := ratelimit.Limit(o.Limiter); nil != err {
		return err
	}
	if nil == arguments {
		return fault.ErrMissingParameters
	}

	o.Log.Info("Operator.FinishProcessing")

	if err := o.Pool.FinishProcessing(arguments.Badge); nil != err {
		return err
	}
	return o.stage(reply)
}

func (o *Operator) stage(reply *StageReply) error {
	status, err := o.Pool.Status()
	if nil != err {
		return err
	}
	reply.Stage = status.Stage
	return nil
}
