// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stage

import (
	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/savepool/fault"
	"github.com/bitmark-inc/savepool/storage"
)

// Stage - type to hold the process stage
type Stage uint64

// all possible stages
const (
	Deposit Stage = iota
	Processing
	Redemption
	maximum
)

// key in the state pool
var stageKey = []byte("stage")

// Controller - gates operations on the current stage
type Controller struct {
	log   *logger.L
	state *storage.PoolHandle
}

// New - create a controller over the stage record in a state pool
func New(log *logger.L, state *storage.PoolHandle) *Controller {
	return &Controller{
		log:   log,
		state: state,
	}
}

// Current - read the stage as seen by a transaction
//
// an absent record is the initial Deposit stage
func (c *Controller) Current(trx storage.Transaction) (Stage, error) {
	n, _ := trx.GetN(c.state, stageKey)
	s := Stage(n)
	if !s.Valid() {
		c.log.Criticalf("stored stage: %d is not valid", n)
		return s, fault.ErrInvalidRecord
	}
	return s, nil
}

// Committed - read the last committed stage
func (c *Controller) Committed() Stage {
	n, _ := c.state.GetN(stageKey)
	return Stage(n)
}

// Require - fail unless the current stage is s
func (c *Controller) Require(trx storage.Transaction, s Stage) error {
	current, err := c.Current(trx)
	if nil != err {
		return err
	}
	if s != current {
		return fault.ErrWrongStage
	}
	return nil
}

// StartProcessing - close deposits and allow processing
func (c *Controller) StartProcessing(trx storage.Transaction) error {
	return c.advance(trx, Deposit)
}

// FinishProcessing - close processing and allow redemption
func (c *Controller) FinishProcessing(trx storage.Transaction) error {
	return c.advance(trx, Processing)
}

// move from the expected stage to the next one
func (c *Controller) advance(trx storage.Transaction, from Stage) error {
	if err := c.Require(trx, from); nil != err {
		return err
	}
	to := from + 1
	trx.PutN(c.state, stageKey, uint64(to))
	c.log.Infof("set: %s -> %s", from, to)
	return nil
}

// String - stage represented as a string
func (s Stage) String() string {
	switch s {
	case Deposit:
		return "Deposit"
	case Processing:
		return "Processing"
	case Redemption:
		return "Redemption"
	default:
		return "*Unknown*"
	}
}

// Valid - check for a known stage
func (s Stage) Valid() bool {
	return s < maximum
}
