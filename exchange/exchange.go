// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package exchange - the external step that converts a supply proof
//
// the pool treats the exchange as a black box: one supply proof in,
// earnings and recovered LSUs out.
package exchange

import (
	"github.com/shopspring/decimal"

	"github.com/bitmark-inc/savepool/custody"
	"github.com/bitmark-inc/savepool/fault"
)

// Output - the two assets returned for one supply proof
type Output struct {
	Earnings decimal.Decimal `json:"earnings"`
	LSUs     decimal.Decimal `json:"lsus"`
}

// Exchange - operations provided by the exchange component
type Exchange interface {
	// convert a supply proof; the exchange takes ownership of it
	Withdraw(claim *custody.Claim) (*Output, error)

	// claim accrued rewards for a validator, authorised by the
	// owner badge the pool holds
	ClaimRewards(ownerBadge string, validator string) error
}

// Offline - stands in for the exchange when a pool is opened for
// inspection only; every call fails
type Offline struct{}

// Withdraw - always fails
func (Offline) Withdraw(*custody.Claim) (*Output, error) {
	return nil, fault.ErrExchangeOffline
}

// ClaimRewards - always fails
func (Offline) ClaimRewards(string, string) error {
	return fault.ErrExchangeOffline
}
