// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package amount

import (
	"github.com/shopspring/decimal"

	"github.com/bitmark-inc/savepool/fault"
)

// Places - maximum number of digits after the decimal point
const Places = 18

// Zero - the empty quantity
var Zero = decimal.Zero

// Parse - convert text to a quantity
//
// rejects negative values and values with more than Places decimals
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if nil != err {
		return Zero, fault.ErrInvalidAmount
	}
	if !Valid(d) {
		return Zero, fault.ErrInvalidAmount
	}
	return d, nil
}

// Valid - true if non-negative and representable in Places digits
func Valid(d decimal.Decimal) bool {
	if d.IsNegative() {
		return false
	}
	return d.Equal(d.Truncate(Places))
}

// Share - part/whole of total, truncated to Places
//
// multiplication happens before division so only one truncation
// occurs; a zero whole yields zero
func Share(part decimal.Decimal, whole decimal.Decimal, total decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return Zero
	}
	q, _ := part.Mul(total).QuoRem(whole, Places)
	return q
}

// Fraction - part/whole truncated to Places
func Fraction(part decimal.Decimal, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return Zero
	}
	q, _ := part.QuoRem(whole, Places)
	return q
}

// Pack - storage representation
func Pack(d decimal.Decimal) []byte {
	return []byte(d.String())
}

// Unpack - reverse of Pack
func Unpack(buffer []byte) (decimal.Decimal, error) {
	if 0 == len(buffer) {
		return Zero, nil
	}
	d, err := Parse(string(buffer))
	if nil != err {
		return Zero, fault.ErrInvalidRecord
	}
	return d, nil
}
