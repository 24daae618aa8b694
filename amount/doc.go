// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package amount - fixed point quantities
//
// All pooled quantities carry at most Places decimal digits after the
// point.  Division always truncates towards zero so that a set of
// proportional shares never sums to more than the pool they are taken
// from; any remainder stays in the pool as dust.
package amount
