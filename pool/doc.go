// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package pool - staged proportional custody of supply proofs
//
// Deposit stage:
//   supply proofs are deposited in exchange for a receipt and may be
//   withdrawn again by returning the receipt.
//
// Processing stage:
//   the operator passes each held supply proof to the exchange one at
//   a time, collecting earnings and LSUs into two vaults.
//
// Redemption stage:
//   each receipt is exchanged for its share of both vaults in the
//   proportion its contribution bears to the total supply.
//
// every operation runs under the pool lock inside a single storage
// transaction, so either all of its effects are committed or none
package pool
