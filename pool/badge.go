// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pool

import (
	"crypto/rand"
	"crypto/subtle"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/savepool/fault"
)

// BadgeLength - number of random bytes in a badge
const BadgeLength = 32

// Badge - the operator capability
//
// only the SHA3-256 digest is kept by the pool
type Badge [BadgeLength]byte

// create a fresh random badge
func newBadge() (Badge, error) {
	var b Badge
	_, err := rand.Read(b[:])
	return b, err
}

// ParseBadge - decode the base58 text form
func ParseBadge(s string) (Badge, error) {
	var b Badge
	buffer, err := base58.Decode(s)
	if nil != err || BadgeLength != len(buffer) {
		return b, fault.ErrInvalidBadge
	}
	copy(b[:], buffer)
	return b, nil
}

// String - base58 text form
func (b Badge) String() string {
	return base58.Encode(b[:])
}

// Digest - the value stored by the pool
func (b Badge) Digest() [32]byte {
	return sha3.Sum256(b[:])
}

// MarshalText - badge as base58 text
func (b Badge) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText - badge from base58 text
func (b *Badge) UnmarshalText(s []byte) error {
	badge, err := ParseBadge(string(s))
	if nil != err {
		return err
	}
	*b = badge
	return nil
}

// matches - compare against a stored digest
func (b Badge) matches(digest []byte) bool {
	d := b.Digest()
	return 1 == subtle.ConstantTimeCompare(d[:], digest)
}
