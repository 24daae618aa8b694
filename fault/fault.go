// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type BalanceError GenericError
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RangeError GenericError
type StageError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised    = ExistsError("already initialised")
	ErrCertificateFileExists = ExistsError("certificate file already exists")
	ErrClaimAlreadyHeld      = ExistsError("claim already held in custody")
	ErrClaimNotHeld          = NotFoundError("claim not held in custody")
	ErrCursorOutOfRange      = RangeError("processing cursor out of range")
	ErrExchangeFailed        = ProcessError("exchange step failed")
	ErrExchangeOffline       = ProcessError("exchange not connected")
	ErrExchangeTimeout       = ProcessError("exchange did not reply in time")
	ErrInsufficientBalance   = BalanceError("insufficient balance")
	ErrInvalidAmount         = InvalidError("invalid amount")
	ErrInvalidBadge          = InvalidError("invalid operator badge")
	ErrInvalidClaimKind      = InvalidError("invalid supply proof kind")
	ErrInvalidConfiguration  = InvalidError("invalid configuration")
	ErrInvalidCount          = InvalidError("invalid count")
	ErrInvalidCursor         = InvalidError("invalid cursor")
	ErrInvalidFingerprint    = InvalidError("invalid certificate fingerprint")
	ErrInvalidIPAddress      = InvalidError("invalid IP address")
	ErrInvalidLoggerChannel  = InvalidError("invalid logger channel")
	ErrInvalidReceipt        = InvalidError("invalid receipt")
	ErrInvalidRecord         = InvalidError("invalid record")
	ErrInvalidResource       = InvalidError("invalid resource address")
	ErrKeyFileExists         = ExistsError("key file already exists")
	ErrMissingParameters     = InvalidError("missing parameters")
	ErrNotAuthorised         = InvalidError("not authorised")
	ErrNotInitialised        = NotFoundError("not initialised")
	ErrPositionNotFound      = NotFoundError("registry position not found")
	ErrRateLimiting          = InvalidError("rate limiting")
	ErrReceiptAlreadyExists  = ExistsError("receipt already exists")
	ErrReceiptNotFound       = NotFoundError("receipt not found")
	ErrTransactionInUse      = ProcessError("transaction already in use")
	ErrTransactionNotStarted = ProcessError("transaction not started")
	ErrWrongStage            = StageError("operation not permitted in current stage")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e BalanceError) Error() string  { return string(e) }
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RangeError) Error() string    { return string(e) }
func (e StageError) Error() string    { return string(e) }

// determine the class of an error
func IsErrBalance(e error) bool  { _, ok := e.(BalanceError); return ok }
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrRange(e error) bool    { _, ok := e.(RangeError); return ok }
func IsErrStage(e error) bool    { _, ok := e.(StageError); return ok }
