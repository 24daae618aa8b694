// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/bitmark-inc/savepool/fault"
)

var (
	ErrBalanceOne  = fault.BalanceError("balance one")
	ErrBalanceTwo  = fault.BalanceError("balance two")
	ErrExistsOne   = fault.ExistsError("exists one ")
	ErrExistsTwo   = fault.ExistsError("exists two")
	ErrInvalidOne  = fault.InvalidError("invalid one")
	ErrInvalidTwo  = fault.InvalidError("invalid two")
	ErrNotFoundOne = fault.NotFoundError("not found one")
	ErrNotFoundTwo = fault.NotFoundError("not found two")
	ErrProcessOne  = fault.ProcessError("process one")
	ErrProcessTwo  = fault.ProcessError("process two")
	ErrRangeOne    = fault.RangeError("range one")
	ErrRangeTwo    = fault.RangeError("range two")
	ErrStageOne    = fault.StageError("stage one")
	ErrStageTwo    = fault.StageError("stage two")
)

// test that the various errors can be subclassed
func TestClasses(t *testing.T) {
	errorList := []struct {
		err      error
		balance  bool
		exists   bool
		invalid  bool
		notFound bool
		process  bool
		rng      bool
		stage    bool
	}{
		{ErrBalanceOne, true, false, false, false, false, false, false},
		{ErrBalanceTwo, true, false, false, false, false, false, false},
		{ErrExistsOne, false, true, false, false, false, false, false},
		{ErrExistsTwo, false, true, false, false, false, false, false},
		{ErrInvalidOne, false, false, true, false, false, false, false},
		{ErrInvalidTwo, false, false, true, false, false, false, false},
		{ErrNotFoundOne, false, false, false, true, false, false, false},
		{ErrNotFoundTwo, false, false, false, true, false, false, false},
		{ErrProcessOne, false, false, false, false, true, false, false},
		{ErrProcessTwo, false, false, false, false, true, false, false},
		{ErrRangeOne, false, false, false, false, false, true, false},
		{ErrRangeTwo, false, false, false, false, false, true, false},
		{ErrStageOne, false, false, false, false, false, false, true},
		{ErrStageTwo, false, false, false, false, false, false, true},
		{fault.ErrWrongStage, false, false, false, false, false, false, true},
		{fault.ErrCursorOutOfRange, false, false, false, false, false, true, false},
		{fault.ErrInsufficientBalance, true, false, false, false, false, false, false},
	}

	for i, e := range errorList {
		err := e.err
		if fault.IsErrBalance(err) != e.balance {
			t.Errorf("%d: expected 'balance' == %v for err = %v", i, e.balance, err)
		}
		if fault.IsErrExists(err) != e.exists {
			t.Errorf("%d: expected 'exists' == %v for err = %v", i, e.exists, err)
		}
		if fault.IsErrInvalid(err) != e.invalid {
			t.Errorf("%d: expected 'invalid' == %v for err = %v", i, e.invalid, err)
		}
		if fault.IsErrNotFound(err) != e.notFound {
			t.Errorf("%d: expected 'not found' == %v for err = %v", i, e.notFound, err)
		}
		if fault.IsErrProcess(err) != e.process {
			t.Errorf("%d: expected 'process' == %v for err = %v", i, e.process, err)
		}
		if fault.IsErrRange(err) != e.rng {
			t.Errorf("%d: expected 'range' == %v for err = %v", i, e.rng, err)
		}
		if fault.IsErrStage(err) != e.stage {
			t.Errorf("%d: expected 'stage' == %v for err = %v", i, e.stage, err)
		}
	}
}
