// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/savepool/fault"
	"github.com/bitmark-inc/savepool/pool/mocks"
	"github.com/bitmark-inc/savepool/rpc"
	"github.com/bitmark-inc/savepool/rpc/fixtures"
	"github.com/bitmark-inc/savepool/rpc/listeners"
)

func TestInitialiseFinalise(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	dir, err := ioutil.TempDir("", "rpc")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	defer os.RemoveAll(dir)

	cer, key := fixtures.CertificatePair()
	configuration := listeners.RPCConfiguration{
		MaximumConnections: 10,
		Listen:             []string{"127.0.0.1:0"},
		Certificate:        filepath.Join(dir, "rpc.crt"),
		PrivateKey:         filepath.Join(dir, "rpc.key"),
	}
	_ = ioutil.WriteFile(configuration.Certificate, []byte(cer), 0600)
	_ = ioutil.WriteFile(configuration.PrivateKey, []byte(key), 0600)

	ctl := gomock.NewController(t)
	defer ctl.Finish()
	m := mocks.NewMockPool(ctl)

	assert.Equal(t, fault.ErrNotInitialised, rpc.Finalise(), "finalise before initialise")

	assert.Nil(t, rpc.Initialise(&configuration, m), "initialise error")
	assert.Equal(t, fault.ErrAlreadyInitialised, rpc.Initialise(&configuration, m), "second initialise")
	assert.Equal(t, uint64(0), rpc.Connections(), "unexpected connections")

	assert.Nil(t, rpc.Finalise(), "finalise error")
	assert.Equal(t, uint64(0), rpc.Connections(), "connections after finalise")
}

func TestInitialiseMissingCertificate(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	configuration := listeners.RPCConfiguration{
		MaximumConnections: 10,
		Listen:             []string{"127.0.0.1:0"},
		Certificate:        "/nonexistent/rpc.crt",
		PrivateKey:         "/nonexistent/rpc.key",
	}
	assert.NotNil(t, rpc.Initialise(&configuration, mocks.NewMockPool(ctl)), "missing certificate accepted")
}
