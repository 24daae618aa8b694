// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared setup for the rpc tests
package fixtures

import (
	"os"
	"sync"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"
)

// LogCategory - logger channel for tests
const LogCategory = "testing"

const (
	testingDirName = "testing"
	organisation   = "savepool test"
)

var (
	once        sync.Once
	certificate string
	key         string
)

// SetupTestLogger - log into a scratch directory
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	_ = logger.Initialise(logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	})
}

// TeardownTestLogger - stop logging and remove the scratch directory
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	os.RemoveAll(testingDirName)
}

// CertificatePair - a self signed certificate and key in PEM form
//
// generated once per test binary
func CertificatePair() (string, string) {
	once.Do(func() {
		c, k, err := certgen.NewTLSCertPair(organisation, time.Now().Add(24*time.Hour), false, []string{"127.0.0.1"})
		if nil != err {
			panic(err)
		}
		certificate = string(c)
		key = string(k)
	})
	return certificate, key
}
