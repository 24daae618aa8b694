// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate_test

import (
	"crypto/tls"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/savepool/rpc/certificate"
	"github.com/bitmark-inc/savepool/rpc/fixtures"
)

func TestGet(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	cer, key := fixtures.CertificatePair()

	tlsConfig, fingerprint, err := certificate.Get(
		logger.New(fixtures.LogCategory),
		"test",
		cer,
		key,
	)
	assert.Nil(t, err, "wrong Get")

	pair, _ := tls.X509KeyPair([]byte(cer), []byte(key))

	assert.Equal(t, sha3.Sum256(pair.Certificate[0]), fingerprint, "wrong fingerprint")
	assert.Equal(t, pair, tlsConfig.Certificates[0], "wrong config")
}

func TestGetBadKey(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	cer, _ := fixtures.CertificatePair()

	_, _, err := certificate.Get(logger.New(fixtures.LogCategory), "test", cer, "not a key")
	assert.NotNil(t, err, "bad key accepted")
}

func TestLoad(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	dir, err := ioutil.TempDir("", "certificate")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	defer os.RemoveAll(dir)

	cer, key := fixtures.CertificatePair()
	certificateFile := filepath.Join(dir, "rpc.crt")
	keyFile := filepath.Join(dir, "rpc.key")
	_ = ioutil.WriteFile(certificateFile, []byte(cer), 0600)
	_ = ioutil.WriteFile(keyFile, []byte(key), 0600)

	_, loaded, err := certificate.Load(logger.New(fixtures.LogCategory), "test", certificateFile, keyFile)
	assert.Nil(t, err, "wrong Load")

	_, expected, _ := certificate.Get(logger.New(fixtures.LogCategory), "test", cer, key)
	assert.Equal(t, expected, loaded, "fingerprint differs")

	_, _, err = certificate.Load(logger.New(fixtures.LogCategory), "test", filepath.Join(dir, "missing"), keyFile)
	assert.NotNil(t, err, "missing file accepted")
}
