// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/pem"
	"io/ioutil"
	"os"
	"time"

	"github.com/bitmark-inc/certgen"

	"github.com/bitmark-inc/savepool/configuration"
	"github.com/bitmark-inc/savepool/fault"
	"github.com/bitmark-inc/savepool/rpc/certificate"
)

// create a self-signed certificate
func makeSelfSignedCertificate(name string, certificateFileName string, privateKeyFileName string, override bool, extraHosts []string) error {

	if configuration.EnsureFileExists(certificateFileName) {
		return fault.ErrCertificateFileExists
	}

	if configuration.EnsureFileExists(privateKeyFileName) {
		return fault.ErrKeyFileExists
	}

	org := "savepoold self signed cert for: " + name
	validUntil := time.Now().Add(10 * 365 * 24 * time.Hour)
	cert, key, err := certgen.NewTLSCertPair(org, validUntil, override, extraHosts)
	if err != nil {
		return err
	}

	if err = ioutil.WriteFile(certificateFileName, cert, 0666); err != nil {
		return err
	}

	if err = ioutil.WriteFile(privateKeyFileName, key, 0600); err != nil {
		os.Remove(certificateFileName)
		return err
	}

	return nil
}

// fingerprint of the first certificate in a PEM file
func fingerprintFile(certificateFileName string) ([32]byte, error) {
	var fin [32]byte

	data, err := ioutil.ReadFile(certificateFileName)
	if nil != err {
		return fin, err
	}
	block, _ := pem.Decode(data)
	if nil == block || "CERTIFICATE" != block.Type {
		return fin, fault.ErrInvalidFingerprint
	}
	return certificate.Fingerprint(block.Bytes), nil
}
