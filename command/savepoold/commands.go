// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/savepool/configuration"
	"github.com/bitmark-inc/savepool/pool"
	"github.com/bitmark-inc/savepool/registry"
	"github.com/bitmark-inc/savepool/storage"
)

const (
	rpcCertificateKeyFilename = "rpc.crt"
	rpcPrivateKeyFilename     = "rpc.key"

	defaultRegistryCount = 100
)

// setup command handler
//
// commands that run to create certificate files and inspect badges
// these commands cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-rpc-cert", "rpc":
		certificateFilename := getFilenameWithDirectory(arguments, rpcCertificateKeyFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, rpcPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := makeSelfSignedCertificate("rpc", certificateFilename, privateKeyFilename, 0 != len(addresses), addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "fingerprint", "fp":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing certificate file argument")
		}
		fin, err := fingerprintFile(arguments[0])
		if nil != err {
			exitwithstatus.Message("certificate: %q  error: %s", arguments[0], err)
		}
		fmt.Printf("%x\n", fin)

	case "badge-digest", "digest":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing badge argument")
		}
		badge, err := pool.ParseBadge(arguments[0])
		if nil != err {
			exitwithstatus.Message("badge error: %s", err)
		}
		digest := badge.Digest()
		fmt.Printf("%s\n", hex.EncodeToString(digest[:]))

	case "start", "run":
		return false // continue processing

	case "status", "st", "registry", "reg", "receipt", "r":
		return false // defer processing until database is loaded

	case "config-test", "cfg":
		return false

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version sting\n\n")

		fmt.Printf("  gen-rpc-cert [DIR]         (rpc)    - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+rpcCertificateKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-rpc-cert [DIR] [IPs...]         - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+rpcCertificateKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  fingerprint FILE           (fp)     - SHA3-256 fingerprint of a PEM certificate\n")
		fmt.Printf("                                        for the exchange fingerprint setting\n")
		fmt.Printf("\n")

		fmt.Printf("  badge-digest BADGE         (digest) - show the stored digest of an operator badge\n")
		fmt.Printf("\n")

		fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Printf("                                        for convienience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  status                     (st)     - display the pool summary as JSON\n")
		fmt.Printf("\n")

		fmt.Printf("  registry [START [COUNT]]   (reg)    - list registry positions from START as JSON\n")
		fmt.Printf("                                        at most COUNT (default: %d) entries\n", defaultRegistryCount)
		fmt.Printf("\n")

		fmt.Printf("  receipt SERIAL             (r)      - display one receipt as JSON\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and preform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *configuration.Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		printJSON(options)

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// commands handled by processDataCommand
func isDataCommand(command string) bool {
	switch command {
	case "status", "st", "registry", "reg", "receipt", "r":
		return true
	default:
		return false
	}
}

// data command handler
// the pool database is open so these commands can inspect it
func processDataCommand(log *logger.L, arguments []string, db *storage.Database, p *pool.Engine) {

	command := arguments[0]
	arguments = arguments[1:]

	switch command {

	case "status", "st":
		status, err := p.Status()
		if nil != err {
			exitwithstatus.Message("status error: %s", err)
		}
		printJSON(status)

	case "registry", "reg":
		start := uint64(0)
		count := defaultRegistryCount
		if len(arguments) > 0 {
			n, err := strconv.ParseUint(arguments[0], 10, 64)
			if nil != err {
				exitwithstatus.Message("error in start position: %s", err)
			}
			start = n
		}
		if len(arguments) > 1 {
			n, err := strconv.Atoi(arguments[1])
			if nil != err {
				exitwithstatus.Message("error in count: %s", err)
			}
			count = n
		}
		entries, err := registry.New(db.Pool.Registry, db.Pool.State).Page(start, count)
		if nil != err {
			exitwithstatus.Message("registry error: %s", err)
		}
		printJSON(entries)

	case "receipt", "r":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing receipt serial argument")
		}
		serial, err := strconv.ParseUint(arguments[0], 10, 64)
		if nil != err {
			exitwithstatus.Message("error in receipt serial: %s", err)
		}
		receipt, err := p.Receipt(serial)
		if nil != err {
			exitwithstatus.Message("receipt: %d  error: %s", serial, err)
		}
		printJSON(receipt)

	default:
		exitwithstatus.Message("error: no such command: %s", command)
	}

	log.Debugf("data command: %s completed", command)
}

func printJSON(item interface{}) {
	b, err := json.Marshal(item)
	if err != nil {
		exitwithstatus.Message("error: %s", err)
	}
	var out bytes.Buffer
	json.Indent(&out, b, "", "  ")
	out.WriteTo(os.Stdout)
	os.Stdout.WriteString("\n")
}

func getFilenameWithDirectory(arguments []string, name string) string {
	dir := "."
	if len(arguments) >= 1 {
		dir = arguments[0]
	}

	return filepath.Join(dir, name)
}
