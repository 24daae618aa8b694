// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/tls"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/savepool/configuration"
	"github.com/bitmark-inc/savepool/exchange"
	"github.com/bitmark-inc/savepool/pool"
	"github.com/bitmark-inc/savepool/rpc"
	"github.com/bitmark-inc/savepool/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := configuration.Get(configurationFile, environment())
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logger()); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	log.Infof("database: %q", theConfiguration.Database.Name)
	log.Debugf("%s = %#v", "ClientRPC", theConfiguration.ClientRPC)
	log.Debugf("%s = %#v", "Exchange", theConfiguration.Exchange)

	// start the data storage
	log.Info("initialise storage")
	db, err := storage.Open(theConfiguration.Database.Name, storage.ReadWrite)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer db.Close()

	settings := pool.Settings{
		ClaimResource:   theConfiguration.Pool.ClaimResource,
		ReceiptResource: theConfiguration.Pool.ReceiptResource,
		OwnerBadge:      theConfiguration.Pool.OwnerBadge,
	}

	// these commands are allowed to access the internal database
	// they only inspect the pool so the exchange is not contacted
	if len(arguments) > 0 && isDataCommand(arguments[0]) {
		p := attachPool(log, db, exchange.Offline{}, settings)
		processDataCommand(log, arguments, db, p)
		return
	}

	// connect to the exchange
	log.Info("initialise exchange")
	ex, err := dialExchange(&theConfiguration.Exchange)
	if nil != err {
		log.Criticalf("exchange connect error: %s", err)
		exitwithstatus.Message("exchange connect error: %s", err)
	}
	defer ex.Close()

	p := attachPool(log, db, ex, settings)

	// start up the rpc background processes
	err = rpc.Initialise(&theConfiguration.ClientRPC, p)
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer rpc.Finalise()

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Infof("shutting down with: %d rpc connections open", rpc.Connections())
}

// attach the pool, showing the operator badge if one was just issued
func attachPool(log *logger.L, db *storage.Database, ex exchange.Exchange, settings pool.Settings) *pool.Engine {
	log.Info("initialise pool")
	p, badge, err := pool.New(logger.New("pool"), db, ex, settings)
	if nil != err {
		log.Criticalf("pool initialise error: %s", err)
		exitwithstatus.Message("pool initialise error: %s", err)
	}
	if nil != badge {
		log.Warnf("new operator badge issued, digest: %x", badge.Digest())
		fmt.Printf("operator badge: %s\n", badge)
		fmt.Printf("keep this safe; it is required for all operator calls and cannot be shown again\n")
	}
	return p
}

// connect using a pinned certificate when a fingerprint is configured
func dialExchange(c *configuration.ExchangeType) (*exchange.Client, error) {
	tlsConfig := &tls.Config{}
	if "" != c.Fingerprint {
		pinned, err := exchange.PinnedTLS(c.Fingerprint)
		if nil != err {
			return nil, err
		}
		tlsConfig = pinned
	}
	timeout := time.Duration(c.Timeout) * time.Second
	return exchange.Dial(logger.New("exchange"), c.Address, tlsConfig, timeout)
}

// environment variables visible to the configuration script
func environment() map[string]string {
	variables := make(map[string]string)
	for _, name := range []string{"SAVEPOOL_OWNER_BADGE"} {
		if value, ok := os.LookupEnv(name); ok {
			variables[name] = value
		}
	}
	return variables
}
