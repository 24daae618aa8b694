// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/savepool/background"
	"github.com/bitmark-inc/savepool/fault"
	"github.com/bitmark-inc/savepool/pool"
	"github.com/bitmark-inc/savepool/rpc/certificate"
	"github.com/bitmark-inc/savepool/rpc/listeners"
	"github.com/bitmark-inc/savepool/rpc/server"
)

const (
	tlsName = "client_rpc"
)

// globals
type rpcData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	listener   listeners.Listener
	background *background.T

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// Initialise - start the RPC listener in the background
func Initialise(configuration *listeners.RPCConfiguration, p pool.Pool) error {
	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	tlsConfig, fingerprint, err := certificate.Load(log, tlsName, configuration.Certificate, configuration.PrivateKey)
	if nil != err {
		return err
	}

	listener, err := listeners.NewRPC(
		configuration,
		log,
		server.Create(log, p),
		tlsConfig,
		fingerprint,
	)
	if nil != err {
		return err
	}
	globalData.listener = listener

	processes := background.Processes{
		listener,
	}
	globalData.background = background.Start(processes, nil)

	// all data initialised
	globalData.initialised = true

	return nil
}

// Connections - current client connection count
func Connections() uint64 {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return 0
	}
	return globalData.listener.Connections()
}

// Finalise - stop all background tasks
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.background.Stop()

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}
