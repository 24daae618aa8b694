// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package server - register all RPC handlers
package server

import (
	"net/rpc"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/savepool/pool"
	"github.com/bitmark-inc/savepool/rpc/operator"
	"github.com/bitmark-inc/savepool/rpc/public"
)

// Create - an RPC server with the Pool and Operator services
func Create(log *logger.L, p pool.Pool) *rpc.Server {
	server := rpc.NewServer()

	_ = server.Register(public.New(log, p))
	_ = server.Register(operator.New(log, p))

	return server
}
