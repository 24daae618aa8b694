// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners_test

import (
	"crypto/tls"
	"net/rpc"
	"net/rpc/jsonrpc"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/savepool/background"
	"github.com/bitmark-inc/savepool/fault"
	"github.com/bitmark-inc/savepool/rpc/certificate"
	"github.com/bitmark-inc/savepool/rpc/fixtures"
	"github.com/bitmark-inc/savepool/rpc/listeners"
)

type Add struct{}
type AddArg struct {
	A, B int
}

func (a Add) Add(arg *AddArg, reply *int) error {
	*reply = arg.A + arg.B
	return nil
}

func tlsConfig(t *testing.T) (*tls.Config, [32]byte) {
	cer, key := fixtures.CertificatePair()
	c, fin, err := certificate.Get(logger.New(fixtures.LogCategory), "test", cer, key)
	if nil != err {
		t.Fatalf("get certificate with error: %s", err)
	}
	return c, fin
}

func newListener(t *testing.T, maximum uint64) listeners.Listener {
	con := listeners.RPCConfiguration{
		MaximumConnections: maximum,
		Listen:             []string{"127.0.0.1:0"},
	}

	s := rpc.NewServer()
	if err := s.Register(Add{}); nil != err {
		t.Fatalf("register with error: %s", err)
	}

	c, fin := tlsConfig(t)
	l, err := listeners.NewRPC(&con, logger.New(fixtures.LogCategory), s, c, fin)
	if nil != err {
		t.Fatalf("new listener error: %s", err)
	}
	return l
}

func dial(t *testing.T, l listeners.Listener) *rpc.Client {
	addresses := l.Addresses()
	if 1 != len(addresses) {
		t.Fatalf("listener addresses: %v", addresses)
	}
	c, err := tls.Dial("tcp", addresses[0].String(), &tls.Config{InsecureSkipVerify: true})
	if err != nil {
		t.Fatalf("dial with error: %s", err)
	}
	return jsonrpc.NewClient(c)
}

func TestRpcListenerServe(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	l := newListener(t, 5)
	assert.Nil(t, l.Serve(), "wrong Serve")
	defer l.Close()

	client := dial(t, l)
	defer client.Close()

	arg := AddArg{
		A: 2,
		B: 5,
	}
	var reply int
	err := client.Call("Add.Add", &arg, &reply)
	assert.Nil(t, err, "wrong client Call")
	assert.Equal(t, arg.A+arg.B, reply, "wrong result")
	assert.Equal(t, uint64(1), l.Connections(), "wrong connection count")
}

func TestRpcListenerConnectionLimit(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	l := newListener(t, 1)
	assert.Nil(t, l.Serve(), "wrong Serve")
	defer l.Close()

	first := dial(t, l)
	defer first.Close()

	var reply int
	assert.Nil(t, first.Call("Add.Add", &AddArg{A: 1, B: 1}, &reply), "first connection refused")

	// the excess connection is dropped before or during the handshake
	c, err := tls.Dial("tcp", l.Addresses()[0].String(), &tls.Config{InsecureSkipVerify: true})
	if nil == err {
		second := jsonrpc.NewClient(c)
		err = second.Call("Add.Add", &AddArg{A: 1, B: 1}, &reply)
		second.Close()
	}
	assert.NotNil(t, err, "connection over limit served")
}

func TestRpcListenerAsBackground(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	l := newListener(t, 5)
	p := background.Start(background.Processes{l}, nil)

	deadline := time.Now().Add(2 * time.Second)
	for 0 == len(l.Addresses()) && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	client := dial(t, l)
	var reply int
	assert.Nil(t, client.Call("Add.Add", &AddArg{A: 3, B: 4}, &reply), "background listener not serving")
	assert.Equal(t, 7, reply, "wrong result")
	client.Close()

	p.Stop()
	assert.Equal(t, 0, len(l.Addresses()), "listener still open after stop")
}

func TestRpcListenerWhenMaxConnectionCountTooSmall(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	con := listeners.RPCConfiguration{
		MaximumConnections: 0,
		Listen:             []string{"127.0.0.1:1234"},
	}

	_, err := listeners.NewRPC(&con, logger.New(fixtures.LogCategory), rpc.NewServer(), &tls.Config{}, [32]byte{})
	assert.Equal(t, fault.ErrMissingParameters, err, "wrong error")
}

func TestRpcListenerWhenEmptyListen(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	con := listeners.RPCConfiguration{
		MaximumConnections: 1,
		Listen:             []string{},
	}

	_, err := listeners.NewRPC(&con, logger.New(fixtures.LogCategory), rpc.NewServer(), &tls.Config{}, [32]byte{})
	assert.Equal(t, fault.ErrMissingParameters, err, "wrong error")
}

func TestRpcListenerListenAddresses(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	tests := []struct {
		listen string
		err    error
	}{
		{"*:1234", nil},
		{"[::1]:1234", nil},
		{"127.0.0.1:1234", nil},
		{"1", fault.ErrInvalidIPAddress},
		{"localhost:1234", fault.ErrInvalidIPAddress},
		{"[1:2:3:4:5:6:7:8:9]:1234", fault.ErrInvalidIPAddress},
	}

	for i, test := range tests {
		con := listeners.RPCConfiguration{
			MaximumConnections: 1,
			Listen:             []string{test.listen},
		}
		_, err := listeners.NewRPC(&con, logger.New(fixtures.LogCategory), rpc.NewServer(), &tls.Config{}, [32]byte{})
		assert.Equal(t, test.err, err, "%d: %q wrong error", i, test.listen)
	}
}

func TestRpcListenerWhenInvalidTLSConfig(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	con := listeners.RPCConfiguration{
		MaximumConnections: 5,
		Listen:             []string{"127.0.0.1:0"},
	}

	l, err := listeners.NewRPC(&con, logger.New(fixtures.LogCategory), rpc.NewServer(), &tls.Config{}, [32]byte{})
	assert.Nil(t, err, "wrong NewRPC")

	err = l.Serve()
	assert.NotNil(t, err, "wrong Serve")
	assert.Contains(t, err.Error(), "tls", "wrong error message")
}
