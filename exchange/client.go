// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package exchange

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"encoding/hex"
	"io"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"sync"
	"time"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/savepool/amount"
	"github.com/bitmark-inc/savepool/custody"
	"github.com/bitmark-inc/savepool/fault"
)

// WithdrawArguments - arguments for Exchange.Withdraw
type WithdrawArguments struct {
	Claim *custody.Claim `json:"claim"`
}

// WithdrawReply - result of Exchange.Withdraw
type WithdrawReply struct {
	Output
}

// ClaimRewardsArguments - arguments for Exchange.ClaimRewards
type ClaimRewardsArguments struct {
	OwnerBadge string `json:"ownerBadge"`
	Validator  string `json:"validator"`
}

// ClaimRewardsReply - result of Exchange.ClaimRewards
type ClaimRewardsReply struct {
}

// DefaultTimeout - longest wait for a single exchange call
const DefaultTimeout = 30 * time.Second

// Dialer - open a new connection to the exchange
type Dialer func() (io.ReadWriteCloser, error)

// Client - JSON RPC connection to a remote exchange
//
// a connection that fails or times out is dropped and
// redialled by the next call
type Client struct {
	sync.Mutex

	log     *logger.L
	dial    Dialer
	timeout time.Duration
	client  *rpc.Client
}

// Dial - connect to a remote exchange over TLS
func Dial(log *logger.L, address string, tlsConfig *tls.Config, timeout time.Duration) (*Client, error) {
	dial := func() (io.ReadWriteCloser, error) {
		dialer := &net.Dialer{
			Timeout: timeout,
		}
		return tls.DialWithDialer(dialer, "tcp", address, tlsConfig)
	}

	c := NewClient(log, dial, timeout)
	if err := c.connect(); nil != err {
		log.Errorf("dial: %q  error: %s", address, err)
		return nil, err
	}
	log.Infof("connected to: %q", address)
	return c, nil
}

// PinnedTLS - accept only a server certificate with the given
// hex SHA3-256 fingerprint
func PinnedTLS(fingerprint string) (*tls.Config, error) {
	expected, err := hex.DecodeString(fingerprint)
	if nil != err || 32 != len(expected) {
		return nil, fault.ErrInvalidFingerprint
	}

	verify := func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
		if 0 == len(rawCerts) {
			return fault.ErrInvalidFingerprint
		}
		actual := sha3.Sum256(rawCerts[0])
		if !bytes.Equal(expected, actual[:]) {
			return fault.ErrInvalidFingerprint
		}
		return nil
	}

	return &tls.Config{
		InsecureSkipVerify:    true, // chain is replaced by the fingerprint check
		VerifyPeerCertificate: verify,
		MinVersion:            tls.VersionTLS12,
	}, nil
}

// NewClient - client that connects on first use
//
// a non-positive timeout selects DefaultTimeout
func NewClient(log *logger.L, dial Dialer, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		log:     log,
		dial:    dial,
		timeout: timeout,
	}
}

// Withdraw - convert one supply proof
func (c *Client) Withdraw(claim *custody.Claim) (*Output, error) {
	arguments := WithdrawArguments{
		Claim: claim,
	}
	var reply WithdrawReply
	if err := c.call("Exchange.Withdraw", &arguments, &reply); nil != err {
		c.log.Errorf("withdraw: %q  error: %s", claim.ID, err)
		return nil, mapError(err)
	}

	if !amount.Valid(reply.Earnings) || !amount.Valid(reply.LSUs) {
		c.log.Errorf("withdraw: %q  invalid output: %+v", claim.ID, reply.Output)
		return nil, fault.ErrExchangeFailed
	}

	c.log.Debugf("withdraw: %q  earnings: %s  lsus: %s", claim.ID, reply.Earnings, reply.LSUs)
	return &reply.Output, nil
}

// ClaimRewards - claim accrued validator rewards
func (c *Client) ClaimRewards(ownerBadge string, validator string) error {
	arguments := ClaimRewardsArguments{
		OwnerBadge: ownerBadge,
		Validator:  validator,
	}
	var reply ClaimRewardsReply
	if err := c.call("Exchange.ClaimRewards", &arguments, &reply); nil != err {
		c.log.Errorf("claim rewards: %q  error: %s", validator, err)
		return mapError(err)
	}
	return nil
}

// Close - drop the connection
func (c *Client) Close() error {
	c.Lock()
	defer c.Unlock()

	if nil == c.client {
		return nil
	}
	err := c.client.Close()
	c.client = nil
	return err
}

// must hold lock
func (c *Client) connect() error {
	conn, err := c.dial()
	if nil != err {
		return err
	}
	c.client = jsonrpc.NewClient(conn)
	return nil
}

// must hold lock
func (c *Client) drop() {
	if nil != c.client {
		c.client.Close()
		c.client = nil
	}
}

// run one call, giving up after the timeout
//
// only an error returned by the remote method keeps the connection
func (c *Client) call(method string, arguments interface{}, reply interface{}) error {
	c.Lock()
	defer c.Unlock()

	if nil == c.client {
		if err := c.connect(); nil != err {
			return err
		}
		c.log.Info("reconnected")
	}

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	call := c.client.Go(method, arguments, reply, make(chan *rpc.Call, 1))
	select {
	case <-call.Done:
		if nil == call.Error {
			return nil
		}
		if _, ok := call.Error.(rpc.ServerError); !ok {
			c.drop()
		}
		return call.Error

	case <-timer.C:
		c.log.Warnf("%s: no reply after: %s", method, c.timeout)
		c.drop()
		return fault.ErrExchangeTimeout
	}
}

func mapError(err error) error {
	if fault.ErrExchangeTimeout == err {
		return err
	}
	return fault.ErrExchangeFailed
}
