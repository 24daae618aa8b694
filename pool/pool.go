// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pool

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/savepool/amount"
	"github.com/bitmark-inc/savepool/custody"
	"github.com/bitmark-inc/savepool/exchange"
	"github.com/bitmark-inc/savepool/fault"
	"github.com/bitmark-inc/savepool/ledger"
	"github.com/bitmark-inc/savepool/registry"
	"github.com/bitmark-inc/savepool/stage"
	"github.com/bitmark-inc/savepool/storage"
)

// names of scalar items in the state pool
var (
	badgeKey         = []byte("badge")
	supplyAmountKey  = []byte("supply-amount")
	supplyCounterKey = []byte("supply-counter")
	cursorKey        = []byte("cursor")
	finalEarningsKey = []byte("final-earnings")
	finalLSUsKey     = []byte("final-lsus")
)

// vault names
const (
	earningsVault = "earnings"
	lsuVault      = "lsus"
)

// Receipt - token returned for a deposit
type Receipt struct {
	Resource string `json:"resource"`
	ID       uint64 `json:"id,string"`
}

// Shares - assets paid out for one receipt
type Shares struct {
	LSUs     decimal.Decimal `json:"lsus"`
	Earnings decimal.Decimal `json:"earnings"`
}

// Settings - resources the pool is bound to
type Settings struct {
	ClaimResource   string // supply proofs accepted for deposit
	ReceiptResource string // receipts issued by this pool
	OwnerBadge      string // presented to the exchange to claim rewards
}

// Pool - operations on a staged custody pool
type Pool interface {
	Deposit(*custody.Claim) (*Receipt, error)
	Withdraw(*Receipt) (*custody.Claim, error)
	StartProcessing(Badge) error
	ClaimRewards(Badge, string) error
	ProcessNext(Badge) (*exchange.Output, error)
	FinishProcessing(Badge) error
	Redeem(*Receipt) (*Shares, error)
	Status() (*Status, error)
	Receipt(uint64) (*ReceiptStatus, error)
}

// Engine - a pool held in a storage database
type Engine struct {
	sync.Mutex

	log      *logger.L
	db       *storage.Database
	state    *storage.PoolHandle
	stage    *stage.Controller
	registry *registry.Registry
	ledger   ledger.Ledger
	claims   *custody.Claims
	earnings *custody.Vault
	lsus     *custody.Vault
	exchange exchange.Exchange
	settings Settings
}

// New - attach to the pool in a database
//
// on a new database an operator badge is created and returned; it
// cannot be recovered later.  For an existing pool the badge is nil.
func New(log *logger.L, db *storage.Database, ex exchange.Exchange, settings Settings) (*Engine, *Badge, error) {
	if "" == settings.ClaimResource || "" == settings.ReceiptResource {
		return nil, nil, fault.ErrMissingParameters
	}
	if settings.ClaimResource == settings.ReceiptResource {
		log.Errorf("claim and receipt resource are both: %q", settings.ClaimResource)
		return nil, nil, fault.ErrInvalidResource
	}

	e := &Engine{
		log:      log,
		db:       db,
		state:    db.Pool.State,
		stage:    stage.New(log, db.Pool.State),
		registry: registry.New(db.Pool.Registry, db.Pool.State),
		ledger:   ledger.New(db.Pool.Receipts, db.Pool.Holders),
		claims:   custody.NewClaims(db.Pool.Custody),
		earnings: custody.NewVault(earningsVault, db.Pool.Vaults),
		lsus:     custody.NewVault(lsuVault, db.Pool.Vaults),
		exchange: ex,
		settings: settings,
	}

	if nil != e.state.Get(badgeKey) {
		log.Infof("existing pool in stage: %s", e.stage.Committed())
		return e, nil, nil
	}

	badge, err := newBadge()
	if nil != err {
		return nil, nil, err
	}
	err = e.update(func(trx storage.Transaction) error {
		digest := badge.Digest()
		trx.Put(e.state, badgeKey, digest[:])
		return nil
	})
	if nil != err {
		return nil, nil, err
	}

	log.Infof("new pool: badge digest: %x", badge.Digest())
	return e, &badge, nil
}

// run f in a transaction that is committed on success
func (e *Engine) update(f func(trx storage.Transaction) error) error {
	trx, err := e.db.Begin()
	if nil != err {
		return err
	}
	err = f(trx)
	if nil != err {
		trx.Abort()
		return err
	}
	return trx.Commit()
}

// run f in a transaction that is always discarded
func (e *Engine) view(f func(trx storage.Transaction) error) error {
	trx, err := e.db.Begin()
	if nil != err {
		return err
	}
	defer trx.Abort()
	return f(trx)
}

// authorise - check the operator badge
func (e *Engine) authorise(trx storage.Transaction, badge Badge) error {
	digest := trx.Get(e.state, badgeKey)
	if nil == digest {
		return fault.ErrNotInitialised
	}
	if !badge.matches(digest) {
		e.log.Warn("operator badge rejected")
		return fault.ErrNotAuthorised
	}
	return nil
}

func (e *Engine) amountOf(trx storage.Transaction, key []byte) decimal.Decimal {
	d, err := amount.Unpack(trx.Get(e.state, key))
	logger.PanicIfError("pool: state amount", err)
	return d
}

func (e *Engine) setAmount(trx storage.Transaction, key []byte, d decimal.Decimal) {
	trx.Put(e.state, key, amount.Pack(d))
}

func (e *Engine) counter(trx storage.Transaction, key []byte) uint64 {
	n, _ := trx.GetN(e.state, key)
	return n
}

// the serial of a receipt issued by this pool
func (e *Engine) serial(receipt *Receipt) (uint64, error) {
	if nil == receipt || e.settings.ReceiptResource != receipt.Resource {
		return 0, fault.ErrInvalidReceipt
	}
	return receipt.ID, nil
}
