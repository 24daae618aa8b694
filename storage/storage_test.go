// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/savepool/fault"
	"github.com/bitmark-inc/savepool/storage"
)

func TestSingleTransaction(t *testing.T) {
	db := setup(t)
	defer teardown(db)

	trx, err := db.Begin()
	assert.Nil(t, err, "begin error")

	_, err = db.Begin()
	assert.Equal(t, fault.ErrTransactionInUse, err, "nested begin allowed")

	trx.Abort()

	trx, err = db.Begin()
	assert.Nil(t, err, "begin after abort")
	trx.Abort()
}

func TestTransactionVisibility(t *testing.T) {
	db := setup(t)
	defer teardown(db)

	p := db.Pool.State
	key := []byte("counter")

	trx, _ := db.Begin()
	trx.PutN(p, key, 42)

	n, ok := trx.GetN(p, key)
	assert.True(t, ok, "pending write not visible in transaction")
	assert.Equal(t, uint64(42), n, "wrong pending value")

	_, ok = p.GetN(key)
	assert.False(t, ok, "pending write visible outside transaction")

	err := trx.Commit()
	assert.Nil(t, err, "commit error")

	n, ok = p.GetN(key)
	assert.True(t, ok, "committed write not visible")
	assert.Equal(t, uint64(42), n, "wrong committed value")
}

func TestAbortLeavesStateUnchanged(t *testing.T) {
	db := setup(t)
	defer teardown(db)

	p := db.Pool.Custody

	trx, _ := db.Begin()
	trx.Put(p, []byte("one"), []byte("data-one"))
	_ = trx.Commit()

	trx, _ = db.Begin()
	trx.Delete(p, []byte("one"))
	trx.Put(p, []byte("two"), []byte("data-two"))
	assert.False(t, trx.Has(p, []byte("one")), "deleted key present")
	trx.Abort()

	assert.Equal(t, []byte("data-one"), p.Get([]byte("one")), "abort removed committed data")
	assert.Nil(t, p.Get([]byte("two")), "abort kept pending data")
}

func TestPoolsAreSeparate(t *testing.T) {
	db := setup(t)
	defer teardown(db)

	key := []byte("same")

	trx, _ := db.Begin()
	trx.Put(db.Pool.Receipts, key, []byte("receipt"))
	trx.Put(db.Pool.Vaults, key, []byte("vault"))
	_ = trx.Commit()

	assert.Equal(t, []byte("receipt"), db.Pool.Receipts.Get(key), "wrong receipt value")
	assert.Equal(t, []byte("vault"), db.Pool.Vaults.Get(key), "wrong vault value")
	assert.Nil(t, db.Pool.Registry.Get(key), "value leaked into registry")
}

func TestFetchCursor(t *testing.T) {
	db := setup(t)
	defer teardown(db)

	p := db.Pool.Registry
	keys := []string{"key-a", "key-b", "key-c", "key-d", "key-e"}

	trx, _ := db.Begin()
	for _, k := range keys {
		trx.Put(p, []byte(k), []byte("data-"+k))
	}
	_ = trx.Commit()

	cursor := p.NewFetchCursor()
	firstPair, err := cursor.Fetch(2)
	assert.Nil(t, err, "fetch error")
	secondPair, err := cursor.Fetch(2)
	assert.Nil(t, err, "fetch error")
	last, err := cursor.Fetch(10)
	assert.Nil(t, err, "fetch error")

	all := append(append(firstPair, secondPair...), last...)
	if assert.Equal(t, len(keys), len(all), "wrong element count") {
		for i, e := range all {
			assert.Equal(t, keys[i], string(e.Key), "%d: wrong key", i)
			assert.True(t, bytes.HasPrefix(e.Value, []byte("data-")), "%d: wrong value", i)
		}
	}

	_, err = cursor.Fetch(0)
	assert.Equal(t, fault.ErrInvalidCount, err, "zero count allowed")

	count := 0
	err = p.NewFetchCursor().Map(func(key []byte, value []byte) error {
		count += 1
		return nil
	})
	assert.Nil(t, err, "map error")
	assert.Equal(t, len(keys), count, "map did not visit all")
}

func TestReopenKeepsData(t *testing.T) {
	db := setup(t)

	trx, _ := db.Begin()
	trx.PutN(db.Pool.State, []byte("n"), 7)
	_ = trx.Commit()
	db.Close()

	db, err := storage.Open(databaseFileName, storage.ReadOnly)
	if !assert.Nil(t, err, "reopen error") {
		return
	}
	defer teardown(db)

	n, ok := db.Pool.State.GetN([]byte("n"))
	assert.True(t, ok, "value lost on reopen")
	assert.Equal(t, uint64(7), n, "wrong value on reopen")
}

func TestCloseDiscardsOpenTransaction(t *testing.T) {
	db := setup(t)

	trx, err := db.Begin()
	assert.Nil(t, err, "begin error")
	trx.Put(db.Pool.State, []byte("pending"), []byte("value"))
	db.Close()

	db, err = storage.Open(databaseFileName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage reopen error: %s", err)
	}
	defer teardown(db)

	assert.Nil(t, db.Pool.State.Get([]byte("pending")), "uncommitted value survived close")
	_, err = db.Begin()
	assert.Nil(t, err, "begin after reopen")
}
