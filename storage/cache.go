// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

// Cache - holds the pending writes of a transaction
type Cache interface {
	Get(string) ([]byte, DBOperation, bool)
	Set(DBOperation, string, []byte)
	Clear()
}

// DBOperation - the kind of pending write
type DBOperation int

const (
	DBPut DBOperation = iota
	DBDelete
)

const (
	defaultTimeout    = 1 * time.Minute
	defaultExpiration = cache.NoExpiration
)

type dbCache struct {
	cache *cache.Cache
}

type cacheData struct {
	op    DBOperation
	value []byte
}

func newCache() *dbCache {
	return &dbCache{
		cache: cache.New(defaultExpiration, defaultTimeout),
	}
}

// Get - return pending value and operation, false if key untouched
func (c *dbCache) Get(key string) ([]byte, DBOperation, bool) {
	obj, found := c.cache.Get(key)
	if !found {
		return nil, DBPut, false
	}

	data := obj.(cacheData)
	return data.value, data.op, true
}

func (c *dbCache) Set(op DBOperation, key string, value []byte) {
	cached := cacheData{
		op:    op,
		value: value,
	}
	c.cache.Set(key, cached, defaultExpiration)
}

func (c *dbCache) Clear() {
	c.cache.Flush()
}
