// Package cachedb adds an ARC read cache in front of a mortdb store.
// mortctl wraps its LevelDB instance with one so repeated record loads in a
// session stay off disk.
package cachedb

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/mort-network/gmort/mortdb"
)

// DefaultCacheEntries is the cache capacity used when size <= 0.
const DefaultCacheEntries = 4096

// Database caches Get results of a backing store. Writes go straight
// through and update the cache; batch writes invalidate it wholesale since
// the batch contents are opaque at this layer.
type Database struct {
	backing mortdb.KeyValueStore
	cache   *lru.ARCCache
}

// New wraps backing with an ARC cache of the given entry capacity.
func New(backing mortdb.KeyValueStore, size int) *Database {
	if size <= 0 {
		size = DefaultCacheEntries
	}
	cache, _ := lru.NewARC(size)
	return &Database{backing: backing, cache: cache}
}

// Has checks the cache before the backing store.
func (db *Database) Has(key []byte) (bool, error) {
	if _, ok := db.cache.Get(string(key)); ok {
		return true, nil
	}
	return db.backing.Has(key)
}

// Get returns the cached value when present, otherwise reads through and
// populates the cache.
func (db *Database) Get(key []byte) ([]byte, error) {
	if cached, ok := db.cache.Get(string(key)); ok {
		return append([]byte(nil), cached.([]byte)...), nil
	}
	value, err := db.backing.Get(key)
	if err != nil {
		return nil, err
	}
	db.cache.Add(string(key), append([]byte(nil), value...))
	return value, nil
}

// Put writes through and refreshes the cached entry.
func (db *Database) Put(key []byte, value []byte) error {
	if err := db.backing.Put(key, value); err != nil {
		return err
	}
	db.cache.Add(string(key), append([]byte(nil), value...))
	return nil
}

// Delete writes through and evicts the cached entry.
func (db *Database) Delete(key []byte) error {
	if err := db.backing.Delete(key); err != nil {
		return err
	}
	db.cache.Remove(string(key))
	return nil
}

// NewBatch returns a batch on the backing store that purges the cache once
// it is written.
func (db *Database) NewBatch() mortdb.Batch {
	return &purgingBatch{Batch: db.backing.NewBatch(), db: db}
}

// Close purges the cache and closes the backing store.
func (db *Database) Close() error {
	db.cache.Purge()
	return db.backing.Close()
}

// purgingBatch drops the whole cache after a successful batch write.
type purgingBatch struct {
	mortdb.Batch
	db *Database
}

func (b *purgingBatch) Write() error {
	if err := b.Batch.Write(); err != nil {
		return err
	}
	b.db.cache.Purge()
	return nil
}
