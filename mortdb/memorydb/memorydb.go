// Package memorydb implements the mortdb interfaces over an in-process map.
// It backs unit tests and the overlay staging area.
package memorydb

import (
	"errors"
	"sync"

	"github.com/mort-network/gmort/mortdb"
)

var (
	// errMemorydbClosed is returned if a memory database was already closed
	// at the invocation of a data access operation.
	errMemorydbClosed = errors.New("database closed")

	// errMemorydbNotFound is returned if a key is requested that is not found.
	errMemorydbNotFound = errors.New("not found")
)

// Database is an ephemeral key-value store backed by a map with a mutex
// protecting concurrent access.
type Database struct {
	db   map[string][]byte
	lock sync.RWMutex
}

// New returns an empty in-memory database.
func New() *Database {
	return &Database{db: make(map[string][]byte)}
}

// Has retrieves if a key is present in the key-value store.
func (db *Database) Has(key []byte) (bool, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.db == nil {
		return false, errMemorydbClosed
	}
	_, ok := db.db[string(key)]
	return ok, nil
}

// Get retrieves the given key if it's present in the key-value store.
func (db *Database) Get(key []byte) ([]byte, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.db == nil {
		return nil, errMemorydbClosed
	}
	if entry, ok := db.db[string(key)]; ok {
		return append([]byte(nil), entry...), nil
	}
	return nil, errMemorydbNotFound
}

// Put inserts the given value into the key-value store.
func (db *Database) Put(key []byte, value []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()

	if db.db == nil {
		return errMemorydbClosed
	}
	db.db[string(key)] = append([]byte(nil), value...)
	return nil
}

// Delete removes the key from the key-value store.
func (db *Database) Delete(key []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()

	if db.db == nil {
		return errMemorydbClosed
	}
	delete(db.db, string(key))
	return nil
}

// NewBatch creates a write-only batch committed atomically on Write.
func (db *Database) NewBatch() mortdb.Batch {
	return &batch{db: db}
}

// Len returns the number of entries currently present in the store.
func (db *Database) Len() int {
	db.lock.RLock()
	defer db.lock.RUnlock()
	return len(db.db)
}

// Close deallocates the internal map and declares the database closed.
func (db *Database) Close() error {
	db.lock.Lock()
	defer db.lock.Unlock()

	db.db = nil
	return nil
}

// keyvalue is a pending write in a batch.
type keyvalue struct {
	key    []byte
	value  []byte
	delete bool
}

// batch collects writes and replays them against the database on Write.
type batch struct {
	db     *Database
	writes []keyvalue
	size   int
}

func (b *batch) Put(key, value []byte) error {
	b.writes = append(b.writes, keyvalue{
		key:   append([]byte(nil), key...),
		value: append([]byte(nil), value...),
	})
	b.size += len(key) + len(value)
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.writes = append(b.writes, keyvalue{
		key:    append([]byte(nil), key...),
		delete: true,
	})
	b.size += len(key)
	return nil
}

func (b *batch) ValueSize() int {
	return b.size
}

func (b *batch) Write() error {
	b.db.lock.Lock()
	defer b.db.lock.Unlock()

	if b.db.db == nil {
		return errMemorydbClosed
	}
	for _, kv := range b.writes {
		if kv.delete {
			delete(b.db.db, string(kv.key))
			continue
		}
		b.db.db[string(kv.key)] = kv.value
	}
	return nil
}

func (b *batch) Reset() {
	b.writes = b.writes[:0]
	b.size = 0
}
