package cachedb

import (
	"bytes"
	"testing"

	"github.com/mort-network/gmort/mortdb"
	"github.com/mort-network/gmort/mortdb/dbtest"
	"github.com/mort-network/gmort/mortdb/memorydb"
)

func TestCacheDB(t *testing.T) {
	t.Run("DatabaseSuite", func(t *testing.T) {
		dbtest.TestDatabaseSuite(t, func() mortdb.KeyValueStore {
			return New(memorydb.New(), 64)
		})
	})
}

func TestCacheServesRepeatedReads(t *testing.T) {
	backing := memorydb.New()
	db := New(backing, 64)

	db.Put([]byte("k"), []byte("v"))

	// Mutate the backing store behind the cache's back; the cached entry
	// must still be served.
	backing.Put([]byte("k"), []byte("stale"))
	got, err := db.Get([]byte("k"))
	if err != nil || !bytes.Equal(got, []byte("v")) {
		t.Fatalf("cached read mismatch: have (%q, %v)", got, err)
	}
}

func TestBatchWritePurgesCache(t *testing.T) {
	backing := memorydb.New()
	db := New(backing, 64)

	db.Put([]byte("k"), []byte("v"))

	b := db.NewBatch()
	b.Put([]byte("k"), []byte("v2"))
	if err := b.Write(); err != nil {
		t.Fatalf("batch write failed: %v", err)
	}
	got, err := db.Get([]byte("k"))
	if err != nil || !bytes.Equal(got, []byte("v2")) {
		t.Fatalf("cache not purged after batch: have (%q, %v)", got, err)
	}
}
