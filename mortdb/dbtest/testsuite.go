// Package dbtest is the shared conformance suite for mortdb backends.
package dbtest

import (
	"bytes"
	"testing"

	"github.com/mort-network/gmort/mortdb"
)

// TestDatabaseSuite runs the key-value store conformance suite against a
// fresh store produced by New.
func TestDatabaseSuite(t *testing.T, New func() mortdb.KeyValueStore) {
	t.Run("HasGet", func(t *testing.T) {
		db := New()
		defer db.Close()

		if has, err := db.Has([]byte("missing")); err != nil {
			t.Fatalf("has failed: %v", err)
		} else if has {
			t.Fatalf("unexpected key present")
		}
		if _, err := db.Get([]byte("missing")); err == nil {
			t.Fatalf("expected error for missing key")
		}

		if err := db.Put([]byte("key"), []byte("value")); err != nil {
			t.Fatalf("put failed: %v", err)
		}
		if has, err := db.Has([]byte("key")); err != nil || !has {
			t.Fatalf("expected key present, have (%v, %v)", has, err)
		}
		got, err := db.Get([]byte("key"))
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if !bytes.Equal(got, []byte("value")) {
			t.Fatalf("value mismatch: have %q want %q", got, "value")
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		db := New()
		defer db.Close()

		db.Put([]byte("key"), []byte("old"))
		db.Put([]byte("key"), []byte("new"))
		got, err := db.Get([]byte("key"))
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if !bytes.Equal(got, []byte("new")) {
			t.Fatalf("value mismatch: have %q want %q", got, "new")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := New()
		defer db.Close()

		db.Put([]byte("key"), []byte("value"))
		if err := db.Delete([]byte("key")); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if has, _ := db.Has([]byte("key")); has {
			t.Fatalf("key still present after delete")
		}
		// Deleting an absent key must not fail.
		if err := db.Delete([]byte("key")); err != nil {
			t.Fatalf("delete of absent key failed: %v", err)
		}
	})

	t.Run("ValueMutationIsolation", func(t *testing.T) {
		db := New()
		defer db.Close()

		value := []byte("original")
		db.Put([]byte("key"), value)
		value[0] = 'X'

		got, err := db.Get([]byte("key"))
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if !bytes.Equal(got, []byte("original")) {
			t.Fatalf("store aliased caller buffer: have %q", got)
		}
		got[0] = 'Y'
		again, _ := db.Get([]byte("key"))
		if !bytes.Equal(again, []byte("original")) {
			t.Fatalf("store aliased returned buffer: have %q", again)
		}
	})

	t.Run("Batch", func(t *testing.T) {
		db := New()
		defer db.Close()

		db.Put([]byte("stale"), []byte("x"))

		b := db.NewBatch()
		b.Put([]byte("k1"), []byte("v1"))
		b.Put([]byte("k2"), []byte("v2"))
		b.Delete([]byte("stale"))
		if b.ValueSize() == 0 {
			t.Fatalf("batch reports zero pending size")
		}

		// Nothing visible until Write.
		if has, _ := db.Has([]byte("k1")); has {
			t.Fatalf("batch write leaked before commit")
		}
		if err := b.Write(); err != nil {
			t.Fatalf("batch write failed: %v", err)
		}
		for _, kv := range [][2]string{{"k1", "v1"}, {"k2", "v2"}} {
			got, err := db.Get([]byte(kv[0]))
			if err != nil || !bytes.Equal(got, []byte(kv[1])) {
				t.Fatalf("batch entry %q mismatch: have (%q, %v)", kv[0], got, err)
			}
		}
		if has, _ := db.Has([]byte("stale")); has {
			t.Fatalf("batch delete not applied")
		}

		b.Reset()
		if b.ValueSize() != 0 {
			t.Fatalf("batch size not reset")
		}
	})
}
