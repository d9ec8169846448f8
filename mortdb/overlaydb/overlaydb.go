// Package overlaydb stages the writes of a single ledger operation.
//
// An Overlay buffers every Put and Delete in memory while reads fall through
// to the backing store. Committing flushes the buffer through one batch;
// dropping the overlay leaves the backing store untouched. The action
// executor wraps each operation in a fresh overlay, which is what makes
// ledger operations all-or-nothing.
package overlaydb

import (
	"errors"

	"github.com/mort-network/gmort/mortdb"
)

var errOverlayNotFound = errors.New("not found")

// Overlay is a write-buffering view over a backing key-value store.
// It implements mortdb.KeyValueStore so handlers cannot tell it apart from
// the real database.
type Overlay struct {
	backing mortdb.KeyValueStore
	writes  map[string][]byte
	deletes map[string]struct{}
}

// New creates an empty overlay over backing.
func New(backing mortdb.KeyValueStore) *Overlay {
	return &Overlay{
		backing: backing,
		writes:  make(map[string][]byte),
		deletes: make(map[string]struct{}),
	}
}

// Has checks the staged writes first, then the backing store.
func (o *Overlay) Has(key []byte) (bool, error) {
	if _, ok := o.deletes[string(key)]; ok {
		return false, nil
	}
	if _, ok := o.writes[string(key)]; ok {
		return true, nil
	}
	return o.backing.Has(key)
}

// Get returns the staged value if present, otherwise reads through.
func (o *Overlay) Get(key []byte) ([]byte, error) {
	if _, ok := o.deletes[string(key)]; ok {
		return nil, errOverlayNotFound
	}
	if entry, ok := o.writes[string(key)]; ok {
		return append([]byte(nil), entry...), nil
	}
	return o.backing.Get(key)
}

// Put stages a write; the backing store is not touched.
func (o *Overlay) Put(key []byte, value []byte) error {
	delete(o.deletes, string(key))
	o.writes[string(key)] = append([]byte(nil), value...)
	return nil
}

// Delete stages a deletion; the backing store is not touched.
func (o *Overlay) Delete(key []byte) error {
	delete(o.writes, string(key))
	o.deletes[string(key)] = struct{}{}
	return nil
}

// NewBatch returns a batch that stages into the overlay itself.
func (o *Overlay) NewBatch() mortdb.Batch {
	return &overlayBatch{o: o}
}

// Close drops the staged writes without committing them.
func (o *Overlay) Close() error {
	o.writes = nil
	o.deletes = nil
	return nil
}

// Dirty reports whether the overlay holds any staged mutation.
func (o *Overlay) Dirty() bool {
	return len(o.writes) > 0 || len(o.deletes) > 0
}

// Commit flushes the staged writes to the backing store through a single
// batch. The overlay is reset on success and must not be reused on failure.
func (o *Overlay) Commit() error {
	batch := o.backing.NewBatch()
	for key, value := range o.writes {
		if err := batch.Put([]byte(key), value); err != nil {
			return err
		}
	}
	for key := range o.deletes {
		if err := batch.Delete([]byte(key)); err != nil {
			return err
		}
	}
	if err := batch.Write(); err != nil {
		return err
	}
	o.writes = make(map[string][]byte)
	o.deletes = make(map[string]struct{})
	return nil
}

// overlayBatch replays queued writes into the overlay on Write.
type overlayBatch struct {
	o      *Overlay
	writes []keyvalue
	size   int
}

type keyvalue struct {
	key    []byte
	value  []byte
	delete bool
}

func (b *overlayBatch) Put(key, value []byte) error {
	b.writes = append(b.writes, keyvalue{
		key:   append([]byte(nil), key...),
		value: append([]byte(nil), value...),
	})
	b.size += len(key) + len(value)
	return nil
}

func (b *overlayBatch) Delete(key []byte) error {
	b.writes = append(b.writes, keyvalue{
		key:    append([]byte(nil), key...),
		delete: true,
	})
	b.size += len(key)
	return nil
}

func (b *overlayBatch) ValueSize() int {
	return b.size
}

func (b *overlayBatch) Write() error {
	for _, kv := range b.writes {
		if kv.delete {
			if err := b.o.Delete(kv.key); err != nil {
				return err
			}
			continue
		}
		if err := b.o.Put(kv.key, kv.value); err != nil {
			return err
		}
	}
	return nil
}

func (b *overlayBatch) Reset() {
	b.writes = b.writes[:0]
	b.size = 0
}
