// Package mortdb defines the keyed persistence interfaces of the MORT
// ledger. Ledger records are JSON documents under namespaced byte keys; the
// core only ever sees these interfaces, never a concrete database.
package mortdb

import "io"

// KeyValueReader wraps the Has and Get method of a backing data store.
type KeyValueReader interface {
	// Has retrieves if a key is present in the key-value data store.
	Has(key []byte) (bool, error)

	// Get retrieves the given key if it's present in the key-value data store.
	Get(key []byte) ([]byte, error)
}

// KeyValueWriter wraps the Put and Delete method of a backing data store.
type KeyValueWriter interface {
	// Put inserts the given value into the key-value data store.
	Put(key []byte, value []byte) error

	// Delete removes the key from the key-value data store.
	Delete(key []byte) error
}

// Batch is a write-only operation set that is committed atomically by
// calling Write. A Batch cannot be used concurrently.
type Batch interface {
	KeyValueWriter

	// ValueSize retrieves the amount of data queued up for writing.
	ValueSize() int

	// Write flushes any accumulated data to the underlying store.
	Write() error

	// Reset resets the batch for reuse.
	Reset()
}

// Batcher wraps the NewBatch method of a backing data store.
type Batcher interface {
	// NewBatch creates a write-only batch committed atomically on Write.
	NewBatch() Batch
}

// KeyValueStore is the full persistence surface the ledger operates over.
type KeyValueStore interface {
	KeyValueReader
	KeyValueWriter
	Batcher
	io.Closer
}
