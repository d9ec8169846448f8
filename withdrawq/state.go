package withdrawq

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/mort-network/gmort/mortdb"
)

var queueKey = []byte("withdrawq/state")

func requestKey(index uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], index)
	return append([]byte("withdrawq/req/"), buf[:]...)
}

// ReadQueue loads the queue record, zero-valued if never written.
func ReadQueue(db mortdb.KeyValueStore) (*QueueState, error) {
	blob, err := db.Get(queueKey)
	if err != nil {
		return new(QueueState), nil
	}
	queue := new(QueueState)
	if err := json.Unmarshal(blob, queue); err != nil {
		return nil, fmt.Errorf("withdrawq: corrupt queue record: %w", err)
	}
	return queue, nil
}

// WriteQueue persists the queue record.
func WriteQueue(db mortdb.KeyValueStore, queue *QueueState) error {
	blob, err := json.Marshal(queue)
	if err != nil {
		return err
	}
	return db.Put(queueKey, blob)
}

// ReadRequest loads the request at index.
func ReadRequest(db mortdb.KeyValueStore, index uint64) (*Request, error) {
	blob, err := db.Get(requestKey(index))
	if err != nil {
		return nil, ErrRequestNotFound
	}
	req := new(Request)
	if err := json.Unmarshal(blob, req); err != nil {
		return nil, fmt.Errorf("withdrawq: corrupt request record %d: %w", index, err)
	}
	return req, nil
}

// WriteRequest persists a request record under its index.
func WriteRequest(db mortdb.KeyValueStore, req *Request) error {
	blob, err := json.Marshal(req)
	if err != nil {
		return err
	}
	return db.Put(requestKey(req.Index), blob)
}

func deleteRequest(db mortdb.KeyValueStore, index uint64) error {
	return db.Delete(requestKey(index))
}
