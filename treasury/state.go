package treasury

import (
	"encoding/json"
	"fmt"

	"github.com/mort-network/gmort/mortdb"
)

var stateKey = []byte("treasury/state")

// ReadState loads the treasury record.
func ReadState(db mortdb.KeyValueStore) (*State, error) {
	blob, err := db.Get(stateKey)
	if err != nil {
		return nil, ErrTreasuryNotFound
	}
	state := new(State)
	if err := json.Unmarshal(blob, state); err != nil {
		return nil, fmt.Errorf("treasury: corrupt state record: %w", err)
	}
	return state, nil
}

// WriteState persists the treasury record.
func WriteState(db mortdb.KeyValueStore, state *State) error {
	blob, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return db.Put(stateKey, blob)
}
