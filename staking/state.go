package staking

import (
	"encoding/json"
	"fmt"

	"github.com/mort-network/gmort/common"
	"github.com/mort-network/gmort/mortdb"
)

// --- key derivation ---

var poolKey = []byte("staking/pool")

func userKey(addr common.Address) []byte {
	return append([]byte("staking/user/"), addr.Bytes()...)
}

// --- pool state ---

// ReadPool loads the protocol pool record.
func ReadPool(db mortdb.KeyValueStore) (*Pool, error) {
	blob, err := db.Get(poolKey)
	if err != nil {
		return nil, ErrPoolNotFound
	}
	pool := new(Pool)
	if err := json.Unmarshal(blob, pool); err != nil {
		return nil, fmt.Errorf("staking: corrupt pool record: %w", err)
	}
	return pool, nil
}

// WritePool persists the protocol pool record.
func WritePool(db mortdb.KeyValueStore, pool *Pool) error {
	blob, err := json.Marshal(pool)
	if err != nil {
		return err
	}
	return db.Put(poolKey, blob)
}

// --- user state ---

// ReadUserStake loads the stake record for owner. A principal with no prior
// interaction gets a fresh zero record; stake records are created on first
// use and never deleted.
func ReadUserStake(db mortdb.KeyValueStore, owner common.Address) (*UserStake, error) {
	blob, err := db.Get(userKey(owner))
	if err != nil {
		return &UserStake{Owner: owner}, nil
	}
	user := new(UserStake)
	if err := json.Unmarshal(blob, user); err != nil {
		return nil, fmt.Errorf("staking: corrupt stake record for %s: %w", owner, err)
	}
	return user, nil
}

// WriteUserStake persists the stake record for user.Owner.
func WriteUserStake(db mortdb.KeyValueStore, user *UserStake) error {
	blob, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return db.Put(userKey(user.Owner), blob)
}
