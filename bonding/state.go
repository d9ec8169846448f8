package bonding

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/mort-network/gmort/common"
	"github.com/mort-network/gmort/mortdb"
)

var vaultKey = []byte("bonding/state")

func countKey(owner common.Address) []byte {
	return append([]byte("bonding/count/"), owner.Bytes()...)
}

func bondKey(owner common.Address, seq uint64) []byte {
	key := append([]byte("bonding/bond/"), owner.Bytes()...)
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], seq)
	return append(key, buf[:]...)
}

// ReadVault loads the vault record, zero-valued if never written.
func ReadVault(db mortdb.KeyValueStore) (*VaultState, error) {
	blob, err := db.Get(vaultKey)
	if err != nil {
		return new(VaultState), nil
	}
	vault := new(VaultState)
	if err := json.Unmarshal(blob, vault); err != nil {
		return nil, fmt.Errorf("bonding: corrupt vault record: %w", err)
	}
	return vault, nil
}

// WriteVault persists the vault record.
func WriteVault(db mortdb.KeyValueStore, vault *VaultState) error {
	blob, err := json.Marshal(vault)
	if err != nil {
		return err
	}
	return db.Put(vaultKey, blob)
}

// ReadBondCount returns how many bonds owner has created.
func ReadBondCount(db mortdb.KeyValueStore, owner common.Address) (uint64, error) {
	blob, err := db.Get(countKey(owner))
	if err != nil {
		return 0, nil
	}
	if len(blob) != 8 {
		return 0, fmt.Errorf("bonding: corrupt bond count for %s", owner)
	}
	return binary.BigEndian.Uint64(blob), nil
}

func writeBondCount(db mortdb.KeyValueStore, owner common.Address, count uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], count)
	return db.Put(countKey(owner), buf[:])
}

// ReadBond loads bond seq of owner.
func ReadBond(db mortdb.KeyValueStore, owner common.Address, seq uint64) (*Bond, error) {
	blob, err := db.Get(bondKey(owner, seq))
	if err != nil {
		return nil, ErrBondNotFound
	}
	bond := new(Bond)
	if err := json.Unmarshal(blob, bond); err != nil {
		return nil, fmt.Errorf("bonding: corrupt bond record %s/%d: %w", owner, seq, err)
	}
	return bond, nil
}

// WriteBond persists a bond record under its owner and sequence number.
func WriteBond(db mortdb.KeyValueStore, bond *Bond) error {
	blob, err := json.Marshal(bond)
	if err != nil {
		return err
	}
	return db.Put(bondKey(bond.Owner, bond.Seq), blob)
}
