package governance

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/mort-network/gmort/mortdb"
)

var stateKey = []byte("governance/state")

func proposalKey(id uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], id)
	return append([]byte("governance/proposal/"), buf[:]...)
}

// ReadState loads the governance record.
func ReadState(db mortdb.KeyValueStore) (*State, error) {
	blob, err := db.Get(stateKey)
	if err != nil {
		return nil, ErrGovernanceNotFound
	}
	state := new(State)
	if err := json.Unmarshal(blob, state); err != nil {
		return nil, fmt.Errorf("governance: corrupt state record: %w", err)
	}
	return state, nil
}

// WriteState persists the governance record.
func WriteState(db mortdb.KeyValueStore, state *State) error {
	blob, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return db.Put(stateKey, blob)
}

// ReadProposal loads proposal id.
func ReadProposal(db mortdb.KeyValueStore, id uint64) (*Proposal, error) {
	blob, err := db.Get(proposalKey(id))
	if err != nil {
		return nil, ErrProposalNotFound
	}
	proposal := new(Proposal)
	if err := json.Unmarshal(blob, proposal); err != nil {
		return nil, fmt.Errorf("governance: corrupt proposal record %d: %w", id, err)
	}
	return proposal, nil
}

// WriteProposal persists a proposal record under its id.
func WriteProposal(db mortdb.KeyValueStore, proposal *Proposal) error {
	blob, err := json.Marshal(proposal)
	if err != nil {
		return err
	}
	return db.Put(proposalKey(proposal.ID), blob)
}
