package data

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/udisondev/osrs-sim/internal/model"
)

// Snapshot is a portable copy of the whole item and monster catalog.
// Records are ordered by id so equal catalogs encode to equal bytes.
type Snapshot struct {
	Items    []model.ItemStats    `json:"items"`
	Monsters []model.MonsterStats `json:"monsters"`
}

// Snapshot captures the store contents.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{Items: s.Items(), Monsters: s.Monsters()}
}

// Encode returns the canonical JSON encoding of the snapshot.
func (sn Snapshot) Encode() ([]byte, error) {
	raw, err := json.Marshal(sn)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return raw, nil
}

// Digest returns the hex blake2b-256 digest of the canonical encoding.
func (sn Snapshot) Digest() (string, error) {
	raw, err := sn.Encode()
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

// Store builds a read-only store from the snapshot, with the same integrity
// checks as a catalog loaded from files.
func (sn Snapshot) Store() (*Store, error) {
	return NewStore(sn.Items, sn.Monsters)
}
