// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"errors"
	"fmt"
	"slices"

	"github.com/luxfi/cache"
	"github.com/luxfi/cache/lru"
	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/database/versiondb"
	"github.com/luxfi/ids"

	"github.com/luxfi/vault/vault/unlock"
)

const unlockCacheSize = 4096

var (
	VaultPrefix  = []byte("vault")
	UnlockPrefix = []byte("unlock")

	vaultKey = []byte("vault")

	ErrNotInitialized = errors.New("vault state not initialized")

	_ State = (*state)(nil)
)

// State persists the vault record and every user's unlock queue.
//
// Writes are staged in memory until Commit. Abort drops everything staged since
// the last Commit.
type State interface {
	// GetVault returns the staged or committed vault record, or
	// ErrNotInitialized.
	GetVault() (Vault, error)
	PutVault(Vault)

	// GetUnlockQueue returns a copy of user's queue. A user without requests
	// has an empty queue.
	GetUnlockQueue(user ids.ShortID) (*unlock.Queue, error)
	PutUnlockQueue(user ids.ShortID, queue *unlock.Queue)

	Commit() error
	CommitBatch() (database.Batch, error)
	Abort()
	Close() error
}

type state struct {
	baseDB   *versiondb.Database
	vaultDB  database.Database
	unlockDB database.Database

	// committed queues keyed by user; nil means no queue is stored
	unlockCache cache.Cacher[ids.ShortID, *unlock.Queue]

	vault          *Vault
	modifiedVault  bool
	modifiedQueues map[ids.ShortID]*unlock.Queue
}

func New(db database.Database) State {
	baseDB := versiondb.New(db)
	return &state{
		baseDB:         baseDB,
		vaultDB:        prefixdb.New(VaultPrefix, baseDB),
		unlockDB:       prefixdb.New(UnlockPrefix, baseDB),
		unlockCache:    lru.NewCache[ids.ShortID, *unlock.Queue](unlockCacheSize),
		modifiedQueues: make(map[ids.ShortID]*unlock.Queue),
	}
}

func (s *state) GetVault() (Vault, error) {
	if s.vault != nil {
		return *s.vault, nil
	}

	bytes, err := s.vaultDB.Get(vaultKey)
	if errors.Is(err, database.ErrNotFound) {
		return Vault{}, ErrNotInitialized
	}
	if err != nil {
		return Vault{}, err
	}

	var vault Vault
	if _, err := Codec.Unmarshal(bytes, &vault); err != nil {
		return Vault{}, fmt.Errorf("failed to parse vault record: %w", err)
	}
	s.vault = &vault
	return vault, nil
}

func (s *state) PutVault(vault Vault) {
	s.vault = &vault
	s.modifiedVault = true
}

func (s *state) GetUnlockQueue(user ids.ShortID) (*unlock.Queue, error) {
	if queue, ok := s.modifiedQueues[user]; ok {
		return cloneQueue(queue), nil
	}
	if queue, ok := s.unlockCache.Get(user); ok {
		return cloneQueue(queue), nil
	}

	bytes, err := s.unlockDB.Get(user[:])
	if errors.Is(err, database.ErrNotFound) {
		s.unlockCache.Put(user, nil)
		return &unlock.Queue{}, nil
	}
	if err != nil {
		return nil, err
	}

	queue := &unlock.Queue{}
	if _, err := Codec.Unmarshal(bytes, queue); err != nil {
		return nil, fmt.Errorf("failed to parse unlock queue of %s: %w", user, err)
	}
	s.unlockCache.Put(user, queue)
	return cloneQueue(queue), nil
}

func (s *state) PutUnlockQueue(user ids.ShortID, queue *unlock.Queue) {
	s.modifiedQueues[user] = cloneQueue(queue)
}

func (s *state) Commit() error {
	defer s.Abort()
	batch, err := s.CommitBatch()
	if err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return err
	}
	for user, queue := range s.modifiedQueues {
		if queue.Len() == 0 {
			s.unlockCache.Put(user, nil)
		} else {
			s.unlockCache.Put(user, queue)
		}
	}
	clear(s.modifiedQueues)
	s.modifiedVault = false
	return nil
}

// CommitBatch writes the staged changes into the version database and returns
// the batch that applies them to the underlying database.
func (s *state) CommitBatch() (database.Batch, error) {
	if err := s.write(); err != nil {
		return nil, err
	}
	return s.baseDB.CommitBatch()
}

func (s *state) Abort() {
	s.baseDB.Abort()
	if s.modifiedVault {
		// the staged record may differ from disk, reload on next read
		s.vault = nil
		s.modifiedVault = false
	}
	clear(s.modifiedQueues)
}

func (s *state) Close() error {
	return s.baseDB.Close()
}

func (s *state) write() error {
	if s.modifiedVault {
		bytes, err := Codec.Marshal(CodecVersion, s.vault)
		if err != nil {
			return fmt.Errorf("failed to serialize vault record: %w", err)
		}
		if err := s.vaultDB.Put(vaultKey, bytes); err != nil {
			return err
		}
	}

	for user, queue := range s.modifiedQueues {
		if queue.Len() == 0 {
			if err := s.unlockDB.Delete(user[:]); err != nil {
				return err
			}
			continue
		}
		bytes, err := Codec.Marshal(CodecVersion, queue)
		if err != nil {
			return fmt.Errorf("failed to serialize unlock queue of %s: %w", user, err)
		}
		if err := s.unlockDB.Put(user[:], bytes); err != nil {
			return err
		}
	}
	return nil
}

func cloneQueue(queue *unlock.Queue) *unlock.Queue {
	if queue == nil {
		return &unlock.Queue{}
	}
	return &unlock.Queue{
		Requests: slices.Clone(queue.Requests),
	}
}
