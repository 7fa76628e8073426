// Copyright (c) 2026 QuietWire
// SecureTalk - end-to-end encrypted messaging client
// This source code is licensed under the MIT license found in the LICENSE file.

// package state holds the authoritative client state and processes actions
// dispatched by the UI. The TUI reads snapshots and subscribes for changes;
// it never mutates the state directly.
package state

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/quietwire/securetalk/internal/db"
	"github.com/quietwire/securetalk/internal/logging"
	"github.com/quietwire/securetalk/internal/model"
)

// SetEncryptionEnabled requests the end-to-end encryption feature be turned
// on or off.
type SetEncryptionEnabled struct {
	Enabled bool
}

// RefreshParticipants requests the participant-derived state be recomputed
// from storage.
type RefreshParticipants struct{}

// Store is the in-memory authority for SecurityState, backed by the db
// layer. All methods are safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	db    db.Store
	state model.SecurityState
	subs  []func(model.SecurityState)
}

// New builds a Store from persisted settings and participants.
func New(dbStore db.Store) (*Store, error) {
	if dbStore == nil {
		return nil, fmt.Errorf("nil db store")
	}
	s := &Store{db: dbStore}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	enabled, err := s.db.GetSetting(db.SettingEncryptionEnabled)
	if err != nil {
		return fmt.Errorf("failed to load encryption setting: %w", err)
	}
	fingerprint, err := s.db.GetSetting(db.SettingFingerprint)
	if err != nil {
		return fmt.Errorf("failed to load fingerprint: %w", err)
	}
	everyone, err := s.everyoneSupportsEncryption()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.state = model.SecurityState{
		EncryptionEnabled:          enabled == "true",
		EveryoneSupportsEncryption: everyone,
		Fingerprint:                fingerprint,
	}
	s.mu.Unlock()
	return nil
}

// everyoneSupportsEncryption is true iff every active participant's client
// supports encryption. An empty roster counts as full support.
func (s *Store) everyoneSupportsEncryption() (bool, error) {
	participants, err := s.db.GetActiveParticipants()
	if err != nil {
		return false, fmt.Errorf("failed to load participants: %w", err)
	}
	for _, p := range participants {
		if !p.SupportsEncryption {
			return false, nil
		}
	}
	return true, nil
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() model.SecurityState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe registers fn to be called with the new state after every
// successful dispatch. Callbacks run on the dispatching goroutine.
func (s *Store) Subscribe(fn func(model.SecurityState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Dispatch processes a single action: persist, update in-memory state,
// notify subscribers. Unknown action types are an error.
func (s *Store) Dispatch(ctx context.Context, action any) error {
	switch a := action.(type) {
	case SetEncryptionEnabled:
		return s.setEncryptionEnabled(a.Enabled)
	case RefreshParticipants:
		return s.refreshParticipants()
	default:
		return fmt.Errorf("unknown action type %T", action)
	}
}

func (s *Store) setEncryptionEnabled(enabled bool) error {
	value := strconv.FormatBool(enabled)
	if err := s.db.SetSetting(db.SettingEncryptionEnabled, value); err != nil {
		return fmt.Errorf("failed to persist encryption setting: %w", err)
	}
	// Local audit trail; failure here shouldn't fail the dispatch.
	if err := s.db.LogEvent("encryption_toggled", value, "settings panel"); err != nil {
		logging.Warnf("failed to write event log entry: %v", err)
	}

	s.mu.Lock()
	s.state.EncryptionEnabled = enabled
	snapshot := s.state
	subs := s.subs
	s.mu.Unlock()

	s.notify(subs, snapshot)
	return nil
}

func (s *Store) refreshParticipants() error {
	everyone, err := s.everyoneSupportsEncryption()
	if err != nil {
		return err
	}

	s.mu.Lock()
	changed := s.state.EveryoneSupportsEncryption != everyone
	s.state.EveryoneSupportsEncryption = everyone
	snapshot := s.state
	subs := s.subs
	s.mu.Unlock()

	if changed {
		s.notify(subs, snapshot)
	}
	return nil
}

func (s *Store) notify(subs []func(model.SecurityState), snapshot model.SecurityState) {
	for _, fn := range subs {
		fn(snapshot)
	}
}
