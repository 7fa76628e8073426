// Copyright (c) 2026 QuietWire
// SecureTalk - end-to-end encrypted messaging client
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/quietwire/securetalk/internal/model"
)

// Package-level helpers delegating to the initialized store. UI layers call
// these; code that wants isolation should take a Store instead.

var errNotInitialized = errors.New("database not initialized")

// GetActiveParticipants returns the active participants via the package-level store.
func GetActiveParticipants() ([]model.Participant, error) {
	if store == nil {
		return nil, errNotInitialized
	}
	return store.GetActiveParticipants()
}

// EnsureDefaults seeds required settings rows on first run. The encryption
// flag defaults to off; the device fingerprint is generated once and then
// never changes.
func EnsureDefaults(s Store) error {
	if s == nil {
		return errNotInitialized
	}
	if _, err := s.GetSetting(SettingEncryptionEnabled); errors.Is(err, ErrNotFound) {
		if err := s.SetSetting(SettingEncryptionEnabled, "false"); err != nil {
			return fmt.Errorf("failed to seed %s: %w", SettingEncryptionEnabled, err)
		}
	} else if err != nil {
		return err
	}
	if _, err := s.GetSetting(SettingFingerprint); errors.Is(err, ErrNotFound) {
		if err := s.SetSetting(SettingFingerprint, NewFingerprint()); err != nil {
			return fmt.Errorf("failed to seed %s: %w", SettingFingerprint, err)
		}
	} else if err != nil {
		return err
	}
	return nil
}

// NewFingerprint generates a human-readable device key fingerprint, grouped
// hex in the style users know from other messengers.
func NewFingerprint() string {
	u := uuid.New()
	h := strings.ToUpper(hex.EncodeToString(u[:8]))
	var groups []string
	for i := 0; i < len(h); i += 4 {
		groups = append(groups, h[i:i+4])
	}
	return strings.Join(groups, " ")
}
