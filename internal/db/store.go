// Copyright (c) 2026 QuietWire
// SecureTalk - end-to-end encrypted messaging client
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"errors"

	"github.com/quietwire/securetalk/internal/model"
)

// Store defines the interface for all database operations in SecureTalk.
// This allows for multiple database backends to be implemented.
type Store interface {
	// Settings methods
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error
	GetAllSettings() ([]model.Setting, error)

	// Participant methods
	GetAllParticipants() ([]model.Participant, error)
	GetActiveParticipants() ([]model.Participant, error)
	AddParticipant(displayName, device string, supportsEncryption bool) (int, error)
	SetParticipantActiveState(id int, active bool) error

	// Event log methods
	LogEvent(name, value, details string) error
	GetAllEventLogEntries() ([]model.EventLogEntry, error)

	// Backup methods
	ExportDataForBackup() (*model.BackupData, error)
	ImportDataFromBackup(d *model.BackupData) error
}

// Setting keys used by the application.
const (
	// SettingEncryptionEnabled stores "true"/"false" for the end-to-end
	// encryption feature.
	SettingEncryptionEnabled = "encryption.enabled"
	// SettingFingerprint stores the local device key fingerprint.
	SettingFingerprint = "device.fingerprint"
)

// ErrNotFound is returned when a requested settings row does not exist.
var ErrNotFound = errors.New("not found")
