// Copyright (c) 2026 QuietWire
// SecureTalk - end-to-end encrypted messaging client
// This source code is licensed under the MIT license found in the LICENSE file.

// package model holds the core domain types shared between the storage,
// state, and UI layers of SecureTalk.
package model

import "fmt"

// SecurityState is the authoritative security posture of the client as held
// by the state store. The TUI derives its props from a snapshot of this.
type SecurityState struct {
	// EncryptionEnabled reports whether end-to-end encryption is active.
	EncryptionEnabled bool
	// EveryoneSupportsEncryption is true when every active participant's
	// client is capable of end-to-end encryption.
	EveryoneSupportsEncryption bool
	// Fingerprint is the local device key fingerprint shown in the
	// security section.
	Fingerprint string
}

// Participant represents a remote party in the user's conversations.
type Participant struct {
	ID                 int
	DisplayName        string
	Device             string
	SupportsEncryption bool
	IsActive           bool
}

// String returns the name (device) representation.
func (p Participant) String() string {
	if p.Device == "" {
		return p.DisplayName
	}
	return fmt.Sprintf("%s (%s)", p.DisplayName, p.Device)
}

// Setting is a single persisted key/value settings row.
type Setting struct {
	Key   string
	Value string
}

// EventLogEntry is a locally persisted record of a settings change, kept as
// an audit trail alongside whatever the analytics sink receives.
type EventLogEntry struct {
	ID        int
	Timestamp string
	Name      string
	Value     string
	Details   string
}

// BackupData is the serializable snapshot used by export/import.
type BackupData struct {
	Settings     []Setting     `json:"settings"`
	Participants []Participant `json:"participants"`
}
