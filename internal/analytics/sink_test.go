// Copyright (c) 2026 QuietWire
// SecureTalk - end-to-end encrypted messaging client
// This source code is licensed under the MIT license found in the LICENSE file.

package analytics

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestStamp_FillsGeneratedFields(t *testing.T) {
	e := stamp(Event{Name: "encryption_toggled", Value: "true"})
	if e.ID == "" {
		t.Fatalf("expected generated event ID")
	}
	if e.Timestamp == "" {
		t.Fatalf("expected generated timestamp")
	}
	if _, err := time.Parse(time.RFC3339, e.Timestamp); err != nil {
		t.Fatalf("timestamp not RFC3339: %q", e.Timestamp)
	}

	// preset fields are kept
	e2 := stamp(Event{ID: "fixed", Timestamp: "2026-01-02T03:04:05Z"})
	if e2.ID != "fixed" || e2.Timestamp != "2026-01-02T03:04:05Z" {
		t.Fatalf("stamp overwrote preset fields: %+v", e2)
	}
}

func TestEvent_JSONEnvelope(t *testing.T) {
	e := stamp(Event{Name: "encryption_toggled", Value: "false"})
	body, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var decoded map[string]string
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded["name"] != "encryption_toggled" || decoded["value"] != "false" {
		t.Fatalf("unexpected envelope: %s", body)
	}
	if decoded["id"] == "" || decoded["timestamp"] == "" {
		t.Fatalf("envelope missing generated fields: %s", body)
	}
}

func TestNopSink_Discards(t *testing.T) {
	// Track must be a no-op that never panics.
	NopSink{}.Track(context.Background(), Event{Name: "x"})
}
