// Copyright (c) 2026 QuietWire
// SecureTalk - end-to-end encrypted messaging client
// This source code is licensed under the MIT license found in the LICENSE file.

// package analytics delivers fire-and-forget telemetry events describing
// user actions. Callers never see delivery failures; sinks log and drop.
package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/quietwire/securetalk/internal/logging"
)

// Event is a single telemetry record.
type Event struct {
	// ID is a unique message id, filled by the sink when empty.
	ID string `json:"id"`
	// Name identifies the action, e.g. "encryption_toggled".
	Name string `json:"name"`
	// Value carries the action payload rendered as a string.
	Value string `json:"value"`
	// Timestamp is RFC3339 UTC, filled by the sink when empty.
	Timestamp string `json:"timestamp"`
}

// Sink accepts events for delivery. Implementations must not block the
// caller on delivery failures or surface them.
type Sink interface {
	Track(ctx context.Context, e Event)
}

// stamp fills the generated fields of an event.
func stamp(e Event) Event {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp == "" {
		e.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	return e
}

// NopSink discards all events.
type NopSink struct{}

// Track implements Sink.
func (NopSink) Track(ctx context.Context, e Event) {}

// LogSink writes events to the application log. It is the default sink when
// no broker is configured.
type LogSink struct{}

// Track implements Sink.
func (LogSink) Track(ctx context.Context, e Event) {
	e = stamp(e)
	logging.Debugf("analytics event %s: %s=%s", e.ID, e.Name, e.Value)
}
