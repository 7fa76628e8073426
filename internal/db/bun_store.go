// Copyright (c) 2026 QuietWire
// SecureTalk - end-to-end encrypted messaging client
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/quietwire/securetalk/internal/model"
)

// SettingModel maps the `settings` table for Bun queries.
type SettingModel struct {
	bun.BaseModel `bun:"table:settings"`
	Key           string `bun:"key,pk"`
	Value         string `bun:"value"`
}

// ParticipantModel maps the `participants` table.
type ParticipantModel struct {
	bun.BaseModel      `bun:"table:participants"`
	ID                 int    `bun:"id,pk,autoincrement"`
	DisplayName        string `bun:"display_name"`
	Device             string `bun:"device"`
	SupportsEncryption bool   `bun:"supports_encryption"`
	IsActive           bool   `bun:"is_active"`
}

// EventLogModel maps the `event_log` table.
type EventLogModel struct {
	bun.BaseModel `bun:"table:event_log"`
	ID            int    `bun:"id,pk,autoincrement"`
	Timestamp     string `bun:"timestamp"`
	Name          string `bun:"name"`
	Value         string `bun:"value"`
	Details       string `bun:"details"`
}

// bunStore implements Store on top of a bun.DB, independent of the concrete
// SQL dialect behind it.
type bunStore struct {
	db *bun.DB
}

// ensure bunStore satisfies Store at compile time
var _ Store = (*bunStore)(nil)

func newBunStore(bdb *bun.DB) *bunStore {
	return &bunStore{db: bdb}
}

// createTables creates any missing tables. Bun renders dialect-appropriate
// DDL, which keeps the schema portable across sqlite, mysql, and postgres.
func (s *bunStore) createTables() error {
	ctx := context.Background()
	models := []interface{}{
		(*SettingModel)(nil),
		(*ParticipantModel)(nil),
		(*EventLogModel)(nil),
	}
	for _, m := range models {
		if _, err := s.db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// GetSetting returns the value for a settings key, or ErrNotFound.
func (s *bunStore) GetSetting(key string) (string, error) {
	ctx := context.Background()
	var row SettingModel
	// `key` is a reserved word in mysql, so the identifier must be quoted.
	err := s.db.NewSelect().Model(&row).Where("? = ?", bun.Ident("key"), key).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return row.Value, nil
}

// SetSetting inserts or updates a settings row. The select-then-write runs
// in a transaction so concurrent writers can't interleave.
func (s *bunStore) SetSetting(key, value string) error {
	ctx := context.Background()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	exists, err := tx.NewSelect().Model((*SettingModel)(nil)).Where("? = ?", bun.Ident("key"), key).Exists(ctx)
	if err != nil {
		return err
	}
	if exists {
		if _, err := tx.NewUpdate().Model((*SettingModel)(nil)).
			Set("value = ?", value).Where("? = ?", bun.Ident("key"), key).Exec(ctx); err != nil {
			return fmt.Errorf("failed to update setting %s: %w", key, err)
		}
	} else {
		if _, err := tx.NewInsert().Model(&SettingModel{Key: key, Value: value}).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert setting %s: %w", key, err)
		}
	}

	return tx.Commit()
}

// GetAllSettings returns every settings row ordered by key.
func (s *bunStore) GetAllSettings() ([]model.Setting, error) {
	ctx := context.Background()
	var rows []SettingModel
	if err := s.db.NewSelect().Model(&rows).Order("key ASC").Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]model.Setting, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.Setting{Key: r.Key, Value: r.Value})
	}
	return out, nil
}

// GetAllParticipants returns every participant row.
func (s *bunStore) GetAllParticipants() ([]model.Participant, error) {
	return s.participants(false)
}

// GetActiveParticipants returns participants with is_active set.
func (s *bunStore) GetActiveParticipants() ([]model.Participant, error) {
	return s.participants(true)
}

func (s *bunStore) participants(activeOnly bool) ([]model.Participant, error) {
	ctx := context.Background()
	var rows []ParticipantModel
	q := s.db.NewSelect().Model(&rows).Order("id ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]model.Participant, 0, len(rows))
	for _, r := range rows {
		out = append(out, participantModelToModel(r))
	}
	return out, nil
}

// AddParticipant inserts a new active participant and returns its ID.
func (s *bunStore) AddParticipant(displayName, device string, supportsEncryption bool) (int, error) {
	ctx := context.Background()
	row := ParticipantModel{
		DisplayName:        displayName,
		Device:             device,
		SupportsEncryption: supportsEncryption,
		IsActive:           true,
	}
	if _, err := s.db.NewInsert().Model(&row).Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to insert participant: %w", err)
	}
	return row.ID, nil
}

// SetParticipantActiveState sets or clears the IsActive flag for a participant.
func (s *bunStore) SetParticipantActiveState(id int, active bool) error {
	ctx := context.Background()
	res, err := s.db.NewUpdate().Model((*ParticipantModel)(nil)).
		Set("is_active = ?", active).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("participant not found: %d", id)
	}
	return nil
}

// LogEvent appends an entry to the local event log.
func (s *bunStore) LogEvent(name, value, details string) error {
	ctx := context.Background()
	row := EventLogModel{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Name:      name,
		Value:     value,
		Details:   details,
	}
	if _, err := s.db.NewInsert().Model(&row).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert event log entry: %w", err)
	}
	return nil
}

// GetAllEventLogEntries returns the event log, newest first.
func (s *bunStore) GetAllEventLogEntries() ([]model.EventLogEntry, error) {
	ctx := context.Background()
	var rows []EventLogModel
	if err := s.db.NewSelect().Model(&rows).Order("id DESC").Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]model.EventLogEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.EventLogEntry{
			ID:        r.ID,
			Timestamp: r.Timestamp,
			Name:      r.Name,
			Value:     r.Value,
			Details:   r.Details,
		})
	}
	return out, nil
}

// ExportDataForBackup collects settings and participants into a snapshot.
func (s *bunStore) ExportDataForBackup() (*model.BackupData, error) {
	settings, err := s.GetAllSettings()
	if err != nil {
		return nil, err
	}
	participants, err := s.GetAllParticipants()
	if err != nil {
		return nil, err
	}
	return &model.BackupData{Settings: settings, Participants: participants}, nil
}

// ImportDataFromBackup replaces settings and participants with the snapshot
// contents. Runs in a single transaction.
func (s *bunStore) ImportDataFromBackup(d *model.BackupData) error {
	if d == nil {
		return fmt.Errorf("nil backup data")
	}
	ctx := context.Background()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Bun requires a WHERE clause on deletes; this wipes the whole table.
	if _, err := tx.NewDelete().Model((*SettingModel)(nil)).Where("1 = 1").Exec(ctx); err != nil {
		return err
	}
	if _, err := tx.NewDelete().Model((*ParticipantModel)(nil)).Where("1 = 1").Exec(ctx); err != nil {
		return err
	}

	for _, st := range d.Settings {
		if _, err := tx.NewInsert().Model(&SettingModel{Key: st.Key, Value: st.Value}).Exec(ctx); err != nil {
			return err
		}
	}
	for _, p := range d.Participants {
		row := ParticipantModel{
			DisplayName:        p.DisplayName,
			Device:             p.Device,
			SupportsEncryption: p.SupportsEncryption,
			IsActive:           p.IsActive,
		}
		if _, err := tx.NewInsert().Model(&row).Exec(ctx); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func participantModelToModel(r ParticipantModel) model.Participant {
	return model.Participant{
		ID:                 r.ID,
		DisplayName:        r.DisplayName,
		Device:             r.Device,
		SupportsEncryption: r.SupportsEncryption,
		IsActive:           r.IsActive,
	}
}
