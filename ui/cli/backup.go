// Copyright (c) 2026 QuietWire
// SecureTalk - end-to-end encrypted messaging client
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"

	"github.com/quietwire/securetalk/internal/db"
	"github.com/quietwire/securetalk/internal/logging"
	"github.com/quietwire/securetalk/internal/model"
)

// exportCmd writes a zstd-compressed JSON snapshot of settings and
// participants.
var exportCmd = &cobra.Command{
	Use:     "export <file>",
	Short:   "Create a compressed (zstd) JSON snapshot of settings and participants",
	Args:    cobra.ExactArgs(1),
	PreRunE: setupDefaultServices,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := db.GetStore().ExportDataForBackup()
		if err != nil {
			return fmt.Errorf("failed to export data: %w", err)
		}
		if err := writeCompressedBackup(args[0], data); err != nil {
			return err
		}
		logging.Infof("exported %d settings and %d participants to %s",
			len(data.Settings), len(data.Participants), args[0])
		return nil
	},
}

// importCmd restores a snapshot created by export. The restore is
// destructive: existing settings and participants are replaced.
var importCmd = &cobra.Command{
	Use:     "import <file>",
	Short:   "Restore a snapshot created by export (replaces current data)",
	Args:    cobra.ExactArgs(1),
	PreRunE: setupDefaultServices,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readCompressedBackup(args[0])
		if err != nil {
			return err
		}
		if err := db.GetStore().ImportDataFromBackup(data); err != nil {
			return fmt.Errorf("failed to import data: %w", err)
		}
		logging.Infof("imported %d settings and %d participants from %s",
			len(data.Settings), len(data.Participants), args[0])
		return nil
	},
}

// writeCompressedBackup writes the snapshot to a zstd-compressed JSON file.
func writeCompressedBackup(path string, data *model.BackupData) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create backup file: %w", err)
	}
	defer func() { _ = file.Close() }()

	zstdWriter, err := zstd.NewWriter(file)
	if err != nil {
		return fmt.Errorf("could not create zstd writer: %w", err)
	}
	defer func() { _ = zstdWriter.Close() }()

	encoder := json.NewEncoder(zstdWriter)
	encoder.SetIndent("", "  ") // Pretty-print the JSON inside the compressed file

	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("could not encode json to zstd writer: %w", err)
	}

	return nil
}

// readCompressedBackup reads and decodes a zstd-compressed JSON backup file.
func readCompressedBackup(path string) (*model.BackupData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open backup file: %w", err)
	}
	defer func() { _ = file.Close() }()

	zstdReader, err := zstd.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("could not create zstd reader: %w", err)
	}
	defer zstdReader.Close()

	var backupData model.BackupData
	if err := json.NewDecoder(zstdReader).Decode(&backupData); err != nil {
		return nil, fmt.Errorf("could not decode json from zstd reader: %w", err)
	}
	return &backupData, nil
}
