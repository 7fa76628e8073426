// Copyright (c) 2026 QuietWire
// SecureTalk - end-to-end encrypted messaging client
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the command-line interface (CLI) for the SecureTalk
// settings panel using the Cobra library. It defines the root command,
// subcommands (status, export, import, version), flags, and the main entry
// point for execution.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/quietwire/securetalk/internal/analytics"
	"github.com/quietwire/securetalk/internal/config"
	"github.com/quietwire/securetalk/internal/db"
	"github.com/quietwire/securetalk/internal/i18n"
	"github.com/quietwire/securetalk/internal/logging"
	"github.com/quietwire/securetalk/internal/state"
	"github.com/quietwire/securetalk/internal/tui"
)

var version = "dev"   // this will be set by the linker
var gitCommit = "dev" // set at build time with the short commit SHA
var buildDate = ""    // set at build time (RFC3339)

var cfgFile string
var verbose bool

var appConfig config.Config

// setupDefaultServices loads the configuration and initializes logging,
// i18n, and the database. Every command that touches state runs it first.
func setupDefaultServices(cmd *cobra.Command, args []string) error {
	var optionalConfigPath *string
	if cfgFile != "" {
		optionalConfigPath = &cfgFile
	}

	var err error
	appConfig, err = config.LoadConfig[config.Config](cmd, config.Defaults(), optionalConfigPath)
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		// First run, or the config file was deleted. Create a default one.
		if writeErr := config.WriteConfigFile(&appConfig, false); writeErr != nil {
			log.Warnf("could not write default config file: %v", writeErr)
		}
	} else if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logging.SetDebug(appConfig.Debug || verbose)
	i18n.Init(appConfig.Language)

	if err := db.InitDB(appConfig.Database.Type, appConfig.Database.DSN); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.EnsureDefaults(db.GetStore()); err != nil {
		return fmt.Errorf("failed to seed default settings: %w", err)
	}

	return nil
}

// newSink builds the analytics sink from the loaded configuration.
func newSink() analytics.Sink {
	if !appConfig.Analytics.Enabled {
		return analytics.NopSink{}
	}
	if appConfig.Analytics.URL == "" {
		return analytics.LogSink{}
	}
	pub, err := analytics.NewPublisher(appConfig.Analytics.URL, appConfig.Analytics.Exchange)
	if err != nil {
		log.Warnf("analytics broker unreachable, falling back to log sink: %v", err)
		return analytics.LogSink{}
	}
	return pub
}

// rootCmd launches the interactive settings panel.
var rootCmd = &cobra.Command{
	Use:     "securetalk",
	Short:   "SecureTalk settings panel",
	Long:    `SecureTalk is an end-to-end encrypted messaging client. This binary hosts its interactive settings panel.`,
	PreRunE: setupDefaultServices,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("an interactive terminal is required; use 'securetalk status' for scripted access")
		}

		store, err := state.New(db.GetStore())
		if err != nil {
			return fmt.Errorf("failed to build state store: %w", err)
		}

		sink := newSink()
		if closer, ok := sink.(*analytics.Publisher); ok {
			defer func() { _ = closer.Close() }()
		}

		tui.Run(store, sink)
		return nil
	},
}

// statusCmd prints the current security settings without the TUI.
var statusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Print the current security settings",
	PreRunE: setupDefaultServices,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := state.New(db.GetStore())
		if err != nil {
			return err
		}
		snap := store.Snapshot()

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, i18n.T("status.encryption", onOff(snap.EncryptionEnabled)))
		fmt.Fprintln(out, i18n.T("status.everyone_supports", strconv.FormatBool(snap.EveryoneSupportsEncryption)))

		participants, err := db.GetActiveParticipants()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, i18n.T("status.participants", len(participants)))
		return nil
	},
}

func onOff(v bool) string {
	if v {
		return i18n.T("switch.on")
	}
	return i18n.T("switch.off")
}

// versionCmd prints build information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "securetalk %s (%s)", version, gitCommit)
		if buildDate != "" {
			fmt.Fprintf(out, " built %s", buildDate)
		}
		fmt.Fprintln(out)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to an additional config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
