// Root command for the minibase CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/minibase-io/minibase/internal/paths"
	"github.com/minibase-io/minibase/pkg/minibase"
)

// Exit codes: 1 for user errors (bad arguments, failed operations), 2 for
// system errors (unreadable config, broken data directory).
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagActor     string
	flagJSON      bool
)

// configDataDir holds the data_dir value loaded from config.yaml.
// Set by PersistentPreRunE so all subcommands can use it.
var configDataDir string

// configSyncStrategy and configAudit mirror their config.yaml keys.
var (
	configSyncStrategy string
	configAudit        bool
)

var rootCmd = &cobra.Command{
	Use:     "minibase",
	Short:   "Minibase is an embedded file-persisted relational data store",
	Version: minibase.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDataDir = cfg.GetString(cfgKeyDataDir)
		configSyncStrategy = cfg.GetString(cfgKeySyncStrategy)
		configAudit = cfg.GetBool(cfgKeyAudit)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.minibase-db)")
	rootCmd.PersistentFlags().StringVar(&flagActor, "actor", "", "role to execute operations as (default: owner, unrestricted)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(auditCmd)
}

// resolveDataDir returns the data directory following the precedence chain:
// --data-dir flag > config.yaml data_dir > MINIBASE_DATA_DIR env > default.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}

// resolveConfigDir returns the configuration directory following the
// precedence chain: --config-dir flag > MINIBASE_CONFIG_DIR env > default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}
