// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the research-hub CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/research-hub/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// logger is built in PersistentPreRunE from the log flags and config.
var logger = zap.NewNop()

// rootCmd is the base command for the research-hub CLI.
var rootCmd = &cobra.Command{
	Use:   "research-hub",
	Short: "A research workspace for papers, workspaces and AI synthesis",
	Long: `research-hub keeps a library of papers organized into workspaces and
uses Gemini for discovery search, PDF summarization, multi-paper lab tools
and two chat threads: Brainy, which knows every title in the library, and
the workspace agent, which answers from the abstracts of one workspace.

The library is mirrored to a durable store (SQLite by default) after every
change. The same operations are available to MCP clients through serve.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = newLogger(viper.GetString("log.level"), viper.GetString("log.format"), viper.GetBool("verbose"))
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}

		s, err := secrets.Load(".secrets/", logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug("loaded secrets", zap.Strings("keys", keys))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./research-hub.yaml or ~/.config/research-hub/research-hub.yaml)")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	flags.String("log-format", "", "log encoding: console or json")
	flags.String("data-dir", "", "directory for the file and sqlite mirrors (default .research-hub)")
	flags.String("mirror", "", "mirror backend: memory, file, sqlite or postgres")

	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("log.format", flags.Lookup("log-format"))
	_ = viper.BindPFlag("mirror.dir", flags.Lookup("data-dir"))
	_ = viper.BindPFlag("mirror.backend", flags.Lookup("mirror"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("research-hub")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "research-hub"))
		}
	}

	setDefaults(viper.GetViper())

	viper.SetEnvPrefix("RESEARCH_HUB")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
