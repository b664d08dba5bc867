// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the inspire-ris CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/inspire-ris/internal/inspire"
	"github.com/pdiddy/inspire-ris/internal/logging"
	"github.com/pdiddy/inspire-ris/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

const defaultUserAgent = "inspire-ris/0.1"

// loadedSecrets holds values loaded from .secrets/ at startup.
var loadedSecrets secrets.Secrets

// rootCmd is the base command for the inspire-ris CLI.
var rootCmd = &cobra.Command{
	Use:   "inspire-ris",
	Short: "Export an author's INSPIRE-HEP publications as a citation file",
	Long: `inspire-ris queries the INSPIRE-HEP literature API for an author's papers
(and optionally conference proceedings) published since a given date, skips
entries whose DOI already appears in an existing RIS export, and writes the
rest as RIS or CSL-YAML.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logger := logging.Setup(verbose)
		ctx := logging.WithLogger(cmd.Context(), logger)
		cmd.SetContext(ctx)

		if used := viper.ConfigFileUsed(); used != "" {
			logging.Debug(ctx, "using config file", zap.String("path", used))
		}

		s, err := secrets.Load(ctx, ".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			logging.Debug(ctx, "loaded secrets", zap.Strings("keys", s.Keys()))
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./inspire-ris.yaml or ~/.config/inspire-ris/inspire-ris.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose printout")
}

func initConfig() {
	// A .env file is optional; values already in the environment win.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("inspire-ris")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "inspire-ris"))
		}
	}

	viper.SetDefault("inspire.base_url", inspire.DefaultBaseURL)
	viper.SetDefault("inspire.page_size", inspire.DefaultPageSize)
	viper.SetDefault("inspire.rate_limit", 2.0)
	viper.SetDefault("http.timeout", inspire.DefaultTimeout)
	viper.SetDefault("http.user_agent", defaultUserAgent)

	viper.SetEnvPrefix("INSPIRE_RIS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
