// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the doc2md CLI: convert DOCX and
// PDF documents to Markdown from the command line or over HTTP.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/doc2md/internal/logging"
	"github.com/pdiddy/doc2md/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// cfg and logger are populated before any subcommand runs.
var (
	cfg    types.Config
	logger = zerolog.Nop()
)

// rootCmd is the base command for the doc2md CLI.
var rootCmd = &cobra.Command{
	Use:   "doc2md",
	Short: "Convert DOCX and PDF documents to Markdown",
	Long: `doc2md converts Word (.docx) and PDF documents into Markdown. Headings,
bold, italic, and underline are carried over; PDF headings are inferred from
font sizes.

Convert files directly with "doc2md convert", list the registered formats
with "doc2md formats", or run the upload service with "doc2md serve".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		cfg = c
		logger = logging.New(cfg.Log, os.Stderr)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./doc2md.yaml or ~/.config/doc2md/doc2md.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: console or json")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: reading .env: %v\n", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("doc2md")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "doc2md"))
		}
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig layers defaults, the config file, and DOC2MD_* environment
// variables (DOC2MD_SERVE_ADDR for serve.addr) into a Config.
func loadConfig(v *viper.Viper) (types.Config, error) {
	v.SetEnvPrefix("DOC2MD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := types.DefaultConfig()
	v.SetDefault("pdf.x_tolerance", d.PDF.XTolerance)
	v.SetDefault("pdf.y_tolerance", d.PDF.YTolerance)
	v.SetDefault("pdf.keep_blank_chars", d.PDF.KeepBlankChars)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("serve.addr", d.Serve.Addr)
	v.SetDefault("serve.upload_dir", d.Serve.UploadDir)
	v.SetDefault("serve.converted_dir", d.Serve.ConvertedDir)
	v.SetDefault("serve.db_path", d.Serve.DBPath)
	v.SetDefault("serve.retention", d.Serve.Retention)
	v.SetDefault("serve.sweep_interval", d.Serve.SweepInterval)
	v.SetDefault("serve.secrets_dir", d.Serve.SecretsDir)
	v.SetDefault("markitdown.enabled", d.Markitdown.Enabled)
	v.SetDefault("markitdown.extensions", d.Markitdown.Extensions)

	var c types.Config
	if err := v.Unmarshal(&c); err != nil {
		return types.Config{}, fmt.Errorf("decoding configuration: %w", err)
	}
	return c, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
