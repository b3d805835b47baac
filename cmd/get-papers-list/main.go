// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the get-papers-list CLI. The root
// command searches PubMed and lists papers with at least one author
// affiliated with a company; the e* subcommands expose the underlying
// Entrez utilities for debugging queries.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/pubmed-fetcher/internal/logging"
	"github.com/pdiddy/pubmed-fetcher/internal/secrets"
	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// Set by PersistentPreRunE before any RunE executes.
var (
	cfg types.Config
	log = zap.NewNop().Sugar()
)

var rootCmd = &cobra.Command{
	Use:   "get-papers-list <query...>",
	Short: "List PubMed papers with pharmaceutical or biotech company authors",
	Long: `get-papers-list searches PubMed for the given query, fetches the matching
records, and keeps the papers where at least one author has a non-academic
affiliation. For each paper it reports the PubMed ID, title, publication
date, the non-academic authors, their company affiliations, and the first
email address found in any of those affiliations.

The query uses full PubMed syntax; multiple arguments are joined with spaces.
Results are printed as a table, or written to a CSV file with -f.`,
	Example: `  get-papers-list "crispr AND cancer"
  get-papers-list -f results "kras inhibitor" --retmax 200
  get-papers-list --format json --mindate 2023 --maxdate 2024 mrna vaccine`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	RunE:          runFetch,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		secretsDir, _ := cmd.Flags().GetString("secrets-dir")
		c, err := loadConfig(debug, secretsDir)
		if err != nil {
			return err
		}
		cfg = c
		log = logging.New(cfg.Log, os.Stderr)
		if used := viper.ConfigFileUsed(); used != "" {
			log.Debugw("using config file", "path", used)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./get-papers-list.yaml or ~/.config/get-papers-list/config.yaml)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "print debug information during execution")
	rootCmd.PersistentFlags().String("secrets-dir", secrets.DefaultDir, "directory holding ncbi-api-key and ncbi-email files")
}

func initConfig() {
	_ = godotenv.Load(".env")

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("get-papers-list")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "get-papers-list"))
		}
	}

	viper.SetEnvPrefix("GET_PAPERS_LIST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv("entrez.api_key", "GET_PAPERS_LIST_ENTREZ_API_KEY", "NCBI_API_KEY")
	_ = viper.BindEnv("entrez.email", "GET_PAPERS_LIST_ENTREZ_EMAIL", "NCBI_EMAIL")

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintf(os.Stderr, "warning: reading config %s: %v\n", cfgFile, err)
		}
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
