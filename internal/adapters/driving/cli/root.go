// Package cli implements the reclass command-line interface.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerworks/reclass-cli/internal/adapters/driven/config/file"
	"github.com/ledgerworks/reclass-cli/internal/adapters/driven/embedding"
	"github.com/ledgerworks/reclass-cli/internal/adapters/driven/embedding/ollama"
	"github.com/ledgerworks/reclass-cli/internal/adapters/driven/embedding/openai"
	"github.com/ledgerworks/reclass-cli/internal/adapters/driven/index/bruteforce"
	"github.com/ledgerworks/reclass-cli/internal/adapters/driven/storage/sqlite"
	"github.com/ledgerworks/reclass-cli/internal/core/domain"
	"github.com/ledgerworks/reclass-cli/internal/core/ports/driven"
	"github.com/ledgerworks/reclass-cli/internal/core/ports/driving"
	"github.com/ledgerworks/reclass-cli/internal/core/services"
	"github.com/ledgerworks/reclass-cli/internal/logger"
)

var version = "dev"

// Services wired in by initServices, or injected directly by tests.
var (
	classifyService driving.ClassifyService
	recordService   driving.RecordService
	configStore     *file.ConfigStore
	store           *sqlite.Store
)

var (
	verbose   bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "reclass",
	Short: "Classify receipts against your own verified records",
	Long: `reclass suggests account categories for receipts by comparing them
against previously verified records using embedding similarity.

Records live in a local SQLite database. Classification never fails:
when no stored record is similar enough the result is an explicit
fallback so another classifier can take over.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		return initServices(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.reclass)")
}

// Execute runs the root command. The store is closed on the way out so a
// WAL checkpoint happens even when a command fails.
func Execute(v string) error {
	version = v
	defer closeStore()
	return rootCmd.Execute()
}

// initServices builds the production wiring: config, store, embedder,
// index, services. Tests bypass it by injecting services directly.
func initServices(cmd *cobra.Command) error {
	if classifyService != nil || recordService != nil {
		return nil
	}
	if skipsServiceInit(cmd) {
		return nil
	}

	cs, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	configStore = cs
	cfg := cs.Config()

	st, err := sqlite.NewStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("opening record store: %w", err)
	}
	store = st

	embedder, err := newEmbedder(cfg.Embedding)
	if err != nil {
		return err
	}

	recordStore := st.RecordStore()
	index := bruteforce.New(recordStore)
	classifyService = services.NewClassifyService(index, embedder, cfg.Threshold)
	recordService = services.NewRecordService(recordStore, embedder)

	logger.Debug("Services initialised (db %s, provider %s)", st.Path(), cfg.Embedding.Provider)
	return nil
}

// newEmbedder builds the configured embedding provider. Hosted providers
// always get the rate limiter; local ones only when a cap is configured.
func newEmbedder(cfg file.EmbeddingConfig) (driven.EmbeddingService, error) {
	var inner driven.EmbeddingService

	switch cfg.Provider {
	case file.ProviderOpenAI:
		svc, err := openai.NewEmbeddingService(openai.Config{
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
		})
		if err != nil {
			return nil, fmt.Errorf("configuring openai embeddings: %w", err)
		}
		inner = svc
	case file.ProviderOllama, "":
		inner = ollama.NewEmbeddingService(ollama.Config{
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
		})
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}

	if cfg.Provider == file.ProviderOpenAI || cfg.RequestsPerSecond > 0 {
		inner = embedding.NewRateLimited(inner, cfg.RequestsPerSecond, cfg.Burst)
	}
	return inner, nil
}

// skipsServiceInit reports whether the command works without the record
// store and embedder. Config commands manage their own config store.
func skipsServiceInit(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "version", "help", "completion", "config":
			return true
		}
	}
	return false
}

func closeStore() {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Warn("Closing store: %v", err)
	}
	store = nil
}

// printJSON writes v to the command output as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// knownDomainError reports whether err is an expected outcome that is
// reported in the JSON envelope instead of aborting the command.
func knownDomainError(err error) bool {
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, domain.ErrEmptyQuery) ||
		errors.Is(err, domain.ErrStoreUnavailable) ||
		errors.Is(err, domain.ErrEmbeddingUnavailable)
}
