package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerworks/reclass-cli/internal/adapters/driven/config/file"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage reclass configuration",
	Long:  `Commands for the TOML configuration file (default ~/.reclass/config.toml).`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// openConfigStore returns the injected store (tests) or opens the real one.
func openConfigStore() (*file.ConfigStore, error) {
	if configStore != nil {
		return configStore, nil
	}
	return file.NewConfigStore(configDir)
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	cs, err := openConfigStore()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cs.Save(); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	cmd.Printf("Wrote %s\n", cs.Path())
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cs, err := openConfigStore()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cfg := cs.Config()
	if cfg.Embedding.APIKey != "" {
		cfg.Embedding.APIKey = "<redacted>"
	}
	return printJSON(cmd, cfg)
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	cs, err := openConfigStore()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cmd.Println(cs.Path())
	return nil
}
