package cmd

import (
	"fmt"

	"github.com/rustyeddy/crossbar/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate engine configuration files",
	Long: `Manage configuration files for the trading engine.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default configuration file",
	Long: `Create a new configuration file with the F1 defaults named in
the external interfaces section: $25,000 reserve, (0.7, 370.5) price
range, America/Los_Angeles trading-hours zone, volume divisor 40, 95%
buying-power fraction, 0.03 cancel threshold.`,
	RunE: runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	RunE:  runConfigValidate,
}

var (
	configInitOutput   string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "trader.yaml", "output config file path")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "path to config file (required)")
	configValidateCmd.MarkFlagRequired("file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if err := cfg.SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	fmt.Printf("created default configuration: %s\n", configInitOutput)
	fmt.Printf("edit it and run with: trader run --config %s\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(configValidatePath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	fmt.Printf("configuration valid: %s\n", configValidatePath)
	fmt.Printf("  strategy: %s (ban_mode=%v with_cancel=%v)\n", cfg.Strategy.FormulaVariant, cfg.Strategy.BanMode, cfg.Strategy.WithCancel)
	fmt.Printf("  journal: %s\n", cfg.Journal.Type)
	return nil
}
