package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceWave/internal/config"
)

var (
	// Global flags
	verbose    bool
	configPath string

	cfg *config.Config
	log *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "wavegen",
	Short: "Digital waveform authoring and testbench stimulus export",
	Long: `A tool for building multi-signal digital waveforms, importing them from
VCD dumps and exporting them as memory files for HDL testbenches.

Examples:
  wavegen value --width 12 -- -0x10             # Print a value in every base
  wavegen clock --period 4 --duty 1 --length 8  # Print a clock pattern
  wavegen import dump.vcd -o project.json       # Convert a VCD dump to a project
  wavegen export project.json --dir ./test      # Write memb files and manifest.yaml
  wavegen view dump.vcd                         # Show the waves, reloading on change`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath,
		"config file (.toml, .yaml or .json)")
}

// setup loads the config and builds the logger before any subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	l, err := c.Log.NewLogger(os.Stderr, verbose)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	cfg, log = c, l
	return nil
}
