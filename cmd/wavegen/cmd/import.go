package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/project"
)

var (
	importOutput string
	importLength int
)

var importCmd = &cobra.Command{
	Use:   "import <dump.vcd>",
	Short: "Convert a VCD dump into a project file",
	Long: `Replay a Value Change Dump into one wave per declared variable and save
the result as a project. Variables are named by their scope path, e.g.
top.cpu.data[7:0]. Records the importer does not understand are logged and
skipped.

Examples:
  wavegen import dump.vcd
  wavegen import -o cpu.json --length 64 dump.vcd`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&importOutput, "output", "o", "",
		"project file to write (default: <dump>.json)")
	importCmd.Flags().IntVarP(&importLength, "length", "n", 0,
		"minimum timeline length (default: project.length from config)")
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	out := importOutput
	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + ".json"
	}
	n := importLength
	if n == 0 {
		n = cfg.Project.Length
	}

	p, err := project.New(n, log)
	if err != nil {
		return err
	}
	res, err := p.ImportVCD(cfg.Importer(), path)
	if err != nil {
		return fmt.Errorf("failed to import dump: %w", err)
	}
	if err := p.Save(out); err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}

	fmt.Printf("Imported %d wave(s) from %s\n", len(res.Waves), path)
	if res.Timescale != nil {
		fmt.Printf("Timescale: %s (divisor %d)\n", res.Timescale, res.Divisor)
	}
	fmt.Printf("Length: %d samples\n", p.Length())
	fmt.Printf("Saved: %s\n", out)
	return nil
}
