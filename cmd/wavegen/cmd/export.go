package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	exportDir        string
	exportNoMemb     bool
	exportNoManifest bool
)

var exportCmd = &cobra.Command{
	Use:   "export <project.json|dump.vcd>",
	Short: "Write memb files and a manifest for a testbench",
	Long: `Export every wave as <name>_file.memb, one binary sample per line, and
write manifest.yaml listing each wave's declaration, names, file and depth
for a testbench template.

Examples:
  wavegen export project.json
  wavegen export --dir sim/stimulus dump.vcd
  wavegen export --no-memb project.json          # Manifest only`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportDir, "dir", "d", "",
		"output directory (default: export.dir from config)")
	exportCmd.Flags().BoolVar(&exportNoMemb, "no-memb", false,
		"skip the memb files")
	exportCmd.Flags().BoolVar(&exportNoManifest, "no-manifest", false,
		"skip manifest.yaml")
}

func runExport(cmd *cobra.Command, args []string) error {
	p, err := openProject(args[0])
	if err != nil {
		return err
	}

	dir := exportDir
	if dir == "" {
		dir = cfg.Export.Dir
	}
	opts := cfg.ExportOptions()
	opts.Memb = opts.Memb && !exportNoMemb
	opts.Manifest = opts.Manifest && !exportNoManifest

	files, err := p.Export(dir, opts)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	fmt.Printf("Exported %d wave(s), %d samples each\n", len(p.Waves()), p.Length())
	for _, f := range files {
		fmt.Printf("  %s\n", f)
	}
	return nil
}
