package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceWave/internal/viewer"
)

var infoSamples bool

var infoCmd = &cobra.Command{
	Use:   "info <project.json|dump.vcd>",
	Short: "List the waves of a project or dump",
	Long: `Print the timeline length and, for each wave, its name, type, display
mode and value range.

Examples:
  wavegen info project.json
  wavegen info --samples dump.vcd`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().BoolVarP(&infoSamples, "samples", "s", false,
		"print every sample in the wave's display mode")
}

func runInfo(cmd *cobra.Command, args []string) error {
	p, err := openProject(args[0])
	if err != nil {
		return err
	}

	waves := p.Waves()
	fmt.Printf("Length: %d samples\n", p.Length())
	fmt.Printf("Waves:  %d\n\n", len(waves))
	for _, w := range waves {
		lo, hi := w.Extrema()
		fmt.Printf("%s\n", w.Label())
		for _, line := range viewer.DefaultInfo(w) {
			fmt.Printf("  %s\n", line)
		}
		fmt.Printf("  Display: %s\n", w.Display())
		fmt.Printf("  Range: %g..%g\n", lo, hi)
		if infoSamples {
			d := w.Display()
			for i, s := range w.Samples() {
				fmt.Printf("  [%d] %s\n", i, d.Format(s))
			}
		}
	}
	return nil
}
