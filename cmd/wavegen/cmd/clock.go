package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/wave"
)

var (
	clockPeriod int
	clockDuty   int
	clockPhase  int
	clockLength int
)

var clockCmd = &cobra.Command{
	Use:   "clock",
	Short: "Print the sample pattern of a clock",
	Long: `Generate a clock wave and print one character per sample. Each period
starts with duty high samples followed by low ones; phase rotates the
pattern left.

Examples:
  wavegen clock
  wavegen clock --period 4 --duty 1 --phase 1 --length 12`,
	Args: cobra.NoArgs,
	RunE: runClock,
}

func init() {
	rootCmd.AddCommand(clockCmd)

	def := wave.DefaultClock()
	clockCmd.Flags().IntVar(&clockPeriod, "period", def.Period, "samples per period")
	clockCmd.Flags().IntVar(&clockDuty, "duty", def.Duty, "high samples per period")
	clockCmd.Flags().IntVar(&clockPhase, "phase", def.Phase, "samples to shift the pattern left")
	clockCmd.Flags().IntVarP(&clockLength, "length", "n", 0,
		"number of samples (default: project.length from config)")
}

func runClock(cmd *cobra.Command, args []string) error {
	n := clockLength
	if n == 0 {
		n = cfg.Project.Length
	}
	if n < 1 {
		return fmt.Errorf("length must be at least 1, got %d", n)
	}

	clk := wave.Clock{Period: clockPeriod, Duty: clockDuty, Phase: clockPhase}
	if err := clk.Validate(n); err != nil {
		return fmt.Errorf("invalid clock: %w", err)
	}
	w := wave.New("clk", n)
	if err := w.SetType(wave.ClockType(clk)); err != nil {
		return fmt.Errorf("invalid clock: %w", err)
	}

	var b strings.Builder
	for _, s := range w.Samples() {
		b.WriteString(s.Bin())
	}
	if verbose {
		fmt.Printf("%s, %d samples\n", w.Type(), n)
	}
	fmt.Println(b.String())
	return nil
}
