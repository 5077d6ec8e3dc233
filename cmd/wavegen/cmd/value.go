package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/bitval"
)

var (
	valueWidth  int
	valueSigned bool
)

var valueCmd = &cobra.Command{
	Use:   "value <literal>",
	Short: "Parse a value and print it in every base",
	Long: `Parse an integer literal into a fixed-width value and print it in binary,
octal, decimal and hexadecimal. Literals take an optional sign and a 0b, 0o
or 0x prefix. Negative values print as their two's-complement pattern unless
--signed is given, which prints the decimal form with a sign.

Examples:
  wavegen value --width 8 0xff
  wavegen value --width 12 --signed -- -0x10`,
	Args: cobra.ExactArgs(1),
	RunE: runValue,
}

func init() {
	rootCmd.AddCommand(valueCmd)

	valueCmd.Flags().IntVarP(&valueWidth, "width", "w", 32,
		fmt.Sprintf("value width in bits (1-%d)", bitval.MaxBits))
	valueCmd.Flags().BoolVarP(&valueSigned, "signed", "s", false,
		"print decimal with a sign")
}

func runValue(cmd *cobra.Command, args []string) error {
	v, err := bitval.Parse(args[0], valueWidth)
	if err != nil {
		var perr *bitval.ParseError
		if errors.As(err, &perr) {
			fmt.Println(perr.Render())
		}
		return err
	}

	fmt.Printf("Width:   %d\n", v.Width())
	fmt.Printf("Binary:  %s%s\n", bitval.Binary.Prefix(), v.Bin())
	fmt.Printf("Octal:   %s%s\n", bitval.Octal.Prefix(), v.Oct())
	fmt.Printf("Decimal: %s\n", v.Dec(valueSigned))
	fmt.Printf("Hex:     %s%s\n", bitval.Hex.Prefix(), v.Hex())
	if verbose {
		fmt.Printf("Literal: %s\n", v)
	}
	return nil
}
