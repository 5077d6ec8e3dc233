package cmd

import (
	"context"
	"fmt"
	"os"

	"gioui.org/app"
	"gioui.org/unit"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceWave/internal/viewer"
)

var viewNoWatch bool

var viewCmd = &cobra.Command{
	Use:   "view <project.json|dump.vcd>",
	Short: "Open a read-only waveform window",
	Long: `Show every wave of a project or dump in a window, one row per wave.
The file is loaded again whenever it changes.

Controls: Q or Esc to quit

Examples:
  wavegen view project.json
  wavegen view --no-watch dump.vcd`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)

	viewCmd.Flags().BoolVar(&viewNoWatch, "no-watch", false,
		"do not reload the file when it changes")
}

func runView(cmd *cobra.Command, args []string) error {
	path := args[0]
	p, err := openProject(path)
	if err != nil {
		return err
	}

	v := viewer.New(viewer.DefaultInfo, log)
	v.SetWaves(p.Waves())
	v.SetStatus(path)

	if !viewNoWatch {
		reload := func() {
			p, err := openProject(path)
			if err != nil {
				log.WithError(err).Warn("reload failed")
				v.SetStatus(fmt.Sprintf("%s: %v", path, err))
				return
			}
			v.SetWaves(p.Waves())
			v.SetStatus(path)
			log.WithField("file", path).Info("reloaded")
		}
		go func() {
			if err := viewer.Watch(context.Background(), log, path, reload); err != nil {
				log.WithError(err).Warn("file watch stopped")
			}
		}()
	}

	go func() {
		w := new(app.Window)
		w.Option(app.Title("Waveform Viewer - " + path))
		w.Option(app.Size(unit.Dp(1200), unit.Dp(800)))

		if err := v.Run(w); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()

	app.Main()
	return nil
}
