package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/project"
)

const cpuDump = "../../../pkg/vcd/testdata/cpu.vcd"

// execute runs the root command with args and returns what it printed to
// stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Capture stdout
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	// Read in background to prevent pipe buffer from blocking on Windows
	var buf bytes.Buffer
	done := make(chan struct{})
	go func() {
		buf.ReadFrom(r)
		close(done)
	}()

	// Reset flags to prevent accumulation between tests
	verbose = false
	configPath = filepath.Join(t.TempDir(), "missing.toml")
	valueWidth, valueSigned = 32, false
	clockPeriod, clockDuty, clockPhase, clockLength = 2, 1, 0, 0
	importOutput, importLength = "", 0
	exportDir, exportNoMemb, exportNoManifest = "", false, false
	infoSamples = false

	rootCmd.SetArgs(append([]string{"--config", configPath}, args...))
	err = rootCmd.Execute()

	// Restore stdout and wait for reader
	w.Close()
	os.Stdout = old
	<-done

	return buf.String(), err
}

func TestValueE2E(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantErr     bool
		wantContain []string
	}{
		{
			name: "hex byte",
			args: []string{"value", "--width", "8", "0xff"},
			wantContain: []string{
				"Width:   8",
				"Binary:  0b11111111",
				"Octal:   0o377",
				"Decimal: 255",
				"Hex:     0xff",
			},
		},
		{
			name: "negative pattern",
			args: []string{"value", "--width", "12", "--", "-0x10"},
			wantContain: []string{
				"Binary:  0b111111110000",
				"Octal:   0o7760",
				"Decimal: 4080",
				"Hex:     0xff0",
			},
		},
		{
			name:        "negative signed",
			args:        []string{"value", "--width", "12", "--signed", "--", "-0x10"},
			wantContain: []string{"Decimal: -0016"},
		},
		{
			name:    "too wide for width",
			args:    []string{"value", "--width", "2", "0b101"},
			wantErr: true,
			wantContain: []string{
				" | 0b101",
				"^^^ value needs 3 bits, width is 2",
			},
		},
		{
			name:    "width out of range",
			args:    []string{"value", "--width", "513", "1"},
			wantErr: true,
		},
		{
			name:    "missing argument",
			args:    []string{"value"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := execute(t, tt.args...)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err, output)
			}
			for _, want := range tt.wantContain {
				require.Contains(t, output, want)
			}
		})
	}
}

func TestClockE2E(t *testing.T) {
	output, err := execute(t, "clock")
	require.NoError(t, err)
	require.Equal(t, "1010101010101010\n", output)

	output, err = execute(t, "clock", "--period", "4", "--duty", "1", "--phase", "1", "--length", "8")
	require.NoError(t, err)
	require.Equal(t, "00010001\n", output)

	_, err = execute(t, "clock", "--period", "4", "--duty", "5", "--length", "8")
	require.Error(t, err)

	_, err = execute(t, "clock", "--period", "9", "--length", "8")
	require.Error(t, err)
}

func TestImportE2E(t *testing.T) {
	out := filepath.Join(t.TempDir(), "cpu.json")
	output, err := execute(t, "import", "-o", out, cpuDump)
	require.NoError(t, err, output)
	require.Contains(t, output, "Imported 4 wave(s)")
	require.Contains(t, output, "Timescale: 1 ns (divisor 1)")
	require.Contains(t, output, "Length: 16 samples")

	p, err := project.Load(out, nil)
	require.NoError(t, err)
	require.Equal(t, 16, p.Length())
	require.Len(t, p.Waves(), 4)
	data, ok := p.Find("top.cpu.data[7:0]")
	require.True(t, ok)
	require.Equal(t, "ff", data.Sample(15).Hex())

	_, err = execute(t, "import", "-o", out, "/nonexistent/dump.vcd")
	require.Error(t, err)
}

func TestInfoE2E(t *testing.T) {
	output, err := execute(t, "info", "--samples", cpuDump)
	require.NoError(t, err, output)
	for _, want := range []string{
		"Length: 16 samples",
		"Waves:  4",
		"top.cpu.data[7:0]",
		"Bit size: 8",
		"Type: reg[8]",
		"Range: 10..255",
		"[2] ff",
	} {
		require.Contains(t, output, want)
	}
}

func TestExportE2E(t *testing.T) {
	dir := t.TempDir()
	output, err := execute(t, "export", "--dir", dir, cpuDump)
	require.NoError(t, err, output)
	require.Contains(t, output, "Exported 4 wave(s), 16 samples each")

	memb, err := os.ReadFile(filepath.Join(dir, project.MembFile("top.clk")))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(memb)), "\n")
	require.Len(t, lines, 16)
	require.Equal(t, "0", lines[0])
	require.Equal(t, "1", lines[15])

	m, err := project.ReadManifest(filepath.Join(dir, project.ManifestFile))
	require.NoError(t, err)
	require.Equal(t, 32, m.EndTime)
	require.Len(t, m.Waves, 4)
	require.Equal(t, "reg [1:0]", m.Waves[0].Decl)
	require.Equal(t, "top.cpu.data[7:0]", m.Waves[1].Name)
	require.Equal(t, "reg [8:0]", m.Waves[1].Decl)

	manifestOnly := t.TempDir()
	_, err = execute(t, "export", "--dir", manifestOnly, "--no-memb", cpuDump)
	require.NoError(t, err)
	entries, err := os.ReadDir(manifestOnly)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, project.ManifestFile, entries[0].Name())
}
