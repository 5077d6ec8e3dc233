package wave

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/bitval"
)

// Mode selects how samples are printed and plotted.
type Mode uint8

const (
	ModeBinary Mode = iota
	ModeHex
	ModeDecimal
	ModeAnalog
)

var modeNames = map[Mode]string{
	ModeBinary:  "binary",
	ModeHex:     "hex",
	ModeDecimal: "decimal",
	ModeAnalog:  "analog",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", m)
}

func (m Mode) MarshalText() ([]byte, error) {
	if _, ok := modeNames[m]; !ok {
		return nil, fmt.Errorf("wave: unknown display mode %d", m)
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	for mode, name := range modeNames {
		if name == string(text) {
			*m = mode
			return nil
		}
	}
	return fmt.Errorf("wave: unknown display mode %q", text)
}

// Display is the rendering choice for a wave. Signed only matters for the
// decimal and analog modes.
type Display struct {
	Mode   Mode `json:"mode"`
	Signed bool `json:"signed,omitempty"`
}

var (
	DisplayBinary = Display{Mode: ModeBinary}
	DisplayHex    = Display{Mode: ModeHex}
)

// ParseDisplay accepts "binary", "hex", "decimal", "analog", optionally
// prefixed with "signed-" or "unsigned-" for the last two.
func ParseDisplay(s string) (Display, error) {
	var d Display
	switch {
	case strings.HasPrefix(s, "signed-"):
		d.Signed = true
		s = strings.TrimPrefix(s, "signed-")
	case strings.HasPrefix(s, "unsigned-"):
		s = strings.TrimPrefix(s, "unsigned-")
	}
	if err := d.Mode.UnmarshalText([]byte(s)); err != nil {
		return Display{}, err
	}
	if d.Signed && d.Mode != ModeDecimal && d.Mode != ModeAnalog {
		return Display{}, fmt.Errorf("wave: %s display has no sign", d.Mode)
	}
	return d, nil
}

// IsSigned reports whether samples are interpreted as signed numbers.
func (d Display) IsSigned() bool {
	return d.Signed && (d.Mode == ModeDecimal || d.Mode == ModeAnalog)
}

// Base returns the radix used to print samples.
func (d Display) Base() bitval.Base {
	switch d.Mode {
	case ModeBinary:
		return bitval.Binary
	case ModeHex:
		return bitval.Hex
	}
	return bitval.Decimal
}

// Format prints v the way this display shows it.
func (d Display) Format(v bitval.Value) string {
	return v.Format(d.Base(), d.IsSigned())
}

// EditText returns the editable literal for v: prefixed binary or hex, or
// plain decimal.
func (d Display) EditText(v bitval.Value) string {
	return d.Base().Prefix() + d.Format(v)
}

func (d Display) String() string {
	if d.IsSigned() {
		return "signed " + d.Mode.String()
	}
	return d.Mode.String()
}
