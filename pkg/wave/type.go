package wave

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/bitval"
)

// Kind identifies the kind of signal a wave carries.
type Kind uint8

const (
	KindWire Kind = iota
	KindClock
	KindReg
)

var kindNames = map[Kind]string{
	KindWire:  "wire",
	KindClock: "clock",
	KindReg:   "reg",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind maps "wire", "clock" or "reg" to a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("wave: unknown kind %q", s)
}

func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("wave: unknown kind %d", k)
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ErrClock is returned for clock parameters that cannot describe a pulse
// train.
var ErrClock = errors.New("wave: invalid clock")

// Clock describes a generated square wave in sample units.
type Clock struct {
	Period int `json:"period"`
	Duty   int `json:"duty"`
	Phase  int `json:"phase"`
}

// DefaultClock returns a 50% duty clock with a period of two samples.
func DefaultClock() Clock {
	return Clock{Period: 2, Duty: 1, Phase: 0}
}

// Level returns the clock output at sample i.
func (c Clock) Level(i int) bool {
	if c.Period < 1 {
		return false
	}
	return (i+c.Phase)%c.Period < c.Duty
}

// Validate checks 1 <= Period <= bound, 0 <= Duty <= Period and
// 0 <= Phase <= Period. A bound below 1 leaves the period unbounded.
func (c Clock) Validate(bound int) error {
	if c.Period < 1 || (bound > 0 && c.Period > bound) {
		if bound > 0 {
			return fmt.Errorf("%w: period %d outside 1..%d", ErrClock, c.Period, bound)
		}
		return fmt.Errorf("%w: period %d must be positive", ErrClock, c.Period)
	}
	if c.Duty < 0 || c.Duty > c.Period {
		return fmt.Errorf("%w: duty %d outside 0..%d", ErrClock, c.Duty, c.Period)
	}
	if c.Phase < 0 || c.Phase > c.Period {
		return fmt.Errorf("%w: phase %d outside 0..%d", ErrClock, c.Phase, c.Period)
	}
	return nil
}

// Type is the signal type of a wave. The zero value is a wire.
type Type struct {
	kind  Kind
	clock Clock
	width int
}

// Wire returns the 1-bit wire type.
func Wire() Type { return Type{kind: KindWire} }

// ClockType returns a clock type generating c.
func ClockType(c Clock) Type { return Type{kind: KindClock, clock: c} }

// Reg returns a register type of the given width. Use Validate to check the
// width.
func Reg(width int) Type { return Type{kind: KindReg, width: width} }

func (t Type) Kind() Kind { return t.kind }

// Clock returns the clock parameters and whether t is a clock.
func (t Type) Clock() (Clock, bool) {
	return t.clock, t.kind == KindClock
}

// Width returns the sample width in bits: 1 for wires and clocks.
func (t Type) Width() int {
	if t.kind == KindReg {
		return t.width
	}
	return 1
}

// Validate checks the register width or the clock parameters.
func (t Type) Validate() error {
	switch t.kind {
	case KindWire:
		return nil
	case KindClock:
		return t.clock.Validate(0)
	case KindReg:
		if t.width < 1 || t.width > bitval.MaxBits {
			return fmt.Errorf("%w: register width %d", bitval.ErrWidth, t.width)
		}
		return nil
	}
	return fmt.Errorf("wave: unknown kind %d", t.kind)
}

func (t Type) String() string {
	switch t.kind {
	case KindClock:
		return fmt.Sprintf("clock(period=%d, duty=%d, phase=%d)", t.clock.Period, t.clock.Duty, t.clock.Phase)
	case KindReg:
		return fmt.Sprintf("reg[%d]", t.width)
	}
	return t.kind.String()
}

// ExportDecl returns the HDL storage declaration for the type, e.g. "wire"
// or "reg [8:0]" for an 8-bit register.
func (t Type) ExportDecl() string {
	if t.kind == KindReg {
		return fmt.Sprintf("reg [%d:0]", t.width)
	}
	return "wire"
}

type typeJSON struct {
	Kind  Kind   `json:"kind"`
	Width int    `json:"width,omitempty"`
	Clock *Clock `json:"clock,omitempty"`
}

func (t Type) MarshalJSON() ([]byte, error) {
	raw := typeJSON{Kind: t.kind}
	switch t.kind {
	case KindClock:
		c := t.clock
		raw.Clock = &c
	case KindReg:
		raw.Width = t.width
	}
	return json.Marshal(raw)
}

func (t *Type) UnmarshalJSON(data []byte) error {
	var raw typeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var parsed Type
	switch raw.Kind {
	case KindWire:
		parsed = Wire()
	case KindClock:
		if raw.Clock == nil {
			return fmt.Errorf("%w: clock type without parameters", ErrClock)
		}
		parsed = ClockType(*raw.Clock)
	case KindReg:
		parsed = Reg(raw.Width)
	}
	if err := parsed.Validate(); err != nil {
		return err
	}
	*t = parsed
	return nil
}
