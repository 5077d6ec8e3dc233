package vcd

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var timescaleUnits = []string{"s", "ms", "us", "ns", "ps", "fs"}

// Timescale is the $timescale declaration of a dump, e.g. 10 ns.
type Timescale struct {
	Magnitude uint64
	Unit      string
}

func (ts Timescale) String() string {
	return strconv.FormatUint(ts.Magnitude, 10) + " " + ts.Unit
}

// ParseTimescale reads the words of a $timescale body. The magnitude and
// unit may be one word ("1ns") or two ("1 ns").
func ParseTimescale(parts []string) (Timescale, error) {
	text := strings.Join(parts, "")
	i := 0
	for i < len(text) && text[i] >= '0' && text[i] <= '9' {
		i++
	}
	if i == 0 {
		return Timescale{}, errors.Errorf("vcd: timescale %q has no magnitude", text)
	}
	mag, err := strconv.ParseUint(text[:i], 10, 64)
	if err != nil {
		return Timescale{}, errors.Wrapf(err, "vcd: timescale %q", text)
	}
	switch mag {
	case 1, 10, 100:
	default:
		return Timescale{}, errors.Errorf("vcd: timescale magnitude %d is not 1, 10 or 100", mag)
	}
	unit := text[i:]
	for _, u := range timescaleUnits {
		if u == unit {
			return Timescale{Magnitude: mag, Unit: unit}, nil
		}
	}
	return Timescale{}, errors.Errorf("vcd: unknown timescale unit %q", unit)
}
