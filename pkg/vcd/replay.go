package vcd

import (
	"math"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/sirupsen/logrus"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/bitval"
	"github.com/OpenTraceLab/OpenTraceWave/pkg/wave"
)

// replay applies change records to the declared waves.
type replay struct {
	im     *Importer
	log    logrus.FieldLogger
	waves  []*wave.Wave
	byCode map[string][]*wave.Wave
	div    uint64
	time   uint64
	capped bool
}

// run walks the records after the header. Keywords that only bracket
// changes ($dumpvars, $end, ...) are ignored; $comment and unknown sections
// are skipped up to their $end.
func (r *replay) run(tokens []lexer.Token) {
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		v := tok.Value
		switch {
		case v[0] == '$':
			switch v {
			case "$dumpvars", "$dumpall", "$dumpon", "$dumpoff", "$end":
			case "$comment":
				i = skipSection(tokens, i)
			default:
				r.warn(tok, "").Warnf("unsupported section %s, skipped", v)
				i = skipSection(tokens, i)
			}
		case v[0] == '#':
			r.timestamp(tok)
		case strings.IndexByte("01xXzZuUwWlLhH-", v[0]) >= 0:
			if len(v) < 2 {
				r.warn(tok, "").Warn("scalar change without identifier, skipped")
				continue
			}
			r.change(tok, v[1:], v[:1])
		case v[0] == 'b' || v[0] == 'B':
			if i+1 == len(tokens) {
				r.warn(tok, "").Warn("vector change without identifier, skipped")
				continue
			}
			i++
			r.change(tok, tokens[i].Value, v[1:])
		case v[0] == 'r' || v[0] == 'R' || v[0] == 's' || v[0] == 'S':
			code := ""
			if i+1 < len(tokens) {
				i++
				code = tokens[i].Value
			}
			r.warn(tok, code).Warn("real and string changes are not supported, skipped")
		default:
			r.warn(tok, "").Warnf("unknown record %q, skipped", v)
		}
	}
}

func skipSection(tokens []lexer.Token, i int) int {
	for i+1 < len(tokens) && tokens[i+1].Value != "$end" {
		i++
	}
	return i + 1
}

func (r *replay) warn(tok lexer.Token, code string) logrus.FieldLogger {
	fields := logrus.Fields{"line": tok.Pos.Line, "time": r.time}
	if code != "" {
		fields["id"] = code
	}
	return r.log.WithFields(fields)
}

// timestamp extends every wave so that slot t/div exists.
func (r *replay) timestamp(tok lexer.Token) {
	t, err := strconv.ParseUint(tok.Value[1:], 10, 64)
	if err != nil {
		r.warn(tok, "").Warnf("bad timestamp %q, skipped", tok.Value)
		return
	}
	r.time = t
	limit := uint64(math.MaxInt)
	if r.im.MaxLength > 0 {
		limit = uint64(r.im.MaxLength)
	}
	// Compare the quotient so t near MaxUint64 cannot wrap the length.
	n := limit
	if q := t / r.div; q < limit {
		n = q + 1
	} else if !r.capped {
		r.warn(tok, "").Warnf("timeline capped at %d samples", limit)
		r.capped = true
	}
	for _, w := range r.waves {
		w.ExtendByLast(int(n))
	}
}

// change decodes symbols and overwrites the last sample of every wave bound
// to code.
func (r *replay) change(tok lexer.Token, code, symbols string) {
	waves, ok := r.byCode[code]
	if !ok {
		r.warn(tok, code).Debug("change for undeclared identifier")
		return
	}
	if len(symbols) == 0 {
		r.warn(tok, code).Warn("empty vector, skipped")
		return
	}
	if len(symbols) > bitval.MaxBits {
		r.warn(tok, code).Warnf("vector of %d bits exceeds %d, skipped", len(symbols), bitval.MaxBits)
		return
	}
	for _, w := range waves {
		bits, err := r.decode(symbols, w.RegSize())
		if err != nil {
			r.warn(tok, code).WithError(err).Warn("change skipped")
			continue
		}
		v, err := bitval.Parse("0b"+bits, w.RegSize())
		if err != nil {
			r.warn(tok, code).WithError(err).Warn("change skipped")
			continue
		}
		w.SetLast(v)
	}
}

// decode maps each symbol to 0 or 1 and left-extends to width: with the
// substitute of the leading symbol when it is x or z, otherwise with 0.
func (r *replay) decode(symbols string, width int) (string, error) {
	out := make([]byte, 0, max(len(symbols), width))
	if pad := width - len(symbols); pad > 0 {
		fill := byte('0')
		switch symbols[0] {
		case 'x', 'X', 'z', 'Z':
			fill, _ = r.bit(symbols[0])
		}
		for ; pad > 0; pad-- {
			out = append(out, fill)
		}
	}
	for i := 0; i < len(symbols); i++ {
		b, ok := r.bit(symbols[i])
		if !ok {
			return "", &symbolError{symbol: symbols[i], offset: i}
		}
		out = append(out, b)
	}
	return string(out), nil
}

func (r *replay) bit(c byte) (byte, bool) {
	switch c {
	case '0', 'l', 'L':
		return '0', true
	case '1', 'h', 'H':
		return '1', true
	case 'x', 'X', 'u', 'U', 'w', 'W', '-':
		return bitChar(r.im.UnknownBit), true
	case 'z', 'Z':
		return bitChar(r.im.HighZBit), true
	}
	return 0, false
}

func bitChar(b bool) byte {
	if b {
		return '1'
	}
	return '0'
}

type symbolError struct {
	symbol byte
	offset int
}

func (e *symbolError) Error() string {
	return "invalid value symbol " + strconv.QuoteRune(rune(e.symbol)) + " at offset " + strconv.Itoa(e.offset)
}
