package vcd

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/bitval"
	"github.com/OpenTraceLab/OpenTraceWave/pkg/wave"
)

// placeholderLength is the length of a freshly declared wave, before the
// first timestamp extends it.
const placeholderLength = 1

// ErrNoDefinitions is returned for input without a $enddefinitions section.
var ErrNoDefinitions = errors.New("vcd: missing $enddefinitions $end")

// regKinds are the $var kinds imported as registers of the declared size.
var regKinds = map[string]bool{
	"bit": true, "byte": true, "int": true, "integer": true, "logic": true,
	"longint": true, "parameter": true, "real": true, "realtime": true,
	"reg": true, "shortint": true, "supply0": true, "supply1": true,
	"time": true, "tri": true, "tri0": true, "tri1": true, "triand": true,
	"trior": true, "trireg": true, "uwire": true, "wand": true, "wire": true,
	"wor": true,
}

// Importer converts dumps into waves.
type Importer struct {
	// UnknownBit and HighZBit replace x and z bits.
	UnknownBit bool
	HighZBit   bool
	// TimeDivisor overrides the $timescale magnitude when non-zero.
	TimeDivisor uint64
	// MaxLength caps the imported timeline; 0 means no cap.
	MaxLength int
	// Log receives warnings about skipped records. Nil discards them.
	Log logrus.FieldLogger
}

// Result is the outcome of an import.
type Result struct {
	Waves []*wave.Wave
	// Timescale is nil when the dump declares none.
	Timescale *Timescale
	// Divisor is the value timestamps were divided by.
	Divisor uint64
}

// Import reads the dump at path with the given substitutes for x and z.
func Import(path string, unknownBit, highZBit bool) ([]*wave.Wave, error) {
	im := &Importer{UnknownBit: unknownBit, HighZBit: highZBit}
	res, err := im.Import(path)
	if err != nil {
		return nil, err
	}
	return res.Waves, nil
}

// Import reads and replays the dump at path.
func (im *Importer) Import(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "vcd: read dump")
	}
	return im.ImportString(path, string(data))
}

// ImportReader reads r to the end and replays it. name is used in errors.
func (im *Importer) ImportReader(name string, r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "vcd: read %s", name)
	}
	return im.ImportString(name, string(data))
}

// ImportString parses src and replays it. No waves are returned unless the
// header parses.
func (im *Importer) ImportString(name, src string) (*Result, error) {
	lex, err := Lexer.LexString(name, src)
	if err != nil {
		return nil, errors.Wrapf(err, "vcd: %s", name)
	}
	all, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, errors.Wrapf(err, "vcd: %s", name)
	}
	space := Lexer.Symbols()["Whitespace"]
	tokens := all[:0]
	for _, tok := range all {
		if tok.Type != space && !tok.EOF() {
			tokens = append(tokens, tok)
		}
	}

	end := headerEnd(tokens)
	if end < 0 {
		return nil, errors.Wrap(ErrNoDefinitions, name)
	}
	last := tokens[end-1]
	hdr, err := headerParser.ParseString(name, src[:last.Pos.Offset+len(last.Value)])
	if err != nil {
		return nil, errors.Wrapf(err, "vcd: parse header of %s", name)
	}

	log := im.logger().WithField("file", name)
	r := &replay{
		im:     im,
		log:    log,
		byCode: make(map[string][]*wave.Wave),
	}
	res := &Result{}
	if err := r.declare(hdr, res); err != nil {
		return nil, errors.Wrapf(err, "vcd: %s", name)
	}
	res.Divisor = 1
	if res.Timescale != nil {
		res.Divisor = res.Timescale.Magnitude
	}
	if im.TimeDivisor > 0 {
		res.Divisor = im.TimeDivisor
	}
	r.div = res.Divisor

	r.run(tokens[end:])
	for _, w := range r.waves {
		w.RefreshMinMax()
	}
	res.Waves = r.waves
	log.WithField("waves", len(r.waves)).Debug("vcd import finished")
	return res, nil
}

func (im *Importer) logger() logrus.FieldLogger {
	if im.Log != nil {
		return im.Log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// headerEnd returns the index of the first token after
// "$enddefinitions $end", or -1.
func headerEnd(tokens []lexer.Token) int {
	for i := 0; i+1 < len(tokens); i++ {
		if tokens[i].Value == "$enddefinitions" && tokens[i+1].Value == "$end" {
			return i + 2
		}
	}
	return -1
}

type scopedItem struct {
	path string
	item *headerItem
}

// declare walks the scope tree with an explicit stack, in file order, and
// creates one wave per supported variable.
func (r *replay) declare(hdr *header, res *Result) error {
	var stack []scopedItem
	push := func(path string, items []*headerItem) {
		for i := len(items) - 1; i >= 0; i-- {
			stack = append(stack, scopedItem{path: path, item: items[i]})
		}
	}
	push("", hdr.Items)

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch it := top.item; {
		case it.Scope != nil:
			push(join(top.path, it.Scope.Name), it.Scope.Items)
		case it.Var != nil:
			r.declareVar(top.path, it.Var)
		case it.Timescale != nil:
			if res.Timescale != nil {
				continue
			}
			ts, err := ParseTimescale(it.Timescale.Parts)
			if err != nil {
				return errors.Wrapf(err, "line %d", it.Timescale.Pos.Line)
			}
			res.Timescale = &ts
		case it.Other != nil:
			r.log.WithField("line", it.Other.Pos.Line).Warnf("unsupported header item %s, skipped", it.Other.Keyword)
		}
	}
	return nil
}

func (r *replay) declareVar(path string, v *varDecl) {
	log := r.log.WithFields(logrus.Fields{"id": v.Code, "line": v.Pos.Line, "var": v.Reference})
	if !regKinds[v.Kind] {
		log.Warnf("unsupported variable kind %q, skipped", v.Kind)
		return
	}
	size, err := strconv.Atoi(v.Size)
	if err != nil || size < 1 || size > bitval.MaxBits {
		log.Warnf("variable size %q outside 1..%d, skipped", v.Size, bitval.MaxBits)
		return
	}
	w := wave.New(join(path, v.Reference+strings.Join(v.Index, "")), placeholderLength)
	if err := w.SetType(wave.Reg(size)); err != nil {
		log.WithError(err).Warn("variable skipped")
		return
	}
	r.waves = append(r.waves, w)
	r.byCode[v.Code] = append(r.byCode[v.Code], w)
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
