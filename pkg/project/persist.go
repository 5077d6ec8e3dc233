package project

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/sirupsen/logrus"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/wave"
)

// FormatVersion is written to and required in project files.
const FormatVersion = 1

//go:embed schema.json
var schemaText string

var schema = jsonschema.MustCompileString("schema.json", schemaText)

type document struct {
	Version int          `json:"version"`
	Length  int          `json:"length"`
	Waves   []*wave.Wave `json:"waves"`
}

// Encode writes the project as indented JSON.
func (p *Project) Encode(w io.Writer) error {
	waves := p.waves
	if waves == nil {
		waves = []*wave.Wave{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(document{Version: FormatVersion, Length: p.length, Waves: waves})
}

// Save writes the project to path.
func (p *Project) Save(path string) error {
	var buf bytes.Buffer
	if err := p.Encode(&buf); err != nil {
		return fmt.Errorf("encode project: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write project: %w", err)
	}
	p.log.WithField("file", path).Debug("project saved")
	return nil
}

// Decode reads a project document. The document is checked against the
// project schema before any wave is built, and every wave must match the
// declared length.
func Decode(r io.Reader, log logrus.FieldLogger) (*Project, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var inst any
	if err := dec.Decode(&inst); err != nil {
		return nil, fmt.Errorf("decode project: %w", err)
	}
	if err := schema.Validate(inst); err != nil {
		return nil, fmt.Errorf("invalid project: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode project: %w", err)
	}
	for _, w := range doc.Waves {
		if w.Len() != doc.Length {
			return nil, fmt.Errorf("invalid project: wave %q has %d samples, length is %d", w.Label(), w.Len(), doc.Length)
		}
	}
	p, err := New(doc.Length, log)
	if err != nil {
		return nil, err
	}
	p.waves = doc.Waves
	return p, nil
}

// Load reads a project written by Save.
func Load(path string, log logrus.FieldLogger) (*Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open project: %w", err)
	}
	defer f.Close()

	p, err := Decode(f, log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p.log.WithFields(logrus.Fields{"file": path, "waves": len(p.waves)}).Debug("project loaded")
	return p, nil
}
