package project

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the name of the manifest written by Export.
const ManifestFile = "manifest.yaml"

// ManifestEntry names the identifiers and files a stimulus template needs
// for one wave.
type ManifestEntry struct {
	Decl  string `yaml:"decl"`
	Name  string `yaml:"name"`
	Data  string `yaml:"data"`
	Index string `yaml:"index"`
	File  string `yaml:"file"`
	Depth int    `yaml:"depth"`
}

// Manifest describes an exported project.
type Manifest struct {
	Length  int             `yaml:"length"`
	EndTime int             `yaml:"end_time"`
	Waves   []ManifestEntry `yaml:"waves"`
}

// MembFile returns the memb file name for a wave name.
func MembFile(name string) string { return name + "_file.memb" }

// Manifest lists every wave in display order. The end time covers two
// half periods per sample.
func (p *Project) Manifest() Manifest {
	m := Manifest{Length: p.length, EndTime: 2 * p.length}
	for _, w := range p.waves {
		name := w.Name()
		m.Waves = append(m.Waves, ManifestEntry{
			Decl:  w.ExportDecl(),
			Name:  name,
			Data:  name + "_data",
			Index: name + "_index",
			File:  MembFile(name),
			Depth: w.Len(),
		})
	}
	return m
}

// ExportOptions selects what Export writes.
type ExportOptions struct {
	Memb     bool
	Manifest bool
}

// Export writes the memb dumps and the manifest into dir, creating it if
// needed, and returns the written paths.
func (p *Project) Export(dir string, opts ExportOptions) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	var written []string
	if opts.Memb {
		for _, w := range p.waves {
			path := filepath.Join(dir, MembFile(w.Name()))
			if err := w.WriteMemb(path); err != nil {
				return written, err
			}
			written = append(written, path)
		}
	}
	if opts.Manifest {
		data, err := yaml.Marshal(p.Manifest())
		if err != nil {
			return written, fmt.Errorf("encode manifest: %w", err)
		}
		path := filepath.Join(dir, ManifestFile)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, fmt.Errorf("write manifest: %w", err)
		}
		written = append(written, path)
	}
	p.log.WithField("dir", dir).WithField("files", len(written)).Info("project exported")
	return written, nil
}

// ReadManifest loads a manifest written by Export.
func ReadManifest(path string) (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("read manifest: %w", err)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("decode manifest: %w", err)
	}
	return m, nil
}
