package wave

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// WriteMembTo writes one binary line per sample, each RegSize digits wide,
// in the format read by $readmemb.
func (w *Wave) WriteMembTo(out io.Writer) error {
	bw := bufio.NewWriter(out)
	for _, v := range w.samples {
		if _, err := bw.WriteString(v.Bin()); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteMemb creates path and writes the memb dump into it.
func (w *Wave) WriteMemb(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create memb file: %w", err)
	}
	if err := w.WriteMembTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync %s: %w", path, err)
	}
	return f.Close()
}
