package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Writer serializes a summary to an indented JSON file.
type Writer struct {
	indent string
}

func NewWriter() *Writer {
	return &Writer{indent: "  "}
}

func (w *Writer) Marshal(summary Summary) ([]byte, error) {
	data, err := json.MarshalIndent(summary, "", w.indent)
	if err != nil {
		return nil, fmt.Errorf("encode summary: %w", err)
	}
	return append(data, '\n'), nil
}

// Write encodes summary and replaces path with it in one step: the data is
// written to a temporary file in the same directory and renamed over path,
// so readers never observe a partial file. The directory must exist.
func (w *Writer) Write(path string, summary Summary) error {
	data, err := w.Marshal(summary)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}

// DefaultOutputPath derives <video without extension>_<mode>_<YYYYMMDD_HHMMSS>.json.
// Leading dots of the file name are not an extension, so ".clip" keeps its name.
func DefaultOutputPath(videoPath, mode string, now time.Time) string {
	name := strings.TrimLeft(filepath.Base(videoPath), ".")
	base := strings.TrimSuffix(videoPath, filepath.Ext(name))
	return fmt.Sprintf("%s_%s_%s.json", base, mode, now.Format("20060102_150405"))
}
