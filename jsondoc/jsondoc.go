// Package jsondoc writes converted documents as indented JSON files.
package jsondoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/meikuraledutech/questgraph"
)

// Writer writes values as two-space indented JSON with a trailing newline.
// Outputs are replaced as a whole: the file is written next to the
// destination and renamed over it.
type Writer struct{}

// NewWriter returns a JSON writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write serializes v to path. The parent directory must already exist.
// Failures are reported as *questgraph.WriteFailureError.
func (w *Writer) Write(path string, v any) error {
	data, err := Marshal(v)
	if err != nil {
		return &questgraph.WriteFailureError{Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return &questgraph.WriteFailureError{Path: path, Err: err}
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return &questgraph.WriteFailureError{Path: path, Err: err}
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return &questgraph.WriteFailureError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &questgraph.WriteFailureError{Path: path, Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return &questgraph.WriteFailureError{Path: path, Err: err}
	}
	return nil
}

// Marshal returns the bytes Write would store. Strings are not HTML-escaped.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return buf.Bytes(), nil
}
