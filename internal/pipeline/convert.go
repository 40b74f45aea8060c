package pipeline

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dgallion1/plainrfc/internal/parser"
	"github.com/dgallion1/plainrfc/internal/rfcxml"
)

// ConvertBytes converts one input held in memory. The filename selects the
// input format.
func ConvertBytes(data []byte, filename string, bp rfcxml.Boilerplate, opts parser.Options) (string, error) {
	lines, err := parser.ReadLines(bytes.NewReader(data), filename, opts)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", filename, err)
	}
	doc, err := rfcxml.Convert(lines, bp)
	if err != nil {
		return "", fmt.Errorf("convert %s: %w", filename, err)
	}
	return doc, nil
}

// ConvertFile converts input into output. The output is written atomically:
// on any error it is left as it was.
func ConvertFile(input, output string, bp rfcxml.Boilerplate, opts parser.Options) ([]byte, error) {
	if filepath.Clean(input) == filepath.Clean(output) {
		return nil, fmt.Errorf("output %s would overwrite its input", output)
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	doc, err := ConvertBytes(data, filepath.Base(input), bp, opts)
	if err != nil {
		return nil, err
	}
	out := []byte(doc)
	if err := writeAtomic(output, out); err != nil {
		return nil, err
	}
	return out, nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename output: %w", err)
	}
	return nil
}
