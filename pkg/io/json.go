package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/eleitos/pkg/candidate"
)

// WriteJSON encodes records as an indented JSON array. Non-ASCII text is
// written as-is.
func WriteJSON(records []candidate.Record, w io.Writer) error {
	if records == nil {
		records = []candidate.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a JSON array written by [WriteJSON].
func ReadJSON(r io.Reader) ([]candidate.Record, error) {
	var records []candidate.Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return records, nil
}

// ExportJSON writes records to a JSON file at path.
func ExportJSON(records []candidate.Record, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := WriteJSON(records, f); err != nil {
		return err
	}
	return f.Close()
}

// ImportJSON reads the records of a JSON export at path.
func ImportJSON(path string) ([]candidate.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
