package io

import (
	"path/filepath"

	"github.com/matzehuels/eleitos/pkg/candidate"
)

// Paths are the files written by [ExportAll].
type Paths struct {
	Dir  string
	CSV  string
	JSON string
}

// ExportAll writes the CSV and JSON exports for one municipality under
// root and returns their paths.
func ExportAll(root, region, uf, municipality string, records []candidate.Record) (Paths, error) {
	dir, err := DataDir(root, region, uf, municipality)
	if err != nil {
		return Paths{}, err
	}
	base := filepath.Join(dir, BaseName(uf, municipality))
	p := Paths{Dir: dir, CSV: base + ".csv", JSON: base + ".json"}

	if err := ExportCSV(records, p.CSV); err != nil {
		return Paths{}, err
	}
	if err := ExportJSON(records, p.JSON); err != nil {
		return Paths{}, err
	}
	return p, nil
}
