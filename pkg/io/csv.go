package io

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/matzehuels/eleitos/pkg/candidate"
)

// Header is the CSV header row, matching the JSON keys.
var Header = []string{
	"Nome Completo",
	"Nome de Urna",
	"Número na Urna",
	"Partido",
	"Cargo",
	"Código do Cargo",
	"Código do Município",
	"Reeleição",
	"Imagem Oficial",
}

// WriteCSV writes a header row followed by one row per record.
func WriteCSV(records []candidate.Record, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.FullName,
			r.BallotName,
			strconv.Itoa(r.BallotNumber),
			r.Party,
			r.Office,
			strconv.Itoa(int(r.OfficeCode)),
			r.MunicipalityCode,
			r.Reelection.String(),
			r.PhotoURL,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write %s: %w", r.BallotName, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV writes records to a CSV file at path.
func ExportCSV(records []candidate.Record, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := WriteCSV(records, f); err != nil {
		return err
	}
	return f.Close()
}
