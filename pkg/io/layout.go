package io

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const filePrefix = "candidatos_eleitos"

// DataDir returns root/REGION/UF/MUNICIPALITY, creating it if needed.
func DataDir(root, region, uf, municipality string) (string, error) {
	dir := filepath.Join(root, segment(region), segment(uf), segment(municipality))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	return dir, nil
}

// BaseName returns the export file name without extension.
func BaseName(uf, municipality string) string {
	return fmt.Sprintf("%s_%s_%s", filePrefix, segment(uf), strings.ReplaceAll(segment(municipality), " ", "_"))
}

func segment(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
