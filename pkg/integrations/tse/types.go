package tse

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Scope is the election coverage.
type Scope string

const (
	ScopeMunicipal Scope = "municipal"
	ScopeFederal   Scope = "federal"
)

// ParseScope accepts "municipal" or "federal" in any case.
func ParseScope(s string) (Scope, error) {
	switch Scope(strings.ToLower(strings.TrimSpace(s))) {
	case ScopeMunicipal:
		return ScopeMunicipal, nil
	case ScopeFederal:
		return ScopeFederal, nil
	}
	return "", fmt.Errorf("invalid election scope %q (want municipal or federal)", s)
}

// code is the API's tipoAbrangencia value.
func (s Scope) code() string {
	if s == ScopeMunicipal {
		return "M"
	}
	return "F"
}

// State is a federative unit (UF) as listed by the API.
type State struct {
	Sigla string `json:"sigla"`
	Nome  string `json:"nome"`
}

// Regions maps a normalised region name (e.g. "SUL") to its states.
type Regions map[string][]State

// Contains reports whether uf belongs to region.
func (r Regions) Contains(region, uf string) bool {
	for _, s := range r[regionKey(region)] {
		if strings.EqualFold(s.Sigla, strings.TrimSpace(uf)) {
			return true
		}
	}
	return false
}

// flexString accepts a JSON string or number.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

type election struct {
	ID    flexString `json:"id"`
	Year  flexString `json:"ano"`
	Scope string     `json:"tipoAbrangencia"`
}

type currentElection struct {
	Units []unit `json:"ues"`
}

type unit struct {
	Region string `json:"regiao"`
	Sigla  string `json:"sigla"`
	Nome   string `json:"nome"`
}

type municipality struct {
	Code flexString `json:"codigo"`
	Name string     `json:"nome"`
}

type candidateList struct {
	Candidates []candidateItem `json:"candidatos"`
}

type candidateItem struct {
	ID           flexString `json:"id"`
	FullName     string     `json:"nomeCompleto"`
	BallotName   string     `json:"nomeUrna"`
	Number       int        `json:"numero"`
	Party        *party     `json:"partido"`
	Totalization string     `json:"descricaoTotalizacao"`
	Reelection   bool       `json:"st_REELEICAO"`
}

type party struct {
	Sigla string `json:"sigla"`
}
