// Package candidate defines the elected-candidate record shared by every
// stage of the pipeline.
//
// A [Record] is built once by the elections client from one API item and is
// read-only afterwards. Its JSON field names match the export files written
// by [github.com/matzehuels/eleitos/pkg/io], so an exported list can be
// reloaded field-for-field.
package candidate

import (
	"fmt"
	"strings"
)

// Office is the elections API numeric office code.
type Office int

// Municipal offices, in the order they are queried.
const (
	OfficeMayor      Office = 11
	OfficeViceMayor  Office = 12
	OfficeCouncillor Office = 13
)

// MunicipalOffices lists the offices fetched for a municipality.
var MunicipalOffices = []Office{OfficeMayor, OfficeViceMayor, OfficeCouncillor}

var officeTitles = map[Office]string{
	OfficeMayor:      "Prefeito",
	OfficeViceMayor:  "Vice-prefeito",
	OfficeCouncillor: "Vereador",
}

// Title returns the office title used in records and directory names.
func (o Office) Title() string {
	if t, ok := officeTitles[o]; ok {
		return t
	}
	return fmt.Sprintf("Cargo %d", int(o))
}

// YesNo is a boolean serialized as "Sim" / "Não".
type YesNo bool

const (
	yes = "Sim"
	no  = "Não"
)

func (b YesNo) String() string {
	if b {
		return yes
	}
	return no
}

// MarshalText implements encoding.TextMarshaler.
func (b YesNo) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *YesNo) UnmarshalText(text []byte) error {
	switch strings.TrimSpace(string(text)) {
	case yes:
		*b = true
	case no, "":
		*b = false
	default:
		return fmt.Errorf("invalid yes/no value %q", text)
	}
	return nil
}

// Record is one elected candidate.
type Record struct {
	FullName         string `json:"Nome Completo"`
	BallotName       string `json:"Nome de Urna"`
	BallotNumber     int    `json:"Número na Urna"`
	Party            string `json:"Partido"`
	Office           string `json:"Cargo"`
	OfficeCode       Office `json:"Código do Cargo"`
	MunicipalityCode string `json:"Código do Município"`
	Reelection       YesNo  `json:"Reeleição"`
	PhotoURL         string `json:"Imagem Oficial"`
}

// Key identifies a record within a run.
func (r Record) Key() string {
	return r.BallotName + "|" + r.MunicipalityCode
}

// FileStem is the ballot name with spaces replaced by underscores.
func (r Record) FileStem() string {
	return FileStem(r.BallotName)
}

// CardName is the file stem of the record's tarjeta assets.
func (r Record) CardName() string {
	return r.FileStem() + "_" + r.MunicipalityCode
}

// Info is the "number - party - office" label printed on the template.
func (r Record) Info() string {
	return fmt.Sprintf("%d - %s - %s", r.BallotNumber, r.Party, r.Office)
}

// FileStem replaces spaces with underscores so a name can be used in paths.
func FileStem(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
}
