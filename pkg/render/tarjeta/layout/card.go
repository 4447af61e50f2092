package layout

import (
	"fmt"

	"github.com/matzehuels/eleitos/pkg/candidate"
)

// Card constants, in pixels of card space.
const (
	CardWidth    = 600
	CardHeight   = 460
	PhotoSize    = 200
	PhotoX       = (CardWidth - PhotoSize) / 2
	PhotoY       = 20
	TextX        = 30
	TextY        = 240
	LinePitch    = 30
	CardFontSize = 20.0
)

// CardLines returns the seven text lines of a card, top to bottom.
func CardLines(r candidate.Record) []string {
	return []string{
		"Nome: " + r.FullName,
		"Urna: " + r.BallotName,
		fmt.Sprintf("Número: %d", r.BallotNumber),
		"Partido: " + r.Party,
		"Cargo: " + r.Office,
		"Reeleição: " + r.Reelection.String(),
		"Cidade/UF: " + r.MunicipalityCode,
	}
}

// LineY returns the top of line i.
func LineY(i int) float64 {
	return float64(TextY + i*LinePitch)
}
