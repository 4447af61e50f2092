package tse

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/eleitos/pkg/candidate"
	apperrors "github.com/matzehuels/eleitos/pkg/errors"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	r := chi.NewRouter()
	r.Get("/ata/ordinarias", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]any{
			{"id": 2030402020, "ano": 2020, "tipoAbrangencia": "M"},
			{"id": "2045202024", "ano": "2024", "tipoAbrangencia": "M"},
			{"id": 2040602022, "ano": 2022, "tipoAbrangencia": "F"},
		})
	})
	r.Get("/eleicao/eleicao-atual", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("idEleicao") != "2045202024" {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, map[string]any{"ues": []map[string]string{
			{"regiao": "Sul", "sigla": "SC", "nome": "Santa Catarina"},
			{"regiao": "Sul", "sigla": "RS", "nome": "Rio Grande do Sul"},
			{"regiao": "Sudeste", "sigla": "SP", "nome": "São Paulo"},
			{"regiao": "Brasil", "sigla": "BR", "nome": "Brasil"},
		}})
	})
	r.Get("/eleicao/buscar/{uf}/{id}/municipios", func(w http.ResponseWriter, r *http.Request) {
		switch chi.URLParam(r, "uf") {
		case "SC":
			writeJSON(w, map[string]any{"municipios": []any{
				map[string]any{"codigo": 81736, "nome": "SOMBRIO"},
				"garbage",
				map[string]any{"codigo": "80470", "nome": "CRICIÚMA"},
			}})
		case "SP":
			writeJSON(w, []map[string]any{{"codigo": "71072", "nome": "SÃO PAULO"}})
		default:
			writeJSON(w, "Nenhum município encontrado")
		}
	})
	r.Get("/candidatura/listar/{year}/{mun}/{id}/{office}/candidatos", func(w http.ResponseWriter, r *http.Request) {
		switch chi.URLParam(r, "office") {
		case "11":
			writeJSON(w, map[string]any{"candidatos": []map[string]any{
				{
					"id": 240001, "nomeCompleto": "ANA MARIA SILVA", "nomeUrna": "ANA",
					"numero": 15, "partido": map[string]string{"sigla": "MDB"},
					"descricaoTotalizacao": "Eleito", "st_REELEICAO": true,
				},
				{
					"id": 240002, "nomeCompleto": "JOAO PEREIRA", "nomeUrna": "JOAO",
					"numero": 45, "partido": map[string]string{"sigla": "PSDB"},
					"descricaoTotalizacao": "Não eleito",
				},
			}})
		case "12":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			writeJSON(w, map[string]any{"candidatos": []map[string]any{
				{
					"id": 240003, "nomeCompleto": "CARLOS SOUZA", "nomeUrna": "CARLOS DA FARMACIA",
					"numero": 15123, "partido": map[string]string{"sigla": "PL"},
					"descricaoTotalizacao": "Eleito por QP",
				},
			}})
		}
	})
	r.Get("/img/*", func(w http.ResponseWriter, r *http.Request) {})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(nil, 0,
		WithBaseURL(srv.URL),
		WithImageBaseURL(srv.URL+"/img/"),
		WithLogger(log.New(io.Discard)),
	)
}

func TestElectionID(t *testing.T) {
	c := newTestClient(newTestServer(t))
	ctx := context.Background()

	tests := []struct {
		year  int
		scope Scope
		want  string
		code  apperrors.Code
	}{
		{2024, ScopeMunicipal, "2045202024", ""},
		{2020, ScopeMunicipal, "2030402020", ""},
		{2022, ScopeFederal, "2040602022", ""},
		{2022, ScopeMunicipal, "", apperrors.ErrCodeElectionNotFound},
		{1990, ScopeFederal, "", apperrors.ErrCodeElectionNotFound},
	}
	for _, tt := range tests {
		got, err := c.ElectionID(ctx, tt.year, tt.scope)
		if tt.code != "" {
			if !apperrors.Is(err, tt.code) {
				t.Errorf("ElectionID(%d, %s) error = %v, want code %s", tt.year, tt.scope, err, tt.code)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ElectionID(%d, %s): %v", tt.year, tt.scope, err)
		}
		if got != tt.want {
			t.Errorf("ElectionID(%d, %s) = %q, want %q", tt.year, tt.scope, got, tt.want)
		}
	}
}

func TestRegions(t *testing.T) {
	c := newTestClient(newTestServer(t))

	regions, err := c.Regions(context.Background(), "2045202024")
	if err != nil {
		t.Fatalf("Regions: %v", err)
	}
	if len(regions["SUL"]) != 2 {
		t.Errorf("SUL has %d states, want 2", len(regions["SUL"]))
	}
	if !regions.Contains("sul", "sc") {
		t.Error("Contains(sul, sc) = false")
	}
	if regions.Contains("SUDESTE", "SC") {
		t.Error("Contains(SUDESTE, SC) = true")
	}
	if _, ok := regions["BRASIL"]; ok {
		t.Error("national unit should be skipped")
	}

	empty, err := c.Regions(context.Background(), "1")
	if err != nil {
		t.Fatalf("Regions(unknown): %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Regions(unknown) = %v, want empty", empty)
	}
}

func TestMunicipalityCode(t *testing.T) {
	c := newTestClient(newTestServer(t))
	ctx := context.Background()

	tests := []struct {
		uf, name string
		want     string
		code     apperrors.Code
	}{
		{"SC", "Sombrio", "81736", ""},
		{"sc", "  criciúma ", "80470", ""},
		{"SP", "são paulo", "71072", ""},
		{"SC", "Florianópolis", "", apperrors.ErrCodeMunicipalityNotFound},
		{"AC", "Rio Branco", "", apperrors.ErrCodeMunicipalityNotFound},
	}
	for _, tt := range tests {
		got, err := c.MunicipalityCode(ctx, tt.uf, "2045202024", tt.name)
		if tt.code != "" {
			if !apperrors.Is(err, tt.code) {
				t.Errorf("MunicipalityCode(%s, %q) error = %v, want code %s", tt.uf, tt.name, err, tt.code)
			}
			continue
		}
		if err != nil {
			t.Fatalf("MunicipalityCode(%s, %q): %v", tt.uf, tt.name, err)
		}
		if got != tt.want {
			t.Errorf("MunicipalityCode(%s, %q) = %q, want %q", tt.uf, tt.name, got, tt.want)
		}
	}
}

func TestElectedCandidates(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(srv)

	records, err := c.ElectedCandidates(context.Background(), 2024, "2045202024", "81736", candidate.OfficeMayor)
	if err != nil {
		t.Fatalf("ElectedCandidates: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	want := candidate.Record{
		FullName:         "ANA MARIA SILVA",
		BallotName:       "ANA",
		BallotNumber:     15,
		Party:            "MDB",
		Office:           "Prefeito",
		OfficeCode:       candidate.OfficeMayor,
		MunicipalityCode: "81736",
		Reelection:       true,
		PhotoURL:         srv.URL + "/img/2045202024/240001/81736",
	}
	if records[0] != want {
		t.Errorf("record = %+v\nwant %+v", records[0], want)
	}
}

func TestAllElectedSkipsFailingOffice(t *testing.T) {
	c := newTestClient(newTestServer(t))

	records, err := c.AllElected(context.Background(), 2024, "2045202024", "81736")
	if err != nil {
		t.Fatalf("AllElected: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].OfficeCode != candidate.OfficeMayor || records[1].OfficeCode != candidate.OfficeCouncillor {
		t.Errorf("unexpected office order: %v, %v", records[0].OfficeCode, records[1].OfficeCode)
	}
	if records[1].Reelection {
		t.Error("missing st_REELEICAO should decode as false")
	}
}

func TestParseScope(t *testing.T) {
	tests := []struct {
		in      string
		want    Scope
		wantErr bool
	}{
		{"municipal", ScopeMunicipal, false},
		{" Federal ", ScopeFederal, false},
		{"estadual", "", true},
	}
	for _, tt := range tests {
		got, err := ParseScope(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseScope(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseScope(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
