package tse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/matzehuels/eleitos/pkg/cache"
	"github.com/matzehuels/eleitos/pkg/candidate"
	apperrors "github.com/matzehuels/eleitos/pkg/errors"
	"github.com/matzehuels/eleitos/pkg/integrations"
)

const (
	DefaultBaseURL      = "https://divulgacandcontas.tse.jus.br/divulga/rest/v1"
	DefaultImageBaseURL = "https://divulgacandcontas.tse.jus.br/divulga/rest/arquivo/img"

	// electedMarker must appear in descricaoTotalizacao for a candidate to be kept.
	electedMarker = "Eleito"
)

// Client queries the elections API.
type Client struct {
	*integrations.Client
	baseURL      string
	imageBaseURL string
	logger       *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the REST base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithImageBaseURL overrides the candidate photo base URL.
func WithImageBaseURL(u string) Option {
	return func(c *Client) { c.imageBaseURL = strings.TrimRight(u, "/") }
}

// WithLogger sets the logger used for skipped offices and lookups.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client whose GET responses are cached in store for ttl.
func NewClient(store cache.Cache, ttl time.Duration, opts ...Option) *Client {
	c := &Client{
		Client:       integrations.NewClient(store, "tse:", ttl, nil),
		baseURL:      DefaultBaseURL,
		imageBaseURL: DefaultImageBaseURL,
		logger:       log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ElectionID returns the id of the ordinary election held in year for scope.
func (c *Client) ElectionID(ctx context.Context, year int, scope Scope) (string, error) {
	var elections []election
	if err := c.get(ctx, c.baseURL+"/ata/ordinarias", &elections); err != nil {
		if errors.Is(err, integrations.ErrMalformed) || errors.Is(err, integrations.ErrNotFound) {
			return "", apperrors.Wrap(apperrors.ErrCodeElectionNotFound, err, "list elections")
		}
		return "", apperrors.Wrap(apperrors.ErrCodeNetwork, err, "list elections")
	}

	want := strconv.Itoa(year)
	for _, e := range elections {
		if string(e.Year) == want && e.Scope == scope.code() && e.ID != "" {
			c.logger.Debug("resolved election", "year", year, "scope", scope, "id", e.ID)
			return string(e.ID), nil
		}
	}
	return "", apperrors.New(apperrors.ErrCodeElectionNotFound, "no %s election in %d", scope, year)
}

// Regions returns the states of the election grouped by region. The national
// unit "BR" and entries without region or acronym are skipped.
func (c *Client) Regions(ctx context.Context, electionID string) (Regions, error) {
	var cur currentElection
	url := c.baseURL + "/eleicao/eleicao-atual?idEleicao=" + electionID
	if err := c.get(ctx, url, &cur); err != nil {
		if errors.Is(err, integrations.ErrMalformed) || errors.Is(err, integrations.ErrNotFound) {
			return Regions{}, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeNetwork, err, "fetch election %s", electionID)
	}

	regions := make(Regions)
	for _, u := range cur.Units {
		if u.Region == "" || u.Sigla == "" || u.Sigla == "BR" {
			continue
		}
		key := regionKey(u.Region)
		regions[key] = append(regions[key], State{Sigla: u.Sigla, Nome: u.Nome})
	}
	return regions, nil
}

// MunicipalityCode returns the code of the municipality called name in uf.
// Names are compared trimmed, case-folded and NFC-normalised.
func (c *Client) MunicipalityCode(ctx context.Context, uf, electionID, name string) (string, error) {
	var raw json.RawMessage
	url := fmt.Sprintf("%s/eleicao/buscar/%s/%s/municipios", c.baseURL, strings.ToUpper(uf), electionID)
	if err := c.get(ctx, url, &raw); err != nil {
		if errors.Is(err, integrations.ErrMalformed) || errors.Is(err, integrations.ErrNotFound) {
			return "", apperrors.Wrap(apperrors.ErrCodeMunicipalityNotFound, err, "list municipalities of %s", uf)
		}
		return "", apperrors.Wrap(apperrors.ErrCodeNetwork, err, "list municipalities of %s", uf)
	}

	items, err := municipalityItems(raw)
	if err != nil {
		c.logger.Warn("unexpected municipalities payload", "uf", uf, "err", err)
		return "", apperrors.Wrap(apperrors.ErrCodeMunicipalityNotFound, err, "list municipalities of %s", uf)
	}

	want := matchKey(name)
	for _, m := range items {
		if matchKey(m.Name) == want && m.Code != "" {
			return string(m.Code), nil
		}
	}
	return "", apperrors.New(apperrors.ErrCodeMunicipalityNotFound, "municipality %q not found in %s", name, uf)
}

// ElectedCandidates lists the elected candidates for one office.
func (c *Client) ElectedCandidates(ctx context.Context, year int, electionID, municipalityCode string, office candidate.Office) ([]candidate.Record, error) {
	var list candidateList
	url := fmt.Sprintf("%s/candidatura/listar/%d/%s/%s/%d/candidatos", c.baseURL, year, municipalityCode, electionID, office)
	if err := c.get(ctx, url, &list); err != nil {
		return nil, err
	}

	var records []candidate.Record
	for _, item := range list.Candidates {
		if !strings.Contains(item.Totalization, electedMarker) {
			continue
		}
		records = append(records, c.record(item, electionID, municipalityCode, office))
	}
	return records, nil
}

// AllElected lists the elected candidates of every municipal office, in
// office order. An office whose lookup fails is logged and skipped.
func (c *Client) AllElected(ctx context.Context, year int, electionID, municipalityCode string) ([]candidate.Record, error) {
	var all []candidate.Record
	for _, office := range candidate.MunicipalOffices {
		records, err := c.ElectedCandidates(ctx, year, electionID, municipalityCode, office)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Warn("skipping office", "office", office.Title(), "err", err)
			continue
		}
		c.logger.Info("fetched elected candidates", "office", office.Title(), "count", len(records))
		all = append(all, records...)
	}
	if len(all) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeNoCandidates, "no elected candidates for municipality %s", municipalityCode)
	}
	return all, nil
}

// PhotoURL composes the official photo URL of a candidate.
func (c *Client) PhotoURL(electionID, candidateID, municipalityCode string) string {
	return fmt.Sprintf("%s/%s/%s/%s", c.imageBaseURL, electionID, candidateID, municipalityCode)
}

func (c *Client) record(item candidateItem, electionID, municipalityCode string, office candidate.Office) candidate.Record {
	var sigla string
	if item.Party != nil {
		sigla = item.Party.Sigla
	}
	return candidate.Record{
		FullName:         item.FullName,
		BallotName:       item.BallotName,
		BallotNumber:     item.Number,
		Party:            sigla,
		Office:           office.Title(),
		OfficeCode:       office,
		MunicipalityCode: municipalityCode,
		Reelection:       candidate.YesNo(item.Reelection),
		PhotoURL:         c.PhotoURL(electionID, string(item.ID), municipalityCode),
	}
}

func (c *Client) get(ctx context.Context, url string, v any) error {
	c.logger.Debug("GET", "url", url)
	return c.Get(ctx, url, v)
}

// municipalityItems accepts a bare list or an object with a "municipios"
// list. A bare string is the API's error form. Items that are not objects
// are skipped.
func municipalityItems(raw json.RawMessage) ([]municipality, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty body", integrations.ErrMalformed)
	}

	var list []json.RawMessage
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("%w: %v", integrations.ErrMalformed, err)
		}
	case '{':
		var wrapped struct {
			Municipios []json.RawMessage `json:"municipios"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, fmt.Errorf("%w: %v", integrations.ErrMalformed, err)
		}
		list = wrapped.Municipios
	default:
		return nil, fmt.Errorf("%w: unexpected payload %.60s", integrations.ErrMalformed, trimmed)
	}

	items := make([]municipality, 0, len(list))
	for _, r := range list {
		var m municipality
		if json.Unmarshal(r, &m) == nil {
			items = append(items, m)
		}
	}
	return items, nil
}

var (
	folder = cases.Fold()
	upper  = cases.Upper(language.BrazilianPortuguese)
)

func matchKey(s string) string {
	return folder.String(norm.NFC.String(strings.TrimSpace(s)))
}

func regionKey(s string) string {
	return upper.String(norm.NFC.String(strings.TrimSpace(s)))
}
