package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/eleitos/pkg/automation"
	"github.com/matzehuels/eleitos/pkg/cache"
	"github.com/matzehuels/eleitos/pkg/candidate"
	apperrors "github.com/matzehuels/eleitos/pkg/errors"
	"github.com/matzehuels/eleitos/pkg/integrations/picwish"
	"github.com/matzehuels/eleitos/pkg/integrations/tse"
	eio "github.com/matzehuels/eleitos/pkg/io"
	"github.com/matzehuels/eleitos/pkg/pipeline"
	"github.com/matzehuels/eleitos/pkg/render"
	"github.com/matzehuels/eleitos/pkg/render/tarjeta"
	"github.com/matzehuels/eleitos/pkg/render/tarjeta/layout"
)

// notFoundMessages are the lines printed when a lookup ends the run early.
var notFoundMessages = map[apperrors.Code]string{
	apperrors.ErrCodeElectionNotFound:     "Eleição não encontrada.",
	apperrors.ErrCodeRegionMismatch:       "UF não encontrada na região selecionada.",
	apperrors.ErrCodeMunicipalityNotFound: "Município não encontrado.",
	apperrors.ErrCodeNoCandidates:         "Nenhum candidato eleito encontrado.",
}

const apiKeyRemediation = `1. Confira a chave picwish_api_key em config.toml
2. Gere uma nova chave no painel do PicWish se necessário
3. Execute o programa novamente`

// runInteractive loads the config, asks the run questions and executes the run.
func (c *CLI) runInteractive(ctx context.Context) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return err
	}

	params, err := collectParams(c.Prompter)
	if errors.Is(err, terminal.InterruptErr) {
		return context.Canceled
	}
	if err != nil {
		return err
	}

	a, err := newApp(ctx, cfg, c.noCache, logger)
	if err != nil {
		return err
	}
	defer a.close()

	return a.run(ctx, params)
}

// app wires the components of one run from the config.
type app struct {
	cfg    *Config
	logger *log.Logger
	store  cache.Cache

	elections   *tse.Client
	jobs        pipeline.Processor
	fetch       pipeline.Fetcher
	newDocument func() automation.Application
}

func newApp(ctx context.Context, cfg *Config, noCache bool, logger *log.Logger) (*app, error) {
	store, err := newCache(ctx, cfg, noCache)
	if err != nil {
		logger.Warn("response cache unavailable, continuing without it", "err", err)
		store = cache.NewNullCache()
	}

	elections := tse.NewClient(store, cfg.Cache.TTL.Duration,
		tse.WithBaseURL(cfg.TSE.BaseURL),
		tse.WithImageBaseURL(cfg.TSE.ImageBaseURL),
		tse.WithLogger(logger),
	)
	jobs := picwish.NewClient(cfg.PicwishAPIKey,
		picwish.WithBaseURL(cfg.Picwish.BaseURL),
		picwish.WithPollAttempts(cfg.Picwish.PollAttempts),
		picwish.WithPollInterval(cfg.Picwish.PollInterval.Duration),
		picwish.WithLogger(logger),
	)

	return &app{
		cfg:         cfg,
		logger:      logger,
		store:       store,
		elections:   elections,
		jobs:        jobs,
		fetch:       elections,
		newDocument: func() automation.Application { return automation.NewVectorDocument() },
	}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.logger.Debug("close cache", "err", err)
	}
}

// run executes the flow: lookup, export, photos, then cards.
func (a *app) run(ctx context.Context, p Params) error {
	stats := &runStats{}
	defer stats.register()()
	defer stats.log(a.logger)

	records, err := a.lookup(ctx, p)
	if apperrors.IsNotFound(err) {
		a.logger.Debug("lookup ended the run", "err", err)
		printWarning("%s", notFoundMessages[apperrors.GetCode(err)])
		return nil
	}
	if err != nil {
		return err
	}

	section("Exportação")
	prog := newProgress(a.logger)
	paths, err := eio.ExportAll(a.cfg.OutputDir, p.Region, p.UF, p.Municipality, records)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "export candidates")
	}
	prog.done(fmt.Sprintf("Exported %d candidates", len(records)))
	printFile(paths.CSV)
	printFile(paths.JSON)
	a.storeRecords(ctx, records)

	if err := a.photos(ctx, p, paths.Dir, records); err != nil {
		return err
	}

	if !p.Cards {
		return nil
	}
	return a.cards(ctx, records)
}

// lookup resolves the election, checks the UF against the region and lists
// the elected candidates of the municipality.
func (a *app) lookup(ctx context.Context, p Params) ([]candidate.Record, error) {
	id, err := a.elections.ElectionID(ctx, p.Year, p.Scope)
	if err != nil {
		return nil, err
	}
	printKeyValue("Eleição", id)

	regions, err := a.elections.Regions(ctx, id)
	if err != nil {
		return nil, err
	}
	if !regions.Contains(p.Region, p.UF) {
		return nil, apperrors.New(apperrors.ErrCodeRegionMismatch, "UF %s is not in region %s", p.UF, p.Region)
	}

	code, err := a.elections.MunicipalityCode(ctx, p.UF, id, p.Municipality)
	if err != nil {
		return nil, err
	}
	printKeyValue("Município", fmt.Sprintf("%s (%s)", p.Municipality, code))

	records, err := a.elections.AllElected(ctx, p.Year, id, code)
	if err != nil {
		return nil, err
	}
	printSuccess("%s candidatos eleitos encontrados", StyleNumber.Render(fmt.Sprint(len(records))))
	return records, nil
}

// storeRecords upserts the records into Mongo when a URI is configured.
// Failures only warn: the files on disk are the primary output.
func (a *app) storeRecords(ctx context.Context, records []candidate.Record) {
	m := a.cfg.Mongo
	if m.URI == "" {
		return
	}
	sink, err := eio.NewMongoSink(ctx, m.URI, m.Database, m.Collection)
	if err != nil {
		a.logger.Warn("mongo unavailable", "err", err)
		printWarning("MongoDB indisponível, registros não gravados")
		return
	}
	defer func() {
		if err := sink.Close(context.WithoutCancel(ctx)); err != nil {
			a.logger.Debug("close mongo", "err", err)
		}
	}()

	n, err := sink.Upsert(ctx, records)
	if err != nil {
		a.logger.Warn("mongo upsert failed", "err", err)
		printWarning("Falha ao gravar registros no MongoDB")
		return
	}
	printSuccess("%d registros gravados no MongoDB", n)
}

// photos saves the original photos and, when enhancement was chosen, runs the
// image stages.
func (a *app) photos(ctx context.Context, p Params, baseDir string, records []candidate.Record) error {
	runner := pipeline.NewRunner(a.jobs, a.fetch, baseDir, a.logger)

	verb := "Download"
	var results []pipeline.Result
	var err error
	if p.Enhance {
		verb = "Processamento"
		section("Processamento de imagens")
		results, err = runner.ProcessAll(ctx, records, p.Options)
	} else {
		section("Download de imagens")
		results, err = runner.DownloadAll(ctx, records)
	}
	printResults(verb, results)

	if errors.Is(err, picwish.ErrUnauthorized) {
		printError("A API key do PicWish foi recusada. Processamento interrompido.")
		printRemediation(apiKeyRemediation)
		return apperrors.Wrap(apperrors.ErrCodeUnauthorized, err, "image processing stopped")
	}
	return err
}

// cards writes the tarjetas and builds the print template.
func (a *app) cards(ctx context.Context, records []candidate.Record) error {
	section("Tarjetas")
	gen := tarjeta.NewGenerator(a.fetch, a.cfg.Automation.TarjetasDir, a.logger)
	written, err := gen.Generate(ctx, records)
	if err != nil {
		return err
	}
	printSuccess("%d tarjetas geradas em %s", len(written.Cards), gen.OutputDir)
	printFile(written.Master)
	if written.Preview != "" {
		printFile(written.Preview)
	}
	printFile(written.Layout)
	if written.Excluded > 0 {
		printWarning("%d candidatos excedem a capacidade do template (%d)", written.Excluded, layout.Capacity)
	}

	rep, err := automation.BuildTemplate(ctx, a.newDocument(), records, a.templatePath(), a.logger)
	if err != nil {
		return err
	}
	printSuccess("Template com %d tarjetas salvo", rep.Placed)
	printFile(rep.Path)
	return nil
}

// templatePath falls back to SVG when a PDF is requested but rsvg-convert is
// not installed.
func (a *app) templatePath() string {
	path := a.cfg.TemplatePath()
	if strings.EqualFold(filepath.Ext(path), ".pdf") && !render.Available() {
		svg := strings.TrimSuffix(path, filepath.Ext(path)) + ".svg"
		a.logger.Warn("rsvg-convert not found, saving template as SVG", "path", svg)
		return svg
	}
	return path
}
