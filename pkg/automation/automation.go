package automation

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/eleitos/pkg/candidate"
	apperrors "github.com/matzehuels/eleitos/pkg/errors"
	"github.com/matzehuels/eleitos/pkg/render/tarjeta"
	"github.com/matzehuels/eleitos/pkg/render/tarjeta/layout"
)

// Application is a desktop-publishing target.
type Application interface {
	// Start launches the application without showing it.
	Start(ctx context.Context) error
	// CreateDocument opens a new document with the given page.
	CreateDocument(ctx context.Context, page layout.Page) error
	// PlaceCard draws one template cell.
	PlaceCard(ctx context.Context, card layout.Placement) error
	// Save writes the document to path.
	Save(ctx context.Context, path string) error
	// Close closes the document.
	Close(ctx context.Context) error
	// Stop quits the application. It must be safe to call in any state.
	Stop(ctx context.Context) error
}

// stopTimeout bounds Stop after the run context is cancelled.
const stopTimeout = 10 * time.Second

// Report summarises a template build.
type Report struct {
	Placed   int
	Excluded int
	Path     string
}

// BuildTemplate places records on the print template through app and saves
// it to path. The application is stopped on every return path; a stop
// failure is joined to the returned error.
func BuildTemplate(ctx context.Context, app Application, records []candidate.Record, path string, logger *log.Logger) (rep Report, err error) {
	if logger == nil {
		logger = log.Default()
	}

	if err := app.Start(ctx); err != nil {
		return rep, apperrors.Wrap(apperrors.ErrCodeAutomation, err, "start application")
	}
	logger.Debug("application started")

	defer func() {
		stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), stopTimeout)
		defer cancel()
		if stopErr := app.Stop(stopCtx); stopErr != nil {
			logger.Error("failed to stop application", "err", stopErr)
			err = errors.Join(err, apperrors.Wrap(apperrors.ErrCodeAutomation, stopErr, "stop application"))
			return
		}
		logger.Debug("application stopped")
	}()

	if err := app.CreateDocument(ctx, layout.TemplatePage()); err != nil {
		return rep, fail(logger, err, "create document")
	}

	placements := layout.Place(tarjeta.Labels(records))
	for _, p := range placements {
		if err := app.PlaceCard(ctx, p); err != nil {
			return rep, fail(logger, err, "place card %d (%s)", p.Index, p.Name)
		}
		rep.Placed++
	}
	rep.Excluded = len(records) - rep.Placed

	if err := app.Save(ctx, path); err != nil {
		return rep, fail(logger, err, "save %s", path)
	}
	if err := app.Close(ctx); err != nil {
		return rep, fail(logger, err, "close document")
	}
	rep.Path = path
	logger.Info("template saved", "path", path, "placed", rep.Placed, "excluded", rep.Excluded)
	return rep, nil
}

func fail(logger *log.Logger, err error, format string, args ...any) error {
	wrapped := apperrors.Wrap(apperrors.ErrCodeAutomation, err, format, args...)
	logger.Error("automation fault", "err", wrapped)
	return wrapped
}
