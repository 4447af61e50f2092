package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/eleitos/pkg/candidate"
	apperrors "github.com/matzehuels/eleitos/pkg/errors"
	"github.com/matzehuels/eleitos/pkg/integrations/picwish"
)

// Processor runs one image stage to completion.
type Processor interface {
	Process(ctx context.Context, stage picwish.Stage, sourceURL string) (*picwish.Job, error)
}

// Fetcher downloads a URL.
type Fetcher interface {
	GetBytes(ctx context.Context, url string) ([]byte, error)
}

// Runner processes candidates one at a time.
type Runner struct {
	Jobs    Processor // nil is allowed for plain downloads
	Fetch   Fetcher
	BaseDir string
	RunID   string
	Logger  *log.Logger
}

// NewRunner creates a runner writing under baseDir. Each runner gets its own
// run id, attached to every log line.
func NewRunner(jobs Processor, fetch Fetcher, baseDir string, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	id := uuid.NewString()
	return &Runner{
		Jobs:    jobs,
		Fetch:   fetch,
		BaseDir: baseDir,
		RunID:   id,
		Logger:  logger.With("run", id[:8]),
	}
}

// OriginalPath is where the unprocessed photo of rec is saved.
func (r *Runner) OriginalPath(rec candidate.Record) string {
	return filepath.Join(r.BaseDir, OriginalDir, rec.Office, rec.FileStem()+".jpg")
}

// ProcessedPath is where the processed photo of rec is saved.
func (r *Runner) ProcessedPath(rec candidate.Record, opts Options) string {
	return filepath.Join(r.BaseDir, ProcessedDir, rec.Office, ProcessedFilename(rec.FileStem(), opts.RemoveBackground, opts.MakeIDPhoto))
}

// ProcessCandidate saves the original photo of rec and then runs the
// enhancement chain. The returned error is non-nil only for conditions that
// must end the batch: an invalid API key or a cancelled context.
func (r *Runner) ProcessCandidate(ctx context.Context, rec candidate.Record, opts Options) (Result, error) {
	res := Result{Name: rec.BallotName, Office: rec.Office}
	logger := r.Logger.With("candidate", rec.BallotName)

	orig := r.OriginalPath(rec)
	if err := r.download(ctx, rec.PhotoURL, orig); err != nil {
		logger.Error("original photo download failed", "err", err)
		res.Err = err
		return res, ctx.Err()
	}
	logger.Info("saved original photo", "path", orig)

	current, processed, stageErr, err := r.chain(ctx, logger, rec.PhotoURL, opts)
	if err != nil {
		res.Err = err
		return res, err
	}
	if !processed || current == rec.PhotoURL {
		logger.Warn("no stage completed")
		res.Err = errors.New("no stage completed")
		if stageErr != nil {
			res.Err = stageErr
		}
		return res, nil
	}

	path := r.ProcessedPath(rec, opts)
	if err := r.download(ctx, current, path); err != nil {
		logger.Error("processed photo download failed", "err", err)
		res.Err = err
		return res, ctx.Err()
	}
	logger.Info("saved processed photo", "path", path)
	res.Success = true
	res.Path = path
	return res, nil
}

// chain runs the enabled stages and returns the last produced URL. Stage
// failures are logged and end the current stage only; the last one is
// returned as stageErr. The returned err is fatal to the batch.
func (r *Runner) chain(ctx context.Context, logger *log.Logger, source string, opts Options) (current string, processed bool, stageErr, err error) {
	if r.Jobs == nil {
		return source, false, nil, errors.New("no image processor configured")
	}
	current = source

	step := func(stage picwish.Stage, label string) (bool, error) {
		job, err := r.Jobs.Process(ctx, stage, current)
		if err != nil {
			if fatal(ctx, err) {
				return false, err
			}
			stageErr = stageError(label, err)
			logger.Error(label+" failed", "err", stageErr)
			return false, nil
		}
		current = job.ResultURL
		processed = true
		return true, nil
	}

	for i := 0; i < opts.ScaleIterations; i++ {
		ok, err := step(picwish.StageScale, fmt.Sprintf("enhancement %d/%d", i+1, opts.ScaleIterations))
		if err != nil {
			return "", false, nil, err
		}
		if !ok {
			break
		}
	}
	if opts.RemoveBackground && current != "" {
		if _, err := step(picwish.StageSegmentation, "background removal"); err != nil {
			return "", false, nil, err
		}
	}
	if opts.MakeIDPhoto && current != "" {
		if _, err := step(picwish.StageIDPhoto, "id photo"); err != nil {
			return "", false, nil, err
		}
	}
	return current, processed, stageErr, nil
}

// stageError tags a job that never finished with the TIMEOUT code.
func stageError(label string, err error) error {
	if errors.Is(err, picwish.ErrTimeout) {
		return apperrors.Wrap(apperrors.ErrCodeTimeout, err, "%s timed out", label)
	}
	return err
}

// ProcessAll runs [Runner.ProcessCandidate] for every record in order. It
// stops at the first fatal error and returns the results gathered so far.
func (r *Runner) ProcessAll(ctx context.Context, records []candidate.Record, opts Options) ([]Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	results := make([]Result, 0, len(records))
	for i, rec := range records {
		r.Logger.Info("processing candidate", "n", i+1, "of", len(records), "name", rec.BallotName, "office", rec.Office)
		res, err := r.ProcessCandidate(ctx, rec, opts)
		results = append(results, res)
		if err != nil {
			return results, err
		}
	}
	ok, failed := Summary(results)
	r.Logger.Info("processing finished", "ok", ok, "failed", failed, "duration", time.Since(start))
	return results, nil
}

// DownloadAll saves the original photo of every record without processing.
func (r *Runner) DownloadAll(ctx context.Context, records []candidate.Record) ([]Result, error) {
	results := make([]Result, 0, len(records))
	for _, rec := range records {
		res := Result{Name: rec.BallotName, Office: rec.Office}
		path := r.OriginalPath(rec)
		if err := r.download(ctx, rec.PhotoURL, path); err != nil {
			if ctx.Err() != nil {
				return results, ctx.Err()
			}
			r.Logger.Error("photo download failed", "candidate", rec.BallotName, "err", err)
			res.Err = err
		} else {
			r.Logger.Info("saved photo", "candidate", rec.BallotName, "path", path)
			res.Success = true
			res.Path = path
		}
		results = append(results, res)
	}
	return results, nil
}

func (r *Runner) download(ctx context.Context, url, path string) error {
	if url == "" {
		return errors.New("empty photo url")
	}
	data, err := r.Fetch.GetBytes(ctx, url)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func fatal(ctx context.Context, err error) bool {
	return errors.Is(err, picwish.ErrUnauthorized) || ctx.Err() != nil
}
