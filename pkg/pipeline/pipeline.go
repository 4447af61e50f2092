// Package pipeline downloads candidate photos and runs them through the
// image-processing stages.
//
// For each candidate the original photo is saved first:
//
//	{base}/imagens/{office}/{name}.jpg
//
// The enhancement chain then runs in a fixed order, each stage fed by the
// previous stage's result URL:
//
//  1. Quality enhancement, repeated [Options.ScaleIterations] times. The chain
//     stops at the first failed iteration and keeps the ones that completed.
//  2. Background removal, when [Options.RemoveBackground] is set.
//  3. 3x4 ID photo, when [Options.MakeIDPhoto] is set.
//
// When at least one stage produced a new URL the final image is saved as
//
//	{base}/imagens_processadas/{office}/{ProcessedFilename(...)}
//
// Failures are per candidate and reported in [Result]. The one exception is
// an authentication failure: the API key is invalid for every candidate, so
// [Runner.ProcessAll] stops and returns [picwish.ErrUnauthorized].
//
// [Runner.DownloadAll] is the plain mode that only saves the originals.
package pipeline

import (
	"fmt"
	"strings"
)

const (
	// DefaultScaleIterations is the number of enhancement passes.
	DefaultScaleIterations = 1

	// MaxScaleIterations bounds the enhancement passes a run may request.
	MaxScaleIterations = 10

	OriginalDir  = "imagens"
	ProcessedDir = "imagens_processadas"
)

// Options selects the enhancement stages.
type Options struct {
	ScaleIterations  int
	RemoveBackground bool
	MakeIDPhoto      bool
}

// DefaultOptions returns one enhancement pass and no optional stages.
func DefaultOptions() Options {
	return Options{ScaleIterations: DefaultScaleIterations}
}

// Validate rejects out-of-range iteration counts.
func (o Options) Validate() error {
	if o.ScaleIterations < 0 || o.ScaleIterations > MaxScaleIterations {
		return fmt.Errorf("scale iterations must be between 0 and %d, got %d", MaxScaleIterations, o.ScaleIterations)
	}
	return nil
}

// ProcessedFilename names the processed photo of name after the stages the
// options enable. The extension is .png when the background was removed.
func ProcessedFilename(name string, removeBackground, makeIDPhoto bool) string {
	parts := []string{name, "processed"}
	if removeBackground {
		parts = append(parts, "no_bg")
	}
	if makeIDPhoto {
		parts = append(parts, "3x4")
	}
	ext := ".jpg"
	if removeBackground {
		ext = ".png"
	}
	return strings.Join(parts, "_") + ext
}

// Result is the outcome for one candidate.
type Result struct {
	Name    string // ballot name
	Office  string
	Success bool
	Path    string // file written on success
	Err     error  // cause of a failure, if any
}

// Summary counts successes and failures.
func Summary(results []Result) (ok, failed int) {
	for _, r := range results {
		if r.Success {
			ok++
		} else {
			failed++
		}
	}
	return ok, failed
}
