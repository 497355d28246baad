// Package categorizer groups bookmarks into folders by asking an injected
// categorization capability about one batch at a time.
//
// The capability returns free text that is expected to contain a JSON object
// of folder name -> [{title, url}]. The text is repaired and parsed here; a
// batch whose response cannot be parsed gets one corrective retry and then
// falls back to FallbackFolder, so no bookmark is ever lost.
package categorizer

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"sortmarks/internal/chunking"
	"sortmarks/internal/models"
)

// FallbackFolder receives every bookmark whose batch could not be parsed.
const FallbackFolder = "Uncategorized"

// RetryInstruction is sent along with the malformed response on retry.
const RetryInstruction = "Please output *only* the valid JSON object, with no extra text."

// ErrInvalidBatchSize is returned for a non-positive batch size.
var ErrInvalidBatchSize = errors.New("batch size must be positive")

// BatchRequest is one call to the categorization capability.
type BatchRequest struct {
	Bookmarks []models.Bookmark

	// Set on retry only.
	PreviousResponse string
	Correction       string
}

// IsRetry reports whether the request carries a corrective instruction.
func (r BatchRequest) IsRetry() bool {
	return r.Correction != ""
}

// BatchCategorizer turns a batch into response text.
type BatchCategorizer interface {
	CategorizeBatch(ctx context.Context, req BatchRequest) (string, error)
}

// CategorizeFunc adapts a plain function to BatchCategorizer.
type CategorizeFunc func(ctx context.Context, req BatchRequest) (string, error)

func (f CategorizeFunc) CategorizeBatch(ctx context.Context, req BatchRequest) (string, error) {
	return f(ctx, req)
}

// Options control CategorizeAll.
type Options struct {
	BatchSize int
	Retry     bool

	// OnBatch, if set, is called after each batch reaches a terminal state.
	OnBatch func(BatchReport)
}

// BatchReport describes how a single batch was resolved.
type BatchReport struct {
	Index    int // 1-based
	Total    int
	Size     int
	State    models.BatchState
	Attempts int
	Err      error // last failure when State is Fallback

	Dropped   int // response items that matched no bookmark in the batch
	Recovered int // bookmarks the response left out, filed under FallbackFolder
}

// CategorizeAll partitions bookmarks into batches of opts.BatchSize,
// categorizes each batch in order and merges the results. Every input
// bookmark appears exactly once in the returned grouping. The only errors
// are an invalid batch size and context cancellation.
func CategorizeAll(ctx context.Context, bookmarks []models.Bookmark, opts Options, c BatchCategorizer) (*models.Grouping, error) {
	if opts.BatchSize <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBatchSize, opts.BatchSize)
	}

	merged := models.NewGrouping()
	batches := chunking.Partition(bookmarks, opts.BatchSize)
	for i, batch := range batches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		log.Infof("Processing batch %d/%d (%d items)", i+1, len(batches), len(batch))

		grouping, report, err := categorizeBatch(ctx, batch, opts.Retry, c)
		if err != nil {
			return nil, err
		}
		report.Index, report.Total = i+1, len(batches)
		merged.Merge(grouping)

		if opts.OnBatch != nil {
			opts.OnBatch(report)
		}
	}
	return merged, nil
}

// categorizeBatch walks one batch through
// Pending -> AwaitingFirstResponse -> {Parsed | AwaitingRetryResponse} -> {Parsed | Fallback}.
func categorizeBatch(ctx context.Context, batch []models.Bookmark, retry bool, c BatchCategorizer) (*models.Grouping, BatchReport, error) {
	report := BatchReport{Size: len(batch), State: models.BatchStatePending}

	report.State = models.BatchStateAwaitingFirstResponse
	raw, parsed, err := attempt(ctx, c, BatchRequest{Bookmarks: batch})
	report.Attempts++
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, report, ctxErr
	}
	if err == nil {
		return resolve(batch, parsed, report)
	}

	if !retry {
		log.Warnf("Batch parse failed: %v. Marking as %s.", err, FallbackFolder)
		return fallback(batch, report, err)
	}

	log.Warnf("Batch parse failed: %v. Retrying with a corrective prompt.", err)
	report.State = models.BatchStateAwaitingRetryResponse
	_, parsed, err = attempt(ctx, c, BatchRequest{
		Bookmarks:        batch,
		PreviousResponse: raw,
		Correction:       RetryInstruction,
	})
	report.Attempts++
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, report, ctxErr
	}
	if err == nil {
		return resolve(batch, parsed, report)
	}

	log.Warnf("Retry also failed: %v. Marking as %s.", err, FallbackFolder)
	return fallback(batch, report, err)
}

// attempt calls the capability and parses its response. A capability error
// counts as a failed attempt, just like unparseable text.
func attempt(ctx context.Context, c BatchCategorizer, req BatchRequest) (string, *models.Grouping, error) {
	raw, err := c.CategorizeBatch(ctx, req)
	if err != nil {
		return raw, nil, fmt.Errorf("categorization call failed: %w", err)
	}
	parsed, err := ParseGrouping(raw)
	if err != nil {
		return raw, nil, err
	}
	return raw, parsed, nil
}

func resolve(batch []models.Bookmark, parsed *models.Grouping, report BatchReport) (*models.Grouping, BatchReport, error) {
	grouping, dropped, recovered := Reconcile(batch, parsed)
	report.State = models.BatchStateParsed
	report.Dropped, report.Recovered = dropped, recovered
	if dropped > 0 || recovered > 0 {
		log.WithFields(log.Fields{"dropped": dropped, "recovered": recovered}).
			Warnf("Response did not match the batch exactly; unmatched bookmarks filed under %s", FallbackFolder)
	}
	return grouping, report, nil
}

func fallback(batch []models.Bookmark, report BatchReport, err error) (*models.Grouping, BatchReport, error) {
	grouping := models.NewGrouping()
	grouping.Add(FallbackFolder, batch...)
	report.State = models.BatchStateFallback
	report.Err = err
	return grouping, report, nil
}
