package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"sortmarks/internal/bookmarks"
	"sortmarks/internal/fileingest"
	"sortmarks/internal/models"
	"sortmarks/pkg/categorizer"
)

// OrganizeReport summarizes one organize run.
type OrganizeReport struct {
	Input      string
	Output     string
	Bookmarks  int
	Folders    []string
	Batches    []categorizer.BatchReport
	TotalCost  float64
	UsageCount int
}

// Fallbacks counts batches that ended up in the fallback folder.
func (r *OrganizeReport) Fallbacks() int {
	n := 0
	for _, b := range r.Batches {
		if b.State == models.BatchStateFallback {
			n++
		}
	}
	return n
}

// Organize reads a bookmarks export, categorizes it batch by batch and writes
// the grouped file to outputPath. now stamps the output header.
func (a *App) Organize(ctx context.Context, inputPath, outputPath string, now time.Time) (*OrganizeReport, error) {
	logger := log.WithField("run_id", a.RunID)
	cfg := a.Config.Categorization

	text, err := fileingest.ReadText(inputPath)
	if err != nil {
		return nil, fmt.Errorf("read bookmarks file: %w", err)
	}
	items, err := bookmarks.Parse(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("parse bookmarks file %s: %w", inputPath, err)
	}
	if len(items) == 0 {
		logger.Warnf("No bookmarks found in %s", inputPath)
	} else {
		logger.Infof("Found %d bookmarks", len(items))
	}

	report := &OrganizeReport{Input: inputPath, Output: outputPath, Bookmarks: len(items)}
	grouping, err := categorizer.CategorizeAll(ctx, items, categorizer.Options{
		BatchSize: cfg.BatchSize,
		Retry:     cfg.Retry,
		OnBatch: func(b categorizer.BatchReport) {
			report.Batches = append(report.Batches, b)
			entry := logger.WithFields(log.Fields{"batch": b.Index, "state": b.State, "attempts": b.Attempts})
			if b.State == models.BatchStateFallback {
				entry.Warnf("Batch %d/%d filed under %q: %v", b.Index, b.Total, categorizer.FallbackFolder, b.Err)
			} else {
				entry.Debugf("Batch %d/%d parsed", b.Index, b.Total)
			}
		},
	}, a.Categorizer)
	if err != nil {
		return nil, err
	}
	report.Folders = grouping.Folders()

	if err := writeGrouping(outputPath, grouping, now); err != nil {
		return nil, err
	}
	logger.Infof("Saved organized bookmarks to %s", outputPath)

	if report.TotalCost, err = a.CostTracker.TotalCost(ctx); err != nil {
		logger.Warnf("Failed to total usage cost: %v", err)
	}
	if usage, err := a.CostTracker.Usage(ctx); err == nil {
		report.UsageCount = len(usage)
	}
	return report, nil
}

func writeGrouping(path string, g *models.Grouping, now time.Time) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := bookmarks.Write(f, g, now); err != nil {
		f.Close()
		return fmt.Errorf("write output file: %w", err)
	}
	return f.Close()
}
