package app

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"sortmarks/internal/config"
	"sortmarks/internal/fileingest"
	"sortmarks/internal/services"
	"sortmarks/pkg/segmenter"
)

// SplitResult is the outcome of segmenting a list of repository names.
type SplitResult struct {
	Dictionary []string
	Renames    []services.Rename
	Failures   []*segmenter.UnmatchedError
}

// Lines returns the "original,segmented" records for every success.
func (r *SplitResult) Lines() []string {
	lines := make([]string, 0, len(r.Renames))
	for _, rn := range r.Renames {
		lines = append(lines, rn.Line())
	}
	return lines
}

// Split loads the dictionary and segments names. With no names it reads
// them from cfg.Input, one per line.
func Split(cfg config.SplitConfig, names []string) (*SplitResult, error) {
	dictionary, err := loadDictionary(cfg.Dictionary)
	if err != nil {
		return nil, err
	}
	if len(dictionary) == 0 {
		log.Warnf("Dictionary %s is empty; every name will fail", cfg.Dictionary)
	}

	if len(names) == 0 {
		names, err = fileingest.ReadLines(cfg.Input)
		if err != nil {
			return nil, fmt.Errorf("read names from %s: %w", cfg.Input, err)
		}
	}

	renames, failures := services.NewRenameService(dictionary, cfg.Separator, cfg.LongestFirst).Plan(names)
	return &SplitResult{Dictionary: dictionary, Renames: renames, Failures: failures}, nil
}

func loadDictionary(path string) ([]string, error) {
	text, err := fileingest.ReadText(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	words, err := segmenter.LoadDictionary(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("load dictionary %s: %w", path, err)
	}
	return words, nil
}
