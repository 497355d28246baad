package services

import (
	"errors"
	"strings"

	log "github.com/sirupsen/logrus"

	"sortmarks/pkg/segmenter"
)

// Rename pairs an original name with its segmented form.
type Rename struct {
	Original  string
	Segmented string
	Words     []string
}

// Line formats the rename as an "original,segmented" record.
func (r Rename) Line() string {
	return r.Original + "," + r.Segmented
}

// RenameService segments repository names against a dictionary.
type RenameService struct {
	segmenter *segmenter.Segmenter
	separator string
}

func NewRenameService(dictionary []string, separator string, longestFirst bool) *RenameService {
	if longestFirst {
		dictionary = segmenter.LongestFirst(dictionary)
	}
	return &RenameService{
		segmenter: segmenter.New(dictionary),
		separator: separator,
	}
}

// Plan segments every name. A name that fails is logged with its unmatched
// remainder and reported in failures; it never aborts the rest. Blank names
// are skipped.
func (s *RenameService) Plan(names []string) (renames []Rename, failures []*segmenter.UnmatchedError) {
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		words, err := s.segmenter.Segment(name)
		if err != nil {
			var unmatched *segmenter.UnmatchedError
			if errors.As(err, &unmatched) {
				failures = append(failures, unmatched)
			}
			log.WithFields(log.Fields{"name": name}).Warnf("Failed to process: %v", err)
			continue
		}
		segmented := segmenter.Join(words, s.separator)
		log.Debugf("Repository '%s' will be renamed to '%s'", name, segmented)
		renames = append(renames, Rename{Original: name, Segmented: segmented, Words: words})
	}
	return renames, failures
}
