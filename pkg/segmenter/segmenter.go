// Package segmenter splits concatenated names such as repository slugs into
// dictionary words.
//
// Matching is greedy first-match: at each step the first dictionary entry,
// in the order given, that prefixes the remaining text is consumed. This is
// not longest-match; pass the dictionary through LongestFirst for that.
// There is no backtracking, so an early choice that leads to a dead end is
// reported as a failure rather than retried.
package segmenter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// DefaultSeparator joins segmented words for the rename use case.
const DefaultSeparator = "_"

// ErrNoMatch is matched by every *UnmatchedError.
var ErrNoMatch = errors.New("no dictionary word matches")

// UnmatchedError reports the original input and the suffix that no
// dictionary entry could prefix.
type UnmatchedError struct {
	Input     string
	Remainder string
}

func (e *UnmatchedError) Error() string {
	return fmt.Sprintf("failed to match part of %q: remaining %q", e.Input, e.Remainder)
}

func (e *UnmatchedError) Is(target error) bool {
	return target == ErrNoMatch
}

// Segmenter holds a normalized dictionary.
type Segmenter struct {
	words []string
}

// New normalizes words (trim, lowercase, drop blanks) keeping their order.
func New(words []string) *Segmenter {
	normalized := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		normalized = append(normalized, w)
	}
	return &Segmenter{words: normalized}
}

// Words returns the normalized dictionary.
func (s *Segmenter) Words() []string {
	return append([]string(nil), s.words...)
}

// Segment splits input into dictionary words. On success the words
// concatenate to the lowercased input. Empty input yields an empty slice.
func (s *Segmenter) Segment(input string) ([]string, error) {
	remaining := strings.ToLower(input)
	result := []string{}
	for remaining != "" {
		matched := false
		for _, w := range s.words {
			if strings.HasPrefix(remaining, w) {
				result = append(result, w)
				remaining = remaining[len(w):]
				matched = true
				break
			}
		}
		if !matched {
			return nil, &UnmatchedError{Input: input, Remainder: remaining}
		}
	}
	return result, nil
}

// Segment is a convenience wrapper around New(dictionary).Segment(input).
func Segment(input string, dictionary []string) ([]string, error) {
	return New(dictionary).Segment(input)
}

// Join concatenates words with sep.
func Join(words []string, sep string) string {
	return strings.Join(words, sep)
}

// LongestFirst returns a copy of dictionary sorted by descending length.
// Equal-length words keep their relative order, so the tie-break stays
// deterministic.
func LongestFirst(dictionary []string) []string {
	out := append([]string(nil), dictionary...)
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i]) > len(out[j])
	})
	return out
}

// MaxWordSize caps a single dictionary line.
const MaxWordSize = 1 << 20

// LoadDictionary reads one word per line, trimmed and case-folded. Blank
// lines are skipped and order is preserved. A line longer than MaxWordSize
// fails the read.
func LoadDictionary(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxWordSize)
	for scanner.Scan() {
		w := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if w == "" {
			continue
		}
		words = append(words, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}
	return words, nil
}
