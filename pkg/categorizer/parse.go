package categorizer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"sortmarks/internal/models"
)

var (
	ErrNoJSONObject   = errors.New("no JSON object found in response")
	ErrUnbalancedJSON = errors.New("could not find matching closing '}'")
)

var (
	trailingCommaObject = regexp.MustCompile(`,\s*}`)
	trailingCommaArray  = regexp.MustCompile(`,\s*]`)
)

// ExtractJSON returns the first brace-balanced {...} region of text with
// trailing commas before '}' and ']' removed. Braces are counted without
// regard to JSON strings.
func ExtractJSON(text string) (string, error) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", ErrNoJSONObject
	}

	depth, end := 0, -1
scan:
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				end = i + 1
				break scan
			}
		}
	}
	if end < 0 {
		return "", ErrUnbalancedJSON
	}

	snippet := text[start:end]
	snippet = trailingCommaObject.ReplaceAllString(snippet, "}")
	snippet = trailingCommaArray.ReplaceAllString(snippet, "]")
	return snippet, nil
}

// ParseGrouping extracts, repairs and decodes a folder -> [{title, url}]
// object from response text. Folder order follows the response.
func ParseGrouping(text string) (*models.Grouping, error) {
	clean, err := ExtractJSON(text)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(strings.NewReader(clean))
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	grouping := models.NewGrouping()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to parse LLM response as JSON: %w", err)
		}
		folder, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("failed to parse LLM response as JSON: unexpected key %v", tok)
		}
		var items []models.Bookmark
		if err := dec.Decode(&items); err != nil {
			return nil, fmt.Errorf("failed to parse LLM response as JSON: folder %q: %w", folder, err)
		}
		grouping.Add(folder, items...)
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return grouping, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err == io.EOF {
		return fmt.Errorf("failed to parse LLM response as JSON: %w", io.ErrUnexpectedEOF)
	}
	if err != nil {
		return fmt.Errorf("failed to parse LLM response as JSON: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("failed to parse LLM response as JSON: expected %q, got %v", want, tok)
	}
	return nil
}

// Reconcile maps a parsed grouping back onto the batch it came from so each
// bookmark in the batch appears exactly once. Items are matched by URL,
// consuming one batch entry per match. Items that match nothing (or a URL
// already used up) are dropped; bookmarks the response left out are filed
// under FallbackFolder. The batch's own records are used, not the response's.
func Reconcile(batch []models.Bookmark, parsed *models.Grouping) (grouping *models.Grouping, dropped, recovered int) {
	pending := make(map[string][]int, len(batch))
	for i, b := range batch {
		key := strings.TrimSpace(b.URL)
		pending[key] = append(pending[key], i)
	}

	assigned := make([]bool, len(batch))
	grouping = models.NewGrouping()
	for _, folder := range parsed.Folders() {
		name := strings.TrimSpace(folder)
		if name == "" {
			name = FallbackFolder
		}
		for _, item := range parsed.Items(folder) {
			key := strings.TrimSpace(item.URL)
			idx := pending[key]
			if len(idx) == 0 {
				dropped++
				continue
			}
			pending[key] = idx[1:]
			assigned[idx[0]] = true
			grouping.Add(name, batch[idx[0]])
		}
	}

	for i, b := range batch {
		if !assigned[i] {
			grouping.Add(FallbackFolder, b)
			recovered++
		}
	}
	return grouping, dropped, recovered
}
