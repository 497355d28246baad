package models

import (
	"time"

	"github.com/google/uuid"
)

// Bookmark is a single exported browser bookmark.
type Bookmark struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// DisplayTitle returns the title, or the URL when the title is empty.
func (b Bookmark) DisplayTitle() string {
	if b.Title == "" {
		return b.URL
	}
	return b.Title
}

// UsageLog represents a record of LM API usage for cost tracking.
type UsageLog struct {
	Timestamp    time.Time
	RunID        uuid.UUID
	ProviderName string
	Operation    string // e.g. "categorization", "categorization_retry"
	ModelName    string
	InputTokens  int
	OutputTokens int
	Cost         float64
}

// Grouping is an ordered folder -> bookmarks mapping. Folders keep the order
// in which they were first added; adding to an existing folder appends.
type Grouping struct {
	order []string
	items map[string][]Bookmark
}

// NewGrouping returns an empty grouping.
func NewGrouping() *Grouping {
	return &Grouping{items: make(map[string][]Bookmark)}
}

// Add appends bookmarks to folder, creating it if needed.
func (g *Grouping) Add(folder string, bms ...Bookmark) {
	if g.items == nil {
		g.items = make(map[string][]Bookmark)
	}
	if _, ok := g.items[folder]; !ok {
		g.order = append(g.order, folder)
		g.items[folder] = []Bookmark{}
	}
	g.items[folder] = append(g.items[folder], bms...)
}

// Merge accumulates other into g. Colliding folder names are concatenated
// in call order, never replaced.
func (g *Grouping) Merge(other *Grouping) {
	if other == nil {
		return
	}
	for _, folder := range other.order {
		g.Add(folder, other.items[folder]...)
	}
}

// Folders returns folder names in first-seen order.
func (g *Grouping) Folders() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Items returns the bookmarks filed under folder.
func (g *Grouping) Items(folder string) []Bookmark {
	return g.items[folder]
}

// Len returns the total number of bookmarks across all folders.
func (g *Grouping) Len() int {
	n := 0
	for _, bms := range g.items {
		n += len(bms)
	}
	return n
}

// Map returns a plain map copy, mostly useful for comparisons in tests.
func (g *Grouping) Map() map[string][]Bookmark {
	out := make(map[string][]Bookmark, len(g.items))
	for k, v := range g.items {
		out[k] = append([]Bookmark(nil), v...)
	}
	return out
}
