package categorizer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sortmarks/internal/models"
)

// scriptedCategorizer replays responses in order and records every request.
type scriptedCategorizer struct {
	responses []string
	errs      []error
	requests  []BatchRequest
}

func (s *scriptedCategorizer) CategorizeBatch(ctx context.Context, req BatchRequest) (string, error) {
	i := len(s.requests)
	s.requests = append(s.requests, req)
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	if i < len(s.responses) {
		return s.responses[i], err
	}
	return "", err
}

// folderAll files the whole batch under one folder.
func folderAll(folder string) CategorizeFunc {
	return func(ctx context.Context, req BatchRequest) (string, error) {
		out, err := json.Marshal(map[string][]models.Bookmark{folder: req.Bookmarks})
		return string(out), err
	}
}

var twoBookmarks = []models.Bookmark{
	{Title: "A", URL: "http://a"},
	{Title: "B", URL: "http://b"},
}

func TestCategorizeAll_AllBatchesFallBack(t *testing.T) {
	calls := 0
	garbage := CategorizeFunc(func(ctx context.Context, req BatchRequest) (string, error) {
		calls++
		return "Sorry, I can't help with that.", nil
	})

	var reports []BatchReport
	g, err := CategorizeAll(context.Background(), twoBookmarks, Options{
		BatchSize: 1,
		Retry:     true,
		OnBatch:   func(r BatchReport) { reports = append(reports, r) },
	}, garbage)

	require.NoError(t, err)
	assert.Equal(t, map[string][]models.Bookmark{FallbackFolder: twoBookmarks}, g.Map())
	assert.Equal(t, 4, calls, "initial attempt and one retry per batch")

	require.Len(t, reports, 2)
	for i, r := range reports {
		assert.Equal(t, i+1, r.Index)
		assert.Equal(t, 2, r.Total)
		assert.Equal(t, models.BatchStateFallback, r.State)
		assert.Equal(t, 2, r.Attempts)
		assert.ErrorIs(t, r.Err, ErrNoJSONObject)
	}
}

func TestCategorizeAll_NoRetry(t *testing.T) {
	s := &scriptedCategorizer{responses: []string{"nope"}}

	g, err := CategorizeAll(context.Background(), twoBookmarks, Options{BatchSize: 10}, s)

	require.NoError(t, err)
	assert.Len(t, s.requests, 1)
	assert.Equal(t, twoBookmarks, g.Items(FallbackFolder))
}

func TestCategorizeAll_RetryCarriesPreviousResponse(t *testing.T) {
	s := &scriptedCategorizer{responses: []string{
		`Here: {"Work": [{"title":"A","url":"http://a"}`,
		`{"Work": [{"title":"A","url":"http://a"},], "Fun": [{"title":"B","url":"http://b"}]}`,
	}}

	var report BatchReport
	g, err := CategorizeAll(context.Background(), twoBookmarks, Options{
		BatchSize: 2,
		Retry:     true,
		OnBatch:   func(r BatchReport) { report = r },
	}, s)

	require.NoError(t, err)
	require.Len(t, s.requests, 2)
	assert.False(t, s.requests[0].IsRetry())
	assert.True(t, s.requests[1].IsRetry())
	assert.Equal(t, RetryInstruction, s.requests[1].Correction)
	assert.Equal(t, `Here: {"Work": [{"title":"A","url":"http://a"}`, s.requests[1].PreviousResponse)
	assert.Equal(t, twoBookmarks, s.requests[1].Bookmarks)

	assert.Equal(t, []string{"Work", "Fun"}, g.Folders())
	assert.Equal(t, models.BatchStateParsed, report.State)
	assert.Equal(t, 2, report.Attempts)
}

func TestCategorizeAll_CallErrorFallsBack(t *testing.T) {
	apiErr := errors.New("simulated API error 500")
	s := &scriptedCategorizer{errs: []error{apiErr, apiErr}}

	var report BatchReport
	g, err := CategorizeAll(context.Background(), twoBookmarks, Options{
		BatchSize: 5,
		Retry:     true,
		OnBatch:   func(r BatchReport) { report = r },
	}, s)

	require.NoError(t, err)
	assert.Equal(t, twoBookmarks, g.Items(FallbackFolder))
	assert.ErrorIs(t, report.Err, apiErr)
	assert.Equal(t, "", s.requests[1].PreviousResponse)
}

func TestCategorizeAll_MergesFolderCollisionsInBatchOrder(t *testing.T) {
	g, err := CategorizeAll(context.Background(), twoBookmarks, Options{BatchSize: 1, Retry: true}, folderAll("News"))

	require.NoError(t, err)
	assert.Equal(t, []string{"News"}, g.Folders())
	assert.Equal(t, twoBookmarks, g.Items("News"))
}

func TestCategorizeAll_ExactlyOnce(t *testing.T) {
	var bookmarks []models.Bookmark
	for i := 0; i < 23; i++ {
		bookmarks = append(bookmarks, models.Bookmark{Title: fmt.Sprintf("T%d", i), URL: fmt.Sprintf("http://site/%d", i)})
	}

	// Alternate between a lossy response, garbage and a good response.
	n := 0
	c := CategorizeFunc(func(ctx context.Context, req BatchRequest) (string, error) {
		n++
		switch n % 3 {
		case 0:
			return "garbage", nil
		case 1:
			out, _ := json.Marshal(map[string][]models.Bookmark{"Half": req.Bookmarks[:len(req.Bookmarks)/2]})
			return string(out), nil
		default:
			out, _ := json.Marshal(map[string][]models.Bookmark{"All": req.Bookmarks, "Extra": {{URL: "http://evil"}}})
			return string(out), nil
		}
	})

	g, err := CategorizeAll(context.Background(), bookmarks, Options{BatchSize: 4, Retry: true}, c)
	require.NoError(t, err)

	seen := map[string]int{}
	for _, folder := range g.Folders() {
		for _, b := range g.Items(folder) {
			seen[b.URL]++
		}
	}
	assert.Len(t, seen, len(bookmarks))
	for url, count := range seen {
		assert.Equal(t, 1, count, url)
	}
	assert.NotContains(t, g.Folders(), "Extra")
}

func TestCategorizeAll_InvalidBatchSize(t *testing.T) {
	_, err := CategorizeAll(context.Background(), twoBookmarks, Options{BatchSize: 0}, folderAll("X"))

	assert.ErrorIs(t, err, ErrInvalidBatchSize)
}

func TestCategorizeAll_Empty(t *testing.T) {
	g, err := CategorizeAll(context.Background(), nil, Options{BatchSize: 3}, folderAll("X"))

	require.NoError(t, err)
	assert.Zero(t, g.Len())
	assert.Empty(t, g.Folders())
}

func TestCategorizeAll_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := CategorizeFunc(func(ctx context.Context, req BatchRequest) (string, error) {
		cancel()
		return "", ctx.Err()
	})

	_, err := CategorizeAll(ctx, twoBookmarks, Options{BatchSize: 1, Retry: true}, c)

	assert.ErrorIs(t, err, context.Canceled)
}
