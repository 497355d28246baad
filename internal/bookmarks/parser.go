package bookmarks

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"

	"sortmarks/internal/models"
)

// Parse extracts every anchor from a bookmarks-exporter HTML document, in
// document order. Title is the anchor's text content, URL its href.
// Markup that contains no anchors yields an empty slice, not an error; an
// anchor still open at end of input is discarded.
func Parse(r io.Reader) ([]models.Bookmark, error) {
	var (
		bookmarks []models.Bookmark
		inAnchor  bool
		href      string
		title     strings.Builder
	)

	z := html.NewTokenizer(r)
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return bookmarks, err
			}
			return bookmarks, nil

		case html.StartTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "a" {
				continue
			}
			inAnchor = true
			href = ""
			title.Reset()
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				if string(key) == "href" {
					href = string(val)
				}
			}

		case html.TextToken:
			if inAnchor {
				title.Write(z.Text())
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) == "a" && inAnchor {
				bookmarks = append(bookmarks, models.Bookmark{
					Title: strings.TrimSpace(title.String()),
					URL:   href,
				})
				inAnchor = false
			}
		}
	}
}
