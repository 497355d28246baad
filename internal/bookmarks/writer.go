package bookmarks

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"golang.org/x/net/html"

	"sortmarks/internal/models"
)

// TimestampLayout is used in the "Organized on" comment.
const TimestampLayout = "2006-01-02 15:04:05 UTC"

// Write renders g as a Netscape bookmark file: one <H3> heading per folder,
// in grouping order, followed by its anchors.
func Write(w io.Writer, g *models.Grouping, now time.Time) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "<!DOCTYPE NETSCAPE-Bookmark-file-1>")
	fmt.Fprintln(bw, `<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">`)
	fmt.Fprintf(bw, "<!-- Organized on %s -->\n", now.UTC().Format(TimestampLayout))
	fmt.Fprintln(bw, "<TITLE>Organized Bookmarks</TITLE>")
	fmt.Fprintln(bw, "<H1>Organized Bookmarks</H1>")
	fmt.Fprintln(bw, "<DL><p>")
	for _, folder := range g.Folders() {
		fmt.Fprintf(bw, "    <DT><H3>%s</H3>\n", html.EscapeString(folder))
		fmt.Fprintln(bw, "    <DL><p>")
		for _, bm := range g.Items(folder) {
			fmt.Fprintf(bw, "        <DT><A HREF=\"%s\">%s</A>\n", html.EscapeString(bm.URL), html.EscapeString(bm.DisplayTitle()))
		}
		fmt.Fprintln(bw, "    </DL><p>")
	}
	fmt.Fprintln(bw, "</DL><p>")

	return bw.Flush()
}
