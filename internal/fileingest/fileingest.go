package fileingest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"sortmarks/internal/util"
)

// StdStream is the path that means stdin for reads and stdout for writes.
const StdStream = "-"

// MaxLineSize caps a single line read by ReadLines.
const MaxLineSize = 1 << 20

var stdin io.Reader = os.Stdin

// FileMeta holds metadata about an input file.
type FileMeta struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// ExtractFileMeta stats path.
func ExtractFileMeta(path string) (FileMeta, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileMeta{}, err
	}
	return FileMeta{
		Path:    path,
		Name:    info.Name(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// ReadText reads a text file, or stdin for "-", stripping any BOM and
// repairing invalid UTF-8. Binary-looking files are read anyway, with a
// warning.
func ReadText(path string) (string, error) {
	if path == StdStream {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return util.CleanFileContent(data, "stdin")
	}

	meta, err := ExtractFileMeta(path)
	if err != nil {
		return "", err
	}
	log.Debugf("Reading %s (%d bytes, modified %s)", meta.Path, meta.Size, meta.ModTime.Format(time.RFC3339))

	if binary, err := util.IsLikelyBinary(path); err == nil && binary {
		log.Warnf("%s looks like a binary file; parsing it anyway", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return util.CleanFileContent(data, path)
}

// ReadLines returns the trimmed lines of a text file, with typographic
// punctuation folded to ASCII. Blank lines are kept so callers can decide.
// A line longer than MaxLineSize fails the read.
func ReadLines(path string) ([]string, error) {
	text, err := ReadText(path)
	if err != nil {
		return nil, err
	}
	text = util.NormalizePunctuation(text)

	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, nil
}

// WriteLines writes one line per entry to path, or to stdout for "-".
func WriteLines(path string, stdout io.Writer, lines []string) error {
	if path == StdStream {
		return writeLines(stdout, lines)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeLines(f, lines); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeLines(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, line := range lines {
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return err
		}
	}
	return bw.Flush()
}
