// Package wordlist loads the vocabulary the trainer quizzes on.
package wordlist

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"
)

// MaxWords caps the list; entries past it are ignored.
const MaxWords = 100

const byteOrderMark = "\ufeff"

// ErrEmpty is returned when a source yields no words.
var ErrEmpty = errors.New("word list is empty")

// Load reads the word list from source. An empty source selects the built-in
// list, http(s) URLs are fetched, .xlsx files are read from the first column
// of their first sheet, and anything else is read as a text file with one
// word per line.
func Load(ctx context.Context, source string) ([]string, error) {
	var (
		lines []string
		err   error
	)
	switch {
	case source == "":
		lines = Default()
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		lines, err = fetch(ctx, source)
	case strings.EqualFold(filepath.Ext(source), ".xlsx"):
		lines, err = readWorkbook(source)
	default:
		lines, err = readTextFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("load words from %s: %w", source, err)
	}

	words := Normalize(lines)
	if len(words) == 0 {
		return nil, fmt.Errorf("load words from %q: %w", source, ErrEmpty)
	}
	log.Printf("[INFO] Loaded %d words from %s", len(words), describe(source))
	return words, nil
}

// Normalize trims entries, drops blanks and repeats, keeps order and caps
// the result at MaxWords.
func Normalize(lines []string) []string {
	words := lo.Uniq(lo.FilterMap(lines, func(line string, _ int) (string, bool) {
		w := strings.TrimSpace(line)
		return w, w != ""
	}))
	if len(words) > MaxWords {
		log.Printf("[WARN] Word list has %d entries, keeping the first %d", len(words), MaxWords)
		words = words[:MaxWords]
	}
	return words
}

// Parse splits r into lines, dropping a leading UTF-8 byte order mark.
func Parse(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if len(lines) == 0 {
			line = strings.TrimPrefix(line, byteOrderMark)
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

func readTextFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

func fetch(ctx context.Context, url string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return Parse(resp.Body)
}

func readWorkbook(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("[WARN] Failed to close workbook %s: %v", path, err)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	return lo.FilterMap(rows, func(row []string, _ int) (string, bool) {
		if len(row) == 0 {
			return "", false
		}
		return row[0], true
	}), nil
}

func describe(source string) string {
	if source == "" {
		return "built-in list"
	}
	return source
}
