// Package corpus reads the line-aligned WikiBio split files.
package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrMisaligned is returned when the per-record files differ in length
var ErrMisaligned = errors.New("corpus files are not line-aligned")

// maxLineBytes bounds a single line of any corpus file
const maxLineBytes = 64 << 20

// Files holds the paths of one split's aligned files
type Files struct {
	ID       string
	Title    string
	Box      string
	Count    string
	Sentence string
}

// SplitFiles resolves <dir>/<split>/<split>.{id,title,box,nb,sent}
func SplitFiles(dir, split string) Files {
	base := filepath.Join(dir, split, split)
	return Files{
		ID:       base + ".id",
		Title:    base + ".title",
		Box:      base + ".box",
		Count:    base + ".nb",
		Sentence: base + ".sent",
	}
}

// Corpus is the in-memory content of one split
type Corpus struct {
	IDs       []string
	Titles    []string
	Boxes     []string
	Counts    []int
	Sentences []string
}

// Len returns the number of records
func (c *Corpus) Len() int {
	return len(c.IDs)
}

// Load reads all five files of a split
func Load(files Files) (*Corpus, error) {
	ids, err := ReadLines(files.ID)
	if err != nil {
		return nil, err
	}
	titles, err := ReadLines(files.Title)
	if err != nil {
		return nil, err
	}
	boxes, err := ReadLines(files.Box)
	if err != nil {
		return nil, err
	}
	counts, err := ReadCounts(files.Count)
	if err != nil {
		return nil, err
	}
	sentences, err := ReadLines(files.Sentence)
	if err != nil {
		return nil, err
	}

	n := len(ids)
	if len(titles) != n || len(boxes) != n || len(counts) != n {
		return nil, fmt.Errorf("%w: %d ids, %d titles, %d infoboxes, %d counts",
			ErrMisaligned, n, len(titles), len(boxes), len(counts))
	}

	return &Corpus{
		IDs:       ids,
		Titles:    titles,
		Boxes:     boxes,
		Counts:    counts,
		Sentences: sentences,
	}, nil
}

// ReadLines reads a file into a slice of lines (LF or CRLF terminated).
// Other Unicode line separators stay inside the line.
func ReadLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var lines []string

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}

	return lines, nil
}

// ReadCounts reads one non-negative sentence count per line
func ReadCounts(path string) ([]int, error) {
	lines, err := ReadLines(path)
	if err != nil {
		return nil, err
	}

	counts := make([]int, len(lines))
	for i, line := range lines {
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			return nil, fmt.Errorf("%s:%d: parse count: %w", path, i+1, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("%s:%d: negative count %d", path, i+1, n)
		}
		counts[i] = n
	}

	return counts, nil
}
