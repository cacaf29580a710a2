// Package bracketed reads and writes constituency trees in the
// parenthesized (Penn Treebank) notation, e.g.
//
//	(ROOT (NP (ADJ быстрый) (NOUN поезд)))
package bracketed

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode"

	nlp "rutb/nlp/types"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/text/unicode/norm"
)

var (
	ErrSyntax  = errors.New("bracketed syntax error")
	ErrNoFiles = errors.New("no files match")
)

// A Reader parses consecutive trees from a stream. An unlabeled outermost
// bracket receives RootLabel; with no RootLabel a unary unlabeled wrapper
// is dropped.
type Reader struct {
	RootLabel string

	in   *bufio.Reader
	line int
	peek rune
	has  bool
}

func NewReader(r io.Reader, rootLabel string) *Reader {
	return &Reader{RootLabel: rootLabel, in: bufio.NewReader(r), line: 1}
}

func (r *Reader) next() (rune, error) {
	if r.has {
		r.has = false
		return r.peek, nil
	}
	c, _, err := r.in.ReadRune()
	if err != nil {
		return 0, err
	}
	if c == '\n' {
		r.line++
	}
	return c, nil
}

func (r *Reader) unread(c rune) {
	r.peek, r.has = c, true
}

func (r *Reader) skipSpace() (rune, error) {
	for {
		c, err := r.next()
		if err != nil {
			return 0, err
		}
		if !unicode.IsSpace(c) {
			return c, nil
		}
	}
}

func (r *Reader) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: line %d: %s", ErrSyntax, r.line, fmt.Sprintf(format, args...))
}

// Read returns the next tree, or io.EOF when the input is exhausted
func (r *Reader) Read() (*nlp.Tree, error) {
	c, err := r.skipSpace()
	if err != nil {
		return nil, err
	}
	if c != '(' {
		return nil, r.errorf("expected '(' got %q", c)
	}
	t, err := r.readTree()
	if err != nil {
		return nil, err
	}
	if t.Label == "" {
		switch {
		case r.RootLabel != "":
			t.Label = r.RootLabel
		case len(t.Children) == 1 && !t.Children[0].IsLeaf():
			t = t.Children[0]
		}
	}
	return t, nil
}

// readTree reads the remainder of a bracket after its opening '('
func (r *Reader) readTree() (*nlp.Tree, error) {
	c, err := r.skipSpace()
	if err != nil {
		return nil, r.errorf("unexpected end of input")
	}
	r.unread(c)
	var label string
	if c != '(' && c != ')' {
		if label, err = r.readAtom(); err != nil {
			return nil, err
		}
	}
	node := nlp.NewTree(label)
	for {
		c, err := r.skipSpace()
		if err != nil {
			return nil, r.errorf("unexpected end of input in %q", label)
		}
		switch c {
		case ')':
			return node, nil
		case '(':
			child, err := r.readTree()
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
		default:
			r.unread(c)
			word, err := r.readAtom()
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, nlp.NewLeaf(word))
		}
	}
}

func (r *Reader) readAtom() (string, error) {
	var b strings.Builder
	for {
		c, err := r.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if unicode.IsSpace(c) || c == '(' || c == ')' {
			r.unread(c)
			break
		}
		b.WriteRune(c)
	}
	if b.Len() == 0 {
		return "", r.errorf("empty atom")
	}
	return norm.NFC.String(b.String()), nil
}

// Read reads up to limit trees (0 for all)
func Read(reader io.Reader, rootLabel string, limit int) ([]*nlp.Tree, error) {
	r := NewReader(reader, rootLabel)
	trees := make([]*nlp.Tree, 0, 100)
	for limit == 0 || len(trees) < limit {
		t, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return trees, err
		}
		trees = append(trees, t)
	}
	return trees, nil
}

func ReadFile(filename string, rootLabel string, limit int) ([]*nlp.Tree, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	trees, err := Read(file, rootLabel, limit)
	if err != nil {
		return trees, fmt.Errorf("%s: %w", filename, err)
	}
	return trees, nil
}

// Glob expands doublestar patterns ("corpus/**/*.tree") into a sorted,
// deduplicated file list
func Glob(patterns ...string) ([]string, error) {
	seen := make(map[string]bool)
	files := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFiles, strings.Join(patterns, " "))
	}
	sort.Strings(files)
	return files, nil
}

// ReadFiles reads trees from every file matching patterns, in file name
// order, stopping after limit trees (0 for all)
func ReadFiles(patterns []string, rootLabel string, limit int) ([]*nlp.Tree, error) {
	files, err := Glob(patterns...)
	if err != nil {
		return nil, err
	}
	var trees []*nlp.Tree
	for _, f := range files {
		remaining := 0
		if limit > 0 {
			remaining = limit - len(trees)
			if remaining <= 0 {
				break
			}
		}
		fileTrees, err := ReadFile(f, rootLabel, remaining)
		trees = append(trees, fileTrees...)
		if err != nil {
			return trees, err
		}
	}
	return trees, nil
}

// Write prints one tree per line; with heads set, head children are
// marked with '^'
func Write(writer io.Writer, trees []*nlp.Tree, heads bool) error {
	w := bufio.NewWriter(writer)
	for _, t := range trees {
		s := t.String()
		if heads {
			s = t.HeadString()
		}
		if _, err := w.WriteString(s); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.Flush()
}

func WriteFile(filename string, trees []*nlp.Tree, heads bool) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return Write(file, trees, heads)
}
