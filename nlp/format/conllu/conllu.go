package conllu

// Package conllu reads and writes CoNLL-U files such as the Russian UD
// treebanks. Multiword token ranges are kept as surface tokens; empty
// nodes (decimal ids) are skipped.
// For a description see
// https://universaldependencies.org/format.html

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	nlp "rutb/nlp/types"
)

const (
	FIELD_SEPARATOR      = '\t'
	NUM_FIELDS           = 10
	FEATURES_SEPARATOR   = "|"
	FEATURE_SEPARATOR    = "="
	FEATURE_CONCAT_DELIM = ","
	DEPS_SEPARATOR       = "|"
)

var ErrFormat = errors.New("conllu format error")

type Features map[string]string

func (f Features) String() string {
	return FormatFeatures(f)
}

func FormatFeatures(feat map[string]string) string {
	if len(feat) == 0 {
		return "_"
	}
	strs := make([]string, 0, len(feat))
	for k, v := range feat {
		strs = append(strs, fmt.Sprintf("%v%v%v", k, FEATURE_SEPARATOR, v))
	}
	sort.Strings(strs)
	return strings.Join(strs, FEATURES_SEPARATOR)
}

// A Row is a single syntactic word of a CoNLL-U sentence
type Row struct {
	ID      int
	Form    string
	Lemma   string
	UPosTag string
	XPosTag string
	Feats   Features
	Head    int
	DepRel  string
	Deps    []string
	Misc    string

	// index into Sentence.Tokens of the surface token this word belongs to
	TokenID int
}

func (r Row) String() string {
	fields := []string{
		strconv.Itoa(r.ID),
		r.Form,
		r.Lemma,
		r.UPosTag,
		r.XPosTag,
		FormatFeatures(r.Feats),
		strconv.Itoa(r.Head),
		r.DepRel,
		strings.Join(r.Deps, DEPS_SEPARATOR),
		r.Misc,
	}
	for i, field := range fields {
		if len(field) == 0 {
			fields[i] = "_"
		}
	}
	return strings.Join(fields, string(FIELD_SEPARATOR))
}

// A Span is a multiword token covering the words First..Last
type Span struct {
	First, Last int
	Form        string
}

// A Sentence is a map of Rows using their ids, the surface tokens and any
// comment lines preceding the rows
type Sentence struct {
	Deps     map[int]Row
	Tokens   []string
	Spans    []Span
	Comments []string
}

func NewSentence() *Sentence {
	return &Sentence{
		Deps:     make(map[int]Row),
		Tokens:   []string{},
		Comments: make([]string, 0, 2),
	}
}

// Comment returns the value of a "# key = value" comment line
func (s *Sentence) Comment(key string) (string, bool) {
	prefix := "# " + key + " = "
	for _, c := range s.Comments {
		if strings.HasPrefix(c, prefix) {
			return c[len(prefix):], true
		}
	}
	return "", false
}

type Sentences []*Sentence

func ParseInt(value string) (int, error) {
	if value == "_" {
		return 0, nil
	}
	i, err := strconv.ParseInt(value, 10, 0)
	return int(i), err
}

func ParseString(value string) string {
	if value == "_" {
		return ""
	}
	return value
}

func ParseFeatures(featuresStr string) (Features, error) {
	var featureMap Features
	if featuresStr == "_" || featuresStr == "" {
		return featureMap, nil
	}

	featureList := strings.Split(featuresStr, FEATURES_SEPARATOR)
	featureMap = make(Features, len(featureList))
	for _, featureStr := range featureList {
		featureKV := strings.Split(featureStr, FEATURE_SEPARATOR)
		if len(featureKV) != 2 {
			return nil, errors.New("Wrong number of fields for split of feature " + featureStr)
		}
		featName := featureKV[0]
		featValue := featureKV[1]
		existingFeatValue, featExist := featureMap[featName]
		if featExist {
			featureMap[featName] = existingFeatValue + FEATURE_CONCAT_DELIM + featValue
		} else {
			featureMap[featName] = featValue
		}
	}
	return featureMap, nil
}

func ParseRow(record []string) (Row, error) {
	var row Row
	if len(record) != NUM_FIELDS {
		return row, fmt.Errorf("Expected %d fields, got %d", NUM_FIELDS, len(record))
	}
	id, err := ParseInt(record[0])
	if err != nil {
		return row, fmt.Errorf("Error parsing ID field (%s): %s", record[0], err.Error())
	}
	row.ID = id

	row.UPosTag = ParseString(record[3])
	row.XPosTag = ParseString(record[4])

	// punctuation forms are taken as is, "_" may be the token itself
	if row.UPosTag == "PUNCT" || row.UPosTag == "SYM" {
		row.Form = record[1]
	} else {
		row.Form = ParseString(record[1])
	}
	if row.Form == "" {
		return row, errors.New("Empty FORM field")
	}
	row.Lemma = ParseString(record[2])

	features, err := ParseFeatures(record[5])
	if err != nil {
		return row, fmt.Errorf("Error parsing FEATS field (%s): %s", record[5], err.Error())
	}
	row.Feats = features

	head, err := ParseInt(record[6])
	if err != nil {
		return row, fmt.Errorf("Error parsing HEAD field (%s): %s", record[6], err.Error())
	}
	row.Head = head
	row.DepRel = ParseString(record[7])

	if deps := ParseString(record[8]); len(deps) > 0 {
		row.Deps = strings.Split(deps, DEPS_SEPARATOR)
	}
	row.Misc = ParseString(record[9])
	return row, nil
}

// ParseTokenRow parses a multiword token range row ("3-4	со	_ ...")
func ParseTokenRow(record []string) (Span, error) {
	var span Span
	span.Form = ParseString(record[1])
	if span.Form == "" {
		return span, errors.New("Empty FORM field for token row")
	}
	ids := strings.Split(record[0], "-")
	if len(ids) != 2 {
		return span, fmt.Errorf("Error parsing ID span field (%s): needs <num>-<num>", record[0])
	}
	var err error
	if span.First, err = ParseInt(ids[0]); err != nil {
		return span, fmt.Errorf("Error parsing ID span field (%s): %s", record[0], err.Error())
	}
	if span.Last, err = ParseInt(ids[1]); err != nil {
		return span, fmt.Errorf("Error parsing ID span field (%s): %s", record[0], err.Error())
	}
	if span.Last <= span.First {
		return span, fmt.Errorf("Error parsing ID span field (%s): empty range", record[0])
	}
	return span, nil
}

// Read reads up to limit sentences (0 for all)
func Read(reader io.Reader, limit int) (Sentences, error) {
	var (
		sentences   Sentences
		currentSent = NewSentence()
		lineNum     int
		numForms    int
	)
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if len(line) == 0 {
			if len(currentSent.Deps) > 0 {
				sentences = append(sentences, currentSent)
				if limit > 0 && len(sentences) >= limit {
					return sentences, nil
				}
			}
			currentSent = NewSentence()
			numForms = 0
			continue
		}
		if line[0] == '#' {
			currentSent.Comments = append(currentSent.Comments, line)
			continue
		}
		record := strings.Split(line, string(FIELD_SEPARATOR))
		if len(record) != NUM_FIELDS {
			return nil, fmt.Errorf("%w: line %d: expected %d fields, got %d", ErrFormat, lineNum, NUM_FIELDS, len(record))
		}
		switch {
		case strings.Contains(record[0], "."):
			// empty node of an enhanced graph
			continue
		case strings.Contains(record[0], "-"):
			span, err := ParseTokenRow(record)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %s", ErrFormat, lineNum, err.Error())
			}
			currentSent.Spans = append(currentSent.Spans, span)
			currentSent.Tokens = append(currentSent.Tokens, span.Form)
			numForms = span.Last - span.First + 1
		default:
			row, err := ParseRow(record)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %s", ErrFormat, lineNum, err.Error())
			}
			if numForms > 0 {
				numForms--
			} else {
				currentSent.Tokens = append(currentSent.Tokens, row.Form)
			}
			row.TokenID = len(currentSent.Tokens) - 1
			currentSent.Deps[row.ID] = row
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(currentSent.Deps) > 0 {
		sentences = append(sentences, currentSent)
	}
	return sentences, nil
}

func ReadFile(filename string, limit int) (Sentences, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	sents, err := Read(file, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return sents, nil
}

func Write(writer io.Writer, sents Sentences) error {
	w := bufio.NewWriter(writer)
	for _, sent := range sents {
		for _, c := range sent.Comments {
			if _, err := w.WriteString(c + "\n"); err != nil {
				return err
			}
		}
		spans := make(map[int]Span, len(sent.Spans))
		for _, s := range sent.Spans {
			spans[s.First] = s
		}
		for i := 1; i <= len(sent.Deps); i++ {
			if s, exists := spans[i]; exists {
				fmt.Fprintf(w, "%d-%d\t%s\t_\t_\t_\t_\t_\t_\t_\t_\n", s.First, s.Last, s.Form)
			}
			if _, err := w.WriteString(sent.Deps[i].String() + "\n"); err != nil {
				return err
			}
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.Flush()
}

func WriteFile(filename string, sents Sentences) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return Write(file, sents)
}

// Graph2ConllU converts a dependency graph into a sentence with the given
// sentence id comment; empty sentID omits the comment
func Graph2ConllU(graph *nlp.DependencyGraph, sentID string) *Sentence {
	sent := NewSentence()
	if sentID != "" {
		sent.Comments = append(sent.Comments, "# sent_id = "+sentID)
	}
	sent.Comments = append(sent.Comments, "# text = "+strings.Join(graph.Sent.Tokens(), " "))
	for i, token := range graph.Sent {
		row := Row{
			ID:      i + 1,
			Form:    token.Token,
			UPosTag: token.POS,
			TokenID: i,
		}
		if i < len(graph.Arcs) {
			row.Head = graph.Arcs[i].Head
			row.DepRel = string(graph.Arcs[i].Relation)
		}
		sent.Deps[row.ID] = row
		sent.Tokens = append(sent.Tokens, token.Token)
	}
	return sent
}

func Graph2ConllUCorpus(corpus []*nlp.DependencyGraph) Sentences {
	sents := make(Sentences, len(corpus))
	for i, graph := range corpus {
		sents[i] = Graph2ConllU(graph, strconv.Itoa(i+1))
	}
	return sents
}

// ConllU2Graph returns the syntactic words of sent as a dependency graph
// tagged with universal part-of-speech tags
func ConllU2Graph(sent *Sentence) *nlp.DependencyGraph {
	graph := &nlp.DependencyGraph{
		Sent: make(nlp.BasicTaggedSentence, len(sent.Deps)),
		Arcs: make([]nlp.DepArc, len(sent.Deps)),
	}
	for i := 1; i <= len(sent.Deps); i++ {
		row := sent.Deps[i]
		graph.Sent[i-1] = nlp.TaggedToken{Token: row.Form, POS: row.UPosTag}
		graph.Arcs[i-1] = nlp.DepArc{Modifier: i, Head: row.Head, Relation: nlp.DepRel(row.DepRel)}
	}
	return graph
}

func ConllU2GraphCorpus(corpus Sentences) []*nlp.DependencyGraph {
	graphs := make([]*nlp.DependencyGraph, len(corpus))
	for i, sent := range corpus {
		graphs[i] = ConllU2Graph(sent)
	}
	return graphs
}
