package conll

// Package conll reads and writes CoNLL-X dependency files
// For a description see http://ilk.uvt.nl/conll/#dataformat

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
)

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

// A Row is a single parsed row of a conll data set
// *Commented fields are not in use
type Row struct {
	ID      int
	Form    string
	CPosTag string
	PosTag  string
	Feats   Features
	Head    int
	DepRel  string
	// Lemma string
	// PHead int
	// PDepRel string
}

func (r Row) String() string {
	fields := []string{
		strconv.Itoa(r.ID),
		r.Form,
		"_",
		formatString(r.CPosTag),
		formatString(r.PosTag),
		FormatFeatures(r.Feats),
		strconv.Itoa(r.Head),
		formatString(r.DepRel),
		"_",
		"_"}
	return strings.Join(fields, string(FIELD_SEPARATOR))
}

// A Sentence is a map of Rows using their ids
type Sentence map[int]Row

type Sentences []Sentence

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

func formatString(value string) string {
	if value == "" {
		return "_"
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
	if len(record) < 8 {
		return row, fmt.Errorf("Expected at least 8 fields, got %d", len(record))
	}
	id, err := ParseInt(record[0])
	if err != nil {
		return row, fmt.Errorf("Error parsing ID field (%s): %s", record[0], err.Error())
	}
	row.ID = id

	form := ParseString(record[1])
	if form == "" {
		return row, errors.New("Empty FORM field")
	}
	row.Form = form

	cpostag := ParseString(record[3])
	if cpostag == "" {
		return row, errors.New("Empty CPOSTAG field")
	}
	row.CPosTag = cpostag
	row.PosTag = ParseString(record[4])

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
	return row, nil
}

// Read reads up to limit sentences (0 for all); sentences are separated
// by blank lines
func Read(reader io.Reader, limit int) (Sentences, error) {
	var (
		sentences   Sentences
		currentSent Sentence
		lineNum     int
	)
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if len(line) == 0 {
			if currentSent != nil {
				sentences = append(sentences, currentSent)
				currentSent = nil
				if limit > 0 && len(sentences) >= limit {
					return sentences, nil
				}
			}
			continue
		}
		if line[0] == '#' {
			continue
		}
		row, err := ParseRow(strings.Split(line, string(FIELD_SEPARATOR)))
		if err != nil {
			return nil, fmt.Errorf("Error processing line %d at sentence %d: %s", lineNum, len(sentences), err.Error())
		}
		if currentSent == nil {
			currentSent = make(Sentence)
		}
		currentSent[row.ID] = row
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if currentSent != nil {
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

	return Read(file, limit)
}

func Write(writer io.Writer, sents []Sentence) error {
	w := bufio.NewWriter(writer)
	for _, sent := range sents {
		for i := 1; i <= len(sent); i++ {
			if _, err := w.WriteString(sent[i].String() + "\n"); err != nil {
				return err
			}
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.Flush()
}

func WriteFile(filename string, sents []Sentence) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return Write(file, sents)
}

func Graph2Conll(graph *nlp.DependencyGraph) Sentence {
	sent := make(Sentence, graph.NumberOfNodes())
	for i, token := range graph.Sent {
		row := Row{
			ID:      i + 1,
			Form:    token.Token,
			CPosTag: token.POS,
			PosTag:  token.POS,
		}
		if i < len(graph.Arcs) {
			row.Head = graph.Arcs[i].Head
			row.DepRel = string(graph.Arcs[i].Relation)
		}
		sent[row.ID] = row
	}
	return sent
}

func Graph2ConllCorpus(corpus []*nlp.DependencyGraph) []Sentence {
	sentCorpus := make([]Sentence, len(corpus))
	for i, graph := range corpus {
		sentCorpus[i] = Graph2Conll(graph)
	}
	return sentCorpus
}

func Conll2Graph(sent Sentence) *nlp.DependencyGraph {
	graph := &nlp.DependencyGraph{
		Sent: make(nlp.BasicTaggedSentence, len(sent)),
		Arcs: make([]nlp.DepArc, len(sent)),
	}
	for i := 1; i <= len(sent); i++ {
		row := sent[i]
		graph.Sent[i-1] = nlp.TaggedToken{Token: row.Form, POS: row.CPosTag}
		graph.Arcs[i-1] = nlp.DepArc{Modifier: i, Head: row.Head, Relation: nlp.DepRel(row.DepRel)}
	}
	return graph
}

func Conll2GraphCorpus(corpus []Sentence) []*nlp.DependencyGraph {
	graphCorpus := make([]*nlp.DependencyGraph, len(corpus))
	for i, sent := range corpus {
		graphCorpus[i] = Conll2Graph(sent)
	}
	return graphCorpus
}
