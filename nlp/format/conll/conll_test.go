package conll

import (
	"bytes"
	"strings"
	"testing"

	nlp "rutb/nlp/types"
)

func TestParseRow(t *testing.T) {
	row := strings.Split("1	поезд	_	NOUN	NOUN	Case=Nom|Number=Sing	2	nsubj	_	_",
		string(FIELD_SEPARATOR))

	parsed, err := ParseRow(row)
	if err != nil {
		t.Error(err.Error())
	}

	if parsed.ID != 1 {
		t.Errorf("Expected ID 1, got %d", parsed.ID)
	}

	if parsed.Form != "поезд" {
		t.Errorf("Expected FORM value поезд, got %s", parsed.Form)
	}

	if parsed.CPosTag != "NOUN" {
		t.Errorf("Expected CPOSTAG value NOUN, got %s", parsed.CPosTag)
	}

	if len(parsed.Feats) != 2 {
		t.Errorf("Expected 2 Features, got %d", len(parsed.Feats))
	}

	if caseFeature := parsed.Feats["Case"]; caseFeature != "Nom" {
		t.Errorf("Expected Nom for Case, got %s", caseFeature)
	}

	if parsed.Head != 2 {
		t.Errorf("Expected HEAD value 2, got %d", parsed.Head)
	}
}

func TestParseSuccessWithoutParams(t *testing.T) {
	row := strings.Split("4	.	_	PUNCT	PUNCT	_	2	punct	_	_",
		string(FIELD_SEPARATOR))

	_, err := ParseRow(row)
	if err != nil {
		t.Error(err.Error())
	}
}

func TestParseRowWithRepeatingParams(t *testing.T) {
	row := strings.Split("3	искать	_	VERB	VERB	Aspect=Imp|Aspect=Perf	2	xcomp",
		string(FIELD_SEPARATOR))

	parsed, err := ParseRow(row)
	if err != nil {
		t.Error(err.Error())
	}
	if value := parsed.Feats["Aspect"]; value != "Imp,Perf" {
		t.Error("Failure concatenating multiple features: should be Imp,Perf got " + value)
	}
}

func TestReadWriteGraph(t *testing.T) {
	graph := &nlp.DependencyGraph{
		Sent: nlp.BasicTaggedSentence{{Token: "Я", POS: "PRON"}, {Token: "иду", POS: "VERB"}, {Token: ".", POS: "PUNCT"}},
		Arcs: []nlp.DepArc{{Modifier: 1, Head: 2, Relation: "PRON"}, {Modifier: 2, Head: 0, Relation: "ROOT"}, {Modifier: 3, Head: 2, Relation: "PUNCT"}},
	}
	var buf bytes.Buffer
	if err := Write(&buf, Graph2ConllCorpus([]*nlp.DependencyGraph{graph, graph})); err != nil {
		t.Fatal(err)
	}
	sents, err := Read(&buf, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(sents) != 2 {
		t.Fatalf("Expected 2 sentences, got %d", len(sents))
	}
	if back := Conll2Graph(sents[1]); !back.Equal(graph) {
		t.Errorf("Expected %v, got %v", graph, back)
	}
}

func TestReadLimit(t *testing.T) {
	input := "1\ta\t_\tX\tX\t_\t0\tROOT\t_\t_\n\n1\tb\t_\tX\tX\t_\t0\tROOT\t_\t_\n"
	sents, err := Read(strings.NewReader(input), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(sents) != 1 || sents[0][1].Form != "a" {
		t.Errorf("Expected only the first sentence, got %v", sents)
	}
}
