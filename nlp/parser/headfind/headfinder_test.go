package headfind

import (
	"context"
	"testing"

	nlp "rutb/nlp/types"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

var (
	pt   = nlp.NewPreTerminal
	node = nlp.NewTree
)

func newFinder(t *testing.T, b *Builder, fallback DefaultRule) *HeadFinder {
	t.Helper()
	table, err := b.Build()
	require.NoError(t, err)
	return New(Config{
		Table:        table,
		Marks:        DefaultAnnotationMarks,
		Default:      fallback,
		StartSymbols: []string{"ROOT"},
	})
}

// Я иду искать .
func sampleTree() *nlp.Tree {
	return node("ROOT",
		node("S",
			node("NP-SBJ", pt("PRON", "Я")),
			node("VP",
				pt("VERB", "иду"),
				node("VP", pt("VERB", "искать"))),
			pt("PUNCT", ".")))
}

func sampleBuilder() *Builder {
	b := NewBuilder(true)
	b.Define("S", Left("VP", "NP"), Left())
	b.Define("VP", Left("VERB", "VP"))
	b.Define("NP", LeftDis("NOUN", "PRON", "NP"))
	return b
}

func TestPercolate(t *testing.T) {
	h := newFinder(t, sampleBuilder(), LeftmostChild)
	tree := sampleTree()

	report, err := h.Percolate(tree)
	require.NoError(t, err)
	assert.Empty(t, report.Warnings)

	word, ok := tree.HeadWord()
	require.True(t, ok)
	assert.Equal(t, "иду", word)
	tag, _ := tree.HeadTag()
	assert.Equal(t, "VERB", tag)

	s := tree.Children[0]
	assert.Equal(t, 1, s.HeadIndex())
	assert.Equal(t, "VP", s.HeadChild().Label)

	// ROOT, NP and the lower VP are unary; four pre-terminals
	assert.Equal(t, 9, report.Nodes)
	assert.Equal(t, 7, report.Outcomes[Unary])
	assert.Equal(t, 2, report.Outcomes[Matched])
	assert.Equal(t, 0, report.Outcomes[Fallback])

	assert.Equal(t,
		"(ROOT (S^ (NP-SBJ (PRON^ Я)) (VP^ (VERB^ иду) (VP (VERB^ искать))) (PUNCT .)))",
		tree.HeadString())
}

func TestDeterminism(t *testing.T) {
	h := newFinder(t, sampleBuilder(), RightmostChild)
	first, second := sampleTree(), sampleTree()
	_, err := h.Percolate(first)
	require.NoError(t, err)
	_, err = h.Percolate(second)
	require.NoError(t, err)
	assert.Equal(t, first.HeadString(), second.HeadString())

	// percolating an annotated tree again changes nothing
	before := first.HeadString()
	_, err = h.Percolate(first)
	require.NoError(t, err)
	assert.Equal(t, before, first.HeadString())
}

func TestUnaryShortcut(t *testing.T) {
	b := NewBuilder(false)
	b.Define("NP", Right("VERB"))
	b.Define("VERB", Right("X"))
	h := newFinder(t, b, RightmostChild)

	head, outcome, err := h.DetermineHead(node("NP", pt("NOUN", "поезд")))
	require.NoError(t, err)
	assert.Equal(t, 0, head)
	assert.Equal(t, Unary, outcome)

	head, outcome, err = h.DetermineHead(pt("VERB", "иду"))
	require.NoError(t, err)
	assert.Equal(t, 0, head)
	assert.Equal(t, Unary, outcome)
}

func TestPriorityOrdering(t *testing.T) {
	b := NewBuilder(false)
	b.Define("XP", Left("X", "Y"))
	b.Define("ZP", Right("X", "Y"))
	h := newFinder(t, b, LeftmostChild)

	children := func(label string) *nlp.Tree {
		return node(label, pt("Y", "a"), pt("X", "b"), pt("Y", "c"), pt("X", "d"), pt("Z", "e"))
	}

	head, outcome, err := h.DetermineHead(children("XP"))
	require.NoError(t, err)
	assert.Equal(t, 1, head, "X beats Y although Y comes first")
	assert.Equal(t, Matched, outcome)

	head, _, err = h.DetermineHead(children("ZP"))
	require.NoError(t, err)
	assert.Equal(t, 3, head, "rightmost X")
}

func TestDisjunctive(t *testing.T) {
	b := NewBuilder(false)
	b.Define("XP", LeftDis("X", "Y"))
	b.Define("ZP", RightDis("X", "Y"))
	h := newFinder(t, b, LeftmostChild)

	head, outcome, err := h.DetermineHead(node("XP", pt("Z", "a"), pt("Y", "b"), pt("X", "c")))
	require.NoError(t, err)
	assert.Equal(t, 1, head, "Y comes before any X")
	assert.Equal(t, Matched, outcome)

	head, _, err = h.DetermineHead(node("ZP", pt("X", "a"), pt("Y", "b"), pt("Z", "c")))
	require.NoError(t, err)
	assert.Equal(t, 1, head)
}

func TestExcept(t *testing.T) {
	b := NewBuilder(false)
	b.Define("S", LeftExcept("PUNCT", "CCONJ"))
	b.Define("SQ", RightExcept("PUNCT"))
	b.Define("FRAG", LeftExcept("PUNCT"))
	h := newFinder(t, b, RightmostChild)

	head, _, err := h.DetermineHead(node("S", pt("PUNCT", "«"), pt("CCONJ", "и"), pt("NOUN", "поезд"), pt("PUNCT", "»")))
	require.NoError(t, err)
	assert.Equal(t, 2, head)

	head, _, err = h.DetermineHead(node("SQ", pt("PRON", "кто"), pt("VERB", "идёт"), pt("PUNCT", "?")))
	require.NoError(t, err)
	assert.Equal(t, 1, head)

	head, outcome, err := h.DetermineHead(node("FRAG", pt("PUNCT", "-"), pt("PUNCT", "-")))
	require.NoError(t, err)
	assert.Equal(t, 1, head)
	assert.Equal(t, Fallback, outcome)
}

func TestPositionalGroup(t *testing.T) {
	b := NewBuilder(false)
	b.Define("AdP", Right("ADV"), Left("N"), Right())
	h := newFinder(t, b, LeftmostChild)

	head, outcome, err := h.DetermineHead(node("AdP", pt("P", "в"), pt("A", "общем"), pt("C", "и")))
	require.NoError(t, err)
	assert.Equal(t, 2, head)
	assert.Equal(t, Matched, outcome)

	head, _, err = h.DetermineHead(node("AdP", pt("ADV", "очень"), pt("N", "раз"), pt("ADV", "тихо"), pt("N", "дом")))
	require.NoError(t, err)
	assert.Equal(t, 2, head)
}

func TestFallback(t *testing.T) {
	b := NewBuilder(false)
	b.Define("NP", Left("NOUN"))
	tree := func(label string) *nlp.Tree {
		return node(label, pt("ADJ", "быстрый"), pt("ADJ", "новый"), pt("NUM", "два"))
	}

	for _, c := range []struct {
		fallback DefaultRule
		want     int
	}{
		{LeftmostChild, 0},
		{RightmostChild, 2},
	} {
		h := newFinder(t, b, c.fallback)
		for _, label := range []string{"UNKNOWN", "NP"} {
			for run := 0; run < 3; run++ {
				head, outcome, err := h.DetermineHead(tree(label))
				require.NoError(t, err)
				assert.Equal(t, c.want, head, "%v %s", c.fallback, label)
				assert.Equal(t, Fallback, outcome)
			}
		}
	}
}

func TestFallbackReport(t *testing.T) {
	h := newFinder(t, NewBuilder(false), LeftmostChild)
	tree := node("ROOT", node("XP", pt("A", "a"), pt("B", "b")), node("XP-2", pt("A", "a"), pt("B", "b")))
	report, err := h.Percolate(tree)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"XP": 2, "ROOT": 1}, report.Fallbacks)
	assert.Equal(t, 3, report.Outcomes[Fallback])
}

func TestAnnotatedLabels(t *testing.T) {
	b := NewBuilder(false)
	b.Define("NP", Left("NOUN"))
	h := newFinder(t, b, RightmostChild)

	head, outcome, err := h.DetermineHead(node("NP-SBJ-1", pt("ADJ", "быстрый"), pt("NOUN|Anim", "поезд"), pt("ADJ", "новый")))
	require.NoError(t, err)
	assert.Equal(t, 1, head)
	assert.Equal(t, Matched, outcome)
}

func TestOverwrittenRuleInEffect(t *testing.T) {
	b := NewBuilder(false)
	b.Define("NP", Left("NOUN"))
	b.Define("NP", Left("ADJ"))
	h := newFinder(t, b, LeftmostChild)

	head, _, err := h.DetermineHead(node("NP", pt("NOUN", "поезд"), pt("ADJ", "быстрый")))
	require.NoError(t, err)
	assert.Equal(t, 1, head)
}

func TestNounPhraseExample(t *testing.T) {
	b := NewBuilder(false)
	b.Define("NP", Left("ADJ", "NOUN", "PRON", "NP", "NUM"))
	h := newFinder(t, b, LeftmostChild)

	tree := node("NP", pt("ADJ", "быстрый"), pt("NOUN", "поезд"))
	_, err := h.Percolate(tree)
	require.NoError(t, err)

	assert.Equal(t, "ADJ", tree.HeadChild().Label)
	word, ok := tree.HeadWord()
	require.True(t, ok)
	assert.Equal(t, "быстрый", word)
}

func TestPreTerminalHeadWord(t *testing.T) {
	verb := pt("VERB", "иду")
	word, ok := verb.HeadWord()
	require.True(t, ok)
	assert.Equal(t, "иду", word)

	h := New(Config{})
	report, err := h.Percolate(verb)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Outcomes[Unary])
	assert.Equal(t, 0, verb.HeadIndex())
}

func TestInvalidTree(t *testing.T) {
	h := newFinder(t, sampleBuilder(), LeftmostChild)

	_, err := h.Percolate(nlp.NewLeaf("иду"))
	assert.ErrorIs(t, err, ErrInvalidTree)

	_, _, err = h.DetermineHead(node("NP"))
	assert.ErrorIs(t, err, ErrInvalidTree)

	tree := node("ROOT",
		node("S",
			node("NP"),
			node("VP", pt("VERB", "иду"), pt("ADV", "быстро")),
			node("NP", pt("PRON", "Я"))))
	_, err = h.Percolate(tree)
	require.ErrorIs(t, err, ErrInvalidTree)

	s := tree.Children[0]
	assert.Equal(t, 0, s.Children[1].HeadIndex(), "siblings after the error are processed")
	assert.Equal(t, 0, s.Children[2].HeadIndex())
	assert.Equal(t, nlp.NO_HEAD, s.HeadIndex(), "ancestors are left unannotated")
	assert.Equal(t, nlp.NO_HEAD, tree.HeadIndex())
	_, ok := tree.HeadWord()
	assert.False(t, ok)
}

func TestInvalidTreeClearsEarlierHeads(t *testing.T) {
	h := newFinder(t, sampleBuilder(), LeftmostChild)
	tree := sampleTree()
	_, err := h.Percolate(tree)
	require.NoError(t, err)
	s, vp := tree.Children[0], tree.Children[0].Children[1]
	require.Equal(t, 1, s.HeadIndex())

	vp.Children[1].Children = nil
	_, err = h.Percolate(tree)
	require.ErrorIs(t, err, ErrInvalidTree)

	assert.Equal(t, nlp.NO_HEAD, vp.Children[1].HeadIndex())
	assert.Equal(t, nlp.NO_HEAD, vp.HeadIndex())
	assert.Equal(t, nlp.NO_HEAD, s.HeadIndex())
	assert.Equal(t, nlp.NO_HEAD, tree.HeadIndex())
	assert.Equal(t, 0, s.Children[0].HeadIndex(), "siblings are re-annotated")
	_, ok := tree.HeadWord()
	assert.False(t, ok)
}

func TestUnknownStartSymbol(t *testing.T) {
	h := newFinder(t, sampleBuilder(), LeftmostChild)

	tree := sampleTree().Children[0]
	report, err := h.Percolate(tree)
	require.NoError(t, err)
	require.Len(t, report.Warnings, 1)
	assert.ErrorIs(t, report.Warnings[0], ErrUnknownStartSymbol)
	word, _ := tree.HeadWord()
	assert.Equal(t, "иду", word)

	annotated := sampleTree()
	annotated.Label = "ROOT-1"
	report, err = h.Percolate(annotated)
	require.NoError(t, err)
	assert.Empty(t, report.Warnings)

	report, err = New(Config{Table: h.Table()}).Percolate(sampleTree().Children[0])
	require.NoError(t, err)
	assert.Empty(t, report.Warnings, "no start symbols configured")
}

func TestDetermineHeadDoesNotModify(t *testing.T) {
	h := newFinder(t, sampleBuilder(), LeftmostChild)
	tree := sampleTree()
	_, _, err := h.DetermineHead(tree.Children[0])
	require.NoError(t, err)
	assert.Equal(t, nlp.NO_HEAD, tree.Children[0].HeadIndex())
	assert.Equal(t, nlp.NO_HEAD, tree.Children[0].Children[1].HeadIndex())
}

func TestConcurrentPercolate(t *testing.T) {
	h := newFinder(t, sampleBuilder(), LeftmostChild)
	want := sampleTree()
	_, err := h.Percolate(want)
	require.NoError(t, err)

	trees := make([]*nlp.Tree, 64)
	for i := range trees {
		trees[i] = sampleTree()
	}
	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(8)
	for _, tree := range trees {
		tree := tree
		g.Go(func() error {
			_, err := h.Percolate(tree)
			return err
		})
	}
	require.NoError(t, g.Wait())
	for _, tree := range trees {
		assert.Equal(t, want.HeadString(), tree.HeadString())
	}
}

func TestReportAdd(t *testing.T) {
	total := &Report{}
	total.Add(&Report{Nodes: 2, Outcomes: [NUM_OUTCOMES]int{1, 1, 0}})
	total.Add(&Report{Nodes: 1, Outcomes: [NUM_OUTCOMES]int{0, 0, 1}, Fallbacks: map[string]int{"XP": 1}, Warnings: []error{ErrUnknownStartSymbol}})
	assert.Equal(t, 3, total.Nodes)
	assert.Equal(t, [NUM_OUTCOMES]int{1, 1, 1}, total.Outcomes)
	assert.Equal(t, map[string]int{"XP": 1}, total.Fallbacks)
	assert.Len(t, total.Warnings, 1)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := NewMetrics(reg)
	require.NoError(t, err)

	table, err := sampleBuilder().Build()
	require.NoError(t, err)
	h := New(Config{Table: table, Marks: DefaultAnnotationMarks, Metrics: metrics})
	_, err = h.Percolate(sampleTree())
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Decisions.WithLabelValues("S", "rule")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Decisions.WithLabelValues("VP", "rule")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Decisions.WithLabelValues("NP", "unary")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Decisions.WithLabelValues("VERB", "unary")))
	assert.Equal(t, 8, testutil.CollectAndCount(metrics.Decisions))

	_, err = NewMetrics(reg)
	assert.Error(t, err, "registering twice")
}

func TestDefaultRule(t *testing.T) {
	for s, want := range map[string]DefaultRule{"left": LeftmostChild, "leftmost": LeftmostChild, "right": RightmostChild, "rightmost": RightmostChild} {
		d, err := ParseDefaultRule(s)
		require.NoError(t, err)
		assert.Equal(t, want, d)
	}
	_, err := ParseDefaultRule("middle")
	assert.ErrorIs(t, err, ErrBadRule)
	assert.Equal(t, "rightmost", RightmostChild.String())
	assert.Equal(t, "rule", Matched.String())
}
