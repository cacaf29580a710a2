package transform

import (
	"strings"
	"testing"

	"rutb/nlp/format/bracketed"
	"rutb/nlp/lang"
	nlp "rutb/nlp/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readTree(t *testing.T, s string) *nlp.Tree {
	t.Helper()
	trees, err := bracketed.Read(strings.NewReader(s), "ROOT", 0)
	require.NoError(t, err)
	require.Len(t, trees, 1)
	return trees[0]
}

func russian(t *testing.T) *lang.Pack {
	t.Helper()
	pack, err := lang.Get("ru", false)
	require.NoError(t, err)
	return pack
}

func TestCollinize(t *testing.T) {
	c := &Collinizer{Lang: russian(t)}
	tree := readTree(t, "(ROOT (S (NP-SBJ-1 (PRON Я)) (VP (VERB иду) (NP (-NONE- *T*-1))) (PUNCT .)))")

	out := c.Transform(tree)
	require.NotNil(t, out)
	assert.Equal(t, "(S (NP (PRON Я)) (VP (VERB иду)) (PUNCT .))", out.String())

	// the input is left untouched
	assert.Equal(t, "(ROOT (S (NP-SBJ-1 (PRON Я)) (VP (VERB иду) (NP (-NONE- *T*-1))) (PUNCT .)))", tree.String())
}

func TestCollinizePunct(t *testing.T) {
	c := &Collinizer{Lang: russian(t), DeletePunct: true}
	tree := readTree(t, "(ROOT (S (NP (PRON Я)) (VP (VERB иду)) (PUNCT .)))")
	assert.Equal(t, "(S (NP (PRON Я)) (VP (VERB иду)))", c.Transform(tree).String())
}

func TestCollinizeKeepsBranchingRoot(t *testing.T) {
	c := &Collinizer{Lang: russian(t)}
	tree := readTree(t, "(ROOT (NP (PRON Я)) (VERB иду))")
	assert.Equal(t, "(ROOT (NP (PRON Я)) (VERB иду))", c.Transform(tree).String())
}

func TestCollinizeCorpus(t *testing.T) {
	c := &Collinizer{Lang: russian(t), DeletePunct: true}
	trees := []*nlp.Tree{
		readTree(t, "(ROOT (PUNCT .))"),
		readTree(t, "(ROOT (NP (NOUN поезд)))"),
		readTree(t, "(ROOT (NP (-NONE- *)))"),
	}
	out := c.TransformCorpus(trees)
	require.Len(t, out, 1)
	assert.Equal(t, "(NP (NOUN поезд))", out[0].String())
	assert.Nil(t, c.Transform(nil))
}
