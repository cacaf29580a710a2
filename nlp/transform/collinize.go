// Package transform holds tree normalizations applied before evaluation
package transform

import (
	nlp "rutb/nlp/types"
)

const EMPTY_ELEMENT = "-NONE-"

// Language is the part of a language pack a Collinizer consults
type Language interface {
	BasicCategory(label string) string
	IsPunctuationTag(tag string) bool
	IsStartSymbol(label string) bool
}

// Collinizer normalizes trees for constituency evaluation: labels are
// reduced to their base category, empty elements are removed, phrasal
// nodes left without children are pruned and a unary start symbol root
// is dropped. DeletePunct additionally removes punctuation pre-terminals.
type Collinizer struct {
	Lang        Language
	DeletePunct bool
}

// Transform returns a normalized copy of t, or nil if nothing remains
func (c *Collinizer) Transform(t *nlp.Tree) *nlp.Tree {
	if t == nil {
		return nil
	}
	if !t.IsLeaf() && c.Lang.IsStartSymbol(t.Label) && len(t.Children) == 1 && !t.Children[0].IsLeaf() {
		return c.Transform(t.Children[0])
	}
	return c.transform(t)
}

func (c *Collinizer) transform(t *nlp.Tree) *nlp.Tree {
	if t.IsLeaf() {
		return nlp.NewLeaf(t.Label)
	}
	if t.IsPreTerminal() {
		if c.Lang.BasicCategory(t.Label) == EMPTY_ELEMENT || (c.DeletePunct && c.Lang.IsPunctuationTag(t.Label)) {
			return nil
		}
		return nlp.NewPreTerminal(c.Lang.BasicCategory(t.Label), t.Children[0].Label)
	}
	children := make([]*nlp.Tree, 0, len(t.Children))
	for _, child := range t.Children {
		if transformed := c.transform(child); transformed != nil {
			children = append(children, transformed)
		}
	}
	if len(children) == 0 {
		return nil
	}
	return nlp.NewTree(c.Lang.BasicCategory(t.Label), children...)
}

// TransformCorpus collinizes every tree, dropping trees that vanish
func (c *Collinizer) TransformCorpus(trees []*nlp.Tree) []*nlp.Tree {
	retval := make([]*nlp.Tree, 0, len(trees))
	for _, t := range trees {
		if transformed := c.Transform(t); transformed != nil {
			retval = append(retval, transformed)
		}
	}
	return retval
}
