package types

import (
	"fmt"
	"reflect"

	"rutb/util"
)

type DepRel string

func (d DepRel) String() string {
	return string(d)
}

// A DepArc links a modifier token to its head token.
// Indices are 1-based token positions; head 0 is the artificial root.
type DepArc struct {
	Modifier, Head int
	Relation       DepRel
}

func (a DepArc) GetModifier() int {
	return a.Modifier
}

func (a DepArc) GetHead() int {
	return a.Head
}

func (a DepArc) GetRelation() DepRel {
	return a.Relation
}

func (a DepArc) String() string {
	return fmt.Sprintf("%d-%v->%d", a.Head, a.Relation, a.Modifier)
}

// A DependencyGraph is a tagged sentence with exactly one arc per token,
// ordered by modifier.
type DependencyGraph struct {
	Sent BasicTaggedSentence
	Arcs []DepArc
}

var _ util.Equaler = &DependencyGraph{}

func (g *DependencyGraph) NumberOfNodes() int {
	return len(g.Sent)
}

func (g *DependencyGraph) NumberOfArcs() int {
	return len(g.Arcs)
}

// HeadOf returns the head index of the 1-based token i
func (g *DependencyGraph) HeadOf(i int) int {
	return g.Arcs[i-1].Head
}

func (g *DependencyGraph) TaggedSentence() TaggedSentence {
	return g.Sent
}

func (g *DependencyGraph) Equal(otherEq util.Equaler) bool {
	other, ok := otherEq.(*DependencyGraph)
	return ok && reflect.DeepEqual(g.Sent, other.Sent) && reflect.DeepEqual(g.Arcs, other.Arcs)
}
