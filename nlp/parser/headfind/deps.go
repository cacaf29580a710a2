package headfind

import (
	"fmt"

	nlp "rutb/nlp/types"
)

// Dependencies reads the unlabeled head structure off an annotated tree:
// every non-head child's head word depends on its parent's head word and
// is labeled with the child's base category. The tree's own head word
// depends on the root. Untagged tokens are not part of the sentence; a
// node headed by one passes its governor down to its dependents.
func Dependencies(t *nlp.Tree, marks AnnotationMarks) (*nlp.DependencyGraph, error) {
	pts := t.PreTerminals()
	index := make(map[*nlp.Tree]int, len(pts))
	for i, pt := range pts {
		index[pt] = i + 1
	}
	graph := &nlp.DependencyGraph{
		Sent: t.TaggedYield(),
		Arcs: make([]nlp.DepArc, len(pts)),
	}
	// headOf is 0 when the head chain ends on an untagged token
	headOf := func(n *nlp.Tree) (int, error) {
		cur := n
		for !cur.IsLeaf() {
			if cur.IsPreTerminal() {
				return index[cur], nil
			}
			if cur = cur.HeadChild(); cur == nil {
				return 0, fmt.Errorf("%w: %q", ErrNotAnnotated, n.Label)
			}
		}
		return 0, nil
	}
	var walk func(n *nlp.Tree, governor int) error
	walk = func(n *nlp.Tree, governor int) error {
		if n.IsLeaf() || n.IsPreTerminal() {
			return nil
		}
		head, err := headOf(n)
		if err != nil {
			return err
		}
		if head == 0 {
			head = governor
		}
		for i, c := range n.Children {
			if c.IsLeaf() {
				continue
			}
			if i != n.HeadIndex() {
				dep, err := headOf(c)
				if err != nil {
					return err
				}
				if dep > 0 {
					rel := nlp.DepRel(BasicCategory(c.Label, marks))
					if head == 0 {
						rel = nlp.ROOT_LABEL
					}
					graph.Arcs[dep-1] = nlp.DepArc{Modifier: dep, Head: head, Relation: rel}
				}
			}
			if err := walk(c, head); err != nil {
				return err
			}
		}
		return nil
	}
	if len(pts) == 0 {
		return graph, nil
	}
	root, err := headOf(t)
	if err != nil {
		return nil, err
	}
	if root > 0 {
		graph.Arcs[root-1] = nlp.DepArc{Modifier: root, Head: 0, Relation: nlp.ROOT_LABEL}
	}
	if err := walk(t, 0); err != nil {
		return nil, err
	}
	return graph, nil
}
