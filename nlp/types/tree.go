package types

import (
	"bytes"
	"fmt"
)

const NO_HEAD = -1

// A Tree is a node of a constituency tree: a leaf holding a surface token,
// a pre-terminal (tag over a single leaf) or a phrasal node.
// Head annotation is stored as an index into Children.
type Tree struct {
	Label    string
	Children []*Tree

	leaf bool
	head int
}

func NewLeaf(word string) *Tree {
	return &Tree{Label: word, leaf: true, head: NO_HEAD}
}

func NewPreTerminal(tag, word string) *Tree {
	return NewTree(tag, NewLeaf(word))
}

func NewTree(label string, children ...*Tree) *Tree {
	return &Tree{Label: label, Children: children, head: NO_HEAD}
}

func (t *Tree) IsLeaf() bool {
	return t.leaf
}

func (t *Tree) IsPreTerminal() bool {
	return !t.leaf && len(t.Children) == 1 && t.Children[0].leaf
}

func (t *Tree) IsPhrasal() bool {
	return !t.leaf && !t.IsPreTerminal()
}

// SetHead records the i'th child as head; passing NO_HEAD clears it.
func (t *Tree) SetHead(i int) {
	if t.leaf {
		panic("Cannot set head of a leaf")
	}
	if i != NO_HEAD && (i < 0 || i >= len(t.Children)) {
		panic(fmt.Sprintf("Head index %d out of range for %d children", i, len(t.Children)))
	}
	t.head = i
}

func (t *Tree) HeadIndex() int {
	if t.leaf {
		return NO_HEAD
	}
	return t.head
}

// HeadChild returns the annotated head child or nil.
func (t *Tree) HeadChild() *Tree {
	if t.leaf || t.head == NO_HEAD {
		return nil
	}
	return t.Children[t.head]
}

// HeadPreTerminal follows head children down to the pre-terminal
// dominating the head word; nil when the chain is incomplete or ends on
// an untagged token.
func (t *Tree) HeadPreTerminal() *Tree {
	cur := t
	for cur != nil && !cur.leaf {
		if cur.IsPreTerminal() {
			return cur
		}
		cur = cur.HeadChild()
	}
	return nil
}

// HeadWord returns the surface token reached by following head children.
// A pre-terminal's leaf is its head regardless of annotation, and the
// chain may also end on an untagged token directly under a phrasal node.
func (t *Tree) HeadWord() (string, bool) {
	cur := t
	for !cur.leaf {
		if cur.IsPreTerminal() {
			return cur.Children[0].Label, true
		}
		if cur = cur.HeadChild(); cur == nil {
			return "", false
		}
	}
	return cur.Label, true
}

// HeadTag returns the part-of-speech tag of the head word.
func (t *Tree) HeadTag() (string, bool) {
	pt := t.HeadPreTerminal()
	if pt == nil {
		return "", false
	}
	return pt.Label, true
}

// ClearHeads removes all head annotation below and including t
func (t *Tree) ClearHeads() {
	if t.leaf {
		return
	}
	t.head = NO_HEAD
	for _, c := range t.Children {
		c.ClearHeads()
	}
}

// PreTerminals returns the pre-terminal nodes in surface order.
func (t *Tree) PreTerminals() []*Tree {
	retval := make([]*Tree, 0, 16)
	var collect func(*Tree)
	collect = func(n *Tree) {
		if n.leaf {
			return
		}
		if n.IsPreTerminal() {
			retval = append(retval, n)
			return
		}
		for _, c := range n.Children {
			collect(c)
		}
	}
	collect(t)
	return retval
}

func (t *Tree) Yield() BasicSentence {
	pts := t.PreTerminals()
	retval := make(BasicSentence, len(pts))
	for i, pt := range pts {
		retval[i] = Token(pt.Children[0].Label)
	}
	return retval
}

func (t *Tree) TaggedYield() BasicTaggedSentence {
	pts := t.PreTerminals()
	retval := make(BasicTaggedSentence, len(pts))
	for i, pt := range pts {
		retval[i] = TaggedToken{Token: pt.Children[0].Label, POS: pt.Label}
	}
	return retval
}

func (t *Tree) Depth() int {
	if t.leaf {
		return 0
	}
	max := 0
	for _, c := range t.Children {
		if d := c.Depth(); d > max {
			max = d
		}
	}
	return max + 1
}

// Copy returns a deep copy including head annotation
func (t *Tree) Copy() *Tree {
	retval := &Tree{Label: t.Label, leaf: t.leaf, head: t.head}
	if t.Children != nil {
		retval.Children = make([]*Tree, len(t.Children))
		for i, c := range t.Children {
			retval.Children[i] = c.Copy()
		}
	}
	return retval
}

func (t *Tree) String() string {
	var buf bytes.Buffer
	t.write(&buf, false)
	return buf.String()
}

// HeadString prints the tree in bracketed form marking each head child
// with a trailing '^' on its label.
func (t *Tree) HeadString() string {
	var buf bytes.Buffer
	t.write(&buf, true)
	return buf.String()
}

func (t *Tree) write(buf *bytes.Buffer, marks bool) {
	if t.leaf {
		buf.WriteString(t.Label)
		return
	}
	buf.WriteByte('(')
	buf.WriteString(t.Label)
	for i, c := range t.Children {
		buf.WriteByte(' ')
		if marks && !c.leaf && i == t.head {
			c.writeMarked(buf)
			continue
		}
		c.write(buf, marks)
	}
	buf.WriteByte(')')
}

func (t *Tree) writeMarked(buf *bytes.Buffer) {
	var inner bytes.Buffer
	t.write(&inner, true)
	// insert the marker right after the label
	s := inner.String()
	buf.WriteByte('(')
	buf.WriteString(t.Label)
	buf.WriteByte('^')
	buf.WriteString(s[1+len(t.Label):])
}
