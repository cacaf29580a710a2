// Package headfind implements table-driven head percolation over
// constituency trees.
//
// A HeadFinder is built once from a RuleTable and the language's label
// conventions and is then shared, read-only, by any number of callers.
// Each call to Percolate annotates one caller-owned tree in place,
// bottom-up, recording for every phrasal node the index of its head child.
package headfind

import (
	"fmt"

	nlp "rutb/nlp/types"
)

// DefaultRule is the positional fallback applied when a category has no
// rule groups or none of its groups match.
type DefaultRule int

const (
	LeftmostChild DefaultRule = iota
	RightmostChild
)

func (d DefaultRule) String() string {
	switch d {
	case LeftmostChild:
		return "leftmost"
	case RightmostChild:
		return "rightmost"
	default:
		return fmt.Sprintf("DefaultRule(%d)", int(d))
	}
}

func ParseDefaultRule(s string) (DefaultRule, error) {
	switch s {
	case "left", "leftmost":
		return LeftmostChild, nil
	case "right", "rightmost":
		return RightmostChild, nil
	default:
		return 0, fmt.Errorf("%w: unknown default rule %q", ErrBadRule, s)
	}
}

// Outcome classifies how a head was chosen
type Outcome int

const (
	Unary Outcome = iota
	Matched
	Fallback
	NUM_OUTCOMES
)

var outcomeNames = [...]string{"unary", "rule", "fallback"}

func (o Outcome) String() string {
	if o < 0 || o >= NUM_OUTCOMES {
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
	return outcomeNames[o]
}

type Config struct {
	Table        *RuleTable
	Marks        AnnotationMarks
	Default      DefaultRule
	StartSymbols []string

	// Optional
	Metrics *Metrics
}

type HeadFinder struct {
	table        *RuleTable
	marks        AnnotationMarks
	fallback     DefaultRule
	startSymbols map[string]bool
	metrics      *Metrics
}

func New(conf Config) *HeadFinder {
	h := &HeadFinder{
		table:        conf.Table,
		marks:        make(AnnotationMarks, len(conf.Marks)),
		fallback:     conf.Default,
		startSymbols: make(map[string]bool, len(conf.StartSymbols)),
		metrics:      conf.Metrics,
	}
	copy(h.marks, conf.Marks)
	for _, s := range conf.StartSymbols {
		h.startSymbols[s] = true
	}
	return h
}

func (h *HeadFinder) Table() *RuleTable {
	return h.table
}

func (h *HeadFinder) Default() DefaultRule {
	return h.fallback
}

func (h *HeadFinder) BasicCategory(label string) string {
	return BasicCategory(label, h.marks)
}

// A Report summarizes one Percolate call
type Report struct {
	Nodes     int
	Outcomes  [NUM_OUTCOMES]int
	Fallbacks map[string]int
	Warnings  []error
}

func (r *Report) record(category string, outcome Outcome) {
	r.Nodes++
	r.Outcomes[outcome]++
	if outcome == Fallback {
		if r.Fallbacks == nil {
			r.Fallbacks = make(map[string]int)
		}
		r.Fallbacks[category]++
	}
}

// Add accumulates other into r
func (r *Report) Add(other *Report) {
	r.Nodes += other.Nodes
	for i, v := range other.Outcomes {
		r.Outcomes[i] += v
	}
	for cat, v := range other.Fallbacks {
		if r.Fallbacks == nil {
			r.Fallbacks = make(map[string]int)
		}
		r.Fallbacks[cat] += v
	}
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Percolate annotates every phrasal node and pre-terminal of t with its
// head child, children before parents. On a structural error the
// remaining siblings are still processed, the error is returned and the
// offending node and its ancestors are left unannotated, clearing any
// earlier annotation.
func (h *HeadFinder) Percolate(t *nlp.Tree) (*Report, error) {
	report := &Report{}
	if t.IsLeaf() {
		return report, fmt.Errorf("%w: bare token %q at root", ErrInvalidTree, t.Label)
	}
	if len(h.startSymbols) > 0 {
		if root := h.BasicCategory(t.Label); !h.startSymbols[root] {
			report.Warnings = append(report.Warnings, fmt.Errorf("%w: %q", ErrUnknownStartSymbol, t.Label))
		}
	}
	err := h.percolate(t, report)
	return report, err
}

func (h *HeadFinder) percolate(t *nlp.Tree, report *Report) error {
	if t.IsLeaf() {
		return nil
	}
	var first error
	for _, c := range t.Children {
		if err := h.percolate(c, report); err != nil && first == nil {
			first = err
		}
	}
	if first != nil {
		t.SetHead(nlp.NO_HEAD)
		return first
	}
	head, outcome, err := h.DetermineHead(t)
	if err != nil {
		t.SetHead(nlp.NO_HEAD)
		return err
	}
	t.SetHead(head)
	report.record(h.BasicCategory(t.Label), outcome)
	return nil
}

// DetermineHead chooses the head child of t from the labels of its
// children. It does not look below the children and does not modify t.
func (h *HeadFinder) DetermineHead(t *nlp.Tree) (int, Outcome, error) {
	if t.IsLeaf() {
		return nlp.NO_HEAD, Unary, fmt.Errorf("%w: token %q has no head", ErrInvalidTree, t.Label)
	}
	n := len(t.Children)
	if n == 0 {
		return nlp.NO_HEAD, Unary, fmt.Errorf("%w: %q has no children", ErrInvalidTree, t.Label)
	}
	category := h.BasicCategory(t.Label)
	if n == 1 {
		h.observe(category, Unary)
		return 0, Unary, nil
	}
	groups, _ := h.table.Lookup(category)
	cats := make([]string, n)
	for i, c := range t.Children {
		cats[i] = h.BasicCategory(c.Label)
	}
	for _, g := range groups {
		if head, found := locate(cats, g); found {
			h.observe(category, Matched)
			return head, Matched, nil
		}
	}
	h.observe(category, Fallback)
	if h.fallback == RightmostChild {
		return n - 1, Fallback, nil
	}
	return 0, Fallback, nil
}

func (h *HeadFinder) observe(category string, outcome Outcome) {
	if h.metrics != nil {
		h.metrics.Observe(category, outcome)
	}
}

// locate applies a single rule group to the children's base categories
func locate(cats []string, g RuleGroup) (int, bool) {
	n := len(cats)
	if g.Positional() {
		if g.Dir.Leftward() {
			return 0, true
		}
		return n - 1, true
	}
	switch g.Dir {
	case LeftToRight:
		for _, want := range g.Categories {
			for i := 0; i < n; i++ {
				if cats[i] == want {
					return i, true
				}
			}
		}
	case RightToLeft:
		for _, want := range g.Categories {
			for i := n - 1; i >= 0; i-- {
				if cats[i] == want {
					return i, true
				}
			}
		}
	case LeftToRightAny, LeftToRightExcept:
		except := g.Dir == LeftToRightExcept
		for i := 0; i < n; i++ {
			if member(g.Categories, cats[i]) != except {
				return i, true
			}
		}
	case RightToLeftAny, RightToLeftExcept:
		except := g.Dir == RightToLeftExcept
		for i := n - 1; i >= 0; i-- {
			if member(g.Categories, cats[i]) != except {
				return i, true
			}
		}
	}
	return nlp.NO_HEAD, false
}

func member(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
