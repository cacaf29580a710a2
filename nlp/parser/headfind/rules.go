package headfind

import (
	"fmt"
	"strings"
)

// Direction of a rule group's scan over a node's children
type Direction int

const (
	LeftToRight Direction = iota
	RightToLeft
	LeftToRightAny
	RightToLeftAny
	LeftToRightExcept
	RightToLeftExcept
)

var directionTokens = map[string]Direction{
	"left":        LeftToRight,
	"right":       RightToLeft,
	"leftdis":     LeftToRightAny,
	"rightdis":    RightToLeftAny,
	"leftexcept":  LeftToRightExcept,
	"rightexcept": RightToLeftExcept,
}

var directionNames = [...]string{"left", "right", "leftdis", "rightdis", "leftexcept", "rightexcept"}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

func (d Direction) Leftward() bool {
	return d == LeftToRight || d == LeftToRightAny || d == LeftToRightExcept
}

func ParseDirection(token string) (Direction, error) {
	d, exists := directionTokens[token]
	if !exists {
		return 0, fmt.Errorf("%w: unknown direction %q", ErrBadRule, token)
	}
	return d, nil
}

// A RuleGroup is one directional search instruction. A group with an
// empty candidate list is positional: it selects the first child in its
// direction and always matches.
type RuleGroup struct {
	Dir        Direction
	Categories []string
}

func Left(cats ...string) RuleGroup        { return RuleGroup{LeftToRight, cats} }
func Right(cats ...string) RuleGroup       { return RuleGroup{RightToLeft, cats} }
func LeftDis(cats ...string) RuleGroup     { return RuleGroup{LeftToRightAny, cats} }
func RightDis(cats ...string) RuleGroup    { return RuleGroup{RightToLeftAny, cats} }
func LeftExcept(cats ...string) RuleGroup  { return RuleGroup{LeftToRightExcept, cats} }
func RightExcept(cats ...string) RuleGroup { return RuleGroup{RightToLeftExcept, cats} }

func (g RuleGroup) Positional() bool {
	return len(g.Categories) == 0
}

// Tokens returns the group in its string form, direction token first
func (g RuleGroup) Tokens() []string {
	retval := make([]string, 0, len(g.Categories)+1)
	retval = append(retval, g.Dir.String())
	return append(retval, g.Categories...)
}

func (g RuleGroup) String() string {
	return "{" + strings.Join(g.Tokens(), " ") + "}"
}

// ParseRuleGroup reads a group from its string form, e.g.
// {"leftdis", "NOUN", "PRON"} or {"right"}.
func ParseRuleGroup(tokens []string) (RuleGroup, error) {
	if len(tokens) == 0 {
		return RuleGroup{}, fmt.Errorf("%w: empty rule group", ErrBadRule)
	}
	dir, err := ParseDirection(tokens[0])
	if err != nil {
		return RuleGroup{}, err
	}
	var cats []string
	for _, cat := range tokens[1:] {
		if cat == "" {
			return RuleGroup{}, fmt.Errorf("%w: empty category in %v", ErrBadRule, tokens)
		}
		cats = append(cats, cat)
	}
	if len(cats) == 0 && (dir != LeftToRight && dir != RightToLeft) {
		return RuleGroup{}, fmt.Errorf("%w: %s requires at least one category", ErrBadRule, dir)
	}
	return RuleGroup{dir, cats}, nil
}

func ParseRuleGroups(specs [][]string) ([]RuleGroup, error) {
	groups := make([]RuleGroup, len(specs))
	for i, spec := range specs {
		g, err := ParseRuleGroup(spec)
		if err != nil {
			return nil, err
		}
		groups[i] = g
	}
	return groups, nil
}

// An Overwrite records a Define that replaced an earlier definition
type Overwrite struct {
	Category          string
	Previous, Current []RuleGroup
}

func (o Overwrite) String() string {
	return fmt.Sprintf("%s: %v replaced by %v", o.Category, o.Previous, o.Current)
}

// RuleTable maps base categories to ordered rule groups.
// It is immutable once built and safe for concurrent use.
type RuleTable struct {
	rules      map[string][]RuleGroup
	order      []string
	overwrites []Overwrite
}

// Lookup returns the rule groups of a base category. A missing entry is
// not an error: the caller applies its default rule.
// The returned slice is shared and must not be modified.
func (r *RuleTable) Lookup(category string) ([]RuleGroup, bool) {
	if r == nil {
		return nil, false
	}
	groups, exists := r.rules[category]
	return groups, exists
}

// Categories returns the defined categories in first-definition order
func (r *RuleTable) Categories() []string {
	retval := make([]string, len(r.order))
	copy(retval, r.order)
	return retval
}

func (r *RuleTable) Len() int {
	return len(r.order)
}

// Overwrites returns every definition that was replaced while building
func (r *RuleTable) Overwrites() []Overwrite {
	retval := make([]Overwrite, len(r.overwrites))
	copy(retval, r.overwrites)
	return retval
}

// Builder assembles a RuleTable. Define replaces an existing entry
// (last write wins) and records the replacement; Append accumulates.
// A strict builder refuses to build a table with replacements.
type Builder struct {
	Strict bool

	rules      map[string][]RuleGroup
	order      []string
	overwrites []Overwrite
}

func NewBuilder(strict bool) *Builder {
	return &Builder{
		Strict: strict,
		rules:  make(map[string][]RuleGroup),
	}
}

func (b *Builder) Define(category string, groups ...RuleGroup) *Builder {
	current := cloneGroups(groups)
	if previous, exists := b.rules[category]; exists {
		b.overwrites = append(b.overwrites, Overwrite{category, previous, current})
	} else {
		b.order = append(b.order, category)
	}
	b.rules[category] = current
	return b
}

func (b *Builder) Append(category string, groups ...RuleGroup) *Builder {
	previous, exists := b.rules[category]
	if !exists {
		b.order = append(b.order, category)
	}
	b.rules[category] = append(cloneGroups(previous), cloneGroups(groups)...)
	return b
}

// DefineTokens is Define over the string form of rule groups
func (b *Builder) DefineTokens(category string, specs [][]string) error {
	groups, err := ParseRuleGroups(specs)
	if err != nil {
		return fmt.Errorf("category %s: %w", category, err)
	}
	b.Define(category, groups...)
	return nil
}

func (b *Builder) AppendTokens(category string, specs [][]string) error {
	groups, err := ParseRuleGroups(specs)
	if err != nil {
		return fmt.Errorf("category %s: %w", category, err)
	}
	b.Append(category, groups...)
	return nil
}

func (b *Builder) Overwrites() []Overwrite {
	return b.overwrites
}

func (b *Builder) Build() (*RuleTable, error) {
	if b.Strict && len(b.overwrites) > 0 {
		cats := make([]string, len(b.overwrites))
		for i, o := range b.overwrites {
			cats[i] = o.Category
		}
		return nil, fmt.Errorf("%w: %s", ErrDuplicateCategory, strings.Join(cats, ", "))
	}
	table := &RuleTable{
		rules:      make(map[string][]RuleGroup, len(b.rules)),
		order:      make([]string, len(b.order)),
		overwrites: make([]Overwrite, len(b.overwrites)),
	}
	for cat, groups := range b.rules {
		table.rules[cat] = cloneGroups(groups)
	}
	copy(table.order, b.order)
	copy(table.overwrites, b.overwrites)
	return table, nil
}

func cloneGroups(groups []RuleGroup) []RuleGroup {
	retval := make([]RuleGroup, len(groups))
	for i, g := range groups {
		retval[i] = RuleGroup{Dir: g.Dir}
		if g.Categories != nil {
			retval[i].Categories = make([]string, len(g.Categories))
			copy(retval[i].Categories, g.Categories)
		}
	}
	return retval
}
