package headfind

import "errors"

var (
	// ErrInvalidTree marks a structural violation, a phrasal node without children
	ErrInvalidTree = errors.New("invalid tree")

	// ErrUnknownStartSymbol is advisory: the root label is not a configured
	// start symbol. It is reported in Report.Warnings and never aborts.
	ErrUnknownStartSymbol = errors.New("unknown start symbol")

	ErrBadRule           = errors.New("bad head rule")
	ErrDuplicateCategory = errors.New("duplicate category definition")
)

// ErrNotAnnotated is returned when reading heads off a tree that has not
// been fully percolated
var ErrNotAnnotated = errors.New("tree not head annotated")
