package headfind

// AnnotationMarks is the set of characters that introduce annotation
// suffixes on category labels (functional tags, indices, split states).
type AnnotationMarks []rune

var DefaultAnnotationMarks = AnnotationMarks{'-', '=', '|', '#', '^', '~', '_'}

func (m AnnotationMarks) Contains(r rune) bool {
	for _, c := range m {
		if c == r {
			return true
		}
	}
	return false
}

// BasicCategory strips annotation from a label, see BasicCategory.
func (m AnnotationMarks) BasicCategory(label string) string {
	return BasicCategory(label, m)
}

// BasicCategory returns the base category of label: the prefix up to the
// first annotation mark. A mark in first position opens a bracketed
// label which is closed by the next occurrence of the same mark, so
// "-NONE-" and "-LRB-" are kept whole while "NP-SBJ-1" becomes "NP".
func BasicCategory(label string, marks AnnotationMarks) string {
	var (
		openedAtZero bool
		opener       rune
	)
	for i, r := range label {
		if !marks.Contains(r) {
			continue
		}
		switch {
		case i == 0:
			openedAtZero, opener = true, r
		case openedAtZero && r == opener:
			openedAtZero = false
		default:
			return label[:i]
		}
	}
	return label
}
