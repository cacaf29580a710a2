package eval

import (
	"errors"
	"fmt"

	nlp "rutb/nlp/types"
)

var ErrMisaligned = errors.New("test and gold sentences are not aligned")

type AttachmentError struct {
	Token     nlp.TaggedToken
	Index     int
	Got, Want int
}

func (e *AttachmentError) String() string {
	return fmt.Sprintf("%d %s/%s: head %d, gold %d", e.Index, e.Token.Token, e.Token.POS, e.Got, e.Want)
}

func (e *AttachmentError) Class() string {
	return e.Token.POS
}

// Attachment scores the heads of test against gold. Each scored token is
// a TP when its head matches and an FP otherwise, so Precision is the
// unlabeled attachment score. Tokens for which skip returns true are
// not scored.
func Attachment(test, gold *nlp.DependencyGraph, skip func(nlp.TaggedToken) bool) (*Result, error) {
	if len(test.Sent) != len(gold.Sent) || len(test.Arcs) != len(gold.Arcs) {
		return nil, fmt.Errorf("%w: %d tokens vs %d gold", ErrMisaligned, len(test.Sent), len(gold.Sent))
	}
	result := &Result{}
	for i, token := range gold.Sent {
		if test.Sent[i].Token != token.Token {
			return nil, fmt.Errorf("%w: token %d is %q, gold %q", ErrMisaligned, i+1, test.Sent[i].Token, token.Token)
		}
		if skip != nil && skip(token) {
			continue
		}
		got, want := test.Arcs[i].Head, gold.Arcs[i].Head
		if got == want {
			result.TP++
			continue
		}
		result.FP++
		result.Errors = append(result.Errors, &AttachmentError{token, i + 1, got, want})
	}
	return result, nil
}
