package captcha

import (
	"errors"
	"fmt"
)

// ErrRetriesExhausted marks a Resolver that used its whole attempt budget
// without an accepted OCR result.
var ErrRetriesExhausted = errors.New("captcha retry budget exhausted")

// Error describes a captcha failure: a fetch that could not produce an
// image, an OCR pass whose result failed the acceptance policy, or an
// exhausted retry budget.
type Error struct {
	// Op is the failing operation: "fetch", "solve" or "resolve".
	Op string

	// Reason is a short human-readable cause.
	Reason string

	// Text is the rejected OCR candidate, when one exists. Kept for
	// diagnostics only.
	Text string

	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("captcha %s: %s", e.Op, e.Reason)
	if e.Text != "" {
		msg += fmt.Sprintf(" (got %q)", e.Text)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }
