package trivia

import (
	"errors"
	"fmt"
)

// Kind classifies a failed operation for the transport layer.
type Kind int

const (
	// KindNotFound: the requested resource, page or category set does not exist.
	KindNotFound Kind = iota + 1
	// KindMalformed: required structural input is missing or refers to nothing.
	KindMalformed
	// KindUnprocessable: the request is well formed but could not be carried out.
	KindUnprocessable
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindMalformed:
		return "malformed"
	case KindUnprocessable:
		return "unprocessable"
	default:
		return "unknown"
	}
}

// Error is the only error type the service hands back to handlers.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf extracts the Kind from err. Errors that did not come from the service
// are treated as unprocessable.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnprocessable
}

var (
	errEmptyPage       = errors.New("page has no questions")
	errNoCategories    = errors.New("no categories stored")
	errMissingField    = errors.New("question, answer, difficulty and category are required")
	errUnknownCategory = errors.New("category does not exist")
)
