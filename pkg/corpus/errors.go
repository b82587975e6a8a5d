package corpus

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCorpusUnreadable matches every error returned by Load for a document that
// could not be read, parsed or decoded into its expected structure.
var ErrCorpusUnreadable = errors.New("corpus unreadable")

// UnreadableError describes one unreadable corpus document.
type UnreadableError struct {
	// Path is the document path relative to the corpus root.
	Path string
	Err  error
}

func (e *UnreadableError) Error() string {
	msg := e.Err.Error()
	if e.Path == "" || strings.Contains(msg, e.Path) {
		return msg
	}
	return fmt.Sprintf("%s: %s", e.Path, msg)
}

func (e *UnreadableError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrCorpusUnreadable) hold for every UnreadableError.
func (e *UnreadableError) Is(target error) bool {
	return target == ErrCorpusUnreadable
}

func unreadable(path string, format string, args ...any) *UnreadableError {
	return &UnreadableError{Path: path, Err: fmt.Errorf(format, args...)}
}

// UnreadableDocuments flattens err (a single UnreadableError or an errors.Join
// of them) into the per-document errors it carries.
func UnreadableDocuments(err error) []*UnreadableError {
	if err == nil {
		return nil
	}
	var ue *UnreadableError
	if errors.As(err, &ue) && ue == err {
		return []*UnreadableError{ue}
	}
	var out []*UnreadableError
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			out = append(out, UnreadableDocuments(e)...)
		}
		return out
	}
	if errors.As(err, &ue) {
		return []*UnreadableError{ue}
	}
	return nil
}
