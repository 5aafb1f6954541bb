package crucible

import (
	"errors"
	"fmt"
	"strings"
)

// Severity ranks a validation Error. Only Fatal blocks validity; Warning and
// Info are advisory.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "Info"
	case SeverityWarning:
		return "Warning"
	case SeverityFatal:
		return "Fatal"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Error represents a single validation entry.
type Error struct {
	Message  string
	Severity Severity
}

// String renders the entry as "[<Severity>] <message>".
func (e Error) String() string {
	return "[" + e.Severity.String() + "] " + e.Message
}

// ErrorList is an ordered collection of validation entries that implements
// error. Validation never throws; every problem found in a run accumulates
// here.
type ErrorList []Error

// Error summarizes the first few entries.
func (el ErrorList) Error() string {
	if len(el) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(el)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(el[i].String())
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AnyFatal reports whether the list contains at least one Fatal entry. A run
// is valid exactly when AnyFatal over its result is false; the predicate
// depends only on the list, never on engine state.
func AnyFatal(el ErrorList) bool {
	for _, e := range el {
		if e.Severity == SeverityFatal {
			return true
		}
	}
	return false
}

// AppendErrors appends entries to the destination, initializing the slice
// when needed.
func AppendErrors(dst ErrorList, more ...Error) ErrorList {
	if dst == nil {
		dst = ErrorList{}
	}
	dst = append(dst, more...)
	return dst
}

// AsErrorList extracts an ErrorList from an error using errors.As internally.
func AsErrorList(err error) (ErrorList, bool) {
	if err == nil {
		return nil, false
	}
	var el ErrorList
	if errors.As(err, &el) {
		return el, true
	}
	return nil, false
}

func fatalf(format string, args ...any) Error {
	return Error{Message: fmt.Sprintf(format, args...), Severity: SeverityFatal}
}

func warnf(format string, args ...any) Error {
	return Error{Message: fmt.Sprintf(format, args...), Severity: SeverityWarning}
}

func infof(format string, args ...any) Error {
	return Error{Message: fmt.Sprintf(format, args...), Severity: SeverityInfo}
}
