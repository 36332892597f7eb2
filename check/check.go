// Package check collects design-time remarks about a step's configuration.
package check

import "fmt"

// Severity ranks a remark.
type Severity int

const (
	SeverityOK Severity = iota + 1
	SeverityComment
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityOK:
		return "OK"
	case SeverityComment:
		return "COMMENT"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Remark is one advisory result.
type Remark struct {
	Severity Severity
	Text     string
	Source   string // step the remark is about
}

func (r Remark) String() string {
	if r.Source == "" {
		return fmt.Sprintf("[%s] %s", r.Severity, r.Text)
	}
	return fmt.Sprintf("[%s] %s: %s", r.Severity, r.Source, r.Text)
}

// Sink receives remarks.
type Sink interface {
	Add(r Remark)
}

// List is a Sink that keeps remarks in arrival order.
type List []Remark

var _ Sink = (*List)(nil)

// Add appends r.
func (l *List) Add(r Remark) {
	*l = append(*l, r)
}

// HasErrors reports whether any remark has SeverityError.
func (l List) HasErrors() bool {
	for _, r := range l {
		if r.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Count returns how many remarks have severity s.
func (l List) Count(s Severity) int {
	n := 0
	for _, r := range l {
		if r.Severity == s {
			n++
		}
	}
	return n
}
