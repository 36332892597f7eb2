// Package params holds the named string parameters that configure the XES
// export step.
//
// The vocabulary is fixed: nine names in a fixed declaration order. Every
// parameter is optional and opaque; a name that was never set is absent,
// which is distinct from a name set to the empty string.
package params

import (
	"fmt"
	"maps"
)

// Name identifies one recognized parameter.
type Name string

// Recognized parameter names, in declaration order.
const (
	ProcessInstance Name = "ProcessInstance"
	Activity        Name = "Activity"
	Lifecycle       Name = "Lifecycle"
	Resource        Name = "Resource"
	Role            Name = "Role"
	Group           Name = "Group"
	OutputPath      Name = "OutputPath"
	Timestamp       Name = "Timestamp"
	TimestampRegex  Name = "TimestampRegex"
)

var names = [...]Name{
	ProcessInstance,
	Activity,
	Lifecycle,
	Resource,
	Role,
	Group,
	OutputPath,
	Timestamp,
	TimestampRegex,
}

// Names returns the recognized names in declaration order.
func Names() []Name {
	out := make([]Name, len(names))
	copy(out, names[:])
	return out
}

// Valid reports whether n is a recognized name.
func (n Name) Valid() bool {
	for _, known := range names {
		if n == known {
			return true
		}
	}
	return false
}

func (n Name) String() string { return string(n) }

// Parse returns the Name for s if it is recognized.
func Parse(s string) (Name, bool) {
	n := Name(s)
	return n, n.Valid()
}

// Set maps recognized names to their configured values.
// The zero value is not usable; call New.
type Set struct {
	values map[Name]string
}

// New returns an empty Set.
func New() *Set {
	return &Set{values: make(map[Name]string, len(names))}
}

// FromMap builds a Set from plain string keys. Unknown keys are rejected.
func FromMap(m map[string]string) (*Set, error) {
	s := New()
	for k, v := range m {
		if err := s.Set(Name(k), v); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Get returns the value stored for n and whether it is present.
func (s *Set) Get(n Name) (string, bool) {
	v, ok := s.values[n]
	return v, ok
}

// Set stores v under n. The value is never inspected.
func (s *Set) Set(n Name, v string) error {
	if !n.Valid() {
		return fmt.Errorf("params: unknown parameter %q", n)
	}
	s.values[n] = v
	return nil
}

// Delete makes n absent.
func (s *Set) Delete(n Name) {
	delete(s.values, n)
}

// Has reports whether n is present.
func (s *Set) Has(n Name) bool {
	_, ok := s.values[n]
	return ok
}

// Len returns the number of present parameters.
func (s *Set) Len() int {
	return len(s.values)
}

// Map returns a copy of the present parameters keyed by plain strings.
func (s *Set) Map() map[string]string {
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[string(k)] = v
	}
	return out
}

// Replace discards the current contents and copies every entry of other.
// A nil other leaves the set empty.
func (s *Set) Replace(other *Set) {
	s.values = make(map[Name]string, len(names))
	if other == nil {
		return
	}
	maps.Copy(s.values, other.values)
}

// Clone returns an independent copy of s.
func (s *Set) Clone() *Set {
	c := New()
	maps.Copy(c.values, s.values)
	return c
}

// Equal reports whether both sets hold the same names with the same values.
func (s *Set) Equal(other *Set) bool {
	if other == nil {
		return s.Len() == 0
	}
	return maps.Equal(s.values, other.values)
}

// Each calls fn for every present parameter in declaration order.
func (s *Set) Each(fn func(Name, string)) {
	for _, n := range names {
		if v, ok := s.values[n]; ok {
			fn(n, v)
		}
	}
}
