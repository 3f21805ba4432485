// Package style implements conditional styling of table cells: declared rule
// sets parsed from text, computed styling snippets, and the resolver that
// combines both into the final attribute set for a single cell.
package style

import (
	"strings"
)

// Attribute names with dedicated meaning to the resolver and renderers.
// Custom rules and snippets may produce arbitrary additional keys.
const (
	AttrBackground = "background"
	AttrForeground = "foreground"
	AttrWeight     = "weight"
	AttrSlant      = "slant"
	AttrUnderline  = "underline"
	AttrStrike     = "strike"
)

// Attr is a single styling attribute pair.
type Attr struct {
	Key   string
	Value string
}

// AttrSet is an ordered collection of styling attributes. Writing a key that
// is already present replaces its value in place, keeping the original
// position: the last writer wins, insertion order is preserved. The zero
// value is an empty set ready for use.
type AttrSet struct {
	attrs []Attr
	index map[string]int
}

// Put stores value under key, replacing any previous value for the same key.
func (s *AttrSet) Put(key, value string) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[key]; ok {
		s.attrs[i].Value = value
		return
	}
	s.index[key] = len(s.attrs)
	s.attrs = append(s.attrs, Attr{Key: key, Value: value})
}

// PutAll stores every pair in order, as if by repeated Put calls.
func (s *AttrSet) PutAll(attrs []Attr) {
	for _, a := range attrs {
		s.Put(a.Key, a.Value)
	}
}

// Get returns the value stored under key.
func (s *AttrSet) Get(key string) (string, bool) {
	if s.index == nil {
		return "", false
	}
	i, ok := s.index[key]
	if !ok {
		return "", false
	}
	return s.attrs[i].Value, true
}

// Len returns the number of attributes in the set.
func (s *AttrSet) Len() int {
	return len(s.attrs)
}

// Attrs returns a copy of the attributes in insertion order.
func (s *AttrSet) Attrs() []Attr {
	if len(s.attrs) == 0 {
		return nil
	}
	out := make([]Attr, len(s.attrs))
	copy(out, s.attrs)
	return out
}

// String renders the set as space separated key=value pairs, for logs and tests.
func (s *AttrSet) String() string {
	var sb strings.Builder
	for i, a := range s.attrs {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(a.Key)
		sb.WriteByte('=')
		sb.WriteString(a.Value)
	}
	return sb.String()
}
