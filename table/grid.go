// Package table defines the host-facing contracts of the styling engine
// (grids, declarations, markers, sinks, edit notifications) and the driver
// that restyles whole tables through them.
package table

import (
	"tstyle/style"
)

// Span is a half-open byte-offset range [Start, End) in the host document.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int {
	return s.End - s.Start
}

// Contains reports whether o lies entirely within s.
func (s Span) Contains(o Span) bool {
	return o.Start >= s.Start && o.End <= s.End
}

// Grid is the host's cell accessor. Rows and columns are 1-based over data
// cells; header and separator lines are not addressable. For structurally
// missing cells CellText must return "" and CellSpan must report false.
type Grid interface {
	RowCount() int
	ColumnCount() int
	CellText(row, column int) string
	CellSpan(row, column int) (Span, bool)
}

// Declarations are the raw declared styling attributes of one table, exactly
// as the host read them. They are parsed fresh inside every restyle pass,
// never cached across edits.
type Declarations struct {
	Background string   // background rule tuples
	Foreground string   // foreground rule tuples
	Custom     string   // custom rule tuples
	Computed   []string // computed snippet bodies, one per declaration
	Striped    bool     // enable the built-in even-row stripe
}

// Empty reports whether nothing at all was declared.
func (d Declarations) Empty() bool {
	return d.Background == "" && d.Foreground == "" && d.Custom == "" &&
		len(d.Computed) == 0 && !d.Striped
}

// Table is a grid together with its declared styling attributes.
type Table interface {
	Grid
	Declarations() Declarations
}

// Marker is one published visual annotation: an attribute set anchored to a
// document span, owned by the publishing tag.
type Marker struct {
	Span  Span
	Tag   string
	Attrs []style.Attr
}

// Sink receives marker operations from the driver. ClearMarkers removes only
// markers bearing the given tag; markers published under foreign tags are
// none of the driver's business and must survive.
type Sink interface {
	ClearMarkers(tag string)
	PublishMarker(m Marker)
}
