// Package render projects published style markers onto output surfaces: ANSI
// terminal text, a standalone HTML document, and a YAML marker dump. All
// renderers consume the same input, tables paired with the markers the
// styling engine published for them.
package render

import (
	"io"

	"tstyle/style"
	"tstyle/table"
)

// Styled pairs a table with the markers published over its cells.
type Styled struct {
	ID      string
	Table   table.Table
	Markers []table.Marker
}

// Renderer emits the styled tables of one document onto w. The name is the
// document identity, used for titles and dump headers.
type Renderer interface {
	Render(w io.Writer, name string, tables []Styled) error
}

// HeaderProvider is implemented by hosts exposing header cells; renderers
// surface headers when available.
type HeaderProvider interface {
	Headers() []string
}

// attrsBySpan indexes marker attributes by their exact span. Cell lookup
// relies on the driver publishing markers at cell spans, which holds as long
// as rendering follows restyling without edits in between.
func attrsBySpan(markers []table.Marker) map[table.Span][]style.Attr {
	out := make(map[table.Span][]style.Attr, len(markers))
	for _, m := range markers {
		out[m.Span] = m.Attrs
	}
	return out
}
