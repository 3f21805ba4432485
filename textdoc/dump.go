package textdoc

import (
	"fmt"
	"strings"

	"tstyle/utils/debug"
)

// Dump renders the parsed document structure for debug output: tables with
// their declarations, cell geometry with spans, and the current marker set.
func (d *Document) Dump() string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "document %q: %d bytes, %d lines, %d tables, %d markers",
		d.name, len(d.text), len(d.lines), len(d.tables), d.markers.Len())
	for i, td := range d.tables {
		tw.Line(1, "table %d: id=%s span=[%d,%d) columns=%d header=%d data=%d",
			i+1, td.id, td.span.Start, td.span.End, td.columns, len(td.header), len(td.data))
		if td.decl.Background != "" {
			tw.TextBlock(2, "background", td.decl.Background)
		}
		if td.decl.Foreground != "" {
			tw.TextBlock(2, "foreground", td.decl.Foreground)
		}
		if td.decl.Custom != "" {
			tw.TextBlock(2, "custom", td.decl.Custom)
		}
		for _, s := range td.decl.Computed {
			tw.TextBlock(2, "computed", s)
		}
		if td.decl.Striped {
			tw.Line(2, "striped: true")
		}
		for ri, r := range td.data {
			tw.Line(2, "row %d (line %d)", ri+1, r.line+1)
			for ci, c := range r.cells {
				label := fmt.Sprintf("cell %d [%d,%d)", ci+1, c.span.Start, c.span.End)
				tw.TextBlock(3, label, c.text)
			}
		}
	}
	for _, m := range d.markers.All() {
		attrs := make([]string, len(m.Attrs))
		for i, a := range m.Attrs {
			attrs[i] = a.Key + "=" + a.Value
		}
		tw.Line(1, "marker [%d,%d) %s: %s", m.Span.Start, m.Span.End, m.Tag, strings.Join(attrs, " "))
	}
	return tw.String()
}
