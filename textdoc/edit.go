package textdoc

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"tstyle/table"
)

// Structural edit helpers. Every edit mutates the document text, shifts
// stored markers along with it, reparses, and only then notifies the table's
// subscribers, so a subscribed restyle pass always sees the new structure.
// Column operations and realignment rewrite the whole table block; markers
// covering rewritten text are dropped and have to be republished.

// InsertRow inserts a data row before 1-based position at; at may be one
// past the last row to append. Cells are padded to the current column
// widths; extra cells extend the table.
func (t *Table) InsertRow(at int, cells []string) error {
	td := t.snapshot()
	if td == nil {
		return fmt.Errorf("table no longer exists")
	}
	if at < 1 || at > len(td.data)+1 {
		return fmt.Errorf("row %d out of range (1..%d)", at, len(td.data)+1)
	}
	line := pipeLine(cells, td.widths(cells))
	if at <= len(td.data) {
		off := t.doc.lines[td.data[at-1].line].start
		t.doc.replaceRange(off, off, line+"\n")
	} else {
		off := t.doc.lines[td.lines[len(td.lines)-1]].end
		t.doc.replaceRange(off, off, "\n"+line)
	}
	t.doc.reparse()
	t.doc.log.Debug("Inserted row", zap.String("table", td.id), zap.Int("row", at))
	t.feed.Notify(table.Edit{Kind: table.EditRowInsert, Index: at})
	return nil
}

// DeleteRow removes the 1-based data row at. Markers on the removed line are
// dropped.
func (t *Table) DeleteRow(at int) error {
	td := t.snapshot()
	if td == nil {
		return fmt.Errorf("table no longer exists")
	}
	if at < 1 || at > len(td.data) {
		return fmt.Errorf("row %d out of range (1..%d)", at, len(td.data))
	}
	ln := t.doc.lines[td.data[at-1].line]
	a, b := ln.start, ln.end
	if b < len(t.doc.text) && t.doc.text[b] == '\r' {
		b++
	}
	if b < len(t.doc.text) && t.doc.text[b] == '\n' {
		b++
	} else if a > 0 && t.doc.text[a-1] == '\n' {
		// Last line of the document: swallow the preceding terminator.
		a--
		if a > 0 && t.doc.text[a-1] == '\r' {
			a--
		}
	}
	t.doc.replaceRange(a, b, "")
	t.doc.reparse()
	t.doc.log.Debug("Deleted row", zap.String("table", td.id), zap.Int("row", at))
	t.feed.Notify(table.Edit{Kind: table.EditRowDelete, Index: at})
	return nil
}

// InsertColumn inserts a column before 1-based position at; at may be one
// past the last column to append. Values fill the table rows top to bottom,
// header first, separators skipped; missing values become empty cells. The
// whole block is rewritten aligned.
func (t *Table) InsertColumn(at int, values []string) error {
	td := t.snapshot()
	if td == nil {
		return fmt.Errorf("table no longer exists")
	}
	if at < 1 || at > td.columns+1 {
		return fmt.Errorf("column %d out of range (1..%d)", at, td.columns+1)
	}
	w := 0
	for _, v := range values {
		if n := utf8.RuneCountInString(v); n > w {
			w = n
		}
	}
	widths := td.widths()
	widths = append(widths[:at-1], append([]int{w}, widths[at-1:]...)...)
	t.rewrite(td, widths, func(i int, texts []string) []string {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		out := make([]string, 0, len(texts)+1)
		out = append(out, texts[:at-1]...)
		out = append(out, v)
		return append(out, texts[at-1:]...)
	})
	t.doc.log.Debug("Inserted column", zap.String("table", td.id), zap.Int("column", at))
	t.feed.Notify(table.Edit{Kind: table.EditColumnInsert, Index: at})
	return nil
}

// DeleteColumn removes the 1-based column at from every row. The whole block
// is rewritten aligned.
func (t *Table) DeleteColumn(at int) error {
	td := t.snapshot()
	if td == nil {
		return fmt.Errorf("table no longer exists")
	}
	if at < 1 || at > td.columns {
		return fmt.Errorf("column %d out of range (1..%d)", at, td.columns)
	}
	widths := td.widths()
	widths = append(widths[:at-1], widths[at:]...)
	t.rewrite(td, widths, func(_ int, texts []string) []string {
		return append(texts[:at-1], texts[at:]...)
	})
	t.doc.log.Debug("Deleted column", zap.String("table", td.id), zap.Int("column", at))
	t.feed.Notify(table.Edit{Kind: table.EditColumnDelete, Index: at})
	return nil
}

// Realign rewrites the table block with uniform column widths and rebuilt
// separators.
func (t *Table) Realign() error {
	td := t.snapshot()
	if td == nil {
		return fmt.Errorf("table no longer exists")
	}
	t.rewrite(td, td.widths(), func(_ int, texts []string) []string {
		return texts
	})
	t.doc.log.Debug("Realigned table", zap.String("table", td.id))
	t.feed.Notify(table.Edit{Kind: table.EditRealign})
	return nil
}

// rewrite replaces the table block with lines rebuilt through transform,
// which receives the padded cell texts of each non-separator row in physical
// order, and reparses.
func (t *Table) rewrite(td *tableData, widths []int, transform func(i int, texts []string) []string) {
	rows := make(map[int][]string, len(td.header)+len(td.data))
	for _, r := range td.header {
		rows[r.line] = cellTexts(r, td.columns)
	}
	for _, r := range td.data {
		rows[r.line] = cellTexts(r, td.columns)
	}
	lines := make([]string, 0, len(td.lines))
	i := 0
	for _, li := range td.lines {
		texts, ok := rows[li]
		if !ok {
			lines = append(lines, separatorLine(widths, td.junction))
			continue
		}
		lines = append(lines, pipeLine(transform(i, texts), widths))
		i++
	}
	t.doc.replaceRange(td.span.Start, td.span.End, strings.Join(lines, "\n"))
	t.doc.reparse()
}

// replaceRange splices text and keeps stored markers aligned with the edit.
func (d *Document) replaceRange(a, b int, repl string) {
	if a != b {
		d.markers.Adjust(a, -(b - a))
	}
	d.text = d.text[:a] + repl + d.text[b:]
	if repl != "" {
		d.markers.Adjust(a, len(repl))
	}
}

// widths returns per-column maximum rune widths over all rows, extended by
// the optional extra rows.
func (td *tableData) widths(extra ...[]string) []int {
	n := td.columns
	for _, row := range extra {
		if len(row) > n {
			n = len(row)
		}
	}
	w := make([]int, n)
	upd := func(i int, s string) {
		if c := utf8.RuneCountInString(s); c > w[i] {
			w[i] = c
		}
	}
	for _, r := range td.header {
		for i, c := range r.cells {
			upd(i, c.text)
		}
	}
	for _, r := range td.data {
		for i, c := range r.cells {
			upd(i, c.text)
		}
	}
	for _, row := range extra {
		for i, s := range row {
			upd(i, s)
		}
	}
	return w
}

func cellTexts(r rowData, n int) []string {
	out := make([]string, n)
	for i := range r.cells {
		if i < n {
			out[i] = r.cells[i].text
		}
	}
	return out
}

func pipeLine(cells []string, widths []int) string {
	var b strings.Builder
	b.WriteByte('|')
	for i, w := range widths {
		var c string
		if i < len(cells) {
			c = cells[i]
		}
		b.WriteByte(' ')
		b.WriteString(c)
		for n := utf8.RuneCountInString(c); n < w; n++ {
			b.WriteByte(' ')
		}
		b.WriteString(" |")
	}
	if len(widths) == 0 {
		b.WriteByte('|')
	}
	return b.String()
}

func separatorLine(widths []int, junction byte) string {
	var b strings.Builder
	b.WriteByte('|')
	for i, w := range widths {
		b.WriteString(strings.Repeat("-", w+2))
		if i < len(widths)-1 && junction == '+' {
			b.WriteByte('+')
		} else {
			b.WriteByte('|')
		}
	}
	if len(widths) == 0 {
		b.WriteByte('|')
	}
	return b.String()
}
