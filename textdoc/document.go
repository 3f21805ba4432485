// Package textdoc hosts styled tables inside plain-text documents. A table
// is a run of pipe-delimited lines, optionally preceded by #style directive
// lines declaring its styling attributes. The document tracks byte spans of
// every cell so the styling engine can publish markers over them, owns the
// marker store, and offers structural edit helpers that keep markers and
// subscribers in sync with the text.
package textdoc

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tstyle/table"
)

// Document is a parsed plain-text document. Parsing is permissive: anything
// that is not a table line or a #style directive is prose and stays untouched.
type Document struct {
	name string
	text string
	log  *zap.Logger

	lines   []lineInfo
	tables  []*tableData
	views   []*Table
	markers table.MarkerSet
}

// lineInfo is one physical line: [start,end) excludes the line terminator.
type lineInfo struct {
	start int
	end   int
}

// cellData is one parsed cell: trimmed text and its absolute byte span.
// Empty cells span the whole padding between pipes so styling still has an
// anchor.
type cellData struct {
	text string
	span table.Span
}

// rowData is one table line carrying cells.
type rowData struct {
	line  int // physical line index
	cells []cellData
}

// tableData is the parse snapshot of one pipe table.
type tableData struct {
	id        string
	generated bool // id was synthesized, not declared
	span      table.Span
	lines     []int // physical line indexes of the whole run
	header    []rowData
	data      []rowData
	columns   int
	junction  byte // separator junction character, '+' or '|'
	decl      table.Declarations
}

// Parse builds a document from text. It never fails: malformed directives
// are logged and skipped, everything else is prose.
func Parse(name, text string, log *zap.Logger) *Document {
	if log == nil {
		log = zap.NewNop()
	}
	d := &Document{name: name, text: text, log: log.Named("textdoc")}
	d.reparse()
	return d
}

// Load reads and parses the document at path.
func Load(path string, log *zap.Logger) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read document: %w", err)
	}
	return Parse(path, string(data), log), nil
}

// Name returns the document name, the source path when loaded from disk.
func (d *Document) Name() string {
	return d.name
}

// Text returns the current document text.
func (d *Document) Text() string {
	return d.text
}

// Markers returns the document-level marker store shared by all tables.
func (d *Document) Markers() *table.MarkerSet {
	return &d.markers
}

// Tables returns live views of the document's tables in document order. A
// view stays valid across structural edits: accessors always read the
// current parse.
func (d *Document) Tables() []*Table {
	out := make([]*Table, len(d.tables))
	copy(out, d.views[:len(d.tables)])
	return out
}

// reparse rebuilds the table snapshots from the current text. Synthesized
// table IDs carry over by position so a table keeps its identity across
// edits.
func (d *Document) reparse() {
	old := d.tables
	d.lines = scanLines(d.text)
	d.tables = d.parseTables()
	for i, td := range d.tables {
		if td.generated && i < len(old) && old[i].generated {
			td.id = old[i].id
		}
	}
	for len(d.views) < len(d.tables) {
		d.views = append(d.views, &Table{doc: d, index: len(d.views)})
	}
}

func scanLines(text string) []lineInfo {
	var out []lineInfo
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] != '\n' {
			continue
		}
		end := i
		if end > start && text[end-1] == '\r' {
			end--
		}
		out = append(out, lineInfo{start: start, end: end})
		start = i + 1
	}
	if start < len(text) {
		out = append(out, lineInfo{start: start, end: len(text)})
	}
	return out
}

func (d *Document) parseTables() []*tableData {
	var (
		tables  []*tableData
		pending []directive
	)
	for i := 0; i < len(d.lines); i++ {
		s := d.lineText(i)
		switch {
		case isDirectiveLine(s):
			dir, err := parseDirective(s)
			if err != nil {
				d.log.Warn("Malformed style directive, ignoring", zap.Int("line", i+1), zap.Error(err))
				continue
			}
			pending = append(pending, dir)
		case isTableLine(s):
			run := []int{i}
			for i+1 < len(d.lines) && isTableLine(d.lineText(i+1)) {
				i++
				run = append(run, i)
			}
			tables = append(tables, d.buildTable(run, pending))
			pending = nil
		default:
			if len(pending) > 0 {
				d.log.Warn("Style directives without a following table, ignoring", zap.Int("line", i+1))
				pending = nil
			}
		}
	}
	if len(pending) > 0 {
		d.log.Warn("Style directives at end of document, ignoring")
	}
	return tables
}

func (d *Document) lineText(i int) string {
	ln := d.lines[i]
	return d.text[ln.start:ln.end]
}

// buildTable assembles one table from its physical line run and the
// directives declared above it.
func (d *Document) buildTable(run []int, dirs []directive) *tableData {
	td := &tableData{
		lines:    run,
		span:     table.Span{Start: d.lines[run[0]].start, End: d.lines[run[len(run)-1]].end},
		junction: '+',
	}

	seenSeparator := false
	for _, li := range run {
		s := d.lineText(li)
		if isSeparatorLine(s) {
			if !seenSeparator {
				seenSeparator = true
				if !strings.ContainsRune(s, '+') {
					td.junction = '|'
				}
			}
			continue
		}
		row := rowData{line: li, cells: d.parseCells(li)}
		if seenSeparator {
			td.data = append(td.data, row)
		} else {
			td.header = append(td.header, row)
		}
	}
	// Without a separator there is no header, every row carries data.
	if !seenSeparator {
		td.data, td.header = td.header, nil
	}
	for _, r := range td.header {
		if len(r.cells) > td.columns {
			td.columns = len(r.cells)
		}
	}
	for _, r := range td.data {
		if len(r.cells) > td.columns {
			td.columns = len(r.cells)
		}
	}

	for _, dir := range dirs {
		d.applyDirective(td, dir)
	}
	if td.id == "" {
		td.generated = true
		if id, err := uuid.NewV7(); err == nil {
			td.id = id.String()
		} else {
			d.log.Warn("Unable to generate table ID, falling back to position", zap.Error(err))
			td.id = fmt.Sprintf("table-%d", run[0]+1)
		}
	}
	return td
}

// parseCells splits one table line into cells. The span of a cell is the
// trimmed text between pipes; for empty cells it is the whole padding run so
// the cell still has a styling anchor. Text after the last pipe counts as a
// trailing cell when non-blank.
func (d *Document) parseCells(li int) []cellData {
	ln := d.lines[li]
	first := strings.IndexByte(d.text[ln.start:ln.end], '|')
	if first < 0 {
		return nil
	}
	var cells []cellData
	segStart := ln.start + first + 1
	for pos := segStart; pos <= ln.end; pos++ {
		if pos != ln.end && d.text[pos] != '|' {
			continue
		}
		if pos == ln.end && strings.TrimSpace(d.text[segStart:pos]) == "" {
			break // blank tail after the closing pipe
		}
		ts, te := trimRange(d.text, segStart, pos)
		c := cellData{text: d.text[ts:te], span: table.Span{Start: ts, End: te}}
		if ts == te {
			c.span = table.Span{Start: segStart, End: pos}
		}
		cells = append(cells, c)
		segStart = pos + 1
	}
	return cells
}

func trimRange(text string, a, b int) (int, int) {
	for a < b && (text[a] == ' ' || text[a] == '\t') {
		a++
	}
	for b > a && (text[b-1] == ' ' || text[b-1] == '\t') {
		b--
	}
	return a, b
}

// directive is one parsed #style line.
type directive struct {
	key  string
	rest string
}

const directivePrefix = "#style"

func isDirectiveLine(s string) bool {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, directivePrefix) {
		return false
	}
	rest := t[len(directivePrefix):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\t'
}

func isTableLine(s string) bool {
	return strings.HasPrefix(strings.TrimLeft(s, " \t"), "|")
}

// isSeparatorLine recognizes header and group separators: pipes framing runs
// of dashes with optional +, : and spaces, e.g. |----+----| or |:---|---:|.
func isSeparatorLine(s string) bool {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "|") {
		return false
	}
	dashes := false
	for _, r := range t {
		switch r {
		case '-':
			dashes = true
		case '|', '+', ':', ' ', '\t':
		default:
			return false
		}
	}
	return dashes
}

func parseDirective(s string) (directive, error) {
	rest := strings.TrimSpace(strings.TrimSpace(s)[len(directivePrefix):])
	if rest == "" {
		return directive{}, fmt.Errorf("missing directive key")
	}
	key := rest
	value := ""
	if i := strings.IndexAny(rest, " \t"); i >= 0 {
		key, value = rest[:i], strings.TrimSpace(rest[i+1:])
	}
	return directive{key: key, rest: value}, nil
}

// applyDirective folds one directive into the table declarations. Rule
// categories concatenate on repeat so long rule lists can be split across
// lines.
func (d *Document) applyDirective(td *tableData, dir directive) {
	switch dir.key {
	case "background":
		td.decl.Background = joinDecl(td.decl.Background, dir.rest)
	case "foreground":
		td.decl.Foreground = joinDecl(td.decl.Foreground, dir.rest)
	case "custom":
		td.decl.Custom = joinDecl(td.decl.Custom, dir.rest)
	case "computed":
		td.decl.Computed = append(td.decl.Computed, dir.rest)
	case "striped":
		v, err := strconv.ParseBool(dir.rest)
		if err != nil {
			d.log.Warn("Bad striped directive value, ignoring", zap.String("value", dir.rest))
			return
		}
		td.decl.Striped = v
	case "id":
		if dir.rest == "" {
			d.log.Warn("Empty table id directive, ignoring")
			return
		}
		td.id = dir.rest
	default:
		d.log.Warn("Unknown style directive, ignoring", zap.String("key", dir.key))
	}
}

func joinDecl(old, add string) string {
	if old == "" {
		return add
	}
	if add == "" {
		return old
	}
	return old + " " + add
}
