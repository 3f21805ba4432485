package table

import (
	"go.uber.org/zap"

	"tstyle/style"
)

// DefaultTag marks markers owned by a Styler unless configured otherwise.
const DefaultTag = "tstyle"

// Options configure a Styler.
type Options struct {
	// Tag marks published markers. The styler clears only markers bearing
	// it, so foreign annotations survive restyling.
	Tag string
	// KeepOnError parses declarations before clearing, so a syntax error
	// keeps the previous styling. Default is clear-first: a syntax error
	// leaves the table visibly bare.
	KeepOnError bool
	// StrictSnippets aborts a pass on the first snippet failure instead of
	// collecting failures in the result.
	StrictSnippets bool
	// StripeBackground overrides the built-in stripe color.
	StripeBackground string
}

// Result summarizes one restyle pass over one table.
type Result struct {
	Rows          int
	Columns       int
	Cells         int // cells visited
	Published     int // markers published
	Skipped       int // cells skipped for missing spans
	SnippetErrors []*style.SnippetError
}

// Styler drives full-table restyle passes: clear own markers, parse the
// declarations fresh, resolve every cell, publish non-empty styles. A Styler
// is reusable across tables and passes but not safe for concurrent use with
// a shared sink.
type Styler struct {
	opts   Options
	parser *style.Parser
	log    *zap.Logger
}

// NewStyler creates a styling driver.
func NewStyler(opts Options, log *zap.Logger) *Styler {
	if opts.Tag == "" {
		opts.Tag = DefaultTag
	}
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("styler")
	return &Styler{opts: opts, parser: style.NewParser(log), log: log}
}

// Tag returns the marker ownership tag.
func (s *Styler) Tag() string {
	return s.opts.Tag
}

// Restyle runs one full pass over t, publishing into sink. The pass is
// idempotent: the same table and declarations produce the same markers.
// Cells without a span are skipped silently and counted; snippet failures
// follow the configured policy. A *style.SyntaxError aborts the pass.
func (s *Styler) Restyle(t Table, sink Sink) (*Result, error) {
	decl := t.Declarations()

	var (
		rules    *style.RuleSet
		snippets []style.Snippet
	)
	parseDecl := func() error {
		var err error
		if rules, err = s.parser.ParseRuleSet(decl.Background, decl.Foreground, decl.Custom); err != nil {
			return err
		}
		snippets, err = style.CompileSnippets(decl.Computed, decl.Striped, s.opts.StripeBackground)
		return err
	}

	if s.opts.KeepOnError {
		if err := parseDecl(); err != nil {
			return nil, err
		}
		sink.ClearMarkers(s.opts.Tag)
	} else {
		sink.ClearMarkers(s.opts.Tag)
		if err := parseDecl(); err != nil {
			return nil, err
		}
	}

	resolver := style.NewResolver(rules, snippets, style.Options{
		StrictSnippets:   s.opts.StrictSnippets,
		StripeBackground: s.opts.StripeBackground,
	}, s.log)

	res := &Result{Rows: t.RowCount(), Columns: t.ColumnCount()}
	for row := 1; row <= res.Rows; row++ {
		for column := 1; column <= res.Columns; column++ {
			res.Cells++
			span, ok := t.CellSpan(row, column)
			if !ok {
				res.Skipped++
				s.log.Debug("No span for cell, skipping", zap.Int("row", row), zap.Int("column", column))
				continue
			}
			set, err := resolver.Resolve(row, column, t.CellText(row, column))
			if err != nil {
				return nil, err
			}
			if set.Len() == 0 {
				continue
			}
			sink.PublishMarker(Marker{Span: span, Tag: s.opts.Tag, Attrs: set.Attrs()})
			res.Published++
		}
	}
	res.SnippetErrors = resolver.SnippetErrors()

	s.log.Debug("Restyled table",
		zap.Int("rows", res.Rows),
		zap.Int("columns", res.Columns),
		zap.Int("published", res.Published),
		zap.Int("skipped", res.Skipped),
		zap.Int("snippetErrors", len(res.SnippetErrors)))
	return res, nil
}

// Watch subscribes a restyle pass to the host's structural-edit
// notifications; cancel unsubscribes. A failed pass is logged, not
// propagated: the next edit runs a fresh one anyway.
func (s *Styler) Watch(t Table, sink Sink, n Notifier) (cancel func()) {
	return n.Subscribe(func(e Edit) {
		if _, err := s.Restyle(t, sink); err != nil {
			s.log.Warn("Restyle after edit failed",
				zap.Stringer("edit", e.Kind), zap.Int("index", e.Index), zap.Error(err))
		}
	})
}
