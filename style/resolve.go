package style

import (
	"errors"

	"go.uber.org/zap"
)

// Options control evaluation policy for one styling pass.
type Options struct {
	// StrictSnippets aborts resolution on the first snippet failure instead
	// of skipping that snippet's contribution for the cell.
	StrictSnippets bool
	// StripeBackground overrides the background color of the built-in
	// striped snippet. Empty means StripeDefault.
	StripeBackground string
}

// Resolver computes the final attribute set of single cells from parsed
// rules and compiled snippets. It keeps error bookkeeping between cells and
// must not be shared by concurrent passes.
type Resolver struct {
	rules    *RuleSet
	snippets []Snippet
	strict   bool
	log      *zap.Logger
	soft     []*SnippetError
}

// NewResolver creates a resolver over one table's parsed declarations.
func NewResolver(rules *RuleSet, snippets []Snippet, opts Options, log *zap.Logger) *Resolver {
	if rules == nil {
		rules = &RuleSet{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{
		rules:    rules,
		snippets: snippets,
		strict:   opts.StrictSnippets,
		log:      log.Named("resolver"),
	}
}

// Resolve computes the attribute set for the cell at (row, column) holding
// text. Write order is fixed: computed snippets seed the set, then the first
// matching background rule, the first matching foreground rule, and every
// matching custom rule in declaration order. Later writes win on key
// collisions. An empty set means the cell stays unstyled.
func (rv *Resolver) Resolve(row, column int, text string) (*AttrSet, error) {
	set := &AttrSet{}

	for i := range rv.snippets {
		attrs, err := rv.snippets[i].Eval(row, column, text)
		if err != nil {
			if rv.strict {
				return nil, err
			}
			var serr *SnippetError
			if errors.As(err, &serr) {
				rv.soft = append(rv.soft, serr)
			}
			rv.log.Warn("Snippet failed, skipping its contribution", zap.Error(err))
			continue
		}
		set.PutAll(attrs)
	}

	for i := range rv.rules.Background {
		if r := &rv.rules.Background[i]; r.Applicable(row, column, text) {
			set.Put(AttrBackground, r.Color)
			break
		}
	}
	for i := range rv.rules.Foreground {
		if r := &rv.rules.Foreground[i]; r.Applicable(row, column, text) {
			set.Put(AttrForeground, r.Color)
			break
		}
	}
	for i := range rv.rules.Custom {
		if r := &rv.rules.Custom[i]; r.Applicable(row, column, text) {
			set.PutAll(r.Attrs)
		}
	}
	return set, nil
}

// SnippetErrors returns the snippet failures skipped so far, in encounter
// order. Empty unless running with fail-soft snippets.
func (rv *Resolver) SnippetErrors() []*SnippetError {
	return rv.soft
}
