package style

import (
	"fmt"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// StripeDefault is the background color of the built-in striped snippet when
// no override is configured.
const StripeDefault = "#3a3a3a"

const stripedName = "striped"

// Snippet is one computed styling snippet, evaluated per cell. It is either
// the built-in striped snippet or a compiled user expression receiving row,
// column and text.
type Snippet struct {
	name    string
	program *vm.Program
	builtin func(row, column int, text string) []Attr
}

// Name returns the snippet name used in errors and logs.
func (s *Snippet) Name() string {
	return s.name
}

// snippetEnv builds the evaluation environment for one cell. The same shape
// is used at compile time, so unknown identifiers fail the compile.
func snippetEnv(row, column int, text string) map[string]any {
	return map[string]any{
		"row":    row,
		"column": column,
		"text":   text,
	}
}

// Striped returns the built-in even-row snippet: the given background color
// on even row indices, nothing on odd ones.
func Striped(color string) Snippet {
	if color == "" {
		color = StripeDefault
	}
	return Snippet{
		name: stripedName,
		builtin: func(row, _ int, _ string) []Attr {
			if row%2 != 0 {
				return nil
			}
			return []Attr{{Key: AttrBackground, Value: color}}
		},
	}
}

// CompileSnippet compiles one user snippet body. Compilation failures are
// declaration errors, reported as *SyntaxError under the "computed" category.
func CompileSnippet(name, body string) (Snippet, error) {
	program, err := expr.Compile(body, expr.Env(snippetEnv(0, 0, "")))
	if err != nil {
		return Snippet{}, &SyntaxError{Category: "computed", Raw: body, Err: err}
	}
	return Snippet{name: name, program: program}, nil
}

// CompileSnippets builds the ordered snippet list for one table: the striped
// snippet first when enabled, then one snippet per declared body.
func CompileSnippets(bodies []string, striped bool, stripeColor string) ([]Snippet, error) {
	var snippets []Snippet
	if striped {
		snippets = append(snippets, Striped(stripeColor))
	}
	for i, body := range bodies {
		s, err := CompileSnippet(fmt.Sprintf("computed[%d]", i), body)
		if err != nil {
			return nil, err
		}
		snippets = append(snippets, s)
	}
	return snippets, nil
}

// Eval runs the snippet for one cell and converts the result into attribute
// pairs. nil and false mean no contribution; a flat even-length list is
// key/value pairs in order; a map contributes its pairs sorted by key for
// determinism. Anything else is a *SnippetError.
func (s *Snippet) Eval(row, column int, text string) ([]Attr, error) {
	if s.builtin != nil {
		return s.builtin(row, column, text), nil
	}
	out, err := expr.Run(s.program, snippetEnv(row, column, text))
	if err != nil {
		return nil, &SnippetError{Snippet: s.name, Row: row, Column: column, Err: err}
	}
	attrs, err := snippetAttrs(out)
	if err != nil {
		return nil, &SnippetError{Snippet: s.name, Row: row, Column: column, Err: err}
	}
	return attrs, nil
}

func snippetAttrs(out any) ([]Attr, error) {
	switch v := out.(type) {
	case nil:
		return nil, nil
	case bool:
		if !v {
			return nil, nil
		}
		return nil, fmt.Errorf("result true carries no attributes, want a list or a map")
	case []any:
		if len(v)%2 != 0 {
			return nil, fmt.Errorf("attribute list has odd length %d", len(v))
		}
		attrs := make([]Attr, 0, len(v)/2)
		for i := 0; i < len(v); i += 2 {
			key, ok := v[i].(string)
			if !ok {
				return nil, fmt.Errorf("attribute key %v is not a string", v[i])
			}
			attrs = append(attrs, Attr{Key: key, Value: fmt.Sprint(v[i+1])})
		}
		return attrs, nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		attrs := make([]Attr, 0, len(keys))
		for _, k := range keys {
			attrs = append(attrs, Attr{Key: k, Value: fmt.Sprint(v[k])})
		}
		return attrs, nil
	default:
		return nil, fmt.Errorf("unsupported result type %T", out)
	}
}
