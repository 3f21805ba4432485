package style_test

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"tstyle/style"
)

func TestParser_EmptyDeclaration(t *testing.T) {
	p := style.NewParser(zap.NewNop())
	for _, raw := range []string{"", "   ", "\t\n"} {
		rules, err := p.ParseRules(style.CategoryBackground, raw)
		if err != nil {
			t.Fatalf("ParseRules(%q): %v", raw, err)
		}
		if len(rules) != 0 {
			t.Errorf("ParseRules(%q): expected no rules, got %d", raw, len(rules))
		}
	}
}

func TestParser_ColorRule(t *testing.T) {
	p := style.NewParser(zap.NewNop())
	rules, err := p.ParseRules(style.CategoryBackground, `("^x$" red 1 (2 4))`)
	if err != nil {
		t.Fatalf("ParseRules: %v", err)
	}
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
	r := rules[0]
	if r.Color != "red" {
		t.Errorf("expected color red, got %q", r.Color)
	}
	if r.Content.Kind != style.ContentRegexp {
		t.Errorf("expected regexp content, got %v", r.Content.Kind)
	}
	if len(r.Columns) != 1 || r.Columns[0] != 1 {
		t.Errorf("expected column filter [1], got %v", r.Columns)
	}
	if len(r.Rows) != 2 || r.Rows[0] != 2 || r.Rows[1] != 4 {
		t.Errorf("expected row filter [2 4], got %v", r.Rows)
	}
}

func TestParser_Patterns(t *testing.T) {
	p := style.NewParser(zap.NewNop())
	rules, err := p.ParseRules(style.CategoryForeground, `(- grey) (nil silver) (t white) ("^\d+$" green)`)
	if err != nil {
		t.Fatalf("ParseRules: %v", err)
	}
	if len(rules) != 4 {
		t.Fatalf("expected 4 rules, got %d", len(rules))
	}
	wantKinds := []style.ContentKind{style.ContentEmpty, style.ContentEmpty, style.ContentAny, style.ContentRegexp}
	for i, k := range wantKinds {
		if rules[i].Content.Kind != k {
			t.Errorf("rule %d: expected content kind %v, got %v", i, k, rules[i].Content.Kind)
		}
	}
	if !rules[0].Content.Matches("") || rules[0].Content.Matches("x") {
		t.Error("absent pattern must match only empty text")
	}
	if !rules[3].Content.Matches("17") || rules[3].Content.Matches("a") {
		t.Error("regexp pattern must match per expression")
	}
}

func TestParser_QuotedColor(t *testing.T) {
	p := style.NewParser(zap.NewNop())
	rules, err := p.ParseRules(style.CategoryBackground, `(t "light blue")`)
	if err != nil {
		t.Fatalf("ParseRules: %v", err)
	}
	if rules[0].Color != "light blue" {
		t.Errorf("expected quoted color to keep spaces, got %q", rules[0].Color)
	}
}

func TestParser_TrailingFiltersOmitted(t *testing.T) {
	p := style.NewParser(zap.NewNop())
	rules, err := p.ParseRules(style.CategoryBackground, `(t red) (t blue 2) (t green - (1 2))`)
	if err != nil {
		t.Fatalf("ParseRules: %v", err)
	}
	if rules[0].Columns != nil || rules[0].Rows != nil {
		t.Errorf("expected no filters, got %v / %v", rules[0].Columns, rules[0].Rows)
	}
	if len(rules[1].Columns) != 1 || rules[1].Columns[0] != 2 || rules[1].Rows != nil {
		t.Errorf("expected column filter only, got %v / %v", rules[1].Columns, rules[1].Rows)
	}
	if rules[2].Columns != nil || len(rules[2].Rows) != 2 {
		t.Errorf("expected absent columns with row list, got %v / %v", rules[2].Columns, rules[2].Rows)
	}
}

func TestParser_CustomPlist(t *testing.T) {
	p := style.NewParser(zap.NewNop())
	rules, err := p.ParseRules(style.CategoryCustom, `(t (:weight bold :note "has space") (1 3) -)`)
	if err != nil {
		t.Fatalf("ParseRules: %v", err)
	}
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
	want := []style.Attr{
		{Key: "weight", Value: "bold"},
		{Key: "note", Value: "has space"},
	}
	got := rules[0].Attrs
	if len(got) != len(want) {
		t.Fatalf("expected %d attrs, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("attr %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	if len(rules[0].Columns) != 2 {
		t.Errorf("expected column filter (1 3), got %v", rules[0].Columns)
	}
	if rules[0].Rows != nil {
		t.Errorf("expected absent row filter, got %v", rules[0].Rows)
	}
}

func TestParser_EmptyPlist(t *testing.T) {
	p := style.NewParser(zap.NewNop())
	rules, err := p.ParseRules(style.CategoryCustom, `(t ())`)
	if err != nil {
		t.Fatalf("ParseRules: %v", err)
	}
	if len(rules) != 1 || len(rules[0].Attrs) != 0 {
		t.Errorf("expected one rule without attributes, got %+v", rules)
	}
}

func TestParser_DeclarationOrder(t *testing.T) {
	p := style.NewParser(zap.NewNop())
	rules, err := p.ParseRules(style.CategoryBackground, `("a" red) ("b" blue) ("c" green)`)
	if err != nil {
		t.Fatalf("ParseRules: %v", err)
	}
	want := []string{"red", "blue", "green"}
	for i, color := range want {
		if rules[i].Color != color {
			t.Errorf("rule %d: expected %s, got %s", i, color, rules[i].Color)
		}
	}
}

func TestParser_SyntaxErrors(t *testing.T) {
	p := style.NewParser(zap.NewNop())
	tests := []struct {
		name string
		cat  style.Category
		raw  string
	}{
		{"unterminated tuple", style.CategoryBackground, `("x" red`},
		{"garbage at top level", style.CategoryBackground, `red`},
		{"missing value", style.CategoryBackground, `("x")`},
		{"absent color", style.CategoryBackground, `("x" -)`},
		{"bad regexp", style.CategoryBackground, `("(" red)`},
		{"bad index", style.CategoryBackground, `("x" red one)`},
		{"zero index", style.CategoryBackground, `("x" red 0)`},
		{"negative index", style.CategoryBackground, `("x" red -1)`},
		{"empty index list", style.CategoryBackground, `("x" red ())`},
		{"too many fields", style.CategoryBackground, `("x" red 1 2 3)`},
		{"unterminated string", style.CategoryBackground, `("x`},
		{"empty tuple", style.CategoryBackground, `()`},
		{"custom without plist", style.CategoryCustom, `("x" red)`},
		{"plist missing value", style.CategoryCustom, `("x" (:weight))`},
		{"plist key not keyword", style.CategoryCustom, `("x" (weight bold))`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := p.ParseRules(tc.cat, tc.raw)
			if err == nil {
				t.Fatal("expected syntax error")
			}
			var serr *style.SyntaxError
			if !errors.As(err, &serr) {
				t.Fatalf("expected *style.SyntaxError, got %T", err)
			}
			if serr.Category != tc.cat.String() {
				t.Errorf("expected category %s, got %s", tc.cat, serr.Category)
			}
			if serr.Raw != tc.raw {
				t.Errorf("expected raw %q, got %q", tc.raw, serr.Raw)
			}
		})
	}
}

func TestParser_ErrorOffset(t *testing.T) {
	p := style.NewParser(zap.NewNop())
	raw := `("a" red) ("b" blue 0)`
	_, err := p.ParseRules(style.CategoryBackground, raw)
	var serr *style.SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *style.SyntaxError, got %v", err)
	}
	if want := strings.Index(raw, "0"); serr.Offset != want {
		t.Errorf("expected offset %d, got %d", want, serr.Offset)
	}
}

func TestParser_ParseRuleSet(t *testing.T) {
	p := style.NewParser(zap.NewNop())
	rs, err := p.ParseRuleSet(`(t red)`, `("x" white) (t grey)`, `(- (:note empty))`)
	if err != nil {
		t.Fatalf("ParseRuleSet: %v", err)
	}
	if len(rs.Background) != 1 || len(rs.Foreground) != 2 || len(rs.Custom) != 1 {
		t.Errorf("unexpected collection sizes: %d/%d/%d",
			len(rs.Background), len(rs.Foreground), len(rs.Custom))
	}
}

func TestParser_ParseRuleSetFailsWhole(t *testing.T) {
	p := style.NewParser(zap.NewNop())
	rs, err := p.ParseRuleSet(`(t red)`, `(`, "")
	if err == nil {
		t.Fatal("expected error from malformed foreground rules")
	}
	if rs != nil {
		t.Errorf("expected no partial rule set, got %+v", rs)
	}
	var serr *style.SyntaxError
	if !errors.As(err, &serr) || serr.Category != "foreground" {
		t.Errorf("expected foreground syntax error, got %v", err)
	}
}

func TestParser_RegexpEscapes(t *testing.T) {
	p := style.NewParser(zap.NewNop())
	rules, err := p.ParseRules(style.CategoryBackground, `("a\"b" red) ("\d+\\w" blue)`)
	if err != nil {
		t.Fatalf("ParseRules: %v", err)
	}
	if !rules[0].Content.Matches(`a"b`) {
		t.Error("expected escaped quote inside pattern to match literally")
	}
	if got := rules[1].Content.Pattern(); got != `\d+\w` {
		t.Errorf("expected backslash handling to keep regexp classes, got %q", got)
	}
}
