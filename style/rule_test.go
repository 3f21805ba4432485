package style_test

import (
	"testing"

	"tstyle/style"
)

func TestContent_Matches(t *testing.T) {
	digits, err := style.RegexpContent(`^\d+$`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	tests := []struct {
		name    string
		content style.Content
		text    string
		want    bool
	}{
		{"empty matches empty", style.EmptyContent(), "", true},
		{"empty rejects text", style.EmptyContent(), "x", false},
		{"any rejects empty", style.AnyContent(), "", false},
		{"any matches text", style.AnyContent(), "x", true},
		{"regexp match", digits, "42", true},
		{"regexp miss", digits, "4a2", false},
		{"zero value is empty-only", style.Content{}, "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.content.Matches(tc.text); got != tc.want {
				t.Errorf("Matches(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestContent_RegexpFindsAnywhere(t *testing.T) {
	c, err := style.RegexpContent("err")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !c.Matches("internal error 5") {
		t.Error("expected unanchored match within text")
	}
}

func TestContent_BadRegexp(t *testing.T) {
	if _, err := style.RegexpContent("("); err == nil {
		t.Fatal("expected compile error")
	}
}

func TestContent_Pattern(t *testing.T) {
	c, err := style.RegexpContent("^x$")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if got := c.Pattern(); got != "^x$" {
		t.Errorf("expected source expression, got %q", got)
	}
	if got := style.EmptyContent().Pattern(); got != "-" {
		t.Errorf("expected -, got %q", got)
	}
	if got := style.AnyContent().Pattern(); got != "t" {
		t.Errorf("expected t, got %q", got)
	}
}

func TestFilter_Contains(t *testing.T) {
	var every style.Filter
	if !every.Contains(1) || !every.Contains(99) {
		t.Error("nil filter must pass every index")
	}
	f := style.Filter{2, 4}
	if !f.Contains(2) || !f.Contains(4) {
		t.Error("expected listed indices to pass")
	}
	if f.Contains(3) {
		t.Error("expected unlisted index to fail")
	}
}

func TestFilter_String(t *testing.T) {
	tests := []struct {
		f    style.Filter
		want string
	}{
		{nil, "-"},
		{style.Filter{3}, "3"},
		{style.Filter{2, 4}, "(2 4)"},
	}
	for _, tc := range tests {
		if got := tc.f.String(); got != tc.want {
			t.Errorf("Filter%v.String() = %q, want %q", []int(tc.f), got, tc.want)
		}
	}
}

func TestRule_ApplicableIsConjunction(t *testing.T) {
	content, err := style.RegexpContent("^x$")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	r := style.Rule{
		Content: content,
		Color:   "red",
		Columns: style.Filter{1},
		Rows:    style.Filter{2},
	}

	tests := []struct {
		name        string
		row, column int
		text        string
		want        bool
	}{
		{"all pass", 2, 1, "x", true},
		{"wrong row", 3, 1, "x", false},
		{"wrong column", 2, 2, "x", false},
		{"wrong text", 2, 1, "y", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Applicable(tc.row, tc.column, tc.text); got != tc.want {
				t.Errorf("Applicable(%d,%d,%q) = %v, want %v", tc.row, tc.column, tc.text, got, tc.want)
			}
		})
	}
}

func TestRule_ApplicableUnfiltered(t *testing.T) {
	r := style.Rule{Content: style.AnyContent(), Color: "red"}
	if !r.Applicable(7, 9, "anything") {
		t.Error("rule without filters must apply to any coordinates")
	}
	if r.Applicable(7, 9, "") {
		t.Error("content condition must still hold")
	}
}

func TestRuleSet_Empty(t *testing.T) {
	var rs style.RuleSet
	if !rs.Empty() {
		t.Error("zero rule set must be empty")
	}
	rs.Custom = []style.Rule{{Content: style.AnyContent()}}
	if rs.Empty() {
		t.Error("rule set with custom rules is not empty")
	}
}
