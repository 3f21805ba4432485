package debug

import (
	"strings"
	"testing"
)

func TestTreeWriter_Line(t *testing.T) {
	tests := []struct {
		name   string
		depth  int
		format string
		args   []any
		want   string
	}{
		{
			name:   "no depth",
			depth:  0,
			format: "table",
			args:   nil,
			want:   "table\n",
		},
		{
			name:   "depth 2",
			depth:  2,
			format: "cell",
			args:   nil,
			want:   "    cell\n",
		},
		{
			name:   "with formatting",
			depth:  1,
			format: "rows: %d",
			args:   []any{42},
			want:   "  rows: 42\n",
		},
		{
			name:   "multiple args",
			depth:  0,
			format: "span [%d,%d)",
			args:   []any{5, 9},
			want:   "span [5,9)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Line(tt.depth, tt.format, tt.args...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_TextBlock(t *testing.T) {
	tests := []struct {
		name  string
		depth int
		label string
		value string
		want  string
	}{
		{
			name:  "empty value stays bare",
			depth: 0,
			label: "text",
			value: "",
			want:  "text: \n",
		},
		{
			name:  "value is quoted",
			depth: 1,
			label: "cell",
			value: "hello world",
			want:  "  cell: \"hello world\"\n",
		},
		{
			name:  "quotes escaped",
			depth: 0,
			label: "rule",
			value: `("^x$" red)`,
			want:  "rule: \"(\\\"^x$\\\" red)\"\n",
		},
		{
			name:  "newline escaped",
			depth: 0,
			label: "block",
			value: "a\nb",
			want:  "block: \"a\\nb\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.TextBlock(tt.depth, tt.label, tt.value)
			if got := tw.String(); got != tt.want {
				t.Errorf("TextBlock() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_ElidesLongValues(t *testing.T) {
	tw := NewTreeWriter()
	long := strings.Repeat("x", textBlockLimit+10)
	tw.TextBlock(0, "text", long)
	got := tw.String()
	if !strings.Contains(got, `..."`) {
		t.Errorf("expected elided value, got %q", got)
	}
	if strings.Contains(got, long) {
		t.Error("expected long value to be cut")
	}
	if want := "text: \"" + strings.Repeat("x", textBlockLimit) + "...\"\n"; got != want {
		t.Errorf("TextBlock() = %q, want %q", got, want)
	}
}

func TestTreeWriter_MultipleOperations(t *testing.T) {
	tw := NewTreeWriter()
	tw.Line(0, "document")
	tw.Line(1, "table 1")
	tw.TextBlock(2, "cell", "value")
	tw.Line(1, "table 2")

	want := "document\n  table 1\n    cell: \"value\"\n  table 2\n"
	if got := tw.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}
