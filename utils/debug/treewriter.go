package debug

import (
	"fmt"
	"strconv"
	"strings"
)

// TreeWriter accumulates indented dump lines for structured debug output.
type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	for range depth {
		tw.w.WriteString("  ")
	}
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// TextBlock writes a labeled quoted value, eliding long text so document
// dumps stay readable.
func (tw TreeWriter) TextBlock(depth int, label, value string) {
	for range depth {
		tw.w.WriteString("  ")
	}
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

const textBlockLimit = 64

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	if r := []rune(raw); len(r) > textBlockLimit {
		raw = string(r[:textBlockLimit]) + "..."
	}
	return strconv.Quote(raw)
}
