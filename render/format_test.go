package render_test

import (
	"strings"
	"testing"

	"tstyle/render"
)

func TestParseFormat(t *testing.T) {
	cases := []struct {
		in   string
		want render.Format
		bad  bool
	}{
		{in: "ansi", want: render.FormatAnsi},
		{in: "ANSI", want: render.FormatAnsi},
		{in: "html", want: render.FormatHTML},
		{in: "Html", want: render.FormatHTML},
		{in: "markers", want: render.FormatMarkers},
		{in: "", bad: true},
		{in: "pdf", bad: true},
	}
	for _, c := range cases {
		got, err := render.ParseFormat(c.in)
		if c.bad {
			if err == nil {
				t.Errorf("ParseFormat(%q): expected error, got %s", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q): unexpected error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseFormat(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestFormatString(t *testing.T) {
	for _, name := range render.FormatNames() {
		f, err := render.ParseFormat(name)
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", name, err)
		}
		if f.String() != name {
			t.Errorf("Format.String() = %q, want %q", f.String(), name)
		}
	}
	if s := render.Format(42).String(); !strings.Contains(s, "42") {
		t.Errorf("unknown format String() = %q, want index in text", s)
	}
}

func TestFormatExt(t *testing.T) {
	cases := []struct {
		f   render.Format
		ext string
	}{
		{render.FormatAnsi, ".txt"},
		{render.FormatHTML, ".html"},
		{render.FormatMarkers, ".yaml"},
	}
	for _, c := range cases {
		if got := c.f.Ext(); got != c.ext {
			t.Errorf("%s.Ext() = %q, want %q", c.f, got, c.ext)
		}
	}
}

func TestFormatTextMarshaling(t *testing.T) {
	for _, f := range []render.Format{render.FormatAnsi, render.FormatHTML, render.FormatMarkers} {
		text, err := f.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%s): %v", f, err)
		}
		var back render.Format
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if back != f {
			t.Errorf("round trip %s -> %q -> %s", f, text, back)
		}
	}
	var f render.Format
	if err := f.UnmarshalText([]byte("docx")); err == nil {
		t.Error("UnmarshalText(docx): expected error")
	}
}
