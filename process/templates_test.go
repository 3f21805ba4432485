package process

import (
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"tstyle/config"
	"tstyle/render"
	"tstyle/textdoc"
)

const templateDocText = `prose before the table

#style id inventory
| Name | Qty |
|------|-----|
| bolt | 2   |
`

func setupTestDocForTemplate(t *testing.T, name string) *textdoc.Document {
	t.Helper()
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	if name == "" {
		name = "mydoc.txt"
	}
	return textdoc.Parse(name, templateDocText, logger)
}

func TestExpandTemplate_SimpleText(t *testing.T) {
	doc := setupTestDocForTemplate(t, "")

	result, err := expandTemplate(doc, config.OutputNameTemplateFieldName, "simple-text", render.FormatAnsi)
	if err != nil {
		t.Fatalf("expandTemplate() error = %v", err)
	}
	if result != "simple-text" {
		t.Errorf("expandTemplate() = %q, want %q", result, "simple-text")
	}
}

func TestExpandTemplate_Document(t *testing.T) {
	doc := setupTestDocForTemplate(t, "path/to/report.txt")

	result, err := expandTemplate(doc, config.OutputNameTemplateFieldName, "{{ .Document }}", render.FormatAnsi)
	if err != nil {
		t.Fatalf("expandTemplate() error = %v", err)
	}
	if result != "report" {
		t.Errorf("expandTemplate() = %q, want %q", result, "report")
	}
}

func TestExpandTemplate_Format(t *testing.T) {
	doc := setupTestDocForTemplate(t, "")

	result, err := expandTemplate(doc, config.OutputNameTemplateFieldName, "{{ .Format }}", render.FormatHTML)
	if err != nil {
		t.Fatalf("expandTemplate() error = %v", err)
	}
	if result != "html" {
		t.Errorf("expandTemplate() = %q, want %q", result, "html")
	}
}

func TestExpandTemplate_Tables(t *testing.T) {
	doc := setupTestDocForTemplate(t, "")

	result, err := expandTemplate(doc, config.OutputNameTemplateFieldName, "{{ .Tables }}", render.FormatAnsi)
	if err != nil {
		t.Fatalf("expandTemplate() error = %v", err)
	}
	if result != "1" {
		t.Errorf("expandTemplate() = %q, want %q", result, "1")
	}
}

func TestExpandTemplate_Markers(t *testing.T) {
	doc := setupTestDocForTemplate(t, "")

	result, err := expandTemplate(doc, config.OutputNameTemplateFieldName, "{{ .Markers }}", render.FormatAnsi)
	if err != nil {
		t.Fatalf("expandTemplate() error = %v", err)
	}
	if result != "0" {
		t.Errorf("expandTemplate() = %q, want %q", result, "0")
	}
}

func TestExpandTemplate_Time(t *testing.T) {
	doc := setupTestDocForTemplate(t, "")

	result, err := expandTemplate(doc, config.OutputNameTemplateFieldName, "{{ .Time }}", render.FormatAnsi)
	if err != nil {
		t.Fatalf("expandTemplate() error = %v", err)
	}
	if _, err := time.Parse("2006-01-02_15-04-05", result); err != nil {
		t.Errorf("expandTemplate() = %q, not a timestamp: %v", result, err)
	}
}

func TestExpandTemplate_ComplexTemplate(t *testing.T) {
	doc := setupTestDocForTemplate(t, "report.txt")

	template := "{{ .Format }}/{{ .Document }}-{{ .Tables }}"
	result, err := expandTemplate(doc, config.OutputNameTemplateFieldName, template, render.FormatAnsi)
	if err != nil {
		t.Fatalf("expandTemplate() error = %v", err)
	}

	expected := "ansi/report-1"
	if result != expected {
		t.Errorf("expandTemplate() = %q, want %q", result, expected)
	}
}

func TestExpandTemplate_SprigFunctions(t *testing.T) {
	doc := setupTestDocForTemplate(t, "report.txt")

	result, err := expandTemplate(doc, config.OutputNameTemplateFieldName, "{{ .Document | upper }}", render.FormatAnsi)
	if err != nil {
		t.Fatalf("expandTemplate() error = %v", err)
	}
	if result != "REPORT" {
		t.Errorf("expandTemplate() = %q, want %q", result, "REPORT")
	}
}

func TestExpandTemplate_InvalidTemplate(t *testing.T) {
	doc := setupTestDocForTemplate(t, "")

	_, err := expandTemplate(doc, config.OutputNameTemplateFieldName, "{{ .Document", render.FormatAnsi)
	if err == nil {
		t.Error("expandTemplate() expected error for invalid template, got nil")
	}
}

func TestExpandTemplate_InvalidField(t *testing.T) {
	doc := setupTestDocForTemplate(t, "")

	_, err := expandTemplate(doc, config.OutputNameTemplateFieldName, "{{ .NonExistentField }}", render.FormatAnsi)
	if err == nil {
		t.Error("expandTemplate() expected error for invalid field, got nil")
	}
}

func TestExpandTemplate_PathSeparators(t *testing.T) {
	doc := setupTestDocForTemplate(t, "report.txt")

	result, err := expandTemplate(doc, config.OutputNameTemplateFieldName, "{{ .Format }}/{{ .Document }}", render.FormatAnsi)
	if err != nil {
		t.Fatalf("expandTemplate() error = %v", err)
	}

	// Should contain forward slash for path separation
	if !strings.Contains(result, "/") {
		t.Errorf("expandTemplate() = %q, want to contain /", result)
	}
}
