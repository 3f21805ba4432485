package process

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"

	"tstyle/config"
	"tstyle/render"
	"tstyle/textdoc"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context  string
	Document string
	Format   string
	Tables   int
	Markers  int
	Time     string
}

func expandTemplate(doc *textdoc.Document, name config.TemplateFieldName, field string, format render.Format) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values := Values{
		Context:  string(name),
		Document: strings.TrimSuffix(filepath.Base(doc.Name()), filepath.Ext(doc.Name())),
		Format:   format.String(),
		Tables:   len(doc.Tables()),
		Markers:  doc.Markers().Len(),
		Time:     time.Now().Format("2006-01-02_15-04-05"),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
