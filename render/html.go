package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"tstyle/style"
)

// HTMLOptions configure the standalone HTML document.
type HTMLOptions struct {
	// Title overrides the document title, defaulting to the document name.
	Title string
}

// HTML renders styled tables as one standalone HTML document. Scalar color
// and font attributes become per-cell inline styles; attributes without a
// CSS meaning are carried as data- attributes so downstream tooling can see
// them.
type HTML struct {
	opts HTMLOptions
	log  *zap.Logger
}

func NewHTML(opts HTMLOptions, log *zap.Logger) *HTML {
	if log == nil {
		log = zap.NewNop()
	}
	return &HTML{opts: opts, log: log.Named("html")}
}

const htmlCSS = `table { border-collapse: collapse; margin: 1em 0; }` +
	` td, th { border: 1px solid #999; padding: 0.25em 0.5em; }` +
	` h2 { font-family: sans-serif; }`

func (r *HTML) Render(w io.Writer, name string, tables []Styled) error {
	title := r.opts.Title
	if title == "" {
		title = name
	}

	doc := etree.NewDocument()
	doc.CreateDirective("DOCTYPE html")

	html := doc.CreateElement("html")
	html.CreateAttr("xmlns", "http://www.w3.org/1999/xhtml")
	html.CreateAttr("lang", "en")

	head := html.CreateElement("head")
	meta := head.CreateElement("meta")
	meta.CreateAttr("charset", "utf-8")
	titleElem := head.CreateElement("title")
	titleElem.SetText(title)
	styleElem := head.CreateElement("style")
	styleElem.SetText(htmlCSS)

	body := html.CreateElement("body")
	for _, st := range tables {
		r.renderTable(body, st)
	}

	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("unable to write HTML document: %w", err)
	}
	return nil
}

func (r *HTML) renderTable(body *etree.Element, st Styled) {
	attrs := attrsBySpan(st.Markers)

	heading := body.CreateElement("h2")
	heading.CreateAttr("id", slug.Make(st.ID))
	heading.SetText(st.ID)

	tbl := body.CreateElement("table")
	if hp, ok := st.Table.(HeaderProvider); ok {
		if headers := hp.Headers(); len(headers) > 0 {
			thead := tbl.CreateElement("thead")
			tr := thead.CreateElement("tr")
			for _, h := range headers {
				th := tr.CreateElement("th")
				th.SetText(h)
			}
		}
	}
	tbody := tbl.CreateElement("tbody")
	for row := 1; row <= st.Table.RowCount(); row++ {
		tr := tbody.CreateElement("tr")
		for col := 1; col <= st.Table.ColumnCount(); col++ {
			td := tr.CreateElement("td")
			td.SetText(st.Table.CellText(row, col))
			span, ok := st.Table.CellSpan(row, col)
			if !ok {
				continue
			}
			set, ok := attrs[span]
			if !ok {
				continue
			}
			css, extra := cellCSS(set)
			if css != "" {
				td.CreateAttr("style", css)
			}
			for _, a := range extra {
				td.CreateAttr("data-"+slug.Make(a.Key), a.Value)
			}
		}
	}
}

// cellCSS maps styling attributes onto inline CSS, returning the attributes
// that have no CSS equivalent for the data- fallback. Color values pass
// through verbatim, CSS resolves names and hex alike.
func cellCSS(attrs []style.Attr) (string, []style.Attr) {
	var (
		css   []string
		deco  []string
		extra []style.Attr
	)
	for _, a := range attrs {
		switch a.Key {
		case style.AttrBackground:
			css = append(css, "background-color:"+a.Value)
		case style.AttrForeground:
			css = append(css, "color:"+a.Value)
		case style.AttrWeight:
			css = append(css, "font-weight:"+a.Value)
		case style.AttrSlant:
			css = append(css, "font-style:"+a.Value)
		case style.AttrUnderline:
			if isTruthy(a.Value) {
				deco = append(deco, "underline")
			}
		case style.AttrStrike:
			if isTruthy(a.Value) {
				deco = append(deco, "line-through")
			}
		default:
			extra = append(extra, a)
		}
	}
	if len(deco) > 0 {
		css = append(css, "text-decoration:"+strings.Join(deco, " "))
	}
	return strings.Join(css, ";"), extra
}
