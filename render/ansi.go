package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
	"go.uber.org/zap"
)

// ANSIOptions configure terminal output.
type ANSIOptions struct {
	// Color enables escape sequences; without it tables render as plain
	// aligned text.
	Color bool
	// Border names the frame style, see BorderNames. Empty means rounded.
	Border string
}

// BorderNames lists the supported table border styles.
func BorderNames() []string {
	return []string{"none", "normal", "rounded", "thick", "double", "markdown", "ascii"}
}

// ANSI renders styled tables as terminal text through lipgloss.
type ANSI struct {
	opts ANSIOptions
	log  *zap.Logger
}

func NewANSI(opts ANSIOptions, log *zap.Logger) *ANSI {
	if log == nil {
		log = zap.NewNop()
	}
	return &ANSI{opts: opts, log: log.Named("ansi")}
}

// Render writes every table, blank-line separated, onto w. The color profile
// is pinned explicitly so output does not depend on where w points.
func (r *ANSI) Render(w io.Writer, name string, tables []Styled) error {
	renderer := lipgloss.NewRenderer(w)
	if r.opts.Color {
		renderer.SetColorProfile(termenv.TrueColor)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}
	for i, st := range tables {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := r.renderTable(w, renderer, st); err != nil {
			return fmt.Errorf("unable to render table %s: %w", st.ID, err)
		}
	}
	return nil
}

func (r *ANSI) renderTable(w io.Writer, renderer *lipgloss.Renderer, st Styled) error {
	attrs := attrsBySpan(st.Markers)

	rows := make([][]string, st.Table.RowCount())
	for row := range rows {
		cells := make([]string, st.Table.ColumnCount())
		for col := range cells {
			cells[col] = st.Table.CellText(row+1, col+1)
		}
		rows[row] = cells
	}

	t := lgtable.New().
		Border(borderFor(r.opts.Border)).
		BorderStyle(renderer.NewStyle()).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := renderer.NewStyle().Padding(0, 1)
			if row == lgtable.HeaderRow {
				return s.Bold(true)
			}
			span, ok := st.Table.CellSpan(row+1, col+1)
			if !ok {
				return s
			}
			set, ok := attrs[span]
			if !ok {
				return s
			}
			return applyAttrs(s, set, r.log)
		})
	if hp, ok := st.Table.(HeaderProvider); ok {
		if headers := hp.Headers(); len(headers) > 0 {
			t.Headers(headers...)
		}
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func borderFor(name string) lipgloss.Border {
	switch name {
	case "none":
		return lipgloss.HiddenBorder()
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "markdown":
		return lipgloss.MarkdownBorder()
	case "ascii":
		return lipgloss.ASCIIBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}
