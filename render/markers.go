package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/maruel/natural"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// MarkerDump serializes the published marker set as YAML for machine
// consumption: tables sorted naturally by id, markers in span order,
// attributes as key/value pairs preserving resolution order.
type MarkerDump struct {
	log *zap.Logger
}

func NewMarkerDump(log *zap.Logger) *MarkerDump {
	if log == nil {
		log = zap.NewNop()
	}
	return &MarkerDump{log: log.Named("markers")}
}

type markerDumpDoc struct {
	Document string          `yaml:"document"`
	Tables   []tableDumpNode `yaml:"tables"`
}

type tableDumpNode struct {
	ID      string           `yaml:"id"`
	Rows    int              `yaml:"rows"`
	Columns int              `yaml:"columns"`
	Markers []markerDumpNode `yaml:"markers"`
}

type markerDumpNode struct {
	Start int            `yaml:"start"`
	End   int            `yaml:"end"`
	Tag   string         `yaml:"tag"`
	Attrs []attrDumpNode `yaml:"attributes"`
}

type attrDumpNode struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

func (r *MarkerDump) Render(w io.Writer, name string, tables []Styled) error {
	sorted := append([]Styled(nil), tables...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return natural.Less(sorted[i].ID, sorted[j].ID)
	})

	out := markerDumpDoc{Document: name}
	for _, st := range sorted {
		node := tableDumpNode{
			ID:      st.ID,
			Rows:    st.Table.RowCount(),
			Columns: st.Table.ColumnCount(),
		}
		for _, m := range st.Markers {
			mn := markerDumpNode{Start: m.Span.Start, End: m.Span.End, Tag: m.Tag}
			for _, a := range m.Attrs {
				mn.Attrs = append(mn.Attrs, attrDumpNode{Key: a.Key, Value: a.Value})
			}
			node.Markers = append(node.Markers, mn)
		}
		out.Tables = append(out.Tables, node)
	}

	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("unable to marshal marker dump: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("unable to write marker dump: %w", err)
	}
	return nil
}
