package render

import (
	"fmt"
	"strings"
)

// Specification of requested render output.
type Format int

const (
	FormatAnsi Format = iota
	FormatHTML
	FormatMarkers
)

var formatNames = [...]string{"ansi", "html", "markers"}

// String returns the format name.
func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("format(%d)", int(f))
	}
	return formatNames[f]
}

// ParseFormat converts a name to the format it names.
func ParseFormat(name string) (Format, error) {
	for i, n := range formatNames {
		if strings.EqualFold(name, n) {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("unknown render format %q, supported: %s", name, strings.Join(formatNames[:], ", "))
}

// FormatNames lists the supported format names.
func FormatNames() []string {
	return append([]string(nil), formatNames[:]...)
}

// Ext returns the conventional file extension for the format.
func (f Format) Ext() string {
	switch f {
	case FormatAnsi:
		return ".txt"
	case FormatHTML:
		return ".html"
	case FormatMarkers:
		return ".yaml"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

func (f Format) MarshalText() ([]byte, error) {
	if f < 0 || int(f) >= len(formatNames) {
		return nil, fmt.Errorf("unknown render format %d", int(f))
	}
	return []byte(f.String()), nil
}

func (f *Format) UnmarshalText(text []byte) error {
	v, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}
