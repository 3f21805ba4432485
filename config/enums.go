package config

import (
	"fmt"
	"os"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// ColorMode specifies when terminal rendering emits color escape sequences.
type ColorMode int

const (
	ColorModeAuto ColorMode = iota
	ColorModeAlways
	ColorModeNever
)

var colorModeNames = [...]string{"auto", "always", "never"}

func (m ColorMode) String() string {
	if m < 0 || int(m) >= len(colorModeNames) {
		return fmt.Sprintf("ColorMode(%d)", int(m))
	}
	return colorModeNames[m]
}

func (m ColorMode) IsValid() bool {
	return m >= 0 && int(m) < len(colorModeNames)
}

func ParseColorMode(name string) (ColorMode, error) {
	for i, n := range colorModeNames {
		if strings.EqualFold(name, n) {
			return ColorMode(i), nil
		}
	}
	return 0, fmt.Errorf("%q is not a valid color mode, supported modes: %s", name, strings.Join(ColorModeNames(), ", "))
}

func ColorModeNames() []string {
	return append([]string{}, colorModeNames[:]...)
}

func (m ColorMode) MarshalText() ([]byte, error) {
	if !m.IsValid() {
		return nil, fmt.Errorf("invalid color mode %d", int(m))
	}
	return []byte(m.String()), nil
}

func (m *ColorMode) UnmarshalText(text []byte) error {
	parsed, err := ParseColorMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m ColorMode) MarshalYAML() (any, error) {
	if !m.IsValid() {
		return nil, fmt.Errorf("invalid color mode %d", int(m))
	}
	return m.String(), nil
}

func (m *ColorMode) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	return m.UnmarshalText([]byte(name))
}

// Enabled reports whether colors should be used when output goes to stream.
// In automatic mode the decision is made by looking at the stream itself.
func (m ColorMode) Enabled(stream *os.File) bool {
	switch m {
	case ColorModeAlways:
		return true
	case ColorModeNever:
		return false
	}
	return EnableColorOutput(stream)
}
