package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"tstyle/style"
)

// Attribute keys with terminal-only meaning, beyond the resolver basics.
const (
	attrReverse = "reverse"
	attrBlink   = "blink"
	attrFaint   = "faint"
)

// applyAttrs folds styling attributes into a terminal style. Unknown keys
// have no terminal mapping and are skipped with a debug log.
func applyAttrs(s lipgloss.Style, attrs []style.Attr, log *zap.Logger) lipgloss.Style {
	for _, a := range attrs {
		switch a.Key {
		case style.AttrBackground:
			s = s.Background(ansiColor(a.Value))
		case style.AttrForeground:
			s = s.Foreground(ansiColor(a.Value))
		case style.AttrWeight:
			switch strings.ToLower(a.Value) {
			case "bold":
				s = s.Bold(true)
			case "light", "faint":
				s = s.Faint(true)
			case "normal":
				s = s.Bold(false).Faint(false)
			default:
				log.Debug("No terminal mapping for weight, skipping", zap.String("value", a.Value))
			}
		case style.AttrSlant:
			switch strings.ToLower(a.Value) {
			case "italic", "oblique":
				s = s.Italic(true)
			case "normal":
				s = s.Italic(false)
			default:
				log.Debug("No terminal mapping for slant, skipping", zap.String("value", a.Value))
			}
		case style.AttrUnderline:
			s = s.Underline(isTruthy(a.Value))
		case style.AttrStrike:
			s = s.Strikethrough(isTruthy(a.Value))
		case attrReverse:
			s = s.Reverse(isTruthy(a.Value))
		case attrBlink:
			s = s.Blink(isTruthy(a.Value))
		case attrFaint:
			s = s.Faint(isTruthy(a.Value))
		default:
			log.Debug("No terminal mapping for attribute, skipping",
				zap.String("key", a.Key), zap.String("value", a.Value))
		}
	}
	return s
}

// isTruthy interprets flag-like attribute values. Declared flags without a
// value count as set.
func isTruthy(v string) bool {
	switch strings.ToLower(v) {
	case "", "t", "true", "on", "yes", "1":
		return true
	}
	return false
}

// ansiColor normalizes declared color values for the terminal: hex and
// numeric values pass through, well-known color names map to their ANSI-16
// index. Anything else passes through for the color profile to resolve.
func ansiColor(v string) lipgloss.Color {
	if v == "" || v[0] == '#' {
		return lipgloss.Color(v)
	}
	if _, err := strconv.Atoi(v); err == nil {
		return lipgloss.Color(v)
	}
	if idx, ok := namedColors[strings.ToLower(v)]; ok {
		return lipgloss.Color(idx)
	}
	return lipgloss.Color(v)
}

var namedColors = map[string]string{
	"black":         "0",
	"red":           "1",
	"green":         "2",
	"yellow":        "3",
	"blue":          "4",
	"magenta":       "5",
	"cyan":          "6",
	"white":         "7",
	"silver":        "7",
	"gray":          "8",
	"grey":          "8",
	"brightblack":   "8",
	"brightred":     "9",
	"brightgreen":   "10",
	"brightyellow":  "11",
	"brightblue":    "12",
	"brightmagenta": "13",
	"brightcyan":    "14",
	"brightwhite":   "15",
}
