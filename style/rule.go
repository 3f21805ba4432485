package style

import (
	"regexp"
	"strconv"
	"strings"
)

// Category identifies one of the three declared rule collections of a table.
type Category int

const (
	CategoryBackground Category = iota // rules producing the cell background color
	CategoryForeground                 // rules producing the cell foreground color
	CategoryCustom                     // rules producing arbitrary attribute pairs
)

// String returns the declaration keyword for the category.
func (c Category) String() string {
	switch c {
	case CategoryBackground:
		return "background"
	case CategoryForeground:
		return "foreground"
	case CategoryCustom:
		return "custom"
	default:
		return "category(" + strconv.Itoa(int(c)) + ")"
	}
}

// ContentKind selects how a rule's content condition is evaluated.
type ContentKind int

const (
	ContentEmpty  ContentKind = iota // matches only cells with empty text
	ContentAny                       // matches only cells with non-empty text
	ContentRegexp                    // matches when the pattern is found within the text
)

// Content is a rule's content condition. The zero value matches only empty
// cells, mirroring an absent pattern in the declaration.
type Content struct {
	Kind ContentKind
	expr string
	re   *regexp.Regexp
}

// EmptyContent returns the condition matching only empty cell text.
func EmptyContent() Content {
	return Content{Kind: ContentEmpty}
}

// AnyContent returns the condition matching only non-empty cell text.
func AnyContent() Content {
	return Content{Kind: ContentAny}
}

// RegexpContent compiles expr and returns the condition matching cells whose
// text contains a match. The expression is compiled once, here; a bad
// expression is a declaration error, not a per-cell one.
func RegexpContent(expr string) (Content, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Content{}, err
	}
	return Content{Kind: ContentRegexp, expr: expr, re: re}, nil
}

// Matches reports whether text satisfies the condition. It is pure: no
// allocation, no state, safe for concurrent use.
func (c Content) Matches(text string) bool {
	switch c.Kind {
	case ContentAny:
		return len(text) > 0
	case ContentRegexp:
		return c.re.MatchString(text)
	default:
		return len(text) == 0
	}
}

// Pattern returns the source expression for regexp conditions, or the
// canonical marker for the other kinds.
func (c Content) Pattern() string {
	switch c.Kind {
	case ContentAny:
		return "t"
	case ContentRegexp:
		return c.expr
	default:
		return "-"
	}
}

// Filter restricts a rule to particular 1-based row or column indices.
// A nil Filter applies everywhere.
type Filter []int

// Contains reports whether the 1-based index passes the filter.
func (f Filter) Contains(index int) bool {
	if f == nil {
		return true
	}
	for _, v := range f {
		if v == index {
			return true
		}
	}
	return false
}

// String renders the filter in declaration syntax.
func (f Filter) String() string {
	switch len(f) {
	case 0:
		return "-"
	case 1:
		return strconv.Itoa(f[0])
	default:
		var sb strings.Builder
		sb.WriteByte('(')
		for i, v := range f {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(v))
		}
		sb.WriteByte(')')
		return sb.String()
	}
}

// Rule is one conditional styling directive. Background and foreground rules
// carry a color; custom rules carry an ordered attribute payload.
type Rule struct {
	Content Content // content condition
	Color   string  // color value for background/foreground rules
	Attrs   []Attr  // attribute payload for custom rules
	Columns Filter  // nil means every column
	Rows    Filter  // nil means every row
}

// Applicable reports whether the rule applies to the cell at (row, column)
// holding text. It is the conjunction of the row, column and content tests;
// order of evaluation is not observable.
func (r *Rule) Applicable(row, column int, text string) bool {
	return r.Rows.Contains(row) && r.Columns.Contains(column) && r.Content.Matches(text)
}

// RuleSet holds the parsed rule collections of one table, each in
// declaration order.
type RuleSet struct {
	Background []Rule
	Foreground []Rule
	Custom     []Rule
}

// Rules returns the collection for the category.
func (rs *RuleSet) Rules(c Category) []Rule {
	switch c {
	case CategoryBackground:
		return rs.Background
	case CategoryForeground:
		return rs.Foreground
	case CategoryCustom:
		return rs.Custom
	default:
		return nil
	}
}

// Empty reports whether no category has any rules.
func (rs *RuleSet) Empty() bool {
	return len(rs.Background) == 0 && len(rs.Foreground) == 0 && len(rs.Custom) == 0
}
