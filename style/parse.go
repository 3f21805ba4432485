package style

import (
	"fmt"
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"go.uber.org/zap"
)

// Parser turns declared rule text into typed, compiled rule collections.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a rule parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("rule-parser")}
}

// ParseRuleSet parses the three declared rule strings of one table. A
// malformed declaration in any category fails the whole set: no partial
// rule sets.
func (p *Parser) ParseRuleSet(background, foreground, custom string) (*RuleSet, error) {
	var (
		rs  RuleSet
		err error
	)
	if rs.Background, err = p.ParseRules(CategoryBackground, background); err != nil {
		return nil, err
	}
	if rs.Foreground, err = p.ParseRules(CategoryForeground, foreground); err != nil {
		return nil, err
	}
	if rs.Custom, err = p.ParseRules(CategoryCustom, custom); err != nil {
		return nil, err
	}
	return &rs, nil
}

// ParseRules parses one category declaration: zero or more rule tuples in
// declaration order. Empty input yields no rules and no error.
func (p *Parser) ParseRules(cat Category, raw string) ([]Rule, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	rp := &ruleParser{cat: cat, raw: raw, lx: newLexer(raw)}
	rules, err := rp.rules()
	if err != nil {
		return nil, err
	}
	p.log.Debug("Parsed rules", zap.Stringer("category", cat), zap.Int("count", len(rules)))
	return rules, nil
}

// ruleParser carries the state of parsing one category declaration.
type ruleParser struct {
	cat Category
	raw string
	lx  *lexer
}

func (rp *ruleParser) errf(offset int, format string, args ...any) error {
	return &SyntaxError{Category: rp.cat.String(), Raw: rp.raw, Offset: offset, Err: fmt.Errorf(format, args...)}
}

func (rp *ruleParser) next() (token, error) {
	tok, err := rp.lx.next()
	if err != nil {
		return token{}, &SyntaxError{Category: rp.cat.String(), Raw: rp.raw, Offset: rp.lx.in.Offset(), Err: err}
	}
	return tok, nil
}

func (rp *ruleParser) rules() ([]Rule, error) {
	var rules []Rule
	for {
		tok, err := rp.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokEOF:
			return rules, nil
		case tokOpen:
			r, err := rp.tuple()
			if err != nil {
				return nil, err
			}
			rules = append(rules, r)
		default:
			return nil, rp.errf(tok.offset, "expected ( to start a rule, got %s", tok)
		}
	}
}

// tuple parses one rule after its opening paren: content pattern, style
// value and the optional column and row filters. Trailing filters may be
// omitted entirely.
func (rp *ruleParser) tuple() (Rule, error) {
	var r Rule

	tok, err := rp.next()
	if err != nil {
		return r, err
	}
	if r.Content, err = rp.pattern(tok); err != nil {
		return r, err
	}

	if tok, err = rp.next(); err != nil {
		return r, err
	}
	if rp.cat == CategoryCustom {
		r.Attrs, err = rp.plist(tok)
	} else {
		r.Color, err = rp.color(tok)
	}
	if err != nil {
		return r, err
	}

	if tok, err = rp.next(); err != nil {
		return r, err
	}
	if tok.kind == tokClose {
		return r, nil
	}
	if r.Columns, err = rp.filter(tok, "column"); err != nil {
		return r, err
	}

	if tok, err = rp.next(); err != nil {
		return r, err
	}
	if tok.kind == tokClose {
		return r, nil
	}
	if r.Rows, err = rp.filter(tok, "row"); err != nil {
		return r, err
	}

	if tok, err = rp.next(); err != nil {
		return r, err
	}
	if tok.kind != tokClose {
		return r, rp.errf(tok.offset, "too many fields in rule, got %s", tok)
	}
	return r, nil
}

// pattern parses the content condition: - (empty only), t (any non-empty)
// or a quoted regexp compiled right here so bad expressions fail the parse,
// not the match.
func (rp *ruleParser) pattern(tok token) (Content, error) {
	switch {
	case tok.kind == tokString:
		c, err := RegexpContent(tok.text)
		if err != nil {
			return Content{}, rp.errf(tok.offset, "invalid content pattern: %w", err)
		}
		return c, nil
	case tok.kind == tokSymbol && absent(tok.text):
		return EmptyContent(), nil
	case tok.kind == tokSymbol && tok.text == "t":
		return AnyContent(), nil
	case tok.kind == tokClose:
		return Content{}, rp.errf(tok.offset, "rule is missing its content pattern and style value")
	default:
		return Content{}, rp.errf(tok.offset, "content pattern must be -, t or a quoted regexp, got %s", tok)
	}
}

func (rp *ruleParser) color(tok token) (string, error) {
	switch tok.kind {
	case tokString:
		return tok.text, nil
	case tokSymbol:
		if absent(tok.text) {
			return "", rp.errf(tok.offset, "rule needs a color value")
		}
		return tok.text, nil
	default:
		return "", rp.errf(tok.offset, "rule needs a color value, got %s", tok)
	}
}

// plist parses the (:key value ...) attribute list of a custom rule,
// preserving declaration order.
func (rp *ruleParser) plist(tok token) ([]Attr, error) {
	if tok.kind != tokOpen {
		return nil, rp.errf(tok.offset, "custom rule needs an attribute list (:key value ...), got %s", tok)
	}
	var attrs []Attr
	for {
		key, err := rp.next()
		if err != nil {
			return nil, err
		}
		if key.kind == tokClose {
			return attrs, nil
		}
		if key.kind != tokSymbol || len(key.text) < 2 || key.text[0] != ':' {
			return nil, rp.errf(key.offset, "attribute key must be a :keyword, got %s", key)
		}
		val, err := rp.next()
		if err != nil {
			return nil, err
		}
		if val.kind != tokSymbol && val.kind != tokString {
			return nil, rp.errf(val.offset, "attribute %s is missing its value", key.text)
		}
		attrs = append(attrs, Attr{Key: key.text[1:], Value: val.text})
	}
}

// filter parses a row or column filter: absent, a single index or an index
// list. Indices are 1-based.
func (rp *ruleParser) filter(tok token, what string) (Filter, error) {
	switch tok.kind {
	case tokSymbol:
		if absent(tok.text) {
			return nil, nil
		}
		i, err := rp.index(tok, what)
		if err != nil {
			return nil, err
		}
		return Filter{i}, nil
	case tokOpen:
		var f Filter
		for {
			t, err := rp.next()
			if err != nil {
				return nil, err
			}
			if t.kind == tokClose {
				if len(f) == 0 {
					return nil, rp.errf(t.offset, "empty %s index list", what)
				}
				return f, nil
			}
			i, err := rp.index(t, what)
			if err != nil {
				return nil, err
			}
			f = append(f, i)
		}
	default:
		return nil, rp.errf(tok.offset, "%s filter must be -, an index or an index list, got %s", what, tok)
	}
}

func (rp *ruleParser) index(tok token, what string) (int, error) {
	if tok.kind != tokSymbol {
		return 0, rp.errf(tok.offset, "%s index must be an integer, got %s", what, tok)
	}
	i, err := strconv.Atoi(tok.text)
	if err != nil {
		return 0, rp.errf(tok.offset, "bad %s index %q", what, tok.text)
	}
	if i < 1 {
		return 0, rp.errf(tok.offset, "%s index %d out of range, indices are 1-based", what, i)
	}
	return i, nil
}

// absent reports whether a symbol stands for an omitted field.
func absent(s string) bool {
	return s == "-" || s == "nil"
}

// tokenKind enumerates rule declaration tokens.
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokOpen
	tokClose
	tokSymbol
	tokString
)

func (k tokenKind) String() string {
	switch k {
	case tokOpen:
		return "("
	case tokClose:
		return ")"
	case tokSymbol:
		return "symbol"
	case tokString:
		return "string"
	default:
		return "end of input"
	}
}

// token is one lexed element of a rule declaration.
type token struct {
	kind   tokenKind
	text   string // symbol text or unquoted string content
	offset int    // byte offset of the token within the declaration
}

func (t token) String() string {
	switch t.kind {
	case tokSymbol:
		return t.text
	case tokString:
		return strconv.Quote(t.text)
	default:
		return t.kind.String()
	}
}

// lexer splits a rule declaration into tokens on top of parse.Input.
type lexer struct {
	in  *parse.Input
	raw string
}

func newLexer(raw string) *lexer {
	return &lexer{in: parse.NewInputString(raw), raw: raw}
}

func (lx *lexer) next() (token, error) {
	for parse.IsWhitespace(lx.in.Peek(0)) {
		lx.in.Move(1)
	}
	start := lx.in.Offset()
	switch c := lx.in.Peek(0); c {
	case 0:
		return token{kind: tokEOF, offset: start}, nil
	case '(':
		lx.in.Move(1)
		return token{kind: tokOpen, offset: start}, nil
	case ')':
		lx.in.Move(1)
		return token{kind: tokClose, offset: start}, nil
	case '"':
		return lx.quoted(start)
	default:
		return lx.symbol(start), nil
	}
}

// quoted lexes a double-quoted string. Only \" and \\ are escape sequences;
// any other backslash is kept verbatim so regexp classes like \d survive
// unescaped.
func (lx *lexer) quoted(start int) (token, error) {
	lx.in.Move(1)
	var sb strings.Builder
	for {
		switch c := lx.in.Peek(0); c {
		case 0:
			return token{}, fmt.Errorf("unterminated string starting at offset %d", start)
		case '"':
			lx.in.Move(1)
			return token{kind: tokString, text: sb.String(), offset: start}, nil
		case '\\':
			if n := lx.in.Peek(1); n == '"' || n == '\\' {
				sb.WriteByte(n)
				lx.in.Move(2)
				continue
			}
			sb.WriteByte('\\')
			lx.in.Move(1)
		default:
			sb.WriteByte(c)
			lx.in.Move(1)
		}
	}
}

// symbol lexes a bare word: anything up to whitespace, a paren or a quote.
func (lx *lexer) symbol(start int) token {
	for {
		c := lx.in.Peek(0)
		if c == 0 || c == '(' || c == ')' || c == '"' || parse.IsWhitespace(c) {
			break
		}
		lx.in.Move(1)
	}
	return token{kind: tokSymbol, text: lx.raw[start:lx.in.Offset()], offset: start}
}
