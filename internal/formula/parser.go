package formula

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	apperr "github.com/KirkDiggler/pokesheet/internal/errors"
)

// expr is a compiled formula node
type expr interface {
	eval() (float64, error)
}

type number float64

func (n number) eval() (float64, error) { return float64(n), nil }

type unary struct {
	negate bool
	x      expr
}

func (u unary) eval() (float64, error) {
	v, err := u.x.eval()
	if err != nil {
		return 0, err
	}
	if u.negate {
		return -v, nil
	}
	return v, nil
}

type binary struct {
	op   byte
	x, y expr
}

func (b binary) eval() (float64, error) {
	x, err := b.x.eval()
	if err != nil {
		return 0, err
	}
	y, err := b.y.eval()
	if err != nil {
		return 0, err
	}
	switch b.op {
	case '+':
		return x + y, nil
	case '-':
		return x - y, nil
	case '*':
		return x * y, nil
	default:
		if y == 0 {
			return 0, apperr.Formulaf("division by zero")
		}
		return x / y, nil
	}
}

type call struct {
	fn   function
	args []expr
}

func (c call) eval() (float64, error) {
	vals := make([]float64, len(c.args))
	for i, a := range c.args {
		v, err := a.eval()
		if err != nil {
			return 0, err
		}
		vals[i] = v
	}
	return c.fn.apply(vals), nil
}

type function struct {
	minArgs int
	maxArgs int // zero means unbounded
	apply   func(args []float64) float64
}

var functions = map[string]function{
	"min": {minArgs: 2, apply: func(args []float64) float64 {
		out := args[0]
		for _, v := range args[1:] {
			out = math.Min(out, v)
		}
		return out
	}},
	"max": {minArgs: 2, apply: func(args []float64) float64 {
		out := args[0]
		for _, v := range args[1:] {
			out = math.Max(out, v)
		}
		return out
	}},
	"floor": {minArgs: 1, maxArgs: 1, apply: func(args []float64) float64 { return math.Floor(args[0]) }},
	"ceil":  {minArgs: 1, maxArgs: 1, apply: func(args []float64) float64 { return math.Ceil(args[0]) }},
}

// legacyNamespace is accepted as a prefix on function names, e.g. Math.floor,
// so formulas written for the old web client keep working.
const legacyNamespace = "Math"

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokOp // one of + - * / ( ) , .
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func (t token) String() string {
	if t.kind == tokEOF {
		return "end of formula"
	}
	return strconv.Quote(t.text)
}

func (t token) is(op byte) bool {
	return t.kind == tokOp && t.text[0] == op
}

// lex splits text into tokens. Whitespace of any kind separates tokens and
// every byte outside the grammar is rejected.
func lex(text string) ([]token, error) {
	var tokens []token
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		switch {
		case unicode.IsSpace(r):
			i += size

		case isDigit(text[i]) || (text[i] == '.' && i+1 < len(text) && isDigit(text[i+1])):
			end := scanNumber(text, i)
			tokens = append(tokens, token{kind: tokNumber, text: text[i:end], pos: i})
			i = end

		case isLetter(text[i]):
			end := i + 1
			for end < len(text) && (isLetter(text[end]) || isDigit(text[end])) {
				end++
			}
			tokens = append(tokens, token{kind: tokIdent, text: text[i:end], pos: i})
			i = end

		case strings.IndexByte("+-*/(),.", text[i]) >= 0:
			tokens = append(tokens, token{kind: tokOp, text: text[i : i+1], pos: i})
			i++

		default:
			return nil, apperr.Formulaf("unexpected character %q at offset %d", r, i)
		}
	}
	return append(tokens, token{kind: tokEOF, pos: len(text)}), nil
}

// scanNumber returns the end of the number starting at i: digits, an
// optional fraction and an optional exponent.
func scanNumber(text string, i int) int {
	digits := func(j int) int {
		for j < len(text) && isDigit(text[j]) {
			j++
		}
		return j
	}

	end := digits(i)
	if end < len(text) && text[end] == '.' {
		end = digits(end + 1)
	}
	if end < len(text) && (text[end] == 'e' || text[end] == 'E') {
		j := end + 1
		if j < len(text) && (text[j] == '+' || text[j] == '-') {
			j++
		}
		if j < len(text) && isDigit(text[j]) {
			end = digits(j)
		}
	}
	return end
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

// parser is a recursive descent parser over
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("*" | "/") unary }
//	unary   = ("+" | "-") unary | primary
//	primary = number | "(" expr ")" | call
//	call    = [ "Math" "." ] name "(" expr { "," expr } ")"
type parser struct {
	tokens []token
	pos    int
}

// compile parses text into expr nodes
func compile(text string) (expr, error) {
	tokens, err := lex(text)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}
	root, err := p.expr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, apperr.Formulaf("unexpected %s at offset %d", tok, tok.pos)
	}
	return root, nil
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) expect(op byte) error {
	tok := p.next()
	if !tok.is(op) {
		return apperr.Formulaf("expected %q, found %s at offset %d", op, tok, tok.pos)
	}
	return nil
}

func (p *parser) expr() (expr, error) {
	x, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.peek().is('+') || p.peek().is('-') {
		op := p.next().text[0]
		y, err := p.term()
		if err != nil {
			return nil, err
		}
		x = binary{op: op, x: x, y: y}
	}
	return x, nil
}

func (p *parser) term() (expr, error) {
	x, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.peek().is('*') || p.peek().is('/') {
		op := p.next().text[0]
		y, err := p.unary()
		if err != nil {
			return nil, err
		}
		x = binary{op: op, x: x, y: y}
	}
	return x, nil
}

func (p *parser) unary() (expr, error) {
	if tok := p.peek(); tok.is('+') || tok.is('-') {
		p.next()
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return unary{negate: tok.is('-'), x: x}, nil
	}
	return p.primary()
}

func (p *parser) primary() (expr, error) {
	tok := p.next()
	switch {
	case tok.kind == tokNumber:
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return nil, apperr.Formulaf("invalid number %s", tok.text)
		}
		return number(v), nil

	case tok.is('('):
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return x, nil

	case tok.kind == tokIdent:
		return p.call(tok)
	}
	return nil, apperr.Formulaf("unexpected %s at offset %d", tok, tok.pos)
}

func (p *parser) call(ident token) (expr, error) {
	name := ident.text
	if p.peek().is('.') {
		if name != legacyNamespace {
			return nil, apperr.Formulaf("unknown namespace %q", name)
		}
		p.next()
		sel := p.next()
		if sel.kind != tokIdent {
			return nil, apperr.Formulaf("expected function name, found %s at offset %d", sel, sel.pos)
		}
		name = sel.text
	}

	fn, ok := functions[name]
	if !ok {
		return nil, apperr.Formulaf("unknown identifier %q", name)
	}
	if err := p.expect('('); err != nil {
		return nil, err
	}

	var args []expr
	for {
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.peek().is(',') {
			break
		}
		p.next()
	}
	if err := p.expect(')'); err != nil {
		return nil, err
	}

	if len(args) < fn.minArgs || (fn.maxArgs > 0 && len(args) > fn.maxArgs) {
		return nil, apperr.Formulaf("%s called with %d arguments", name, len(args))
	}
	return call{fn: fn, args: args}, nil
}
