package io

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/matzehuels/ontograph/pkg/errors"
	"github.com/matzehuels/ontograph/pkg/ontology"
)

// Resolver maps names used in an expression to entities.
type Resolver interface {
	Class(name string) (ontology.ID, error)
	Relation(name string) (ontology.ID, error)
}

// ParseExpr parses a class expression in a small Manchester-like syntax:
//
//	expr  = conj { "or" conj }
//	conj  = unary { "and" unary }
//	unary = "not" unary
//	      | "(" expr ")"
//	      | name [ ("some" | "only") unary | "min" int unary ]
//
// Names are bare tokens or single-quoted labels ('limb segment'); a quote
// inside a quoted label is doubled ('Broca''s area'). Keywords
// are case-insensitive. "not" yields an opaque expression, which the graph
// engine reports as malformed rather than decomposing.
//
// Syntax errors have code INVALID_EXPRESSION; resolver errors are returned
// unchanged.
func ParseExpr(s string, r Resolver) (ontology.Expr, error) {
	toks, err := tokenize(s)
	if err != nil {
		return ontology.Expr{}, err
	}
	p := &parser{src: s, toks: toks, res: r}
	e, err := p.or()
	if err != nil {
		return ontology.Expr{}, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return ontology.Expr{}, p.errorf(t, "unexpected %q", t.text)
	}
	return e, nil
}

type tokKind uint8

const (
	tokEOF tokKind = iota
	tokWord
	tokQuoted
	tokLParen
	tokRParen
)

type token struct {
	kind tokKind
	text string
	pos  int
	end  int
}

func tokenize(s string) ([]token, error) {
	var toks []token
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", pos: i, end: i + 1})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", pos: i, end: i + 1})
			i++
		case c == '\'':
			text, end, ok := unquote(s, i)
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidExpression, "%q: unterminated quote at offset %d", s, i)
			}
			toks = append(toks, token{kind: tokQuoted, text: text, pos: i, end: end})
			i = end
		default:
			j := i
			for j < len(s) && !strings.ContainsRune(" \t\n\r()'", rune(s[j])) {
				j++
			}
			toks = append(toks, token{kind: tokWord, text: s[i:j], pos: i, end: j})
			i = j
		}
	}
	return append(toks, token{kind: tokEOF, pos: len(s), end: len(s)}), nil
}

// unquote scans the quoted name opening at s[start]. A doubled quote stands
// for one literal quote. It returns the name and the offset after the
// closing quote.
func unquote(s string, start int) (string, int, bool) {
	var b strings.Builder
	for i := start + 1; i < len(s); i++ {
		if s[i] != '\'' {
			b.WriteByte(s[i])
			continue
		}
		if i+1 < len(s) && s[i+1] == '\'' {
			b.WriteByte('\'')
			i++
			continue
		}
		return b.String(), i + 1, true
	}
	return "", 0, false
}

type parser struct {
	src  string
	toks []token
	i    int
	res  Resolver
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) keyword(t token, kw string) bool {
	return t.kind == tokWord && strings.EqualFold(t.text, kw)
}

func (p *parser) errorf(t token, format string, args ...any) error {
	args = append([]any{p.src}, args...)
	args = append(args, t.pos)
	return errors.New(errors.ErrCodeInvalidExpression, "%q: "+format+" at offset %d", args...)
}

func (p *parser) or() (ontology.Expr, error) {
	return p.nary("or", p.and, ontology.Or)
}

func (p *parser) and() (ontology.Expr, error) {
	return p.nary("and", p.unary, ontology.And)
}

func (p *parser) nary(kw string, operand func() (ontology.Expr, error), build func(...ontology.Expr) ontology.Expr) (ontology.Expr, error) {
	first, err := operand()
	if err != nil {
		return ontology.Expr{}, err
	}
	ops := []ontology.Expr{first}
	for p.keyword(p.peek(), kw) {
		p.next()
		e, err := operand()
		if err != nil {
			return ontology.Expr{}, err
		}
		ops = append(ops, e)
	}
	if len(ops) == 1 {
		return first, nil
	}
	return build(ops...), nil
}

func (p *parser) unary() (ontology.Expr, error) {
	t := p.next()
	switch {
	case t.kind == tokEOF:
		return ontology.Expr{}, p.errorf(t, "unexpected end of expression")
	case t.kind == tokRParen:
		return ontology.Expr{}, p.errorf(t, "unexpected )")
	case t.kind == tokLParen:
		e, err := p.or()
		if err != nil {
			return ontology.Expr{}, err
		}
		if c := p.next(); c.kind != tokRParen {
			return ontology.Expr{}, p.errorf(c, "expected )")
		}
		return e, nil
	case p.keyword(t, "not"):
		if _, err := p.unary(); err != nil {
			return ontology.Expr{}, err
		}
		return ontology.Other(strings.TrimSpace(p.src[t.pos:p.toks[p.i-1].end])), nil
	case t.kind == tokWord && isKeyword(t.text):
		return ontology.Expr{}, p.errorf(t, "unexpected keyword %q", t.text)
	}

	nt := p.peek()
	switch {
	case p.keyword(nt, "some"), p.keyword(nt, "only"):
		p.next()
		return p.restriction(t, nt, 0)
	case p.keyword(nt, "min"):
		p.next()
		nTok := p.next()
		n, err := strconv.Atoi(nTok.text)
		if nTok.kind != tokWord || err != nil || n < 0 {
			return ontology.Expr{}, p.errorf(nTok, "expected cardinality after min")
		}
		return p.restriction(t, nt, n)
	}

	id, err := p.res.Class(t.text)
	if err != nil {
		return ontology.Expr{}, err
	}
	return ontology.Named(id), nil
}

func (p *parser) restriction(rel, kw token, n int) (ontology.Expr, error) {
	r, err := p.res.Relation(rel.text)
	if err != nil {
		return ontology.Expr{}, err
	}
	filler, err := p.unary()
	if err != nil {
		return ontology.Expr{}, err
	}
	switch strings.ToLower(kw.text) {
	case "some":
		return ontology.Some(r, filler), nil
	case "only":
		return ontology.All(r, filler), nil
	}
	return ontology.Min(n, r, filler), nil
}

func isKeyword(s string) bool {
	switch strings.ToLower(s) {
	case "and", "or", "not", "some", "only", "min":
		return true
	}
	return false
}

// needsQuote reports whether name must be single-quoted to parse as one
// token.
func needsQuote(name string) bool {
	if name == "" || isKeyword(name) {
		return true
	}
	return strings.ContainsFunc(name, func(r rune) bool {
		return unicode.IsSpace(r) || r == '(' || r == ')' || r == '\''
	})
}

// FormatExpr renders e in the syntax [ParseExpr] accepts, naming entities
// by label when they have one and by short id otherwise.
func FormatExpr(e ontology.Expr, f ontology.Facade) string {
	return ontology.Format(e, func(id ontology.ID) string {
		name := "?"
		if ent, ok := f.Entity(id); ok {
			name = ent.Label
			if name == "" {
				name = ontology.ShortID(ent.IRI)
			}
		}
		if needsQuote(name) {
			return "'" + strings.ReplaceAll(name, "'", "''") + "'"
		}
		return name
	})
}
