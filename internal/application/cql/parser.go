package cql

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalidQuery is returned when a query string cannot be parsed.
var ErrInvalidQuery = errors.New("invalid query")

// Node is a parsed boolean expression.
type Node interface {
	isNode()
}

// BooleanOp is AND, OR or NOT (binary NOT means "left AND NOT right").
type BooleanOp string

const (
	OpAnd BooleanOp = "AND"
	OpOr  BooleanOp = "OR"
	OpNot BooleanOp = "NOT"
)

// Boolean combines two expressions. For a unary NOT, Left is nil.
type Boolean struct {
	Op    BooleanOp
	Left  Node
	Right Node
}

// Clause compares one index against one or more values.
// More than one value means "any of".
type Clause struct {
	Index    string
	Relation string
	Values   []string
}

// MatchAll selects every record.
type MatchAll struct{}

func (Boolean) isNode()  {}
func (Clause) isNode()   {}
func (MatchAll) isNode() {}

// SortKey orders results by one index.
type SortKey struct {
	Index      string
	Descending bool
}

// Query is a parsed query string.
type Query struct {
	Where Node
	Sort  []SortKey
}

// Parse parses a query string. An empty string matches every record.
func Parse(input string) (*Query, error) {
	tokens, err := tokenize(input)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}

	q := &Query{Where: MatchAll{}}
	if !p.atEnd() && !p.peekKeyword("sortby") {
		node, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		q.Where = node
	}

	if p.peekKeyword("sortby") {
		p.next()
		for !p.atEnd() {
			tok := p.next()
			if tok.kind != tokenWord {
				return nil, fmt.Errorf("%w: unexpected %q in sortBy", ErrInvalidQuery, tok.text)
			}
			q.Sort = append(q.Sort, parseSortKey(tok.text))
		}
		if len(q.Sort) == 0 {
			return nil, fmt.Errorf("%w: sortBy without index", ErrInvalidQuery)
		}
	}

	if !p.atEnd() {
		return nil, fmt.Errorf("%w: unexpected %q", ErrInvalidQuery, p.peek().text)
	}
	return q, nil
}

func parseSortKey(text string) SortKey {
	parts := strings.Split(text, "/")
	key := SortKey{Index: parts[0]}
	for _, modifier := range parts[1:] {
		if strings.EqualFold(modifier, "sort.descending") {
			key.Descending = true
		}
	}
	return key
}

type tokenKind int

const (
	tokenWord tokenKind = iota
	tokenString
	tokenRelation
	tokenLParen
	tokenRParen
)

type token struct {
	kind tokenKind
	text string
}

var relations = []string{"==", "<>", "!=", "<=", ">=", "=", "<", ">"}

func tokenize(input string) ([]token, error) {
	var tokens []token
	runes := []rune(input)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '(':
			tokens = append(tokens, token{kind: tokenLParen, text: "("})
			i++
		case r == ')':
			tokens = append(tokens, token{kind: tokenRParen, text: ")"})
			i++
		case r == '"':
			var sb strings.Builder
			i++
			closed := false
			for i < len(runes) {
				if runes[i] == '\\' && i+1 < len(runes) {
					sb.WriteRune(runes[i+1])
					i += 2
					continue
				}
				if runes[i] == '"' {
					closed = true
					i++
					break
				}
				sb.WriteRune(runes[i])
				i++
			}
			if !closed {
				return nil, fmt.Errorf("%w: unterminated string", ErrInvalidQuery)
			}
			tokens = append(tokens, token{kind: tokenString, text: sb.String()})
		default:
			if rel := matchRelation(runes[i:]); rel != "" {
				tokens = append(tokens, token{kind: tokenRelation, text: rel})
				i += len(rel)
				continue
			}
			start := i
			for i < len(runes) && !unicode.IsSpace(runes[i]) && !strings.ContainsRune("()\"", runes[i]) &&
				matchRelation(runes[i:]) == "" {
				i++
			}
			tokens = append(tokens, token{kind: tokenWord, text: string(runes[start:i])})
		}
	}
	return tokens, nil
}

func matchRelation(runes []rune) string {
	for _, rel := range relations {
		if len(runes) >= len(rel) && string(runes[:len(rel)]) == rel {
			return rel
		}
	}
	return ""
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) atEnd() bool { return p.pos >= len(p.tokens) }

func (p *parser) peek() token { return p.tokens[p.pos] }

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	p.pos++
	return tok
}

func (p *parser) peekKeyword(keyword string) bool {
	return !p.atEnd() && p.peek().kind == tokenWord && strings.EqualFold(p.peek().text, keyword)
}

func (p *parser) parseOr() (Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peekKeyword("or") {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = Boolean{Op: OpOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Node, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.peekKeyword("and") || p.peekKeyword("not") {
		op := OpAnd
		if strings.EqualFold(p.next().text, "not") {
			op = OpNot
		}
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = Boolean{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parsePrimary() (Node, error) {
	if p.atEnd() {
		return nil, fmt.Errorf("%w: unexpected end of query", ErrInvalidQuery)
	}
	if p.peekKeyword("not") {
		p.next()
		operand, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return Boolean{Op: OpNot, Right: operand}, nil
	}
	if p.peek().kind == tokenLParen {
		p.next()
		node, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.atEnd() || p.peek().kind != tokenRParen {
			return nil, fmt.Errorf("%w: missing closing parenthesis", ErrInvalidQuery)
		}
		p.next()
		return node, nil
	}
	return p.parseClause()
}

func (p *parser) parseClause() (Node, error) {
	index := p.next()
	if index.kind != tokenWord {
		return nil, fmt.Errorf("%w: expected index, got %q", ErrInvalidQuery, index.text)
	}
	if p.atEnd() || p.peek().kind != tokenRelation {
		return nil, fmt.Errorf("%w: expected relation after %q", ErrInvalidQuery, index.text)
	}
	relation := p.next().text

	if strings.EqualFold(index.text, "cql.allRecords") {
		if p.atEnd() {
			return nil, fmt.Errorf("%w: cql.allRecords without value", ErrInvalidQuery)
		}
		p.next()
		return MatchAll{}, nil
	}

	if p.atEnd() {
		return nil, fmt.Errorf("%w: missing value for %q", ErrInvalidQuery, index.text)
	}

	if p.peek().kind == tokenLParen {
		p.next()
		var values []string
		for {
			if p.atEnd() {
				return nil, fmt.Errorf("%w: unterminated value list", ErrInvalidQuery)
			}
			tok := p.next()
			if tok.kind != tokenWord && tok.kind != tokenString {
				return nil, fmt.Errorf("%w: unexpected %q in value list", ErrInvalidQuery, tok.text)
			}
			values = append(values, tok.text)
			if p.atEnd() {
				return nil, fmt.Errorf("%w: unterminated value list", ErrInvalidQuery)
			}
			if p.peek().kind == tokenRParen {
				p.next()
				break
			}
			if !p.peekKeyword("or") {
				return nil, fmt.Errorf("%w: expected 'or' in value list", ErrInvalidQuery)
			}
			p.next()
		}
		return Clause{Index: index.text, Relation: relation, Values: values}, nil
	}

	value := p.next()
	if value.kind != tokenWord && value.kind != tokenString {
		return nil, fmt.Errorf("%w: unexpected %q after relation", ErrInvalidQuery, value.text)
	}
	return Clause{Index: index.text, Relation: relation, Values: []string{value.text}}, nil
}
