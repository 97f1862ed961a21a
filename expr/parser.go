package expr

import (
	"fmt"
	"strconv"
)

// parser is a small recursive-descent parser over one expression's
// tokens, built fresh per Compile call - grammar, in increasing
// precedence: comparison, additive, multiplicative, unary, postfix,
// primary.
type parser struct {
	lex *lexer
	cur token
}

func parseExpression(src string) (node, error) {
	p := &parser{lex: newLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	n, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokEOF {
		return nil, fmt.Errorf("expr: unexpected trailing token %q", p.cur.text)
	}
	return n, nil
}

func (p *parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.cur = t
	return nil
}

func (p *parser) parseComparison() (node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokEq || p.cur.kind == tokNeq || p.cur.kind == tokLt ||
		p.cur.kind == tokLte || p.cur.kind == tokGt || p.cur.kind == tokGte {
		op := p.cur.kind
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseAdditive() (node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokPlus || p.cur.kind == tokMinus {
		op := p.cur.kind
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseMultiplicative() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokStar || p.cur.kind == tokSlash || p.cur.kind == tokPercent {
		op := p.cur.kind
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (node, error) {
	if p.cur.kind == tokMinus {
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &unaryMinusNode{operand: operand}, nil
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() (node, error) {
	n, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur.kind {
		case tokDot:
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.cur.kind != tokIdent {
				return nil, fmt.Errorf("expr: expected identifier after '.'")
			}
			name := p.cur.text
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.cur.kind == tokLParen {
				args, err := p.parseArgs()
				if err != nil {
					return nil, err
				}
				n = &callNode{base: n, name: name, args: args}
			} else {
				n = &fieldNode{base: n, name: name}
			}
		case tokLBracket:
			if err := p.advance(); err != nil {
				return nil, err
			}
			key, err := p.parseComparison()
			if err != nil {
				return nil, err
			}
			if p.cur.kind != tokRBracket {
				return nil, fmt.Errorf("expr: expected ']'")
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
			lit, ok := key.(*literalNode)
			if !ok {
				return nil, fmt.Errorf("expr: only literal keys are supported in '[...]'")
			}
			name, _ := lit.value.(string)
			n = &fieldNode{base: n, name: name}
		default:
			return n, nil
		}
	}
}

func (p *parser) parseArgs() ([]node, error) {
	if err := p.advance(); err != nil { // consume '('
		return nil, err
	}
	var args []node
	if p.cur.kind == tokRParen {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return args, nil
	}
	for {
		a, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if p.cur.kind == tokComma {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if p.cur.kind != tokRParen {
		return nil, fmt.Errorf("expr: expected ')'")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *parser) parsePrimary() (node, error) {
	switch p.cur.kind {
	case tokNumber:
		f, err := strconv.ParseFloat(p.cur.text, 64)
		if err != nil {
			return nil, fmt.Errorf("expr: invalid number %q", p.cur.text)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &literalNode{value: f}, nil
	case tokString:
		s := p.cur.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &literalNode{value: s}, nil
	case tokIdent:
		name := p.cur.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.kind == tokLParen {
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			return &callNode{name: name, args: args}, nil
		}
		return &identNode{name: name}, nil
	case tokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		n, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		if p.cur.kind != tokRParen {
			return nil, fmt.Errorf("expr: expected ')'")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return n, nil
	}
	return nil, fmt.Errorf("expr: unexpected token %q", p.cur.text)
}
