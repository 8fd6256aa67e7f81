package parser

import (
	"github.com/tinylang/minilang/pkg/ir"
	"github.com/tinylang/minilang/pkg/token"
)

var cmpOpcode = map[token.Kind]ir.Opcode{
	token.Lt:  ir.OpLt,
	token.Gt:  ir.OpGt,
	token.Le:  ir.OpLe,
	token.Ge:  ir.OpGe,
	token.Eq:  ir.OpEq,
	token.Neq: ir.OpNeq,
}

var addOpcode = map[token.Kind]ir.Opcode{
	token.Plus:  ir.OpAdd,
	token.Minus: ir.OpSub,
}

var mulOpcode = map[token.Kind]ir.Opcode{
	token.Star:    ir.OpMult,
	token.Slash:   ir.OpDiv,
	token.Modulus: ir.OpMod,
}

// parseBoolExpr parses `expression cmp_op expression`, emitting a
// comparison into a fresh temp and returning that temp as the carrier's
// result operand.
func (p *Parser) parseBoolExpr(b *ir.Builder, scope *funcScope) (ir.Operand, error) {
	lhs, err := p.parseExpression(b, scope)
	if err != nil {
		return ir.Operand{}, err
	}
	opTok := p.peek()
	opcode, ok := cmpOpcode[opTok.Kind]
	if !ok {
		return ir.Operand{}, errf("expected a comparison operator, got %v", opTok)
	}
	p.next()
	rhs, err := p.parseExpression(b, scope)
	if err != nil {
		return ir.Operand{}, err
	}
	temp := p.freshTemp()
	b.Emit(ir.OpInt, ir.Name(temp))
	b.Emit(opcode, ir.Name(temp), lhs, rhs)
	return ir.Name(temp), nil
}

// parseExpression parses `mult_expr (('+' | '-') mult_expr)*`.
func (p *Parser) parseExpression(b *ir.Builder, scope *funcScope) (ir.Operand, error) {
	lhs, err := p.parseMultExpr(b, scope)
	if err != nil {
		return ir.Operand{}, err
	}
	for {
		opcode, ok := addOpcode[p.peekKind()]
		if !ok {
			return lhs, nil
		}
		p.next()
		rhs, err := p.parseMultExpr(b, scope)
		if err != nil {
			return ir.Operand{}, err
		}
		temp := p.freshTemp()
		b.Emit(ir.OpInt, ir.Name(temp))
		b.Emit(opcode, ir.Name(temp), lhs, rhs)
		lhs = ir.Name(temp)
	}
}

// parseMultExpr parses `term (('*' | '/' | '%') term)*`.
func (p *Parser) parseMultExpr(b *ir.Builder, scope *funcScope) (ir.Operand, error) {
	lhs, err := p.parseTerm(b, scope)
	if err != nil {
		return ir.Operand{}, err
	}
	for {
		opcode, ok := mulOpcode[p.peekKind()]
		if !ok {
			return lhs, nil
		}
		p.next()
		rhs, err := p.parseTerm(b, scope)
		if err != nil {
			return ir.Operand{}, err
		}
		temp := p.freshTemp()
		b.Emit(ir.OpInt, ir.Name(temp))
		b.Emit(opcode, ir.Name(temp), lhs, rhs)
		lhs = ir.Name(temp)
	}
}

// parseTerm parses `Num | '(' expression ')' | Ident ('[' expression ']' |
// '(' args ')')?`, plus a unary-minus extension (spec.md's grammar has no
// unary production, so a leading '-' desugars to `0 - term` here, the only
// way to write a negative value beyond subtraction).
func (p *Parser) parseTerm(b *ir.Builder, scope *funcScope) (ir.Operand, error) {
	switch p.peekKind() {
	case token.Number:
		tok := p.next()
		return ir.Lit(tok.Num), nil

	case token.Minus:
		p.next()
		operand, err := p.parseTerm(b, scope)
		if err != nil {
			return ir.Operand{}, err
		}
		temp := p.freshTemp()
		b.Emit(ir.OpInt, ir.Name(temp))
		b.Emit(ir.OpSub, ir.Name(temp), ir.Lit(0), operand)
		return ir.Name(temp), nil

	case token.LParen:
		p.next()
		e, err := p.parseExpression(b, scope)
		if err != nil {
			return ir.Operand{}, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return ir.Operand{}, err
		}
		return e, nil

	case token.Identifier:
		idTok := p.next()
		name := idTok.Text

		if p.peekKind() == token.LBracket {
			if _, isArr := scope.arrays[name]; !isArr {
				if scope.scalars[name] {
					return ir.Operand{}, errf("scalar %q used with an index", name)
				}
				return ir.Operand{}, errf("undeclared identifier %q", name)
			}
			p.next()
			idx, err := p.parseExpression(b, scope)
			if err != nil {
				return ir.Operand{}, err
			}
			if _, err := p.expect(token.RBracket); err != nil {
				return ir.Operand{}, err
			}
			return ir.Indexed(name, idx), nil
		}

		if p.peekKind() == token.LParen {
			if !p.functions[name] {
				return ir.Operand{}, errf("call to undeclared function %q", name)
			}
			p.next()
			var args []ir.Operand
			if p.peekKind() != token.RParen {
				for {
					arg, err := p.parseExpression(b, scope)
					if err != nil {
						return ir.Operand{}, err
					}
					args = append(args, arg)
					if p.peekKind() != token.Comma {
						break
					}
					p.next()
				}
			}
			if _, err := p.expect(token.RParen); err != nil {
				return ir.Operand{}, err
			}
			temp := p.freshTemp()
			b.Emit(ir.OpInt, ir.Name(temp))
			b.EmitCall(ir.Name(temp), name, args...)
			return ir.Name(temp), nil
		}

		if scope.scalars[name] {
			return ir.Name(name), nil
		}
		if _, isArr := scope.arrays[name]; isArr {
			return ir.Operand{}, errf("array %q used without an index", name)
		}
		return ir.Operand{}, errf("undeclared identifier %q", name)

	default:
		return ir.Operand{}, errf("unexpected token %v in expression", p.peek())
	}
}
