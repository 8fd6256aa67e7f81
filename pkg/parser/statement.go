package parser

import (
	"github.com/tinylang/minilang/pkg/ir"
	"github.com/tinylang/minilang/pkg/token"
)

// parseStatement recognizes one production of spec.md's `statement` rule
// and emits its IR into b.
func (p *Parser) parseStatement(b *ir.Builder, scope *funcScope) error {
	switch p.peekKind() {
	case token.Int:
		return p.parseDeclStatement(b, scope)
	case token.Identifier:
		return p.parseAssignStatement(b, scope)
	case token.Return:
		return p.parseReturnStatement(b, scope)
	case token.Print:
		return p.parsePrintStatement(b, scope)
	case token.Read:
		return p.parseReadStatement(b, scope)
	case token.Break:
		return p.parseBreakStatement(b)
	case token.Continue:
		return p.parseContinueStatement(b)
	case token.While:
		return p.parseWhileStatement(b, scope)
	case token.If:
		return p.parseIfStatement(b, scope)
	default:
		return errf("unexpected token %v at start of statement", p.peek())
	}
}

func (p *Parser) parseDeclStatement(b *ir.Builder, scope *funcScope) error {
	name, isArray, size, err := p.parseDecl(scope)
	if err != nil {
		return err
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return err
	}
	if isArray {
		b.Emit(ir.OpIntArr, ir.Name(name), ir.Lit(size))
	} else {
		b.Emit(ir.OpInt, ir.Name(name))
	}
	return nil
}

// parseDecl parses `'int' ('[' Num ']')? Ident` and records the
// declaration in scope. It does not consume the trailing ';'; its caller,
// parseDeclStatement, expects it. Formal parameters are parsed by
// parseParamDecl instead.
func (p *Parser) parseDecl(scope *funcScope) (name string, isArray bool, size int64, err error) {
	if _, err = p.expect(token.Int); err != nil {
		return "", false, 0, err
	}
	if p.peekKind() == token.LBracket {
		p.next()
		sizeTok, err := p.expect(token.Number)
		if err != nil {
			return "", false, 0, err
		}
		if sizeTok.Num <= 0 {
			return "", false, 0, errf("array size must be positive, got %d", sizeTok.Num)
		}
		if _, err := p.expect(token.RBracket); err != nil {
			return "", false, 0, err
		}
		isArray = true
		size = sizeTok.Num
	}
	idTok, err := p.expect(token.Identifier)
	if err != nil {
		return "", false, 0, err
	}
	name = idTok.Text
	if scope.declared(name) {
		return "", false, 0, errf("duplicate variable %q", name)
	}
	if isArray {
		scope.arrays[name] = size
	} else {
		scope.scalars[name] = true
	}
	return name, isArray, size, nil
}

func (p *Parser) parseAssignStatement(b *ir.Builder, scope *funcScope) error {
	lv, err := p.parseLvalue(b, scope)
	if err != nil {
		return err
	}
	if _, err := p.expect(token.Assign); err != nil {
		return err
	}
	rhs, err := p.parseExpression(b, scope)
	if err != nil {
		return err
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return err
	}
	b.Emit(ir.OpMov, lv.target(), rhs)
	return nil
}

func (p *Parser) parseReturnStatement(b *ir.Builder, scope *funcScope) error {
	p.next() // 'return'
	val, err := p.parseExpression(b, scope)
	if err != nil {
		return err
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return err
	}
	b.Emit(ir.OpRet, val)
	return nil
}

func (p *Parser) parsePrintStatement(b *ir.Builder, scope *funcScope) error {
	p.next() // 'print'
	if _, err := p.expect(token.LParen); err != nil {
		return err
	}
	val, err := p.parseExpression(b, scope)
	if err != nil {
		return err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return err
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return err
	}
	b.Emit(ir.OpOut, val)
	return nil
}

func (p *Parser) parseReadStatement(b *ir.Builder, scope *funcScope) error {
	p.next() // 'read'
	if _, err := p.expect(token.LParen); err != nil {
		return err
	}
	lv, err := p.parseLvalue(b, scope)
	if err != nil {
		return err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return err
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return err
	}
	b.Emit(ir.OpInput, lv.target())
	return nil
}

func (p *Parser) parseBreakStatement(b *ir.Builder) error {
	p.next() // 'break'
	if _, err := p.expect(token.Semicolon); err != nil {
		return err
	}
	if len(p.loopStack) == 0 {
		return errf("break used outside of any loop")
	}
	top := p.loopStack[len(p.loopStack)-1]
	b.EmitBranch(ir.OpJmp, ir.Operand{}, top.end)
	return nil
}

func (p *Parser) parseContinueStatement(b *ir.Builder) error {
	p.next() // 'continue'
	if _, err := p.expect(token.Semicolon); err != nil {
		return err
	}
	if len(p.loopStack) == 0 {
		return errf("continue used outside of any loop")
	}
	top := p.loopStack[len(p.loopStack)-1]
	b.EmitBranch(ir.OpJmp, ir.Operand{}, top.begin)
	return nil
}

func (p *Parser) parseWhileStatement(b *ir.Builder, scope *funcScope) error {
	p.next() // 'while'
	labels := p.freshLoopLabels()
	b.Label(labels.begin)
	cond, err := p.parseBoolExpr(b, scope)
	if err != nil {
		return err
	}
	b.EmitBranch(ir.OpBranchIfn, cond, labels.end)

	if _, err := p.expect(token.LBrace); err != nil {
		return err
	}
	p.loopStack = append(p.loopStack, labels)
	for p.peekKind() != token.RBrace {
		if err := p.parseStatement(b, scope); err != nil {
			return err
		}
	}
	p.loopStack = p.loopStack[:len(p.loopStack)-1]
	if _, err := p.expect(token.RBrace); err != nil {
		return err
	}

	b.EmitBranch(ir.OpJmp, ir.Operand{}, labels.begin)
	b.Label(labels.end)
	return nil
}

func (p *Parser) parseIfStatement(b *ir.Builder, scope *funcScope) error {
	p.next() // 'if'
	cond, err := p.parseBoolExpr(b, scope)
	if err != nil {
		return err
	}
	iftrue, elseLabel, endif := p.freshIfLabels()

	b.EmitBranch(ir.OpBranchIf, cond, iftrue)
	b.EmitBranch(ir.OpJmp, ir.Operand{}, elseLabel)
	b.Label(iftrue)

	if _, err := p.expect(token.LBrace); err != nil {
		return err
	}
	for p.peekKind() != token.RBrace {
		if err := p.parseStatement(b, scope); err != nil {
			return err
		}
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return err
	}

	b.EmitBranch(ir.OpJmp, ir.Operand{}, endif)
	b.Label(elseLabel)

	if p.peekKind() == token.Else {
		p.next()
		if _, err := p.expect(token.LBrace); err != nil {
			return err
		}
		for p.peekKind() != token.RBrace {
			if err := p.parseStatement(b, scope); err != nil {
				return err
			}
		}
		if _, err := p.expect(token.RBrace); err != nil {
			return err
		}
	}

	b.Label(endif)
	return nil
}

// lvalue names an assignable storage location: either a bare scalar name
// or an array element. target renders it as the ir.Operand that a %mov or
// %input destination expects.
type lvalue struct {
	isArray bool
	name    string
	index   ir.Operand
}

func (lv lvalue) target() ir.Operand {
	if lv.isArray {
		return ir.Indexed(lv.name, lv.index)
	}
	return ir.Name(lv.name)
}

func (p *Parser) parseLvalue(b *ir.Builder, scope *funcScope) (lvalue, error) {
	idTok, err := p.expect(token.Identifier)
	if err != nil {
		return lvalue{}, err
	}
	name := idTok.Text

	if _, isArr := scope.arrays[name]; isArr {
		if p.peekKind() != token.LBracket {
			return lvalue{}, errf("array %q used without an index", name)
		}
		p.next()
		idx, err := p.parseExpression(b, scope)
		if err != nil {
			return lvalue{}, err
		}
		if _, err := p.expect(token.RBracket); err != nil {
			return lvalue{}, err
		}
		return lvalue{isArray: true, name: name, index: idx}, nil
	}

	if scope.scalars[name] {
		if p.peekKind() == token.LBracket {
			return lvalue{}, errf("scalar %q used with an index", name)
		}
		return lvalue{name: name}, nil
	}

	return lvalue{}, errf("undeclared identifier %q", name)
}
