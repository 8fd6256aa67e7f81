// Package parser implements minilang's recursive-descent parser: it walks
// the token stream produced by pkg/scanner, performs the declaration and
// scalar/array type checking spec.md section 4.3 requires, and emits IR
// directly as it recognizes each grammar production (spec.md section 1:
// "directly emits IR as strings" -- done here as an in-memory instruction
// builder, serialized to text once at the end, per the redesign note in
// spec.md section 9).
package parser

import (
	"fmt"

	"github.com/tinylang/minilang/pkg/ir"
	"github.com/tinylang/minilang/pkg/scanner"
	"github.com/tinylang/minilang/pkg/token"
)

// ParseError reports a semantic or syntactic failure: unexpected token,
// missing punctuation, malformed declaration, missing main, duplicate
// function/variable, undeclared identifier, scalar/array type mismatch, or
// non-positive array size (spec.md section 7).
type ParseError struct {
	Message string
}

func (e ParseError) Error() string { return e.Message }

func errf(format string, args ...interface{}) error {
	return ParseError{fmt.Sprintf(format, args...)}
}

// funcScope tracks the declarations visible within one function body.
// scalars and arrays are disjoint by construction: every declare call
// checks both maps before adding to either.
type funcScope struct {
	scalars map[string]bool
	arrays  map[string]int64
}

func newFuncScope() *funcScope {
	return &funcScope{scalars: make(map[string]bool), arrays: make(map[string]int64)}
}

func (s *funcScope) declared(name string) bool {
	return s.scalars[name] || func() bool { _, ok := s.arrays[name]; return ok }()
}

type loopLabels struct{ begin, end string }

// Parser owns all per-compilation mutable state: the token cursor, the
// shared (append-only) set of defined function names, and the fresh-name
// counters for temporaries, loop labels, and if/else labels. These are
// instance fields rather than package globals specifically so that a
// Parser is safe to construct fresh for each compilation and so that
// nested loop/if constructs cannot collide on a stale counter value --
// see spec.md section 9's redesign note.
type Parser struct {
	toks []token.Token
	pos  int

	functions map[string]bool

	tempCounter int
	loopCounter int
	ifCounter   int
	elseCounter int

	loopStack []loopLabels
}

// Compile scans and parses source, returning the generated IR text (spec.md
// section 6's stable textual wire format) or the first error encountered.
func Compile(source string) (string, error) {
	toks, err := scanner.Scan(source)
	if err != nil {
		return "", err
	}
	p := &Parser{toks: toks, functions: make(map[string]bool)}
	prog, err := p.parseProgram()
	if err != nil {
		return "", err
	}
	return ir.Serialize(prog), nil
}

func (p *Parser) parseProgram() (*ir.Program, error) {
	var prog ir.Program
	for !p.atEnd() {
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		prog.Functions = append(prog.Functions, fn)
	}
	if !p.functions["main"] {
		return nil, errf("program must define a function named main")
	}
	return &prog, nil
}

func (p *Parser) parseFunction() (ir.Function, error) {
	if _, err := p.expect(token.Func); err != nil {
		return ir.Function{}, err
	}
	nameTok, err := p.expect(token.Identifier)
	if err != nil {
		return ir.Function{}, err
	}
	name := nameTok.Text
	if p.functions[name] {
		return ir.Function{}, errf("duplicate function %q", name)
	}
	p.functions[name] = true

	if _, err := p.expect(token.LParen); err != nil {
		return ir.Function{}, err
	}
	scope := newFuncScope()
	var params []string
	if p.peekKind() != token.RParen {
		for {
			pname, err := p.parseParamDecl(scope)
			if err != nil {
				return ir.Function{}, err
			}
			params = append(params, pname)
			if p.peekKind() != token.Comma {
				break
			}
			p.next()
		}
	}
	if _, err := p.expect(token.RParen); err != nil {
		return ir.Function{}, err
	}
	if _, err := p.expect(token.LBrace); err != nil {
		return ir.Function{}, err
	}

	var b ir.Builder
	for p.peekKind() != token.RBrace {
		if err := p.parseStatement(&b, scope); err != nil {
			return ir.Function{}, err
		}
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return ir.Function{}, err
	}

	return ir.Function{Name: name, Params: params, Instrs: b.Instrs()}, nil
}

func (p *Parser) parseParamDecl(scope *funcScope) (string, error) {
	if _, err := p.expect(token.Int); err != nil {
		return "", err
	}
	if p.peekKind() == token.LBracket {
		return "", errf("array parameters are not supported: parameters are always scalars")
	}
	idTok, err := p.expect(token.Identifier)
	if err != nil {
		return "", err
	}
	if scope.declared(idTok.Text) {
		return "", errf("duplicate parameter %q", idTok.Text)
	}
	scope.scalars[idTok.Text] = true
	return idTok.Text, nil
}
