package parser

import "github.com/tinylang/minilang/pkg/token"

func (p *Parser) atEnd() bool { return p.pos >= len(p.toks) }

func (p *Parser) peek() token.Token {
	if p.atEnd() {
		return token.Token{Kind: token.Invalid}
	}
	return p.toks[p.pos]
}

func (p *Parser) peekKind() token.Kind { return p.peek().Kind }

func (p *Parser) next() token.Token {
	t := p.peek()
	if !p.atEnd() {
		p.pos++
	}
	return t
}

func (p *Parser) expect(k token.Kind) (token.Token, error) {
	if p.peekKind() != k {
		if p.atEnd() {
			return token.Token{}, errf("unexpected end of input, expected %v", k)
		}
		return token.Token{}, errf("unexpected token %v, expected %v", p.peek(), k)
	}
	return p.next(), nil
}
