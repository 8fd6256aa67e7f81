package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinylang/minilang/pkg/token"
)

func TestScan_basic(t *testing.T) {
	toks, err := Scan(`func main() { int x; x = 1 + 2 * 3; print(x); }`)
	require.NoError(t, err)

	var kinds []token.Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []token.Kind{
		token.Func, token.Identifier, token.LParen, token.RParen, token.LBrace,
		token.Int, token.Identifier, token.Semicolon,
		token.Identifier, token.Assign, token.Number, token.Plus, token.Number, token.Star, token.Number, token.Semicolon,
		token.Print, token.LParen, token.Identifier, token.RParen, token.Semicolon,
		token.RBrace,
	}, kinds)
}

func TestScan_comparators(t *testing.T) {
	toks, err := Scan("< <= > >= == != =")
	require.NoError(t, err)
	var kinds []token.Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []token.Kind{
		token.Lt, token.Le, token.Gt, token.Ge, token.Eq, token.Neq, token.Assign,
	}, kinds)
}

func TestScan_comment(t *testing.T) {
	toks, err := Scan("# a comment\nint x")
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, token.Int, toks[0].Kind)
	assert.Equal(t, token.Identifier, toks[1].Kind)
}

func TestScan_reservedWords(t *testing.T) {
	toks, err := Scan("func return int print read else break continue while if")
	require.NoError(t, err)
	want := []token.Kind{
		token.Func, token.Return, token.Int, token.Print, token.Read,
		token.Else, token.Break, token.Continue, token.While, token.If,
	}
	require.Len(t, toks, len(want))
	for i, k := range want {
		assert.Equal(t, k, toks[i].Kind)
	}
}

func TestScan_number(t *testing.T) {
	toks, err := Scan("123")
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, token.Number, toks[0].Kind)
	assert.EqualValues(t, 123, toks[0].Num)
}

func TestScan_digitRunFollowedByLetterIsError(t *testing.T) {
	_, err := Scan("12abc")
	require.Error(t, err)
}

func TestScan_loneBangIsError(t *testing.T) {
	_, err := Scan("!")
	require.Error(t, err)
}

func TestScan_unidentifiedSymbol(t *testing.T) {
	_, err := Scan("^^^")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unidentified symbol")
}
