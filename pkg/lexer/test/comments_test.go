package lexer_test

import (
	"ippvm/pkg/lexer"
	"testing"
)

func TestComments(t *testing.T) {
	input := `# leading comment
.IPPcode18 # header comment
WRITE int@1#no space before comment
	# indented comment
BREAK`

	mylexer := lexer.NewLexer(input)
	expectedTokens := []lexer.TokenType{
		lexer.NEWLINE,
		lexer.HEADER, lexer.NEWLINE,
		lexer.WORD, lexer.WORD, lexer.NEWLINE,
		lexer.NEWLINE,
		lexer.WORD,
		lexer.EOF,
	}

	for i, expected := range expectedTokens {
		token := mylexer.NextToken()
		if token.Type != expected {
			t.Errorf("Token %d: expected %s, got %s", i, expected, token.Type)
		}
	}
}
