package parser

import (
	"errors"
	"fmt"

	"ippvm/pkg/interpreter"
	"ippvm/pkg/lexer"
)

var errMissingPrefix = errors.New("symbol must start with GF@, LF@, TF@, int@, bool@ or string@")

// errorf reports a syntax error at the current token
func (p *Parser) errorf(format string, args ...any) error {
	return errorAt(p.currentToken.Pos, format, args...)
}

// errorAt reports a syntax error at pos
func errorAt(pos lexer.Position, format string, args ...any) error {
	return interpreter.Errorf(interpreter.KindSourceFormat, "%s at %s", fmt.Sprintf(format, args...), pos)
}
