package parser

import (
	"strings"

	"ippvm/pkg/interpreter"
	"ippvm/pkg/lexer"
	"ippvm/pkg/source"
)

type Parser struct {
	lexer        *lexer.Lexer // lexer instance
	currentToken lexer.Token  // current token
	order        int          // order assigned to the last instruction
}

// NewParser creates a new parser instance
func NewParser(l *lexer.Lexer) *Parser {
	p := &Parser{lexer: l}

	// Initialize current token
	p.nextToken()

	return p
}

// Parse reads a whole IPPcode18 program in its textual form.
func (p *Parser) Parse() (*source.Document, error) {
	doc := &source.Document{Language: interpreter.LanguageName}

	p.skipNewlines()
	if p.currentToken.Type != lexer.HEADER {
		return nil, p.errorf("missing %s header", "."+interpreter.LanguageName)
	}
	p.nextToken()
	if err := p.endOfLine(); err != nil {
		return nil, err
	}

	for {
		p.skipNewlines()
		if p.currentToken.Type == lexer.EOF {
			return doc, nil
		}

		rec, err := p.parseInstruction()
		if err != nil {
			return nil, err
		}
		doc.Instructions = append(doc.Instructions, rec)
	}
}

// parseInstruction parses one line: an opcode followed by its operands.
func (p *Parser) parseInstruction() (source.Record, error) {
	start := p.currentToken
	if start.Type != lexer.WORD {
		return source.Record{}, p.errorf("expected an instruction, found %s", start.Type)
	}

	op, ok := interpreter.LookupOpcode(start.Lexeme)
	if !ok {
		return source.Record{}, p.errorf("unknown opcode %q", start.Lexeme)
	}
	p.nextToken()

	var words []lexer.Token
	for p.currentToken.Type == lexer.WORD {
		words = append(words, p.currentToken)
		p.nextToken()
	}
	if err := p.endOfLine(); err != nil {
		return source.Record{}, err
	}

	groups := op.Groups()
	if len(words) != len(groups) {
		return source.Record{}, errorAt(start.Pos, "%s takes %d operands, got %d", op, len(groups), len(words))
	}

	p.order++
	rec := source.Record{Opcode: op.String(), Order: p.order}
	for n, w := range words {
		typ, text, err := classify(groups[n], w.Lexeme)
		if err != nil {
			return source.Record{}, errorAt(w.Pos, "%s operand %d: %v", op, n+1, err)
		}
		rec.Args = append(rec.Args, source.Arg{Pos: n + 1, Type: typ, Text: text})
	}
	return rec, nil
}

var frameTags = []string{"GF", "LF", "TF"}

// classify decides the operand type of a word from the group its position
// requires.
func classify(g interpreter.Group, word string) (typ, text string, err error) {
	switch g {
	case interpreter.GroupVar:
		return "var", word, nil
	case interpreter.GroupLabel:
		return "label", word, nil
	case interpreter.GroupType:
		return "type", word, nil
	}

	prefix, rest, found := strings.Cut(word, "@")
	if !found {
		return "", "", errMissingPrefix
	}
	for _, tag := range frameTags {
		if prefix == tag {
			return "var", word, nil
		}
	}
	switch prefix {
	case "int", "bool", "string":
		return prefix, rest, nil
	}
	return "", "", errMissingPrefix
}

// endOfLine consumes the end of an instruction line.
func (p *Parser) endOfLine() error {
	switch p.currentToken.Type {
	case lexer.NEWLINE:
		p.nextToken()
		return nil
	case lexer.EOF:
		return nil
	}
	return p.errorf("unexpected %s", p.currentToken.Type)
}

func (p *Parser) skipNewlines() {
	for p.currentToken.Type == lexer.NEWLINE {
		p.nextToken()
	}
}

// nextToken advances to the next token
func (p *Parser) nextToken() {
	p.currentToken = p.lexer.NextToken()
}
