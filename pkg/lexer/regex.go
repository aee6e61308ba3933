package lexer

import (
	"regexp"
)

// Token regex patterns
var tokenRegexes = map[TokenType]*regexp.Regexp{
	NEWLINE: regexp.MustCompile(`^\r?\n`),
	WORD:    regexp.MustCompile(`^[^\s#]+`),
}

var (
	whitespaceRegex = regexp.MustCompile(`^[ \t\f\v\r]+`)
	commentRegex    = regexp.MustCompile(`^#[^\n]*`)
	headerRegex     = regexp.MustCompile(`(?i)^\.ippcode18$`)
)

// Token precedence order for matching
var tokenPrecedenceOrder = []TokenType{NEWLINE, WORD}

// MatchToken matches the token at the start of the string. Whitespace and
// comments are reported as EOF with a non-empty match so the caller can skip
// them.
func MatchToken(s string) (TokenType, string, bool) {
	if s == "" {
		return EOF, "", false
	} else if match := whitespaceRegex.FindString(s); match != "" {
		return EOF, match, true
	} else if match := commentRegex.FindString(s); match != "" {
		return EOF, match, true
	}

	for _, tokenType := range tokenPrecedenceOrder {
		if regex, ok := tokenRegexes[tokenType]; ok {
			if match := regex.FindString(s); match != "" {
				if tokenType == WORD && headerRegex.MatchString(match) {
					return HEADER, match, true
				}
				return tokenType, match, true
			}
		}
	}

	return ILLEGAL, string(s[0]), false
}
