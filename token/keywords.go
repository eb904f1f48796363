package token

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var upperCaser = cases.Upper(language.Und)

var keywords map[string]Token

func init() {
	keywords = make(map[string]Token, int(keywordEnd-keywordBeg))
	for tok := keywordBeg + 1; tok < keywordEnd; tok++ {
		keywords[tokenNames[tok]] = tok
	}
}

// Lookup resolves identifier text to a keyword Token, normalizing to
// uppercase ASCII first (SQLite keywords are case-insensitive). Non-matching
// text yields IDENT.
func Lookup(ident string) Token {
	if isAllUpperASCII(ident) {
		if tok, ok := keywords[ident]; ok {
			return tok
		}
		return IDENT
	}
	upper := upperCaser.String(ident)
	if tok, ok := keywords[upper]; ok {
		return tok
	}
	return IDENT
}

func isAllUpperASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			return false
		}
	}
	return true
}
