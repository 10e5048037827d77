package css

import (
	"strings"

	tdparse "github.com/tdewolff/parse/v2"
	tdcss "github.com/tdewolff/parse/v2/css"

	"github.com/lukehoban/browser/intern"
)

// TokenType is the closed set of token kinds the property parsers and
// selector/rule assembly see. The engine itself doesn't tokenize; it asks
// the tdewolff/parse/v2/css lexer for raw tokens and folds its larger CSS
// Syntax Module token set down to the CSS 2.1 vocabulary the rest of the
// engine expects.
type TokenType int

const (
	EOF TokenType = iota
	IDENT
	STRING
	NUMBER
	DIMENSION
	PERCENTAGE
	URI
	FUNCTION
	HASH
	CHAR
	S // whitespace
)

// Token carries an interned string for its textual content, plus (for
// IDENT) an already-case-folded sibling handle so selector and keyword
// matching never re-folds a string twice.
type Token struct {
	Type  TokenType
	Text  *intern.Name
	Ident *intern.Name // case-folded form, only set for IDENT and FUNCTION
}

// Lower returns the case-folded identifier text, or the raw text for any
// other token type (CHAR tokens compare case-sensitively by construction).
func (t Token) Lower() string {
	if t.Type == IDENT && t.Ident != nil {
		return t.Ident.String()
	}
	return t.Text.String()
}

// Raw returns the token's original-case text.
func (t Token) Raw() string {
	return t.Text.String()
}

// Tokenize drives the external tokenizer over src and returns the
// resulting token vector, with every textual token interned into dict.
// This is the boundary between charset-decode-and-tokenize and the
// engine's own property/selector grammar.
func Tokenize(src string, dict *intern.Dict) *Vector {
	lexer := tdcss.NewLexer(tdparse.NewInputString(src))
	var toks []Token
	for {
		tt, data := lexer.Next()
		if tt == tdcss.ErrorToken {
			break
		}
		if tt == tdcss.AtKeywordToken {
			// "@name" becomes the CHAR '@' and IDENT pair the rule loop reads.
			name := strings.TrimPrefix(string(data), "@")
			toks = append(toks, Token{Type: CHAR, Text: dict.Intern("@")},
				Token{Type: IDENT, Text: dict.Intern(name), Ident: dict.Intern(strings.ToLower(name))})
			continue
		}
		if tt == tdcss.IncludeMatchToken || tt == tdcss.DashMatchToken {
			// "~=" and "|=" become two CHAR tokens, as the attribute grammar reads them.
			toks = append(toks, Token{Type: CHAR, Text: dict.Intern(string(data[:1]))},
				Token{Type: CHAR, Text: dict.Intern("=")})
			continue
		}
		if tok, ok := convertToken(tt, data, dict); ok {
			toks = append(toks, tok)
		}
	}
	return &Vector{toks: toks}
}

func convertToken(tt tdcss.TokenType, data []byte, dict *intern.Dict) (Token, bool) {
	text := string(data)
	switch tt {
	case tdcss.WhitespaceToken, tdcss.CommentToken:
		return Token{Type: S, Text: dict.Intern(" ")}, true
	case tdcss.IdentToken:
		name := dict.Intern(text)
		return Token{Type: IDENT, Text: name, Ident: dict.Intern(strings.ToLower(text))}, true
	case tdcss.StringToken, tdcss.BadStringToken:
		return Token{Type: STRING, Text: dict.Intern(unquote(text))}, true
	case tdcss.NumberToken, tdcss.UnicodeRangeToken:
		return Token{Type: NUMBER, Text: dict.Intern(text)}, true
	case tdcss.PercentageToken:
		return Token{Type: PERCENTAGE, Text: dict.Intern(text)}, true
	case tdcss.DimensionToken:
		return Token{Type: DIMENSION, Text: dict.Intern(text)}, true
	case tdcss.URLToken, tdcss.BadURLToken:
		return Token{Type: URI, Text: dict.Intern(unquoteURL(text))}, true
	case tdcss.FunctionToken:
		// tdewolff includes the trailing '(' in the function name.
		name := strings.TrimSuffix(text, "(")
		return Token{Type: FUNCTION, Text: dict.Intern(name), Ident: dict.Intern(strings.ToLower(name))}, true
	case tdcss.HashToken:
		return Token{Type: HASH, Text: dict.Intern(strings.TrimPrefix(text, "#"))}, true
	case tdcss.CDOToken, tdcss.CDCToken:
		return Token{}, false
	default:
		// Every remaining token type (colon, semicolon, braces, parens,
		// brackets, comma, delimiters) is a single significant character
		// to the selector/declaration grammar. At-keywords and the "~=" /
		// "|=" match operators never reach here; Tokenize splits them.
		if text == "" {
			return Token{}, false
		}
		return Token{Type: CHAR, Text: dict.Intern(text)}, true
	}
}

func unquote(s string) string {
	if len(s) >= 2 {
		q := s[0]
		if (q == '"' || q == '\'') && s[len(s)-1] == q {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func unquoteURL(s string) string {
	s = strings.TrimPrefix(s, "url(")
	s = strings.TrimSuffix(s, ")")
	s = strings.TrimSpace(s)
	return unquote(s)
}

// Vector is a token vector plus a cursor, giving parsers a rollback
// discipline: Mark captures the cursor, Restore discards everything read
// since, and a successful parse simply never calls Restore.
type Vector struct {
	toks []Token
	pos  int
}

// Mark returns the current cursor, to be passed to Restore on failure.
func (v *Vector) Mark() int { return v.pos }

// Restore resets the cursor to a value previously returned by Mark.
func (v *Vector) Restore(mark int) { v.pos = mark }

// Peek returns the token at the cursor without advancing it.
func (v *Vector) Peek() Token {
	if v.pos >= len(v.toks) {
		return Token{Type: EOF}
	}
	return v.toks[v.pos]
}

// PeekAt returns the token offset tokens ahead of the cursor.
func (v *Vector) PeekAt(offset int) Token {
	i := v.pos + offset
	if i < 0 || i >= len(v.toks) {
		return Token{Type: EOF}
	}
	return v.toks[i]
}

// Next returns the token at the cursor and advances it.
func (v *Vector) Next() Token {
	t := v.Peek()
	if v.pos < len(v.toks) {
		v.pos++
	}
	return t
}

// SkipWhitespace advances the cursor past any run of S tokens.
func (v *Vector) SkipWhitespace() {
	for v.Peek().Type == S {
		v.Next()
	}
}

// AtEnd reports whether the cursor has reached the end of the vector.
func (v *Vector) AtEnd() bool { return v.pos >= len(v.toks) }
