// Package token implements the assembler's token stream: a forward
// cursor over whitespace-separated source text with "#"-to-end-of-line
// comments stripped.
package token

import (
	"strings"

	"github.com/vybium/blockasm/internal/blockasm/asmerr"
)

// EOF is the sentinel text returned by Peek and Advance once the stream
// is exhausted, and by Current before the first Advance.
const EOF = ""

// Token is an immutable slice of source text plus its position, used
// for error construction.
type Token struct {
	Text string
	Pos  int // byte offset of Text in the original source
}

func (t Token) String() string { return t.Text }

// Stream is a forward-only cursor over a source string's tokens.
type Stream struct {
	toks []Token
	i    int
}

// NewStream tokenizes source, stripping line comments, and rejects an
// empty or whitespace-only source with an error.
func NewStream(source string) (*Stream, error) {
	toks := tokenize(source)
	if len(toks) == 0 {
		return nil, asmerr.NewEmptySource()
	}
	return &Stream{toks: toks}, nil
}

func tokenize(source string) []Token {
	var toks []Token
	i := 0
	n := len(source)
	for i < n {
		c := source[i]
		if c == '#' {
			for i < n && source[i] != '\n' {
				i++
			}
			continue
		}
		if isSpace(c) {
			i++
			continue
		}
		start := i
		for i < n && !isSpace(source[i]) && source[i] != '#' {
			i++
		}
		toks = append(toks, Token{Text: source[start:i], Pos: start})
	}
	return toks
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

// HasMore reports whether any token remains to be consumed.
func (s *Stream) HasMore() bool { return s.i < len(s.toks) }

// Peek returns the next token without consuming it. It returns the EOF
// sentinel token once exhausted.
func (s *Stream) Peek() Token {
	if !s.HasMore() {
		return Token{Text: EOF}
	}
	return s.toks[s.i]
}

// Advance consumes and returns the next token.
func (s *Stream) Advance() Token {
	t := s.Peek()
	if s.HasMore() {
		s.i++
	}
	return t
}

// Current returns the most recently consumed token, for error
// construction; it is the EOF sentinel before the first Advance.
func (s *Stream) Current() Token {
	if s.i == 0 {
		return Token{Text: EOF}
	}
	return s.toks[s.i-1]
}

// All materializes every remaining token as a slice, consuming the
// stream. Higher layers (the module parser, the block builder's
// flatten stage) work over slices so they can scan ahead for matching
// "end" tokens without a separate lookahead buffer.
func (s *Stream) All() []Token {
	rest := s.toks[s.i:]
	s.i = len(s.toks)
	return rest
}

// Split divides a token's text on "." into its mnemonic root and
// dotted parameters, e.g. "push.2" -> ("push", ["2"]),
// "exec.alias::name" -> ("exec", ["alias::name"]).
func Split(text string) (root string, params []string) {
	parts := strings.Split(text, ".")
	return parts[0], parts[1:]
}
