// Package parser implements LL(1) recursive descent splitting of escaped-CSV lines.
//
// The parser only finds field boundaries. It does not unescape or classify
// fields; that is left to the value layer, which decides per segment whether
// the text is a quoted token or a literal.
//
// Grammar:
//
//	Text    = { Line "\n" } [ Line ] ;
//	Line    = Segment { "," Segment } ;
//	Segment = { Field | Escape } ;
//	Escape  = "\" AnyChar ;
package parser

import (
	"strings"
	"unicode/utf8"

	shapetokenizer "github.com/shapestone/shape-core/pkg/tokenizer"
	"github.com/shapestone/shape-escsv/internal/tokenizer"
)

// Options configures the parser behavior.
type Options struct {
	// Comma is the field delimiter. Default: ','
	Comma rune
	// Escape is the escape character. Default: '\'
	Escape rune
}

// DefaultOptions returns default parser options.
func DefaultOptions() Options {
	return Options{
		Comma:  ',',
		Escape: '\\',
	}
}

// Segment is the raw text of one field together with its byte offset in the line.
type Segment struct {
	Text   string
	Offset int
}

// Line is a non-blank line of a text blob with its 1-based line number.
type Line struct {
	Number int
	Text   string
}

// Parser splits a single line into segments.
// It maintains a single token lookahead for predictive parsing.
type Parser struct {
	tokenizer *shapetokenizer.Tokenizer
	current   *shapetokenizer.Token
	hasToken  bool
	line      string
	offset    int
}

// NewParser creates a new parser for the given line.
func NewParser(line string) *Parser {
	return NewParserWithOptions(line, DefaultOptions())
}

// NewParserWithOptions creates a new parser with custom options.
func NewParserWithOptions(line string, opts Options) *Parser {
	tok := tokenizer.NewTokenizerWithOptions(tokenizer.Options{
		Comma:  opts.Comma,
		Escape: opts.Escape,
	})
	tok.Initialize(line)

	p := &Parser{
		tokenizer: &tok,
		line:      line,
	}
	p.advance() // Load first token
	return p
}

// Parse splits the line into segments.
//
// An empty line yields no segments. Otherwise there is always one more
// segment than there are unescaped delimiters, so "," yields two empty
// segments and a trailing delimiter yields a trailing empty segment.
func (p *Parser) Parse() []Segment {
	if !p.hasToken {
		return nil
	}

	segments := make([]Segment, 0, 8)
	segments = append(segments, p.parseSegment())

	for p.peek() != nil && p.peek().Kind() == tokenizer.TokenComma {
		p.advance() // consume comma
		segments = append(segments, p.parseSegment())
	}

	return segments
}

// parseSegment consumes Field and Escape tokens up to the next delimiter and
// returns the bytes they cover in the original line.
func (p *Parser) parseSegment() Segment {
	start := p.offset

	for p.peek() != nil && p.peek().Kind() != tokenizer.TokenComma {
		p.advance()
	}

	return Segment{Text: p.line[start:p.offset], Offset: start}
}

// peek returns current token without advancing.
func (p *Parser) peek() *shapetokenizer.Token {
	return p.current
}

// advance moves to next token, keeping the byte offset of the lookahead.
func (p *Parser) advance() {
	if p.current != nil {
		p.offset += p.width(p.current)
	}

	token, ok := p.tokenizer.NextToken()
	if ok {
		p.current = token
		p.hasToken = true
	} else {
		p.hasToken = false
		p.current = nil
	}
}

// width returns the number of bytes token covers in the original line.
// The tokenizer decodes the line to runes, so an invalid byte arrives as a
// single utf8.RuneError; decoding the line itself keeps it one byte wide.
func (p *Parser) width(token *shapetokenizer.Token) int {
	n := 0
	for runes := utf8.RuneCountInString(token.ValueString()); runes > 0 && p.offset+n < len(p.line); runes-- {
		_, size := utf8.DecodeRuneInString(p.line[p.offset+n:])
		n += size
	}
	return n
}

// SplitFields splits one line into raw segments using the default options.
func SplitFields(line string) []Segment {
	return NewParser(line).Parse()
}

// SplitLines splits text on newlines and drops every blank line, including
// lines made only of whitespace. Line numbers refer to the original text.
func SplitLines(text string) []Line {
	raw := strings.Split(text, "\n")
	lines := make([]Line, 0, len(raw))
	for i, l := range raw {
		if strings.TrimSpace(l) == "" {
			continue
		}
		lines = append(lines, Line{Number: i + 1, Text: l})
	}
	return lines
}
