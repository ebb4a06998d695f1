package tokenizer

import (
	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// Options configures the tokenizer behavior.
type Options struct {
	// Comma is the field delimiter. Default: ','
	Comma rune
	// Escape is the escape character. Default: '\'
	Escape rune
}

// DefaultOptions returns default tokenizer options.
func DefaultOptions() Options {
	return Options{
		Comma:  ',',
		Escape: '\\',
	}
}

// NewTokenizer creates a tokenizer for the escaped CSV dialect.
//
// Matchers are tried in order:
// 1. Escape pair (escape character plus whatever follows it)
// 2. Comma
// 3. Field content (any run of characters that is neither comma nor escape)
//
// Matching the escape pair first is what keeps \, from ever being seen as a
// field boundary, and what makes \\, an escaped backslash followed by a real one.
func NewTokenizer() tokenizer.Tokenizer {
	return NewTokenizerWithOptions(DefaultOptions())
}

// NewTokenizerWithOptions creates a tokenizer with custom options.
func NewTokenizerWithOptions(opts Options) tokenizer.Tokenizer {
	return tokenizer.NewTokenizerWithoutWhitespace(
		EscapeMatcher(opts.Escape),
		tokenizer.StringMatcherFunc(TokenComma, string(opts.Comma)),
		FieldContentMatcher(opts.Comma, opts.Escape),
	)
}

// EscapeMatcher matches the escape character and the single character after it.
//
// Grammar:
//
//	Escape = "\" [ AnyChar ] ;
func EscapeMatcher(escape rune) tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		r, ok := stream.PeekChar()
		if !ok || r != escape {
			return nil
		}
		stream.NextChar()

		value := []rune{r}
		if next, ok := stream.PeekChar(); ok {
			stream.NextChar()
			value = append(value, next)
		}
		return tokenizer.NewToken(TokenEscape, value)
	}
}

// FieldContentMatcher matches runs of characters that are not the delimiter
// or the escape character.
//
// Grammar:
//
//	Field = Character+ ;
//	Character = <any character except delimiter and escape> ;
//
// Quotes are ordinary field content here. Whether a field is quoted is
// decided once the whole segment has been collected.
func FieldContentMatcher(delim, escape rune) tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		var value []rune

		for {
			r, ok := stream.PeekChar()
			if !ok || r == delim || r == escape {
				break
			}
			stream.NextChar()
			value = append(value, r)
		}

		if len(value) == 0 {
			return nil
		}
		return tokenizer.NewToken(TokenField, value)
	}
}
