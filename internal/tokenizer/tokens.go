// Package tokenizer provides escaped-CSV tokenization using Shape's tokenizer framework.
package tokenizer

// Token type constants for the escaped CSV dialect.
//
// The tokenizer works on a single line. Record splitting happens before
// tokenization, so there is no newline token.
const (
	// Structural tokens
	TokenComma = "Comma" // , (field separator)

	// Escape is a backslash together with the character it escapes (\, \" \\ \n).
	// A lone backslash at end of input is emitted as a one-character Escape.
	TokenEscape = "Escape"

	// Field content token
	TokenField = "Field" // run of characters that are neither comma nor backslash
)
