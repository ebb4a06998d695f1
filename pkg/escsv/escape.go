package escsv

import (
	"fmt"
	"strings"
)

const (
	quoteChar  = '"'
	commaChar  = ','
	escapeChar = '\\'
)

// quoteReplacer escapes in a single pass, so no step can re-escape the
// output of another: \ -> \\, " -> \", , -> \,, newline -> \n.
var quoteReplacer = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`,`, `\,`,
	"\n", `\n`,
)

// Quote returns the escaped, quote-wrapped token for text.
//
//	Quote(`say "hi", bye`) // `"say \"hi\"\, bye"`
func Quote(text string) string {
	var sb strings.Builder
	sb.Grow(len(text) + 2)
	sb.WriteByte(quoteChar)
	sb.WriteString(quoteReplacer.Replace(text))
	sb.WriteByte(quoteChar)
	return sb.String()
}

// Unquote reverses Quote.
//
// Surrounding whitespace is trimmed first. The token must then start and end
// with a double quote. Inside, \n \, \" and \\ decode to newline, comma,
// quote and backslash; any other escape pair is kept as written. A bare quote
// or comma in the body, or a body ending in a lone backslash (which escapes
// the closing quote), is reported as ErrMalformedField.
func Unquote(token string) (string, error) {
	t := strings.TrimSpace(token)
	if len(t) < 2 || t[0] != quoteChar || t[len(t)-1] != quoteChar {
		return "", fmt.Errorf("%w: %q is not enclosed in double quotes", ErrMalformedField, token)
	}

	body := t[1 : len(t)-1]
	if strings.IndexByte(body, escapeChar) < 0 {
		if i := strings.IndexAny(body, `",`); i >= 0 {
			return "", fmt.Errorf("%w: unescaped %q at offset %d", ErrMalformedField, body[i], i+1)
		}
		return body, nil
	}

	var sb strings.Builder
	sb.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch c {
		case escapeChar:
			if i+1 == len(body) {
				return "", fmt.Errorf("%w: closing quote is escaped in %q", ErrMalformedField, token)
			}
			i++
			switch next := body[i]; next {
			case 'n':
				sb.WriteByte('\n')
			case commaChar, quoteChar, escapeChar:
				sb.WriteByte(next)
			default:
				sb.WriteByte(escapeChar)
				sb.WriteByte(next)
			}
		case quoteChar, commaChar:
			return "", fmt.Errorf("%w: unescaped %q at offset %d", ErrMalformedField, c, i+1)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String(), nil
}
