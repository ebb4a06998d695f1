package tokenizer

import "testing"

type expectedToken struct {
	kind  string
	value string
}

// TestTokenTypes tests that all token constants are defined and distinct.
func TestTokenTypes(t *testing.T) {
	kinds := []string{TokenComma, TokenEscape, TokenField}
	seen := make(map[string]bool)
	for _, k := range kinds {
		if k == "" {
			t.Error("token kind is empty")
		}
		if seen[k] {
			t.Errorf("duplicate token kind %q", k)
		}
		seen[k] = true
	}
}

func TestNewTokenizer_Tokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []expectedToken
	}{
		{
			name:     "single comma",
			input:    ",",
			expected: []expectedToken{{TokenComma, ","}},
		},
		{
			name:     "single field",
			input:    "abc",
			expected: []expectedToken{{TokenField, "abc"}},
		},
		{
			name:  "simple row",
			input: "a,b,c",
			expected: []expectedToken{
				{TokenField, "a"},
				{TokenComma, ","},
				{TokenField, "b"},
				{TokenComma, ","},
				{TokenField, "c"},
			},
		},
		{
			name:  "escaped comma is not a separator",
			input: `a\,b`,
			expected: []expectedToken{
				{TokenField, "a"},
				{TokenEscape, `\,`},
				{TokenField, "b"},
			},
		},
		{
			name:  "escaped backslash before real comma",
			input: `a\\,b`,
			expected: []expectedToken{
				{TokenField, "a"},
				{TokenEscape, `\\`},
				{TokenComma, ","},
				{TokenField, "b"},
			},
		},
		{
			name:  "quotes are field content",
			input: `"x \" y"`,
			expected: []expectedToken{
				{TokenField, `"x `},
				{TokenEscape, `\"`},
				{TokenField, ` y"`},
			},
		},
		{
			name:  "lone trailing backslash",
			input: `ab\`,
			expected: []expectedToken{
				{TokenField, "ab"},
				{TokenEscape, `\`},
			},
		},
		{
			name:  "spaces are preserved",
			input: " a , b ",
			expected: []expectedToken{
				{TokenField, " a "},
				{TokenComma, ","},
				{TokenField, " b "},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := NewTokenizer()
			tok.Initialize(tt.input)

			for i, exp := range tt.expected {
				token, ok := tok.NextToken()
				if !ok {
					t.Fatalf("token %d: expected token, got none (expected %s: %q)", i, exp.kind, exp.value)
				}
				if token.Kind() != exp.kind {
					t.Errorf("token %d: expected kind %s, got %s (value: %q)", i, exp.kind, token.Kind(), token.ValueString())
				}
				if token.ValueString() != exp.value {
					t.Errorf("token %d: expected value %q, got %q (kind: %s)", i, exp.value, token.ValueString(), token.Kind())
				}
			}

			if token, ok := tok.NextToken(); ok {
				t.Errorf("expected no more tokens, got %s: %q", token.Kind(), token.ValueString())
			}
		})
	}
}

func TestNewTokenizerWithOptions_CustomDelimiter(t *testing.T) {
	tok := NewTokenizerWithOptions(Options{Comma: ';', Escape: '\\'})
	tok.Initialize(`a;b,c`)

	want := []expectedToken{
		{TokenField, "a"},
		{TokenComma, ";"},
		{TokenField, "b,c"},
	}
	for i, exp := range want {
		token, ok := tok.NextToken()
		if !ok {
			t.Fatalf("token %d: expected token, got none", i)
		}
		if token.Kind() != exp.kind || token.ValueString() != exp.value {
			t.Errorf("token %d = %s %q, want %s %q", i, token.Kind(), token.ValueString(), exp.kind, exp.value)
		}
	}
}
