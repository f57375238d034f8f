// Package requirements implements component G: turning a vacancy's parsed
// sections (modules/descparse) and structured fields into an ordered list
// of skill and constraint requirements.
package requirements

import (
	"regexp"
	"strings"
)

// tokenRe is the technical tokenizer: runs of letters/digits, optionally
// followed by a `.`/`+`/`#`/`-`-joined continuation or a run of `+`/`#`
// symbols, so "c++", "c#", "node.js", and "django-rest-framework" each
// tokenize as a single technical token rather than being split apart.
var tokenRe = regexp.MustCompile(`[\p{L}\p{N}]+(?:[.+#-][\p{L}\p{N}]+|[+#]+)*`)

// Tokenize lowercases and splits text into technical tokens.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	return tokenRe.FindAllString(strings.ToLower(text), -1)
}

// NormalizeKey joins a term's tokens with single spaces, giving the stable
// normalized_key used for deduplication.
func NormalizeKey(text string) string {
	return strings.Join(Tokenize(text), " ")
}

func containsTokenSequence(tokens, sequence []string) bool {
	return ContainsTokenSequence(tokens, sequence)
}

// ContainsTokenSequence reports whether sequence appears as a contiguous
// run inside tokens, the "token-aware matching" §4.3/§4.5 both use.
func ContainsTokenSequence(tokens, sequence []string) bool {
	if len(tokens) == 0 || len(sequence) == 0 || len(sequence) > len(tokens) {
		return false
	}
	for i := 0; i <= len(tokens)-len(sequence); i++ {
		match := true
		for j, t := range sequence {
			if tokens[i+j] != t {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// Token is one tokenized run with its byte offsets in the original
// (lowercased) text, letting callers extract a snippet window centered on
// a match (§4.5 layer-1 exact-match snippet).
type Token struct {
	Text       string
	Start, End int
}

// TokenizeWithOffsets is Tokenize plus each token's byte offset.
func TokenizeWithOffsets(text string) []Token {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)
	idx := tokenRe.FindAllStringIndex(lower, -1)
	out := make([]Token, 0, len(idx))
	for _, pair := range idx {
		out = append(out, Token{Text: lower[pair[0]:pair[1]], Start: pair[0], End: pair[1]})
	}
	return out
}
