// Package score implements lexical relevance scoring for catalog search.
package score

import (
	"strings"
	"unicode"
)

// Score components.
const (
	PhraseBonus    = 1000
	WordBonus      = 100
	AdjacencyBonus = 50
)

// Query is a parsed search query. The zero value matches nothing and scores 0.
type Query struct {
	tokens []string
	phrase string
}

// Parse tokenizes a raw query. maxTokens > 0 keeps only the first maxTokens tokens.
func Parse(raw string, maxTokens int) Query {
	tokens := Tokenize(raw)
	if maxTokens > 0 && len(tokens) > maxTokens {
		tokens = tokens[:maxTokens]
	}
	return Query{tokens: tokens, phrase: strings.Join(tokens, " ")}
}

// Tokenize splits s into lowercase word tokens (letters, digits, underscore).
func Tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !isWordRune(r)
	})
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Tokens returns the query tokens.
func (q Query) Tokens() []string { return q.tokens }

// Phrase returns the tokens joined by single spaces.
func (q Query) Phrase() string { return q.phrase }

// IsEmpty reports whether the query has no tokens.
func (q Query) IsEmpty() bool { return len(q.tokens) == 0 }

// Matches reports whether any token is a case-insensitive substring of any value.
func (q Query) Matches(values []string) bool {
	if q.IsEmpty() {
		return false
	}
	for _, v := range values {
		lv := strings.ToLower(v)
		for _, tok := range q.tokens {
			if strings.Contains(lv, tok) {
				return true
			}
		}
	}
	return false
}

// Score computes the relevance of values against the query.
func (q Query) Score(values []string) int {
	if q.IsEmpty() {
		return 0
	}
	hay := Haystack(values)
	if hay == "" {
		return 0
	}

	total := 0
	if strings.Contains(hay, q.phrase) {
		total += PhraseBonus
	}
	for _, tok := range q.tokens {
		if strings.Contains(hay, tok) {
			total += WordBonus
		}
	}
	for i := 0; i+1 < len(q.tokens); i++ {
		if strings.Contains(hay, q.tokens[i]+" "+q.tokens[i+1]) {
			total += AdjacencyBonus
		}
	}
	return total
}

// Haystack joins non-empty values, lowercases them and collapses whitespace.
func Haystack(values []string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(strings.Fields(strings.ToLower(strings.Join(parts, " "))), " ")
}
