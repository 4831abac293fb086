// internal/vibe/keywords/keywords.go

// Package keywords derives provider search terms from a free-text vibe
// description. Derivation is pure and deterministic: the same input
// always yields the same terms in the same order, so identical requests
// produce identical provider queries.
package keywords

import (
	"strings"
	"unicode"
)

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "the": {}, "of": {}, "or": {},
	"for": {}, "with": {}, "in": {}, "on": {}, "at": {}, "to": {},
	"is": {}, "it": {}, "its": {}, "am": {}, "are": {}, "be": {},
	"i": {}, "my": {}, "me": {}, "we": {}, "im": {},
	"feeling": {}, "like": {}, "some": {}, "very": {}, "really": {},
	"kind": {}, "sort": {}, "want": {}, "need": {}, "today": {},

	// contraction fragments left by separator cleanup ("i'm" -> "i m")
	"m": {}, "s": {}, "t": {}, "d": {}, "re": {}, "ll": {}, "ve": {},
}

// Derive returns the ordered, deduplicated keyword set for a vibe
// description. When every token is stripped it falls back to the raw
// trimmed description as the single term. Blank input yields nil; the
// aggregator rejects those before derivation.
func Derive(description string) []string {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return nil
	}

	tokens := strings.Fields(cleanSeparators(strings.ToLower(trimmed)))

	seen := make(map[string]struct{}, len(tokens))
	terms := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, drop := stopwords[token]; drop {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		terms = append(terms, token)
	}

	if len(terms) == 0 {
		return []string{trimmed}
	}

	return terms
}

// Primary joins the derived terms into the single query string the
// providers search with.
func Primary(description string) string {
	terms := Derive(description)
	if len(terms) == 0 {
		return strings.TrimSpace(description)
	}
	return strings.Join(terms, " ")
}

// genreRules maps mood words to movie genre search terms. Rules are
// checked in order and the first match wins.
var genreRules = []struct {
	moods  []string
	genres []string
}{
	{moods: []string{"cozy", "rainy"}, genres: []string{"romantic comedy", "drama"}},
	{moods: []string{"adventure", "exciting"}, genres: []string{"action", "adventure"}},
	{moods: []string{"scary", "spooky"}, genres: []string{"horror"}},
	{moods: []string{"funny", "comedy"}, genres: []string{"comedy"}},
}

// GenreTerms returns movie genre search terms for mood words present in
// the description, or nil when no rule matches. Matching is
// substring-based on the lowercased description.
func GenreTerms(description string) []string {
	lower := strings.ToLower(description)
	for _, rule := range genreRules {
		for _, mood := range rule.moods {
			if strings.Contains(lower, mood) {
				return rule.genres
			}
		}
	}
	return nil
}

func cleanSeparators(input string) string {
	var out strings.Builder
	lastSpace := false
	for _, r := range input {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			out.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			out.WriteRune(' ')
			lastSpace = true
		}
	}

	return out.String()
}
