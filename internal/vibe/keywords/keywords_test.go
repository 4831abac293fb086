// internal/vibe/keywords/keywords_test.go
package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        []string
	}{
		{
			name:        "strips stopwords and preserves order",
			description: "I'm feeling like a cozy rainy day",
			want:        []string{"cozy", "rainy", "day"},
		},
		{
			name:        "lowercases and strips punctuation",
			description: "Upbeat WORKOUT!!!",
			want:        []string{"upbeat", "workout"},
		},
		{
			name:        "dedupes repeated terms keeping first occurrence",
			description: "chill chill evening chill",
			want:        []string{"chill", "evening"},
		},
		{
			name:        "all stopwords falls back to raw description",
			description: "I am feeling like some",
			want:        []string{"I am feeling like some"},
		},
		{
			name:        "keeps digits",
			description: "90s nostalgia",
			want:        []string{"90s", "nostalgia"},
		},
		{
			name:        "blank input yields nothing",
			description: "   ",
			want:        nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Derive(tt.description)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveIsDeterministic(t *testing.T) {
	description := "cozy rainy day with warm coffee and a good book"

	first := Derive(description)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Derive(description))
	}
}

func TestPrimary(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        string
	}{
		{
			name:        "joins derived terms",
			description: "I'm feeling like a cozy rainy day",
			want:        "cozy rainy day",
		},
		{
			name:        "falls back to trimmed raw description",
			description: "  I am feeling like some  ",
			want:        "I am feeling like some",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Primary(tt.description))
		})
	}
}

func TestGenreTerms(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        []string
	}{
		{
			name:        "cozy maps to romantic comedy and drama",
			description: "cozy rainy day",
			want:        []string{"romantic comedy", "drama"},
		},
		{
			name:        "rainy alone matches the same rule",
			description: "rainy evening in",
			want:        []string{"romantic comedy", "drama"},
		},
		{
			name:        "adventure maps to action",
			description: "exciting adventure weekend",
			want:        []string{"action", "adventure"},
		},
		{
			name:        "spooky maps to horror",
			description: "spooky night",
			want:        []string{"horror"},
		},
		{
			name:        "funny maps to comedy",
			description: "something funny tonight",
			want:        []string{"comedy"},
		},
		{
			name:        "first matching rule wins",
			description: "cozy but scary evening",
			want:        []string{"romantic comedy", "drama"},
		},
		{
			name:        "no mood words means no genre terms",
			description: "upbeat workout",
			want:        nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenreTerms(tt.description))
		})
	}
}
