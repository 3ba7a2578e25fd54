package catalog_test

import (
	"testing"

	"github.com/informagico/fantavibe/internal/catalog"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	n := catalog.NewNormalizer()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"plain lowercase", "rossi", "rossi"},
		{"uppercase folded", "ROSSI", "rossi"},
		{"diacritics folded", "José María", "jose maria"},
		{"apostrophe stripped", "N'Golo Kanté", "ngolo kante"},
		{"eszett expands", "Großkreutz", "grosskreutz"},
		{"punctuation stripped", "O'Brien-Smith Jr.", "obriensmith jr"},
		{"whitespace collapsed", "  Marco   Rossi  ", "marco rossi"},
		{"digits stripped", "Ronaldo 9", "ronaldo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, n.Normalize(tt.input))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	n := catalog.NewNormalizer()

	for _, input := range []string{"José María", "N'Golo Kanté", "marco rossi", "Çalhanoğlu"} {
		once := n.Normalize(input)
		assert.Equal(t, once, n.Normalize(once), "normalizing %q twice should be stable", input)
	}
}

func TestNormalizeCachesResults(t *testing.T) {
	n := catalog.NewNormalizer()

	first := n.Normalize("José María")
	second := n.Normalize("José María")
	assert.Equal(t, first, second)
}
