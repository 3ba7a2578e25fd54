package catalog

import (
	"strings"
	"sync"
)

// accentFolding maps the accented characters seen in the dataset onto their
// ASCII equivalents. Anything not covered here and not a-z or space is
// stripped outright.
var accentFolding = map[rune]string{
	'à': "a", 'á': "a", 'â': "a", 'ä': "a",
	'è': "e", 'é': "e", 'ê': "e", 'ë': "e",
	'ì': "i", 'í': "i", 'î': "i", 'ï': "i",
	'ò': "o", 'ó': "o", 'ô': "o", 'ö': "o",
	'ù': "u", 'ú': "u", 'û': "u", 'ü': "u",
	'ñ': "n",
	'ç': "c", 'ć': "c",
	'ß': "ss",
}

// Normalizer folds names into their canonical search form and memoizes the
// result keyed by the raw input. The cache grows unbounded; it is scoped to
// one catalog lifetime, so the bound is the number of distinct raw strings in
// the dataset plus user queries.
type Normalizer struct {
	mu    sync.Mutex
	cache map[string]string
}

// NewNormalizer creates a Normalizer with an empty cache.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		cache: make(map[string]string),
	}
}

// Normalize lowercases, folds accents, strips everything that is not a letter
// or a space and collapses whitespace. Idempotent.
func (n *Normalizer) Normalize(name string) string {
	if name == "" {
		return ""
	}

	n.mu.Lock()
	if cached, ok := n.cache[name]; ok {
		n.mu.Unlock()
		return cached
	}
	n.mu.Unlock()

	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n':
			b.WriteByte(' ')
		default:
			if folded, ok := accentFolding[r]; ok {
				b.WriteString(folded)
			}
		}
	}
	normalized := strings.Join(strings.Fields(b.String()), " ")

	n.mu.Lock()
	n.cache[name] = normalized
	n.mu.Unlock()
	return normalized
}
