package catalog_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/informagico/fantavibe/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildFixture(t *testing.T) (*catalog.Catalog, *catalog.Searcher) {
	t.Helper()
	normalizer := catalog.NewNormalizer()
	c := catalog.NewBuilder(normalizer).Build([]catalog.Row{
		row("Rossi", "Inter", "ATT", "9"),
		row("Rossini", "Milan", "CEN", "7"),
		row("Marco Rossi", "Roma", "DIF", "8"),
		row("Bianchi", "Inter", "POR", "5"),
		row("Kanté", "Lazio", "CEN", "6"),
	})
	return c, catalog.NewSearcher(normalizer)
}

func TestSearchRejectsShortQueries(t *testing.T) {
	c, searcher := buildFixture(t)

	for _, query := range []string{"", "r", "é"} {
		assert.Empty(t, searcher.Search(query, c), "query %q is too short to match", query)
	}
}

func TestSearchExactMatchWins(t *testing.T) {
	c, searcher := buildFixture(t)

	results := searcher.Search("rossi", c)
	require.NotEmpty(t, results)
	assert.Equal(t, "Rossi", results[0].Name, "exact match must rank first")

	names := make([]string, 0, len(results))
	for _, p := range results {
		names = append(names, p.Name)
	}
	assert.Contains(t, names, "Rossini")
	assert.Contains(t, names, "Marco Rossi")
}

func TestSearchPrefixBeatsContains(t *testing.T) {
	c, searcher := buildFixture(t)

	results := searcher.Search("rossin", c)
	require.NotEmpty(t, results)
	assert.Equal(t, "Rossini", results[0].Name)
}

func TestSearchMatchesTeam(t *testing.T) {
	c, searcher := buildFixture(t)

	results := searcher.Search("inter", c)
	names := make([]string, 0, len(results))
	for _, p := range results {
		names = append(names, p.Name)
	}
	assert.Contains(t, names, "Rossi")
	assert.Contains(t, names, "Bianchi")
}

func TestSearchNormalizesQuery(t *testing.T) {
	c, searcher := buildFixture(t)

	results := searcher.Search("KANTÉ", c)
	require.NotEmpty(t, results)
	assert.Equal(t, "Kanté", results[0].Name)
}

func TestSearchDeduplicatesAcrossTokens(t *testing.T) {
	c, searcher := buildFixture(t)

	// "marco rossi" matches via full name, word token and several prefixes.
	results := searcher.Search("marco", c)
	count := 0
	for _, p := range results {
		if p.Name == "Marco Rossi" {
			count++
		}
	}
	assert.Equal(t, 1, count, "a player matched by multiple keys must appear once")
}

func TestSearchResultsAreSubsetOfContainment(t *testing.T) {
	c, searcher := buildFixture(t)
	normalizer := catalog.NewNormalizer()

	for _, query := range []string{"ro", "inter", "an", "kan"} {
		normalized := normalizer.Normalize(query)
		for _, p := range searcher.Search(query, c) {
			team := normalizer.Normalize(p.Team)
			matched := strings.Contains(p.NormalizedName, normalized) || strings.Contains(team, normalized)
			assert.True(t, matched, "player %q returned for %q without a containing token", p.Name, query)
		}
	}
}

func TestSearchCapsResults(t *testing.T) {
	normalizer := catalog.NewNormalizer()
	rows := make([]catalog.Row, 0, 80)
	for i := 0; i < 80; i++ {
		rows = append(rows, row(fmt.Sprintf("Giocatore %02d", i), "Inter", "ATT", "1"))
	}
	c := catalog.NewBuilder(normalizer).Build(rows)
	searcher := catalog.NewSearcher(normalizer)

	results := searcher.Search("giocatore", c)
	assert.Len(t, results, 50)
}

func TestSearchInjuredToken(t *testing.T) {
	normalizer := catalog.NewNormalizer()
	c := catalog.NewBuilder(normalizer).Build([]catalog.Row{
		{catalog.ColName: "Rossi", catalog.ColTeam: "Inter", catalog.ColRole: "ATT", catalog.ColInjured: "true"},
		{catalog.ColName: "Bianchi", catalog.ColTeam: "Milan", catalog.ColRole: "DIF"},
	})
	searcher := catalog.NewSearcher(normalizer)

	results := searcher.Search("injured", c)
	require.Len(t, results, 1)
	assert.Equal(t, "Rossi", results[0].Name)
}

func TestSearchFallbackWithoutIndex(t *testing.T) {
	normalizer := catalog.NewNormalizer()
	c := catalog.NewBuilder(normalizer).Build([]catalog.Row{
		row("Rossi", "Inter", "ATT", "9"),
		row("Bianchi", "Inter", "POR", "5"),
	})
	c.Index = nil
	searcher := catalog.NewSearcher(normalizer)

	// Name matching still works.
	results := searcher.Search("rossi", c)
	require.Len(t, results, 1)
	assert.Equal(t, "Rossi", results[0].Name)

	// Team matching is not available on the degraded path.
	assert.Empty(t, searcher.Search("inter", c))
}
