package catalog_test

import (
	"strings"
	"testing"

	"github.com/informagico/fantavibe/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBuilder() *catalog.Builder {
	return catalog.NewBuilder(catalog.NewNormalizer())
}

func row(name, team, role, convenience string) catalog.Row {
	return catalog.Row{
		catalog.ColName:        name,
		catalog.ColTeam:        team,
		catalog.ColRole:        role,
		catalog.ColConvenience: convenience,
	}
}

func TestBuildEmptyInput(t *testing.T) {
	c := newBuilder().Build(nil)
	assert.Empty(t, c.Players)
	assert.Empty(t, c.Index)
}

func TestBuildKeepsEveryRow(t *testing.T) {
	rows := []catalog.Row{
		row("Marco Rossi", "Inter", "ATT", "8.5"),
		{}, // fully empty row must still survive
		row("", "Milan", "DIF", "not-a-number"),
	}

	c := newBuilder().Build(rows)
	require.Len(t, c.Players, len(rows), "no rows may be dropped")
}

func TestBuildPlayerFields(t *testing.T) {
	rows := []catalog.Row{{
		catalog.ColName:        "José María",
		catalog.ColTeam:        "Napoli",
		catalog.ColRole:        "TRQ",
		catalog.ColConvenience: "7.2",
		catalog.ColFantasyAvg:  "6.8",
		catalog.ColAppearances: "31",
		catalog.ColOverallScore: "74",
		catalog.ColInjured:     "true",
		"Quotazione":           "23",
	}}

	c := newBuilder().Build(rows)
	p := c.Players[0]

	assert.Equal(t, "josé_maría", p.ID)
	assert.Equal(t, "jose maria", p.NormalizedName)
	assert.Equal(t, catalog.RolePlaymaker, p.Role)
	assert.Equal(t, 7.2, p.Convenience)
	assert.Equal(t, 6.8, p.FantasyAvg)
	assert.Equal(t, 31.0, p.Appearances)
	assert.Equal(t, 74.0, p.OverallScore)
	assert.True(t, p.Injured)
	assert.Equal(t, "23", p.Raw["Quotazione"], "original fields must be preserved verbatim")
}

func TestBuildDefaultsMissingFields(t *testing.T) {
	c := newBuilder().Build([]catalog.Row{{catalog.ColName: "Bianchi", catalog.ColRole: "DIF"}})
	p := c.Players[0]

	assert.Zero(t, p.Convenience)
	assert.Zero(t, p.FantasyAvg)
	assert.Zero(t, p.Appearances)
	assert.Zero(t, p.OverallScore)
	assert.False(t, p.Injured)
}

func TestBuildGeneratesFallbackIDForMissingName(t *testing.T) {
	c := newBuilder().Build([]catalog.Row{
		{catalog.ColRole: "ATT"},
		{catalog.ColRole: "ATT"},
	})

	first, second := c.Players[0].ID, c.Players[1].ID
	assert.True(t, strings.HasPrefix(first, "player_"))
	assert.True(t, strings.HasPrefix(second, "player_"))
	assert.NotEqual(t, first, second, "fallback ids must not collide")
}

func TestBuildRankings(t *testing.T) {
	rows := []catalog.Row{
		row("A", "Inter", "ATT", "90"),
		row("B", "Milan", "ATT", "85"),
		row("C", "Roma", "ATT", "65"),
		row("D", "Lazio", "DIF", "40"),
	}

	c := newBuilder().Build(rows)

	assert.Equal(t, 1, c.Players[0].OriginalRank)
	assert.Equal(t, 2, c.Players[1].OriginalRank)
	assert.Equal(t, 3, c.Players[2].OriginalRank)
	for i := 0; i < 3; i++ {
		assert.Equal(t, 3, c.Players[i].TotalInRole)
	}
	assert.Equal(t, 1, c.Players[3].OriginalRank)
	assert.Equal(t, 1, c.Players[3].TotalInRole)
}

func TestBuildRankingsTiesKeepInputOrder(t *testing.T) {
	rows := []catalog.Row{
		row("First", "Inter", "CEN", "50"),
		row("Second", "Milan", "CEN", "50"),
	}

	c := newBuilder().Build(rows)
	assert.Equal(t, 1, c.Players[0].OriginalRank, "ties break by input order")
	assert.Equal(t, 2, c.Players[1].OriginalRank)
}

func TestBuildRankingsArePermutations(t *testing.T) {
	rows := []catalog.Row{
		row("A", "Inter", "POR", "3"),
		row("B", "Milan", "POR", "9"),
		row("C", "Roma", "POR", "9"),
		row("D", "Lazio", "POR", "1"),
		row("E", "Parma", "POR", "5"),
	}

	c := newBuilder().Build(rows)

	seen := make(map[int]bool)
	var prevConvenience float64
	for rank := 1; rank <= len(rows); rank++ {
		for _, p := range c.Players {
			if p.OriginalRank != rank {
				continue
			}
			assert.False(t, seen[rank], "rank %d assigned twice", rank)
			seen[rank] = true
			if rank > 1 {
				assert.LessOrEqual(t, p.Convenience, prevConvenience, "rank must be non-increasing in convenience")
			}
			prevConvenience = p.Convenience
		}
	}
	assert.Len(t, seen, len(rows), "ranks must cover 1..totalInRole with no gaps")
}

func TestBuildIndexTokens(t *testing.T) {
	rows := []catalog.Row{{
		catalog.ColName:    "Marco Rossi",
		catalog.ColTeam:    "Inter",
		catalog.ColRole:    "ATT",
		catalog.ColInjured: "true",
	}}

	c := newBuilder().Build(rows)

	// Full name, full team, individual words, flag token.
	for _, token := range []string{"marco rossi", "inter", "marco", "rossi", catalog.TokenInjured} {
		assert.Contains(t, c.Index, token, "expected token %q in index", token)
	}
	// Prefixes from 3 up to 15 characters of the normalized name.
	for _, prefix := range []string{"mar", "marc", "marco", "marco ", "marco r"} {
		assert.Contains(t, c.Index, prefix, "expected prefix %q in index", prefix)
	}
	// Too-short tokens stay out.
	assert.NotContains(t, c.Index, "ma")
}

func TestBuildIndexPrefixCapAtFifteen(t *testing.T) {
	c := newBuilder().Build([]catalog.Row{row("Abcdefghijklmnopqrstuvwxyz", "Inter", "ATT", "1")})

	assert.Contains(t, c.Index, "abcdefghijklmno", "prefix of length 15 should be indexed")
	assert.NotContains(t, c.Index, "abcdefghijklmnop", "prefixes beyond 15 characters should not be indexed")
}

func TestBuildIsDeterministic(t *testing.T) {
	rows := []catalog.Row{
		row("Marco Rossi", "Inter", "ATT", "8"),
		row("Luca Bianchi", "Milan", "DIF", "6"),
	}

	first := newBuilder().Build(rows)
	second := newBuilder().Build(rows)

	require.Equal(t, first.Players, second.Players)
	require.Equal(t, first.Index, second.Index)
}
