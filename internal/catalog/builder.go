package catalog

import (
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Flag tokens added to the search index so users can search by condition
// rather than by name.
const (
	TokenInjured     = "injured"
	TokenRecommended = "recommended"
	TokenNewSigning  = "newsigning"
)

// Builder turns decoded spreadsheet rows into a catalog. It never rejects a
// malformed row; missing fields are defaulted in place.
type Builder struct {
	normalizer *Normalizer
}

// NewBuilder creates a Builder around the given normalizer.
func NewBuilder(normalizer *Normalizer) *Builder {
	return &Builder{normalizer: normalizer}
}

// Build assigns identifiers, normalizes the key numeric fields, computes
// per-role rankings and constructs the search index. Deterministic given
// identical input order; no I/O.
func (b *Builder) Build(rows []Row) *Catalog {
	if len(rows) == 0 {
		return &Catalog{Players: []Player{}, Index: Index{}}
	}

	players := make([]Player, 0, len(rows))
	for _, row := range rows {
		players = append(players, b.buildPlayer(row))
	}

	assignRankings(players)

	return &Catalog{
		Players: players,
		Index:   b.buildIndex(players),
	}
}

func (b *Builder) buildPlayer(row Row) Player {
	name := row[ColName]
	role := ParseRole(row[ColRole])
	if role == RoleUnknown && row[ColRole] != "" {
		log.Warn("Unknown role in dataset row", "role", row[ColRole], "name", name)
	}

	return Player{
		ID:             playerID(name),
		Name:           name,
		Team:           row[ColTeam],
		Role:           role,
		NormalizedName: b.normalizer.Normalize(name),
		Convenience:    numericField(row, ColConvenience),
		FantasyAvg:     numericField(row, ColFantasyAvg),
		Appearances:    numericField(row, ColAppearances),
		OverallScore:   numericField(row, ColOverallScore),
		Injured:        boolField(row, ColInjured),
		Recommended:    boolField(row, ColRecommended),
		NewSigning:     boolField(row, ColNewSigning),
		Skills:         ParseSkills(row),
		Raw:            row,
	}
}

// playerID derives a stable identifier from the display name: whitespace
// collapsed to underscores, lowercased. Two distinct players with the same
// normalized name collide; the source data has no disambiguating key, so the
// collision is a known gap rather than something we paper over.
func playerID(name string) string {
	if name == "" {
		return "player_" + uuid.NewString()
	}
	return strings.ToLower(strings.Join(strings.Fields(name), "_"))
}

func numericField(row Row, col string) float64 {
	raw, ok := row[col]
	if !ok || raw == "" {
		return 0
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return 0
	}
	return value
}

func boolField(row Row, col string) bool {
	return strings.EqualFold(row[col], "true")
}

// assignRankings partitions players by role and ranks each cohort by
// descending convenience score. Ties keep input order (stable sort), so ranks
// are a gapless permutation of 1..totalInRole.
func assignRankings(players []Player) {
	byRole := make(map[Role][]int)
	for i, p := range players {
		if p.Role == RoleUnknown {
			continue
		}
		byRole[p.Role] = append(byRole[p.Role], i)
	}

	for _, positions := range byRole {
		sort.SliceStable(positions, func(a, b int) bool {
			return players[positions[a]].Convenience > players[positions[b]].Convenience
		})
		for rank, pos := range positions {
			players[pos].OriginalRank = rank + 1
			players[pos].TotalInRole = len(positions)
		}
	}
}

// buildIndex maps normalized tokens to player positions: the full normalized
// name, the full normalized team, every word longer than two characters,
// condition flag tokens and every prefix of the normalized name from length 3
// up to 15.
func (b *Builder) buildIndex(players []Player) Index {
	index := make(Index)
	add := func(token string, pos int) {
		index[token] = append(index[token], pos)
	}

	for pos, p := range players {
		normalizedName := p.NormalizedName
		normalizedTeam := b.normalizer.Normalize(p.Team)

		words := strings.Fields(normalizedName)
		words = append(words, strings.Fields(normalizedTeam)...)

		if p.Injured {
			words = append(words, TokenInjured)
		}
		if p.Recommended {
			words = append(words, TokenRecommended)
		}
		if p.NewSigning {
			words = append(words, TokenNewSigning)
		}

		if len(normalizedTeam) > 2 {
			add(normalizedTeam, pos)
		}
		if normalizedName != "" {
			add(normalizedName, pos)
		}
		for _, word := range words {
			if len(word) > 2 {
				add(word, pos)
			}
		}

		// Prefixes enable type-ahead search.
		for i := 3; i <= len(normalizedName) && i <= 15; i++ {
			add(normalizedName[:i], pos)
		}
	}
	return index
}
