package catalog

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// RoleFilter widens Role with the two aggregate views offered when browsing.
type RoleFilter string

const (
	FilterAll RoleFilter = "ALL"
	// FilterMidfield combines central midfielders and playmakers.
	FilterMidfield RoleFilter = "CEN_TRQ"
)

// ParseRoleFilter maps a raw filter value onto the filter enum, defaulting to
// the all-players view.
func ParseRoleFilter(raw string) RoleFilter {
	switch raw {
	case "", string(FilterAll):
		return FilterAll
	case string(FilterMidfield):
		return FilterMidfield
	case string(RoleGoalkeeper), string(RoleDefender), string(RoleMidfielder), string(RolePlaymaker), string(RoleForward):
		return RoleFilter(raw)
	default:
		log.Warn("Unknown role filter, showing all players", "filter", raw)
		return FilterAll
	}
}

// FilterByRole returns the players matching the filter, preserving order.
func FilterByRole(players []Player, filter RoleFilter) []Player {
	if filter == FilterAll {
		return players
	}

	var filtered []Player
	for _, p := range players {
		if filter == FilterMidfield {
			if p.Role == RoleMidfielder || p.Role == RolePlaymaker {
				filtered = append(filtered, p)
			}
			continue
		}
		if p.Role == Role(filter) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// SortField identifies a sortable player statistic.
type SortField string

const (
	SortConvenience         SortField = "convenience"
	SortFantasyAvg          SortField = "fantasy_avg"
	SortAppearances         SortField = "appearances"
	SortOverallScore        SortField = "overall_score"
	SortExpectedGoals       SortField = "expected_goals"
	SortExpectedAssists     SortField = "expected_assists"
	SortExpectedAppearances SortField = "expected_appearances"
	SortInjuryResistance    SortField = "injury_resistance"
	SortPrice               SortField = "price"
)

// SortFields lists every sortable statistic.
var SortFields = []SortField{
	SortConvenience, SortFantasyAvg, SortAppearances, SortOverallScore,
	SortExpectedGoals, SortExpectedAssists, SortExpectedAppearances,
	SortInjuryResistance, SortPrice,
}

// statValue extracts one statistic from a player. The second return is false
// only for a missing expected-goals figure; the raw-column statistics default
// to 0 when absent, as the source data does not distinguish zero from blank
// for them.
func statValue(p Player, field SortField) (float64, bool) {
	switch field {
	case SortFantasyAvg:
		return p.FantasyAvg, true
	case SortAppearances:
		return p.Appearances, true
	case SortOverallScore:
		return p.OverallScore, true
	case SortExpectedGoals:
		return ExpectedGoals(p)
	case SortExpectedAssists:
		return numericField(p.Raw, ColExpectedAssists), true
	case SortExpectedAppearances:
		return numericField(p.Raw, ColExpectedAppearances), true
	case SortInjuryResistance:
		return numericField(p.Raw, ColInjuryResistance), true
	case SortPrice:
		return numericField(p.Raw, ColPrice), true
	default:
		return p.Convenience, true
	}
}

// SortByField returns a copy of players ordered by the given field,
// descending by default. Unknown fields fall back to convenience. Players
// with no expected-goals figure sort last regardless of direction.
func SortByField(players []Player, field SortField, ascending bool) []Player {
	if !validSortField(field) {
		log.Warn("Unknown sort field, falling back to convenience", "field", string(field))
		field = SortConvenience
	}

	sorted := make([]Player, len(players))
	copy(sorted, players)

	sort.SliceStable(sorted, func(a, b int) bool {
		valueA, okA := statValue(sorted[a], field)
		valueB, okB := statValue(sorted[b], field)
		if okA != okB {
			return okA // missing values always sort last
		}
		if !okA {
			return false
		}
		if ascending {
			return valueA < valueB
		}
		return valueA > valueB
	})
	return sorted
}

func validSortField(field SortField) bool {
	for _, known := range SortFields {
		if field == known {
			return true
		}
	}
	return false
}

// NumericRange bounds one statistic inclusively on both ends.
type NumericRange struct {
	Min float64
	Max float64
}

// ApplyNumericFilters returns the players whose statistics fall inside every
// given range. A player with no expected-goals figure passes that range
// rather than being dropped; the other statistics read as 0 when blank.
func ApplyNumericFilters(players []Player, filters map[SortField]NumericRange) []Player {
	if len(filters) == 0 {
		return players
	}

	var filtered []Player
	for _, p := range players {
		if withinRanges(p, filters) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func withinRanges(p Player, filters map[SortField]NumericRange) bool {
	for field, bounds := range filters {
		value, ok := statValue(p, field)
		if !ok {
			continue
		}
		if value < bounds.Min || value > bounds.Max {
			return false
		}
	}
	return true
}

// BoolField identifies a flag column usable as an exact-match filter.
type BoolField string

const (
	BoolInjured        BoolField = "injured"
	BoolRecommended    BoolField = "recommended"
	BoolNewSigning     BoolField = "new_signing"
	BoolGoodInvestment BoolField = "good_investment"
)

// BoolFields lists every filterable flag.
var BoolFields = []BoolField{BoolInjured, BoolRecommended, BoolNewSigning, BoolGoodInvestment}

// ApplyBoolFilters returns the players whose flags match every given filter
// exactly, so filtering on false keeps only players without the flag.
func ApplyBoolFilters(players []Player, filters map[BoolField]bool) []Player {
	if len(filters) == 0 {
		return players
	}

	var filtered []Player
	for _, p := range players {
		if matchesFlags(p, filters) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func matchesFlags(p Player, filters map[BoolField]bool) bool {
	for field, want := range filters {
		var have bool
		switch field {
		case BoolInjured:
			have = p.Injured
		case BoolRecommended:
			have = p.Recommended
		case BoolNewSigning:
			have = p.NewSigning
		case BoolGoodInvestment:
			have = boolField(p.Raw, ColGoodInvestment)
		default:
			log.Warn("Unknown flag filter, ignoring", "field", string(field))
			continue
		}
		if have != want {
			return false
		}
	}
	return true
}

// ExpectedGoals returns the projected goals for a player. Goalkeepers carry
// goals conceded, reported as a negative figure. The second return is false
// when the source column is absent or unparseable.
func ExpectedGoals(p Player) (float64, bool) {
	raw, ok := p.Raw[ColExpectedGoals]
	if !ok || raw == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	if p.Role == RoleGoalkeeper {
		return -math.Abs(value), true
	}
	return value, true
}

// StatsForRole summarizes the cohort selected by the filter.
func StatsForRole(players []Player, filter RoleFilter) RoleStats {
	cohort := FilterByRole(players, filter)
	stats := RoleStats{Role: Role(filter), Count: len(cohort)}
	if len(cohort) == 0 {
		return stats
	}

	var totalConvenience, totalFantasyAvg float64
	for _, p := range cohort {
		totalConvenience += p.Convenience
		totalFantasyAvg += p.FantasyAvg
	}
	stats.AvgConvenience = totalConvenience / float64(len(cohort))
	stats.AvgFantasyAvg = totalFantasyAvg / float64(len(cohort))
	return stats
}
