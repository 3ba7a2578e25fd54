package catalog

import (
	"sort"
	"strings"
)

const (
	// minQueryLength rejects queries too short to match meaningfully.
	minQueryLength = 2
	// maxResults caps the candidate set before ranking to bound work.
	maxResults = 50
)

// Searcher answers free-text queries against a catalog. It shares the
// builder's normalizer so queries fold the same way names do.
type Searcher struct {
	normalizer *Normalizer
}

// NewSearcher creates a Searcher around the given normalizer.
func NewSearcher(normalizer *Normalizer) *Searcher {
	return &Searcher{normalizer: normalizer}
}

// Search returns the ranked players matching the query. Queries shorter than
// two characters yield no results by contract. Pure function of the query and
// catalog; nothing is mutated.
func (s *Searcher) Search(query string, c *Catalog) []Player {
	if c == nil || len(query) < minQueryLength {
		return nil
	}

	normalized := s.normalizer.Normalize(query)
	if len(normalized) < minQueryLength {
		return nil
	}

	if len(c.Index) == 0 {
		return s.searchLinear(normalized, c)
	}
	return s.searchIndexed(normalized, c)
}

// searchIndexed scans every index key for substring containment, dedups the
// matched positions and ranks the capped candidate set.
func (s *Searcher) searchIndexed(query string, c *Catalog) []Player {
	seen := make(map[int]struct{})
	for key, positions := range c.Index {
		if !strings.Contains(key, query) {
			continue
		}
		for _, pos := range positions {
			seen[pos] = struct{}{}
		}
	}

	candidates := make([]int, 0, len(seen))
	for pos := range seen {
		candidates = append(candidates, pos)
	}
	// Map iteration order is random; restore input order before capping so
	// results are deterministic.
	sort.Ints(candidates)
	if len(candidates) > maxResults {
		candidates = candidates[:maxResults]
	}

	results := make([]Player, 0, len(candidates))
	for _, pos := range candidates {
		results = append(results, c.Players[pos])
	}

	// The tiers are additive on purpose: an exact match also starts with and
	// contains the query, so it always outscores a bare prefix match.
	score := func(p Player) int {
		total := 0
		if p.NormalizedName == query {
			total += 3
		}
		if strings.HasPrefix(p.NormalizedName, query) {
			total += 2
		}
		if strings.Contains(p.NormalizedName, query) {
			total++
		}
		return total
	}

	sort.SliceStable(results, func(a, b int) bool {
		scoreA, scoreB := score(results[a]), score(results[b])
		if scoreA != scoreB {
			return scoreA > scoreB
		}
		return results[a].Convenience > results[b].Convenience
	})
	return results
}

// searchLinear is the degraded path used when no index was built: name-only
// substring containment, capped, unranked beyond the filter.
func (s *Searcher) searchLinear(query string, c *Catalog) []Player {
	var results []Player
	for _, p := range c.Players {
		if strings.Contains(p.NormalizedName, query) {
			results = append(results, p)
			if len(results) == maxResults {
				break
			}
		}
	}
	return results
}
