package roster

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"club-backend/internal/models"
)

// SearchResult is one fuzzy-ranked roster hit.
type SearchResult struct {
	Player   models.Player
	Distance int
}

// Search returns players whose names fuzzily match the query, best match
// first. An empty query matches nobody.
func Search(players []models.Player, query string) []SearchResult {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var results []SearchResult
	for _, p := range players {
		name := strings.ToLower(p.Name)
		if !fuzzy.MatchNormalizedFold(query, name) {
			continue
		}
		results = append(results, SearchResult{
			Player:   p,
			Distance: fuzzy.LevenshteinDistance(query, name),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})
	return results
}

// CheckUniqueNumbers verifies that no two players share a jersey number.
func CheckUniqueNumbers(players []models.Player) error {
	seen := make(map[int]string, len(players))
	for _, p := range players {
		if other, ok := seen[p.Number]; ok {
			return fmt.Errorf("jersey number %d is used by both %s and %s", p.Number, other, p.Name)
		}
		seen[p.Number] = p.Name
	}
	return nil
}
