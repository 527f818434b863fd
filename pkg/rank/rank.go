package rank

import (
	"sort"
	"strings"

	"github.com/promptraid/promptraid/pkg/defaults"
)

// Candidate is a searchable record: an attack module's identity plus
// the metadata users search against.
type Candidate struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
}

// ScoredCandidate pairs a candidate ID with its combined score.
type ScoredCandidate struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// Rank scores every candidate against the query and returns them
// sorted descending by score. The sort is stable, so equal scores keep
// input order and results are reproducible. An empty query returns all
// candidates in input order with score 0 (documented choice: the caller
// asked for nothing specific, so impose no ordering opinion).
func Rank(query string, candidates []Candidate) []ScoredCandidate {
	scored := make([]ScoredCandidate, len(candidates))

	if query == "" {
		for i, c := range candidates {
			scored[i] = ScoredCandidate{ID: c.ID}
		}
		return scored
	}

	for i, c := range candidates {
		scored[i] = ScoredCandidate{ID: c.ID, Score: combinedScore(query, c)}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// combinedScore weights the three fields: name dominates, tags carry
// real weight, description breaks ties. Weights live in pkg/defaults
// and sum to 1, so the combination stays in [0, 1].
func combinedScore(query string, c Candidate) float64 {
	nameScore := Score(query, c.Name)

	tagScore := 0.0
	for _, tag := range c.Tags {
		if s := Score(query, tag); s > tagScore {
			tagScore = s
		}
	}

	descScore := Score(query, c.Description)
	// Long descriptions dilute the length ratio; score individual
	// tokens too so a query matching one word of the description still
	// counts.
	for _, token := range strings.Fields(c.Description) {
		if s := Score(query, strings.Trim(token, ".,;:!?")); s > descScore {
			descScore = s
		}
	}

	return defaults.RankWeightName*nameScore +
		defaults.RankWeightTags*tagScore +
		defaults.RankWeightDescription*descScore
}
