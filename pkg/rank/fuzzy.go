// Package rank scores and orders attack-module candidates by fuzzy
// similarity to a search query. Tuned for `use`-command ergonomics:
// users type partial module names, so prefix and substring hits on the
// name outrank pure character-subsequence similarity.
package rank

import (
	"strings"
	"unicode"
)

// Score constants. A full-string match is 1.0; prefix matches occupy
// (0.85, 1.0), substring matches (0.70, 0.90), and subsequence matches
// at most subsequenceCeiling. Keeping the bands disjoint is what makes
// "prefix beats substring beats edit-distance" hold unconditionally.
const (
	prefixBase         = 0.85
	prefixSpan         = 0.15
	substringBase      = 0.70
	substringSpan      = 0.20
	subsequenceCeiling = 0.60
)

// Score computes fuzzy similarity between query and target in [0, 1].
// Matching is case-insensitive. Identical strings score exactly 1.0;
// an empty query scores 0 against everything.
func Score(query, target string) float64 {
	if query == "" || target == "" {
		return 0
	}

	q := strings.ToLower(query)
	t := strings.ToLower(target)

	if q == t {
		return 1.0
	}

	lengthRatio := float64(len(q)) / float64(len(t))
	if lengthRatio > 1 {
		// Query longer than target can still match as a subsequence of
		// nothing; fall through to subsequence scoring which returns 0.
		lengthRatio = 1
	}

	if strings.HasPrefix(t, q) {
		return prefixBase + prefixSpan*lengthRatio
	}
	if strings.Contains(t, q) {
		return substringBase + substringSpan*lengthRatio
	}
	return subsequenceScore(q, t, target)
}

// subsequenceScore awards partial credit when every query character
// appears in order in the target. Consecutive runs and word-boundary
// hits earn bonuses; the result is normalized and capped below the
// substring band.
func subsequenceScore(q, t, originalTarget string) float64 {
	qRunes := []rune(q)
	tRunes := []rune(t)
	origRunes := []rune(originalTarget)

	score := 0.0
	qIdx := 0
	consecutiveBonus := 0.0
	lastMatch := -2

	for tIdx, tr := range tRunes {
		if qIdx >= len(qRunes) || tr != qRunes[qIdx] {
			continue
		}

		matchScore := 1.0

		if tIdx == lastMatch+1 {
			consecutiveBonus += 0.5
			matchScore += consecutiveBonus
		} else {
			consecutiveBonus = 0
		}

		// Word-boundary bonus
		if tIdx == 0 || !isAlnum(tRunes[tIdx-1]) {
			matchScore += 0.5
		}

		// camelCase boundary bonus against the original casing
		if tIdx < len(origRunes) && unicode.IsUpper(origRunes[tIdx]) {
			matchScore += 0.3
		}

		score += matchScore
		lastMatch = tIdx
		qIdx++
	}

	if qIdx < len(qRunes) {
		return 0
	}

	maxPossible := float64(len(qRunes)) * 3.0
	normalized := score / maxPossible
	if normalized > 1 {
		normalized = 1
	}
	return normalized * subsequenceCeiling
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
