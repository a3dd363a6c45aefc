package util

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// ScoreCompletions returns the top N fuzzy matches for input from candidates,
// best first. An empty input returns every candidate.
func ScoreCompletions(input string, candidates []string, n int) []string {
	if input == "" {
		return candidates
	}
	matches := fuzzy.Find(input, candidates)
	if len(matches) == 0 {
		return nil
	}

	limit := n
	if n <= 0 || len(matches) < limit {
		limit = len(matches)
	}

	out := make([]string, limit)
	for i := 0; i < limit; i++ {
		out[i] = matches[i].Str
	}
	return out
}

// Resolve maps input to a candidate: an exact case-insensitive match wins,
// otherwise the best fuzzy match. It reports false when nothing matches.
func Resolve(input string, candidates []string) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}
	for _, c := range candidates {
		if strings.EqualFold(c, input) {
			return c, true
		}
	}
	best := ScoreCompletions(input, candidates, 1)
	if len(best) == 0 {
		return "", false
	}
	return best[0], true
}

// ResolveUnique is Resolve without guessing: an exact case-insensitive match
// or a sole fuzzy match resolves. Otherwise it returns the fuzzy candidates,
// best first, and false.
func ResolveUnique(input string, candidates []string) (string, []string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", nil, false
	}
	for _, c := range candidates {
		if strings.EqualFold(c, input) {
			return c, nil, true
		}
	}
	matches := ScoreCompletions(input, candidates, 0)
	if len(matches) == 1 {
		return matches[0], nil, true
	}
	return "", matches, false
}
