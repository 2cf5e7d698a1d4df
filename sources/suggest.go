/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sources

import (
	"sort"

	"github.com/agext/levenshtein"
)

const (
	suggestionCutoff = 0.6
	maxSuggestions   = 3
)

// Suggest returns up to three candidates close to name, best first. A candidate
// qualifies when its similarity reaches 0.6 or it is a single edit away.
func Suggest(name string, candidates []string) []string {
	type scored struct {
		name  string
		score float64
	}
	var matches []scored
	for _, c := range candidates {
		if c == name {
			continue
		}
		score := levenshtein.Similarity(name, c, nil)
		if score >= suggestionCutoff || levenshtein.Distance(name, c, nil) <= 1 {
			matches = append(matches, scored{name: c, score: score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].name < matches[j].name
	})
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.name
	}
	return out
}
