package geography

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

const (
	maxSuggestions = 5
	// longer input is truncated before computing edit distances
	maxSuggestInput = 64
)

// Suggest returns up to five options whose name is within maxDistance edits
// of text, closest first; ties keep dataset order. It backs the "did you mean"
// hint shown when a search matches nothing.
func Suggest(options []Option, text string, maxDistance int) []Option {
	q := strings.ToLower(strings.TrimSpace(text))
	if q == "" || maxDistance < 0 {
		return nil
	}
	if r := []rune(q); len(r) > maxSuggestInput {
		q = string(r[:maxSuggestInput])
	}

	type scored struct {
		opt  Option
		dist int
		idx  int
	}
	var hits []scored
	for i, o := range options {
		d := levenshtein.ComputeDistance(q, strings.ToLower(o.Name))
		if d <= maxDistance {
			hits = append(hits, scored{opt: o, dist: d, idx: i})
		}
	}
	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].dist < hits[b].dist
	})
	if len(hits) > maxSuggestions {
		hits = hits[:maxSuggestions]
	}
	out := make([]Option, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.opt)
	}
	return out
}
