package rag

import (
	"sort"
	"strings"

	"studyhall/backend/internal/index"
)

// topicBoostFactor multiplies the score of chunks mentioning the quiz topic
// verbatim. Capped at 1.0 so boosted scores stay comparable.
const topicBoostFactor = 1.5

// boostByTopic returns a new slice where candidates containing topic
// verbatim (case-insensitive) get their score multiplied by
// topicBoostFactor (capped at 1.0), sorted descending by adjusted score and
// trimmed to limit. The input is never mutated.
func boostByTopic(results []index.SearchResult, topic string, limit int) []index.SearchResult {
	boosted := make([]index.SearchResult, len(results))
	copy(boosted, results)

	if topic != "" {
		needle := strings.ToLower(topic)
		for i := range boosted {
			if strings.Contains(strings.ToLower(boosted[i].Text), needle) {
				boosted[i].Score = min(1.0, boosted[i].Score*topicBoostFactor)
			}
		}
	}

	sort.SliceStable(boosted, func(i, j int) bool { return boosted[i].Score > boosted[j].Score })

	if limit > 0 && limit < len(boosted) {
		boosted = boosted[:limit]
	}
	return boosted
}

// filterByDocuments drops results whose document is not in allowed. An
// empty allow-list keeps everything. May return fewer results than
// requested; that is the caller's problem to interpret.
func filterByDocuments(results []index.SearchResult, allowed []string) []index.SearchResult {
	if len(allowed) == 0 {
		return results
	}

	allow := make(map[string]struct{}, len(allowed))
	for _, id := range allowed {
		allow[id] = struct{}{}
	}

	filtered := make([]index.SearchResult, 0, len(results))
	for _, r := range results {
		if _, ok := allow[r.DocumentID]; ok {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
