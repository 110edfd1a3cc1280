package service

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"feeddeck/internal/modules/feed/domain"
)

const (
	// nikkeiTabLimit caps the high-volume Nikkei source to a small
	// fixed count on its tab.
	nikkeiTabLimit = 10

	// Field weights and the fixed similarity floor for ranked queries.
	titleWeight   = 2
	summaryWeight = 1
	scoreFloor    = -100
)

// Service composes tab selection, free-text filtering and fuzzy ranking
// over the orchestrator's item set. It holds no state; tab and query
// arrive per request.
type Service struct{}

// New creates a new search service
func New() *Service {
	return &Service{}
}

// Visible returns the items to display for a tab and optional query.
// Without a query the tab subset is returned unfiltered in merge order;
// with one, items are fuzzy-ranked by descending relevance. The input
// slices are never mutated.
func (s *Service) Visible(merged []domain.FeedItem, bySource map[domain.Source][]domain.FeedItem, tab domain.Tab, query string) []domain.FeedItem {
	subset := s.subset(merged, bySource, tab)
	if strings.TrimSpace(query) == "" {
		return subset
	}
	return rank(subset, query)
}

// Counts returns the per-tab counters: the filtered count for the
// active tab while a query is live, the unfiltered subset count
// otherwise.
func (s *Service) Counts(merged []domain.FeedItem, bySource map[domain.Source][]domain.FeedItem, active domain.Tab, query string) map[domain.Tab]int {
	counts := make(map[domain.Tab]int, len(domain.TabNames()))
	for _, name := range domain.TabNames() {
		tab := domain.Tab(name)
		if tab == active && strings.TrimSpace(query) != "" {
			counts[tab] = len(s.Visible(merged, bySource, tab, query))
			continue
		}
		counts[tab] = len(s.subset(merged, bySource, tab))
	}
	return counts
}

// subset selects a tab's items. Every Tab value is handled; adding a
// source is a compile-visible change here.
func (s *Service) subset(merged []domain.FeedItem, bySource map[domain.Source][]domain.FeedItem, tab domain.Tab) []domain.FeedItem {
	switch tab {
	case domain.TabAll:
		return merged
	case domain.TabHatena:
		return bySource[domain.SourceHatena]
	case domain.TabHackernews:
		return bySource[domain.SourceHackernews]
	case domain.TabNikkei:
		items := bySource[domain.SourceNikkei]
		if len(items) > nikkeiTabLimit {
			return items[:nikkeiTabLimit]
		}
		return items
	default:
		return nil
	}
}

// itemField adapts one FeedItem field to fuzzy.Source.
type itemField struct {
	items []domain.FeedItem
	field func(domain.FeedItem) string
}

func (f itemField) String(i int) string { return f.field(f.items[i]) }
func (f itemField) Len() int            { return len(f.items) }

// rank scores items against the query per field, title weighted above
// summary, and returns matches above the floor in descending combined
// relevance. Ties break on original position, keeping ordering
// deterministic for identical inputs.
func rank(items []domain.FeedItem, query string) []domain.FeedItem {
	scores := make(map[int]int)

	titleMatches := fuzzy.FindFrom(query, itemField{items: items, field: func(it domain.FeedItem) string { return it.Title }})
	for _, m := range titleMatches {
		scores[m.Index] += m.Score * titleWeight
	}

	summaryMatches := fuzzy.FindFrom(query, itemField{items: items, field: func(it domain.FeedItem) string { return it.Summary }})
	for _, m := range summaryMatches {
		scores[m.Index] += m.Score * summaryWeight
	}

	indexes := make([]int, 0, len(scores))
	for idx, score := range scores {
		if score >= scoreFloor {
			indexes = append(indexes, idx)
		}
	}

	sort.Slice(indexes, func(a, b int) bool {
		if scores[indexes[a]] != scores[indexes[b]] {
			return scores[indexes[a]] > scores[indexes[b]]
		}
		return indexes[a] < indexes[b]
	})

	ranked := make([]domain.FeedItem, 0, len(indexes))
	for _, idx := range indexes {
		ranked = append(ranked, items[idx])
	}
	return ranked
}
