package service

import (
	"time"

	"github.com/gorilla/feeds"

	"feeddeck/internal/modules/feed/domain"
)

// ExportRSS re-publishes the merged "all sources" view as a single RSS
// feed, translated Hacker News titles included when available.
func (s *Service) ExportRSS(baseURL string) *feeds.Feed {
	items := s.Items()

	feed := &feeds.Feed{
		Title:       "feeddeck - merged feeds",
		Link:        &feeds.Link{Href: baseURL + "/rss"},
		Description: "Aggregated hot entries across all configured sources",
		Created:     time.Now(),
	}

	feedItems := make([]*feeds.Item, 0, len(items))
	for _, item := range items {
		title := item.Title
		if s.queue != nil && item.Source == domain.SourceHackernews {
			if translated, ok := s.queue.Lookup(item.Title); ok {
				title = translated
			}
		}

		out := &feeds.Item{
			Title:       title,
			Link:        &feeds.Link{Href: item.Link},
			Description: item.Summary,
			Id:          item.Link,
		}
		if when, ok := ParseWhen(item.PublishedAt); ok {
			out.Created = when
		}
		feedItems = append(feedItems, out)
	}

	feed.Items = feedItems
	return feed
}
