package parser

import (
	"log/slog"
	"strings"

	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html"

	"feeddeck/internal/modules/feed/domain"
)

// summaryLimit is the hard cap on summary length, in runes.
const summaryLimit = 200

// Parser normalizes raw feed XML (RSS 2.0, RDF and Atom) into FeedItems.
type Parser struct {
	fp *gofeed.Parser
}

// New creates a new feed parser
func New() *Parser {
	return &Parser{fp: gofeed.NewParser()}
}

// Parse extracts items from raw XML. A document that fails to parse
// yields an empty slice: one bad feed must never abort aggregation, so
// parse errors stop here. Items missing a title or link are dropped.
// Output order matches document order.
func (p *Parser) Parse(raw string, source domain.Source) []domain.FeedItem {
	feed, err := p.fp.ParseString(raw)
	if err != nil {
		slog.Debug("Feed parse failed", "source", source, "error", err)
		return []domain.FeedItem{}
	}

	items := make([]domain.FeedItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		title := strings.TrimSpace(it.Title)
		link := strings.TrimSpace(it.Link)
		if title == "" || link == "" {
			continue
		}

		items = append(items, domain.FeedItem{
			Title:       title,
			Link:        link,
			PublishedAt: publishedAt(it),
			Summary:     truncate(StripHTML(it.Description), summaryLimit),
			Source:      source,
		})
	}

	return items
}

// publishedAt picks the publication timestamp: the standard publication
// field first, then a Dublin-Core date (RDF feeds), then the generic
// updated field, else empty.
func publishedAt(it *gofeed.Item) string {
	if s := strings.TrimSpace(it.Published); s != "" {
		return s
	}
	if it.DublinCoreExt != nil && len(it.DublinCoreExt.Date) > 0 {
		if s := strings.TrimSpace(it.DublinCoreExt.Date[0]); s != "" {
			return s
		}
	}
	return strings.TrimSpace(it.Updated)
}

// StripHTML removes markup and decodes entities, keeping only text
// content.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	tok := html.NewTokenizer(strings.NewReader(s))
	for {
		switch tok.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(tok.Text())
		}
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
