package domain

// FeedItem is one normalized entry from a syndicated source. Items are
// created by the parser and never mutated afterwards; a refresh cycle
// replaces them wholesale.
type FeedItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	PublishedAt string `json:"date"`
	Summary     string `json:"description"`
	Source      Source `json:"source"`
}

// Sources lists every feed origin in merge order. The "all" view
// concatenates per-source slices in exactly this order before sorting.
var Sources = []Source{
	SourceHatena,
	SourceHackernews,
	SourceNikkei,
}
