//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// Source identifies one syndicated feed origin
// ENUM(hatena,hackernews,nikkei)
type Source string

// Tab selects the source subset shown to the reader
// ENUM(all,hatena,hackernews,nikkei)
type Tab string
