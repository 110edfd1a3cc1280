//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// Availability tracks whether the translation capability is usable this
// session
// ENUM(unchecked,unavailable,available)
type Availability string
