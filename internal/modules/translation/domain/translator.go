package domain

import "context"

// Capability is an optional, environment-provided translation service.
// Its absence must degrade to "no translation", never an error.
type Capability interface {
	// CanTranslate reports whether the src -> dst language pair is
	// supported. Checked once per session.
	CanTranslate(ctx context.Context, src, dst string) bool
	// Translate converts text from the session's source language to its
	// target language.
	Translate(ctx context.Context, text string) (string, error)
}
