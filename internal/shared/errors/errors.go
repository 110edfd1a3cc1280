package errors

import "errors"

var (
	ErrKeyNotFound       = errors.New("key not found")
	ErrInvalidPassphrase = errors.New("invalid passphrase")
	ErrUnknownTab        = errors.New("unknown tab")
)
