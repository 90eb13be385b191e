package hxasset

import "errors"

// Sentinel errors for registry and dispatch operations.
var (
	ErrSourceProvider  = errors.New("hxasset: source provider failed")
	ErrHostUnavailable = errors.New("hxasset: host primitive unavailable")
	ErrRegisterFailed  = errors.New("hxasset: host rejected registration")
	ErrDisabled        = errors.New("hxasset: entry disabled by predicate")
	ErrInvalidValue    = errors.New("hxasset: invalid value")
)

// IsSourceProviderError checks if err came from a failing source provider.
func IsSourceProviderError(err error) bool {
	return errors.Is(err, ErrSourceProvider)
}

// IsSkip checks if err is a normal reason for not enqueueing an entry
// (host primitive unbound or predicate returned false).
func IsSkip(err error) bool {
	return errors.Is(err, ErrHostUnavailable) || errors.Is(err, ErrDisabled)
}

// IsInvalidValue checks if err reports an unknown kind, location or media.
func IsInvalidValue(err error) bool {
	return errors.Is(err, ErrInvalidValue)
}
