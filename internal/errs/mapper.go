package errs

import (
	"context"
	"errors"

	"github.com/adk-labs/platform/utils/ptr"
)

type Error[T any] interface {
	SetContext(m *map[string]any)
	DefaultError() T
}

// Mapping binds a set of internal sentinels to the error exposed to
// clients. Every sentinel in Chain must be present in the internal
// error for the mapping to apply.
type Mapping[T Error[T]] struct {
	Chain   []error
	Exposed T

	// ContextGetter optionally extracts safe-to-expose context from the
	// internal error.
	ContextGetter func(error) map[string]any
}

// ErrorMapper translates internal error chains into their exposed
// counterparts without leaking internal detail to clients.
type ErrorMapper[T Error[T]] struct {
	mappings []Mapping[T]
	priority []Mapping[T]
}

func NewMapper[T Error[T]](mappings, priority []Mapping[T]) ErrorMapper[T] {
	return ErrorMapper[T]{
		mappings: mappings,
		priority: priority,
	}
}

// Transform picks the exposed error for an internal one. A priority
// match wins outright; otherwise the candidate whose chain matches the
// most sentinels is chosen, and the default covers everything else.
func (m *ErrorMapper[T]) Transform(_ context.Context, internalErr error) T {
	if exposed, ok := m.priorityMatch(internalErr); ok {
		return exposed
	}

	best, ok := m.bestMatch(internalErr)
	if !ok {
		var zero T
		return zero.DefaultError()
	}

	exposed := best.Exposed
	if best.ContextGetter != nil {
		exposed.SetContext(ptr.PointTo(best.ContextGetter(internalErr)))
	}

	return exposed
}

func (m *ErrorMapper[T]) priorityMatch(err error) (T, bool) {
	for _, candidate := range m.priority {
		if matchCount(err, candidate.Chain) > 0 {
			return candidate.Exposed, true
		}
	}

	var zero T

	return zero, false
}

// bestMatch scans the mappings for the one matching the most sentinels
// of the error chain. Mappings requiring sentinels the chain does not
// carry are skipped, so a {validation, duplicate-slug} mapping never
// swallows a bare validation error.
func (m *ErrorMapper[T]) bestMatch(err error) (Mapping[T], bool) {
	var (
		best  Mapping[T]
		found bool
		top   int
	)

	for _, candidate := range m.mappings {
		count := matchCount(err, candidate.Chain)
		if count < len(candidate.Chain) {
			continue
		}

		if count > top {
			top = count
			best = candidate
			found = true
		}
	}

	return best, found
}

func matchCount(err error, sentinels []error) int {
	count := 0

	for _, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			count++
		}
	}

	return count
}
