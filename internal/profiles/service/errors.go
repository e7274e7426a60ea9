package service

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/aussiebroadwan/profilefeed/internal/profiles/store"
)

var (
	// ErrAuthentication covers every login or token failure. Callers can't
	// tell an unknown email from a wrong password.
	ErrAuthentication = errors.New("authentication failed")

	// ErrNotFound is the store's sentinel, re-exported so handlers need not
	// import the store package.
	ErrNotFound = store.ErrNotFound
)

// ValidationError reports bad input field by field. Nothing is written when
// one is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := slices.Sorted(maps.Keys(e.Fields))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// fieldErrors collects validation failures; err returns nil when empty.
type fieldErrors map[string]string

func (f fieldErrors) add(field, msg string) {
	if _, ok := f[field]; !ok {
		f[field] = msg
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}

// fieldError is a one-field ValidationError.
func fieldError(field, msg string) error {
	return &ValidationError{Fields: map[string]string{field: msg}}
}
