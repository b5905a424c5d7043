// Package store keeps the POS state as one JSON document per key.
//
// Every write path is a whole-value replacement. Callers that change an
// existing value go through Update (or the typed Modify helper) so the
// read, the mutation and the write happen as one unit on the backend.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("store: key not found")
	ErrConflict = errors.New("store: too many concurrent updates")
)

// UpdateFunc receives the current raw value and returns the value to write.
// Returning an error aborts the update and nothing is written.
type UpdateFunc func(current []byte, found bool) ([]byte, error)

type Backend interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Update(ctx context.Context, key string, fn UpdateFunc) error
	Close() error
}

// ReadStatus tells a caller whether a value came from storage or from its fallback.
type ReadStatus int

const (
	ReadFound ReadStatus = iota
	ReadMissing
	ReadFallback
)

func (s ReadStatus) String() string {
	switch s {
	case ReadFound:
		return "found"
	case ReadMissing:
		return "missing"
	case ReadFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Read decodes key into a T. A missing key yields fallback with ReadMissing;
// an unreadable or corrupt value yields fallback with ReadFallback.
func Read[T any](ctx context.Context, b Backend, key string, fallback T) (T, ReadStatus) {
	raw, err := b.Load(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return fallback, ReadMissing
	}
	if err != nil {
		return fallback, ReadFallback
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return fallback, ReadFallback
	}
	return v, ReadFound
}

func Write[T any](ctx context.Context, b Backend, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := b.Save(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Modify runs fn against the decoded value of key inside a backend update.
// fallback builds the starting value when the key is missing or corrupt; it
// may be called more than once because optimistic backends retry.
// An error from fn is returned unchanged and nothing is written.
func Modify[T any](ctx context.Context, b Backend, key string, fallback func() T, fn func(*T) error) (T, ReadStatus, error) {
	var (
		result T
		status ReadStatus
	)

	err := b.Update(ctx, key, func(current []byte, found bool) ([]byte, error) {
		var v T
		switch {
		case !found:
			v, status = fallback(), ReadMissing
		case json.Unmarshal(current, &v) != nil:
			v, status = fallback(), ReadFallback
		default:
			status = ReadFound
		}

		if err := fn(&v); err != nil {
			return nil, err
		}

		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", key, err)
		}
		result = v
		return raw, nil
	})
	if err != nil {
		var zero T
		return zero, status, err
	}
	return result, status, nil
}
