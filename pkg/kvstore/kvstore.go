// Package kvstore is a minimal string-keyed blob store. It mirrors the
// browser local-storage model the booking list was designed around: every
// value is an opaque blob read and written whole.
package kvstore

import (
	"context"
	"errors"
	"strconv"
)

var ErrNotFound = errors.New("kvstore: key not found")

// UpdateFunc receives the current value (found=false when absent) and
// returns the value to store.
type UpdateFunc func(current []byte, found bool) ([]byte, error)

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Update runs a read-modify-write on one key atomically with respect
	// to other Update calls on the same store.
	Update(ctx context.Context, key string, fn UpdateFunc) error
	Incr(ctx context.Context, key string) (int64, error)
	Close() error
}

// incrValue implements Incr on top of Update for stores without a native counter.
func incrValue(ctx context.Context, s Store, key string) (int64, error) {
	var next int64
	err := s.Update(ctx, key, func(current []byte, found bool) ([]byte, error) {
		var n int64
		if found {
			parsed, err := strconv.ParseInt(string(current), 10, 64)
			if err != nil {
				return nil, err
			}
			n = parsed
		}
		next = n + 1
		return []byte(strconv.FormatInt(next, 10)), nil
	})
	return next, err
}
