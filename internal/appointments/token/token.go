// Package token assigns the ticket number printed on a booking.
package token

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
)

// DefaultMaxToken is also the highest token any allocator hands out.
const DefaultMaxToken = 50

var ErrTokensExhausted = errors.New("no tokens left for this doctor and date")

type Allocator interface {
	Allocate(ctx context.Context, doctorID, date string) (int, error)
}

// RandomAllocator draws tokens uniformly from [1, max]. Tokens may repeat
// and carry no ordering.
type RandomAllocator struct {
	mu  sync.Mutex
	rng *rand.Rand
	max int
}

// NewRandomAllocator falls back to DefaultMaxToken for max outside [1, DefaultMaxToken]. A nil rng is
// replaced with a randomly seeded one.
func NewRandomAllocator(max int, rng *rand.Rand) *RandomAllocator {
	if max < 1 || max > DefaultMaxToken {
		max = DefaultMaxToken
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &RandomAllocator{rng: rng, max: max}
}

func (a *RandomAllocator) Allocate(context.Context, string, string) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rng.IntN(a.max) + 1, nil
}

// Issuer hands out monotonic per-doctor-per-day counters.
type Issuer interface {
	NextToken(ctx context.Context, doctorID, date string) (int, error)
}

// SequentialAllocator numbers bookings 1, 2, 3... per doctor and date and
// refuses bookings once max has been issued.
type SequentialAllocator struct {
	issuer Issuer
	max    int
}

// NewSequentialAllocator falls back to DefaultMaxToken for max outside [1, DefaultMaxToken].
func NewSequentialAllocator(issuer Issuer, max int) *SequentialAllocator {
	if max < 1 || max > DefaultMaxToken {
		max = DefaultMaxToken
	}
	return &SequentialAllocator{issuer: issuer, max: max}
}

func (a *SequentialAllocator) Allocate(ctx context.Context, doctorID, date string) (int, error) {
	n, err := a.issuer.NextToken(ctx, doctorID, date)
	if err != nil {
		return 0, fmt.Errorf("issue sequential token: %w", err)
	}
	if n > a.max {
		return 0, fmt.Errorf("token %d exceeds %d: %w", n, a.max, ErrTokensExhausted)
	}
	return n, nil
}
