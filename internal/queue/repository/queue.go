package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	queueerrors "medq/internal/queue/errors"
	"medq/pkg/kvstore"
	"medq/pkg/model"
)

// QueueRepository persists the per-doctor-per-day token counter and now
// serving pointer.
type QueueRepository interface {
	// IncrIssued bumps the issued counter and returns the new value, so the
	// first token of a day is 1.
	IncrIssued(ctx context.Context, doctorID, date string) (int, error)
	// Get returns the queue state and whether a now serving pointer is set.
	Get(ctx context.Context, doctorID, date string) (*model.QueueState, bool, error)
	// Advance moves the pointer to `to`. It fails with ErrStaleAdvance when
	// the stored pointer is already past `to`.
	Advance(ctx context.Context, doctorID, date string, to int) (*model.QueueState, error)
}

type kvQueueRepository struct {
	store kvstore.Store
}

func NewKVQueueRepository(store kvstore.Store) QueueRepository {
	return &kvQueueRepository{store: store}
}

func issuedKey(doctorID, date string) string {
	return fmt.Sprintf("queue:%s:%s:issued", doctorID, date)
}

func servingKey(doctorID, date string) string {
	return fmt.Sprintf("queue:%s:%s:serving", doctorID, date)
}

func (r *kvQueueRepository) IncrIssued(ctx context.Context, doctorID, date string) (int, error) {
	n, err := r.store.Incr(ctx, issuedKey(doctorID, date))
	if err != nil {
		return 0, fmt.Errorf("failed to issue token: %w", err)
	}
	return int(n), nil
}

func (r *kvQueueRepository) Get(ctx context.Context, doctorID, date string) (*model.QueueState, bool, error) {
	state := &model.QueueState{DoctorID: doctorID, Date: date}

	issued, _, err := r.readInt(ctx, issuedKey(doctorID, date))
	if err != nil {
		return nil, false, err
	}
	state.Issued = issued

	serving, found, err := r.readInt(ctx, servingKey(doctorID, date))
	if err != nil {
		return nil, false, err
	}
	state.NowServing = serving

	return state, found, nil
}

func (r *kvQueueRepository) Advance(ctx context.Context, doctorID, date string, to int) (*model.QueueState, error) {
	err := r.store.Update(ctx, servingKey(doctorID, date), func(current []byte, found bool) ([]byte, error) {
		if found {
			n, err := strconv.Atoi(string(current))
			if err != nil {
				return nil, fmt.Errorf("corrupt now serving value %q: %w", current, err)
			}
			if n > to {
				return nil, queueerrors.ErrStaleAdvance
			}
		}
		return []byte(strconv.Itoa(to)), nil
	})
	if err != nil {
		if errors.Is(err, queueerrors.ErrStaleAdvance) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to advance queue: %w", err)
	}

	state, _, err := r.Get(ctx, doctorID, date)
	return state, err
}

func (r *kvQueueRepository) readInt(ctx context.Context, key string) (int, bool, error) {
	raw, err := r.store.Get(ctx, key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	n, err := strconv.Atoi(string(raw))
	if err != nil {
		return 0, false, fmt.Errorf("corrupt value under %s: %w", key, err)
	}
	return n, true, nil
}
