package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	appointmentserrors "medq/internal/appointments/errors"
	"medq/pkg/kvstore"
	"medq/pkg/logger"
	"medq/pkg/model"
)

// AppointmentRepository is the append-only booking list.
type AppointmentRepository interface {
	Append(ctx context.Context, appt *model.Appointment) error
	// ListAll returns every booking, oldest first. It never returns nil.
	ListAll(ctx context.Context) ([]model.Appointment, error)
	FindByID(ctx context.Context, id string) (*model.Appointment, error)
}

// kvAppointmentRepository keeps the whole list as one JSON array under a
// single key. Appends rewrite the array.
type kvAppointmentRepository struct {
	store kvstore.Store
	key   string
	log   *logger.Logger
	mu    sync.Mutex
}

func NewKVAppointmentRepository(store kvstore.Store, key string, log *logger.Logger) AppointmentRepository {
	return &kvAppointmentRepository{
		store: store,
		key:   key,
		log:   log,
	}
}

func (r *kvAppointmentRepository) Append(ctx context.Context, appt *model.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.store.Update(ctx, r.key, func(current []byte, found bool) ([]byte, error) {
		list := r.decode(current, found)
		list = append(list, *appt)
		return json.Marshal(list)
	})
	if err != nil {
		return fmt.Errorf("failed to append appointment: %w", err)
	}
	return nil
}

func (r *kvAppointmentRepository) ListAll(ctx context.Context) ([]model.Appointment, error) {
	raw, err := r.store.Get(ctx, r.key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return []model.Appointment{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read appointments: %w", err)
	}
	return r.decode(raw, true), nil
}

func (r *kvAppointmentRepository) FindByID(ctx context.Context, id string) (*model.Appointment, error) {
	list, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, appointmentserrors.ErrNotFound
}

// decode treats an unreadable list as empty. The next append overwrites it.
func (r *kvAppointmentRepository) decode(raw []byte, found bool) []model.Appointment {
	list := []model.Appointment{}
	if !found || len(raw) == 0 {
		return list
	}
	if err := json.Unmarshal(raw, &list); err != nil {
		r.log.Warn("Stored appointment list is unreadable, treating it as empty",
			"key", r.key,
			"bytes", len(raw),
			"error", err,
		)
		return []model.Appointment{}
	}
	if list == nil {
		list = []model.Appointment{}
	}
	return list
}
