package service

import (
	"context"
	"errors"
	"strings"

	doctorserrors "medq/internal/doctors/errors"
	apperrors "medq/pkg/errors"
	"medq/pkg/logger"
	"medq/pkg/model"
	"medq/pkg/sanitizer"
)

type DoctorService interface {
	GetByID(ctx context.Context, id string) (*model.Doctor, error)
	Search(ctx context.Context, term string) []model.Doctor
	Specialties(ctx context.Context) []string
}

// Directory is the in-memory doctor catalog. It is immutable after
// construction and safe for concurrent use.
type Directory struct {
	doctors []model.Doctor
	byID    map[string]int
	log     *logger.Logger
}

func NewDirectory(doctors []model.Doctor, log *logger.Logger) *Directory {
	d := &Directory{
		doctors: append([]model.Doctor(nil), doctors...),
		byID:    make(map[string]int, len(doctors)),
		log:     log,
	}
	for i, doc := range d.doctors {
		d.byID[doc.ID] = i
	}
	return d
}

// FindByID returns doctorserrors.ErrNotFound for unknown ids.
func (d *Directory) FindByID(id string) (model.Doctor, error) {
	if strings.TrimSpace(id) == "" {
		return model.Doctor{}, doctorserrors.ErrInvalidID
	}
	i, ok := d.byID[id]
	if !ok {
		return model.Doctor{}, doctorserrors.ErrNotFound
	}
	return d.doctors[i], nil
}

func (d *Directory) GetByID(_ context.Context, id string) (*model.Doctor, error) {
	doc, err := d.FindByID(id)
	switch {
	case err == nil:
		return &doc, nil
	case errors.Is(err, doctorserrors.ErrInvalidID):
		return nil, apperrors.InvalidInput("Doctor ID cannot be empty")
	default:
		d.log.Debug("Doctor lookup missed", "id", id)
		return nil, apperrors.NotFoundWithID("Doctor", id)
	}
}

// Search matches term case-insensitively against name or specialty and
// keeps catalog order. An empty term returns the whole catalog. The result
// is always a fresh slice.
func (d *Directory) Search(_ context.Context, term string) []model.Doctor {
	needle := sanitizer.NormalizeSearchTerm(term)

	out := make([]model.Doctor, 0, len(d.doctors))
	for _, doc := range d.doctors {
		if needle == "" ||
			strings.Contains(strings.ToLower(doc.Name), needle) ||
			strings.Contains(strings.ToLower(doc.Specialty), needle) {
			out = append(out, doc)
		}
	}
	return out
}

func (d *Directory) Specialties(_ context.Context) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, doc := range d.doctors {
		if _, ok := seen[doc.Specialty]; ok {
			continue
		}
		seen[doc.Specialty] = struct{}{}
		out = append(out, doc.Specialty)
	}
	return out
}
