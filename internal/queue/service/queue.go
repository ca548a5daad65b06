package service

import (
	"context"
	"errors"
	"time"

	queueerrors "medq/internal/queue/errors"
	"medq/internal/queue/repository"
	apperrors "medq/pkg/errors"
	"medq/pkg/logger"
	"medq/pkg/model"
)

// DoctorLookup resolves catalog doctors. Advancing a queue for an unknown
// doctor is rejected.
type DoctorLookup interface {
	GetByID(ctx context.Context, id string) (*model.Doctor, error)
}

type QueueService interface {
	NextToken(ctx context.Context, doctorID, date string) (int, error)
	NowServing(ctx context.Context, doctorID, date string) (int, bool, error)
	State(ctx context.Context, doctorID, date string) (*model.QueueState, error)
	Advance(ctx context.Context, doctorID, date string, to int) (*model.QueueState, error)
}

type queueService struct {
	repo    repository.QueueRepository
	doctors DoctorLookup
	log     *logger.Logger
}

func NewQueueService(repo repository.QueueRepository, doctors DoctorLookup, log *logger.Logger) QueueService {
	return &queueService{
		repo:    repo,
		doctors: doctors,
		log:     log,
	}
}

func (s *queueService) NextToken(ctx context.Context, doctorID, date string) (int, error) {
	token, err := s.repo.IncrIssued(ctx, doctorID, date)
	if err != nil {
		s.log.Error("Failed to issue sequential token",
			"doctor_id", doctorID,
			"date", date,
			"error", err,
		)
		return 0, apperrors.Internal("Failed to issue token number", err)
	}
	return token, nil
}

// NowServing returns repository errors unmapped; callers treat any error as
// "pointer unknown".
func (s *queueService) NowServing(ctx context.Context, doctorID, date string) (int, bool, error) {
	state, found, err := s.repo.Get(ctx, doctorID, date)
	if err != nil || !found {
		return 0, false, err
	}
	return state.NowServing, true, nil
}

func (s *queueService) State(ctx context.Context, doctorID, date string) (*model.QueueState, error) {
	if err := s.validateKey(ctx, doctorID, date); err != nil {
		return nil, err
	}

	state, _, err := s.repo.Get(ctx, doctorID, date)
	if err != nil {
		return nil, apperrors.Internal("Failed to read queue", err)
	}
	return state, nil
}

func (s *queueService) Advance(ctx context.Context, doctorID, date string, to int) (*model.QueueState, error) {
	if err := s.validateKey(ctx, doctorID, date); err != nil {
		return nil, err
	}
	if to < 0 {
		return nil, apperrors.InvalidInput(queueerrors.ErrInvalidToken.Error())
	}

	state, err := s.repo.Advance(ctx, doctorID, date, to)
	if err != nil {
		if errors.Is(err, queueerrors.ErrStaleAdvance) {
			s.log.Warn("Rejected backwards queue advance",
				"doctor_id", doctorID,
				"date", date,
				"requested", to,
			)
			return nil, apperrors.Conflict("Queue is already past the requested token").WithDetails(map[string]any{
				"doctor_id":   doctorID,
				"date":        date,
				"now_serving": to,
			})
		}
		s.log.Error("Failed to advance queue",
			"doctor_id", doctorID,
			"date", date,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to advance queue", err)
	}

	s.log.Info("Queue advanced",
		"doctor_id", doctorID,
		"date", date,
		"now_serving", state.NowServing,
		"issued", state.Issued,
	)
	return state, nil
}

func (s *queueService) validateKey(ctx context.Context, doctorID, date string) error {
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return apperrors.InvalidInput(queueerrors.ErrInvalidDate.Error())
	}
	if _, err := s.doctors.GetByID(ctx, doctorID); err != nil {
		return err
	}
	return nil
}
