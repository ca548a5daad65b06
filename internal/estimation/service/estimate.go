package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"medq/internal/estimation"
	estimationerrors "medq/internal/estimation/errors"
	apperrors "medq/pkg/errors"
	"medq/pkg/logger"
	"medq/pkg/model"
)

// QueueLookup reports the token a doctor is currently serving on a date.
type QueueLookup interface {
	NowServing(ctx context.Context, doctorID, date string) (int, bool, error)
}

type EstimateService interface {
	Predict(ctx context.Context, doctor model.Doctor, appt model.Appointment) (*model.Prediction, error)
	WaitTime(ctx context.Context, appt model.Appointment) (*model.WaitEstimate, error)
	Stop()
}

type Config struct {
	// PredictionDelay holds back each prediction so clients can show a
	// loading state. Zero disables it.
	PredictionDelay time.Duration
	// CacheTTL pins a sampled wait estimate to its booking. Zero resamples
	// on every call.
	CacheTTL time.Duration
}

type estimateService struct {
	cfg   Config
	queue QueueLookup
	log   *logger.Logger

	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time

	cache    *estimateCache
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewEstimateService builds the service. queue may be nil, in which case the
// served token is always sampled.
func NewEstimateService(cfg Config, queue QueueLookup, log *logger.Logger) EstimateService {
	s := &estimateService{
		cfg:    cfg,
		queue:  queue,
		log:    log,
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:    time.Now,
		stopCh: make(chan struct{}),
	}
	if cfg.CacheTTL > 0 {
		s.cache = newEstimateCache(cfg.CacheTTL)
		go s.sweepLoop()
	}
	return s
}

func (s *estimateService) Predict(ctx context.Context, doctor model.Doctor, appt model.Appointment) (*model.Prediction, error) {
	if s.cfg.PredictionDelay > 0 {
		timer := time.NewTimer(s.cfg.PredictionDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, apperrors.Timeout("Prediction was cancelled before it completed")
		case <-timer.C:
		}
	}

	p := estimation.PredictConsultation(doctor, appt)

	s.log.Debug("Consultation time predicted",
		"appointment_id", appt.ID,
		"doctor_id", doctor.ID,
		"min_minutes", p.MinMinutes,
		"max_minutes", p.MaxMinutes,
		"inverted", p.Inverted,
		"accuracy", p.Accuracy,
	)

	return &p, nil
}

func (s *estimateService) WaitTime(ctx context.Context, appt model.Appointment) (*model.WaitEstimate, error) {
	now := s.now()

	if current, ok := s.nowServing(ctx, appt); ok {
		est, err := estimation.EstimateQueueWait(appt.TokenNumber, current, now)
		if err != nil {
			return nil, s.mapError(err, appt)
		}
		est.AppointmentID = appt.ID
		est.Source = model.EstimateSourceQueue
		return &est, nil
	}

	if s.cache != nil {
		if cached, ok := s.cache.get(appt.ID, now); ok {
			return &cached, nil
		}
	}

	s.mu.Lock()
	current, err := estimation.SampleCurrentToken(s.rng, appt.TokenNumber)
	s.mu.Unlock()
	if err != nil {
		return nil, s.mapError(err, appt)
	}

	est, err := estimation.EstimateWait(appt.TokenNumber, current, now)
	if err != nil {
		return nil, s.mapError(err, appt)
	}
	est.AppointmentID = appt.ID
	est.Source = model.EstimateSourceRandom

	if s.cache != nil {
		s.cache.put(appt.ID, est, now)
	}
	return &est, nil
}

func (s *estimateService) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

// nowServing falls back to sampling when the queue is unknown or unreachable.
func (s *estimateService) nowServing(ctx context.Context, appt model.Appointment) (int, bool) {
	if s.queue == nil {
		return 0, false
	}
	current, ok, err := s.queue.NowServing(ctx, appt.DoctorID, appt.Date)
	if err != nil {
		s.log.Warn("Queue lookup failed, sampling current token instead",
			"appointment_id", appt.ID,
			"doctor_id", appt.DoctorID,
			"date", appt.Date,
			"error", err,
		)
		return 0, false
	}
	return current, ok
}

func (s *estimateService) mapError(err error, appt model.Appointment) error {
	if errors.Is(err, estimationerrors.ErrInvalidToken) {
		return apperrors.InvalidInput("Appointment has no valid token number").WithDetails(map[string]any{
			"appointment_id": appt.ID,
			"token_number":   appt.TokenNumber,
		})
	}
	return apperrors.Internal("Failed to estimate wait time", err)
}

func (s *estimateService) sweepLoop() {
	ticker := time.NewTicker(s.cfg.CacheTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := s.cache.sweep(s.now()); n > 0 {
				s.log.Debug("Expired wait estimates evicted", "count", n)
			}
		case <-s.stopCh:
			return
		}
	}
}
