package service

import (
	"context"
	"errors"
	"strings"
	"time"

	appointmentserrors "medq/internal/appointments/errors"
	"medq/internal/appointments/events"
	"medq/internal/appointments/repository"
	"medq/internal/appointments/slip"
	"medq/internal/appointments/token"
	"medq/internal/appointments/validator"
	estimationservice "medq/internal/estimation/service"
	"medq/pkg/config"
	apperrors "medq/pkg/errors"
	"medq/pkg/model"
	"medq/pkg/sanitizer"

	"github.com/google/uuid"
)

// DoctorDirectory is the catalog lookup a booking is checked against.
type DoctorDirectory interface {
	FindByID(id string) (model.Doctor, error)
}

type AppointmentService interface {
	Create(ctx context.Context, req *model.AppointmentRequest) (*model.Appointment, error)
	GetAll(ctx context.Context) ([]model.AppointmentView, error)
	GetByID(ctx context.Context, id string) (*model.AppointmentView, error)
	WaitTime(ctx context.Context, id string) (*model.WaitEstimate, error)
	Prediction(ctx context.Context, id string) (*model.Prediction, error)
	Slip(ctx context.Context, id string) ([]byte, *model.Appointment, error)
}

type appointmentService struct {
	repo      repository.AppointmentRepository
	doctors   DoctorDirectory
	tokens    token.Allocator
	estimates estimationservice.EstimateService
	publisher events.Publisher
	validator *validator.AppointmentValidator
	cfg       *config.Config
	now       func() time.Time
}

func NewAppointmentService(
	repo repository.AppointmentRepository,
	doctors DoctorDirectory,
	tokens token.Allocator,
	estimates estimationservice.EstimateService,
	publisher events.Publisher,
	validator *validator.AppointmentValidator,
	cfg *config.Config,
) AppointmentService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &appointmentService{
		repo:      repo,
		doctors:   doctors,
		tokens:    tokens,
		estimates: estimates,
		publisher: publisher,
		validator: validator,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *appointmentService) Create(ctx context.Context, req *model.AppointmentRequest) (*model.Appointment, error) {
	s.sanitize(req)
	if err := s.validate(req); err != nil {
		return nil, err
	}

	doctor, err := s.doctors.FindByID(req.DoctorID)
	if err != nil {
		s.cfg.Log.Warn("Booking rejected for unknown doctor", "doctor_id", req.DoctorID)
		return nil, apperrors.Validation("Invalid appointment input", map[string]any{
			"doctorId": appointmentserrors.ErrUnknownDoctor.Error(),
		})
	}

	tokenNumber, err := s.tokens.Allocate(ctx, doctor.ID, req.Date)
	if errors.Is(err, token.ErrTokensExhausted) {
		s.cfg.Log.Warn("Booking rejected, no tokens left", "doctor_id", doctor.ID, "date", req.Date)
		return nil, apperrors.Conflict("No tokens left for this doctor on this date").WithDetails(map[string]any{
			"doctorId": doctor.ID,
			"date":     req.Date,
		})
	}
	if err != nil {
		s.cfg.Log.Error("Failed to allocate token number",
			"doctor_id", doctor.ID,
			"date", req.Date,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to allocate token number", err)
	}

	appt := &model.Appointment{
		ID:           uuid.NewString(),
		DoctorID:     doctor.ID,
		DoctorName:   doctor.Name,
		Date:         req.Date,
		Time:         req.Time,
		PatientName:  req.PatientName,
		PatientAge:   req.PatientAge,
		PatientPhone: req.PatientPhone,
		Symptoms:     req.Symptoms,
		TokenNumber:  tokenNumber,
		Status:       config.StatusConfirmed,
		CreatedAt:    s.now().UTC().Truncate(time.Millisecond),
	}

	if err := s.repo.Append(ctx, appt); err != nil {
		s.cfg.Log.Error("Failed to store appointment", "id", appt.ID, "error", err)
		return nil, apperrors.Internal("Failed to create appointment", err)
	}

	// The booking is already stored; a lost event must not fail it.
	if err := s.publisher.PublishBooked(ctx, *appt); err != nil {
		s.cfg.Log.Warn("Failed to publish booked event", "id", appt.ID, "error", err)
	}

	s.cfg.Log.Info("Appointment created successfully",
		"id", appt.ID,
		"doctor_id", appt.DoctorID,
		"date", appt.Date,
		"time", appt.Time,
		"token_number", appt.TokenNumber,
	)
	return appt, nil
}

func (s *appointmentService) GetAll(ctx context.Context) ([]model.AppointmentView, error) {
	list, err := s.repo.ListAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list appointments", "error", err)
		return nil, apperrors.Internal("Failed to retrieve appointments", err)
	}

	today := s.today()
	views := make([]model.AppointmentView, 0, len(list))
	for _, appt := range list {
		views = append(views, appt.View(today))
	}
	return views, nil
}

func (s *appointmentService) GetByID(ctx context.Context, id string) (*model.AppointmentView, error) {
	appt, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	view := appt.View(s.today())
	return &view, nil
}

func (s *appointmentService) WaitTime(ctx context.Context, id string) (*model.WaitEstimate, error) {
	appt, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.estimates.WaitTime(ctx, *appt)
}

func (s *appointmentService) Prediction(ctx context.Context, id string) (*model.Prediction, error) {
	appt, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	doctor, err := s.doctors.FindByID(appt.DoctorID)
	if err != nil {
		s.cfg.Log.Warn("Booking references a doctor missing from the catalog",
			"id", appt.ID,
			"doctor_id", appt.DoctorID,
		)
		return nil, apperrors.NotFoundWithID("Doctor", appt.DoctorID)
	}

	return s.estimates.Predict(ctx, doctor, *appt)
}

func (s *appointmentService) Slip(ctx context.Context, id string) ([]byte, *model.Appointment, error) {
	appt, err := s.find(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	var doctor *model.Doctor
	if d, err := s.doctors.FindByID(appt.DoctorID); err == nil {
		doctor = &d
	}

	body, err := slip.Render(*appt, doctor)
	if err != nil {
		s.cfg.Log.Error("Failed to render appointment slip", "id", appt.ID, "error", err)
		return nil, nil, apperrors.Internal("Failed to render appointment slip", err)
	}
	return body, appt, nil
}

// --- Helpers ---

func (s *appointmentService) find(ctx context.Context, id string) (*model.Appointment, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.InvalidInput("Appointment ID cannot be empty")
	}

	appt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Appointment", id)
		}
		if errors.Is(err, appointmentserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid appointment ID format")
		}
		s.cfg.Log.Error("Failed to retrieve appointment", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve appointment", err)
	}
	return appt, nil
}

func (s *appointmentService) today() string {
	return s.now().In(s.cfg.Location()).Format(model.DateLayout)
}

func (s *appointmentService) sanitize(req *model.AppointmentRequest) {
	req.DoctorID = strings.TrimSpace(req.DoctorID)
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)
	req.PatientName = sanitizer.NormalizeName(req.PatientName)
	req.PatientAge = strings.TrimSpace(req.PatientAge)
	req.PatientPhone = sanitizer.NormalizePhone(req.PatientPhone, s.cfg.PhoneRegion)
	// Inner whitespace counts toward the symptom length rules.
	req.Symptoms = strings.TrimSpace(req.Symptoms)
}

func (s *appointmentService) validate(req *model.AppointmentRequest) error {
	err := s.validator.Validate(req)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		s.cfg.Log.Warn("Appointment validation failed",
			"doctor_id", req.DoctorID,
			"missing_required", errors.Is(err, appointmentserrors.ErrMissingRequiredField),
			"error", err,
		)
		return apperrors.Validation("Invalid appointment input", validationErrs.Fields())
	}
	return apperrors.Internal("Failed to validate appointment", err)
}
