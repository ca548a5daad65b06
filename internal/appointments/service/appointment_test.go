package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	appointmentserrors "medq/internal/appointments/errors"
	"medq/internal/appointments/repository"
	"medq/internal/appointments/token"
	"medq/internal/appointments/validator"
	doctorserrors "medq/internal/doctors/errors"
	"medq/internal/estimation"
	"medq/pkg/config"
	apperrors "medq/pkg/errors"
	"medq/pkg/kvstore"
	"medq/pkg/logger"
	"medq/pkg/model"
)

type mockDirectory struct{}

func (mockDirectory) FindByID(id string) (model.Doctor, error) {
	switch id {
	case "3":
		return model.Doctor{ID: "3", Name: "Dr. Priya Sharma", Specialty: "Dermatologist", Experience: 8, Rating: 4.9, ReviewCount: 156}, nil
	default:
		return model.Doctor{}, doctorserrors.ErrNotFound
	}
}

type mockAllocator struct {
	next int
	err  error
}

func (m *mockAllocator) Allocate(context.Context, string, string) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.next++
	return m.next, nil
}

type mockEstimateService struct {
	predictFunc  func(ctx context.Context, doctor model.Doctor, appt model.Appointment) (*model.Prediction, error)
	waitTimeFunc func(ctx context.Context, appt model.Appointment) (*model.WaitEstimate, error)
}

func (m *mockEstimateService) Predict(ctx context.Context, doctor model.Doctor, appt model.Appointment) (*model.Prediction, error) {
	return m.predictFunc(ctx, doctor, appt)
}

func (m *mockEstimateService) WaitTime(ctx context.Context, appt model.Appointment) (*model.WaitEstimate, error) {
	return m.waitTimeFunc(ctx, appt)
}

func (m *mockEstimateService) Stop() {}

type mockPublisher struct {
	published []model.Appointment
	err       error
}

func (m *mockPublisher) PublishBooked(_ context.Context, appt model.Appointment) error {
	m.published = append(m.published, appt)
	return m.err
}

type mockRepository struct {
	err error
}

func (m *mockRepository) Append(context.Context, *model.Appointment) error { return m.err }

func (m *mockRepository) ListAll(context.Context) ([]model.Appointment, error) { return nil, m.err }

func (m *mockRepository) FindByID(context.Context, string) (*model.Appointment, error) {
	return nil, m.err
}

var fixedNow = time.Date(2025, 3, 5, 4, 0, 0, 0, time.UTC)

type fixture struct {
	svc       *appointmentService
	repo      repository.AppointmentRepository
	allocator *mockAllocator
	estimates *mockEstimateService
	publisher *mockPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := &config.Config{
		Log:            logger.Discard(),
		PhoneRegion:    "IN",
		ClinicTimezone: "Asia/Kolkata",
	}
	f := &fixture{
		repo:      repository.NewKVAppointmentRepository(kvstore.NewMemoryStore(), "appointments", cfg.Log),
		allocator: &mockAllocator{},
		estimates: &mockEstimateService{},
		publisher: &mockPublisher{},
	}
	f.svc = NewAppointmentService(
		f.repo,
		mockDirectory{},
		f.allocator,
		f.estimates,
		f.publisher,
		validator.NewAppointmentValidator(cfg.Log),
		cfg,
	).(*appointmentService)
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func validRequest() *model.AppointmentRequest {
	return &model.AppointmentRequest{
		DoctorID:     " 3 ",
		Date:         "2025-03-05",
		Time:         "11:00",
		PatientName:  "  Asha   Rao ",
		PatientPhone: "98765 43210",
		Symptoms:     "  Itchy rash  \n\n  worse at   night ",
	}
}

func TestCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	appt, err := f.svc.Create(ctx, validRequest())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if appt.ID == "" || appt.TokenNumber != 1 || appt.Status != config.StatusConfirmed {
		t.Errorf("unexpected appointment %+v", appt)
	}
	if appt.DoctorID != "3" || appt.DoctorName != "Dr. Priya Sharma" {
		t.Errorf("doctor not resolved: %+v", appt)
	}
	if appt.PatientName != "Asha Rao" {
		t.Errorf("PatientName = %q", appt.PatientName)
	}
	if appt.PatientPhone != "+919876543210" {
		t.Errorf("PatientPhone = %q, want E.164", appt.PatientPhone)
	}
	if appt.Symptoms != "Itchy rash  \n\n  worse at   night" {
		t.Errorf("Symptoms = %q", appt.Symptoms)
	}
	if !appt.CreatedAt.Equal(fixedNow) {
		t.Errorf("CreatedAt = %v, want %v", appt.CreatedAt, fixedNow)
	}

	stored, err := f.repo.FindByID(ctx, appt.ID)
	if err != nil || stored.ID != appt.ID {
		t.Errorf("appointment was not persisted: %v", err)
	}
	if len(f.publisher.published) != 1 || f.publisher.published[0].ID != appt.ID {
		t.Errorf("booked event not published: %+v", f.publisher.published)
	}

	second, _ := f.svc.Create(ctx, validRequest())
	if second.ID == appt.ID {
		t.Errorf("ids must be unique")
	}
}

func TestCreate_SymptomsKeepInnerWhitespace(t *testing.T) {
	f := newFixture(t)

	// 101 runes once trimmed, 93 if inner runs were collapsed.
	symptoms := "  Rash  on  both  arms  and  legs  for  two  weeks, " + strings.Repeat("x", 51) + "  "
	req := validRequest()
	req.Symptoms = symptoms

	appt, err := f.svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if appt.Symptoms != strings.TrimSpace(symptoms) {
		t.Fatalf("Symptoms = %q, want only the ends trimmed", appt.Symptoms)
	}

	doctor, _ := mockDirectory{}.FindByID("3")
	prediction := estimation.PredictConsultation(doctor, *appt)
	found := false
	for _, factor := range prediction.Factors {
		if factor == estimation.FactorComplexSymptoms {
			found = true
		}
	}
	if !found {
		t.Errorf("Factors = %v, want %q", prediction.Factors, estimation.FactorComplexSymptoms)
	}
}

func TestCreate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(r *model.AppointmentRequest)
		setup    func(f *fixture)
		wantCode string
	}{
		{
			name:     "missing patient name",
			mutate:   func(r *model.AppointmentRequest) { r.PatientName = "   " },
			wantCode: apperrors.CodeValidation,
		},
		{
			name:     "malformed date",
			mutate:   func(r *model.AppointmentRequest) { r.Date = "tomorrow" },
			wantCode: apperrors.CodeValidation,
		},
		{
			name:     "unknown doctor",
			mutate:   func(r *model.AppointmentRequest) { r.DoctorID = "42" },
			wantCode: apperrors.CodeValidation,
		},
		{
			name:     "token allocation fails",
			setup:    func(f *fixture) { f.allocator.err = errors.New("redis down") },
			wantCode: apperrors.CodeInternal,
		},
		{
			name:     "doctor fully booked",
			setup:    func(f *fixture) { f.allocator.err = fmt.Errorf("token 51 exceeds 50: %w", token.ErrTokensExhausted) },
			wantCode: apperrors.CodeConflict,
		},
		{
			name:     "store fails",
			setup:    func(f *fixture) { f.svc.repo = &mockRepository{err: errors.New("disk full")} },
			wantCode: apperrors.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setup != nil {
				tt.setup(f)
			}
			req := validRequest()
			if tt.mutate != nil {
				tt.mutate(req)
			}

			_, err := f.svc.Create(context.Background(), req)
			if err == nil {
				t.Fatal("expected error")
			}
			if code := apperrors.AsAppError(err).Code; code != tt.wantCode {
				t.Errorf("Code = %s, want %s", code, tt.wantCode)
			}
			if len(f.publisher.published) != 0 {
				t.Errorf("failed bookings must not be published")
			}
		})
	}
}

func TestCreate_MissingFieldDetails(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), &model.AppointmentRequest{DoctorID: "3"})
	appErr := apperrors.AsAppError(err)
	for _, field := range []string{"date", "time", "patientName", "patientPhone"} {
		if _, ok := appErr.Details[field]; !ok {
			t.Errorf("Details missing %q: %v", field, appErr.Details)
		}
	}
}

func TestCreate_PublishFailureDoesNotFailBooking(t *testing.T) {
	f := newFixture(t)
	f.publisher.err = errors.New("broker down")

	appt, err := f.svc.Create(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := f.repo.FindByID(context.Background(), appt.ID); err != nil {
		t.Errorf("booking should be stored: %v", err)
	}
}

func TestGetAll_DisplayStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// 04:00 UTC is 09:30 in Asia/Kolkata, still 2025-03-05.
	for _, date := range []string{"2025-03-04", "2025-03-05", "2025-03-06"} {
		req := validRequest()
		req.Date = date
		if _, err := f.svc.Create(ctx, req); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	views, err := f.svc.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}

	want := []string{model.DisplayCompleted, model.DisplayToday, model.DisplayUpcoming}
	if len(views) != len(want) {
		t.Fatalf("GetAll() len = %d, want %d", len(views), len(want))
	}
	for i, v := range views {
		if v.DisplayStatus != want[i] {
			t.Errorf("views[%d].DisplayStatus = %s, want %s", i, v.DisplayStatus, want[i])
		}
	}
}

func TestGetAll_StoreError(t *testing.T) {
	f := newFixture(t)
	f.svc.repo = &mockRepository{err: errors.New("redis down")}

	if _, err := f.svc.GetAll(context.Background()); apperrors.AsAppError(err).Code != apperrors.CodeInternal {
		t.Errorf("GetAll() err = %v, want internal", err)
	}
}

func TestGetByID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, _ := f.svc.Create(ctx, validRequest())

	view, err := f.svc.GetByID(ctx, created.ID)
	if err != nil || view.ID != created.ID || view.DisplayStatus != model.DisplayToday {
		t.Errorf("GetByID() = %+v, %v", view, err)
	}

	tests := []struct {
		name     string
		id       string
		repoErr  error
		wantCode string
	}{
		{"unknown id", "missing", nil, apperrors.CodeNotFound},
		{"blank id", " ", nil, apperrors.CodeInvalidInput},
		{"invalid id", "x", appointmentserrors.ErrInvalidID, apperrors.CodeInvalidInput},
		{"store failure", "x", errors.New("down"), apperrors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.repoErr != nil {
				f.svc.repo = &mockRepository{err: tt.repoErr}
				defer func() { f.svc.repo = f.repo }()
			}
			_, err := f.svc.GetByID(ctx, tt.id)
			if code := apperrors.AsAppError(err).Code; code != tt.wantCode {
				t.Errorf("Code = %s, want %s", code, tt.wantCode)
			}
		})
	}
}

func TestWaitTimeAndPrediction(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, _ := f.svc.Create(ctx, validRequest())

	f.estimates.waitTimeFunc = func(_ context.Context, appt model.Appointment) (*model.WaitEstimate, error) {
		if appt.ID != created.ID {
			t.Errorf("WaitTime got appointment %s", appt.ID)
		}
		return &model.WaitEstimate{AppointmentID: appt.ID, TokenNumber: appt.TokenNumber}, nil
	}
	f.estimates.predictFunc = func(_ context.Context, doctor model.Doctor, appt model.Appointment) (*model.Prediction, error) {
		if doctor.Specialty != "Dermatologist" {
			t.Errorf("Predict got doctor %+v", doctor)
		}
		return &model.Prediction{AppointmentID: appt.ID, MinMinutes: 5, MaxMinutes: 10}, nil
	}

	est, err := f.svc.WaitTime(ctx, created.ID)
	if err != nil || est.AppointmentID != created.ID {
		t.Errorf("WaitTime() = %+v, %v", est, err)
	}

	p, err := f.svc.Prediction(ctx, created.ID)
	if err != nil || p.MinMinutes != 5 {
		t.Errorf("Prediction() = %+v, %v", p, err)
	}

	if _, err := f.svc.WaitTime(ctx, "missing"); apperrors.AsAppError(err).Code != apperrors.CodeNotFound {
		t.Errorf("WaitTime() on unknown id err = %v", err)
	}
}

func TestPrediction_DoctorRemovedFromCatalog(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_ = f.repo.Append(ctx, &model.Appointment{ID: "a-old", DoctorID: "99", TokenNumber: 4})

	_, err := f.svc.Prediction(ctx, "a-old")
	if apperrors.AsAppError(err).Code != apperrors.CodeNotFound {
		t.Errorf("Prediction() err = %v, want not found", err)
	}
}

func TestSlip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, _ := f.svc.Create(ctx, validRequest())

	body, appt, err := f.svc.Slip(ctx, created.ID)
	if err != nil {
		t.Fatalf("Slip() error = %v", err)
	}
	if appt.ID != created.ID || !strings.HasPrefix(string(body), "%PDF-") {
		t.Errorf("unexpected slip for %s", appt.ID)
	}
}
