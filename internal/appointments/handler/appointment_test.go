package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"

	apperrors "medq/pkg/errors"
	"medq/pkg/logger"
	"medq/pkg/model"
)

type mockAppointmentService struct {
	createFunc     func(ctx context.Context, req *model.AppointmentRequest) (*model.Appointment, error)
	getAllFunc     func(ctx context.Context) ([]model.AppointmentView, error)
	getByIDFunc    func(ctx context.Context, id string) (*model.AppointmentView, error)
	waitTimeFunc   func(ctx context.Context, id string) (*model.WaitEstimate, error)
	predictionFunc func(ctx context.Context, id string) (*model.Prediction, error)
	slipFunc       func(ctx context.Context, id string) ([]byte, *model.Appointment, error)
}

func (m *mockAppointmentService) Create(ctx context.Context, req *model.AppointmentRequest) (*model.Appointment, error) {
	return m.createFunc(ctx, req)
}

func (m *mockAppointmentService) GetAll(ctx context.Context) ([]model.AppointmentView, error) {
	return m.getAllFunc(ctx)
}

func (m *mockAppointmentService) GetByID(ctx context.Context, id string) (*model.AppointmentView, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockAppointmentService) WaitTime(ctx context.Context, id string) (*model.WaitEstimate, error) {
	return m.waitTimeFunc(ctx, id)
}

func (m *mockAppointmentService) Prediction(ctx context.Context, id string) (*model.Prediction, error) {
	return m.predictionFunc(ctx, id)
}

func (m *mockAppointmentService) Slip(ctx context.Context, id string) ([]byte, *model.Appointment, error) {
	return m.slipFunc(ctx, id)
}

func serve(svc *mockAppointmentService, req *http.Request) *httptest.ResponseRecorder {
	router := httprouter.New()
	NewAppointmentHandler(svc, logger.Discard()).RegisterRoutes(router)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreate(t *testing.T) {
	svc := &mockAppointmentService{
		createFunc: func(_ context.Context, req *model.AppointmentRequest) (*model.Appointment, error) {
			if req.DoctorID != "3" || req.PatientName != "Asha Rao" {
				t.Errorf("unexpected request %+v", req)
			}
			return &model.Appointment{ID: "a-1", DoctorID: req.DoctorID, TokenNumber: 7, Status: "confirmed"}, nil
		},
	}

	body := `{"doctorId":"3","date":"2025-03-05","time":"11:00","patientName":"Asha Rao","patientPhone":"9876543210"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := serve(svc, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data model.Appointment `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.ID != "a-1" || resp.Data.TokenNumber != 7 {
		t.Errorf("unexpected body %+v", resp.Data)
	}
}

func TestCreate_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{"malformed json", `{"doctorId":`, nil, http.StatusBadRequest},
		{"unknown field", `{"doctorId":"3","tokenNumber":1}`, nil, http.StatusBadRequest},
		{"validation", `{"doctorId":"3"}`, apperrors.Validation("Invalid appointment input", map[string]any{"patientName": "patientName is required"}), http.StatusUnprocessableEntity},
		{"internal", `{"doctorId":"3"}`, apperrors.Internal("Failed to create appointment", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAppointmentService{
				createFunc: func(context.Context, *model.AppointmentRequest) (*model.Appointment, error) {
					if tt.serviceErr == nil {
						t.Error("service should not be called")
					}
					return nil, tt.serviceErr
				},
			}
			req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(tt.body))
			rec := serve(svc, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestGetAll(t *testing.T) {
	svc := &mockAppointmentService{
		getAllFunc: func(context.Context) ([]model.AppointmentView, error) {
			return []model.AppointmentView{
				{Appointment: model.Appointment{ID: "a-1"}, DisplayStatus: model.DisplayCompleted},
				{Appointment: model.Appointment{ID: "a-2"}, DisplayStatus: model.DisplayUpcoming},
			}, nil
		},
	}

	rec := serve(svc, httptest.NewRequest(http.MethodGet, "/api/v1/appointments", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Data       []model.AppointmentView `json:"data"`
		TotalCount int                     `json:"total_count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.TotalCount != 2 || resp.Data[1].DisplayStatus != model.DisplayUpcoming {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}

func TestGetAll_EmptyIsArray(t *testing.T) {
	svc := &mockAppointmentService{
		getAllFunc: func(context.Context) ([]model.AppointmentView, error) {
			return []model.AppointmentView{}, nil
		},
	}

	rec := serve(svc, httptest.NewRequest(http.MethodGet, "/api/v1/appointments", nil))
	if !strings.Contains(rec.Body.String(), `"data":[]`) {
		t.Errorf("body = %s, want an empty array", rec.Body.String())
	}
}

func TestGetByIDRoutes(t *testing.T) {
	notFound := apperrors.NotFoundWithID("Appointment", "missing")
	svc := &mockAppointmentService{
		getByIDFunc: func(_ context.Context, id string) (*model.AppointmentView, error) {
			if id == "missing" {
				return nil, notFound
			}
			return &model.AppointmentView{Appointment: model.Appointment{ID: id}, DisplayStatus: model.DisplayToday}, nil
		},
		waitTimeFunc: func(_ context.Context, id string) (*model.WaitEstimate, error) {
			if id == "missing" {
				return nil, notFound
			}
			return &model.WaitEstimate{AppointmentID: id, WaitMinutes: 45}, nil
		},
		predictionFunc: func(_ context.Context, id string) (*model.Prediction, error) {
			if id == "missing" {
				return nil, notFound
			}
			return &model.Prediction{AppointmentID: id, Range: "5-9 minutes"}, nil
		},
	}

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/api/v1/appointments/id/a-1", http.StatusOK, `"displayStatus":"today"`},
		{"/api/v1/appointments/id/a-1/wait-time", http.StatusOK, `"waitMinutes":45`},
		{"/api/v1/appointments/id/a-1/prediction", http.StatusOK, `"range":"5-9 minutes"`},
		{"/api/v1/appointments/id/missing", http.StatusNotFound, `"code":"NOT_FOUND"`},
		{"/api/v1/appointments/id/missing/wait-time", http.StatusNotFound, `"code":"NOT_FOUND"`},
		{"/api/v1/appointments/id/missing/prediction", http.StatusNotFound, `"code":"NOT_FOUND"`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := serve(svc, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body = %s, want it to contain %s", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestSlip(t *testing.T) {
	svc := &mockAppointmentService{
		slipFunc: func(_ context.Context, id string) ([]byte, *model.Appointment, error) {
			return []byte("%PDF-1.3 fake"), &model.Appointment{ID: id}, nil
		},
	}

	rec := serve(svc, httptest.NewRequest(http.MethodGet, "/api/v1/appointments/id/a-1/slip", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "appointment-a-1.pdf") {
		t.Errorf("Content-Disposition = %q", cd)
	}
}
