package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"

	apperrors "medq/pkg/errors"
	"medq/pkg/logger"
	"medq/pkg/model"
)

type mockDoctorService struct {
	searchFunc  func(ctx context.Context, term string) []model.Doctor
	getByIDFunc func(ctx context.Context, id string) (*model.Doctor, error)
}

func (m *mockDoctorService) GetByID(ctx context.Context, id string) (*model.Doctor, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, apperrors.NotFoundWithID("Doctor", id)
}

func (m *mockDoctorService) Search(ctx context.Context, term string) []model.Doctor {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, term)
	}
	return []model.Doctor{}
}

func (m *mockDoctorService) Specialties(ctx context.Context) []string {
	return []string{"Cardiologist"}
}

func newRouter(svc *mockDoctorService) *httprouter.Router {
	router := httprouter.New()
	NewDoctorHandler(svc, logger.Discard()).RegisterRoutes(router)
	return router
}

func TestSearch_PassesTermUntouched(t *testing.T) {
	var received string
	router := newRouter(&mockDoctorService{
		searchFunc: func(ctx context.Context, term string) []model.Doctor {
			received = term
			return []model.Doctor{{ID: "1", Name: "Dr. Sarah Johnson"}}
		},
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/doctors?q=%20cardio%20", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if received != " cardio " {
		t.Errorf("service received %q, want %q", received, " cardio ")
	}

	var body struct {
		Data       []model.Doctor `json:"data"`
		TotalCount int            `json:"total_count"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.TotalCount != 1 || body.Data[0].ID != "1" {
		t.Errorf("body = %+v", body)
	}
}

func TestGetByID(t *testing.T) {
	router := newRouter(&mockDoctorService{
		getByIDFunc: func(ctx context.Context, id string) (*model.Doctor, error) {
			if id == "3" {
				return &model.Doctor{ID: "3", Specialty: "Dermatologist"}, nil
			}
			return nil, apperrors.NotFoundWithID("Doctor", id)
		},
	})

	tests := []struct {
		path string
		want int
	}{
		{"/api/v1/doctors/id/3", http.StatusOK},
		{"/api/v1/doctors/id/42", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestSpecialties(t *testing.T) {
	router := newRouter(&mockDoctorService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/doctors/specialties", nil))

	if w.Code != http.StatusOK || w.Body.String() != "{\"data\":[\"Cardiologist\"]}\n" {
		t.Errorf("status = %d body = %q", w.Code, w.Body.String())
	}
}
