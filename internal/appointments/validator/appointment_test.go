package validator

import (
	"errors"
	"strings"
	"testing"

	appointmentserrors "medq/internal/appointments/errors"
	"medq/pkg/logger"
	"medq/pkg/model"
)

func validRequest() *model.AppointmentRequest {
	return &model.AppointmentRequest{
		DoctorID:     "3",
		Date:         "2025-03-05",
		Time:         "11:00",
		PatientName:  "Asha Rao",
		PatientAge:   "34",
		PatientPhone: "+919876543210",
		Symptoms:     "Itchy rash",
	}
}

func TestValidate(t *testing.T) {
	v := NewAppointmentValidator(logger.Discard())

	tests := []struct {
		name        string
		mutate      func(r *model.AppointmentRequest)
		wantField   string
		wantMissing bool
	}{
		{name: "valid", mutate: func(r *model.AppointmentRequest) {}},
		{name: "optional fields may be empty", mutate: func(r *model.AppointmentRequest) { r.PatientAge, r.Symptoms = "", "" }},
		{name: "missing name", mutate: func(r *model.AppointmentRequest) { r.PatientName = "" }, wantField: "patientName", wantMissing: true},
		{name: "missing phone", mutate: func(r *model.AppointmentRequest) { r.PatientPhone = "" }, wantField: "patientPhone", wantMissing: true},
		{name: "missing date", mutate: func(r *model.AppointmentRequest) { r.Date = "" }, wantField: "date", wantMissing: true},
		{name: "missing time", mutate: func(r *model.AppointmentRequest) { r.Time = "" }, wantField: "time", wantMissing: true},
		{name: "bad date format", mutate: func(r *model.AppointmentRequest) { r.Date = "05/03/2025" }, wantField: "date"},
		{name: "impossible date", mutate: func(r *model.AppointmentRequest) { r.Date = "2025-02-30" }, wantField: "date"},
		{name: "bad time format", mutate: func(r *model.AppointmentRequest) { r.Time = "11am" }, wantField: "time"},
		{name: "age not numeric", mutate: func(r *model.AppointmentRequest) { r.PatientAge = "thirty" }, wantField: "patientAge"},
		{name: "symptoms too long", mutate: func(r *model.AppointmentRequest) { r.Symptoms = strings.Repeat("a", 2001) }, wantField: "symptoms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			err := v.Validate(req)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("Validate() error = %v, want ValidationErrors", err)
			}
			if _, ok := verrs.Fields()[tt.wantField]; !ok {
				t.Errorf("Fields() = %v, want key %q", verrs.Fields(), tt.wantField)
			}
			if got := errors.Is(err, appointmentserrors.ErrMissingRequiredField); got != tt.wantMissing {
				t.Errorf("errors.Is(ErrMissingRequiredField) = %v, want %v", got, tt.wantMissing)
			}
		})
	}
}
