package slip

import (
	"bytes"
	"testing"

	"medq/pkg/model"
)

func TestRender(t *testing.T) {
	appt := model.Appointment{
		ID:           "5f0c2f55-5a0a-4a0e-9d59-0e3c5b1f7d10",
		DoctorID:     "3",
		DoctorName:   "Dr. Priya Sharma",
		Date:         "2025-03-05",
		Time:         "11:00",
		PatientName:  "José Álvarez",
		PatientAge:   "34",
		PatientPhone: "+919876543210",
		Symptoms:     "Itchy rash on both arms\nworse at night",
		TokenNumber:  17,
		Status:       "confirmed",
	}

	tests := []struct {
		name   string
		doctor *model.Doctor
	}{
		{"with catalog doctor", &model.Doctor{ID: "3", Name: "Dr. Priya Sharma", Specialty: "Dermatologist"}},
		{"doctor missing from catalog", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Render(appt, tt.doctor)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if !bytes.HasPrefix(out, []byte("%PDF-")) {
				t.Errorf("output is not a PDF: %q", out[:min(len(out), 16)])
			}
		})
	}
}

func TestFilename(t *testing.T) {
	if got := Filename(model.Appointment{ID: "a-1"}); got != "appointment-a-1.pdf" {
		t.Errorf("Filename() = %q", got)
	}
}
