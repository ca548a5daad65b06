package model

import "time"

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

const (
	DisplayCompleted = "completed"
	DisplayToday     = "today"
	DisplayUpcoming  = "upcoming"
)

// Appointment is a persisted booking. Records are append-only: once stored
// they are never updated or removed.
type Appointment struct {
	ID           string    `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	DoctorID     string    `json:"doctorId" bson:"doctor_id" gorm:"type:varchar(64);not null;index:idx_appointments_doctor_date"`
	DoctorName   string    `json:"doctorName" bson:"doctor_name" gorm:"type:varchar(100)"`
	Date         string    `json:"date" bson:"date" gorm:"type:char(10);not null;index:idx_appointments_doctor_date"`
	Time         string    `json:"time" bson:"time" gorm:"type:char(5);not null"`
	PatientName  string    `json:"patientName" bson:"patient_name" gorm:"type:varchar(100);not null"`
	PatientAge   string    `json:"patientAge,omitempty" bson:"patient_age,omitempty" gorm:"type:varchar(3)"`
	PatientPhone string    `json:"patientPhone" bson:"patient_phone" gorm:"type:varchar(20);not null"`
	Symptoms     string    `json:"symptoms,omitempty" bson:"symptoms,omitempty" gorm:"type:text"`
	TokenNumber  int       `json:"tokenNumber" bson:"token_number" gorm:"not null"`
	Status       string    `json:"status" bson:"status" gorm:"type:varchar(16);not null"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at" gorm:"not null;index"`
}

// AppointmentRequest is the client payload for a new booking.
type AppointmentRequest struct {
	DoctorID     string `json:"doctorId" validate:"required,max=64"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	Time         string `json:"time" validate:"required,datetime=15:04"`
	PatientName  string `json:"patientName" validate:"required,min=2,max=100"`
	PatientAge   string `json:"patientAge,omitempty" validate:"omitempty,numeric,max=3"`
	PatientPhone string `json:"patientPhone" validate:"required,min=5,max=20"`
	Symptoms     string `json:"symptoms,omitempty" validate:"omitempty,max=2000"`
}

// AppointmentView adds fields derived at read time.
type AppointmentView struct {
	Appointment
	DisplayStatus string `json:"displayStatus"`
}

// DisplayStatus compares the booking date to today's calendar date.
// Both use the YYYY-MM-DD layout so lexical order is chronological.
func (a Appointment) DisplayStatus(today string) string {
	switch {
	case a.Date < today:
		return DisplayCompleted
	case a.Date == today:
		return DisplayToday
	default:
		return DisplayUpcoming
	}
}

func (a Appointment) View(today string) AppointmentView {
	return AppointmentView{Appointment: a, DisplayStatus: a.DisplayStatus(today)}
}
