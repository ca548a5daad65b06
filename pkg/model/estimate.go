package model

import "time"

const (
	EstimateSourceRandom = "random"
	EstimateSourceQueue  = "queue"
)

// Prediction is the heuristic consultation-time range for one booking.
// Inverted is set when the independently clamped bounds cross (Min > Max);
// the bounds are reported as computed.
type Prediction struct {
	AppointmentID string   `json:"appointmentId,omitempty"`
	MinMinutes    int      `json:"minMinutes"`
	MaxMinutes    int      `json:"maxMinutes"`
	Inverted      bool     `json:"inverted"`
	Accuracy      int      `json:"accuracy"`
	Factors       []string `json:"factors"`
	Range         string   `json:"range"`
}

// WaitEstimate is a snapshot of a booking's place in the queue.
type WaitEstimate struct {
	AppointmentID    string    `json:"appointmentId,omitempty"`
	TokenNumber      int       `json:"tokenNumber"`
	CurrentToken     int       `json:"currentToken"`
	PatientsAhead    int       `json:"patientsAhead"`
	WaitMinutes      int       `json:"waitMinutes"`
	ProgressPercent  float64   `json:"progressPercent"`
	SuggestedArrival time.Time `json:"suggestedArrival"`
	Source           string    `json:"source"`
	ComputedAt       time.Time `json:"computedAt"`
}

type QueueState struct {
	DoctorID   string `json:"doctorId" bson:"doctor_id"`
	Date       string `json:"date" bson:"date"`
	Issued     int    `json:"issued" bson:"issued"`
	NowServing int    `json:"nowServing" bson:"now_serving"`
}

type AdvanceQueueRequest struct {
	NowServing int `json:"now_serving" validate:"gte=0"`
}
