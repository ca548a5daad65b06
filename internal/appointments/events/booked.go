// Package events publishes booking lifecycle events to Kafka.
package events

import (
	"context"
	"fmt"
	"time"

	"medq/pkg/kafka"
	"medq/pkg/middleware"
	"medq/pkg/model"
)

const (
	EventAppointmentBooked = "appointment.booked"
	SchemaVersion          = "1"
	Source                 = "medq"
)

// BookedEvent leaves out patient contact details; consumers that need them
// read the booking by id.
type BookedEvent struct {
	AppointmentID string    `json:"appointment_id"`
	DoctorID      string    `json:"doctor_id"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	TokenNumber   int       `json:"token_number"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type Publisher interface {
	PublishBooked(ctx context.Context, appt model.Appointment) error
}

// MessagePublisher is satisfied by *kafka.Producer.
type MessagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type KafkaPublisher struct {
	producer MessagePublisher
}

func NewKafkaPublisher(producer MessagePublisher) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

// PublishBooked keys the event by doctor so one doctor's bookings stay ordered.
func (p *KafkaPublisher) PublishBooked(ctx context.Context, appt model.Appointment) error {
	msg, err := kafka.NewMessage().
		WithKey(appt.DoctorID).
		WithEventType(EventAppointmentBooked).
		WithSchemaVersion(SchemaVersion).
		WithSource(Source).
		WithCorrelationID(middleware.RequestIDFromContext(ctx)).
		WithValue(BookedEvent{
			AppointmentID: appt.ID,
			DoctorID:      appt.DoctorID,
			Date:          appt.Date,
			Time:          appt.Time,
			TokenNumber:   appt.TokenNumber,
			Status:        appt.Status,
			CreatedAt:     appt.CreatedAt,
		}).
		Build()
	if err != nil {
		return fmt.Errorf("build booked event: %w", err)
	}
	return p.producer.Publish(ctx, msg)
}

// NoopPublisher is used when Kafka is disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishBooked(context.Context, model.Appointment) error {
	return nil
}
