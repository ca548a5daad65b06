package events

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"medq/pkg/kafka"
	"medq/pkg/middleware"
	"medq/pkg/model"
)

type mockMessagePublisher struct {
	published []kafka.Message
	err       error
}

func (m *mockMessagePublisher) Publish(_ context.Context, msg kafka.Message) error {
	m.published = append(m.published, msg)
	return m.err
}

func TestKafkaPublisher_PublishBooked(t *testing.T) {
	producer := &mockMessagePublisher{}
	p := NewKafkaPublisher(producer)

	appt := model.Appointment{
		ID:           "a-1",
		DoctorID:     "3",
		Date:         "2025-03-05",
		Time:         "11:00",
		PatientPhone: "+919876543210",
		TokenNumber:  17,
		Status:       "confirmed",
		CreatedAt:    time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC),
	}

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-1")
	if err := p.PublishBooked(ctx, appt); err != nil {
		t.Fatalf("PublishBooked() error = %v", err)
	}

	if len(producer.published) != 1 {
		t.Fatalf("published %d messages, want 1", len(producer.published))
	}
	msg := producer.published[0]

	if msg.Key != "3" {
		t.Errorf("Key = %q, want doctor id", msg.Key)
	}
	if msg.GetEventType() != EventAppointmentBooked {
		t.Errorf("event type = %q", msg.GetEventType())
	}
	if msg.GetCorrelationID() != "req-1" {
		t.Errorf("correlation id = %q, want req-1", msg.GetCorrelationID())
	}
	if msg.GetEventID() == "" {
		t.Errorf("event id should be set")
	}

	var event BookedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if event.AppointmentID != "a-1" || event.TokenNumber != 17 {
		t.Errorf("unexpected event %+v", event)
	}
	if strings.Contains(string(msg.Value), appt.PatientPhone) {
		t.Errorf("event must not carry the patient phone: %s", msg.Value)
	}
}

func TestKafkaPublisher_PropagatesErrors(t *testing.T) {
	p := NewKafkaPublisher(&mockMessagePublisher{err: errors.New("broker down")})
	if err := p.PublishBooked(context.Background(), model.Appointment{ID: "a-1", DoctorID: "1"}); err == nil {
		t.Errorf("expected error")
	}
}
