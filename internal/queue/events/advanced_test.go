package events

import (
	"context"
	"errors"
	"testing"

	apperrors "medq/pkg/errors"
	"medq/pkg/kafka"
	"medq/pkg/logger"
	"medq/pkg/model"
)

type mockQueueService struct {
	advanceFunc func(ctx context.Context, doctorID, date string, to int) (*model.QueueState, error)
}

func (m *mockQueueService) NextToken(context.Context, string, string) (int, error) {
	return 0, nil
}

func (m *mockQueueService) NowServing(context.Context, string, string) (int, bool, error) {
	return 0, false, nil
}

func (m *mockQueueService) State(context.Context, string, string) (*model.QueueState, error) {
	return nil, nil
}

func (m *mockQueueService) Advance(ctx context.Context, doctorID, date string, to int) (*model.QueueState, error) {
	return m.advanceFunc(ctx, doctorID, date, to)
}

func buildEvent(t *testing.T, eventType string, value any) kafka.Message {
	t.Helper()
	msg, err := kafka.NewMessage().
		WithKey("1").
		WithEventType(eventType).
		WithValue(value).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return msg
}

func TestQueueAdvancedHandler(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantErr    bool
		wantType   kafka.ErrorType
	}{
		{name: "applied"},
		{name: "stale is acknowledged", serviceErr: apperrors.Conflict("stale")},
		{name: "unknown doctor is permanent", serviceErr: apperrors.NotFound("Doctor"), wantErr: true, wantType: kafka.ErrorTypePermanent},
		{name: "store failure is transient", serviceErr: apperrors.Internal("boom", errors.New("down")), wantErr: true, wantType: kafka.ErrorTypeTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			svc := &mockQueueService{
				advanceFunc: func(_ context.Context, doctorID, date string, to int) (*model.QueueState, error) {
					called = true
					if doctorID != "1" || date != "2025-03-05" || to != 6 {
						t.Errorf("unexpected advance %s/%s/%d", doctorID, date, to)
					}
					return &model.QueueState{NowServing: to}, tt.serviceErr
				},
			}
			handle := NewQueueAdvancedHandler(svc, logger.Discard())

			err := handle(context.Background(), buildEvent(t, EventQueueAdvanced, QueueAdvancedEvent{DoctorID: "1", Date: "2025-03-05", NowServing: 6}))
			if !called {
				t.Fatal("service was not called")
			}
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && kafka.ClassifyError(err) != tt.wantType {
				t.Errorf("ClassifyError() = %v, want %v", kafka.ClassifyError(err), tt.wantType)
			}
		})
	}
}

func TestQueueAdvancedHandler_SkipsOtherEvents(t *testing.T) {
	svc := &mockQueueService{
		advanceFunc: func(context.Context, string, string, int) (*model.QueueState, error) {
			t.Error("service should not be called")
			return nil, nil
		},
	}
	handle := NewQueueAdvancedHandler(svc, logger.Discard())

	if err := handle(context.Background(), buildEvent(t, "appointment.booked", map[string]string{"id": "a-1"})); err != nil {
		t.Errorf("err = %v, want nil", err)
	}
}

func TestQueueAdvancedHandler_BadPayload(t *testing.T) {
	svc := &mockQueueService{}
	handle := NewQueueAdvancedHandler(svc, logger.Discard())

	msg := kafka.Message{Value: []byte("{not json"), Headers: map[string]string{}}
	err := handle(context.Background(), msg)
	if kafka.ClassifyError(err) != kafka.ErrorTypePermanent {
		t.Errorf("ClassifyError() = %v, want permanent", kafka.ClassifyError(err))
	}
}
