package repository

import (
	"context"
	"errors"
	"fmt"

	appointmentserrors "medq/internal/appointments/errors"
	"medq/pkg/model"

	"gorm.io/gorm"
)

const TableName = "appointments"

type postgresAppointmentRepository struct {
	db *gorm.DB
}

func NewPostgresAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &postgresAppointmentRepository{db: db}
}

func (r *postgresAppointmentRepository) Append(ctx context.Context, appt *model.Appointment) error {
	if err := r.db.WithContext(ctx).Table(TableName).Create(appt).Error; err != nil {
		return fmt.Errorf("failed to insert appointment: %w", err)
	}
	return nil
}

func (r *postgresAppointmentRepository) ListAll(ctx context.Context) ([]model.Appointment, error) {
	list := []model.Appointment{}
	err := r.db.WithContext(ctx).
		Table(TableName).
		Order("created_at ASC").
		Order("id ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return list, nil
}

func (r *postgresAppointmentRepository) FindByID(ctx context.Context, id string) (*model.Appointment, error) {
	var appt model.Appointment
	err := r.db.WithContext(ctx).Table(TableName).Where("id = ?", id).First(&appt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appointmentserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find appointment: %w", err)
	}
	return &appt, nil
}

// AutoMigrate creates or updates the appointments table.
func AutoMigrate(db *gorm.DB) error {
	return db.Table(TableName).AutoMigrate(&model.Appointment{})
}
