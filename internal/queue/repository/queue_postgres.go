package repository

import (
	"context"
	"errors"
	"fmt"

	queueerrors "medq/internal/queue/errors"
	"medq/pkg/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type queueRow struct {
	DoctorID   string `gorm:"primaryKey;type:varchar(64)"`
	Date       string `gorm:"primaryKey;type:char(10)"`
	Issued     int    `gorm:"not null;default:0"`
	NowServing *int
}

func (queueRow) TableName() string {
	return CollectionName
}

func (r queueRow) state() (*model.QueueState, bool) {
	s := &model.QueueState{DoctorID: r.DoctorID, Date: r.Date, Issued: r.Issued}
	if r.NowServing == nil {
		return s, false
	}
	s.NowServing = *r.NowServing
	return s, true
}

type postgresQueueRepository struct {
	db *gorm.DB
}

func NewPostgresQueueRepository(db *gorm.DB) QueueRepository {
	return &postgresQueueRepository{db: db}
}

var queueKey = []clause.Column{{Name: "doctor_id"}, {Name: "date"}}

func (r *postgresQueueRepository) IncrIssued(ctx context.Context, doctorID, date string) (int, error) {
	row := queueRow{DoctorID: doctorID, Date: date, Issued: 1}
	err := r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns:   queueKey,
				DoUpdates: clause.Assignments(map[string]any{"issued": gorm.Expr("queue_counters.issued + 1")}),
			},
			clause.Returning{},
		).
		Create(&row).Error
	if err != nil {
		return 0, fmt.Errorf("failed to issue token: %w", err)
	}
	return row.Issued, nil
}

func (r *postgresQueueRepository) Get(ctx context.Context, doctorID, date string) (*model.QueueState, bool, error) {
	var row queueRow
	err := r.db.WithContext(ctx).Where("doctor_id = ? AND date = ?", doctorID, date).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.QueueState{DoctorID: doctorID, Date: date}, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read queue: %w", err)
	}

	state, found := row.state()
	return state, found, nil
}

// Advance takes GREATEST of the stored and requested pointer in one
// statement, so concurrent advances can never lower it.
func (r *postgresQueueRepository) Advance(ctx context.Context, doctorID, date string, to int) (*model.QueueState, error) {
	requested := to
	row := queueRow{DoctorID: doctorID, Date: date, NowServing: &requested}
	err := r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns: queueKey,
				DoUpdates: clause.Assignments(map[string]any{
					"now_serving": gorm.Expr("GREATEST(COALESCE(queue_counters.now_serving, excluded.now_serving), excluded.now_serving)"),
				}),
			},
			clause.Returning{},
		).
		Create(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to advance queue: %w", err)
	}

	state, _ := row.state()
	if state.NowServing > to {
		return nil, queueerrors.ErrStaleAdvance
	}
	return state, nil
}

// AutoMigrate creates or updates the queue_counters table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&queueRow{})
}
