package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	queueerrors "medq/internal/queue/errors"
	"medq/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "queue_counters"

type queueDocument struct {
	DoctorID   string `bson:"doctor_id"`
	Date       string `bson:"date"`
	Issued     int    `bson:"issued"`
	NowServing *int   `bson:"now_serving,omitempty"`
}

func (d queueDocument) state() (*model.QueueState, bool) {
	s := &model.QueueState{DoctorID: d.DoctorID, Date: d.Date, Issued: d.Issued}
	if d.NowServing == nil {
		return s, false
	}
	s.NowServing = *d.NowServing
	return s, true
}

type mongoQueueRepository struct {
	collection   *mongo.Collection
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewMongoQueueRepository(db *mongo.Database, readTimeout, writeTimeout time.Duration) QueueRepository {
	return &mongoQueueRepository{
		collection:   db.Collection(CollectionName),
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

func filterFor(doctorID, date string) bson.M {
	return bson.M{"doctor_id": doctorID, "date": date}
}

func (r *mongoQueueRepository) IncrIssued(ctx context.Context, doctorID, date string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc queueDocument
	err := r.collection.FindOneAndUpdate(ctx, filterFor(doctorID, date), bson.M{"$inc": bson.M{"issued": 1}}, opts).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("failed to issue token: %w", err)
	}
	return doc.Issued, nil
}

func (r *mongoQueueRepository) Get(ctx context.Context, doctorID, date string) (*model.QueueState, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.readTimeout)
	defer cancel()

	var doc queueDocument
	err := r.collection.FindOne(ctx, filterFor(doctorID, date)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &model.QueueState{DoctorID: doctorID, Date: date}, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read queue: %w", err)
	}

	state, found := doc.state()
	return state, found, nil
}

// Advance relies on $max so concurrent advances can never lower the pointer.
func (r *mongoQueueRepository) Advance(ctx context.Context, doctorID, date string, to int) (*model.QueueState, error) {
	ctx, cancel := context.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	update := bson.M{
		"$max":         bson.M{"now_serving": to},
		"$setOnInsert": bson.M{"issued": 0},
	}

	var doc queueDocument
	if err := r.collection.FindOneAndUpdate(ctx, filterFor(doctorID, date), update, opts).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to advance queue: %w", err)
	}

	state, _ := doc.state()
	if state.NowServing > to {
		return nil, queueerrors.ErrStaleAdvance
	}
	return state, nil
}
