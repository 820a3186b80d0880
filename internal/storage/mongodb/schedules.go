package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/airwavefm/radio-backend/internal/domain"
	"github.com/airwavefm/radio-backend/internal/storage"
)

// ScheduleStore implements MongoDB schedule storage
type ScheduleStore struct {
	collection *mongo.Collection
}

func (s *ScheduleStore) Create(ctx context.Context, schedule *domain.Schedule) error {
	schedule.CreatedAt = time.Now()

	_, err := s.collection.InsertOne(ctx, schedule)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create schedule: %w", err)
	}
	return nil
}

func (s *ScheduleStore) GetByID(ctx context.Context, id string) (*domain.Schedule, error) {
	var schedule domain.Schedule
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&schedule)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return &schedule, nil
}

func (s *ScheduleStore) GetAll(ctx context.Context) ([]*domain.Schedule, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var schedules []*domain.Schedule
	if err := cursor.All(ctx, &schedules); err != nil {
		return nil, fmt.Errorf("failed to decode schedule: %w", err)
	}
	return schedules, nil
}

func (s *ScheduleStore) FindCurrent(ctx context.Context, now time.Time) (*domain.Schedule, error) {
	var schedule domain.Schedule
	err := s.collection.FindOne(ctx, bson.M{
		"start_time": bson.M{"$lte": now},
		"end_time":   bson.M{"$gte": now},
	}).Decode(&schedule)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find current show: %w", err)
	}
	return &schedule, nil
}

func (s *ScheduleStore) GetByDJ(ctx context.Context, djID string) ([]*domain.Schedule, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"dj_id": djID})
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var schedules []*domain.Schedule
	if err := cursor.All(ctx, &schedules); err != nil {
		return nil, fmt.Errorf("failed to decode schedule: %w", err)
	}
	return schedules, nil
}

func (s *ScheduleStore) Update(ctx context.Context, schedule *domain.Schedule) error {
	result, err := s.collection.ReplaceOne(ctx, bson.M{"_id": schedule.ID}, schedule)
	if err != nil {
		return fmt.Errorf("failed to update schedule: %w", err)
	}
	if result.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}
