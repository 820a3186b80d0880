package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/airwavefm/radio-backend/internal/domain"
	"github.com/airwavefm/radio-backend/internal/storage"
)

// StationStore implements MongoDB station storage
type StationStore struct {
	collection *mongo.Collection
}

func (s *StationStore) Create(ctx context.Context, station *domain.Station) error {
	station.CreatedAt = time.Now()
	station.UpdatedAt = time.Now()

	_, err := s.collection.InsertOne(ctx, station)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create station: %w", err)
	}
	return nil
}

func (s *StationStore) GetByID(ctx context.Context, id string) (*domain.Station, error) {
	var station domain.Station
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&station)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get station: %w", err)
	}
	return &station, nil
}

func (s *StationStore) GetBySlug(ctx context.Context, slug string) (*domain.Station, error) {
	var station domain.Station
	err := s.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&station)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get station: %w", err)
	}
	return &station, nil
}

func (s *StationStore) GetAll(ctx context.Context) ([]*domain.Station, error) {
	cursor, err := s.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to get stations: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var stations []*domain.Station
	if err := cursor.All(ctx, &stations); err != nil {
		return nil, fmt.Errorf("failed to decode stations: %w", err)
	}
	return stations, nil
}

func (s *StationStore) Update(ctx context.Context, station *domain.Station) error {
	station.UpdatedAt = time.Now()
	result, err := s.collection.ReplaceOne(ctx, bson.M{"_id": station.ID}, station)
	if err != nil {
		return fmt.Errorf("failed to update station: %w", err)
	}
	if result.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *StationStore) Delete(ctx context.Context, id string) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete station: %w", err)
	}
	if result.DeletedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}
