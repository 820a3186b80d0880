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

// SongStore implements MongoDB song storage
type SongStore struct {
	collection *mongo.Collection
}

func (s *SongStore) Create(ctx context.Context, song *domain.Song) error {
	song.SubmittedAt = time.Now()

	_, err := s.collection.InsertOne(ctx, song)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create song: %w", err)
	}
	return nil
}

func (s *SongStore) GetByID(ctx context.Context, id string) (*domain.Song, error) {
	var song domain.Song
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&song)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get song: %w", err)
	}
	return &song, nil
}

func (s *SongStore) GetByIDs(ctx context.Context, ids []string) ([]*domain.Song, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to get songs: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var songs []*domain.Song
	if err := cursor.All(ctx, &songs); err != nil {
		return nil, fmt.Errorf("failed to decode songs: %w", err)
	}
	return songs, nil
}

func (s *SongStore) Find(ctx context.Context, filter domain.SongFilter) ([]*domain.Song, error) {
	query := bson.M{}
	if filter.ApprovedOnly {
		query["approved"] = true
	}
	if filter.Genre != "" {
		query["genre"] = filter.Genre
	}
	if filter.StationID != "" {
		query["station_id"] = filter.StationID
	}

	cursor, err := s.collection.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to find songs: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var songs []*domain.Song
	if err := cursor.All(ctx, &songs); err != nil {
		return nil, fmt.Errorf("failed to decode songs: %w", err)
	}
	return songs, nil
}

func (s *SongStore) Update(ctx context.Context, song *domain.Song) error {
	result, err := s.collection.ReplaceOne(ctx, bson.M{"_id": song.ID}, song)
	if err != nil {
		return fmt.Errorf("failed to update song: %w", err)
	}
	if result.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *SongStore) Delete(ctx context.Context, id string) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}
	if result.DeletedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}
