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

// ArtistStore implements MongoDB artist storage
type ArtistStore struct {
	collection *mongo.Collection
}

func (s *ArtistStore) Create(ctx context.Context, artist *domain.Artist) error {
	artist.CreatedAt = time.Now()

	_, err := s.collection.InsertOne(ctx, artist)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create artist: %w", err)
	}
	return nil
}

func (s *ArtistStore) GetByID(ctx context.Context, id string) (*domain.Artist, error) {
	var artist domain.Artist
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&artist)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get artist: %w", err)
	}
	return &artist, nil
}

func (s *ArtistStore) GetAll(ctx context.Context, approvedOnly bool) ([]*domain.Artist, error) {
	query := bson.M{}
	if approvedOnly {
		query["approved"] = true
	}

	cursor, err := s.collection.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get artists: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var artists []*domain.Artist
	if err := cursor.All(ctx, &artists); err != nil {
		return nil, fmt.Errorf("failed to decode artists: %w", err)
	}
	return artists, nil
}

func (s *ArtistStore) Update(ctx context.Context, artist *domain.Artist) error {
	result, err := s.collection.ReplaceOne(ctx, bson.M{"_id": artist.ID}, artist)
	if err != nil {
		return fmt.Errorf("failed to update artist: %w", err)
	}
	if result.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}
