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

// PlaylistStore implements MongoDB playlist storage
type PlaylistStore struct {
	collection *mongo.Collection
}

func (s *PlaylistStore) Create(ctx context.Context, playlist *domain.Playlist) error {
	playlist.CreatedAt = time.Now()
	playlist.UpdatedAt = time.Now()
	if playlist.Songs == nil {
		playlist.Songs = []string{}
	}

	_, err := s.collection.InsertOne(ctx, playlist)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create playlist: %w", err)
	}
	return nil
}

func (s *PlaylistStore) GetByID(ctx context.Context, id string) (*domain.Playlist, error) {
	var playlist domain.Playlist
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&playlist)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get playlist: %w", err)
	}
	return &playlist, nil
}

func (s *PlaylistStore) GetAll(ctx context.Context) ([]*domain.Playlist, error) {
	cursor, err := s.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to get playlists: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var playlists []*domain.Playlist
	if err := cursor.All(ctx, &playlists); err != nil {
		return nil, fmt.Errorf("failed to decode playlists: %w", err)
	}
	return playlists, nil
}

func (s *PlaylistStore) AddSong(ctx context.Context, playlistID, songID string) error {
	result, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": playlistID},
		bson.M{
			"$addToSet": bson.M{"songs": songID},
			"$set":      bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to add song to playlist: %w", err)
	}
	if result.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *PlaylistStore) Update(ctx context.Context, playlist *domain.Playlist) error {
	playlist.UpdatedAt = time.Now()
	result, err := s.collection.ReplaceOne(ctx, bson.M{"_id": playlist.ID}, playlist)
	if err != nil {
		return fmt.Errorf("failed to update playlist: %w", err)
	}
	if result.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}
