package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/airwavefm/radio-backend/internal/domain"
	"github.com/airwavefm/radio-backend/internal/realtime"
	"github.com/airwavefm/radio-backend/internal/storage"
)

// PlaylistService manages playlists. Mutations are announced
// platform-wide so any open client can refresh its view.
type PlaylistService struct {
	store    storage.Store
	notifier Notifier
	logger   *zap.Logger
}

// NewPlaylistService creates a new PlaylistService
func NewPlaylistService(store storage.Store, notifier Notifier, logger *zap.Logger) *PlaylistService {
	return &PlaylistService{
		store:    store,
		notifier: notifier,
		logger:   logger.Named("playlist-service"),
	}
}

// Create creates a playlist owned by the given user.
func (s *PlaylistService) Create(ctx context.Context, createdBy string, req *domain.PlaylistCreate) (*domain.Playlist, error) {
	playlist := &domain.Playlist{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   createdBy,
		Songs:       []string{},
		IsPublic:    req.IsPublic,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.store.Playlists().Create(ctx, playlist); err != nil {
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}

	s.notifier.BroadcastToPlatform(realtime.NewPlaylistUpdateEvent(playlist.ID, "created", ""))

	s.logger.Info("Playlist created",
		zap.String("playlist_id", playlist.ID),
		zap.String("created_by", createdBy))

	return playlist, nil
}

// GetByID retrieves a playlist by ID
func (s *PlaylistService) GetByID(ctx context.Context, id string) (*domain.Playlist, error) {
	return s.store.Playlists().GetByID(ctx, id)
}

// GetAll retrieves all playlists
func (s *PlaylistService) GetAll(ctx context.Context) ([]*domain.Playlist, error) {
	return s.store.Playlists().GetAll(ctx)
}

// GetWithSongs retrieves a playlist expanded with full song records.
func (s *PlaylistService) GetWithSongs(ctx context.Context, id string) (*domain.PlaylistWithSongs, error) {
	playlist, err := s.store.Playlists().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	songs, err := s.store.Songs().GetByIDs(ctx, playlist.Songs)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist songs: %w", err)
	}

	return &domain.PlaylistWithSongs{Playlist: *playlist, SongDetails: songs}, nil
}

// AddSong appends a song to a playlist. Both ids must exist; adding a
// song that is already present is a no-op but still announced.
func (s *PlaylistService) AddSong(ctx context.Context, playlistID, songID string) error {
	if _, err := s.store.Songs().GetByID(ctx, songID); err != nil {
		return err
	}

	if err := s.store.Playlists().AddSong(ctx, playlistID, songID); err != nil {
		return err
	}

	s.notifier.BroadcastToPlatform(realtime.NewPlaylistUpdateEvent(playlistID, "song_added", songID))

	s.logger.Info("Song added to playlist",
		zap.String("playlist_id", playlistID),
		zap.String("song_id", songID))

	return nil
}
