package storage

import (
	"context"
	"errors"
	"time"

	"github.com/airwavefm/radio-backend/internal/domain"
)

// Common errors
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidInput  = errors.New("invalid input")
)

// UserStore defines the interface for user storage operations
type UserStore interface {
	// Create creates a new user
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetAll retrieves all users
	GetAll(ctx context.Context) ([]*domain.User, error)

	// Update updates a user
	Update(ctx context.Context, user *domain.User) error

	// Delete deletes a user
	Delete(ctx context.Context, id string) error
}

// StationStore defines the interface for station storage operations
type StationStore interface {
	// Create creates a new station
	Create(ctx context.Context, station *domain.Station) error

	// GetByID retrieves a station by ID
	GetByID(ctx context.Context, id string) (*domain.Station, error)

	// GetBySlug retrieves a station by its slug
	GetBySlug(ctx context.Context, slug string) (*domain.Station, error)

	// GetAll retrieves all stations
	GetAll(ctx context.Context) ([]*domain.Station, error)

	// Update updates a station
	Update(ctx context.Context, station *domain.Station) error

	// Delete deletes a station
	Delete(ctx context.Context, id string) error
}

// ArtistStore defines the interface for artist profile storage
type ArtistStore interface {
	// Create creates a new artist profile
	Create(ctx context.Context, artist *domain.Artist) error

	// GetByID retrieves an artist by ID
	GetByID(ctx context.Context, id string) (*domain.Artist, error)

	// GetAll retrieves artists, optionally only approved ones
	GetAll(ctx context.Context, approvedOnly bool) ([]*domain.Artist, error)

	// Update updates an artist
	Update(ctx context.Context, artist *domain.Artist) error
}

// SongStore defines the interface for song storage operations
type SongStore interface {
	// Create creates a new song
	Create(ctx context.Context, song *domain.Song) error

	// GetByID retrieves a song by ID
	GetByID(ctx context.Context, id string) (*domain.Song, error)

	// GetByIDs retrieves the songs whose ids appear in ids, in store order
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Song, error)

	// Find retrieves songs matching the filter
	Find(ctx context.Context, filter domain.SongFilter) ([]*domain.Song, error)

	// Update updates a song
	Update(ctx context.Context, song *domain.Song) error

	// Delete deletes a song
	Delete(ctx context.Context, id string) error
}

// PlaylistStore defines the interface for playlist storage operations
type PlaylistStore interface {
	// Create creates a new playlist
	Create(ctx context.Context, playlist *domain.Playlist) error

	// GetByID retrieves a playlist by ID
	GetByID(ctx context.Context, id string) (*domain.Playlist, error)

	// GetAll retrieves all playlists
	GetAll(ctx context.Context) ([]*domain.Playlist, error)

	// AddSong appends a song id to the playlist if not already present
	AddSong(ctx context.Context, playlistID, songID string) error

	// Update updates a playlist
	Update(ctx context.Context, playlist *domain.Playlist) error
}

// ScheduleStore defines the interface for show schedule storage
type ScheduleStore interface {
	// Create creates a new schedule entry
	Create(ctx context.Context, schedule *domain.Schedule) error

	// GetByID retrieves a schedule entry by ID
	GetByID(ctx context.Context, id string) (*domain.Schedule, error)

	// GetAll retrieves all schedule entries ordered by start time
	GetAll(ctx context.Context) ([]*domain.Schedule, error)

	// FindCurrent retrieves the entry whose slot covers the given instant
	FindCurrent(ctx context.Context, now time.Time) (*domain.Schedule, error)

	// GetByDJ retrieves all schedule entries for a DJ
	GetByDJ(ctx context.Context, djID string) ([]*domain.Schedule, error)

	// Update updates a schedule entry
	Update(ctx context.Context, schedule *domain.Schedule) error
}

// Store aggregates all storage interfaces
type Store interface {
	Users() UserStore
	Stations() StationStore
	Artists() ArtistStore
	Songs() SongStore
	Playlists() PlaylistStore
	Schedules() ScheduleStore

	// Close closes the storage connection
	Close() error

	// Ping checks if the storage is alive
	Ping(ctx context.Context) error
}
