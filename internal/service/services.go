package service

import (
	"go.uber.org/zap"

	"github.com/airwavefm/radio-backend/internal/storage"
	"github.com/airwavefm/radio-backend/pkg/config"
)

// Notifier fans domain events out to live connections. Satisfied by
// realtime.Broadcaster; tests substitute a recorder.
type Notifier interface {
	BroadcastToRoom(room string, event any)
	BroadcastToPlatform(event any)
	BroadcastToPrivileged(event any)
}

// Services aggregates all application services
type Services struct {
	User     *UserService
	Station  *StationService
	Artist   *ArtistService
	Song     *SongService
	Playlist *PlaylistService
	Schedule *ScheduleService
}

// NewServices creates a new Services instance
func NewServices(store storage.Store, cfg *config.Config, notifier Notifier, logger *zap.Logger) *Services {
	return &Services{
		User:     NewUserService(store, cfg, logger),
		Station:  NewStationService(store, notifier, logger),
		Artist:   NewArtistService(store, notifier, logger),
		Song:     NewSongService(store, cfg, notifier, logger),
		Playlist: NewPlaylistService(store, notifier, logger),
		Schedule: NewScheduleService(store, notifier, logger),
	}
}
