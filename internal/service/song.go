package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/airwavefm/radio-backend/internal/domain"
	"github.com/airwavefm/radio-backend/internal/realtime"
	"github.com/airwavefm/radio-backend/internal/storage"
	"github.com/airwavefm/radio-backend/pkg/config"
)

var (
	ErrFileTooLarge    = errors.New("file too large")
	ErrMissingStation  = errors.New("station not found")
	ErrMissingAudio    = errors.New("audio file or external url required")
	ErrInvalidDuration = errors.New("invalid duration")
)

// SongUpload carries a song submission. Exactly one of File and
// ExternalURL supplies the audio.
type SongUpload struct {
	Title       string
	ArtistID    string
	ArtistName  string
	StationID   string
	Genre       string
	Duration    int
	Source      domain.SongSource
	ExternalURL string
	File        *multipart.FileHeader
}

// SongService handles song submissions, listing and approval.
type SongService struct {
	store    storage.Store
	cfg      *config.Config
	notifier Notifier
	logger   *zap.Logger
}

// NewSongService creates a new SongService
func NewSongService(store storage.Store, cfg *config.Config, notifier Notifier, logger *zap.Logger) *SongService {
	return &SongService{
		store:    store,
		cfg:      cfg,
		notifier: notifier,
		logger:   logger.Named("song-service"),
	}
}

// Upload stores a song submission and announces it to the station room.
// Uploaded files land under the configured uploads directory with a
// uuid prefix so filenames never collide.
func (s *SongService) Upload(ctx context.Context, req *SongUpload) (*domain.Song, error) {
	station, err := s.store.Stations().GetByID(ctx, req.StationID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrMissingStation
		}
		return nil, fmt.Errorf("failed to get station: %w", err)
	}

	if req.Duration < 0 {
		return nil, ErrInvalidDuration
	}

	song := &domain.Song{
		ID:          uuid.New().String(),
		Title:       req.Title,
		ArtistID:    req.ArtistID,
		ArtistName:  req.ArtistName,
		StationID:   station.ID,
		Duration:    req.Duration,
		Genre:       req.Genre,
		Source:      req.Source,
		ExternalURL: req.ExternalURL,
		Approved:    false,
		SubmittedAt: time.Now(),
	}
	switch {
	case req.File != nil:
		path, err := s.saveFile(req.File, song.ID)
		if err != nil {
			return nil, err
		}
		song.FilePath = path
		if song.Source == "" {
			song.Source = domain.SourceUpload
		}
	case req.ExternalURL != "":
		// External sources carry no file.
		if song.Source == "" {
			song.Source = sourceFromURL(req.ExternalURL)
		}
	default:
		return nil, ErrMissingAudio
	}

	if err := s.store.Songs().Create(ctx, song); err != nil {
		if song.FilePath != "" {
			_ = os.Remove(song.FilePath)
		}
		return nil, fmt.Errorf("failed to create song: %w", err)
	}

	s.notifier.BroadcastToRoom(station.ID, realtime.NewSongUploadEvent(song))

	s.logger.Info("Song uploaded",
		zap.String("song_id", song.ID),
		zap.String("station_id", station.ID),
		zap.String("title", song.Title))

	return song, nil
}

// GetByID retrieves a song by ID
func (s *SongService) GetByID(ctx context.Context, id string) (*domain.Song, error) {
	return s.store.Songs().GetByID(ctx, id)
}

// Find retrieves songs matching the filter
func (s *SongService) Find(ctx context.Context, filter domain.SongFilter) ([]*domain.Song, error) {
	return s.store.Songs().Find(ctx, filter)
}

// Approve marks a song approved so it shows up in public listings.
func (s *SongService) Approve(ctx context.Context, id string) (*domain.Song, error) {
	song, err := s.store.Songs().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	song.Approved = true
	if err := s.store.Songs().Update(ctx, song); err != nil {
		return nil, fmt.Errorf("failed to approve song: %w", err)
	}

	s.logger.Info("Song approved", zap.String("song_id", id))
	return song, nil
}

// sourceFromURL guesses the source of an external submission from its
// host. Unknown hosts stay unlabeled rather than masquerading as
// uploads.
func sourceFromURL(externalURL string) domain.SongSource {
	u, err := url.Parse(externalURL)
	if err != nil {
		return ""
	}

	host := strings.ToLower(u.Hostname())
	switch {
	case strings.Contains(host, "spotify"):
		return domain.SourceSpotify
	case strings.Contains(host, "soundcloud"):
		return domain.SourceSoundcloud
	}
	return ""
}

func (s *SongService) saveFile(header *multipart.FileHeader, songID string) (string, error) {
	maxBytes := int64(s.cfg.Uploads.MaxSizeMB) << 20
	if maxBytes > 0 && header.Size > maxBytes {
		return "", ErrFileTooLarge
	}

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer func() { _ = src.Close() }()

	if err := os.MkdirAll(s.cfg.Uploads.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create uploads dir: %w", err)
	}

	name := songID + "_" + filepath.Base(header.Filename)
	path := filepath.Join(s.cfg.Uploads.Dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return path, nil
}
