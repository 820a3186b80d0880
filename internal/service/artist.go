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

// ArtistService handles artist profile submissions and approval.
type ArtistService struct {
	store    storage.Store
	notifier Notifier
	logger   *zap.Logger
}

// NewArtistService creates a new ArtistService
func NewArtistService(store storage.Store, notifier Notifier, logger *zap.Logger) *ArtistService {
	return &ArtistService{
		store:    store,
		notifier: notifier,
		logger:   logger.Named("artist-service"),
	}
}

// Submit stores a new artist profile, unapproved, and notifies online
// djs and admins so someone can review it.
func (s *ArtistService) Submit(ctx context.Context, req *domain.ArtistSubmission) (*domain.Artist, error) {
	artist := &domain.Artist{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Bio:         req.Bio,
		Email:       req.Email,
		SocialLinks: req.SocialLinks,
		Approved:    false,
		CreatedAt:   time.Now(),
	}

	if err := s.store.Artists().Create(ctx, artist); err != nil {
		return nil, fmt.Errorf("failed to create artist: %w", err)
	}

	s.notifier.BroadcastToPrivileged(realtime.NewArtistSubmissionEvent(artist))

	s.logger.Info("Artist submitted",
		zap.String("artist_id", artist.ID),
		zap.String("name", artist.Name))

	return artist, nil
}

// GetByID retrieves an artist by ID
func (s *ArtistService) GetByID(ctx context.Context, id string) (*domain.Artist, error) {
	return s.store.Artists().GetByID(ctx, id)
}

// GetAll retrieves artists. Unprivileged callers only see approved ones.
func (s *ArtistService) GetAll(ctx context.Context, approvedOnly bool) ([]*domain.Artist, error) {
	return s.store.Artists().GetAll(ctx, approvedOnly)
}

// Approve marks an artist profile approved.
func (s *ArtistService) Approve(ctx context.Context, id string) (*domain.Artist, error) {
	artist, err := s.store.Artists().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	artist.Approved = true
	if err := s.store.Artists().Update(ctx, artist); err != nil {
		return nil, fmt.Errorf("failed to approve artist: %w", err)
	}

	s.logger.Info("Artist approved", zap.String("artist_id", id))
	return artist, nil
}
