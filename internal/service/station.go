package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/airwavefm/radio-backend/internal/domain"
	"github.com/airwavefm/radio-backend/internal/realtime"
	"github.com/airwavefm/radio-backend/internal/storage"
	"github.com/airwavefm/radio-backend/pkg/slug"
)

var ErrStationExists = errors.New("station already exists")

// StationService manages stations and maps room handles onto station
// rooms for the realtime layer.
type StationService struct {
	store    storage.Store
	notifier Notifier
	logger   *zap.Logger
}

// NewStationService creates a new StationService
func NewStationService(store storage.Store, notifier Notifier, logger *zap.Logger) *StationService {
	return &StationService{
		store:    store,
		notifier: notifier,
		logger:   logger.Named("station-service"),
	}
}

// Create creates a station owned by the given user and announces it
// platform-wide.
func (s *StationService) Create(ctx context.Context, ownerID string, req *domain.StationCreate) (*domain.Station, error) {
	station := &domain.Station{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Slug:        slug.Make(req.Name),
		Description: req.Description,
		Genre:       req.Genre,
		OwnerID:     ownerID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.store.Stations().Create(ctx, station); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, ErrStationExists
		}
		return nil, fmt.Errorf("failed to create station: %w", err)
	}

	s.notifier.BroadcastToPlatform(realtime.NewStationCreatedEvent(station))

	s.logger.Info("Station created",
		zap.String("station_id", station.ID),
		zap.String("slug", station.Slug),
		zap.String("owner_id", ownerID))

	return station, nil
}

// GetByID retrieves a station by ID
func (s *StationService) GetByID(ctx context.Context, id string) (*domain.Station, error) {
	return s.store.Stations().GetByID(ctx, id)
}

// GetBySlug retrieves a station by its slug
func (s *StationService) GetBySlug(ctx context.Context, stationSlug string) (*domain.Station, error) {
	return s.store.Stations().GetBySlug(ctx, stationSlug)
}

// GetAll retrieves all stations
func (s *StationService) GetAll(ctx context.Context) ([]*domain.Station, error) {
	return s.store.Stations().GetAll(ctx)
}

// ResolveRoom maps a requested room handle to the canonical room key.
// Station slugs and raw station ids resolve to the station's room;
// anything unknown, including the literal "platform", resolves to the
// platform room so a bad handle never refuses a connection.
func (s *StationService) ResolveRoom(ctx context.Context, requested string) string {
	if requested == "" || requested == domain.PlatformRoom {
		return domain.PlatformRoom
	}

	if station, err := s.store.Stations().GetBySlug(ctx, requested); err == nil {
		return station.ID
	}
	if station, err := s.store.Stations().GetByID(ctx, requested); err == nil {
		return station.ID
	}

	s.logger.Debug("unknown room requested, using platform", zap.String("requested", requested))
	return domain.PlatformRoom
}
