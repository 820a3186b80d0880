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
)

var (
	ErrInvalidSlot = errors.New("end time must be after start time")
	ErrNotLive     = errors.New("dj is not live")
)

// ScheduleService manages show slots and live status.
type ScheduleService struct {
	store    storage.Store
	notifier Notifier
	logger   *zap.Logger
}

// NewScheduleService creates a new ScheduleService
func NewScheduleService(store storage.Store, notifier Notifier, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{
		store:    store,
		notifier: notifier,
		logger:   logger.Named("schedule-service"),
	}
}

// Create schedules a show and announces it to the station room.
func (s *ScheduleService) Create(ctx context.Context, req *domain.ScheduleCreate) (*domain.Schedule, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrInvalidSlot
	}

	if _, err := s.store.Stations().GetByID(ctx, req.StationID); err != nil {
		return nil, err
	}

	schedule := &domain.Schedule{
		ID:          uuid.New().String(),
		Title:       req.Title,
		DJID:        req.DJID,
		DJName:      req.DJName,
		StationID:   req.StationID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		PlaylistID:  req.PlaylistID,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}

	if err := s.store.Schedules().Create(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}

	s.notifier.BroadcastToRoom(schedule.StationID, realtime.NewScheduleUpdateEvent(schedule))

	s.logger.Info("Show scheduled",
		zap.String("schedule_id", schedule.ID),
		zap.String("station_id", schedule.StationID),
		zap.String("dj_id", schedule.DJID))

	return schedule, nil
}

// GetAll retrieves all schedule entries ordered by start time
func (s *ScheduleService) GetAll(ctx context.Context) ([]*domain.Schedule, error) {
	return s.store.Schedules().GetAll(ctx)
}

// Current retrieves the show on air right now, if any.
func (s *ScheduleService) Current(ctx context.Context) (*domain.Schedule, error) {
	return s.store.Schedules().FindCurrent(ctx, time.Now())
}

// GetByDJ retrieves all schedule entries for a DJ
func (s *ScheduleService) GetByDJ(ctx context.Context, djID string) ([]*domain.Schedule, error) {
	return s.store.Schedules().GetByDJ(ctx, djID)
}

// StartLive marks the DJ's current slot live and announces it to the
// station room. The slot whose window covers now is used; without one
// the DJ's next upcoming slot today cannot go live.
func (s *ScheduleService) StartLive(ctx context.Context, djID string) (*domain.Schedule, error) {
	schedule, err := s.liveSlot(ctx, djID)
	if err != nil {
		return nil, err
	}

	schedule.IsLive = true
	if err := s.store.Schedules().Update(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to update schedule: %w", err)
	}

	station, _ := s.store.Stations().GetByID(ctx, schedule.StationID)
	s.notifier.BroadcastToRoom(schedule.StationID,
		realtime.NewLiveStreamStartedEvent(schedule.DJID, schedule.DJName, station))

	s.logger.Info("Live stream started",
		zap.String("dj_id", djID),
		zap.String("station_id", schedule.StationID))

	return schedule, nil
}

// StopLive clears the DJ's live flag and announces it.
func (s *ScheduleService) StopLive(ctx context.Context, djID string) (*domain.Schedule, error) {
	schedules, err := s.store.Schedules().GetByDJ(ctx, djID)
	if err != nil {
		return nil, err
	}

	var live *domain.Schedule
	for _, schedule := range schedules {
		if schedule.IsLive {
			live = schedule
			break
		}
	}
	if live == nil {
		return nil, ErrNotLive
	}

	live.IsLive = false
	if err := s.store.Schedules().Update(ctx, live); err != nil {
		return nil, fmt.Errorf("failed to update schedule: %w", err)
	}

	station, _ := s.store.Stations().GetByID(ctx, live.StationID)
	s.notifier.BroadcastToRoom(live.StationID,
		realtime.NewLiveStreamStoppedEvent(live.DJID, live.DJName, station))

	s.logger.Info("Live stream stopped",
		zap.String("dj_id", djID),
		zap.String("station_id", live.StationID))

	return live, nil
}

func (s *ScheduleService) liveSlot(ctx context.Context, djID string) (*domain.Schedule, error) {
	now := time.Now()
	schedules, err := s.store.Schedules().GetByDJ(ctx, djID)
	if err != nil {
		return nil, err
	}

	for _, schedule := range schedules {
		if !schedule.StartTime.After(now) && schedule.EndTime.After(now) {
			return schedule, nil
		}
	}
	return nil, storage.ErrNotFound
}
