package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/airwavefm/radio-backend/internal/domain"
	"github.com/airwavefm/radio-backend/internal/storage"
)

// Store implements an in-memory storage
type Store struct {
	users     *UserStore
	stations  *StationStore
	artists   *ArtistStore
	songs     *SongStore
	playlists *PlaylistStore
	schedules *ScheduleStore
}

// NewStore creates a new in-memory store
func NewStore() *Store {
	return &Store{
		users:     &UserStore{data: make(map[string]*domain.User)},
		stations:  &StationStore{data: make(map[string]*domain.Station)},
		artists:   &ArtistStore{data: make(map[string]*domain.Artist)},
		songs:     &SongStore{data: make(map[string]*domain.Song)},
		playlists: &PlaylistStore{data: make(map[string]*domain.Playlist)},
		schedules: &ScheduleStore{data: make(map[string]*domain.Schedule)},
	}
}

func (s *Store) Users() storage.UserStore         { return s.users }
func (s *Store) Stations() storage.StationStore   { return s.stations }
func (s *Store) Artists() storage.ArtistStore     { return s.artists }
func (s *Store) Songs() storage.SongStore         { return s.songs }
func (s *Store) Playlists() storage.PlaylistStore { return s.playlists }
func (s *Store) Schedules() storage.ScheduleStore { return s.schedules }
func (s *Store) Close() error                     { return nil }
func (s *Store) Ping(ctx context.Context) error   { return nil }

// UserStore implements in-memory user storage
type UserStore struct {
	mu   sync.RWMutex
	data map[string]*domain.User
}

func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[user.ID]; exists {
		return storage.ErrAlreadyExists
	}
	for _, u := range s.data {
		if u.Username == user.Username || u.Email == user.Email {
			return storage.ErrAlreadyExists
		}
	}

	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	s.data[user.ID] = user
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.data[id]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return user, nil
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.data {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.data {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *UserStore) GetAll(ctx context.Context) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*domain.User, 0, len(s.data))
	for _, user := range s.data {
		users = append(users, user)
	}
	return users, nil
}

func (s *UserStore) Update(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[user.ID]; !exists {
		return storage.ErrNotFound
	}

	user.UpdatedAt = time.Now()
	s.data[user.ID] = user
	return nil
}

func (s *UserStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[id]; !exists {
		return storage.ErrNotFound
	}

	delete(s.data, id)
	return nil
}

// StationStore implements in-memory station storage
type StationStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Station
}

func (s *StationStore) Create(ctx context.Context, station *domain.Station) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[station.ID]; exists {
		return storage.ErrAlreadyExists
	}
	for _, st := range s.data {
		if st.Slug == station.Slug {
			return storage.ErrAlreadyExists
		}
	}

	station.CreatedAt = time.Now()
	station.UpdatedAt = time.Now()
	s.data[station.ID] = station
	return nil
}

func (s *StationStore) GetByID(ctx context.Context, id string) (*domain.Station, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	station, exists := s.data[id]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return station, nil
}

func (s *StationStore) GetBySlug(ctx context.Context, slug string) (*domain.Station, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, station := range s.data {
		if station.Slug == slug {
			return station, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *StationStore) GetAll(ctx context.Context) ([]*domain.Station, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stations := make([]*domain.Station, 0, len(s.data))
	for _, station := range s.data {
		stations = append(stations, station)
	}
	return stations, nil
}

func (s *StationStore) Update(ctx context.Context, station *domain.Station) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[station.ID]; !exists {
		return storage.ErrNotFound
	}

	station.UpdatedAt = time.Now()
	s.data[station.ID] = station
	return nil
}

func (s *StationStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[id]; !exists {
		return storage.ErrNotFound
	}

	delete(s.data, id)
	return nil
}

// ArtistStore implements in-memory artist storage
type ArtistStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Artist
}

func (s *ArtistStore) Create(ctx context.Context, artist *domain.Artist) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[artist.ID]; exists {
		return storage.ErrAlreadyExists
	}

	artist.CreatedAt = time.Now()
	s.data[artist.ID] = artist
	return nil
}

func (s *ArtistStore) GetByID(ctx context.Context, id string) (*domain.Artist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	artist, exists := s.data[id]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return artist, nil
}

func (s *ArtistStore) GetAll(ctx context.Context, approvedOnly bool) ([]*domain.Artist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	artists := make([]*domain.Artist, 0, len(s.data))
	for _, artist := range s.data {
		if approvedOnly && !artist.Approved {
			continue
		}
		artists = append(artists, artist)
	}
	return artists, nil
}

func (s *ArtistStore) Update(ctx context.Context, artist *domain.Artist) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[artist.ID]; !exists {
		return storage.ErrNotFound
	}

	s.data[artist.ID] = artist
	return nil
}

// SongStore implements in-memory song storage
type SongStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Song
}

func (s *SongStore) Create(ctx context.Context, song *domain.Song) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[song.ID]; exists {
		return storage.ErrAlreadyExists
	}

	song.SubmittedAt = time.Now()
	s.data[song.ID] = song
	return nil
}

func (s *SongStore) GetByID(ctx context.Context, id string) (*domain.Song, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	song, exists := s.data[id]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return song, nil
}

func (s *SongStore) GetByIDs(ctx context.Context, ids []string) ([]*domain.Song, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	songs := make([]*domain.Song, 0, len(ids))
	for _, id := range ids {
		if song, exists := s.data[id]; exists {
			songs = append(songs, song)
		}
	}
	return songs, nil
}

func (s *SongStore) Find(ctx context.Context, filter domain.SongFilter) ([]*domain.Song, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	songs := make([]*domain.Song, 0)
	for _, song := range s.data {
		if filter.ApprovedOnly && !song.Approved {
			continue
		}
		if filter.Genre != "" && song.Genre != filter.Genre {
			continue
		}
		if filter.StationID != "" && song.StationID != filter.StationID {
			continue
		}
		songs = append(songs, song)
	}
	return songs, nil
}

func (s *SongStore) Update(ctx context.Context, song *domain.Song) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[song.ID]; !exists {
		return storage.ErrNotFound
	}

	s.data[song.ID] = song
	return nil
}

func (s *SongStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[id]; !exists {
		return storage.ErrNotFound
	}

	delete(s.data, id)
	return nil
}

// PlaylistStore implements in-memory playlist storage
type PlaylistStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Playlist
}

func (s *PlaylistStore) Create(ctx context.Context, playlist *domain.Playlist) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[playlist.ID]; exists {
		return storage.ErrAlreadyExists
	}

	playlist.CreatedAt = time.Now()
	playlist.UpdatedAt = time.Now()
	s.data[playlist.ID] = playlist
	return nil
}

func (s *PlaylistStore) GetByID(ctx context.Context, id string) (*domain.Playlist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	playlist, exists := s.data[id]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return playlist, nil
}

func (s *PlaylistStore) GetAll(ctx context.Context) ([]*domain.Playlist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	playlists := make([]*domain.Playlist, 0, len(s.data))
	for _, playlist := range s.data {
		playlists = append(playlists, playlist)
	}
	return playlists, nil
}

func (s *PlaylistStore) AddSong(ctx context.Context, playlistID, songID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	playlist, exists := s.data[playlistID]
	if !exists {
		return storage.ErrNotFound
	}

	if !slices.Contains(playlist.Songs, songID) {
		playlist.Songs = append(playlist.Songs, songID)
	}
	playlist.UpdatedAt = time.Now()
	return nil
}

func (s *PlaylistStore) Update(ctx context.Context, playlist *domain.Playlist) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[playlist.ID]; !exists {
		return storage.ErrNotFound
	}

	playlist.UpdatedAt = time.Now()
	s.data[playlist.ID] = playlist
	return nil
}

// ScheduleStore implements in-memory schedule storage
type ScheduleStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Schedule
}

func (s *ScheduleStore) Create(ctx context.Context, schedule *domain.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[schedule.ID]; exists {
		return storage.ErrAlreadyExists
	}

	schedule.CreatedAt = time.Now()
	s.data[schedule.ID] = schedule
	return nil
}

func (s *ScheduleStore) GetByID(ctx context.Context, id string) (*domain.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	schedule, exists := s.data[id]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return schedule, nil
}

func (s *ScheduleStore) GetAll(ctx context.Context) ([]*domain.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	schedules := make([]*domain.Schedule, 0, len(s.data))
	for _, schedule := range s.data {
		schedules = append(schedules, schedule)
	}
	slices.SortFunc(schedules, func(a, b *domain.Schedule) int {
		return a.StartTime.Compare(b.StartTime)
	})
	return schedules, nil
}

func (s *ScheduleStore) FindCurrent(ctx context.Context, now time.Time) (*domain.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, schedule := range s.data {
		if !schedule.StartTime.After(now) && !schedule.EndTime.Before(now) {
			return schedule, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *ScheduleStore) GetByDJ(ctx context.Context, djID string) ([]*domain.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	schedules := make([]*domain.Schedule, 0)
	for _, schedule := range s.data {
		if schedule.DJID == djID {
			schedules = append(schedules, schedule)
		}
	}
	return schedules, nil
}

func (s *ScheduleStore) Update(ctx context.Context, schedule *domain.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[schedule.ID]; !exists {
		return storage.ErrNotFound
	}

	s.data[schedule.ID] = schedule
	return nil
}
