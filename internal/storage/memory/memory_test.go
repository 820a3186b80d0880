package memory

import (
	"context"
	"testing"
	"time"

	"github.com/airwavefm/radio-backend/internal/domain"
	"github.com/airwavefm/radio-backend/internal/storage"
)

func TestNewStore(t *testing.T) {
	store := NewStore()

	if store == nil {
		t.Fatal("NewStore() returned nil")
	}

	if store.users == nil {
		t.Error("NewStore() users store not initialized")
	}

	if store.stations == nil {
		t.Error("NewStore() stations store not initialized")
	}

	if store.songs == nil {
		t.Error("NewStore() songs store not initialized")
	}
}

func TestStore_Ping(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	if err := store.Ping(ctx); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

// User Store Tests

func TestUserStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	user := &domain.User{
		ID:       domain.NewUserID(),
		Username: "alice",
		Email:    "alice@example.com",
		Role:     domain.RoleDJ,
	}

	if err := store.Users().Create(ctx, user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := store.Users().GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Username != "alice" {
		t.Errorf("GetByID() username = %q, want alice", got.Username)
	}

	got, err = store.Users().GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetByUsername() error = %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("GetByUsername() id = %q, want %q", got.ID, user.ID)
	}

	got, err = store.Users().GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("GetByEmail() id = %q, want %q", got.ID, user.ID)
	}
}

func TestUserStore_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	first := &domain.User{ID: domain.NewUserID(), Username: "bob", Email: "bob@example.com"}
	if err := store.Users().Create(ctx, first); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	dup := &domain.User{ID: domain.NewUserID(), Username: "bob", Email: "other@example.com"}
	if err := store.Users().Create(ctx, dup); err != storage.ErrAlreadyExists {
		t.Errorf("Create() duplicate username error = %v, want ErrAlreadyExists", err)
	}

	dup = &domain.User{ID: domain.NewUserID(), Username: "other", Email: "bob@example.com"}
	if err := store.Users().Create(ctx, dup); err != storage.ErrAlreadyExists {
		t.Errorf("Create() duplicate email error = %v, want ErrAlreadyExists", err)
	}
}

func TestUserStore_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	_, err := store.Users().GetByID(ctx, "missing")
	if err != storage.ErrNotFound {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

// Station Store Tests

func TestStationStore_SlugUnique(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	station := &domain.Station{ID: domain.NewUserID(), Name: "Jazz FM", Slug: "jazz-fm"}
	if err := store.Stations().Create(ctx, station); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	dup := &domain.Station{ID: domain.NewUserID(), Name: "Jazz FM 2", Slug: "jazz-fm"}
	if err := store.Stations().Create(ctx, dup); err != storage.ErrAlreadyExists {
		t.Errorf("Create() duplicate slug error = %v, want ErrAlreadyExists", err)
	}

	got, err := store.Stations().GetBySlug(ctx, "jazz-fm")
	if err != nil {
		t.Fatalf("GetBySlug() error = %v", err)
	}
	if got.ID != station.ID {
		t.Errorf("GetBySlug() id = %q, want %q", got.ID, station.ID)
	}
}

// Song Store Tests

func TestSongStore_Find(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	songs := []*domain.Song{
		{ID: "1", Title: "a", StationID: "st1", Genre: "jazz", Approved: true},
		{ID: "2", Title: "b", StationID: "st1", Genre: "rock", Approved: false},
		{ID: "3", Title: "c", StationID: "st2", Genre: "jazz", Approved: true},
	}
	for _, song := range songs {
		if err := store.Songs().Create(ctx, song); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	got, err := store.Songs().Find(ctx, domain.SongFilter{ApprovedOnly: true})
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Find(approved) returned %d songs, want 2", len(got))
	}

	got, err = store.Songs().Find(ctx, domain.SongFilter{Genre: "jazz", StationID: "st1"})
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("Find(jazz, st1) = %v, want song 1", got)
	}
}

func TestSongStore_GetByIDs(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	for _, id := range []string{"1", "2"} {
		if err := store.Songs().Create(ctx, &domain.Song{ID: id}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	got, err := store.Songs().GetByIDs(ctx, []string{"2", "missing", "1"})
	if err != nil {
		t.Fatalf("GetByIDs() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("GetByIDs() returned %d songs, want 2", len(got))
	}
}

// Playlist Store Tests

func TestPlaylistStore_AddSong(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	playlist := &domain.Playlist{ID: "pl1", Name: "mix", Songs: []string{}}
	if err := store.Playlists().Create(ctx, playlist); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := store.Playlists().AddSong(ctx, "pl1", "song-1"); err != nil {
		t.Fatalf("AddSong() error = %v", err)
	}
	// Adding twice must not duplicate
	if err := store.Playlists().AddSong(ctx, "pl1", "song-1"); err != nil {
		t.Fatalf("AddSong() error = %v", err)
	}

	got, err := store.Playlists().GetByID(ctx, "pl1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if len(got.Songs) != 1 {
		t.Errorf("playlist has %d songs, want 1", len(got.Songs))
	}

	if err := store.Playlists().AddSong(ctx, "missing", "song-1"); err != storage.ErrNotFound {
		t.Errorf("AddSong(missing) error = %v, want ErrNotFound", err)
	}
}

// Schedule Store Tests

func TestScheduleStore_FindCurrent(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	now := time.Now()
	entries := []*domain.Schedule{
		{ID: "past", StartTime: now.Add(-2 * time.Hour), EndTime: now.Add(-time.Hour)},
		{ID: "live", StartTime: now.Add(-time.Hour), EndTime: now.Add(time.Hour)},
		{ID: "future", StartTime: now.Add(time.Hour), EndTime: now.Add(2 * time.Hour)},
	}
	for _, e := range entries {
		if err := store.Schedules().Create(ctx, e); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	got, err := store.Schedules().FindCurrent(ctx, now)
	if err != nil {
		t.Fatalf("FindCurrent() error = %v", err)
	}
	if got.ID != "live" {
		t.Errorf("FindCurrent() = %q, want live", got.ID)
	}
}

func TestScheduleStore_GetAll_Sorted(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	now := time.Now()
	if err := store.Schedules().Create(ctx, &domain.Schedule{ID: "b", StartTime: now.Add(time.Hour)}); err != nil {
		t.Fatal(err)
	}
	if err := store.Schedules().Create(ctx, &domain.Schedule{ID: "a", StartTime: now}); err != nil {
		t.Fatal(err)
	}

	got, err := store.Schedules().GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("GetAll() not sorted by start time: %v", got)
	}
}
