package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airwavefm/radio-backend/internal/domain"
	"github.com/airwavefm/radio-backend/internal/realtime"
	"github.com/airwavefm/radio-backend/internal/storage"
)

func TestPlaylistService_AddSongAnnouncesPlatformWide(t *testing.T) {
	svcs, notifier := newTestServices(t)
	ctx := context.Background()
	owner := mustRegister(t, svcs, "owner", domain.RoleAdmin)
	station := mustCreateStation(t, svcs, owner.ID, "Night Drive FM")

	playlist, err := svcs.Playlist.Create(ctx, owner.ID, &domain.PlaylistCreate{
		Name:     "Late Night",
		IsPublic: true,
	})
	require.NoError(t, err)

	song, err := svcs.Song.Upload(ctx, &SongUpload{
		Title:       "Midnight",
		StationID:   station.ID,
		Source:      domain.SourceSpotify,
		ExternalURL: "https://open.spotify.com/track/abc",
	})
	require.NoError(t, err)
	notifier.events = nil

	require.NoError(t, svcs.Playlist.AddSong(ctx, playlist.ID, song.ID))

	events := notifier.recorded()
	require.Len(t, events, 1)
	assert.Equal(t, domain.PlatformRoom, events[0].Target)

	ev, ok := events[0].Event.(realtime.PlaylistUpdateEvent)
	require.True(t, ok)
	assert.Equal(t, playlist.ID, ev.PlaylistID)
	assert.Equal(t, "song_added", ev.Action)
	assert.Equal(t, song.ID, ev.SongID)
}

func TestPlaylistService_AddUnknownSong(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()
	owner := mustRegister(t, svcs, "owner", domain.RoleAdmin)

	playlist, err := svcs.Playlist.Create(ctx, owner.ID, &domain.PlaylistCreate{Name: "Empty"})
	require.NoError(t, err)

	err = svcs.Playlist.AddSong(ctx, playlist.ID, "no-such-song")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPlaylistService_GetWithSongs(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()
	owner := mustRegister(t, svcs, "owner", domain.RoleAdmin)
	station := mustCreateStation(t, svcs, owner.ID, "Night Drive FM")

	playlist, err := svcs.Playlist.Create(ctx, owner.ID, &domain.PlaylistCreate{Name: "Late Night"})
	require.NoError(t, err)

	song, err := svcs.Song.Upload(ctx, &SongUpload{
		Title:       "Midnight",
		StationID:   station.ID,
		Source:      domain.SourceSpotify,
		ExternalURL: "https://open.spotify.com/track/abc",
	})
	require.NoError(t, err)

	require.NoError(t, svcs.Playlist.AddSong(ctx, playlist.ID, song.ID))

	expanded, err := svcs.Playlist.GetWithSongs(ctx, playlist.ID)
	require.NoError(t, err)
	require.Len(t, expanded.SongDetails, 1)
	assert.Equal(t, "Midnight", expanded.SongDetails[0].Title)
}
