package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airwavefm/radio-backend/internal/domain"
	"github.com/airwavefm/radio-backend/internal/realtime"
)

func TestArtistService_SubmitNotifiesPrivileged(t *testing.T) {
	svcs, notifier := newTestServices(t)

	artist, err := svcs.Artist.Submit(context.Background(), &domain.ArtistSubmission{
		Name:  "Neon Tide",
		Email: "neon@example.com",
		Bio:   "synthwave duo",
	})
	require.NoError(t, err)
	assert.False(t, artist.Approved)

	events := notifier.recorded()
	require.Len(t, events, 1)
	assert.Equal(t, "privileged", events[0].Target)

	ev, ok := events[0].Event.(realtime.ArtistSubmissionEvent)
	require.True(t, ok)
	assert.Equal(t, artist.ID, ev.Artist.ID)
}

func TestArtistService_ApprovedFiltering(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	first, err := svcs.Artist.Submit(ctx, &domain.ArtistSubmission{Name: "Neon Tide", Email: "a@example.com"})
	require.NoError(t, err)
	_, err = svcs.Artist.Submit(ctx, &domain.ArtistSubmission{Name: "Static Bloom", Email: "b@example.com"})
	require.NoError(t, err)

	approved, err := svcs.Artist.GetAll(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, approved)

	_, err = svcs.Artist.Approve(ctx, first.ID)
	require.NoError(t, err)

	approved, err = svcs.Artist.GetAll(ctx, true)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, first.ID, approved[0].ID)

	all, err := svcs.Artist.GetAll(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestArtistService_ApproveUnknown(t *testing.T) {
	svcs, _ := newTestServices(t)

	_, err := svcs.Artist.Approve(context.Background(), "no-such-artist")
	assert.Error(t, err)
}
