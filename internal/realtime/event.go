package realtime

import (
	"encoding/json"
	"time"

	"github.com/airwavefm/radio-backend/internal/domain"
)

// Event type tags. Every broadcast payload carries one of these in its
// "type" field so clients can dispatch without knowing the payload shape
// up front.
const (
	EventChatMessage       = "chat_message"
	EventSongUpload        = "song_upload"
	EventArtistSubmission  = "artist_submission"
	EventPlaylistUpdate    = "playlist_update"
	EventScheduleUpdate    = "schedule_update"
	EventLiveStreamStarted = "live_stream_started"
	EventLiveStreamStopped = "live_stream_stopped"
	EventDJControl         = "dj_control"
	EventStationCreated    = "station_created"
)

// ChatEvent is a chat message echoed to a room, enriched with the
// sender's resolved role and a server-assigned timestamp.
type ChatEvent struct {
	Type      string      `json:"type"`
	Room      string      `json:"room"`
	Message   string      `json:"message"`
	Username  string      `json:"username"`
	Role      domain.Role `json:"role"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewChatEvent builds a chat event stamped with the current server time.
func NewChatEvent(room, message, username string, role domain.Role) ChatEvent {
	return ChatEvent{
		Type:      EventChatMessage,
		Room:      room,
		Message:   message,
		Username:  username,
		Role:      role,
		Timestamp: time.Now().UTC(),
	}
}

// SongUploadEvent announces a new song submission to its station room.
type SongUploadEvent struct {
	Type      string       `json:"type"`
	StationID string       `json:"station_id"`
	Song      *domain.Song `json:"song"`
}

func NewSongUploadEvent(song *domain.Song) SongUploadEvent {
	return SongUploadEvent{
		Type:      EventSongUpload,
		StationID: song.StationID,
		Song:      song,
	}
}

// ArtistSubmissionEvent notifies privileged users of a new artist profile
// awaiting approval.
type ArtistSubmissionEvent struct {
	Type   string         `json:"type"`
	Artist *domain.Artist `json:"artist"`
}

func NewArtistSubmissionEvent(artist *domain.Artist) ArtistSubmissionEvent {
	return ArtistSubmissionEvent{
		Type:   EventArtistSubmission,
		Artist: artist,
	}
}

// PlaylistUpdateEvent announces a playlist mutation platform-wide.
type PlaylistUpdateEvent struct {
	Type       string `json:"type"`
	PlaylistID string `json:"playlist_id"`
	Action     string `json:"action"`
	SongID     string `json:"song_id,omitempty"`
}

func NewPlaylistUpdateEvent(playlistID, action, songID string) PlaylistUpdateEvent {
	return PlaylistUpdateEvent{
		Type:       EventPlaylistUpdate,
		PlaylistID: playlistID,
		Action:     action,
		SongID:     songID,
	}
}

// ScheduleUpdateEvent announces a new or changed show slot to its
// station room.
type ScheduleUpdateEvent struct {
	Type     string           `json:"type"`
	Schedule *domain.Schedule `json:"schedule"`
}

func NewScheduleUpdateEvent(schedule *domain.Schedule) ScheduleUpdateEvent {
	return ScheduleUpdateEvent{
		Type:     EventScheduleUpdate,
		Schedule: schedule,
	}
}

// LiveStreamEvent marks a DJ going on or off air on a station.
type LiveStreamEvent struct {
	Type        string    `json:"type"`
	DJID        string    `json:"dj_id"`
	DJName      string    `json:"dj_name"`
	StationID   string    `json:"station_id"`
	StationName string    `json:"station_name"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewLiveStreamStartedEvent(djID, djName string, station *domain.Station) LiveStreamEvent {
	return newLiveStreamEvent(EventLiveStreamStarted, djID, djName, station)
}

func NewLiveStreamStoppedEvent(djID, djName string, station *domain.Station) LiveStreamEvent {
	return newLiveStreamEvent(EventLiveStreamStopped, djID, djName, station)
}

func newLiveStreamEvent(tag, djID, djName string, station *domain.Station) LiveStreamEvent {
	ev := LiveStreamEvent{
		Type:      tag,
		DJID:      djID,
		DJName:    djName,
		Timestamp: time.Now().UTC(),
	}
	if station != nil {
		ev.StationID = station.ID
		ev.StationName = station.Name
	}
	return ev
}

// DJControlEvent relays an on-air control action (track skip, volume,
// source switch) from a privileged connection to its room.
type DJControlEvent struct {
	Type      string          `json:"type"`
	Action    string          `json:"action"`
	Data      json.RawMessage `json:"data,omitempty"`
	DJName    string          `json:"dj_name"`
	Timestamp time.Time       `json:"timestamp"`
}

func NewDJControlEvent(action string, data json.RawMessage, djName string) DJControlEvent {
	return DJControlEvent{
		Type:      EventDJControl,
		Action:    action,
		Data:      data,
		DJName:    djName,
		Timestamp: time.Now().UTC(),
	}
}

// StationCreatedEvent announces a new station platform-wide.
type StationCreatedEvent struct {
	Type    string          `json:"type"`
	Station *domain.Station `json:"station"`
}

func NewStationCreatedEvent(station *domain.Station) StationCreatedEvent {
	return StationCreatedEvent{
		Type:    EventStationCreated,
		Station: station,
	}
}

// InboundMessage is the envelope for client-to-server messages. The Type
// tag selects which fields are meaningful; unknown or undecodable
// messages are dropped without closing the connection.
type InboundMessage struct {
	Type     string          `json:"type"`
	Message  string          `json:"message,omitempty"`
	Username string          `json:"username,omitempty"`
	Action   string          `json:"action,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
}
