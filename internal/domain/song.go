package domain

import "time"

// SongSource identifies where a song's audio comes from.
type SongSource string

const (
	SourceUpload     SongSource = "upload"
	SourceSpotify    SongSource = "spotify"
	SourceSoundcloud SongSource = "soundcloud"
)

// Song is a track submitted to a station. Uploads start unapproved and
// become visible once an admin approves them.
type Song struct {
	ID          string     `json:"id" bson:"_id"`
	Title       string     `json:"title" bson:"title"`
	ArtistID    string     `json:"artist_id" bson:"artist_id"`
	ArtistName  string     `json:"artist_name" bson:"artist_name"`
	StationID   string     `json:"station_id" bson:"station_id"`
	Duration    int        `json:"duration,omitempty" bson:"duration,omitempty"` // seconds
	FilePath    string     `json:"file_path,omitempty" bson:"file_path,omitempty"`
	ExternalURL string     `json:"external_url,omitempty" bson:"external_url,omitempty"`
	Source      SongSource `json:"source" bson:"source"`
	Genre       string     `json:"genre,omitempty" bson:"genre,omitempty"`
	ArtworkURL  string     `json:"artwork_url,omitempty" bson:"artwork_url,omitempty"`
	Approved    bool       `json:"approved" bson:"approved"`
	SubmittedAt time.Time  `json:"submitted_at" bson:"submitted_at"`
}

// SongFilter narrows song listings.
type SongFilter struct {
	StationID    string
	Genre        string
	ApprovedOnly bool
}
