package domain

import "time"

// Playlist is an ordered collection of song ids.
type Playlist struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	CreatedBy   string    `json:"created_by" bson:"created_by"`
	Songs       []string  `json:"songs" bson:"songs"`
	IsPublic    bool      `json:"is_public" bson:"is_public"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// PlaylistCreate represents a playlist creation request
type PlaylistCreate struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
}

// PlaylistWithSongs is a playlist expanded with full song records.
type PlaylistWithSongs struct {
	Playlist
	SongDetails []*Song `json:"songs_details"`
}
