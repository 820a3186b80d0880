package domain

import "time"

// PlatformRoom is the sentinel room id for platform-wide broadcasts.
// It is not a station; the room exists implicitly whenever someone is
// attached to it.
const PlatformRoom = "platform"

// Station is a named channel on the platform. Its ID keys the realtime
// room for station-scoped events; its Slug is the human-readable handle
// clients attach with.
type Station struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Slug        string    `json:"slug" bson:"slug"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Genre       string    `json:"genre,omitempty" bson:"genre,omitempty"`
	OwnerID     string    `json:"owner_id" bson:"owner_id"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// StationCreate represents a station creation request
type StationCreate struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Genre       string `json:"genre"`
}
