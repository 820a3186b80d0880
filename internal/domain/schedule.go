package domain

import "time"

// Schedule is a DJ show slot on a station.
type Schedule struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	DJID        string    `json:"dj_id" bson:"dj_id"`
	DJName      string    `json:"dj_name" bson:"dj_name"`
	StationID   string    `json:"station_id" bson:"station_id"`
	StartTime   time.Time `json:"start_time" bson:"start_time"`
	EndTime     time.Time `json:"end_time" bson:"end_time"`
	PlaylistID  string    `json:"playlist_id,omitempty" bson:"playlist_id,omitempty"`
	IsLive      bool      `json:"is_live" bson:"is_live"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// ScheduleCreate represents a show scheduling request
type ScheduleCreate struct {
	Title       string    `json:"title" binding:"required"`
	DJID        string    `json:"dj_id" binding:"required"`
	DJName      string    `json:"dj_name" binding:"required"`
	StationID   string    `json:"station_id" binding:"required"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
	PlaylistID  string    `json:"playlist_id"`
	Description string    `json:"description"`
}
