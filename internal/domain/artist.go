package domain

import "time"

// Artist is a performer profile submitted for approval.
type Artist struct {
	ID          string            `json:"id" bson:"_id"`
	Name        string            `json:"name" bson:"name"`
	Bio         string            `json:"bio,omitempty" bson:"bio,omitempty"`
	Email       string            `json:"email" bson:"email"`
	SocialLinks map[string]string `json:"social_links,omitempty" bson:"social_links,omitempty"`
	Approved    bool              `json:"approved" bson:"approved"`
	CreatedAt   time.Time         `json:"created_at" bson:"created_at"`
}

// ArtistSubmission represents an artist profile submission
type ArtistSubmission struct {
	Name        string            `json:"name" binding:"required"`
	Bio         string            `json:"bio"`
	Email       string            `json:"email" binding:"required"`
	SocialLinks map[string]string `json:"social_links"`
}
