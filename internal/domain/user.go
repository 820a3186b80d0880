package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is a user's platform role. It gates privileged actions; listening
// and chatting are open to everyone, including anonymous connections.
type Role string

const (
	RoleListener Role = "listener"
	RoleArtist   Role = "artist"
	RoleDJ       Role = "dj"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleListener, RoleArtist, RoleDJ, RoleAdmin:
		return true
	}
	return false
}

// Privileged reports whether r may issue DJ controls and receives
// privileged-only broadcasts.
func (r Role) Privileged() bool {
	return r == RoleDJ || r == RoleAdmin
}

// User represents a platform account
type User struct {
	ID           string    `json:"id" bson:"_id"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email" bson:"email"`
	Role         Role      `json:"role" bson:"role"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// NewUserID creates a new user ID
func NewUserID() string {
	return uuid.New().String()
}

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     Role   `json:"role"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents a successful register/login response
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user"`
}

// Identity is the resolved identity of a realtime connection. Anonymous
// connections carry an empty UserID and role listener.
type Identity struct {
	UserID   string
	Username string
	Role     Role
}

// Anonymous is the identity used when no credential is supplied or the
// supplied credential fails validation.
var Anonymous = Identity{Role: RoleListener}
