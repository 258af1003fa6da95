package model

import "time"

type User struct {
	ID        int64     `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// APIToken stores the sha256 hex digest of a bearer token, never the token.
type APIToken struct {
	ID         int64      `json:"id" bson:"_id"`
	UserID     int64      `json:"user_id" bson:"user_id"`
	Name       string     `json:"name" bson:"name"`
	TokenHash  string     `json:"-" bson:"token"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty" bson:"last_used_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at" bson:"created_at"`
}

// Caller identifies an authenticated API client.
type Caller struct {
	UserID  int64
	TokenID int64
	Name    string
}
