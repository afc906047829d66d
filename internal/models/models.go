package models

import (
	"fmt"
	"strings"
	"time"
)

// Role is a user's authorization level as reported by the server.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// CollectionStatus is the listening status of a collection entry.
type CollectionStatus string

const (
	StatusNone      CollectionStatus = "none"
	StatusLike      CollectionStatus = "like"
	StatusDislike   CollectionStatus = "dislike"
	StatusFavourite CollectionStatus = "favourite"
)

// ValidStatus reports whether s is one of the statuses the server accepts.
func ValidStatus(s CollectionStatus) bool {
	switch s {
	case StatusNone, StatusLike, StatusDislike, StatusFavourite:
		return true
	}
	return false
}

// Music is a catalog entry. The remote service owns these; the client only
// holds per-view caches that are patched in place on create/update/delete.
type Music struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Artist    string     `json:"artist"`
	Album     *string    `json:"album,omitempty"`
	Genre     *string    `json:"genre,omitempty"`
	Year      *int       `json:"year,omitempty"`
	Duration  *int       `json:"duration,omitempty"` // seconds
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// Validate checks the minimal shape constraints for a catalog entry draft.
func (m *Music) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(m.Artist) == "" {
		return fmt.Errorf("artist is required")
	}
	return nil
}

// MusicDraft is the payload for creating or updating a catalog entry.
// Update requests send only the fields being changed.
type MusicDraft struct {
	Title    string  `json:"title,omitempty"`
	Artist   string  `json:"artist,omitempty"`
	Album    *string `json:"album,omitempty"`
	Genre    *string `json:"genre,omitempty"`
	Year     *int    `json:"year,omitempty"`
	Duration *int    `json:"duration,omitempty"`
}

// User is a directory entry.
type User struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      Role       `json:"role"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// UserDraft is the payload for creating a directory user.
type UserDraft struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// Validate checks the minimal shape constraints for a user draft.
func (d *UserDraft) Validate() error {
	if strings.TrimSpace(d.Username) == "" {
		return fmt.Errorf("username is required")
	}
	if strings.TrimSpace(d.Email) == "" {
		return fmt.Errorf("email is required")
	}
	return nil
}

// CollectionEntry is one (user, music) pair in a personal collection.
// The server enforces at most one entry per pair.
type CollectionEntry struct {
	ID      int64            `json:"id"`
	UserID  int64            `json:"user_id"`
	MusicID int64            `json:"music_id"`
	Status  CollectionStatus `json:"status"`
	AddedAt *time.Time       `json:"added_at,omitempty"`
	Music   Music            `json:"music"`
}

// Comment is an append-only comment on a catalog entry. Display order is
// newest-first, maintained by client-side prepend.
type Comment struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	MusicID   int64      `json:"music_id"`
	Content   string     `json:"content"`
	Rating    *int       `json:"rating,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// CommentDraft is the payload for posting a comment.
type CommentDraft struct {
	MusicID int64  `json:"music_id"`
	Content string `json:"content"`
	Rating  *int   `json:"rating,omitempty"`
}

// Validate checks that the comment has non-empty trimmed content and, when a
// rating is present, that it lies in 1..5.
func (d *CommentDraft) Validate() error {
	if strings.TrimSpace(d.Content) == "" {
		return fmt.Errorf("comment content is required")
	}
	if d.Rating != nil && (*d.Rating < 1 || *d.Rating > 5) {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	return nil
}

// TokenPair is the response body of the authorization-code exchange and the
// refresh grant.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
}
