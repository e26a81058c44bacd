package model

import "time"

// Notification is an in-app message for a single user, created as a side
// effect of document transitions (approval/rejection outcomes).
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Message   string    `json:"message"`
	Type      string    `json:"type,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
