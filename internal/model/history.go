package model

import "time"

// History action labels. One entry is written per lifecycle transition.
const (
	ActionUpload         = "upload"
	ActionStatusApproved = "status_change_approved"
	ActionStatusRejected = "status_change_rejected"
	ActionDelete         = "delete"
)

// DocumentHistory is an append-only audit entry for one lifecycle transition.
// Entries are never updated or deleted and outlive the acting user.
type DocumentHistory struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	ChangedBy  string    `json:"changed_by"`
	Action     string    `json:"action"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
}
