package model

import "time"

// Status is the lifecycle state of a document.
// Every document starts as pending; approved and rejected are re-transitionable
// in either direction. Soft deletion is orthogonal to status.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Document represents a stored file and its lifecycle state.
// This is a pure domain model with no database-specific dependencies or tags.
//
// Invariant: ApprovedBy and RejectedBy are never both set; a transition to one
// status clears the other's reference. A non-nil DeletedAt hides the document
// from every listing regardless of status.
type Document struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	StoragePath   string     `json:"storage_path"`
	ContentType   string     `json:"content_type"`
	Size          int64      `json:"size"`
	UploadedBy    string     `json:"uploaded_by"`
	Status        Status     `json:"status"`
	ApprovedBy    *string    `json:"approved_by,omitempty"`
	RejectedBy    *string    `json:"rejected_by,omitempty"`
	RejectionNote *string    `json:"rejection_note,omitempty"`
	DeletedBy     *string    `json:"deleted_by,omitempty"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
	Category      StringList `json:"category"`
	Tags          StringList `json:"tags"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Deleted reports whether the document carries a soft-delete marker.
func (d *Document) Deleted() bool {
	return d.DeletedAt != nil
}
