package model

import "time"

// Category is a named grouping documents can reference by name in their
// category list. Names are unique.
type Category struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedBy *string   `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
