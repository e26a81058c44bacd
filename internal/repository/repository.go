package repository

import "context"

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.

// Transactor runs fn inside a single unit of work. Repository calls made with
// the context passed to fn share one transaction; if fn returns an error the
// whole unit is rolled back. Lifecycle transitions rely on this so a document
// update and its audit entry commit or abort together.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
