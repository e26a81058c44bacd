package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"bukusaku/internal/auth"
	"bukusaku/internal/model"
	"bukusaku/internal/repository"
	"bukusaku/internal/storage"
)

// Fallback values used when a document's uploader reference dangles.
const (
	unknownUploaderName  = "Unknown"
	unknownUploaderField = "-"
)

// UploadInput carries everything needed to create a document.
type UploadInput struct {
	Actor       *model.User
	Title       string
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
	Category    []string
	Tags        []string
}

// UploaderInfo is the identity enrichment attached to each listed document.
type UploaderInfo struct {
	Name         string `json:"name"`
	Organization string `json:"organization"`
	Email        string `json:"email"`
}

// DocumentView is the listing DTO: a document with its uploader identity and
// the locator resolved to a caller-usable address.
type DocumentView struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	FileURL       string           `json:"file_url"`
	ContentType   string           `json:"content_type"`
	Size          int64            `json:"size"`
	Status        model.Status     `json:"status"`
	Category      model.StringList `json:"category"`
	Tags          model.StringList `json:"tags"`
	RejectionNote *string          `json:"rejection_note,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	Uploader      UploaderInfo     `json:"uploader"`
}

// DocumentService defines the document lifecycle use cases. Every state
// transition enforces the actor's capability and appends exactly one audit
// entry in the same unit of work as the document write.
type DocumentService interface {
	// Upload persists the file bytes first, then creates the pending
	// document row and its audit entry. A storage failure leaves no rows
	// behind; a row failure rolls the stored object back.
	Upload(ctx context.Context, in UploadInput) (*model.Document, error)

	// List returns documents visible to the actor, optionally filtered by a
	// case-insensitive title substring.
	List(ctx context.Context, actor *model.User, titleQuery string) ([]DocumentView, error)

	// UpdateStatus transitions a document to approved or rejected. Approved
	// and rejected re-transition freely in either direction.
	UpdateStatus(ctx context.Context, id string, actor *model.User, status model.Status, note string) (*model.Document, error)

	// Delete sets the soft-delete marker. Status is left untouched and the
	// marker is never reversed.
	Delete(ctx context.Context, id string, actor *model.User) error

	// History returns a document's audit entries, oldest first.
	History(ctx context.Context, id string, actor *model.User) ([]model.DocumentHistory, error)
}

type documentService struct {
	store        storage.Storage
	docs         repository.DocumentRepository
	history      repository.HistoryRepository
	notifs       repository.NotificationRepository
	tx           repository.Transactor
	remoteFolder string
}

// NewDocumentService constructs the lifecycle engine over its collaborators.
// remoteFolder is the object key prefix for stored files.
func NewDocumentService(
	store storage.Storage,
	docs repository.DocumentRepository,
	history repository.HistoryRepository,
	notifs repository.NotificationRepository,
	tx repository.Transactor,
	remoteFolder string,
) DocumentService {
	return &documentService{
		store:        store,
		docs:         docs,
		history:      history,
		notifs:       notifs,
		tx:           tx,
		remoteFolder: remoteFolder,
	}
}

func (s *documentService) Upload(ctx context.Context, in UploadInput) (*model.Document, error) {
	if in.Actor == nil {
		return nil, ErrForbidden
	}
	if !auth.Allowed(in.Actor.Role, auth.CapUpload) {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if in.Reader == nil {
		return nil, fmt.Errorf("%w: file is required", ErrValidation)
	}

	// Stored name is UUID + original extension; the original filename only
	// survives in object metadata.
	ext := filepath.Ext(in.Filename)
	genName := uuid.New().String() + ext
	key := path.Join(s.remoteFolder, genName)

	// Persist bytes before any row exists. A failure here must leave no
	// document or audit record.
	objInfo, err := s.store.Put(ctx, key, in.Reader, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: in.ContentType,
		Metadata: map[string]string{
			"original-filename": in.Filename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: upload to storage: %v", ErrDependency, err)
	}

	now := time.Now().UTC()
	doc := &model.Document{
		ID:          uuid.New().String(),
		Title:       in.Title,
		StoragePath: objInfo.Location,
		ContentType: in.ContentType,
		Size:        objInfo.Size,
		UploadedBy:  in.Actor.ID,
		Status:      model.StatusPending,
		Category:    canonicalList(in.Category),
		Tags:        canonicalList(in.Tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var stored *model.Document
	txErr := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		stored, err = s.docs.Create(ctx, doc)
		if err != nil {
			return err
		}
		_, err = s.history.Create(ctx, &model.DocumentHistory{
			ID:         uuid.New().String(),
			DocumentID: stored.ID,
			ChangedBy:  in.Actor.ID,
			Action:     model.ActionUpload,
			Notes:      "uploaded by " + in.Actor.Name,
			CreatedAt:  now,
		})
		return err
	})
	if txErr != nil {
		// Roll the stored object back so no orphaned bytes remain.
		if delErr := s.store.Delete(ctx, objInfo.Key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", txErr, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", txErr)
	}
	return stored, nil
}

func (s *documentService) List(ctx context.Context, actor *model.User, titleQuery string) ([]DocumentView, error) {
	if actor == nil {
		return nil, ErrForbidden
	}

	rows, err := s.docs.List(ctx, repository.DocumentFilter{
		TitleQuery:   strings.TrimSpace(titleQuery),
		ApprovedOnly: actor.Role == model.RoleUser,
	})
	if err != nil {
		return nil, err
	}

	views := make([]DocumentView, 0, len(rows))
	for _, row := range rows {
		views = append(views, newDocumentView(row))
	}
	return views, nil
}

func (s *documentService) UpdateStatus(ctx context.Context, id string, actor *model.User, status model.Status, note string) (*model.Document, error) {
	if actor == nil || !auth.Allowed(actor.Role, auth.CapApprove) {
		return nil, ErrForbidden
	}
	if status != model.StatusApproved && status != model.StatusRejected {
		return nil, fmt.Errorf("%w: status must be approved or rejected", ErrValidation)
	}

	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if doc.Deleted() {
		return nil, ErrNotFound
	}

	now := time.Now().UTC()
	var action, historyNote, notifMsg string
	switch status {
	case model.StatusApproved:
		doc.Status = model.StatusApproved
		doc.ApprovedBy = &actor.ID
		doc.RejectedBy = nil
		doc.RejectionNote = nil
		action = model.ActionStatusApproved
		historyNote = "approved by " + actor.Name
		notifMsg = fmt.Sprintf("Your document %q was approved", doc.Title)
	case model.StatusRejected:
		doc.Status = model.StatusRejected
		doc.RejectedBy = &actor.ID
		doc.ApprovedBy = nil
		if strings.TrimSpace(note) != "" {
			n := note
			doc.RejectionNote = &n
		} else {
			doc.RejectionNote = nil
		}
		action = model.ActionStatusRejected
		historyNote = "rejected: " + note
		notifMsg = fmt.Sprintf("Your document %q was rejected", doc.Title)
	}
	doc.UpdatedAt = now

	txErr := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.docs.UpdateStatus(ctx, doc); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
		if _, err := s.history.Create(ctx, &model.DocumentHistory{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			ChangedBy:  actor.ID,
			Action:     action,
			Notes:      historyNote,
			CreatedAt:  now,
		}); err != nil {
			return err
		}
		return s.notifs.Create(ctx, &model.Notification{
			ID:        uuid.New().String(),
			UserID:    doc.UploadedBy,
			Message:   notifMsg,
			Type:      "document_status",
			CreatedAt: now,
		})
	})
	if txErr != nil {
		return nil, txErr
	}
	return doc, nil
}

func (s *documentService) Delete(ctx context.Context, id string, actor *model.User) error {
	if actor == nil || !auth.Allowed(actor.Role, auth.CapDelete) {
		return ErrForbidden
	}

	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if doc.Deleted() {
		return ErrNotFound
	}

	now := time.Now().UTC()
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.docs.MarkDeleted(ctx, id, actor.ID, now); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
		_, err := s.history.Create(ctx, &model.DocumentHistory{
			ID:         uuid.New().String(),
			DocumentID: id,
			ChangedBy:  actor.ID,
			Action:     model.ActionDelete,
			Notes:      "deleted by " + actor.Name,
			CreatedAt:  now,
		})
		return err
	})
}

func (s *documentService) History(ctx context.Context, id string, actor *model.User) ([]model.DocumentHistory, error) {
	if actor == nil || !auth.Allowed(actor.Role, auth.CapApprove) {
		return nil, ErrForbidden
	}
	if _, err := s.docs.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.history.ListByDocument(ctx, id)
}

// newDocumentView maps a joined row to the listing DTO, resolving the locator
// and filling uploader fallbacks for dangling references.
func newDocumentView(row repository.DocumentWithUploader) DocumentView {
	up := UploaderInfo{
		Name:         unknownUploaderName,
		Organization: unknownUploaderField,
		Email:        unknownUploaderField,
	}
	if row.UploaderName != nil {
		up.Name = *row.UploaderName
	}
	if row.UploaderOrganization != nil {
		up.Organization = *row.UploaderOrganization
	}
	if row.UploaderEmail != nil {
		up.Email = *row.UploaderEmail
	}

	return DocumentView{
		ID:            row.ID,
		Title:         row.Title,
		FileURL:       storage.ResolveURL(row.StoragePath),
		ContentType:   row.ContentType,
		Size:          row.Size,
		Status:        row.Status,
		Category:      row.Category,
		Tags:          row.Tags,
		RejectionNote: row.RejectionNote,
		CreatedAt:     row.CreatedAt,
		Uploader:      up,
	}
}

// canonicalList trims entries and drops empties, preserving order.
func canonicalList(in []string) model.StringList {
	out := make(model.StringList, 0, len(in))
	for _, v := range in {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}
