package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bukusaku/internal/model"
	"bukusaku/internal/repository"
	repoMocks "bukusaku/internal/repository/mocks"
	"bukusaku/internal/storage"
	storeMocks "bukusaku/internal/storage/mocks"
)

func timeRef() time.Time {
	return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
}

func reviewer(role model.Role) *model.User {
	return &model.User{ID: "actor-1", Name: "Rina", Email: "rina@example.com", Role: role, IsActive: true}
}

func newDocService(mStore *storeMocks.MockStorage, mDocs *repoMocks.MockDocumentRepository, mHist *repoMocks.MockHistoryRepository, mNotifs *repoMocks.MockNotificationRepository, mTx *repoMocks.MockTransactor) DocumentService {
	return NewDocumentService(mStore, mDocs, mHist, mNotifs, mTx, "documents")
}

func TestDocumentService_Upload(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		actor      *model.User
		title      string
		filename   string
		setupMocks func(mStore *storeMocks.MockStorage, mDocs *repoMocks.MockDocumentRepository, mHist *repoMocks.MockHistoryRepository, mTx *repoMocks.MockTransactor) io.Reader
		wantErr    error
		wantErrMsg string
	}{
		{
			name:     "happy path",
			actor:    reviewer(model.RoleManager),
			title:    "SOP Keuangan",
			filename: "sop.pdf",
			setupMocks: func(mStore *storeMocks.MockStorage, mDocs *repoMocks.MockDocumentRepository, mHist *repoMocks.MockHistoryRepository, mTx *repoMocks.MockTransactor) io.Reader {
				r := strings.NewReader("hello world")
				mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "documents/") && strings.HasSuffix(key, ".pdf")
				}), r, mock.Anything).Return(storage.ObjectInfo{
					Key:      "documents/gen.pdf",
					Location: "https://files.example.com/docs/documents/gen.pdf",
					Size:     11,
				}, nil)

				mTx.On("WithinTx", ctx, mock.Anything).Return(nil)
				mDocs.On("Create", ctx, mock.MatchedBy(func(doc *model.Document) bool {
					return doc.Status == model.StatusPending &&
						doc.UploadedBy == "actor-1" &&
						doc.StoragePath == "https://files.example.com/docs/documents/gen.pdf"
				})).Return(&model.Document{ID: "doc-1", Status: model.StatusPending}, nil)
				mHist.On("Create", ctx, mock.MatchedBy(func(h *model.DocumentHistory) bool {
					return h.DocumentID == "doc-1" && h.Action == model.ActionUpload && h.ChangedBy == "actor-1"
				})).Return(&model.DocumentHistory{ID: "hist-1"}, nil)
				return r
			},
		},
		{
			name:     "user role cannot upload",
			actor:    reviewer(model.RoleUser),
			title:    "SOP Keuangan",
			filename: "sop.pdf",
			setupMocks: func(mStore *storeMocks.MockStorage, mDocs *repoMocks.MockDocumentRepository, mHist *repoMocks.MockHistoryRepository, mTx *repoMocks.MockTransactor) io.Reader {
				return strings.NewReader("x")
			},
			wantErr: ErrForbidden,
		},
		{
			name:     "blank title",
			actor:    reviewer(model.RoleAdmin),
			title:    "   ",
			filename: "sop.pdf",
			setupMocks: func(mStore *storeMocks.MockStorage, mDocs *repoMocks.MockDocumentRepository, mHist *repoMocks.MockHistoryRepository, mTx *repoMocks.MockTransactor) io.Reader {
				return strings.NewReader("x")
			},
			wantErr: ErrValidation,
		},
		{
			name:     "nil reader",
			actor:    reviewer(model.RoleAdmin),
			title:    "SOP Keuangan",
			filename: "sop.pdf",
			setupMocks: func(mStore *storeMocks.MockStorage, mDocs *repoMocks.MockDocumentRepository, mHist *repoMocks.MockHistoryRepository, mTx *repoMocks.MockTransactor) io.Reader {
				return nil
			},
			wantErr: ErrValidation,
		},
		{
			name:     "storage error leaves no rows",
			actor:    reviewer(model.RoleSupervisor),
			title:    "SOP Keuangan",
			filename: "sop.pdf",
			setupMocks: func(mStore *storeMocks.MockStorage, mDocs *repoMocks.MockDocumentRepository, mHist *repoMocks.MockHistoryRepository, mTx *repoMocks.MockTransactor) io.Reader {
				r := strings.NewReader("hello")
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("storage fail"))
				return r
			},
			wantErr:    ErrDependency,
			wantErrMsg: "upload to storage: storage fail",
		},
		{
			name:     "row failure rolls the object back",
			actor:    reviewer(model.RoleAdmin),
			title:    "SOP Keuangan",
			filename: "sop.pdf",
			setupMocks: func(mStore *storeMocks.MockStorage, mDocs *repoMocks.MockDocumentRepository, mHist *repoMocks.MockHistoryRepository, mTx *repoMocks.MockTransactor) io.Reader {
				r := strings.NewReader("hello")
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{Key: "documents/gen.pdf"}, nil)
				mTx.On("WithinTx", ctx, mock.Anything).Return(nil)
				mDocs.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, "documents/gen.pdf").Return(nil)
				return r
			},
			wantErrMsg: "db save failed: db fail",
		},
		{
			name:     "row failure with failed rollback reports both",
			actor:    reviewer(model.RoleAdmin),
			title:    "SOP Keuangan",
			filename: "sop.pdf",
			setupMocks: func(mStore *storeMocks.MockStorage, mDocs *repoMocks.MockDocumentRepository, mHist *repoMocks.MockHistoryRepository, mTx *repoMocks.MockTransactor) io.Reader {
				r := strings.NewReader("hello")
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{Key: "documents/gen.pdf"}, nil)
				mTx.On("WithinTx", ctx, mock.Anything).Return(nil)
				mDocs.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, "documents/gen.pdf").Return(errors.New("delete fail"))
				return r
			},
			wantErrMsg: "rollback delete failed: delete fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mDocs := new(repoMocks.MockDocumentRepository)
			mHist := new(repoMocks.MockHistoryRepository)
			mNotifs := new(repoMocks.MockNotificationRepository)
			mTx := new(repoMocks.MockTransactor)
			svc := newDocService(mStore, mDocs, mHist, mNotifs, mTx)

			r := tt.setupMocks(mStore, mDocs, mHist, mTx)

			doc, err := svc.Upload(ctx, UploadInput{
				Actor:       tt.actor,
				Title:       tt.title,
				Reader:      r,
				Filename:    tt.filename,
				ContentType: "application/pdf",
				Size:        11,
				Category:    []string{" SOP ", ""},
				Tags:        []string{"keuangan"},
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantErrMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			}
			if tt.wantErr == nil && tt.wantErrMsg == "" {
				assert.NoError(t, err)
				assert.NotNil(t, doc)
			}

			mStore.AssertExpectations(t)
			mDocs.AssertExpectations(t)
			mHist.AssertExpectations(t)
		})
	}
}

func TestDocumentService_List(t *testing.T) {
	ctx := context.Background()

	name := "Budi"
	org := "Dinas Kesehatan"
	email := "budi@example.com"

	tests := []struct {
		name       string
		actor      *model.User
		titleQuery string
		setupMocks func(mDocs *repoMocks.MockDocumentRepository)
		wantErr    bool
		checkRes   func(t *testing.T, views []DocumentView)
	}{
		{
			name:  "user role sees approved only",
			actor: reviewer(model.RoleUser),
			setupMocks: func(mDocs *repoMocks.MockDocumentRepository) {
				mDocs.On("List", ctx, repository.DocumentFilter{ApprovedOnly: true}).
					Return([]repository.DocumentWithUploader{}, nil)
			},
			checkRes: func(t *testing.T, views []DocumentView) {
				assert.Empty(t, views)
			},
		},
		{
			name:       "staff sees every status with query trimmed",
			actor:      reviewer(model.RoleSupervisor),
			titleQuery: "  laporan  ",
			setupMocks: func(mDocs *repoMocks.MockDocumentRepository) {
				mDocs.On("List", ctx, repository.DocumentFilter{TitleQuery: "laporan"}).
					Return([]repository.DocumentWithUploader{
						{
							Document: model.Document{
								ID:          "doc-1",
								Title:       "Laporan Tahunan",
								StoragePath: "uploads/gen.pdf",
								Status:      model.StatusPending,
							},
							UploaderName:         &name,
							UploaderOrganization: &org,
							UploaderEmail:        &email,
						},
						{
							Document: model.Document{
								ID:          "doc-2",
								Title:       "Laporan Bulanan",
								StoragePath: "https://files.example.com/docs/documents/x.pdf",
								Status:      model.StatusRejected,
							},
						},
					}, nil)
			},
			checkRes: func(t *testing.T, views []DocumentView) {
				assert.Len(t, views, 2)
				assert.Equal(t, "Budi", views[0].Uploader.Name)
				assert.Equal(t, "Dinas Kesehatan", views[0].Uploader.Organization)
				assert.Equal(t, "/uploads/gen.pdf", views[0].FileURL)
				// Dangling uploader falls back instead of erroring.
				assert.Equal(t, "Unknown", views[1].Uploader.Name)
				assert.Equal(t, "-", views[1].Uploader.Email)
				assert.Equal(t, "https://files.example.com/docs/documents/x.pdf", views[1].FileURL)
			},
		},
		{
			name:  "repository error",
			actor: reviewer(model.RoleAdmin),
			setupMocks: func(mDocs *repoMocks.MockDocumentRepository) {
				mDocs.On("List", ctx, mock.Anything).Return(nil, errors.New("db fail"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mDocs := new(repoMocks.MockDocumentRepository)
			svc := newDocService(nil, mDocs, nil, nil, nil)

			tt.setupMocks(mDocs)

			views, err := svc.List(ctx, tt.actor, tt.titleQuery)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if tt.checkRes != nil {
					tt.checkRes(t, views)
				}
			}
			mDocs.AssertExpectations(t)
		})
	}
}

func TestDocumentService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	rejNote := "blurry scan"

	tests := []struct {
		name       string
		actor      *model.User
		status     model.Status
		note       string
		setupMocks func(mDocs *repoMocks.MockDocumentRepository, mHist *repoMocks.MockHistoryRepository, mNotifs *repoMocks.MockNotificationRepository, mTx *repoMocks.MockTransactor)
		wantErr    error
		checkDoc   func(t *testing.T, doc *model.Document)
	}{
		{
			name:   "approve pending document",
			actor:  reviewer(model.RoleManager),
			status: model.StatusApproved,
			setupMocks: func(mDocs *repoMocks.MockDocumentRepository, mHist *repoMocks.MockHistoryRepository, mNotifs *repoMocks.MockNotificationRepository, mTx *repoMocks.MockTransactor) {
				mDocs.On("FindByID", ctx, "doc-1").Return(&model.Document{
					ID: "doc-1", Title: "SOP", Status: model.StatusPending, UploadedBy: "uploader-1",
				}, nil)
				mTx.On("WithinTx", ctx, mock.Anything).Return(nil)
				mDocs.On("UpdateStatus", ctx, mock.MatchedBy(func(d *model.Document) bool {
					return d.Status == model.StatusApproved && d.ApprovedBy != nil && *d.ApprovedBy == "actor-1"
				})).Return(nil)
				mHist.On("Create", ctx, mock.MatchedBy(func(h *model.DocumentHistory) bool {
					return h.Action == model.ActionStatusApproved && h.Notes == "approved by Rina"
				})).Return(&model.DocumentHistory{}, nil)
				mNotifs.On("Create", ctx, mock.MatchedBy(func(n *model.Notification) bool {
					return n.UserID == "uploader-1" && strings.Contains(n.Message, "approved")
				})).Return(nil)
			},
			checkDoc: func(t *testing.T, doc *model.Document) {
				assert.Equal(t, model.StatusApproved, doc.Status)
				assert.Nil(t, doc.RejectedBy)
				assert.Nil(t, doc.RejectionNote)
			},
		},
		{
			name:   "reject with note",
			actor:  reviewer(model.RoleAdmin),
			status: model.StatusRejected,
			note:   rejNote,
			setupMocks: func(mDocs *repoMocks.MockDocumentRepository, mHist *repoMocks.MockHistoryRepository, mNotifs *repoMocks.MockNotificationRepository, mTx *repoMocks.MockTransactor) {
				mDocs.On("FindByID", ctx, "doc-1").Return(&model.Document{
					ID: "doc-1", Title: "SOP", Status: model.StatusPending, UploadedBy: "uploader-1",
				}, nil)
				mTx.On("WithinTx", ctx, mock.Anything).Return(nil)
				mDocs.On("UpdateStatus", ctx, mock.MatchedBy(func(d *model.Document) bool {
					return d.Status == model.StatusRejected &&
						d.RejectedBy != nil && *d.RejectedBy == "actor-1" &&
						d.ApprovedBy == nil &&
						d.RejectionNote != nil && *d.RejectionNote == rejNote
				})).Return(nil)
				mHist.On("Create", ctx, mock.MatchedBy(func(h *model.DocumentHistory) bool {
					return h.Action == model.ActionStatusRejected && h.Notes == "rejected: blurry scan"
				})).Return(&model.DocumentHistory{}, nil)
				mNotifs.On("Create", ctx, mock.MatchedBy(func(n *model.Notification) bool {
					return strings.Contains(n.Message, "rejected")
				})).Return(nil)
			},
			checkDoc: func(t *testing.T, doc *model.Document) {
				assert.Equal(t, model.StatusRejected, doc.Status)
				assert.Nil(t, doc.ApprovedBy)
			},
		},
		{
			name:   "approving a rejected document clears rejection fields",
			actor:  reviewer(model.RoleSuperuser),
			status: model.StatusApproved,
			setupMocks: func(mDocs *repoMocks.MockDocumentRepository, mHist *repoMocks.MockHistoryRepository, mNotifs *repoMocks.MockNotificationRepository, mTx *repoMocks.MockTransactor) {
				rejBy := "other-admin"
				mDocs.On("FindByID", ctx, "doc-1").Return(&model.Document{
					ID: "doc-1", Title: "SOP", Status: model.StatusRejected,
					RejectedBy: &rejBy, RejectionNote: &rejNote, UploadedBy: "uploader-1",
				}, nil)
				mTx.On("WithinTx", ctx, mock.Anything).Return(nil)
				mDocs.On("UpdateStatus", ctx, mock.MatchedBy(func(d *model.Document) bool {
					return d.Status == model.StatusApproved && d.RejectedBy == nil && d.RejectionNote == nil
				})).Return(nil)
				mHist.On("Create", ctx, mock.Anything).Return(&model.DocumentHistory{}, nil)
				mNotifs.On("Create", ctx, mock.Anything).Return(nil)
			},
			checkDoc: func(t *testing.T, doc *model.Document) {
				assert.Nil(t, doc.RejectedBy)
				assert.Nil(t, doc.RejectionNote)
				assert.NotNil(t, doc.ApprovedBy)
			},
		},
		{
			name:       "supervisor cannot approve",
			actor:      reviewer(model.RoleSupervisor),
			status:     model.StatusApproved,
			setupMocks: func(mDocs *repoMocks.MockDocumentRepository, mHist *repoMocks.MockHistoryRepository, mNotifs *repoMocks.MockNotificationRepository, mTx *repoMocks.MockTransactor) {
			},
			wantErr: ErrForbidden,
		},
		{
			name:       "pending is not a transition target",
			actor:      reviewer(model.RoleAdmin),
			status:     model.StatusPending,
			setupMocks: func(mDocs *repoMocks.MockDocumentRepository, mHist *repoMocks.MockHistoryRepository, mNotifs *repoMocks.MockNotificationRepository, mTx *repoMocks.MockTransactor) {
			},
			wantErr: ErrValidation,
		},
		{
			name:   "document not found",
			actor:  reviewer(model.RoleAdmin),
			status: model.StatusApproved,
			setupMocks: func(mDocs *repoMocks.MockDocumentRepository, mHist *repoMocks.MockHistoryRepository, mNotifs *repoMocks.MockNotificationRepository, mTx *repoMocks.MockTransactor) {
				mDocs.On("FindByID", ctx, "doc-1").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
		{
			name:   "soft deleted document behaves as missing",
			actor:  reviewer(model.RoleAdmin),
			status: model.StatusApproved,
			setupMocks: func(mDocs *repoMocks.MockDocumentRepository, mHist *repoMocks.MockHistoryRepository, mNotifs *repoMocks.MockNotificationRepository, mTx *repoMocks.MockTransactor) {
				deletedBy := "actor-2"
				at := timeRef()
				mDocs.On("FindByID", ctx, "doc-1").Return(&model.Document{
					ID: "doc-1", Status: model.StatusApproved, DeletedBy: &deletedBy, DeletedAt: &at,
				}, nil)
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mDocs := new(repoMocks.MockDocumentRepository)
			mHist := new(repoMocks.MockHistoryRepository)
			mNotifs := new(repoMocks.MockNotificationRepository)
			mTx := new(repoMocks.MockTransactor)
			svc := newDocService(nil, mDocs, mHist, mNotifs, mTx)

			tt.setupMocks(mDocs, mHist, mNotifs, mTx)

			doc, err := svc.UpdateStatus(ctx, "doc-1", tt.actor, tt.status, tt.note)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				if tt.checkDoc != nil {
					tt.checkDoc(t, doc)
				}
			}
			mDocs.AssertExpectations(t)
			mHist.AssertExpectations(t)
			mNotifs.AssertExpectations(t)
		})
	}
}

func TestDocumentService_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		actor      *model.User
		setupMocks func(mDocs *repoMocks.MockDocumentRepository, mHist *repoMocks.MockHistoryRepository, mTx *repoMocks.MockTransactor)
		wantErr    error
	}{
		{
			name:  "happy path",
			actor: reviewer(model.RoleAdmin),
			setupMocks: func(mDocs *repoMocks.MockDocumentRepository, mHist *repoMocks.MockHistoryRepository, mTx *repoMocks.MockTransactor) {
				mDocs.On("FindByID", ctx, "doc-1").Return(&model.Document{
					ID: "doc-1", Status: model.StatusApproved,
				}, nil)
				mTx.On("WithinTx", ctx, mock.Anything).Return(nil)
				mDocs.On("MarkDeleted", ctx, "doc-1", "actor-1", mock.Anything).Return(nil)
				mHist.On("Create", ctx, mock.MatchedBy(func(h *model.DocumentHistory) bool {
					return h.Action == model.ActionDelete && h.Notes == "deleted by Rina"
				})).Return(&model.DocumentHistory{}, nil)
			},
		},
		{
			name:  "supervisor cannot delete",
			actor: reviewer(model.RoleSupervisor),
			setupMocks: func(mDocs *repoMocks.MockDocumentRepository, mHist *repoMocks.MockHistoryRepository, mTx *repoMocks.MockTransactor) {
			},
			wantErr: ErrForbidden,
		},
		{
			name:  "already deleted",
			actor: reviewer(model.RoleAdmin),
			setupMocks: func(mDocs *repoMocks.MockDocumentRepository, mHist *repoMocks.MockHistoryRepository, mTx *repoMocks.MockTransactor) {
				deletedBy := "actor-2"
				at := timeRef()
				mDocs.On("FindByID", ctx, "doc-1").Return(&model.Document{
					ID: "doc-1", DeletedBy: &deletedBy, DeletedAt: &at,
				}, nil)
			},
			wantErr: ErrNotFound,
		},
		{
			name:  "not found",
			actor: reviewer(model.RoleSuperuser),
			setupMocks: func(mDocs *repoMocks.MockDocumentRepository, mHist *repoMocks.MockHistoryRepository, mTx *repoMocks.MockTransactor) {
				mDocs.On("FindByID", ctx, "doc-1").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mDocs := new(repoMocks.MockDocumentRepository)
			mHist := new(repoMocks.MockHistoryRepository)
			mTx := new(repoMocks.MockTransactor)
			svc := newDocService(nil, mDocs, mHist, nil, mTx)

			tt.setupMocks(mDocs, mHist, mTx)

			err := svc.Delete(ctx, "doc-1", tt.actor)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			mDocs.AssertExpectations(t)
			mHist.AssertExpectations(t)
		})
	}
}

func TestDocumentService_History(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		mHist := new(repoMocks.MockHistoryRepository)
		svc := newDocService(nil, mDocs, mHist, nil, nil)

		mDocs.On("FindByID", ctx, "doc-1").Return(&model.Document{ID: "doc-1"}, nil)
		mHist.On("ListByDocument", ctx, "doc-1").Return([]model.DocumentHistory{
			{ID: "h1", Action: model.ActionUpload},
			{ID: "h2", Action: model.ActionStatusRejected},
			{ID: "h3", Action: model.ActionStatusApproved},
		}, nil)

		entries, err := svc.History(ctx, "doc-1", reviewer(model.RoleManager))

		assert.NoError(t, err)
		assert.Len(t, entries, 3)
		assert.Equal(t, model.ActionUpload, entries[0].Action)
		mDocs.AssertExpectations(t)
		mHist.AssertExpectations(t)
	})

	t.Run("user role is refused", func(t *testing.T) {
		svc := newDocService(nil, nil, nil, nil, nil)

		_, err := svc.History(ctx, "doc-1", reviewer(model.RoleUser))

		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("missing document", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		svc := newDocService(nil, mDocs, nil, nil, nil)

		mDocs.On("FindByID", ctx, "doc-1").Return(nil, sql.ErrNoRows)

		_, err := svc.History(ctx, "doc-1", reviewer(model.RoleAdmin))

		assert.ErrorIs(t, err, ErrNotFound)
	})
}
