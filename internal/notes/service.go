package notes

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/angelmondragon/assettrack-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/assettrack-backend/pkg/errors"
	"github.com/google/uuid"
)

const (
	missingFieldsMessage = "Item ID and content are required"
	notFoundMessage      = "Note not found"
	itemNotFoundMessage  = "Item not found"
)

var contentTooLongMessage = fmt.Sprintf("Note content cannot exceed %d characters", models.NoteMaxLength)

// Service defines note operations.
type Service interface {
	ListByItem(ctx context.Context, itemID string) ([]models.Note, error)
	Create(ctx context.Context, req CreateNoteRequest, actor string) (*models.Note, error)
	Delete(ctx context.Context, id string, actor string) error
	Purge(ctx context.Context) (int64, error)
}

// itemFinder is satisfied by items.Repository.
type itemFinder interface {
	FindByCustomID(ctx context.Context, customID string) (*models.Item, error)
}

type auditRecorder interface {
	NoteAdded(ctx context.Context, item *models.Item, note *models.Note, actor string)
	NoteRemoved(ctx context.Context, item *models.Item, note *models.Note, actor string)
}

type service struct {
	repo  Repository
	items itemFinder
	audit auditRecorder
}

func NewService(repo Repository, items itemFinder, audit auditRecorder) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "note repository required")
	}
	if items == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "item lookup required")
	}
	if audit == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "audit recorder required")
	}
	return &service{repo: repo, items: items, audit: audit}, nil
}

func (s *service) ListByItem(ctx context.Context, itemID string) ([]models.Note, error) {
	notes, err := s.repo.ListByItem(ctx, strings.TrimSpace(itemID))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Error fetching notes")
	}
	if notes == nil {
		notes = []models.Note{}
	}
	return notes, nil
}

func (s *service) Create(ctx context.Context, req CreateNoteRequest, actor string) (*models.Note, error) {
	itemID := strings.TrimSpace(req.ItemID)
	content := strings.TrimSpace(req.Content)
	if itemID == "" || content == "" {
		details := map[string]string{}
		if itemID == "" {
			details["itemId"] = "is required"
		}
		if content == "" {
			details["content"] = "is required"
		}
		return nil, pkgerrors.New(pkgerrors.CodeValidation, missingFieldsMessage).WithDetails(details)
	}
	if utf8.RuneCountInString(content) > models.NoteMaxLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, contentTooLongMessage)
	}

	item, err := s.items.FindByCustomID(ctx, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Error fetching item")
	}
	if item == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, itemNotFoundMessage)
	}

	if actor == "" {
		actor = strings.TrimSpace(req.User)
	}
	note := &models.Note{ItemID: item.CustomID, Content: content, User: actor}
	if err := s.repo.Create(ctx, note); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Error creating note")
	}

	s.audit.NoteAdded(ctx, item, note, note.User)
	return note, nil
}

// Delete removes the note. The audit entry is skipped when the owning item
// is gone, since note logs must reference an item.
func (s *service) Delete(ctx context.Context, id string, actor string) error {
	noteID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
	}
	note, err := s.repo.FindByID(ctx, noteID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Error fetching note")
	}
	if note == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
	}

	deleted, err := s.repo.Delete(ctx, noteID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Error deleting note")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
	}

	item, err := s.items.FindByCustomID(ctx, note.ItemID)
	if err == nil && item != nil {
		s.audit.NoteRemoved(ctx, item, note, actor)
	}
	return nil
}

func (s *service) Purge(ctx context.Context) (int64, error) {
	deleted, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Error deleting notes")
	}
	return deleted, nil
}
