package activity

import (
	"context"

	"github.com/angelmondragon/assettrack-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/assettrack-backend/pkg/errors"
	"github.com/angelmondragon/assettrack-backend/pkg/pagination"
	"github.com/angelmondragon/assettrack-backend/pkg/types"
	"github.com/google/uuid"
)

// Service exposes the read side of the audit log.
type Service interface {
	List(ctx context.Context, params pagination.Params) (*types.PagedList[models.Log], error)
	ListByItem(ctx context.Context, itemID string) ([]models.Log, error)
	Get(ctx context.Context, id string) (*models.Log, error)
	Purge(ctx context.Context) (int64, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "log repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*types.PagedList[models.Log], error) {
	params = params.Normalize()
	logs, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Error fetching logs")
	}
	if logs == nil {
		logs = []models.Log{}
	}
	return &types.PagedList[models.Log]{
		Count:       len(logs),
		Total:       total,
		Pages:       params.TotalPages(total),
		CurrentPage: params.Page,
		Data:        logs,
	}, nil
}

func (s *service) ListByItem(ctx context.Context, itemID string) ([]models.Log, error) {
	logs, err := s.repo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Error fetching logs")
	}
	if logs == nil {
		logs = []models.Log{}
	}
	return logs, nil
}

func (s *service) Get(ctx context.Context, id string) (*models.Log, error) {
	logID, err := uuid.Parse(id)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid log id")
	}
	entry, err := s.repo.FindByID(ctx, logID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Error fetching log")
	}
	if entry == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Log not found")
	}
	return entry, nil
}

func (s *service) Purge(ctx context.Context) (int64, error) {
	deleted, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Error deleting logs")
	}
	return deleted, nil
}
