package items

import (
	"context"

	"github.com/angelmondragon/assettrack-backend/pkg/db"
	"github.com/angelmondragon/assettrack-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/assettrack-backend/pkg/errors"
	"github.com/angelmondragon/assettrack-backend/pkg/logger"
	"github.com/angelmondragon/assettrack-backend/pkg/qrcode"
)

const maxIDAttempts = 5

// NotFoundMessage is the public message for a missing item.
const NotFoundMessage = "Item not found"

// Service defines item operations.
type Service interface {
	Create(ctx context.Context, req ItemRequest, meta RequestMeta) (*models.Item, error)
	List(ctx context.Context, filter ListFilter) ([]models.Item, error)
	Get(ctx context.Context, customID string, meta RequestMeta) (*models.Item, error)
	QRCode(ctx context.Context, customID string, meta RequestMeta) (*QRCodeResult, error)
	Update(ctx context.Context, customID string, req ItemRequest, meta RequestMeta) (*models.Item, error)
	Delete(ctx context.Context, customID string, meta RequestMeta) error
}

type auditRecorder interface {
	ItemCreated(ctx context.Context, item *models.Item, actor string)
	ItemUpdated(ctx context.Context, before, after *models.Item, actor string)
	ItemDeleted(ctx context.Context, item *models.Item, actor string)
}

type qrEncoder interface {
	DataURL(content string) (string, error)
}

// ServiceParams wires the item service collaborators.
type ServiceParams struct {
	Repo   Repository
	IDs    IDGenerator
	QR     qrEncoder
	Audit  auditRecorder
	Logger *logger.Logger
}

type service struct {
	repo  Repository
	ids   IDGenerator
	qr    qrEncoder
	audit auditRecorder
	logg  *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "item repository required")
	}
	if params.IDs == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "item id generator required")
	}
	if params.QR == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "qr encoder required")
	}
	if params.Audit == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "audit recorder required")
	}
	return &service{
		repo:  params.Repo,
		ids:   params.IDs,
		qr:    params.QR,
		audit: params.Audit,
		logg:  params.Logger,
	}, nil
}

func (s *service) Create(ctx context.Context, req ItemRequest, meta RequestMeta) (*models.Item, error) {
	fields, err := req.Fields()
	if err != nil {
		return nil, err
	}

	item := &models.Item{}
	fields.apply(item)

	var createErr error
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		customID, err := s.ids.Next(ctx)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Error generating item id")
		}
		item.CustomID = customID
		createErr = s.repo.Create(ctx, item)
		if createErr == nil || !db.IsUniqueViolation(createErr) {
			break
		}
		s.warn(ctx, customID, "items.id_collision")
	}
	if createErr != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, createErr, "Error creating item")
	}

	s.attachQRCode(ctx, item, meta.BaseURL)
	s.audit.ItemCreated(ctx, item, meta.Actor)
	return item, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]models.Item, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Error fetching items")
	}
	if items == nil {
		items = []models.Item{}
	}
	return items, nil
}

// Get regenerates a missing QR code on read, best effort.
func (s *service) Get(ctx context.Context, customID string, meta RequestMeta) (*models.Item, error) {
	item, err := s.find(ctx, customID)
	if err != nil {
		return nil, err
	}
	if item.QRCode == "" {
		s.attachQRCode(ctx, item, meta.BaseURL)
	}
	return item, nil
}

func (s *service) QRCode(ctx context.Context, customID string, meta RequestMeta) (*QRCodeResult, error) {
	item, err := s.find(ctx, customID)
	if err != nil {
		return nil, err
	}
	url := qrcode.EditURL(meta.BaseURL, item.CustomID)
	code, err := s.qr.DataURL(url)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Error generating QR code")
	}
	if err := s.repo.UpdateQRCode(ctx, item.CustomID, code); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Error saving QR code")
	}
	return &QRCodeResult{CustomID: item.CustomID, QRCode: code, URL: url}, nil
}

func (s *service) Update(ctx context.Context, customID string, req ItemRequest, meta RequestMeta) (*models.Item, error) {
	fields, err := req.Fields()
	if err != nil {
		return nil, err
	}
	item, err := s.find(ctx, customID)
	if err != nil {
		return nil, err
	}

	before := *item
	fields.apply(item)
	found, err := s.repo.Update(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Error updating item")
	}
	if !found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, NotFoundMessage)
	}

	s.audit.ItemUpdated(ctx, &before, item, meta.Actor)
	return item, nil
}

func (s *service) Delete(ctx context.Context, customID string, meta RequestMeta) error {
	item, err := s.find(ctx, customID)
	if err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, customID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Error deleting item")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, NotFoundMessage)
	}
	s.audit.ItemDeleted(ctx, item, meta.Actor)
	return nil
}

func (s *service) find(ctx context.Context, customID string) (*models.Item, error) {
	item, err := s.repo.FindByCustomID(ctx, customID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Error fetching item")
	}
	if item == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, NotFoundMessage)
	}
	return item, nil
}

// attachQRCode encodes the edit link and stores it on the item. Failures
// leave the item without a code.
func (s *service) attachQRCode(ctx context.Context, item *models.Item, baseURL string) {
	code, err := s.qr.DataURL(qrcode.EditURL(baseURL, item.CustomID))
	if err == nil {
		err = s.repo.UpdateQRCode(ctx, item.CustomID, code)
	}
	if err != nil {
		if s.logg != nil {
			s.logg.Error(s.logg.WithItemID(ctx, item.CustomID), "items.qr_code_failed", err)
		}
		return
	}
	item.QRCode = code
}

func (s *service) warn(ctx context.Context, customID, msg string) {
	if s.logg != nil {
		s.logg.Warn(s.logg.WithItemID(ctx, customID), msg)
	}
}
