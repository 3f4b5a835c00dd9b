package services

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghuser/itemstore/pkg/telemetry"
	itemdomain "github.com/ghuser/itemstore/services/item/domain"
	"github.com/ghuser/itemstore/services/item/domain/models"
	"github.com/ghuser/itemstore/services/item/domain/repositories"
	domainsvcs "github.com/ghuser/itemstore/services/item/domain/services"
)

var tracer = telemetry.Tracer("item")

// ItemService orchestrates the item CRUD use cases.
// Event publishing is handled by the repository layer after each commit.
type ItemService struct {
	repo repositories.ItemRepository
}

// NewItemService returns an ItemService wired with the given repository.
func NewItemService(repo repositories.ItemRepository) *ItemService {
	return &ItemService{repo: repo}
}

// Create builds and persists a new Item from f.
func (s *ItemService) Create(ctx context.Context, f models.Fields) (_ *models.Item, err error) {
	ctx, span := tracer.Start(ctx, "ItemService.Create")
	defer func() { endSpan(span, err) }()

	if err := domainsvcs.ValidateFields(f); err != nil {
		return nil, fmt.Errorf("%w: %w", itemdomain.ErrInvalidItem, err)
	}

	item := models.NewItem(f)
	if err := s.repo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}
	span.SetAttributes(attribute.Int64("item.id", item.ID))

	return item, nil
}

// Get retrieves an Item by id.
// Ids that can never exist (zero or negative) are reported as not found.
func (s *ItemService) Get(ctx context.Context, id int64) (_ *models.Item, err error) {
	ctx, span := tracer.Start(ctx, "ItemService.Get", trace.WithAttributes(attribute.Int64("item.id", id)))
	defer func() { endSpan(span, err) }()

	if err := domainsvcs.ValidateItemID(id); err != nil {
		return nil, fmt.Errorf("%w: %w", itemdomain.ErrItemNotFound, err)
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// List returns every item ordered by id.
func (s *ItemService) List(ctx context.Context) (_ []*models.Item, err error) {
	ctx, span := tracer.Start(ctx, "ItemService.List")
	defer func() { endSpan(span, err) }()

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	span.SetAttributes(attribute.Int("item.count", len(items)))
	return items, nil
}

// Update overwrites every field of the item with the given id.
// Returns ErrItemNotFound, and creates nothing, when no such item exists.
func (s *ItemService) Update(ctx context.Context, id int64, f models.Fields) (_ *models.Item, err error) {
	ctx, span := tracer.Start(ctx, "ItemService.Update", trace.WithAttributes(attribute.Int64("item.id", id)))
	defer func() { endSpan(span, err) }()

	if err := domainsvcs.ValidateItemID(id); err != nil {
		return nil, fmt.Errorf("%w: %w", itemdomain.ErrItemNotFound, err)
	}
	if err := domainsvcs.ValidateFields(f); err != nil {
		return nil, fmt.Errorf("%w: %w", itemdomain.ErrInvalidItem, err)
	}

	item, err := s.repo.Update(ctx, id, f)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return item, nil
}

// Delete removes an item by id.
// Returns ErrItemNotFound if no matching item exists.
func (s *ItemService) Delete(ctx context.Context, id int64) (err error) {
	ctx, span := tracer.Start(ctx, "ItemService.Delete", trace.WithAttributes(attribute.Int64("item.id", id)))
	defer func() { endSpan(span, err) }()

	if err := domainsvcs.ValidateItemID(id); err != nil {
		return fmt.Errorf("%w: %w", itemdomain.ErrItemNotFound, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
