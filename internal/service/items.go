package service

import (
	"context"

	"wfm/internal/domain"
)

type ItemService struct {
	items domain.ItemRepository
}

func NewItemService(items domain.ItemRepository) *ItemService {
	return &ItemService{items: items}
}

func (s *ItemService) Create(ctx context.Context, item *domain.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	return s.items.Create(ctx, item)
}

func (s *ItemService) Rename(ctx context.Context, id, description string) error {
	candidate := domain.Item{Description: description, Type: domain.ItemTypeProduct}
	if err := candidate.Validate(); err != nil {
		return err
	}
	return s.items.Rename(ctx, id, description)
}

func (s *ItemService) Get(ctx context.Context, id string) (*domain.Item, error) {
	return s.items.GetByID(ctx, id)
}

func (s *ItemService) List(ctx context.Context) ([]domain.Item, error) {
	return s.items.List(ctx)
}

// Delete refuses while any donation lists the item.
func (s *ItemService) Delete(ctx context.Context, id string) error {
	return s.items.Delete(ctx, id)
}
