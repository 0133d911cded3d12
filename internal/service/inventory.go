package service

import (
	"github.com/kmandell/mechanic-shop/internal/cache"
	"github.com/kmandell/mechanic-shop/internal/models"
)

// CreateInventoryInput carries the fields accepted when creating a part.
type CreateInventoryInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// UpdateInventoryInput carries optional fields for an inventory update.
type UpdateInventoryInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Quantity    *int     `json:"quantity"`
	Price       *float64 `json:"price"`
}

// CreateInventoryItem creates a part and invalidates the cached listing
func (s *Service) CreateInventoryItem(input CreateInventoryInput) (*models.InventoryItem, error) {
	if input.Name == "" {
		return nil, models.NewValidationError("name", "is required")
	}
	if input.Quantity < 0 {
		return nil, models.NewValidationError("quantity", "must not be negative")
	}
	if input.Price < 0 {
		return nil, models.NewValidationError("price", "must not be negative")
	}

	item := &models.InventoryItem{
		Name:        input.Name,
		Description: input.Description,
		Quantity:    input.Quantity,
		Price:       input.Price,
	}
	if err := s.store.CreateInventoryItem(item); err != nil {
		return nil, err
	}
	s.cache.Delete(cache.KeyAllInventory)

	s.log.Infof("Inventory item created: %s", item.Name)
	return item, nil
}

// GetInventoryItem retrieves an inventory item by id
func (s *Service) GetInventoryItem(id int64) (*models.InventoryItem, error) {
	return s.store.FindInventoryItemByID(id)
}

// ListInventoryItems retrieves all inventory items
func (s *Service) ListInventoryItems() ([]*models.InventoryItem, error) {
	return s.store.ListInventoryItems()
}

// UpdateInventoryItem applies a partial update and invalidates the cached
// listing
func (s *Service) UpdateInventoryItem(id int64, input UpdateInventoryInput) (*models.InventoryItem, error) {
	item, err := s.store.FindInventoryItemByID(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, models.NewValidationError("name", "must not be empty")
		}
		item.Name = *input.Name
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, models.NewValidationError("quantity", "must not be negative")
		}
		item.Quantity = *input.Quantity
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, models.NewValidationError("price", "must not be negative")
		}
		item.Price = *input.Price
	}

	if err := s.store.UpdateInventoryItem(item); err != nil {
		return nil, err
	}
	s.cache.Delete(cache.KeyAllInventory)
	return item, nil
}

// DeleteInventoryItem deletes a part and invalidates the cached listing
func (s *Service) DeleteInventoryItem(id int64) error {
	if err := s.store.DeleteInventoryItem(id); err != nil {
		return err
	}
	s.cache.Delete(cache.KeyAllInventory)

	s.log.Infof("Inventory item deleted: %d", id)
	return nil
}
