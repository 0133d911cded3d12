package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/kmandell/mechanic-shop/internal/models"
)

// CreateInventoryItem creates a new inventory item in the database
func (r *Repository) CreateInventoryItem(item *models.InventoryItem) error {
	query := `
		INSERT INTO inventory (name, description, quantity, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, item.Name, item.Description, item.Quantity, item.Price).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create inventory item: %w", err)
	}
	return nil
}

// FindInventoryItemByID retrieves an inventory item by id
func (r *Repository) FindInventoryItemByID(id int64) (*models.InventoryItem, error) {
	item := &models.InventoryItem{}
	query := `
		SELECT id, name, description, quantity, price, created_at, updated_at
		FROM inventory
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&item.ID, &item.Name, &item.Description, &item.Quantity,
			&item.Price, &item.CreatedAt, &item.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find inventory item: %w", err)
	}
	return item, nil
}

// ListInventoryItems retrieves all inventory items ordered by id
func (r *Repository) ListInventoryItems() ([]*models.InventoryItem, error) {
	query := `
		SELECT id, name, description, quantity, price, created_at, updated_at
		FROM inventory
		ORDER BY id`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	defer rows.Close()

	items := []*models.InventoryItem{}
	for rows.Next() {
		item := &models.InventoryItem{}
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Quantity,
			&item.Price, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return items, nil
}

// UpdateInventoryItem updates an existing inventory item
func (r *Repository) UpdateInventoryItem(item *models.InventoryItem) error {
	query := `
		UPDATE inventory
		SET name = $1, description = $2, quantity = $3, price = $4, updated_at = CURRENT_TIMESTAMP
		WHERE id = $5
		RETURNING updated_at`
	err := r.db.QueryRow(query, item.Name, item.Description, item.Quantity, item.Price, item.ID).
		Scan(&item.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update inventory item: %w", err)
	}
	return nil
}

// DeleteInventoryItem deletes an inventory item by id
func (r *Repository) DeleteInventoryItem(id int64) error {
	res, err := r.db.Exec(`DELETE FROM inventory WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}
