package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/kmandell/mechanic-shop/internal/models"
)

// CreateMechanic creates a new mechanic in the database
func (r *Repository) CreateMechanic(mechanic *models.Mechanic) error {
	query := `
		INSERT INTO mechanics (name, email, phone, salary, created_at, updated_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, mechanic.Name, mechanic.Email, mechanic.Phone, mechanic.Salary).
		Scan(&mechanic.ID, &mechanic.CreatedAt, &mechanic.UpdatedAt)
	if isUniqueViolation(err) {
		return models.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("failed to create mechanic: %w", err)
	}
	return nil
}

// FindMechanicByID retrieves a mechanic by id
func (r *Repository) FindMechanicByID(id int64) (*models.Mechanic, error) {
	mechanic := &models.Mechanic{}
	query := `
		SELECT id, name, email, phone, salary, created_at, updated_at
		FROM mechanics
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&mechanic.ID, &mechanic.Name, &mechanic.Email, &mechanic.Phone,
			&mechanic.Salary, &mechanic.CreatedAt, &mechanic.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find mechanic: %w", err)
	}
	return mechanic, nil
}

// ListMechanics retrieves all mechanics ordered by id
func (r *Repository) ListMechanics() ([]*models.Mechanic, error) {
	query := `
		SELECT id, name, email, phone, salary, created_at, updated_at
		FROM mechanics
		ORDER BY id`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list mechanics: %w", err)
	}
	defer rows.Close()

	mechanics := []*models.Mechanic{}
	for rows.Next() {
		mechanic := &models.Mechanic{}
		if err := rows.Scan(&mechanic.ID, &mechanic.Name, &mechanic.Email, &mechanic.Phone,
			&mechanic.Salary, &mechanic.CreatedAt, &mechanic.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan mechanic: %w", err)
		}
		mechanics = append(mechanics, mechanic)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list mechanics: %w", err)
	}
	return mechanics, nil
}

// UpdateMechanic updates an existing mechanic
func (r *Repository) UpdateMechanic(mechanic *models.Mechanic) error {
	query := `
		UPDATE mechanics
		SET name = $1, email = $2, phone = $3, salary = $4, updated_at = CURRENT_TIMESTAMP
		WHERE id = $5
		RETURNING updated_at`
	err := r.db.QueryRow(query, mechanic.Name, mechanic.Email, mechanic.Phone,
		mechanic.Salary, mechanic.ID).
		Scan(&mechanic.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrNotFound
	}
	if isUniqueViolation(err) {
		return models.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("failed to update mechanic: %w", err)
	}
	return nil
}

// DeleteMechanic deletes a mechanic by id
func (r *Repository) DeleteMechanic(id int64) error {
	res, err := r.db.Exec(`DELETE FROM mechanics WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete mechanic: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete mechanic: %w", err)
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}
