package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/kmandell/mechanic-shop/internal/models"
)

// CreateCustomer creates a new customer in the database
func (r *Repository) CreateCustomer(customer *models.Customer) error {
	query := `
		INSERT INTO customers (first_name, last_name, email, phone_number, address, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, customer.FirstName, customer.LastName, customer.Email,
		customer.PhoneNumber, customer.Address, customer.PasswordHash).
		Scan(&customer.ID, &customer.CreatedAt, &customer.UpdatedAt)
	if isUniqueViolation(err) {
		return models.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

// FindCustomerByID retrieves a customer by id
func (r *Repository) FindCustomerByID(id int64) (*models.Customer, error) {
	customer := &models.Customer{}
	query := `
		SELECT id, first_name, last_name, email, phone_number, address, password_hash, created_at, updated_at
		FROM customers
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&customer.ID, &customer.FirstName, &customer.LastName, &customer.Email,
			&customer.PhoneNumber, &customer.Address, &customer.PasswordHash,
			&customer.CreatedAt, &customer.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	return customer, nil
}

// FindCustomerByEmail retrieves a customer by email
func (r *Repository) FindCustomerByEmail(email string) (*models.Customer, error) {
	customer := &models.Customer{}
	query := `
		SELECT id, first_name, last_name, email, phone_number, address, password_hash, created_at, updated_at
		FROM customers
		WHERE email = $1`
	err := r.db.QueryRow(query, email).
		Scan(&customer.ID, &customer.FirstName, &customer.LastName, &customer.Email,
			&customer.PhoneNumber, &customer.Address, &customer.PasswordHash,
			&customer.CreatedAt, &customer.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	return customer, nil
}

// ListCustomers retrieves all customers ordered by id
func (r *Repository) ListCustomers() ([]*models.Customer, error) {
	query := `
		SELECT id, first_name, last_name, email, phone_number, address, password_hash, created_at, updated_at
		FROM customers
		ORDER BY id`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	customers := []*models.Customer{}
	for rows.Next() {
		customer := &models.Customer{}
		if err := rows.Scan(&customer.ID, &customer.FirstName, &customer.LastName, &customer.Email,
			&customer.PhoneNumber, &customer.Address, &customer.PasswordHash,
			&customer.CreatedAt, &customer.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

// UpdateCustomer updates an existing customer
func (r *Repository) UpdateCustomer(customer *models.Customer) error {
	query := `
		UPDATE customers
		SET first_name = $1, last_name = $2, email = $3, phone_number = $4, address = $5,
		    password_hash = $6, updated_at = CURRENT_TIMESTAMP
		WHERE id = $7
		RETURNING updated_at`
	err := r.db.QueryRow(query, customer.FirstName, customer.LastName, customer.Email,
		customer.PhoneNumber, customer.Address, customer.PasswordHash, customer.ID).
		Scan(&customer.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrNotFound
	}
	if isUniqueViolation(err) {
		return models.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	return nil
}

// DeleteCustomer deletes a customer by id
func (r *Repository) DeleteCustomer(id int64) error {
	res, err := r.db.Exec(`DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}
