package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kmandell/mechanic-shop/internal/models"
)

const ticketColumns = `id, customer_id, mechanic_id, vehicle_info, description, status, created_at, updated_at, completed_at`

func scanTicket(row interface{ Scan(...interface{}) error }) (*models.ServiceTicket, error) {
	ticket := &models.ServiceTicket{}
	err := row.Scan(&ticket.ID, &ticket.CustomerID, &ticket.MechanicID, &ticket.VehicleInfo,
		&ticket.Description, &ticket.Status, &ticket.CreatedAt, &ticket.UpdatedAt, &ticket.CompletedAt)
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

// CreateTicket creates a new service ticket in the database
func (r *Repository) CreateTicket(ticket *models.ServiceTicket) error {
	query := `
		INSERT INTO service_tickets (customer_id, mechanic_id, vehicle_info, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, ticket.CustomerID, ticket.MechanicID, ticket.VehicleInfo,
		ticket.Description, ticket.Status).
		Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create service ticket: %w", err)
	}
	return nil
}

// FindTicketByID retrieves a service ticket by id
func (r *Repository) FindTicketByID(id int64) (*models.ServiceTicket, error) {
	query := `SELECT ` + ticketColumns + ` FROM service_tickets WHERE id = $1`
	ticket, err := scanTicket(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find service ticket: %w", err)
	}
	return ticket, nil
}

// ListTickets retrieves all service tickets ordered by id
func (r *Repository) ListTickets() ([]*models.ServiceTicket, error) {
	query := `SELECT ` + ticketColumns + ` FROM service_tickets ORDER BY id`
	return r.queryTickets(query)
}

// ListTicketsByCustomer retrieves all service tickets owned by a customer
func (r *Repository) ListTicketsByCustomer(customerID int64) ([]*models.ServiceTicket, error) {
	query := `SELECT ` + ticketColumns + ` FROM service_tickets WHERE customer_id = $1 ORDER BY id`
	return r.queryTickets(query, customerID)
}

// ListOverdueTickets retrieves non-completed tickets created before the
// given cutoff.
func (r *Repository) ListOverdueTickets(before time.Time) ([]*models.ServiceTicket, error) {
	query := `SELECT ` + ticketColumns + ` FROM service_tickets WHERE status <> $1 AND created_at < $2 ORDER BY id`
	return r.queryTickets(query, models.StatusCompleted, before)
}

func (r *Repository) queryTickets(query string, args ...interface{}) ([]*models.ServiceTicket, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list service tickets: %w", err)
	}
	defer rows.Close()

	tickets := []*models.ServiceTicket{}
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service ticket: %w", err)
		}
		tickets = append(tickets, ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list service tickets: %w", err)
	}
	return tickets, nil
}

// UpdateTicket updates an existing service ticket
func (r *Repository) UpdateTicket(ticket *models.ServiceTicket) error {
	query := `
		UPDATE service_tickets
		SET customer_id = $1, mechanic_id = $2, vehicle_info = $3, description = $4,
		    status = $5, completed_at = $6, updated_at = CURRENT_TIMESTAMP
		WHERE id = $7
		RETURNING updated_at`
	err := r.db.QueryRow(query, ticket.CustomerID, ticket.MechanicID, ticket.VehicleInfo,
		ticket.Description, ticket.Status, ticket.CompletedAt, ticket.ID).
		Scan(&ticket.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update service ticket: %w", err)
	}
	return nil
}

// DeleteTicket deletes a service ticket by id
func (r *Repository) DeleteTicket(id int64) error {
	res, err := r.db.Exec(`DELETE FROM service_tickets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete service ticket: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete service ticket: %w", err)
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// AddTicketPart attaches an inventory item to a service ticket
func (r *Repository) AddTicketPart(ticketID, itemID int64) error {
	_, err := r.db.Exec(`INSERT INTO ticket_parts (ticket_id, item_id) VALUES ($1, $2)`, ticketID, itemID)
	if isUniqueViolation(err) {
		return models.ErrPartAlreadyAdded
	}
	if err != nil {
		return fmt.Errorf("failed to add part to ticket: %w", err)
	}
	return nil
}

// RemoveTicketPart detaches an inventory item from a service ticket
func (r *Repository) RemoveTicketPart(ticketID, itemID int64) error {
	res, err := r.db.Exec(`DELETE FROM ticket_parts WHERE ticket_id = $1 AND item_id = $2`, ticketID, itemID)
	if err != nil {
		return fmt.Errorf("failed to remove part from ticket: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to remove part from ticket: %w", err)
	}
	if affected == 0 {
		return models.ErrPartNotOnTicket
	}
	return nil
}

// ListTicketParts retrieves the inventory items attached to a ticket
func (r *Repository) ListTicketParts(ticketID int64) ([]*models.InventoryItem, error) {
	query := `
		SELECT i.id, i.name, i.description, i.quantity, i.price, i.created_at, i.updated_at
		FROM inventory i
		JOIN ticket_parts tp ON tp.item_id = i.id
		WHERE tp.ticket_id = $1
		ORDER BY i.id`
	rows, err := r.db.Query(query, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ticket parts: %w", err)
	}
	defer rows.Close()

	items := []*models.InventoryItem{}
	for rows.Next() {
		item := &models.InventoryItem{}
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Quantity,
			&item.Price, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ticket part: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list ticket parts: %w", err)
	}
	return items, nil
}
