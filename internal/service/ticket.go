package service

import (
	"time"

	"github.com/kmandell/mechanic-shop/internal/models"
)

// CreateTicketInput carries the fields accepted when opening a ticket.
type CreateTicketInput struct {
	CustomerID  int64  `json:"customer_id"`
	VehicleInfo string `json:"vehicle_info"`
	Description string `json:"description"`
}

// UpdateTicketInput carries optional fields for a ticket update.
type UpdateTicketInput struct {
	VehicleInfo *string `json:"vehicle_info"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// CreateTicket opens a new service ticket for an existing customer
func (s *Service) CreateTicket(input CreateTicketInput) (*models.ServiceTicket, error) {
	if input.CustomerID == 0 {
		return nil, models.NewValidationError("customer_id", "is required")
	}
	if input.VehicleInfo == "" {
		return nil, models.NewValidationError("vehicle_info", "is required")
	}
	if input.Description == "" {
		return nil, models.NewValidationError("description", "is required")
	}
	if _, err := s.store.FindCustomerByID(input.CustomerID); err != nil {
		return nil, models.NewValidationError("customer_id", "customer not found")
	}

	ticket := &models.ServiceTicket{
		CustomerID:  input.CustomerID,
		VehicleInfo: input.VehicleInfo,
		Description: input.Description,
		Status:      models.StatusPending,
	}
	if err := s.store.CreateTicket(ticket); err != nil {
		return nil, err
	}

	s.log.Infof("Service ticket %d created for customer %d", ticket.ID, ticket.CustomerID)
	return ticket, nil
}

// GetTicket retrieves a service ticket by id
func (s *Service) GetTicket(id int64) (*models.ServiceTicket, error) {
	return s.store.FindTicketByID(id)
}

// ListTickets retrieves all service tickets
func (s *Service) ListTickets() ([]*models.ServiceTicket, error) {
	return s.store.ListTickets()
}

// UpdateTicket applies a partial update. Moving a ticket to completed stamps
// completed_at and notifies the owning customer; a mail failure is logged
// and does not fail the update.
func (s *Service) UpdateTicket(id int64, input UpdateTicketInput) (*models.ServiceTicket, error) {
	ticket, err := s.store.FindTicketByID(id)
	if err != nil {
		return nil, err
	}

	if input.VehicleInfo != nil {
		ticket.VehicleInfo = *input.VehicleInfo
	}
	if input.Description != nil {
		ticket.Description = *input.Description
	}

	completed := false
	if input.Status != nil {
		if !models.ValidStatus(*input.Status) {
			return nil, models.NewValidationError("status", "must be pending, in_progress or completed")
		}
		if *input.Status == models.StatusCompleted && ticket.Status != models.StatusCompleted {
			now := time.Now()
			ticket.CompletedAt = &now
			completed = true
		}
		ticket.Status = *input.Status
	}

	if err := s.store.UpdateTicket(ticket); err != nil {
		return nil, err
	}

	if completed {
		s.notifyCompleted(ticket)
	}
	return ticket, nil
}

func (s *Service) notifyCompleted(ticket *models.ServiceTicket) {
	customer, err := s.store.FindCustomerByID(ticket.CustomerID)
	if err != nil {
		s.log.Errorf("Failed to look up customer %d for completion notice: %v", ticket.CustomerID, err)
		return
	}
	if err := s.mailer.SendTicketCompleted(customer.Email, customer.FirstName, ticket); err != nil {
		s.log.Errorf("Failed to send completion notice for ticket %d: %v", ticket.ID, err)
	}
}

// DeleteTicket deletes a service ticket by id
func (s *Service) DeleteTicket(id int64) error {
	if err := s.store.DeleteTicket(id); err != nil {
		return err
	}
	s.log.Infof("Service ticket deleted: %d", id)
	return nil
}

// AssignMechanic assigns a mechanic to a service ticket
func (s *Service) AssignMechanic(ticketID, mechanicID int64) (*models.ServiceTicket, error) {
	ticket, err := s.store.FindTicketByID(ticketID)
	if err != nil {
		return nil, err
	}
	mechanic, err := s.store.FindMechanicByID(mechanicID)
	if err != nil {
		return nil, err
	}

	if ticket.MechanicID != nil && *ticket.MechanicID == mechanic.ID {
		return nil, models.ErrAlreadyAssigned
	}

	ticket.MechanicID = &mechanic.ID
	if ticket.Status == models.StatusPending {
		ticket.Status = models.StatusInProgress
	}
	if err := s.store.UpdateTicket(ticket); err != nil {
		return nil, err
	}

	s.log.Infof("Mechanic %d assigned to service ticket %d", mechanicID, ticketID)
	return ticket, nil
}

// RemoveMechanic removes the assigned mechanic from a service ticket
func (s *Service) RemoveMechanic(ticketID, mechanicID int64) (*models.ServiceTicket, error) {
	ticket, err := s.store.FindTicketByID(ticketID)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.FindMechanicByID(mechanicID); err != nil {
		return nil, err
	}

	if ticket.MechanicID == nil || *ticket.MechanicID != mechanicID {
		return nil, models.ErrNotAssigned
	}

	ticket.MechanicID = nil
	if err := s.store.UpdateTicket(ticket); err != nil {
		return nil, err
	}

	s.log.Infof("Mechanic %d removed from service ticket %d", mechanicID, ticketID)
	return ticket, nil
}

// AddPart attaches an inventory item to a service ticket
func (s *Service) AddPart(ticketID, itemID int64) (*models.ServiceTicket, error) {
	ticket, err := s.store.FindTicketByID(ticketID)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.FindInventoryItemByID(itemID); err != nil {
		return nil, err
	}
	if err := s.store.AddTicketPart(ticketID, itemID); err != nil {
		return nil, err
	}
	return ticket, nil
}

// RemovePart detaches an inventory item from a service ticket
func (s *Service) RemovePart(ticketID, itemID int64) (*models.ServiceTicket, error) {
	ticket, err := s.store.FindTicketByID(ticketID)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.FindInventoryItemByID(itemID); err != nil {
		return nil, err
	}
	if err := s.store.RemoveTicketPart(ticketID, itemID); err != nil {
		return nil, err
	}
	return ticket, nil
}

// TicketParts retrieves the inventory items attached to a ticket
func (s *Service) TicketParts(ticketID int64) ([]*models.InventoryItem, error) {
	if _, err := s.store.FindTicketByID(ticketID); err != nil {
		return nil, err
	}
	return s.store.ListTicketParts(ticketID)
}

// SendOverdueReminders emails customers whose non-completed tickets are
// older than the configured threshold. Returns the number of reminders sent.
func (s *Service) SendOverdueReminders() (int, error) {
	cutoff := time.Now().Add(-s.config.OverdueAfter)
	tickets, err := s.store.ListOverdueTickets(cutoff)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, ticket := range tickets {
		customer, err := s.store.FindCustomerByID(ticket.CustomerID)
		if err != nil {
			s.log.Errorf("Failed to look up customer %d for overdue reminder: %v", ticket.CustomerID, err)
			continue
		}
		if err := s.mailer.SendOverdueReminder(customer.Email, customer.FirstName, ticket); err != nil {
			s.log.Errorf("Failed to send overdue reminder for ticket %d: %v", ticket.ID, err)
			continue
		}
		sent++
	}

	if sent > 0 {
		s.log.Infof("Sent %d overdue ticket reminders", sent)
	}
	return sent, nil
}
