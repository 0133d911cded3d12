package handler

import (
	"net/http"

	"github.com/kmandell/mechanic-shop/internal/models"
	"github.com/kmandell/mechanic-shop/internal/service"
)

type ticketResponse struct {
	*models.ServiceTicket
	Parts []*models.InventoryItem `json:"parts"`
}

// CreateTicket opens a new service ticket
func (h *Handler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	var input service.CreateTicketInput
	if err := decodeJSON(r, &input); err != nil {
		h.writeError(w, err)
		return
	}

	ticket, err := h.svc.CreateTicket(input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, ticket)
}

// ListTickets returns all service tickets
func (h *Handler) ListTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.svc.ListTickets()
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"tickets": tickets,
		"count":   len(tickets),
	})
}

// GetTicket returns a single service ticket with its parts
func (h *Handler) GetTicket(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	ticket, err := h.svc.GetTicket(id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	parts, err := h.svc.TicketParts(id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ticketResponse{ServiceTicket: ticket, Parts: parts})
}

// UpdateTicket updates a service ticket by id
func (h *Handler) UpdateTicket(w http.ResponseWriter, r *http.Request) {
	var input service.UpdateTicketInput
	if err := decodeJSON(r, &input); err != nil {
		h.writeError(w, err)
		return
	}

	ticket, err := h.svc.UpdateTicket(pathID(r, "id"), input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ticket)
}

// DeleteTicket deletes a service ticket by id
func (h *Handler) DeleteTicket(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteTicket(pathID(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "service ticket deleted successfully"})
}

// AssignMechanic assigns a mechanic to a service ticket
func (h *Handler) AssignMechanic(w http.ResponseWriter, r *http.Request) {
	ticket, err := h.svc.AssignMechanic(pathID(r, "id"), pathID(r, "mechanic_id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":        "mechanic assigned to service ticket",
		"service_ticket": ticket,
	})
}

// RemoveMechanic removes the assigned mechanic from a service ticket
func (h *Handler) RemoveMechanic(w http.ResponseWriter, r *http.Request) {
	ticket, err := h.svc.RemoveMechanic(pathID(r, "id"), pathID(r, "mechanic_id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":        "mechanic removed from service ticket",
		"service_ticket": ticket,
	})
}

// AddPart attaches an inventory item to a service ticket
func (h *Handler) AddPart(w http.ResponseWriter, r *http.Request) {
	ticket, err := h.svc.AddPart(pathID(r, "id"), pathID(r, "item_id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":        "inventory item added to service ticket",
		"service_ticket": ticket,
	})
}

// RemovePart detaches an inventory item from a service ticket
func (h *Handler) RemovePart(w http.ResponseWriter, r *http.Request) {
	ticket, err := h.svc.RemovePart(pathID(r, "id"), pathID(r, "item_id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":        "inventory item removed from service ticket",
		"service_ticket": ticket,
	})
}
