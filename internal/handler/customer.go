package handler

import (
	"net/http"

	"github.com/kmandell/mechanic-shop/internal/middleware"
	"github.com/kmandell/mechanic-shop/internal/models"
	"github.com/kmandell/mechanic-shop/internal/service"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string           `json:"token"`
	Customer *models.Customer `json:"customer"`
}

// CreateCustomer handles customer registration
func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var input service.CreateCustomerInput
	if err := decodeJSON(r, &input); err != nil {
		h.writeError(w, err)
		return
	}

	customer, err := h.svc.RegisterCustomer(input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, customer)
}

// Login handles customer authentication and returns a bearer token
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	token, customer, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, loginResponse{Token: token, Customer: customer})
}

// ListCustomers returns all customers
func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.svc.ListCustomers()
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"customers": customers,
		"count":     len(customers),
	})
}

// GetCustomer returns a single customer by id
func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := h.svc.GetCustomer(pathID(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, customer)
}

// MyTickets returns the service tickets owned by the authenticated customer
func (h *Handler) MyTickets(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.CustomerFromContext(r.Context())
	if !ok {
		h.writeError(w, models.ErrUnauthorized)
		return
	}

	tickets, err := h.svc.MyTickets(current.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"tickets": tickets,
		"count":   len(tickets),
	})
}

// UpdateCustomer updates the authenticated customer's own record
func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.CustomerFromContext(r.Context())
	if !ok {
		h.writeError(w, models.ErrUnauthorized)
		return
	}
	id := pathID(r, "id")
	if current.ID != id {
		h.writeError(w, models.ErrForbidden)
		return
	}

	var input service.UpdateCustomerInput
	if err := decodeJSON(r, &input); err != nil {
		h.writeError(w, err)
		return
	}

	customer, err := h.svc.UpdateCustomer(id, input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, customer)
}

// DeleteCustomer deletes the authenticated customer's own record
func (h *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.CustomerFromContext(r.Context())
	if !ok {
		h.writeError(w, models.ErrUnauthorized)
		return
	}
	id := pathID(r, "id")
	if current.ID != id {
		h.writeError(w, models.ErrForbidden)
		return
	}

	if err := h.svc.DeleteCustomer(id); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "customer deleted successfully"})
}
