package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/kmandell/mechanic-shop/internal/middleware"
	"github.com/kmandell/mechanic-shop/internal/ratelimit"
)

// Router builds the route table. Every route gets the default rate limits
// unless a stricter per-route override replaces them; protected routes are
// additionally gated by requireAuth.
func (h *Handler) Router(requireAuth middleware.Middleware, rl *ratelimit.Limiter) (*mux.Router, error) {
	defaults, err := rl.Limit(ratelimit.DefaultRates...)
	if err != nil {
		return nil, err
	}
	createCustomer, err := rl.Limit("5-M", "1000-H")
	if err != nil {
		return nil, err
	}
	createMechanic, err := rl.Limit("10-M", "1000-H")
	if err != nil {
		return nil, err
	}
	assignMechanic, err := rl.Limit("20-M", "1000-H")
	if err != nil {
		return nil, err
	}
	createInventory, err := rl.Limit("50-M", "1000-H")
	if err != nil {
		return nil, err
	}

	r := mux.NewRouter()
	r.Use(mux.MiddlewareFunc(middleware.Recover(h.log)))
	r.Use(mux.MiddlewareFunc(middleware.RequestLogger(h.log)))

	// Customers
	r.Handle("/customers/", createCustomer(http.HandlerFunc(h.CreateCustomer))).Methods(http.MethodPost)
	r.Handle("/customers/login", defaults(http.HandlerFunc(h.Login))).Methods(http.MethodPost)
	r.Handle("/customers/my-tickets", defaults(requireAuth(http.HandlerFunc(h.MyTickets)))).Methods(http.MethodGet)
	r.Handle("/customers/", defaults(http.HandlerFunc(h.ListCustomers))).Methods(http.MethodGet)
	r.Handle("/customers/{id:[0-9]+}", defaults(http.HandlerFunc(h.GetCustomer))).Methods(http.MethodGet)
	r.Handle("/customers/{id:[0-9]+}", defaults(requireAuth(http.HandlerFunc(h.UpdateCustomer)))).Methods(http.MethodPut)
	r.Handle("/customers/{id:[0-9]+}", defaults(requireAuth(http.HandlerFunc(h.DeleteCustomer)))).Methods(http.MethodDelete)

	// Mechanics
	r.Handle("/mechanics/", createMechanic(http.HandlerFunc(h.CreateMechanic))).Methods(http.MethodPost)
	r.Handle("/mechanics/", defaults(http.HandlerFunc(h.ListMechanics))).Methods(http.MethodGet)
	r.Handle("/mechanics/{id:[0-9]+}", defaults(http.HandlerFunc(h.GetMechanic))).Methods(http.MethodGet)
	r.Handle("/mechanics/{id:[0-9]+}", defaults(http.HandlerFunc(h.UpdateMechanic))).Methods(http.MethodPut)
	r.Handle("/mechanics/{id:[0-9]+}", defaults(http.HandlerFunc(h.DeleteMechanic))).Methods(http.MethodDelete)

	// Service tickets
	r.Handle("/service-tickets/", defaults(http.HandlerFunc(h.CreateTicket))).Methods(http.MethodPost)
	r.Handle("/service-tickets/", defaults(http.HandlerFunc(h.ListTickets))).Methods(http.MethodGet)
	r.Handle("/service-tickets/{id:[0-9]+}", defaults(http.HandlerFunc(h.GetTicket))).Methods(http.MethodGet)
	r.Handle("/service-tickets/{id:[0-9]+}", defaults(http.HandlerFunc(h.UpdateTicket))).Methods(http.MethodPut)
	r.Handle("/service-tickets/{id:[0-9]+}", defaults(http.HandlerFunc(h.DeleteTicket))).Methods(http.MethodDelete)
	r.Handle("/service-tickets/{id:[0-9]+}/assign-mechanic/{mechanic_id:[0-9]+}",
		assignMechanic(http.HandlerFunc(h.AssignMechanic))).Methods(http.MethodPut)
	r.Handle("/service-tickets/{id:[0-9]+}/remove-mechanic/{mechanic_id:[0-9]+}",
		defaults(http.HandlerFunc(h.RemoveMechanic))).Methods(http.MethodPut)
	r.Handle("/service-tickets/{id:[0-9]+}/parts/{item_id:[0-9]+}",
		defaults(http.HandlerFunc(h.AddPart))).Methods(http.MethodPost)
	r.Handle("/service-tickets/{id:[0-9]+}/parts/{item_id:[0-9]+}",
		defaults(http.HandlerFunc(h.RemovePart))).Methods(http.MethodDelete)

	// Inventory
	r.Handle("/inventory/", createInventory(http.HandlerFunc(h.CreateInventoryItem))).Methods(http.MethodPost)
	r.Handle("/inventory/", defaults(http.HandlerFunc(h.ListInventory))).Methods(http.MethodGet)
	r.Handle("/inventory/{id:[0-9]+}", defaults(http.HandlerFunc(h.GetInventoryItem))).Methods(http.MethodGet)
	r.Handle("/inventory/{id:[0-9]+}", defaults(http.HandlerFunc(h.UpdateInventoryItem))).Methods(http.MethodPut)
	r.Handle("/inventory/{id:[0-9]+}", defaults(http.HandlerFunc(h.DeleteInventoryItem))).Methods(http.MethodDelete)

	return r, nil
}
