package models

import "time"

// Ticket statuses
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// ServiceTicket represents a vehicle service request owned by a customer.
// MechanicID is nil until a mechanic is assigned.
type ServiceTicket struct {
	ID          int64      `json:"id"`
	CustomerID  int64      `json:"customer_id"`
	MechanicID  *int64     `json:"mechanic_id"`
	VehicleInfo string     `json:"vehicle_info"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// ValidStatus reports whether s is a known ticket status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}
