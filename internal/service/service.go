// Package service implements the business logic for the mechanic shop API.
package service

import (
	"regexp"
	"time"

	"github.com/kmandell/mechanic-shop/internal/auth"
	"github.com/kmandell/mechanic-shop/internal/cache"
	"github.com/kmandell/mechanic-shop/internal/config"
	"github.com/kmandell/mechanic-shop/internal/models"
	"github.com/sirupsen/logrus"
)

// CustomerStore persists customers.
type CustomerStore interface {
	CreateCustomer(customer *models.Customer) error
	FindCustomerByID(id int64) (*models.Customer, error)
	FindCustomerByEmail(email string) (*models.Customer, error)
	ListCustomers() ([]*models.Customer, error)
	UpdateCustomer(customer *models.Customer) error
	DeleteCustomer(id int64) error
}

// MechanicStore persists mechanics.
type MechanicStore interface {
	CreateMechanic(mechanic *models.Mechanic) error
	FindMechanicByID(id int64) (*models.Mechanic, error)
	ListMechanics() ([]*models.Mechanic, error)
	UpdateMechanic(mechanic *models.Mechanic) error
	DeleteMechanic(id int64) error
}

// TicketStore persists service tickets and their parts.
type TicketStore interface {
	CreateTicket(ticket *models.ServiceTicket) error
	FindTicketByID(id int64) (*models.ServiceTicket, error)
	ListTickets() ([]*models.ServiceTicket, error)
	ListTicketsByCustomer(customerID int64) ([]*models.ServiceTicket, error)
	ListOverdueTickets(before time.Time) ([]*models.ServiceTicket, error)
	UpdateTicket(ticket *models.ServiceTicket) error
	DeleteTicket(id int64) error
	AddTicketPart(ticketID, itemID int64) error
	RemoveTicketPart(ticketID, itemID int64) error
	ListTicketParts(ticketID int64) ([]*models.InventoryItem, error)
}

// InventoryStore persists inventory items.
type InventoryStore interface {
	CreateInventoryItem(item *models.InventoryItem) error
	FindInventoryItemByID(id int64) (*models.InventoryItem, error)
	ListInventoryItems() ([]*models.InventoryItem, error)
	UpdateInventoryItem(item *models.InventoryItem) error
	DeleteInventoryItem(id int64) error
}

// Store combines all persistence operations the service needs.
type Store interface {
	CustomerStore
	MechanicStore
	TicketStore
	InventoryStore
}

// Mailer sends customer notifications. Failures are logged, never returned
// to the caller of a request.
type Mailer interface {
	SendTicketCompleted(to, name string, ticket *models.ServiceTicket) error
	SendOverdueReminder(to, name string, ticket *models.ServiceTicket) error
}

// Service handles business logic
type Service struct {
	store  Store
	tokens *auth.TokenService
	cache  *cache.Store
	mailer Mailer
	log    *logrus.Logger
	config *config.Config
}

// NewService initializes a new service
func NewService(store Store, tokens *auth.TokenService, cacheStore *cache.Store, mailer Mailer, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{
		store:  store,
		tokens: tokens,
		cache:  cacheStore,
		mailer: mailer,
		log:    log,
		config: cfg,
	}
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
var nonDigits = regexp.MustCompile(`\D`)

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// validPhone accepts 10 or 11 digit phone numbers, ignoring separators.
func validPhone(phone string) bool {
	digits := nonDigits.ReplaceAllString(phone, "")
	return len(digits) == 10 || len(digits) == 11
}
