package service

import (
	"errors"

	"github.com/kmandell/mechanic-shop/internal/auth"
	"github.com/kmandell/mechanic-shop/internal/models"
)

// CreateCustomerInput carries the fields accepted at registration.
type CreateCustomerInput struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	Password    string `json:"password"`
}

// UpdateCustomerInput carries optional fields for a customer update. Nil
// means leave unchanged.
type UpdateCustomerInput struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
	Password    *string `json:"password"`
}

// RegisterCustomer creates a new customer with a hashed password
func (s *Service) RegisterCustomer(input CreateCustomerInput) (*models.Customer, error) {
	if input.FirstName == "" {
		return nil, models.NewValidationError("first_name", "is required")
	}
	if input.LastName == "" {
		return nil, models.NewValidationError("last_name", "is required")
	}
	if input.Email == "" {
		return nil, models.NewValidationError("email", "is required")
	}
	if !validEmail(input.Email) {
		return nil, models.NewValidationError("email", "invalid email format")
	}
	if input.Password == "" {
		return nil, models.NewValidationError("password", "is required")
	}
	if input.PhoneNumber != "" && !validPhone(input.PhoneNumber) {
		return nil, models.NewValidationError("phone_number", "invalid phone number")
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	customer := &models.Customer{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PhoneNumber:  input.PhoneNumber,
		Address:      input.Address,
		PasswordHash: hash,
	}
	if err := s.store.CreateCustomer(customer); err != nil {
		return nil, err
	}

	s.log.Infof("Customer registered: %s", customer.Email)
	return customer, nil
}

// Login authenticates a customer and returns a bearer token. Unknown email
// and wrong password produce the same error and comparable timing.
func (s *Service) Login(email, password string) (string, *models.Customer, error) {
	if email == "" || password == "" {
		return "", nil, models.NewValidationError("email", "email and password required")
	}

	customer, err := s.store.FindCustomerByEmail(email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			auth.DummyCompare(password)
			return "", nil, models.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if customer.PasswordHash == "" || !auth.CheckPassword(customer.PasswordHash, password) {
		return "", nil, models.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(customer.ID, customer.Email)
	if err != nil {
		return "", nil, err
	}

	s.log.Infof("Customer logged in: %s", customer.Email)
	return token, customer, nil
}

// GetCustomer retrieves a customer by id
func (s *Service) GetCustomer(id int64) (*models.Customer, error) {
	return s.store.FindCustomerByID(id)
}

// ListCustomers retrieves all customers
func (s *Service) ListCustomers() ([]*models.Customer, error) {
	return s.store.ListCustomers()
}

// UpdateCustomer applies a partial update to a customer
func (s *Service) UpdateCustomer(id int64, input UpdateCustomerInput) (*models.Customer, error) {
	customer, err := s.store.FindCustomerByID(id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		customer.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		customer.LastName = *input.LastName
	}
	if input.Email != nil {
		if !validEmail(*input.Email) {
			return nil, models.NewValidationError("email", "invalid email format")
		}
		customer.Email = *input.Email
	}
	if input.PhoneNumber != nil {
		if *input.PhoneNumber != "" && !validPhone(*input.PhoneNumber) {
			return nil, models.NewValidationError("phone_number", "invalid phone number")
		}
		customer.PhoneNumber = *input.PhoneNumber
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}
	if input.Password != nil {
		if *input.Password == "" {
			return nil, models.NewValidationError("password", "must not be empty")
		}
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		customer.PasswordHash = hash
	}

	if err := s.store.UpdateCustomer(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer deletes a customer by id
func (s *Service) DeleteCustomer(id int64) error {
	if err := s.store.DeleteCustomer(id); err != nil {
		return err
	}
	s.log.Infof("Customer deleted: %d", id)
	return nil
}

// MyTickets retrieves the service tickets owned by a customer
func (s *Service) MyTickets(customerID int64) ([]*models.ServiceTicket, error) {
	return s.store.ListTicketsByCustomer(customerID)
}
