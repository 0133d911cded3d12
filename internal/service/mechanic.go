package service

import (
	"github.com/kmandell/mechanic-shop/internal/cache"
	"github.com/kmandell/mechanic-shop/internal/models"
)

// CreateMechanicInput carries the fields accepted when creating a mechanic.
type CreateMechanicInput struct {
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Phone  string  `json:"phone"`
	Salary float64 `json:"salary"`
}

// UpdateMechanicInput carries optional fields for a mechanic update.
type UpdateMechanicInput struct {
	Name   *string  `json:"name"`
	Email  *string  `json:"email"`
	Phone  *string  `json:"phone"`
	Salary *float64 `json:"salary"`
}

// CreateMechanic creates a mechanic and invalidates the cached listing
// before returning, so no stale list is served after the write.
func (s *Service) CreateMechanic(input CreateMechanicInput) (*models.Mechanic, error) {
	if input.Name == "" {
		return nil, models.NewValidationError("name", "is required")
	}
	if input.Email == "" {
		return nil, models.NewValidationError("email", "is required")
	}
	if !validEmail(input.Email) {
		return nil, models.NewValidationError("email", "invalid email format")
	}

	mechanic := &models.Mechanic{
		Name:   input.Name,
		Email:  input.Email,
		Phone:  input.Phone,
		Salary: input.Salary,
	}
	if err := s.store.CreateMechanic(mechanic); err != nil {
		return nil, err
	}
	s.cache.Delete(cache.KeyAllMechanics)

	s.log.Infof("Mechanic created: %s", mechanic.Email)
	return mechanic, nil
}

// GetMechanic retrieves a mechanic by id
func (s *Service) GetMechanic(id int64) (*models.Mechanic, error) {
	return s.store.FindMechanicByID(id)
}

// ListMechanics retrieves all mechanics
func (s *Service) ListMechanics() ([]*models.Mechanic, error) {
	return s.store.ListMechanics()
}

// UpdateMechanic applies a partial update and invalidates the cached listing
func (s *Service) UpdateMechanic(id int64, input UpdateMechanicInput) (*models.Mechanic, error) {
	mechanic, err := s.store.FindMechanicByID(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		mechanic.Name = *input.Name
	}
	if input.Email != nil {
		if !validEmail(*input.Email) {
			return nil, models.NewValidationError("email", "invalid email format")
		}
		mechanic.Email = *input.Email
	}
	if input.Phone != nil {
		mechanic.Phone = *input.Phone
	}
	if input.Salary != nil {
		mechanic.Salary = *input.Salary
	}

	if err := s.store.UpdateMechanic(mechanic); err != nil {
		return nil, err
	}
	s.cache.Delete(cache.KeyAllMechanics)
	return mechanic, nil
}

// DeleteMechanic deletes a mechanic and invalidates the cached listing
func (s *Service) DeleteMechanic(id int64) error {
	if err := s.store.DeleteMechanic(id); err != nil {
		return err
	}
	s.cache.Delete(cache.KeyAllMechanics)

	s.log.Infof("Mechanic deleted: %d", id)
	return nil
}
