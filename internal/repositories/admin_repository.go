package repositories

import (
	"errors"

	"catalog/internal/models"
)

// ErrAdminNotFound is returned when no admin matches a lookup.
var ErrAdminNotFound = errors.New("admin not found")

// AdminRepository defines the interface for admin account storage.
type AdminRepository interface {
	Create(admin *models.Admin) error
	GetByUsername(username string) (*models.Admin, error)
}
