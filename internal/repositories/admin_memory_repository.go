package repositories

import (
	"fmt"
	"sync"
	"time"

	"catalog/internal/models"

	"github.com/google/uuid"
)

// MemoryAdminRepository keeps admin accounts in memory. It backs the file
// and memory product stores, where there is no database to hold them.
type MemoryAdminRepository struct {
	admins map[string]models.Admin
	mu     sync.RWMutex
}

// NewMemoryAdminRepository creates a new instance of MemoryAdminRepository.
func NewMemoryAdminRepository() *MemoryAdminRepository {
	return &MemoryAdminRepository{
		admins: make(map[string]models.Admin),
	}
}

// Create adds a new admin.
func (r *MemoryAdminRepository) Create(admin *models.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.admins[admin.Username]; ok {
		return fmt.Errorf("admin %s already exists", admin.Username)
	}
	if admin.ID == "" {
		admin.ID = uuid.New().String()
	}
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = time.Now()
	}
	r.admins[admin.Username] = *admin
	return nil
}

// GetByUsername returns an admin by username.
func (r *MemoryAdminRepository) GetByUsername(username string) (*models.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	admin, ok := r.admins[username]
	if !ok {
		return nil, fmt.Errorf("admin with username %s: %w", username, ErrAdminNotFound)
	}
	return &admin, nil
}
