package repositories_test

import (
	"fmt"
	"testing"

	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminRepositories(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := repositories.OpenDatabase("sqlite", dsn)
	require.NoError(t, err)

	repos := map[string]repositories.AdminRepository{
		"memory": repositories.NewMemoryAdminRepository(),
		"gorm":   repositories.NewGORMAdminRepository(db),
	}
	for name, repo := range repos {
		t.Run(name, func(t *testing.T) {
			admin := &models.Admin{Username: "root", PasswordHash: "hash"}
			require.NoError(t, repo.Create(admin))
			assert.NotEmpty(t, admin.ID)

			got, err := repo.GetByUsername("root")
			require.NoError(t, err)
			assert.Equal(t, admin.ID, got.ID)
			assert.Equal(t, "hash", got.PasswordHash)

			assert.Error(t, repo.Create(&models.Admin{Username: "root", PasswordHash: "other"}))

			_, err = repo.GetByUsername("nobody")
			assert.ErrorIs(t, err, repositories.ErrAdminNotFound)
		})
	}
}

func TestOpenDatabase_UnknownDriver(t *testing.T) {
	_, err := repositories.OpenDatabase("mongo", "")
	assert.Error(t, err)
}
