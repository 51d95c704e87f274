package services_test

import (
	"fmt"
	"os"
	"testing"
	"time"

	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/pkg/logger"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// MockAdminRepository is a mock implementation of repositories.AdminRepository
type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) Create(admin *models.Admin) error {
	args := m.Called(admin)
	return args.Error(0)
}

func (m *MockAdminRepository) GetByUsername(username string) (*models.Admin, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

// TestMain silences logging for the package tests.
func TestMain(m *testing.M) {
	logger.Init(logger.Testing)
	os.Exit(m.Run())
}

const testJWTSecret = "test_jwt_secret"

func TestAuthService_EnsureAdmin(t *testing.T) {
	mockRepo := new(MockAdminRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	// Creates a missing admin with a hashed password
	mockRepo.On("GetByUsername", "admin").Return(nil, fmt.Errorf("lookup: %w", repositories.ErrAdminNotFound)).Once()
	mockRepo.On("Create", mock.MatchedBy(func(a *models.Admin) bool {
		return a.Username == "admin" &&
			bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("s3cret")) == nil
	})).Return(nil).Once()

	require.NoError(t, authService.EnsureAdmin("admin", "s3cret"))
	mockRepo.AssertExpectations(t)

	// Leaves an existing admin alone
	mockRepo.On("GetByUsername", "admin").Return(&models.Admin{ID: "1", Username: "admin"}, nil).Once()
	require.NoError(t, authService.EnsureAdmin("admin", "other"))
	mockRepo.AssertNumberOfCalls(t, "Create", 1)

	// Surfaces storage failures
	mockRepo.On("GetByUsername", "broken").Return(nil, fmt.Errorf("database error")).Once()
	err := authService.EnsureAdmin("broken", "pw")
	assert.ErrorContains(t, err, "database error")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockAdminRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	admin := &models.Admin{
		ID:           "admin-123",
		Username:     "testadmin",
		PasswordHash: string(hashedPassword),
	}

	// Successful login
	mockRepo.On("GetByUsername", admin.Username).Return(admin, nil).Once()
	token, err := authService.LoginUser("testadmin", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, admin.ID, claims["admin_id"])
	assert.Equal(t, admin.Username, claims["username"])

	// Wrong password
	mockRepo.On("GetByUsername", admin.Username).Return(admin, nil).Once()
	_, err = authService.LoginUser("testadmin", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	// Unknown admin gets the same generic error
	mockRepo.On("GetByUsername", "nobody").Return(nil, repositories.ErrAdminNotFound).Once()
	_, err = authService.LoginUser("nobody", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService := services.NewAuthService(new(MockAdminRepository), testJWTSecret)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"admin_id": "admin-123",
		"username": "testadmin",
		"exp":      jwt.TimeFunc().Add(time.Hour).Unix(),
	})
	validTokenString, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	claims, err := authService.ValidateToken(validTokenString)
	require.NoError(t, err)
	assert.Equal(t, "admin-123", claims["admin_id"])
	assert.Equal(t, "testadmin", claims["username"])

	// Garbage
	_, err = authService.ValidateToken("invalid.token.string")
	assert.ErrorContains(t, err, "invalid token")

	// Wrong secret
	forged, err := token.SignedString([]byte("another_secret"))
	require.NoError(t, err)
	_, err = authService.ValidateToken(forged)
	assert.ErrorContains(t, err, "invalid token")

	// Expired
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"admin_id": "admin-123",
		"username": "testadmin",
		"exp":      jwt.TimeFunc().Add(-time.Hour).Unix(),
	})
	expiredTokenString, err := expiredToken.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	_, err = authService.ValidateToken(expiredTokenString)
	assert.ErrorContains(t, err, "invalid token")
}

func TestAuthService_WithMemoryRepository(t *testing.T) {
	authService := services.NewAuthService(repositories.NewMemoryAdminRepository(), testJWTSecret)

	require.NoError(t, authService.EnsureAdmin("admin", "s3cret"))
	token, err := authService.LoginUser("admin", "s3cret")
	require.NoError(t, err)

	claims, err := authService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims["username"])
}
