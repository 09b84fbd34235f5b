package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"folio/internal/model"
)

func TestJWTService_RoundTrip(t *testing.T) {
	service := NewJWTService("secret", time.Hour)
	userID := uuid.New()

	token, err := service.GenerateToken(userID, "test@example.com", model.RoleAdmin)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.Equal(t, model.RoleAdmin, claims.Role)
	assert.NotEmpty(t, claims.ID, "every token carries a JTI")
}

func TestJWTService_UniqueJTI(t *testing.T) {
	service := NewJWTService("secret", time.Hour)
	userID := uuid.New()

	first, _ := service.GenerateToken(userID, "a@example.com", model.RoleUser)
	second, _ := service.GenerateToken(userID, "a@example.com", model.RoleUser)

	c1, err := service.ValidateToken(first)
	assert.NoError(t, err)
	c2, err := service.ValidateToken(second)
	assert.NoError(t, err)
	assert.NotEqual(t, c1.ID, c2.ID)
}

func TestJWTService_WrongSecret(t *testing.T) {
	token, err := NewJWTService("secret", time.Hour).GenerateToken(uuid.New(), "a@example.com", model.RoleUser)
	assert.NoError(t, err)

	_, err = NewJWTService("other", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_Expired(t *testing.T) {
	token, err := NewJWTService("secret", -time.Minute).GenerateToken(uuid.New(), "a@example.com", model.RoleUser)
	assert.NoError(t, err)

	_, err = NewJWTService("secret", -time.Minute).ValidateToken(token)
	assert.Error(t, err)
}
