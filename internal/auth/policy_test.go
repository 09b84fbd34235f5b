package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"folio/internal/model"
)

func TestCanModify(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	assert.True(t, CanModify(owner, model.RoleUser, owner))
	assert.False(t, CanModify(stranger, model.RoleUser, owner))
	assert.True(t, CanModify(stranger, model.RoleAdmin, owner))
}

func TestHasRole(t *testing.T) {
	assert.True(t, HasRole(model.RoleAdmin, model.RoleAdmin))
	assert.True(t, HasRole(model.RoleUser, model.RoleUser, model.RoleAdmin))
	assert.False(t, HasRole(model.RoleUser, model.RoleAdmin))
	assert.False(t, HasRole("", model.RoleAdmin))
}
