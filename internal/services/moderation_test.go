// internal/services/moderation_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/gamebazaar/gamebazaar-backend/internal/models"
)

func TestIsOwner(t *testing.T) {
	authorID := uuid.New()
	author := Actor{ID: authorID, Role: models.UserRoleUser}
	admin := Actor{ID: uuid.New(), Role: models.UserRoleAdmin}
	stranger := Actor{ID: uuid.New(), Role: models.UserRoleUser}

	assert.True(t, IsOwner(author, authorID))
	assert.False(t, IsOwner(stranger, authorID))

	// Admins get no edit bypass
	assert.False(t, IsOwner(admin, authorID))
}

func TestCanModerate(t *testing.T) {
	authorID := uuid.New()
	author := Actor{ID: authorID, Role: models.UserRoleUser}
	admin := Actor{ID: uuid.New(), Role: models.UserRoleAdmin}
	stranger := Actor{ID: uuid.New(), Role: models.UserRoleUser}

	assert.True(t, CanModerate(author, authorID))
	assert.True(t, CanModerate(admin, authorID))
	assert.False(t, CanModerate(stranger, authorID))
}

func TestPermissionsForAuthor(t *testing.T) {
	authorID := uuid.New()
	viewer := Actor{ID: authorID, Role: models.UserRoleUser}

	flags := Permissions(&viewer, authorID)
	assert.True(t, flags.CanEdit)
	assert.True(t, flags.CanDelete)
}

func TestPermissionsForAdminNonAuthor(t *testing.T) {
	viewer := Actor{ID: uuid.New(), Role: models.UserRoleAdmin}

	flags := Permissions(&viewer, uuid.New())
	assert.False(t, flags.CanEdit)
	assert.True(t, flags.CanDelete)
}

func TestPermissionsForStranger(t *testing.T) {
	viewer := Actor{ID: uuid.New(), Role: models.UserRoleUser}

	flags := Permissions(&viewer, uuid.New())
	assert.False(t, flags.CanEdit)
	assert.False(t, flags.CanDelete)
}

func TestPermissionsForAnonymous(t *testing.T) {
	flags := Permissions(nil, uuid.New())
	assert.False(t, flags.CanEdit)
	assert.False(t, flags.CanDelete)
}
