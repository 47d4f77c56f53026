package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/salon-booking/internal/models"
)

func TestCanMutate(t *testing.T) {
	// owner may touch their own resource
	assert.True(t, CanMutate(1, 1, models.RoleClient))
	assert.True(t, CanMutate(1, 1, models.RoleSalonOwner))

	// admin overrides ownership
	assert.True(t, CanMutate(2, 1, models.RoleAdmin))

	// everyone else is out
	assert.False(t, CanMutate(2, 1, models.RoleClient))
	assert.False(t, CanMutate(2, 1, models.RoleSalonOwner))
}
