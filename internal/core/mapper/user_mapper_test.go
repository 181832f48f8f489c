package mapper

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userhub/user-api/internal/core/domain"
)

func TestToDTO_CopiesPublicFieldsOnly(t *testing.T) {
	u := &domain.User{
		ID:        "65f1c0ffee",
		Name:      "John",
		Email:     "john@x.com",
		Role:      domain.RoleAdmin,
		CreatedAt: time.Now(),
	}

	got := ToDTO(u)
	assert.Equal(t, "65f1c0ffee", got.ID)
	assert.Equal(t, "John", got.Name)
	assert.Equal(t, "john@x.com", got.Email)
	assert.Equal(t, domain.RoleAdmin, got.Role)

	raw, err := json.Marshal(got)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Len(t, fields, 4)
	assert.NotContains(t, fields, "createdAt")
	assert.NotContains(t, fields, "created_at")
}

func TestToDTOs_PreservesOrderAndNeverNil(t *testing.T) {
	empty := ToDTOs(nil)
	require.NotNil(t, empty)
	assert.Empty(t, empty)

	raw, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))

	users := []*domain.User{
		{ID: "1", Name: "a"},
		{ID: "2", Name: "b"},
		{ID: "3", Name: "c"},
	}
	got := ToDTOs(users)
	require.Len(t, got, 3)
	for i, u := range users {
		assert.Equal(t, u.ID, got[i].ID)
		assert.Equal(t, u.Name, got[i].Name)
	}
}

func TestToEntity_ToleratesMissingFields(t *testing.T) {
	u := ToEntity(RawUser{Name: "only-name"})

	require.NotNil(t, u)
	assert.Equal(t, "only-name", u.Name)
	assert.Empty(t, u.ID)
	assert.Empty(t, u.Email)
	assert.Empty(t, u.Role)
	assert.True(t, u.CreatedAt.IsZero())
	assert.False(t, u.IsPersisted())
}

func TestToEntity_CopiesAllFields(t *testing.T) {
	ts := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	u := ToEntity(RawUser{ID: "9", Name: "n", Email: "e@x.com", Role: "admin", CreatedAt: ts})

	assert.Equal(t, &domain.User{ID: "9", Name: "n", Email: "e@x.com", Role: "admin", CreatedAt: ts}, u)
	assert.True(t, u.IsAdmin())
}
