// Package porttest holds the behaviour every ports.UserRepository adapter must
// share. Adapter packages run it against their own constructor so swapping
// one store for another cannot change what the use cases observe.
package porttest

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userhub/user-api/internal/core/domain"
	"github.com/userhub/user-api/internal/core/ports"
)

// Options tunes the suite to what a given adapter guarantees.
type Options struct {
	// UnknownID is well formed for the store but never assigned.
	UnknownID string
	// MalformedIDs cannot be parsed by the store at all.
	MalformedIDs []string
	// Aliases returns spellings the store could parse as id but that differ
	// from its canonical form. They must not resolve to the user.
	Aliases func(id string) []string
	// UniqueEmail is set for adapters that reject a second user with the
	// same email.
	UniqueEmail bool
}

// RunUserRepositoryContract runs the shared suite. newRepo must return an
// empty repository on every call.
func RunUserRepositoryContract(t *testing.T, newRepo func(t *testing.T) ports.UserRepository, opts Options) {
	t.Helper()

	t.Run("create assigns identity without touching input", func(t *testing.T) {
		repo := newRepo(t)
		in := &domain.User{Name: "John", Email: "john@x.com", Role: domain.RoleUser}

		before := time.Now().Add(-time.Second)
		got, err := repo.Create(context.Background(), in)
		require.NoError(t, err)

		assert.True(t, got.IsPersisted())
		assert.Equal(t, "John", got.Name)
		assert.Equal(t, "john@x.com", got.Email)
		assert.Equal(t, domain.RoleUser, got.Role)
		assert.False(t, got.CreatedAt.IsZero())
		assert.True(t, got.CreatedAt.After(before), "createdAt %v should be recent", got.CreatedAt)

		assert.Empty(t, in.ID, "input must stay transient")
		assert.True(t, in.CreatedAt.IsZero(), "input createdAt must stay unset")
	})

	t.Run("create keeps a supplied createdAt", func(t *testing.T) {
		repo := newRepo(t)
		ts := time.Date(2022, 7, 14, 9, 30, 0, 0, time.UTC)

		got, err := repo.Create(context.Background(), &domain.User{Name: "Old", Email: "old@x.com", Role: domain.RoleUser, CreatedAt: ts})
		require.NoError(t, err)
		assert.True(t, got.CreatedAt.Equal(ts), "expected %v, got %v", ts, got.CreatedAt)
	})

	t.Run("find by id round trips", func(t *testing.T) {
		repo := newRepo(t)
		created, err := repo.Create(context.Background(), &domain.User{Name: "Ana", Email: "ana@x.com", Role: domain.RoleAdmin})
		require.NoError(t, err)

		found, err := repo.FindByID(context.Background(), created.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "Ana", found.Name)
		assert.Equal(t, "ana@x.com", found.Email)
		assert.True(t, found.IsAdmin())
		assert.WithinDuration(t, created.CreatedAt, found.CreatedAt, time.Millisecond)
	})

	t.Run("create with empty role defaults to user", func(t *testing.T) {
		repo := newRepo(t)
		created, err := repo.Create(context.Background(), &domain.User{Name: "NoRole", Email: "norole@x.com"})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleUser, created.Role)

		found, err := repo.FindByID(context.Background(), created.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, domain.RoleUser, found.Role)

		all, err := repo.FindAll(context.Background())
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, domain.RoleUser, all[0].Role)
	})

	t.Run("find by unknown id is absent", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Create(context.Background(), &domain.User{Name: "x", Email: "x@x.com", Role: domain.RoleUser})
		require.NoError(t, err)

		found, err := repo.FindByID(context.Background(), opts.UnknownID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("find by malformed id is absent", func(t *testing.T) {
		repo := newRepo(t)
		for _, id := range append([]string{"doesnotexist", ""}, opts.MalformedIDs...) {
			found, err := repo.FindByID(context.Background(), id)
			require.NoError(t, err, "id %q", id)
			assert.Nil(t, found, "id %q", id)
		}
	})

	if opts.Aliases != nil {
		t.Run("find by non-canonical id is absent", func(t *testing.T) {
			repo := newRepo(t)
			created, err := repo.Create(context.Background(), &domain.User{Name: "x", Email: "x@x.com", Role: domain.RoleUser})
			require.NoError(t, err)

			for _, alias := range opts.Aliases(created.ID) {
				found, err := repo.FindByID(context.Background(), alias)
				require.NoError(t, err, "id %q", alias)
				assert.Nil(t, found, "id %q", alias)
			}
		})
	}

	t.Run("find all on empty store", func(t *testing.T) {
		repo := newRepo(t)
		all, err := repo.FindAll(context.Background())
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("find all returns every user in insertion order", func(t *testing.T) {
		repo := newRepo(t)
		const n = 5
		ids := make(map[string]struct{}, n)
		for i := 0; i < n; i++ {
			u, err := repo.Create(context.Background(), &domain.User{
				Name:  fmt.Sprintf("user-%d", i),
				Email: fmt.Sprintf("user-%d@x.com", i),
				Role:  domain.RoleUser,
			})
			require.NoError(t, err)
			ids[u.ID] = struct{}{}
		}
		assert.Len(t, ids, n, "identifiers must be distinct")

		all, err := repo.FindAll(context.Background())
		require.NoError(t, err)
		require.Len(t, all, n)
		for i, u := range all {
			assert.Equal(t, fmt.Sprintf("user-%d@x.com", i), u.Email)
			assert.Contains(t, ids, u.ID)
		}
	})

	if opts.UniqueEmail {
		t.Run("duplicate email is rejected", func(t *testing.T) {
			repo := newRepo(t)
			_, err := repo.Create(context.Background(), &domain.User{Name: "a", Email: "dup@x.com", Role: domain.RoleUser})
			require.NoError(t, err)

			_, err = repo.Create(context.Background(), &domain.User{Name: "b", Email: "dup@x.com", Role: domain.RoleUser})
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrEmailTaken), "got %v", err)

			all, err := repo.FindAll(context.Background())
			require.NoError(t, err)
			assert.Len(t, all, 1)
		})
	}
}
