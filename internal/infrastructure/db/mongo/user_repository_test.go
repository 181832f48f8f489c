//go:build integration

package mongo

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"

	"github.com/userhub/user-api/internal/core/ports"
	"github.com/userhub/user-api/internal/core/ports/porttest"
)

func TestUserRepository_Contract(t *testing.T) {
	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate mongo: %v", err)
		}
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, _, err := Connect(ctx, Config{URI: uri, Database: "user_api_test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	var seq atomic.Int64
	porttest.RunUserRepositoryContract(t, func(t *testing.T) ports.UserRepository {
		db := client.Database(fmt.Sprintf("user_api_test_%d", seq.Add(1)))
		repo := NewUserRepository(db)
		require.NoError(t, repo.EnsureIndexes(ctx))
		t.Cleanup(func() { _ = db.Drop(context.Background()) })
		return repo
	}, porttest.Options{
		UnknownID:    "64b7f0a1c2d3e4f5a6b7c8d9",
		MalformedIDs: []string{"123", "zzzzzzzzzzzzzzzzzzzzzzzz", "64b7f0a1c2d3e4f5a6b7c8d"},
		Aliases:      func(id string) []string { return []string{strings.ToUpper(id)} },
		UniqueEmail:  true,
	})
}
