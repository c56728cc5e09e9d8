//go:build integration

package store

import (
	"context"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/AnshRaj112/portfolio-backend/internal/database"
	"github.com/AnshRaj112/portfolio-backend/internal/models"
)

func skipIfNoDocker(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if exec.CommandContext(ctx, "docker", "info").Run() != nil {
		t.Skip("Skipping test: Docker not available")
	}
}

func startMongo(t *testing.T) *database.Mongo {
	t.Helper()
	skipIfNoDocker(t)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017")
	require.NoError(t, err)

	db, err := database.Connect(ctx, fmt.Sprintf("mongodb://%s:%s", host, port.Port()), "PortFolioTest")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.EnsureIndexes(ctx))
	return db
}

func TestMongoRepositories_Integration(t *testing.T) {
	db := startMongo(t)
	repos := NewMongoRepositories(db)
	ctx := context.Background()

	t.Run("project crud", func(t *testing.T) {
		p := &models.Project{
			Title:        "Portfolio",
			Technologies: []string{"go", "mongo"},
			Banner:       models.Asset{PublicID: "PROJECTS/a", URL: "https://cdn/a"},
		}
		require.NoError(t, repos.Projects.Create(ctx, p))

		got, err := repos.Projects.FindByID(ctx, p.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, p.Technologies, got.Technologies)
		assert.Equal(t, p.Banner, got.Banner)

		got.Deployed = true
		require.NoError(t, repos.Projects.Replace(ctx, got))

		require.NoError(t, repos.Projects.Delete(ctx, p.ID.Hex()))
		assert.ErrorIs(t, repos.Projects.Delete(ctx, p.ID.Hex()), ErrNotFound)
	})

	t.Run("unique email", func(t *testing.T) {
		require.NoError(t, repos.Users.Create(ctx, &models.User{Email: "me@example.com"}))
		err := repos.Users.Create(ctx, &models.User{Email: "me@example.com"})

		var dup *DuplicateKeyError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "email", dup.Field)
	})

	t.Run("reset token single use", func(t *testing.T) {
		user, err := repos.Users.FindByEmail(ctx, "me@example.com")
		require.NoError(t, err)

		now := time.Now()
		require.NoError(t, repos.Users.SetResetToken(ctx, user.ID, "hash", now.Add(10*time.Minute)))

		consumed, err := repos.Users.ConsumeResetToken(ctx, "hash", now, "new-hash")
		require.NoError(t, err)
		assert.Equal(t, "new-hash", consumed.Password)
		assert.Empty(t, consumed.ResetPasswordToken)

		_, err = repos.Users.ConsumeResetToken(ctx, "hash", now, "")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
