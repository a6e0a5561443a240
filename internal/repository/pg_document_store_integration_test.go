//go:build integration

package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"career-compass/internal/db"
	"career-compass/internal/domain"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode (requires Docker)")
	}
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_DB":       "compass",
				"POSTGRES_USER":     "compass",
				"POSTGRES_PASSWORD": "compass",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://compass:compass@%s:%s/compass?sslmode=disable", host, port.Port())
}

func TestPgDocumentStoreProfileRoundTrip(t *testing.T) {
	url := startPostgres(t)
	ctx := context.Background()

	pool, err := db.Open(ctx, url, true, zap.NewNop())
	require.NoError(t, err)
	defer pool.Close()

	// segunda migracion: sin cambios
	require.NoError(t, db.RunMigrations(url, zap.NewNop()))

	store := NewPgDocumentStore(pool)

	_, err = store.Get(ctx, domain.CollectionUserProfiles, "u1")
	assert.ErrorIs(t, err, ErrNotFound)

	repo := NewDocProfileRepository(store)
	doc := domain.StoredProfile{
		UserID:      "u1",
		Profile:     sampleProfile(),
		Source:      domain.SourceOracle,
		GeneratedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Save(ctx, doc))

	got, err := repo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	doc.Source = domain.SourceFallback
	require.NoError(t, repo.Save(ctx, doc))
	got, err = repo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.SourceFallback, got.Source)
}

func TestPgDocumentStoreSkillAnalysisAdditive(t *testing.T) {
	url := startPostgres(t)
	ctx := context.Background()

	pool, err := db.Open(ctx, url, true, zap.NewNop())
	require.NoError(t, err)
	defer pool.Close()

	repo := NewDocSkillAnalysisRepository(NewPgDocumentStore(pool))
	require.NoError(t, repo.Put(ctx, "u1", domain.CachedSkillAnalysis{PathTitle: "A"}))
	require.NoError(t, repo.Put(ctx, "u1", domain.CachedSkillAnalysis{PathTitle: "B"}))

	doc, err := repo.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, doc.Entries, 2)
}
