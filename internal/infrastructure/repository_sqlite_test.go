package infrastructure

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/vidrelay/internal/domain"
)

func setupTestRepo(t *testing.T) (*SQLiteLookupRepository, func()) {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "repo-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "journal", "test.db")
	repo, err := NewSQLiteLookupRepository(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		repo.Close()
		os.RemoveAll(tmpDir)
	}
	return repo, cleanup
}

func TestFindRecent_NewestFirst(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	older := domain.NewLookup("https://youtu.be/a", domain.PlatformYouTube, domain.EndpointMetadata, http.StatusOK, time.Millisecond, nil)
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := domain.NewLookup("https://vm.tiktok.com/b", domain.PlatformTikTok, domain.EndpointDownload, http.StatusOK, time.Millisecond, nil)

	require.NoError(t, repo.Create(older))
	require.NoError(t, repo.Create(newer))

	lookups, err := repo.FindRecent(10)
	require.NoError(t, err)
	require.Len(t, lookups, 2)
	assert.Equal(t, newer.ID, lookups[0].ID)
	assert.Equal(t, older.ID, lookups[1].ID)

	limited, err := repo.FindRecent(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestGetStats_CountsOutcomes(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	records := []*domain.Lookup{
		domain.NewLookup("https://youtu.be/a", domain.PlatformYouTube, domain.EndpointMetadata, http.StatusOK, 0, nil),
		domain.NewLookup("https://youtu.be/b", domain.PlatformYouTube, domain.EndpointDownload, http.StatusFound, 0, nil),
		domain.NewLookup("https://vm.tiktok.com/c", domain.PlatformTikTok, domain.EndpointMetadata, http.StatusNotFound, 0, domain.NewNotFoundError("gone")),
		domain.NewLookup("https://example.com", "", domain.EndpointMetadata, http.StatusBadRequest, 0, domain.UnsupportedPlatformError()),
	}
	for _, r := range records {
		require.NoError(t, repo.Create(r))
	}

	stats, err := repo.GetStats()
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Total)
	assert.Equal(t, int64(2), stats.Succeeded)
	assert.Equal(t, int64(2), stats.Failed)
	assert.Equal(t, int64(2), stats.ByPlatform[domain.PlatformYouTube])
	assert.Equal(t, int64(1), stats.ByPlatform[domain.PlatformTikTok])
	_, hasEmpty := stats.ByPlatform[""]
	assert.False(t, hasEmpty)
}

func TestInMemoryRepository(t *testing.T) {
	repo, err := NewSQLiteLookupRepository(":memory:")
	require.NoError(t, err)
	defer repo.Close()

	require.NoError(t, repo.Create(domain.NewLookup("https://fb.watch/x", domain.PlatformFacebook, domain.EndpointMetadata, http.StatusOK, 0, nil)))

	stats, err := repo.GetStats()
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Total)
}
