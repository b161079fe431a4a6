package app

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/vidrelay/internal/domain"
)

type mockLookupRepo struct {
	created   []*domain.Lookup
	createErr error
	gotLimit  int
}

func (m *mockLookupRepo) Create(lookup *domain.Lookup) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, lookup)
	return nil
}

func (m *mockLookupRepo) FindRecent(limit int) ([]*domain.Lookup, error) {
	m.gotLimit = limit
	return m.created, nil
}

func (m *mockLookupRepo) GetStats() (*domain.LookupStats, error) {
	return &domain.LookupStats{Total: int64(len(m.created))}, nil
}

func (m *mockLookupRepo) Close() error { return nil }

func TestLookupService_Disabled(t *testing.T) {
	svc := NewLookupService(nil, nil)
	assert.False(t, svc.Enabled())

	svc.Record(domain.NewLookup("https://youtu.be/x", domain.PlatformYouTube, domain.EndpointMetadata, 200, time.Millisecond, nil))

	_, err := svc.Recent(10)
	assert.Equal(t, domain.ErrJournalOffline, err)
	_, err = svc.Stats()
	assert.Equal(t, domain.ErrJournalOffline, err)

	var nilSvc *LookupService
	assert.False(t, nilSvc.Enabled())
}

func TestLookupService_Record(t *testing.T) {
	repo := &mockLookupRepo{}
	svc := NewLookupService(repo, nil)
	require.True(t, svc.Enabled())

	svc.Record(domain.NewLookup("https://vm.tiktok.com/x", domain.PlatformTikTok, domain.EndpointDownload, 200, time.Second, nil))
	require.Len(t, repo.created, 1)

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Total)
}

func TestLookupService_RecordFailureIsSwallowed(t *testing.T) {
	repo := &mockLookupRepo{createErr: errors.New("disk full")}
	svc := NewLookupService(repo, nil)

	assert.NotPanics(t, func() {
		svc.Record(domain.NewLookup("https://vm.tiktok.com/x", domain.PlatformTikTok, domain.EndpointDownload, 500, 0, errors.New("boom")))
	})
	assert.Empty(t, repo.created)
}

func TestLookupService_RecentClampsLimit(t *testing.T) {
	tests := []struct {
		limit    int
		expected int
	}{
		{0, 50},
		{-3, 50},
		{20, 20},
		{10000, 500},
	}

	for _, tt := range tests {
		repo := &mockLookupRepo{}
		svc := NewLookupService(repo, nil)
		_, err := svc.Recent(tt.limit)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, repo.gotLimit)
	}
}
