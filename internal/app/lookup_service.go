package app

import (
	"github.com/yourusername/vidrelay/internal/domain"
	"go.uber.org/zap"
)

const (
	defaultLookupLimit = 50
	maxLookupLimit     = 500
)

// LookupService records request outcomes in the optional journal.
// A nil repository disables it.
type LookupService struct {
	repo   domain.LookupRepository
	logger *zap.Logger
}

// NewLookupService creates a new lookup service
func NewLookupService(repo domain.LookupRepository, logger *zap.Logger) *LookupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LookupService{repo: repo, logger: logger}
}

// Enabled reports whether a journal is configured
func (s *LookupService) Enabled() bool {
	return s != nil && s.repo != nil
}

// Record stores a lookup. Failures are logged and never reach the client.
func (s *LookupService) Record(lookup *domain.Lookup) {
	if !s.Enabled() {
		return
	}
	if err := s.repo.Create(lookup); err != nil {
		s.logger.Warn("Failed to record lookup",
			zap.String("url", lookup.URL),
			zap.String("endpoint", string(lookup.Endpoint)),
			zap.Error(err))
	}
}

// Recent returns the newest lookups, clamping limit to a sane range
func (s *LookupService) Recent(limit int) ([]*domain.Lookup, error) {
	if !s.Enabled() {
		return nil, domain.ErrJournalOffline
	}
	if limit <= 0 {
		limit = defaultLookupLimit
	}
	if limit > maxLookupLimit {
		limit = maxLookupLimit
	}
	return s.repo.FindRecent(limit)
}

// Stats returns journal statistics
func (s *LookupService) Stats() (*domain.LookupStats, error) {
	if !s.Enabled() {
		return nil, domain.ErrJournalOffline
	}
	return s.repo.GetStats()
}
