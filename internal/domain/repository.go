package domain

// LookupRepository defines the interface for lookup persistence
type LookupRepository interface {
	// Create stores a lookup
	Create(lookup *Lookup) error

	// FindRecent returns the newest lookups first
	FindRecent(limit int) ([]*Lookup, error)

	// GetStats returns aggregate counts
	GetStats() (*LookupStats, error)

	// Close releases the underlying database
	Close() error
}

// LookupStats represents lookup statistics
type LookupStats struct {
	Total      int64              `json:"total"`
	Succeeded  int64              `json:"succeeded"`
	Failed     int64              `json:"failed"`
	ByPlatform map[Platform]int64 `json:"by_platform"`
}
