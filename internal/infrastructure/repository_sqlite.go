package infrastructure

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/yourusername/vidrelay/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLiteLookupRepository implements LookupRepository using SQLite
type SQLiteLookupRepository struct {
	db *gorm.DB
}

// NewSQLiteLookupRepository creates a new SQLite repository. dbPath may be
// ":memory:" for a throwaway journal.
func NewSQLiteLookupRepository(dbPath string) (*SQLiteLookupRepository, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&domain.Lookup{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if dbPath == ":memory:" {
		// Each pooled connection would otherwise get its own empty database.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return &SQLiteLookupRepository{db: db}, nil
}

// Create stores a lookup
func (r *SQLiteLookupRepository) Create(lookup *domain.Lookup) error {
	return r.db.Create(lookup).Error
}

// FindRecent returns up to limit lookups, newest first
func (r *SQLiteLookupRepository) FindRecent(limit int) ([]*domain.Lookup, error) {
	var lookups []*domain.Lookup
	err := r.db.Order("created_at DESC").Limit(limit).Find(&lookups).Error
	return lookups, err
}

// GetStats returns lookup statistics
func (r *SQLiteLookupRepository) GetStats() (*domain.LookupStats, error) {
	stats := &domain.LookupStats{ByPlatform: make(map[domain.Platform]int64)}

	if err := r.db.Model(&domain.Lookup{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&domain.Lookup{}).
		Where("status < ?", http.StatusBadRequest).
		Count(&stats.Succeeded).Error; err != nil {
		return nil, err
	}
	stats.Failed = stats.Total - stats.Succeeded

	platformCounts := []struct {
		Platform domain.Platform
		Count    int64
	}{}

	if err := r.db.Model(&domain.Lookup{}).
		Select("platform, count(*) as count").
		Where("platform <> ?", "").
		Group("platform").
		Scan(&platformCounts).Error; err != nil {
		return nil, err
	}

	for _, pc := range platformCounts {
		stats.ByPlatform[pc.Platform] = pc.Count
	}

	return stats, nil
}

// Close closes the database connection
func (r *SQLiteLookupRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
