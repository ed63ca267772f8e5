package services

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	apperrors "securecare/internal/errors"
	"securecare/internal/models"
	"securecare/internal/training"
)

const levelStatsCacheKey = "stats:levels"

// statsService computes the per-level aggregate view. Results are cached
// with a short staleness window; the cache is injected so tests can seed
// or bypass it, and mutation callers invalidate it explicitly.
type statsService struct {
	db    *gorm.DB
	cache *cache.Cache
	ttl   time.Duration
}

// NewStatsService creates a new StatsServicer backed by the given cache.
func NewStatsService(db *gorm.DB, c *cache.Cache, ttl time.Duration) StatsServicer {
	return &statsService{db: db, cache: c, ttl: ttl}
}

// LevelStats returns assigned/awarded counts per level, serving from cache
// within the staleness window.
func (s *statsService) LevelStats() ([]LevelStats, error) {
	if cached, found := s.cache.Get(levelStatsCacheKey); found {
		return cached.([]LevelStats), nil
	}

	stats := make([]LevelStats, 0, len(training.LevelOrder))
	for _, level := range training.LevelOrder {
		assignedCol := training.ColumnName(level, "reliasAssigned")
		awardedCol := training.ColumnName(level, "awarded")

		var assigned int64
		err := s.db.Model(&models.Employee{}).
			Where(fmt.Sprintf("%q IS NOT NULL", assignedCol)).
			Count(&assigned).Error
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		var awarded int64
		err = s.db.Model(&models.Employee{}).
			Where(fmt.Sprintf("%q = ?", awardedCol), true).
			Count(&awarded).Error
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		var pct float64
		if assigned > 0 {
			pct = float64(awarded) / float64(assigned) * 100
		}

		stats = append(stats, LevelStats{
			Level:       level,
			DisplayName: level.DisplayName(),
			Assigned:    assigned,
			Awarded:     awarded,
			AwardedPct:  pct,
		})
	}

	s.cache.Set(levelStatsCacheKey, stats, s.ttl)
	return stats, nil
}

// Invalidate drops the cached view. Called after every successful training
// or employee mutation; a mutation invalidates all derived views, not just
// the requirement it touched.
func (s *statsService) Invalidate() {
	s.cache.Delete(levelStatsCacheKey)
}
