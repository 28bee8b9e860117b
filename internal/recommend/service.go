package recommend

import (
	"context"
	"errors"
	"sort"

	"gamescout/backend/internal/cache"
	"gamescout/backend/internal/logger"
	"gamescout/backend/internal/models"
	"gamescout/backend/internal/monitoring"
	"gamescout/backend/internal/rawg"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	// ResultLimit is the maximum number of games returned for a search.
	ResultLimit = 20
	// minCached is the cache population below which the API is consulted.
	minCached = 10
)

// Fetcher fetches games from the external API. Satisfied by *rawg.Client.
type Fetcher interface {
	SearchGames(ctx context.Context, platform, genre string, pageSize int) ([]rawg.GameResult, error)
}

// Service answers recommendation lookups from the local game cache, falling
// back to the RAWG API when the cache is thin.
type Service struct {
	DB      *gorm.DB
	Fetcher Fetcher
}

func NewService(db *gorm.DB, fetcher Fetcher) *Service {
	return &Service{DB: db, Fetcher: fetcher}
}

// Recommendations returns up to ResultLimit games for a platform/genre
// selection, rating descending. An external API failure degrades to whatever
// the local cache holds.
func (s *Service) Recommendations(ctx context.Context, platform, genre string) ([]models.Game, error) {
	// Warm redis page first; it holds the fully assembled answer.
	var page []models.Game
	if err := cache.GetResults(ctx, platform, genre, &page); err == nil {
		monitoring.RecommendationLookups.WithLabelValues("redis").Inc()
		return page, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		logger.L().WithError(err).Warn("redis results lookup failed")
	}

	games, err := s.CachedGames(platform, genre, ResultLimit)
	if err != nil {
		return nil, err
	}

	if len(games) < minCached {
		fetched, err := s.Fetcher.SearchGames(ctx, platform, genre, ResultLimit)
		if err != nil {
			// Treated as "no results" from the API; serve what the cache has.
			logger.L().WithFields(logrus.Fields{
				"platform": platform,
				"genre":    genre,
			}).WithError(err).Error("external API fetch failed")
		} else if len(fetched) > 0 {
			monitoring.RecommendationLookups.WithLabelValues("api").Inc()
			if _, err := s.StoreResults(fetched); err != nil {
				logger.L().WithError(err).Error("failed to store fetched games")
			}
			games = mergeByRating(games, toGames(fetched), ResultLimit)
		}
	} else {
		monitoring.RecommendationLookups.WithLabelValues("database").Inc()
	}

	// An empty page is not cached; the next lookup should retry the API.
	if len(games) > 0 {
		if err := cache.SetResults(ctx, platform, genre, games); err != nil {
			logger.L().WithError(err).Warn("failed to warm redis results cache")
		}
	}

	return games, nil
}

// CachedGames retrieves games from the database cache for a selection,
// rating descending.
func (s *Service) CachedGames(platform, genre string, limit int) ([]models.Game, error) {
	var games []models.Game
	err := s.DB.
		Where("platform = ? AND genre = ?", platform, genre).
		Order("rating DESC").
		Limit(limit).
		Find(&games).Error
	return games, err
}

// StoreResults persists fetched games that are not cached yet, keyed by
// (rawg_id, platform, genre). Returns the number of rows inserted.
func (s *Service) StoreResults(results []rawg.GameResult) (int, error) {
	stored := 0
	for _, r := range results {
		var count int64
		err := s.DB.Model(&models.Game{}).
			Where("rawg_id = ? AND platform = ? AND genre = ?", r.RawgID, r.Platform, r.Genre).
			Count(&count).Error
		if err != nil {
			return stored, err
		}
		if count > 0 {
			continue
		}

		game := models.Game{
			RawgID:      r.RawgID,
			Platform:    r.Platform,
			Genre:       r.Genre,
			Title:       r.Title,
			Rating:      r.Rating,
			ImageURL:    r.ImageURL,
			Description: r.Description,
		}
		if err := s.DB.Create(&game).Error; err != nil {
			return stored, err
		}
		stored++
	}
	return stored, nil
}

// PurgeCache removes cached game rows, optionally restricted to one
// platform/genre selection. Returns the number of rows removed.
func (s *Service) PurgeCache(ctx context.Context, platform, genre string) (int64, error) {
	query := s.DB.Unscoped()
	if platform != "" && genre != "" {
		query = query.Where("platform = ? AND genre = ?", platform, genre)
	} else {
		query = query.Where("1 = 1")
	}

	result := query.Delete(&models.Game{})
	if result.Error != nil {
		return 0, result.Error
	}

	if err := cache.InvalidateResults(ctx, platform, genre); err != nil {
		logger.L().WithError(err).Warn("failed to invalidate redis results cache")
	}

	return result.RowsAffected, nil
}

func toGames(results []rawg.GameResult) []models.Game {
	games := make([]models.Game, 0, len(results))
	for _, r := range results {
		games = append(games, models.Game{
			RawgID:      r.RawgID,
			Platform:    r.Platform,
			Genre:       r.Genre,
			Title:       r.Title,
			Rating:      r.Rating,
			ImageURL:    r.ImageURL,
			Description: r.Description,
		})
	}
	return games
}

// mergeByRating folds extra games into base, skipping duplicates by RawgID,
// and returns the union sorted by rating descending, truncated to limit.
func mergeByRating(base, extra []models.Game, limit int) []models.Game {
	seen := make(map[int64]bool, len(base))
	merged := make([]models.Game, 0, len(base)+len(extra))
	for _, g := range base {
		seen[g.RawgID] = true
		merged = append(merged, g)
	}
	for _, g := range extra {
		if seen[g.RawgID] {
			continue
		}
		seen[g.RawgID] = true
		merged = append(merged, g)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Rating > merged[j].Rating
	})

	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}
