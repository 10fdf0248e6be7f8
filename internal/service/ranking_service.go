package service

import (
	"context"
	"encoding/json"
	"time"

	"pilates_diario_backend/internal/model"
	"pilates_diario_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	rankingCacheKey = "ranking:positions"
	rankingCacheTTL = 60 * time.Second
)

// ProfileSource supplies profiles pre-sorted in ranking order (points
// descending, then creation order, then id).
type ProfileSource interface {
	FindRankable(limit int) ([]model.User, error)
}

// RankingEntry is one row of the leaderboard. Position is a sequential
// 1-based rank: equal point totals still get distinct consecutive
// positions, ordered by profile creation.
type RankingEntry struct {
	UserID         uint   `json:"userId"`
	Name           string `json:"name"`
	Avatar         string `json:"avatar,omitempty"`
	Points         int    `json:"points"`
	TotalExercises int    `json:"totalExercises"`
	Position       int    `json:"position"`
}

// RankingService computes the leaderboard. It is a derived view recomputed
// from profiles on read; the Redis cache only shortcuts repeated reads and
// is invalidated whenever a completion lands.
type RankingService struct {
	Profiles ProfileSource
	Redis    *redis.Client
	limit    int
}

func NewRankingService(profiles ProfileSource, rdb *redis.Client, limit int) *RankingService {
	return &RankingService{
		Profiles: profiles,
		Redis:    rdb,
		limit:    limit,
	}
}

// ComputeRanking assigns sequential positions over an already-sorted
// snapshot. Pure, so repeated calls over the same snapshot always produce
// identical output.
func ComputeRanking(profiles []model.User) []RankingEntry {
	entries := make([]RankingEntry, len(profiles))
	for i, user := range profiles {
		entries[i] = RankingEntry{
			UserID:         user.ID,
			Name:           user.Name,
			Avatar:         user.Avatar,
			Points:         user.Points,
			TotalExercises: user.TotalExercises,
			Position:       i + 1,
		}
	}
	return entries
}

// Top returns the first limit entries of the leaderboard (the configured
// bound when limit <= 0).
func (s *RankingService) Top(ctx context.Context, limit int) ([]RankingEntry, error) {
	if limit <= 0 || limit > s.limit {
		limit = s.limit
	}

	entries, err := s.full(ctx)
	if err != nil {
		return nil, err
	}

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// ForUser returns the user's own entry, even when they sit outside the
// visible top-N. A nil entry means the user has no profile in the ranking.
func (s *RankingService) ForUser(ctx context.Context, userID uint) (*RankingEntry, error) {
	entries, err := s.full(ctx)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		if entries[i].UserID == userID {
			return &entries[i], nil
		}
	}
	return nil, nil
}

// Invalidate drops the cached ranking. Wired to the workout service's
// completion hook.
func (s *RankingService) Invalidate(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, rankingCacheKey).Err(); err != nil {
		logger.Log.Warn("failed to invalidate ranking cache", zap.Error(err))
	}
}

func (s *RankingService) full(ctx context.Context) ([]RankingEntry, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	profiles, err := s.Profiles.FindRankable(0)
	if err != nil {
		return nil, err
	}

	entries := ComputeRanking(profiles)
	s.toCache(ctx, entries)
	return entries, nil
}

func (s *RankingService) fromCache(ctx context.Context) []RankingEntry {
	if s.Redis == nil {
		return nil
	}

	payload, err := s.Redis.Get(ctx, rankingCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Log.Warn("ranking cache read failed", zap.Error(err))
		}
		return nil
	}

	var entries []RankingEntry
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil
	}
	return entries
}

func (s *RankingService) toCache(ctx context.Context, entries []RankingEntry) {
	if s.Redis == nil {
		return
	}

	payload, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, rankingCacheKey, payload, rankingCacheTTL).Err(); err != nil {
		logger.Log.Warn("ranking cache write failed", zap.Error(err))
	}
}
