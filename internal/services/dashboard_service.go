package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/cache"
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/dto"
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	statsCacheKey     = "dashboard:stats"
	activityPerSource = 5
	activityFeedLimit = 10
)

// StatsCache is the subset of the cache the dashboard needs.
type StatsCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type DashboardService struct {
	db    *gorm.DB
	cache StatsCache
	ttl   time.Duration
}

// NewDashboardService builds the service; statsCache may be nil to disable caching.
func NewDashboardService(db *gorm.DB, statsCache StatsCache, ttl time.Duration) *DashboardService {
	return &DashboardService{db: db, cache: statsCache, ttl: ttl}
}

func (s *DashboardService) Stats(ctx context.Context) (*dto.DashboardStats, error) {
	if s.cache != nil {
		b, err := s.cache.Get(ctx, statsCacheKey)
		switch {
		case err == nil:
			var cached dto.DashboardStats
			if json.Unmarshal(b, &cached) == nil {
				return &cached, nil
			}
		case !errors.Is(err, cache.ErrMiss):
			slog.Warn("stats cache read failed", "error", err)
		}
	}

	stats, err := s.computeStats(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if b, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, statsCacheKey, b, s.ttl); err != nil {
				slog.Warn("stats cache write failed", "error", err)
			}
		}
	}
	return stats, nil
}

func (s *DashboardService) computeStats(ctx context.Context) (*dto.DashboardStats, error) {
	db := s.db.WithContext(ctx)
	stats := &dto.DashboardStats{}

	var perCategory []struct {
		Category  string
		Total     int64
		Available int64
	}
	err := db.Model(&models.Model{}).
		Select("category, COUNT(*) AS total, COALESCE(SUM(CASE WHEN available THEN 1 ELSE 0 END), 0) AS available").
		Group("category").
		Scan(&perCategory).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count models: %w", err)
	}
	for _, c := range perCategory {
		counts := dto.CategoryCounts{Total: c.Total, Available: c.Available}
		switch models.Category(c.Category) {
		case models.CategoryLocal:
			stats.LocalModels = counts
		case models.CategoryForeign:
			stats.ForeignModels = counts
		}
	}

	var bookings struct {
		Total     int64
		Pending   int64
		Confirmed int64
	}
	err = db.Model(&models.Booking{}).
		Select("COUNT(*) AS total, "+
			"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS pending, "+
			"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS confirmed",
			models.StatusPending, models.StatusConfirmed).
		Scan(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}
	stats.TotalBookings = bookings.Total
	stats.PendingBookings = bookings.Pending
	stats.ConfirmedBookings = bookings.Confirmed

	if err := db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	return stats, nil
}

// RecentActivity queries the newest users, bookings and local models in
// parallel and merges them into one feed, newest first.
func (s *DashboardService) RecentActivity(ctx context.Context) ([]dto.Activity, error) {
	var (
		users    []models.User
		bookings []models.Booking
		locals   []models.Model
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.db.WithContext(gctx).Order("created_at DESC").Limit(activityPerSource).Find(&users).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).Order("created_at DESC").Limit(activityPerSource).Find(&bookings).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).Where("category = ?", models.CategoryLocal).
			Order("created_at DESC").Limit(activityPerSource).Find(&locals).Error
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load recent activity: %w", err)
	}

	feed := make([]dto.Activity, 0, len(users)+len(bookings)+len(locals))
	for _, u := range users {
		feed = append(feed, dto.Activity{
			Type:      "user",
			ID:        u.ID.String(),
			Message:   "New user registered: " + u.Username,
			Timestamp: u.CreatedAt,
		})
	}
	for _, b := range bookings {
		feed = append(feed, dto.Activity{
			Type:      "booking",
			ID:        b.ID.String(),
			Message:   fmt.Sprintf("%s booked %s for %s (%s)", b.UserName, b.ModelName, b.Event, b.Status),
			Timestamp: b.CreatedAt,
		})
	}
	for _, m := range locals {
		feed = append(feed, dto.Activity{
			Type:      "model",
			ID:        m.ID.String(),
			Message:   "New local model added: " + m.Name,
			Timestamp: m.CreatedAt,
		})
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Timestamp.After(feed[j].Timestamp)
	})
	if len(feed) > activityFeedLimit {
		feed = feed[:activityFeedLimit]
	}
	return feed, nil
}
