package app

import (
	"context"
	"log/slog"
	"time"

	"bodydry/internal/domain"
)

// ProfileWeightUpdater receives the latest body weight so derived goals can
// be refreshed.
type ProfileWeightUpdater interface {
	UpdateWeight(ctx context.Context, userID int64, weightKg float64) error
}

// WeightService encapsulates weight-tracking use cases.
type WeightService struct {
	repo     domain.WeightRepository
	profiles ProfileWeightUpdater
}

// NewWeightService creates a WeightService backed by the given repository.
// profiles may be nil.
func NewWeightService(repo domain.WeightRepository, profiles ProfileWeightUpdater) *WeightService {
	return &WeightService{repo: repo, profiles: profiles}
}

// WeightPoint is a weight value in a requested unit.
type WeightPoint struct {
	Day   string  `json:"day"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// WeightProgress compares the first and latest recorded weights.
type WeightProgress struct {
	Unit   string       `json:"unit"`
	First  *WeightPoint `json:"first"`
	Latest *WeightPoint `json:"latest"`
	Change float64      `json:"change"`
}

// GetTodayWeight returns the latest weight entry for the given local day.
func (s *WeightService) GetTodayWeight(ctx context.Context, userID int64, today string) (*domain.WeightEntry, error) {
	return s.repo.LatestWeightForLocalDay(ctx, userID, today)
}

// RecordWeight validates and stores a new weight measurement, returning the
// latest entry for today after the insert. The profile weight follows the
// new measurement.
func (s *WeightService) RecordWeight(ctx context.Context, userID int64, value float64, unit string) (*domain.WeightEntry, string, error) {
	if value <= 0 {
		return nil, "", invalid("value must be > 0")
	}
	if !domain.ValidWeightUnit(unit) {
		return nil, "", invalid("unit must be \"kg\" or \"lb\"")
	}
	now := time.Now()
	today := LocalDay(now)
	if _, err := s.repo.AddWeightEvent(ctx, userID, value, unit, now); err != nil {
		return nil, today, err
	}
	s.syncProfile(ctx, userID, domain.ConvertWeight(value, unit, domain.UnitKg))

	entry, err := s.repo.LatestWeightForLocalDay(ctx, userID, today)
	return entry, today, err
}

// ListRecent returns the most recent weight events up to limit.
func (s *WeightService) ListRecent(ctx context.Context, userID int64, limit int) ([]domain.WeightEntry, error) {
	return s.repo.ListRecentWeightEvents(ctx, userID, limit)
}

// UndoLast deletes the most recent weight event and returns the new latest
// entry for today. The profile weight falls back to the newest remaining
// measurement.
func (s *WeightService) UndoLast(ctx context.Context, userID int64) (bool, *domain.WeightEntry, string, error) {
	today := LocalDay(time.Now())
	deleted, err := s.repo.DeleteLatestWeightEvent(ctx, userID)
	if err != nil {
		return false, nil, today, err
	}
	if deleted {
		if recent, err := s.repo.ListRecentWeightEvents(ctx, userID, 1); err == nil && len(recent) > 0 {
			s.syncProfile(ctx, userID, recent[0].Kg())
		}
	}
	entry, err := s.repo.LatestWeightForLocalDay(ctx, userID, today)
	if err != nil {
		return deleted, nil, today, err
	}
	return deleted, entry, today, nil
}

// Progress reports the first and latest weights converted to unit and the
// change between them.
func (s *WeightService) Progress(ctx context.Context, userID int64, unit string) (*WeightProgress, error) {
	if !domain.ValidWeightUnit(unit) {
		return nil, invalid("unit must be \"kg\" or \"lb\"")
	}
	out := &WeightProgress{Unit: unit}

	first, err := s.repo.FirstWeightEvent(ctx, userID)
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.ListRecentWeightEvents(ctx, userID, 1)
	if err != nil {
		return nil, err
	}
	if first == nil || len(recent) == 0 {
		return out, nil
	}

	out.First = toPoint(*first, unit)
	out.Latest = toPoint(recent[0], unit)
	out.Change = out.Latest.Value - out.First.Value
	return out, nil
}

func (s *WeightService) syncProfile(ctx context.Context, userID int64, kg float64) {
	if s.profiles == nil {
		return
	}
	if err := s.profiles.UpdateWeight(ctx, userID, kg); err != nil {
		slog.Warn("profile_weight_sync_failed", "user_id", userID, "error", err.Error())
	}
}

func toPoint(e domain.WeightEntry, unit string) *WeightPoint {
	day := e.Day
	if day == "" {
		day = LocalDay(e.CreatedAt)
	}
	return &WeightPoint{Day: day, Value: domain.ConvertWeight(e.Value, e.Unit, unit), Unit: unit}
}
