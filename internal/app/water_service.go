package app

import (
	"context"
	"time"

	"bodydry/internal/domain"
)

const maxWaterDeltaML = 5000

// WaterService encapsulates water-tracking use cases.
type WaterService struct {
	repo  domain.WaterRepository
	goals GoalsProvider
}

// NewWaterService creates a WaterService backed by the given repository.
func NewWaterService(repo domain.WaterRepository, goals GoalsProvider) *WaterService {
	return &WaterService{repo: repo, goals: goals}
}

// WaterProgress is the day's intake against the water goal.
type WaterProgress struct {
	Day         string `json:"day"`
	TotalML     int    `json:"totalMl"`
	GoalML      int    `json:"goalMl"`
	RemainingML int    `json:"remainingMl"`
	Percent     int    `json:"percent"`
}

// GetTodayTotal returns the total water intake in mL for the given local day.
func (s *WaterService) GetTodayTotal(ctx context.Context, userID int64, today string) (int, error) {
	return s.repo.WaterTotalForLocalDay(ctx, userID, today)
}

// Progress compares the day's intake with the user's water goal.
func (s *WaterService) Progress(ctx context.Context, userID int64, day string) (*WaterProgress, error) {
	total, err := s.repo.WaterTotalForLocalDay(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	goals, err := s.goals.Goals(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &WaterProgress{
		Day:         day,
		TotalML:     total,
		GoalML:      goals.Water,
		RemainingML: max(goals.Water-total, 0),
		Percent:     percentOf(float64(total), float64(goals.Water)),
	}, nil
}

// RecordEvent validates and stores a water intake event.
func (s *WaterService) RecordEvent(ctx context.Context, userID int64, deltaML int) (int64, error) {
	if deltaML == 0 || deltaML < -maxWaterDeltaML || deltaML > maxWaterDeltaML {
		return 0, invalid("deltaMl must be non-zero and within [-%d, %d]", maxWaterDeltaML, maxWaterDeltaML)
	}
	return s.repo.AddWaterEvent(ctx, userID, deltaML, time.Now())
}

// ListRecent returns the most recent water events up to limit.
func (s *WaterService) ListRecent(ctx context.Context, userID int64, limit int) ([]domain.WaterEvent, error) {
	return s.repo.ListRecentWaterEvents(ctx, userID, limit)
}

// UndoLast deletes the most recent water event.
func (s *WaterService) UndoLast(ctx context.Context, userID int64) (bool, int64, error) {
	items, err := s.repo.ListRecentWaterEvents(ctx, userID, 1)
	if err != nil {
		return false, 0, err
	}
	if len(items) == 0 {
		return false, 0, nil
	}
	if err := s.repo.DeleteWaterEvent(ctx, userID, items[0].ID); err != nil {
		return false, 0, err
	}
	return true, items[0].ID, nil
}
