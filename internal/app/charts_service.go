package app

import (
	"context"
	"math"
	"time"

	"bodydry/internal/domain"
)

// MaxFreeChartDays is the longest chart range available without premium.
const MaxFreeChartDays = 30

const maxChartDays = 366

// CalorieSource reports calories logged on a local day.
type CalorieSource interface {
	CaloriesForDay(ctx context.Context, userID int64, day string) (float64, error)
}

// ChartsService encapsulates chart data retrieval use cases.
type ChartsService struct {
	weightRepo domain.WeightRepository
	waterRepo  domain.WaterRepository
	calories   CalorieSource
}

// NewChartsService creates a ChartsService backed by the given repositories.
func NewChartsService(wr domain.WeightRepository, wa domain.WaterRepository, cs CalorieSource) *ChartsService {
	return &ChartsService{weightRepo: wr, waterRepo: wa, calories: cs}
}

// DayPoint is a single data point returned by GetDaily.
type DayPoint struct {
	Day      string       `json:"day"`
	WaterML  int          `json:"waterMl"`
	Calories int          `json:"calories"`
	Weight   *WeightPoint `json:"weight"`
}

// GetDaily returns per-day chart data for the last days days, with weights
// converted to the requested unit.
func (s *ChartsService) GetDaily(ctx context.Context, userID int64, days int, unit string) ([]DayPoint, error) {
	if !domain.ValidWeightUnit(unit) {
		return nil, invalid("unit must be \"kg\" or \"lb\"")
	}
	days = min(max(days, 0), maxChartDays)

	today := time.Now().In(time.Local)
	points := make([]DayPoint, 0, days)

	for i := days - 1; i >= 0; i-- {
		dayStr := today.AddDate(0, 0, -i).Format(dayLayout)

		waterML, err := s.waterRepo.WaterTotalForLocalDay(ctx, userID, dayStr)
		if err != nil {
			return nil, err
		}

		kcal, err := s.calories.CaloriesForDay(ctx, userID, dayStr)
		if err != nil {
			return nil, err
		}

		entry, err := s.weightRepo.LatestWeightForLocalDay(ctx, userID, dayStr)
		if err != nil {
			return nil, err
		}

		var wp *WeightPoint
		if entry != nil {
			wp = &WeightPoint{Day: dayStr, Value: domain.ConvertWeight(entry.Value, entry.Unit, unit), Unit: unit}
		}

		points = append(points, DayPoint{Day: dayStr, WaterML: waterML, Calories: int(math.Round(kcal)), Weight: wp})
	}
	return points, nil
}
