package app_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"bodydry/internal/adapter/memory"
	"bodydry/internal/app"
	"bodydry/internal/domain"
)

type mockWeightRepo struct {
	addFn    func(ctx context.Context, userID int64, v float64, u string, t time.Time) (int64, error)
	deleteFn func(ctx context.Context, userID int64) (bool, error)
	latestFn func(ctx context.Context, userID int64, day string) (*domain.WeightEntry, error)
	listFn   func(ctx context.Context, userID int64, limit int) ([]domain.WeightEntry, error)
	firstFn  func(ctx context.Context, userID int64) (*domain.WeightEntry, error)
}

func (m *mockWeightRepo) AddWeightEvent(ctx context.Context, userID int64, v float64, u string, t time.Time) (int64, error) {
	if m.addFn != nil {
		return m.addFn(ctx, userID, v, u, t)
	}
	return 0, nil
}

func (m *mockWeightRepo) DeleteLatestWeightEvent(ctx context.Context, userID int64) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID)
	}
	return false, nil
}

func (m *mockWeightRepo) LatestWeightForLocalDay(ctx context.Context, userID int64, day string) (*domain.WeightEntry, error) {
	if m.latestFn != nil {
		return m.latestFn(ctx, userID, day)
	}
	return nil, nil
}

func (m *mockWeightRepo) ListRecentWeightEvents(ctx context.Context, userID int64, limit int) ([]domain.WeightEntry, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockWeightRepo) FirstWeightEvent(ctx context.Context, userID int64) (*domain.WeightEntry, error) {
	if m.firstFn != nil {
		return m.firstFn(ctx, userID)
	}
	return nil, nil
}

type recordingProfiles struct {
	calls []float64
	err   error
}

func (r *recordingProfiles) UpdateWeight(_ context.Context, _ int64, kg float64) error {
	r.calls = append(r.calls, kg)
	return r.err
}

func TestRecordWeight_Validation(t *testing.T) {
	svc := app.NewWeightService(&mockWeightRepo{}, nil)

	tests := []struct {
		name  string
		value float64
		unit  string
	}{
		{"zero value", 0, "kg"},
		{"negative value", -5, "kg"},
		{"bad unit", 80, "stones"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.RecordWeight(context.Background(), 1, tc.value, tc.unit)
			if !app.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestRecordWeight_Success(t *testing.T) {
	entry := &domain.WeightEntry{ID: 1, Value: 80, Unit: "kg"}
	repo := &mockWeightRepo{
		addFn: func(_ context.Context, _ int64, _ float64, _ string, _ time.Time) (int64, error) {
			return 1, nil
		},
		latestFn: func(_ context.Context, _ int64, _ string) (*domain.WeightEntry, error) {
			return entry, nil
		},
	}
	svc := app.NewWeightService(repo, nil)
	got, today, err := svc.RecordWeight(context.Background(), 1, 80, "kg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if today == "" {
		t.Fatal("expected today string")
	}
	if got == nil || got.ID != 1 {
		t.Fatalf("unexpected entry: %v", got)
	}
}

func TestRecordWeight_SyncsProfileInKg(t *testing.T) {
	profiles := &recordingProfiles{}
	svc := app.NewWeightService(&mockWeightRepo{}, profiles)

	if _, _, err := svc.RecordWeight(context.Background(), 1, 176.37, "lb"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profiles.calls) != 1 {
		t.Fatalf("expected one profile update, got %d", len(profiles.calls))
	}
	if math.Abs(profiles.calls[0]-80) > 0.01 {
		t.Fatalf("expected ~80 kg, got %v", profiles.calls[0])
	}
}

func TestRecordWeight_ProfileSyncErrorIgnored(t *testing.T) {
	profiles := &recordingProfiles{err: errors.New("db down")}
	svc := app.NewWeightService(&mockWeightRepo{}, profiles)

	if _, _, err := svc.RecordWeight(context.Background(), 1, 80, "kg"); err != nil {
		t.Fatalf("profile sync failure must not fail the write: %v", err)
	}
}

func TestRecordWeight_OutOfRangeLeavesProfile(t *testing.T) {
	ctx := context.Background()
	db := memory.New()
	profiles := app.NewProfileService(db)
	in := validProfileInput()
	in.WeightKg = 70
	before, err := profiles.Save(ctx, 1, in)
	if err != nil {
		t.Fatalf("save profile: %v", err)
	}

	svc := app.NewWeightService(db, profiles)
	for _, tc := range []struct {
		value float64
		unit  string
	}{
		{2000, "kg"},
		{10, "kg"},
		{1000, "lb"},
	} {
		if _, _, err := svc.RecordWeight(ctx, 1, tc.value, tc.unit); err != nil {
			t.Fatalf("RecordWeight(%v %s): %v", tc.value, tc.unit, err)
		}
	}

	after, err := profiles.Get(ctx, 1)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if after.WeightKg != 70 {
		t.Fatalf("expected profile weight 70, got %v", after.WeightKg)
	}
	if after.Goals != before.Goals {
		t.Fatalf("expected goals unchanged, got %+v", after.Goals)
	}

	if _, _, err := svc.RecordWeight(ctx, 1, 72, "kg"); err != nil {
		t.Fatalf("RecordWeight: %v", err)
	}
	after, _ = profiles.Get(ctx, 1)
	if after.WeightKg != 72 {
		t.Fatalf("expected in-range weight to sync, got %v", after.WeightKg)
	}
}

func TestRecordWeight_RepoError(t *testing.T) {
	profiles := &recordingProfiles{}
	repo := &mockWeightRepo{
		addFn: func(_ context.Context, _ int64, _ float64, _ string, _ time.Time) (int64, error) {
			return 0, errors.New("db down")
		},
	}
	svc := app.NewWeightService(repo, profiles)
	if _, _, err := svc.RecordWeight(context.Background(), 1, 80, "kg"); err == nil {
		t.Fatal("expected error from repo")
	}
	if len(profiles.calls) != 0 {
		t.Fatal("profile must not be updated when the write fails")
	}
}

func TestGetTodayWeight(t *testing.T) {
	entry := &domain.WeightEntry{ID: 5, Value: 75, Unit: "kg"}
	repo := &mockWeightRepo{
		latestFn: func(_ context.Context, _ int64, day string) (*domain.WeightEntry, error) {
			if day != "2026-01-15" {
				t.Fatalf("unexpected day: %s", day)
			}
			return entry, nil
		},
	}
	svc := app.NewWeightService(repo, nil)
	got, err := svc.GetTodayWeight(context.Background(), 1, "2026-01-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.ID != 5 {
		t.Fatalf("unexpected entry: %v", got)
	}
}

func TestUndoLastWeight_ResyncsProfile(t *testing.T) {
	profiles := &recordingProfiles{}
	repo := &mockWeightRepo{
		deleteFn: func(_ context.Context, _ int64) (bool, error) { return true, nil },
		listFn: func(_ context.Context, _ int64, _ int) ([]domain.WeightEntry, error) {
			return []domain.WeightEntry{{ID: 2, Value: 78, Unit: "kg"}}, nil
		},
	}
	svc := app.NewWeightService(repo, profiles)
	deleted, _, _, err := svc.UndoLast(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Fatal("expected deleted=true")
	}
	if len(profiles.calls) != 1 || profiles.calls[0] != 78 {
		t.Fatalf("expected profile resync to 78 kg, got %v", profiles.calls)
	}
}

func TestUndoLastWeight_NothingToDelete(t *testing.T) {
	profiles := &recordingProfiles{}
	svc := app.NewWeightService(&mockWeightRepo{}, profiles)
	deleted, _, _, err := svc.UndoLast(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted || len(profiles.calls) != 0 {
		t.Fatalf("expected no-op, got deleted=%v calls=%v", deleted, profiles.calls)
	}
}

func TestUndoLastWeight_LatestError(t *testing.T) {
	repo := &mockWeightRepo{
		deleteFn: func(_ context.Context, _ int64) (bool, error) { return true, nil },
		latestFn: func(_ context.Context, _ int64, _ string) (*domain.WeightEntry, error) {
			return nil, errors.New("db down")
		},
	}
	svc := app.NewWeightService(repo, nil)
	if _, _, _, err := svc.UndoLast(context.Background(), 1); err == nil {
		t.Fatal("expected error from latest lookup")
	}
}

func TestListRecentWeight_Error(t *testing.T) {
	repo := &mockWeightRepo{
		listFn: func(_ context.Context, _ int64, _ int) ([]domain.WeightEntry, error) {
			return nil, errors.New("db down")
		},
	}
	svc := app.NewWeightService(repo, nil)
	if _, err := svc.ListRecent(context.Background(), 1, 10); err == nil {
		t.Fatal("expected error")
	}
}

func TestWeightProgress(t *testing.T) {
	repo := &mockWeightRepo{
		firstFn: func(_ context.Context, _ int64) (*domain.WeightEntry, error) {
			return &domain.WeightEntry{ID: 1, Day: "2026-01-01", Value: 90, Unit: "kg"}, nil
		},
		listFn: func(_ context.Context, _ int64, _ int) ([]domain.WeightEntry, error) {
			return []domain.WeightEntry{{ID: 9, Day: "2026-02-01", Value: 187.39, Unit: "lb"}}, nil
		},
	}
	svc := app.NewWeightService(repo, nil)
	p, err := svc.Progress(context.Background(), 1, "kg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.First == nil || p.Latest == nil {
		t.Fatalf("expected both points, got %+v", p)
	}
	if p.First.Day != "2026-01-01" || p.Latest.Day != "2026-02-01" {
		t.Fatalf("unexpected days: %s %s", p.First.Day, p.Latest.Day)
	}
	if math.Abs(p.Change-(-5)) > 0.01 {
		t.Fatalf("expected change ~-5 kg, got %v", p.Change)
	}
}

func TestWeightProgress_NoData(t *testing.T) {
	svc := app.NewWeightService(&mockWeightRepo{}, nil)
	p, err := svc.Progress(context.Background(), 1, "lb")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.First != nil || p.Latest != nil || p.Change != 0 || p.Unit != "lb" {
		t.Fatalf("expected empty progress, got %+v", p)
	}
}

func TestWeightProgress_BadUnit(t *testing.T) {
	svc := app.NewWeightService(&mockWeightRepo{}, nil)
	if _, err := svc.Progress(context.Background(), 1, "stones"); !app.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
