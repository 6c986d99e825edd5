// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"bodydry/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu            sync.Mutex
	weights       []domain.WeightEntry
	waterEvents   []domain.WaterEvent
	users         []*domain.User
	sessions      map[string]*domain.Session
	profiles      map[int64]domain.Profile
	foods         []domain.Food
	diary         []domain.DiaryEntry
	subscriptions map[int64]domain.Subscription

	weightIDCounter int64
	waterIDCounter  int64
	userIDCounter   int64
	foodIDCounter   int64
	diaryIDCounter  int64
}

// New creates a new in-memory database seeded with the starter food catalogue.
func New() *DB {
	db := &DB{
		sessions:      make(map[string]*domain.Session),
		profiles:      make(map[int64]domain.Profile),
		subscriptions: make(map[int64]domain.Subscription),
	}
	for _, f := range domain.StarterFoods {
		db.foodIDCounter++
		f.ID = db.foodIDCounter
		f.CreatedAt = time.Now().UTC()
		db.foods = append(db.foods, f)
	}
	return db
}

// Ensure interfaces are met.
var (
	_ domain.WeightRepository       = (*DB)(nil)
	_ domain.WaterRepository        = (*DB)(nil)
	_ domain.UserRepository         = (*DB)(nil)
	_ domain.ProfileRepository      = (*DB)(nil)
	_ domain.FoodRepository         = (*DB)(nil)
	_ domain.DiaryRepository        = (*DB)(nil)
	_ domain.SubscriptionRepository = (*DB)(nil)
	_ domain.SessionRepository      = (*SessionRepo)(nil)
)

func dayBounds(localDay string) (time.Time, time.Time, error) {
	dayStart, err := time.ParseInLocation("2006-01-02", localDay, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return dayStart.UTC(), dayStart.Add(24 * time.Hour).UTC(), nil
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

// --- WeightRepository ---

// AddWeightEvent adds a weight event.
func (db *DB) AddWeightEvent(_ context.Context, userID int64, value float64, unit string, createdAt time.Time) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.weightIDCounter++
	db.weights = append(db.weights, domain.WeightEntry{
		ID:        db.weightIDCounter,
		UserID:    userID,
		Value:     value,
		Unit:      unit,
		CreatedAt: createdAt.UTC(),
	})
	return db.weightIDCounter, nil
}

// DeleteLatestWeightEvent deletes the user's most recent weight event.
func (db *DB) DeleteLatestWeightEvent(_ context.Context, userID int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	lastIdx := -1
	for i, w := range db.weights {
		if w.UserID != userID {
			continue
		}
		if lastIdx == -1 || w.CreatedAt.After(db.weights[lastIdx].CreatedAt) {
			lastIdx = i
		}
	}
	if lastIdx == -1 {
		return false, nil
	}
	db.weights = append(db.weights[:lastIdx], db.weights[lastIdx+1:]...)
	return true, nil
}

// LatestWeightForLocalDay returns the latest weight for the given day.
func (db *DB) LatestWeightForLocalDay(_ context.Context, userID int64, localDay string) (*domain.WeightEntry, error) {
	start, end, err := dayBounds(localDay)
	if err != nil {
		return nil, err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	var latest *domain.WeightEntry
	for i := range db.weights {
		w := &db.weights[i]
		if w.UserID != userID || !within(w.CreatedAt, start, end) {
			continue
		}
		if latest == nil || w.CreatedAt.After(latest.CreatedAt) {
			latest = w
		}
	}
	if latest == nil {
		return nil, nil
	}
	ret := *latest
	ret.Day = localDay
	return &ret, nil
}

// ListRecentWeightEvents lists the user's most recent weight events.
func (db *DB) ListRecentWeightEvents(_ context.Context, userID int64, limit int) ([]domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.WeightEntry, 0, len(db.weights))
	for _, w := range db.weights {
		if w.UserID == userID {
			result = append(result, w)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	for i := range result {
		result[i].Day = result[i].CreatedAt.In(time.Local).Format("2006-01-02")
	}
	return result, nil
}

// FirstWeightEvent returns the user's oldest weight event.
func (db *DB) FirstWeightEvent(_ context.Context, userID int64) (*domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var first *domain.WeightEntry
	for i := range db.weights {
		w := &db.weights[i]
		if w.UserID != userID {
			continue
		}
		if first == nil || w.CreatedAt.Before(first.CreatedAt) {
			first = w
		}
	}
	if first == nil {
		return nil, nil
	}
	ret := *first
	ret.Day = ret.CreatedAt.In(time.Local).Format("2006-01-02")
	return &ret, nil
}

// --- WaterRepository ---

// AddWaterEvent adds a water event.
func (db *DB) AddWaterEvent(_ context.Context, userID int64, deltaML int, createdAt time.Time) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.waterIDCounter++
	db.waterEvents = append(db.waterEvents, domain.WaterEvent{
		ID:        db.waterIDCounter,
		UserID:    userID,
		DeltaML:   deltaML,
		CreatedAt: createdAt.UTC(),
	})
	return db.waterIDCounter, nil
}

// DeleteWaterEvent deletes a user's water event by ID. Unknown IDs are ignored.
func (db *DB) DeleteWaterEvent(_ context.Context, userID int64, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, w := range db.waterEvents {
		if w.ID == id && w.UserID == userID {
			db.waterEvents = append(db.waterEvents[:i], db.waterEvents[i+1:]...)
			return nil
		}
	}
	return nil
}

// ListRecentWaterEvents lists the user's most recent water events.
func (db *DB) ListRecentWaterEvents(_ context.Context, userID int64, limit int) ([]domain.WaterEvent, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.WaterEvent, 0, len(db.waterEvents))
	for _, w := range db.waterEvents {
		if w.UserID == userID {
			result = append(result, w)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// WaterTotalForLocalDay returns the user's total water intake for the given day.
func (db *DB) WaterTotalForLocalDay(_ context.Context, userID int64, localDay string) (int, error) {
	start, end, err := dayBounds(localDay)
	if err != nil {
		return 0, err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	var total int
	for _, w := range db.waterEvents {
		if w.UserID == userID && within(w.CreatedAt, start, end) {
			total += w.DeltaML
		}
	}
	return total, nil
}

// --- UserRepository ---

// GetByEmail retrieves a user by email.
func (db *DB) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(_ context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

// Create creates a new user.
func (db *DB) Create(_ context.Context, email, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Email == email {
			return nil, domain.ErrDuplicate
		}
	}

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	return u, nil
}

// Count returns the total number of users.
func (db *DB) Count(_ context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}

// --- ProfileRepository ---

// GetProfile returns the user's profile.
func (db *DB) GetProfile(_ context.Context, userID int64) (*domain.Profile, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	p, ok := db.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// UpsertProfile creates or replaces the user's profile.
func (db *DB) UpsertProfile(_ context.Context, p *domain.Profile) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.profiles[p.UserID] = *p
	return nil
}

// --- FoodRepository ---

// SearchFoods matches query case-insensitively against name and brand.
func (db *DB) SearchFoods(_ context.Context, query string, limit int) ([]domain.Food, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	q := strings.ToLower(query)
	result := make([]domain.Food, 0)
	for _, f := range db.foods {
		if q == "" || strings.Contains(strings.ToLower(f.Name), q) || strings.Contains(strings.ToLower(f.Brand), q) {
			result = append(result, f)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// GetFood retrieves a food by ID.
func (db *DB) GetFood(_ context.Context, id int64) (*domain.Food, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, f := range db.foods {
		if f.ID == id {
			return &f, nil
		}
	}
	return nil, nil
}

// GetFoodByBarcode retrieves a food by barcode.
func (db *DB) GetFoodByBarcode(_ context.Context, barcode string) (*domain.Food, error) {
	if barcode == "" {
		return nil, nil
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, f := range db.foods {
		if f.Barcode == barcode {
			return &f, nil
		}
	}
	return nil, nil
}

// CreateFood stores a new food. Barcodes are unique.
func (db *DB) CreateFood(_ context.Context, f *domain.Food) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if f.Barcode != "" {
		for _, existing := range db.foods {
			if existing.Barcode == f.Barcode {
				return 0, domain.ErrDuplicate
			}
		}
	}

	db.foodIDCounter++
	stored := *f
	stored.ID = db.foodIDCounter
	db.foods = append(db.foods, stored)
	return stored.ID, nil
}

// --- DiaryRepository ---

// AddDiaryEntry stores a new diary entry.
func (db *DB) AddDiaryEntry(_ context.Context, e *domain.DiaryEntry) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.diaryIDCounter++
	stored := *e
	stored.ID = db.diaryIDCounter
	db.diary = append(db.diary, stored)
	return stored.ID, nil
}

// GetDiaryEntry retrieves one of the user's entries.
func (db *DB) GetDiaryEntry(_ context.Context, userID, id int64) (*domain.DiaryEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, e := range db.diary {
		if e.ID == id && e.UserID == userID {
			return &e, nil
		}
	}
	return nil, nil
}

// UpdateDiaryEntry replaces the portion and nutrition of an entry.
func (db *DB) UpdateDiaryEntry(_ context.Context, e *domain.DiaryEntry) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.diary {
		if db.diary[i].ID == e.ID && db.diary[i].UserID == e.UserID {
			db.diary[i].Grams = e.Grams
			db.diary[i].Nutrition = e.Nutrition
			return nil
		}
	}
	return nil
}

// DeleteDiaryEntry removes one of the user's entries.
func (db *DB) DeleteDiaryEntry(_ context.Context, userID, id int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, e := range db.diary {
		if e.ID == id && e.UserID == userID {
			db.diary = append(db.diary[:i], db.diary[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// ListDiaryEntries returns the user's entries for a day in insertion order.
func (db *DB) ListDiaryEntries(_ context.Context, userID int64, day string) ([]domain.DiaryEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.DiaryEntry, 0)
	for _, e := range db.diary {
		if e.UserID == userID && e.Day == day {
			result = append(result, e)
		}
	}
	return result, nil
}

// --- SubscriptionRepository ---

// GetSubscription returns the user's subscription.
func (db *DB) GetSubscription(_ context.Context, userID int64) (*domain.Subscription, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	s, ok := db.subscriptions[userID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

// UpsertSubscription creates or replaces the user's subscription.
func (db *DB) UpsertSubscription(_ context.Context, s *domain.Subscription) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.subscriptions[s.UserID] = *s
	return nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(_ context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		UserAgent: userAgent,
		IP:        ip,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(_ context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(_ context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(_ context.Context) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	now := time.Now()
	var n int64
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
			n++
		}
	}
	return n, nil
}
