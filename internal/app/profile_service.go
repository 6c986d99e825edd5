package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bodydry/internal/domain"
)

const (
	minProfileWeightKg = 20
	maxProfileWeightKg = 400
)

// GoalsProvider resolves a user's current daily goals.
type GoalsProvider interface {
	Goals(ctx context.Context, userID int64) (domain.Goals, error)
}

// ProfileService manages user profiles and keeps the stored goals in step
// with the profile fields they are derived from.
type ProfileService struct {
	repo domain.ProfileRepository
}

// NewProfileService creates a ProfileService backed by the given repository.
func NewProfileService(repo domain.ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

// ProfileInput is the caller-supplied part of a profile. BirthDate is a
// YYYY-MM-DD string.
type ProfileInput struct {
	DisplayName   string               `json:"displayName"`
	WeightKg      float64              `json:"weightKg"`
	HeightCm      float64              `json:"heightCm"`
	BirthDate     string               `json:"birthDate"`
	Gender        domain.Gender        `json:"gender"`
	ActivityLevel domain.ActivityLevel `json:"activityLevel"`
	Goal          domain.Goal          `json:"goal"`
}

// Get returns the user's profile or ErrProfileNotFound.
func (s *ProfileService) Get(ctx context.Context, userID int64) (*domain.Profile, error) {
	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

// Save validates the input, derives goals from it and stores the profile.
func (s *ProfileService) Save(ctx context.Context, userID int64, in ProfileInput) (*domain.Profile, error) {
	params, err := in.bodyParams(time.Now())
	if err != nil {
		return nil, err
	}

	p := &domain.Profile{
		UserID:      userID,
		DisplayName: strings.TrimSpace(in.DisplayName),
		BodyParams:  params,
		Goals:       domain.ComputeAllGoals(&params),
		UpdatedAt:   time.Now().UTC(),
	}
	if err := s.repo.UpsertProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return p, nil
}

// Goals returns the stored goals, or the default goal set when the user has
// no profile yet.
func (s *ProfileService) Goals(ctx context.Context, userID int64) (domain.Goals, error) {
	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return domain.Goals{}, err
	}
	if p == nil {
		return domain.ComputeAllGoals(nil), nil
	}
	return p.Goals, nil
}

// UpdateWeight sets the profile weight and re-derives goals. It does nothing
// when the user has no profile. Weights outside the range Save accepts are
// rejected and leave the profile unchanged.
func (s *ProfileService) UpdateWeight(ctx context.Context, userID int64, weightKg float64) error {
	if err := validateWeightKg(weightKg); err != nil {
		return err
	}
	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil || p == nil {
		return err
	}
	p.WeightKg = weightKg
	p.Goals = domain.ComputeAllGoals(&p.BodyParams)
	p.UpdatedAt = time.Now().UTC()
	return s.repo.UpsertProfile(ctx, p)
}

func validateWeightKg(kg float64) error {
	if !(kg >= minProfileWeightKg && kg <= maxProfileWeightKg) {
		return invalid("weightKg must be within [%d, %d]", minProfileWeightKg, maxProfileWeightKg)
	}
	return nil
}

func (in ProfileInput) bodyParams(now time.Time) (domain.BodyParams, error) {
	if err := validateWeightKg(in.WeightKg); err != nil {
		return domain.BodyParams{}, err
	}
	if in.HeightCm < 100 || in.HeightCm > 250 {
		return domain.BodyParams{}, invalid("heightCm must be within [100, 250]")
	}
	birth, err := time.Parse("2006-01-02", in.BirthDate)
	if err != nil {
		return domain.BodyParams{}, invalid("birthDate must be YYYY-MM-DD")
	}
	if !birth.Before(now) || birth.Year() < 1900 {
		return domain.BodyParams{}, invalid("birthDate is out of range")
	}
	if !domain.ValidGender(in.Gender) {
		return domain.BodyParams{}, invalid("gender must be MALE or FEMALE")
	}
	if !domain.ValidActivityLevel(in.ActivityLevel) {
		return domain.BodyParams{}, invalid("activityLevel must be one of SEDENTARY, LIGHT, MODERATE, ACTIVE, VERY_ACTIVE")
	}
	if !domain.ValidGoal(in.Goal) {
		return domain.BodyParams{}, invalid("goal must be one of REDUCE, MAINTAIN, BUILD, AGGRESSIVE_CUT")
	}
	return domain.BodyParams{
		WeightKg:      in.WeightKg,
		HeightCm:      in.HeightCm,
		BirthDate:     birth,
		Gender:        in.Gender,
		ActivityLevel: in.ActivityLevel,
		Goal:          in.Goal,
	}, nil
}
