package domain

import (
	"context"
	"time"
)

// Gender selects the BMR offset and the calorie floor.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// ActivityLevel is one of five ordered daily activity categories.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "SEDENTARY"
	ActivityLight      ActivityLevel = "LIGHT"
	ActivityModerate   ActivityLevel = "MODERATE"
	ActivityActive     ActivityLevel = "ACTIVE"
	ActivityVeryActive ActivityLevel = "VERY_ACTIVE"
)

// Goal is the user's body-composition goal.
type Goal string

const (
	GoalReduce        Goal = "REDUCE"
	GoalMaintain      Goal = "MAINTAIN"
	GoalBuild         Goal = "BUILD"
	GoalAggressiveCut Goal = "AGGRESSIVE_CUT"
)

// ValidGender reports whether g is a known gender category.
func ValidGender(g Gender) bool {
	return g == GenderMale || g == GenderFemale
}

// ValidActivityLevel reports whether a is a known activity level.
func ValidActivityLevel(a ActivityLevel) bool {
	_, ok := activityMultipliers[a]
	return ok
}

// ValidGoal reports whether g is a known goal category.
func ValidGoal(g Goal) bool {
	_, ok := goalMultipliers[g]
	return ok
}

// BodyParams are the profile fields the goal calculator reads. Zero values
// mean "not provided".
type BodyParams struct {
	WeightKg      float64       `json:"weightKg"`
	HeightCm      float64       `json:"heightCm"`
	BirthDate     time.Time     `json:"birthDate"`
	Gender        Gender        `json:"gender"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
	Goal          Goal          `json:"goal"`
}

// Profile is a user's body profile together with the goals derived from it.
type Profile struct {
	UserID      int64  `json:"userId"`
	DisplayName string `json:"displayName"`
	BodyParams
	Goals     Goals     `json:"goals"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProfileRepository is the port for profile persistence.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID int64) (*Profile, error)
	UpsertProfile(ctx context.Context, p *Profile) error
}
