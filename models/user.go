package models

import (
	"time"

	"gorm.io/gorm"
)

// UserProfile is the local record for an externally-authenticated user.
// UserID holds the identity provider's subject identifier and is the join
// key for everything the user owns.
type UserProfile struct {
	gorm.Model
	UserID       string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"user_id"`
	Email        string     `gorm:"not null" json:"email"`
	DisplayName  string     `gorm:"size:100" json:"display_name"`
	AvatarURL    string     `json:"avatar_url"`
	Bio          string     `gorm:"type:text" json:"bio"`
	FitnessLevel string     `gorm:"size:20;default:beginner" json:"fitness_level"` // beginner | intermediate | advanced
	Height       float64    `json:"height"`                                        // cm
	Weight       float64    `json:"weight"`                                        // kg
	DateOfBirth  *time.Time `json:"date_of_birth"`
}

type UserSettings struct {
	gorm.Model
	UserID                string `gorm:"type:varchar(255);uniqueIndex;not null" json:"user_id"`
	MeasurementSystem     string `gorm:"size:10;default:metric" json:"measurement_system"` // metric | imperial
	PrimaryGoal           string `gorm:"size:20;default:strength" json:"primary_goal"`     // strength | weight_loss | muscle_gain | endurance
	WorkoutDaysPerWeek    int    `gorm:"default:3" json:"workout_days_per_week"`
	NotificationWorkouts  bool   `gorm:"default:true" json:"notification_workouts"`
	NotificationNutrition bool   `gorm:"default:true" json:"notification_nutrition"`
}

// LocalCredential backs the built-in identity provider used when no
// external provider is configured. Passwords are bcrypt hashes.
type LocalCredential struct {
	gorm.Model
	Email         string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash  string    `gorm:"not null" json:"-"`
	SubjectID     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"subject_id"`
	ResetToken    string    `gorm:"index" json:"-"`
	ResetTokenExp time.Time `json:"-"`
}
