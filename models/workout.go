package models

import (
	"time"

	"gorm.io/gorm"
)

type Exercise struct {
	gorm.Model
	Name        string `gorm:"size:100;index;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	// chest | back | legs | shoulders | arms | core | full_body | cardio
	MuscleGroup     string `gorm:"size:50;index;not null" json:"muscle_group"`
	IsCardio        bool   `json:"is_cardio"`
	IsCustom        bool   `json:"is_custom"`
	CreatedBy       string `gorm:"type:varchar(255)" json:"created_by"`
	EquipmentNeeded string `gorm:"size:100" json:"equipment_needed"`
	DifficultyLevel int    `gorm:"default:1" json:"difficulty_level"`
	Illustration    string `json:"illustration"`
	VideoURL        string `json:"video_url"`
}

type Workout struct {
	gorm.Model
	UserID         string       `gorm:"type:varchar(255);index;not null" json:"user_id"`
	Name           string       `gorm:"size:100" json:"name"`
	Date           time.Time    `gorm:"index" json:"date"`
	StartTime      *time.Time   `json:"start_time"`
	EndTime        *time.Time   `json:"end_time"`
	Duration       int          `json:"duration"` // minutes
	Notes          string       `gorm:"type:text" json:"notes"`
	CaloriesBurned int          `json:"calories_burned"`
	IsPublic       bool         `json:"is_public"`
	Sets           []WorkoutSet `json:"sets"`
}

// WorkoutSet records one set of one exercise. SetNumber is unique within
// (workout, exercise); the service validates this before insert.
type WorkoutSet struct {
	gorm.Model
	WorkoutID  uint     `gorm:"uniqueIndex:idx_workout_exercise_set;not null" json:"workout_id"`
	ExerciseID uint     `gorm:"uniqueIndex:idx_workout_exercise_set;not null" json:"exercise_id"`
	Exercise   Exercise `json:"exercise"`
	SetNumber  int      `gorm:"uniqueIndex:idx_workout_exercise_set;not null" json:"set_number"`
	Reps       int      `json:"reps"`
	Weight     float64  `json:"weight"`
	Duration   int      `json:"duration"` // seconds, cardio sets
	Distance   float64  `json:"distance"` // km, cardio sets
	RPE        float64  `json:"rpe"`
	IsWarmup   bool     `json:"is_warmup"`
	Notes      string   `gorm:"type:text" json:"notes"`
}
