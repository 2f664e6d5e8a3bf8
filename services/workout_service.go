package services

import (
	"strings"
	"time"

	"github.com/marcdejesus/fitness/config"
	"github.com/marcdejesus/fitness/models"
	"github.com/marcdejesus/fitness/utils"

	"gorm.io/gorm"
)

type WorkoutService struct{}

func NewWorkoutService() *WorkoutService { return &WorkoutService{} }

// --- exercises ---

func (s *WorkoutService) ListExercises(userID, muscleGroup, query string, cardioOnly *bool) ([]models.Exercise, error) {
	q := config.DB.Model(&models.Exercise{}).
		Where("is_custom = ? OR created_by = ?", false, userID)
	if muscleGroup != "" {
		q = q.Where("muscle_group = ?", muscleGroup)
	}
	if cardioOnly != nil {
		q = q.Where("is_cardio = ?", *cardioOnly)
	}
	if query != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%")
	}
	var out []models.Exercise
	err := q.Order("name ASC").Find(&out).Error
	return out, err
}

func (s *WorkoutService) GetExercise(userID string, exerciseID uint) (*models.Exercise, error) {
	var ex models.Exercise
	err := config.DB.
		Where("is_custom = ? OR created_by = ?", false, userID).
		First(&ex, exerciseID).Error
	if err != nil {
		return nil, err
	}
	return &ex, nil
}

type ExerciseInput struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	MuscleGroup     string `json:"muscle_group" binding:"required,oneof=chest back legs shoulders arms core full_body cardio"`
	IsCardio        bool   `json:"is_cardio"`
	EquipmentNeeded string `json:"equipment_needed"`
	DifficultyLevel int    `json:"difficulty_level" binding:"omitempty,min=1,max=5"`
}

func (s *WorkoutService) CreateExercise(userID string, in ExerciseInput) (*models.Exercise, error) {
	ex := models.Exercise{
		Name:            in.Name,
		Description:     in.Description,
		MuscleGroup:     in.MuscleGroup,
		IsCardio:        in.IsCardio,
		IsCustom:        true,
		CreatedBy:       userID,
		EquipmentNeeded: in.EquipmentNeeded,
		DifficultyLevel: in.DifficultyLevel,
	}
	if ex.DifficultyLevel == 0 {
		ex.DifficultyLevel = 1
	}
	if err := config.DB.Create(&ex).Error; err != nil {
		return nil, err
	}
	return &ex, nil
}

// --- workouts ---

type WorkoutInput struct {
	Name           string  `json:"name"`
	Date           string  `json:"date"` // YYYY-MM-DD, defaults to today
	Duration       int     `json:"duration" binding:"gte=0"`
	Notes          string  `json:"notes"`
	CaloriesBurned int     `json:"calories_burned" binding:"gte=0"`
	IsPublic       *bool   `json:"is_public"`
	StartTime      *string `json:"start_time"` // RFC 3339
	EndTime        *string `json:"end_time"`
}

func (s *WorkoutService) CreateWorkout(userID string, in WorkoutInput) (*models.Workout, error) {
	w := models.Workout{
		UserID:         userID,
		Name:           in.Name,
		Duration:       in.Duration,
		Notes:          in.Notes,
		CaloriesBurned: in.CaloriesBurned,
	}
	if err := applyWorkoutInput(&w, in); err != nil {
		return nil, err
	}
	if err := config.DB.Create(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *WorkoutService) UpdateWorkout(userID string, workoutID uint, in WorkoutInput) (*models.Workout, error) {
	w, err := s.ownedWorkout(userID, workoutID)
	if err != nil {
		return nil, err
	}
	w.Name = in.Name
	w.Duration = in.Duration
	w.Notes = in.Notes
	w.CaloriesBurned = in.CaloriesBurned
	if err := applyWorkoutInput(w, in); err != nil {
		return nil, err
	}
	if err := config.DB.Save(w).Error; err != nil {
		return nil, err
	}
	return s.GetWorkout(userID, w.ID)
}

func applyWorkoutInput(w *models.Workout, in WorkoutInput) error {
	loc := config.Location()
	if in.Date == "" {
		if w.Date.IsZero() {
			w.Date = dayStart(time.Now().In(loc))
		}
	} else {
		date, err := time.ParseInLocation(dateLayout, in.Date, loc)
		if err != nil {
			return utils.NewValidationError("date", "invalid date format, expected YYYY-MM-DD")
		}
		w.Date = date
	}
	if in.IsPublic != nil {
		w.IsPublic = *in.IsPublic
	}
	if in.StartTime != nil {
		t, err := time.Parse(time.RFC3339, *in.StartTime)
		if err != nil {
			return utils.NewValidationError("start_time", "invalid timestamp, expected RFC 3339")
		}
		w.StartTime = &t
	}
	if in.EndTime != nil {
		t, err := time.Parse(time.RFC3339, *in.EndTime)
		if err != nil {
			return utils.NewValidationError("end_time", "invalid timestamp, expected RFC 3339")
		}
		w.EndTime = &t
	}
	if w.StartTime != nil && w.EndTime != nil {
		if w.EndTime.Before(*w.StartTime) {
			return utils.NewValidationError("end_time", "end time is before start time")
		}
		if w.Duration == 0 {
			w.Duration = int(w.EndTime.Sub(*w.StartTime).Minutes())
		}
	}
	return nil
}

func (s *WorkoutService) GetWorkout(userID string, workoutID uint) (*models.Workout, error) {
	var w models.Workout
	err := config.DB.
		Preload("Sets", func(db *gorm.DB) *gorm.DB {
			return db.Order("workout_sets.exercise_id ASC, workout_sets.set_number ASC")
		}).
		Preload("Sets.Exercise").
		Where("id = ? AND user_id = ?", workoutID, userID).
		First(&w).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *WorkoutService) ListWorkouts(userID string, limit, offset int) ([]models.Workout, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var out []models.Workout
	err := config.DB.
		Preload("Sets").
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&out).Error
	return out, err
}

func (s *WorkoutService) DeleteWorkout(userID string, workoutID uint) error {
	w, err := s.ownedWorkout(userID, workoutID)
	if err != nil {
		return err
	}
	if err := config.DB.Where("workout_id = ?", w.ID).Delete(&models.WorkoutSet{}).Error; err != nil {
		return err
	}
	return config.DB.Delete(w).Error
}

func (s *WorkoutService) ownedWorkout(userID string, workoutID uint) (*models.Workout, error) {
	var w models.Workout
	if err := config.DB.Where("id = ? AND user_id = ?", workoutID, userID).First(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

// --- sets ---

type SetInput struct {
	ExerciseID uint    `json:"exercise_id" binding:"required"`
	SetNumber  int     `json:"set_number" binding:"required,min=1"`
	Reps       int     `json:"reps" binding:"gte=0"`
	Weight     float64 `json:"weight" binding:"gte=0"`
	Duration   int     `json:"duration" binding:"gte=0"`
	Distance   float64 `json:"distance" binding:"gte=0"`
	RPE        float64 `json:"rpe" binding:"gte=0,lte=10"`
	IsWarmup   bool    `json:"is_warmup"`
	Notes      string  `json:"notes"`
}

// AddSet appends a set to an owned workout. Duplicate set numbers for
// the same exercise are rejected before hitting the unique index so the
// caller gets a field error rather than a driver error.
func (s *WorkoutService) AddSet(userID string, workoutID uint, in SetInput) (*models.WorkoutSet, error) {
	w, err := s.ownedWorkout(userID, workoutID)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetExercise(userID, in.ExerciseID); err != nil {
		return nil, err
	}

	var count int64
	err = config.DB.Model(&models.WorkoutSet{}).
		Where("workout_id = ? AND exercise_id = ? AND set_number = ?", w.ID, in.ExerciseID, in.SetNumber).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, utils.NewValidationError("set_number", "set number already recorded for this exercise")
	}

	set := models.WorkoutSet{
		WorkoutID:  w.ID,
		ExerciseID: in.ExerciseID,
		SetNumber:  in.SetNumber,
		Reps:       in.Reps,
		Weight:     in.Weight,
		Duration:   in.Duration,
		Distance:   in.Distance,
		RPE:        in.RPE,
		IsWarmup:   in.IsWarmup,
		Notes:      in.Notes,
	}
	if err := config.DB.Create(&set).Error; err != nil {
		return nil, err
	}
	if err := config.DB.Preload("Exercise").First(&set, set.ID).Error; err != nil {
		return nil, err
	}
	return &set, nil
}

func (s *WorkoutService) DeleteSet(userID string, workoutID, setID uint) error {
	w, err := s.ownedWorkout(userID, workoutID)
	if err != nil {
		return err
	}
	var set models.WorkoutSet
	if err := config.DB.Where("id = ? AND workout_id = ?", setID, w.ID).First(&set).Error; err != nil {
		return err
	}
	return config.DB.Delete(&set).Error
}

// --- stats ---

// WorkoutStats aggregates a trailing window of training. Volume counts
// working sets only: weight times reps, warmups excluded.
type WorkoutStats struct {
	Days             int     `json:"days"`
	TotalWorkouts    int64   `json:"total_workouts"`
	TotalSets        int64   `json:"total_sets"`
	TotalVolume      float64 `json:"total_volume"`
	TotalCalories    int64   `json:"total_calories"`
	AvgDuration      float64 `json:"avg_duration"`
	MostTrainedGroup string  `json:"most_trained_group"`
}

func (s *WorkoutService) Stats(userID string, days int) (*WorkoutStats, error) {
	if days <= 0 {
		days = 30
	}
	since := dayStart(time.Now().In(config.Location())).AddDate(0, 0, -days)
	stats := &WorkoutStats{Days: days}

	base := config.DB.Model(&models.Workout{}).
		Where("user_id = ? AND date >= ?", userID, since)

	if err := base.Session(&gorm.Session{}).Count(&stats.TotalWorkouts).Error; err != nil {
		return nil, err
	}
	if stats.TotalWorkouts == 0 {
		return stats, nil
	}

	type workoutAgg struct {
		AvgDuration   float64
		TotalCalories int64
	}
	var agg workoutAgg
	err := base.Session(&gorm.Session{}).
		Select("AVG(duration) AS avg_duration, COALESCE(SUM(calories_burned), 0) AS total_calories").
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	stats.AvgDuration = agg.AvgDuration
	stats.TotalCalories = agg.TotalCalories

	setsInWindow := config.DB.Model(&models.WorkoutSet{}).
		Joins("JOIN workouts ON workouts.id = workout_sets.workout_id").
		Where("workouts.user_id = ? AND workouts.date >= ? AND workouts.deleted_at IS NULL", userID, since)

	if err := setsInWindow.Session(&gorm.Session{}).Count(&stats.TotalSets).Error; err != nil {
		return nil, err
	}

	type volumeAgg struct {
		Volume float64
	}
	var vol volumeAgg
	err = setsInWindow.Session(&gorm.Session{}).
		Where("workout_sets.is_warmup = ?", false).
		Select("COALESCE(SUM(workout_sets.weight * workout_sets.reps), 0) AS volume").
		Scan(&vol).Error
	if err != nil {
		return nil, err
	}
	stats.TotalVolume = vol.Volume

	type groupCount struct {
		MuscleGroup string
		N           int64
	}
	var top groupCount
	err = config.DB.Model(&models.WorkoutSet{}).
		Joins("JOIN workouts ON workouts.id = workout_sets.workout_id").
		Joins("JOIN exercises ON exercises.id = workout_sets.exercise_id").
		Where("workouts.user_id = ? AND workouts.date >= ? AND workouts.deleted_at IS NULL", userID, since).
		Select("exercises.muscle_group, COUNT(*) AS n").
		Group("exercises.muscle_group").
		Order("n DESC, exercises.muscle_group ASC").
		Limit(1).
		Scan(&top).Error
	if err != nil {
		return nil, err
	}
	stats.MostTrainedGroup = top.MuscleGroup

	return stats, nil
}

// History lists workouts in a trailing day window, newest first.
func (s *WorkoutService) History(userID string, days int) ([]models.Workout, error) {
	if days <= 0 {
		days = 30
	}
	since := dayStart(time.Now().In(config.Location())).AddDate(0, 0, -days)
	var out []models.Workout
	err := config.DB.
		Preload("Sets").
		Preload("Sets.Exercise").
		Where("user_id = ? AND date >= ?", userID, since).
		Order("date DESC, id DESC").
		Find(&out).Error
	return out, err
}
