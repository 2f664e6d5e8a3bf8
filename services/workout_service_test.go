package services

import (
	"testing"

	"github.com/marcdejesus/fitness/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedExercise(t *testing.T, svc *WorkoutService, name, group string) uint {
	t.Helper()
	ex, err := svc.CreateExercise("u1", ExerciseInput{Name: name, MuscleGroup: group})
	require.NoError(t, err)
	return ex.ID
}

func TestWorkoutCRUDOwnerScoped(t *testing.T) {
	setupTestDB(t)
	svc := NewWorkoutService()

	w, err := svc.CreateWorkout("u1", WorkoutInput{Name: "Push Day", Duration: 60})
	require.NoError(t, err)
	assert.False(t, w.Date.IsZero())

	_, err = svc.GetWorkout("u2", w.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	got, err := svc.GetWorkout("u1", w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Push Day", got.Name)

	err = svc.DeleteWorkout("u2", w.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, svc.DeleteWorkout("u1", w.ID))
	_, err = svc.GetWorkout("u1", w.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCreateWorkoutBadDate(t *testing.T) {
	setupTestDB(t)
	svc := NewWorkoutService()

	_, err := svc.CreateWorkout("u1", WorkoutInput{Date: "15-03-2026"})
	var verr *utils.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "date")
}

func TestAddSetDuplicateSetNumber(t *testing.T) {
	setupTestDB(t)
	svc := NewWorkoutService()

	exID := seedExercise(t, svc, "Bench Press", "chest")
	w, err := svc.CreateWorkout("u1", WorkoutInput{Name: "Chest"})
	require.NoError(t, err)

	_, err = svc.AddSet("u1", w.ID, SetInput{ExerciseID: exID, SetNumber: 1, Reps: 8, Weight: 80})
	require.NoError(t, err)

	_, err = svc.AddSet("u1", w.ID, SetInput{ExerciseID: exID, SetNumber: 1, Reps: 8, Weight: 80})
	var verr *utils.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "set_number")

	// Same set number on a different exercise is fine.
	otherID := seedExercise(t, svc, "Incline Press", "chest")
	_, err = svc.AddSet("u1", w.ID, SetInput{ExerciseID: otherID, SetNumber: 1, Reps: 10, Weight: 60})
	assert.NoError(t, err)
}

func TestStatsVolumeExcludesWarmups(t *testing.T) {
	setupTestDB(t)
	svc := NewWorkoutService()

	benchID := seedExercise(t, svc, "Bench Press", "chest")
	squatID := seedExercise(t, svc, "Squat", "legs")

	w, err := svc.CreateWorkout("u1", WorkoutInput{Name: "Full Body", Duration: 50, CaloriesBurned: 400})
	require.NoError(t, err)

	_, err = svc.AddSet("u1", w.ID, SetInput{ExerciseID: benchID, SetNumber: 1, Reps: 10, Weight: 40, IsWarmup: true})
	require.NoError(t, err)
	_, err = svc.AddSet("u1", w.ID, SetInput{ExerciseID: benchID, SetNumber: 2, Reps: 8, Weight: 80})
	require.NoError(t, err)
	_, err = svc.AddSet("u1", w.ID, SetInput{ExerciseID: squatID, SetNumber: 1, Reps: 5, Weight: 100})
	require.NoError(t, err)

	stats, err := svc.Stats("u1", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalWorkouts)
	assert.Equal(t, int64(3), stats.TotalSets)
	// 8*80 + 5*100; the warmup set contributes nothing.
	assert.Equal(t, float64(1140), stats.TotalVolume)
	assert.Equal(t, int64(400), stats.TotalCalories)
	assert.Equal(t, float64(50), stats.AvgDuration)
	// Two chest sets vs one leg set.
	assert.Equal(t, "chest", stats.MostTrainedGroup)
}

func TestStatsEmptyWindow(t *testing.T) {
	setupTestDB(t)
	svc := NewWorkoutService()

	stats, err := svc.Stats("u1", 7)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalWorkouts)
	assert.Zero(t, stats.TotalVolume)
	assert.Empty(t, stats.MostTrainedGroup)
}

func TestHistoryWindow(t *testing.T) {
	setupTestDB(t)
	svc := NewWorkoutService()

	recent, err := svc.CreateWorkout("u1", WorkoutInput{Name: "Recent"})
	require.NoError(t, err)
	old, err := svc.CreateWorkout("u1", WorkoutInput{
		Name: "Old",
		Date: today().AddDate(0, 0, -45).Format("2006-01-02"),
	})
	require.NoError(t, err)

	workouts, err := svc.History("u1", 30)
	require.NoError(t, err)
	require.Len(t, workouts, 1)
	assert.Equal(t, recent.ID, workouts[0].ID)

	workouts, err = svc.History("u1", 60)
	require.NoError(t, err)
	require.Len(t, workouts, 2)
	assert.Equal(t, old.ID, workouts[1].ID)
}

func TestListExercisesFilters(t *testing.T) {
	setupTestDB(t)
	svc := NewWorkoutService()

	seedExercise(t, svc, "Bench Press", "chest")
	seedExercise(t, svc, "Deadlift", "back")

	// Custom exercises belong to their creator.
	_, err := svc.CreateExercise("u2", ExerciseInput{Name: "Cable Fly", MuscleGroup: "chest"})
	require.NoError(t, err)

	chest, err := svc.ListExercises("u1", "chest", "", nil)
	require.NoError(t, err)
	require.Len(t, chest, 1)
	assert.Equal(t, "Bench Press", chest[0].Name)

	byName, err := svc.ListExercises("u1", "", "dead", nil)
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Deadlift", byName[0].Name)

	// Nothing here is cardio.
	cardio := true
	none, err := svc.ListExercises("u1", "", "", &cardio)
	require.NoError(t, err)
	assert.Empty(t, none)
}
