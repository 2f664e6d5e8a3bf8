package services

import (
	"testing"

	"github.com/marcdejesus/fitness/config"
	"github.com/marcdejesus/fitness/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedProfile(t *testing.T, userID, email string) models.UserProfile {
	t.Helper()
	profile := models.UserProfile{UserID: userID, Email: email}
	require.NoError(t, config.DB.Create(&profile).Error)
	return profile
}

func TestProfileNotFound(t *testing.T) {
	setupTestDB(t)
	svc := NewUserService()

	_, err := svc.Profile("nobody")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateProfilePartial(t *testing.T) {
	setupTestDB(t)
	svc := NewUserService()
	seedProfile(t, "u1", "u1@test.dev")

	name := "Sam"
	height := 180.0
	weight := 85.0
	view, err := svc.UpdateProfile("u1", ProfileUpdate{
		DisplayName: &name,
		Height:      &height,
		Weight:      &weight,
	})
	require.NoError(t, err)
	assert.Equal(t, "Sam", view.DisplayName)
	assert.InDelta(t, 26.2, view.BMI, 0.1)
	assert.Equal(t, "Overweight", view.BMICategory)

	// Untouched fields survive a later partial update.
	bio := "lifting"
	view, err = svc.UpdateProfile("u1", ProfileUpdate{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "Sam", view.DisplayName)
	assert.Equal(t, "lifting", view.Bio)
}

func TestUpdateProfileRejectsFutureBirthdate(t *testing.T) {
	setupTestDB(t)
	svc := NewUserService()
	seedProfile(t, "u1", "u1@test.dev")

	future := "2999-01-01"
	_, err := svc.UpdateProfile("u1", ProfileUpdate{DateOfBirth: &future})
	assert.Error(t, err)
}

func TestSettingsLazyCreate(t *testing.T) {
	setupTestDB(t)
	svc := NewUserService()

	settings, err := svc.Settings("u1")
	require.NoError(t, err)
	assert.Equal(t, "metric", settings.MeasurementSystem)
	assert.Equal(t, "strength", settings.PrimaryGoal)
	assert.Equal(t, 3, settings.WorkoutDaysPerWeek)
	assert.True(t, settings.NotificationWorkouts)

	system := "imperial"
	days := 5
	updated, err := svc.UpdateSettings("u1", SettingsUpdate{
		MeasurementSystem:  &system,
		WorkoutDaysPerWeek: &days,
	})
	require.NoError(t, err)
	assert.Equal(t, "imperial", updated.MeasurementSystem)
	assert.Equal(t, 5, updated.WorkoutDaysPerWeek)
	assert.Equal(t, settings.ID, updated.ID)
}
