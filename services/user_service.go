package services

import (
	"time"

	"github.com/marcdejesus/fitness/config"
	"github.com/marcdejesus/fitness/models"
	"github.com/marcdejesus/fitness/utils"

	"gorm.io/gorm/clause"
)

type UserService struct{}

func NewUserService() *UserService { return &UserService{} }

// ProfileView is a profile plus the fields derived from it on every read.
type ProfileView struct {
	models.UserProfile
	Age         int     `json:"age,omitempty"`
	BMI         float64 `json:"bmi,omitempty"`
	BMICategory string  `json:"bmi_category,omitempty"`
}

func (s *UserService) Profile(userID string) (*ProfileView, error) {
	var profile models.UserProfile
	if err := config.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return buildProfileView(profile), nil
}

func buildProfileView(profile models.UserProfile) *ProfileView {
	view := &ProfileView{UserProfile: profile}
	if profile.DateOfBirth != nil {
		view.Age = utils.CalculateAge(*profile.DateOfBirth)
	}
	if bmi, err := utils.CalculateBMI(profile.Height, profile.Weight); err == nil {
		view.BMI = bmi
		view.BMICategory = utils.BMICategory(bmi)
	}
	return view
}

type ProfileUpdate struct {
	DisplayName  *string  `json:"display_name"`
	Bio          *string  `json:"bio"`
	FitnessLevel *string  `json:"fitness_level" binding:"omitempty,oneof=beginner intermediate advanced"`
	Height       *float64 `json:"height" binding:"omitempty,gt=0"`
	Weight       *float64 `json:"weight" binding:"omitempty,gt=0"`
	DateOfBirth  *string  `json:"date_of_birth"` // YYYY-MM-DD
	Avatar       *string  `json:"avatar"`        // base64 data URL
}

// UpdateProfile applies a partial update; nil fields are untouched. An
// avatar payload is uploaded to object storage and stored as a URL.
func (s *UserService) UpdateProfile(userID string, in ProfileUpdate) (*ProfileView, error) {
	var profile models.UserProfile
	if err := config.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}

	if in.DisplayName != nil {
		profile.DisplayName = *in.DisplayName
	}
	if in.Bio != nil {
		profile.Bio = *in.Bio
	}
	if in.FitnessLevel != nil {
		profile.FitnessLevel = *in.FitnessLevel
	}
	if in.Height != nil {
		profile.Height = *in.Height
	}
	if in.Weight != nil {
		profile.Weight = *in.Weight
	}
	if in.DateOfBirth != nil {
		dob, err := time.ParseInLocation(dateLayout, *in.DateOfBirth, config.Location())
		if err != nil {
			return nil, utils.NewValidationError("date_of_birth", "invalid date format, expected YYYY-MM-DD")
		}
		if dob.After(time.Now()) {
			return nil, utils.NewValidationError("date_of_birth", "date of birth is in the future")
		}
		profile.DateOfBirth = &dob
	}
	if in.Avatar != nil && *in.Avatar != "" {
		url, err := utils.UploadBase64Avatar(*in.Avatar, userID)
		if err != nil {
			return nil, utils.NewValidationError("avatar", err.Error())
		}
		profile.AvatarURL = url
	}

	if err := config.DB.Save(&profile).Error; err != nil {
		return nil, err
	}
	return buildProfileView(profile), nil
}

// Settings returns the user's settings row, lazily creating it with
// defaults the same way goals are.
func (s *UserService) Settings(userID string) (*models.UserSettings, error) {
	settings := models.UserSettings{
		UserID:                userID,
		MeasurementSystem:     "metric",
		PrimaryGoal:           "strength",
		WorkoutDaysPerWeek:    3,
		NotificationWorkouts:  true,
		NotificationNutrition: true,
	}
	err := config.DB.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&settings).Error
	if err != nil {
		return nil, err
	}

	var out models.UserSettings
	if err := config.DB.Where("user_id = ?", userID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

type SettingsUpdate struct {
	MeasurementSystem     *string `json:"measurement_system" binding:"omitempty,oneof=metric imperial"`
	PrimaryGoal           *string `json:"primary_goal" binding:"omitempty,oneof=strength weight_loss muscle_gain endurance"`
	WorkoutDaysPerWeek    *int    `json:"workout_days_per_week" binding:"omitempty,min=0,max=7"`
	NotificationWorkouts  *bool   `json:"notification_workouts"`
	NotificationNutrition *bool   `json:"notification_nutrition"`
}

func (s *UserService) UpdateSettings(userID string, in SettingsUpdate) (*models.UserSettings, error) {
	settings, err := s.Settings(userID)
	if err != nil {
		return nil, err
	}
	if in.MeasurementSystem != nil {
		settings.MeasurementSystem = *in.MeasurementSystem
	}
	if in.PrimaryGoal != nil {
		settings.PrimaryGoal = *in.PrimaryGoal
	}
	if in.WorkoutDaysPerWeek != nil {
		settings.WorkoutDaysPerWeek = *in.WorkoutDaysPerWeek
	}
	if in.NotificationWorkouts != nil {
		settings.NotificationWorkouts = *in.NotificationWorkouts
	}
	if in.NotificationNutrition != nil {
		settings.NotificationNutrition = *in.NotificationNutrition
	}
	if err := config.DB.Save(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}
