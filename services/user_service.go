package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/vinayak3788/mvps-print-api/config"
	"github.com/vinayak3788/mvps-print-api/models"
)

// EnsureUser guarantees a user row exists for the email, provisioning one
// with the default role on first sign-in. The configured protected admin is
// seeded as a protected admin row; everyone else starts as a plain user.
// Safe to race: a concurrent insert of the same email just re-reads the row.
func EnsureUser(email string) (*models.User, error) {
	db := config.GetDB()

	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	user = models.User{Email: email, Role: models.RoleUser}
	if email == config.GetConfig().ProtectedAdmin {
		user.Role = models.RoleAdmin
		user.Protected = true
	}
	if err := db.Create(&user).Error; err != nil {
		// Lost a race against another request creating the same row
		if readErr := db.Where("email = ?", email).First(&user).Error; readErr == nil {
			return &user, nil
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// GetUserRole returns the role for an email, defaulting to plain user when
// no row exists
func GetUserRole(email string) (string, error) {
	db := config.GetDB()

	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.RoleUser, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}
	return user.Role, nil
}

// findUserGuarded loads a user row and rejects mutation of the protected admin
func findUserGuarded(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user.Protected {
		return nil, models.ErrProtectedAdmin
	}
	return &user, nil
}

// UpdateUserRole changes a user's role. The protected admin cannot be demoted.
func UpdateUserRole(email, role string) error {
	if role != models.RoleUser && role != models.RoleAdmin {
		return models.ValidationError("Invalid role.")
	}

	db := config.GetDB()
	user, err := findUserGuarded(db, email)
	if err != nil {
		return err
	}
	return db.Model(user).Update("role", role).Error
}

// BlockUser blocks an account. The protected admin cannot be blocked.
func BlockUser(email string) error {
	db := config.GetDB()
	user, err := findUserGuarded(db, email)
	if err != nil {
		return err
	}
	return db.Model(user).Update("blocked", true).Error
}

// UnblockUser clears the blocked flag
func UnblockUser(email string) error {
	db := config.GetDB()

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrUserNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}
	return db.Model(&user).Update("blocked", false).Error
}

// DeleteUser removes an account and its profile. The protected admin cannot
// be deleted.
func DeleteUser(email string) error {
	db := config.GetDB()
	user, err := findUserGuarded(db, email)
	if err != nil {
		return err
	}
	if err := db.Where("email = ?", email).Delete(&models.Profile{}).Error; err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return db.Delete(user).Error
}

// IsUserBlocked reports whether an account is blocked
func IsUserBlocked(email string) (bool, error) {
	db := config.GetDB()

	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up user: %w", err)
	}
	return user.Blocked, nil
}

// ProfileInput carries a profile upsert. The verified flag tolerates the
// historical true/1/"1" encodings at the JSON edge.
type ProfileInput struct {
	Email          string              `json:"email"`
	FirstName      string              `json:"firstName"`
	LastName       string              `json:"lastName"`
	MobileNumber   string              `json:"mobileNumber"`
	MobileVerified models.FlexibleBool `json:"mobileVerified"`
}

// UpsertProfile inserts or updates the profile row for an email, normalizing
// the mobile number to 10 digits or null
func UpsertProfile(input ProfileInput) error {
	if input.Email == "" {
		return models.ValidationError("Email is required.")
	}

	db := config.GetDB()
	values := map[string]interface{}{
		"first_name":      input.FirstName,
		"last_name":       input.LastName,
		"mobile_number":   models.NormalizeMobile(input.MobileNumber),
		"mobile_verified": input.MobileVerified.Bool(),
	}

	var existing models.Profile
	err := db.Where("email = ?", input.Email).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile := models.Profile{
			Email:          input.Email,
			FirstName:      input.FirstName,
			LastName:       input.LastName,
			MobileNumber:   models.NormalizeMobile(input.MobileNumber),
			MobileVerified: input.MobileVerified.Bool(),
		}
		return db.Create(&profile).Error
	}
	if err != nil {
		return fmt.Errorf("failed to look up profile: %w", err)
	}
	return db.Model(&existing).Updates(values).Error
}

// MarkMobileVerified flips the verified flag after a successful OTP check
func MarkMobileVerified(email string) error {
	db := config.GetDB()
	result := db.Model(&models.Profile{}).Where("email = ?", email).Update("mobile_verified", true)
	if result.Error != nil {
		return fmt.Errorf("failed to mark mobile verified: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

// ProfileView is the profile joined with the account flags
type ProfileView struct {
	Email          string `json:"email"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	MobileNumber   *int64 `json:"mobileNumber"`
	MobileVerified bool   `json:"mobileVerified"`
	Role           string `json:"role"`
	Blocked        bool   `json:"blocked"`
	Protected      bool   `json:"protected"`
}

// GetProfile returns the joined profile/account view for an email
func GetProfile(email string) (*ProfileView, error) {
	db := config.GetDB()

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	view := ProfileView{
		Email:     user.Email,
		Role:      user.Role,
		Blocked:   user.Blocked,
		Protected: user.Protected,
	}

	var profile models.Profile
	err := db.Where("email = ?", email).First(&profile).Error
	if err == nil {
		view.FirstName = profile.FirstName
		view.LastName = profile.LastName
		view.MobileNumber = profile.MobileNumber
		view.MobileVerified = profile.MobileVerified
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up profile: %w", err)
	}

	return &view, nil
}

// ListUsers returns every account joined with its profile, for the admin
// dashboard
func ListUsers() ([]ProfileView, error) {
	db := config.GetDB()

	var users []models.User
	if err := db.Order("email").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	var profiles []models.Profile
	if err := db.Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	byEmail := make(map[string]*models.Profile, len(profiles))
	for i := range profiles {
		byEmail[profiles[i].Email] = &profiles[i]
	}

	views := make([]ProfileView, 0, len(users))
	for _, user := range users {
		view := ProfileView{
			Email:     user.Email,
			Role:      user.Role,
			Blocked:   user.Blocked,
			Protected: user.Protected,
		}
		if profile, ok := byEmail[user.Email]; ok {
			view.FirstName = profile.FirstName
			view.LastName = profile.LastName
			view.MobileNumber = profile.MobileNumber
			view.MobileVerified = profile.MobileVerified
		}
		views = append(views, view)
	}
	return views, nil
}
