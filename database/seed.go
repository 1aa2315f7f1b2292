package database

import (
	"fmt"

	"github.com/yeremiapane/business-manager/models"
	"github.com/yeremiapane/business-manager/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AdminSeed struct {
	Username string
	Password string
	Name     string
}

// SeedAdmin creates the first admin account when the users table is empty.
// It reports whether a user was created.
func SeedAdmin(db *gorm.DB, seed AdminSeed) (bool, error) {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return false, nil
	}
	if seed.Username == "" || seed.Password == "" {
		return false, fmt.Errorf("seed admin username and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.User{
		Username: seed.Username,
		Password: string(hash),
		Name:     seed.Name,
		Role:     models.RoleAdmin,
		Enabled:  true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}

	utils.InfoLogger.Infof("Seeded admin user %q", admin.Username)
	return true, nil
}
