package database

import (
	"fmt"

	"github.com/yeremiapane/business-manager/models"
	"github.com/yeremiapane/business-manager/utils"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table. Parents are listed before the
// tables that reference them.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.Customer{},
		&models.Contact{},
		&models.Call{},
		&models.Option{},
		&models.Product{},
		&models.ProductOption{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderItemOption{},
		&models.OrderHistory{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	utils.InfoLogger.Info("AutoMigrate completed.")
	return nil
}
