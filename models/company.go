package models

import "time"

type Company struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	Serial      *string    `gorm:"type:varchar(100)" json:"serial"`
	TaxCode     *string    `gorm:"type:varchar(100)" json:"taxCode"`
	Phone       *string    `gorm:"type:varchar(50)" json:"phone"`
	Address     *string    `gorm:"type:text" json:"address"`
	Description *string    `gorm:"type:text" json:"description"`
	Customers   []Customer `gorm:"foreignKey:CompanyID" json:"customers,omitempty"`
	CreatedAt   time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updatedAt"`
}
