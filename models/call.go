package models

import "time"

// Call is a logged phone call with a customer.
type Call struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	CustomerID      uint      `gorm:"not null;index" json:"customerId"`
	Customer        Customer  `gorm:"foreignKey:CustomerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Subject         string    `gorm:"type:varchar(255);not null" json:"subject"`
	Description     string    `gorm:"type:text" json:"description"`
	CallTime        int64     `gorm:"not null" json:"callTime"`
	DurationSeconds int       `gorm:"not null" json:"durationSeconds"`
	CreatedBy       string    `gorm:"type:varchar(100)" json:"createdBy"`
	CreatedAt       time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"not null" json:"updatedAt"`
}
