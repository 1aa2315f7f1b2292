package models

import (
	"time"
)

type Customer struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Mobile      *string   `gorm:"type:varchar(50)" json:"mobile"`
	Position    *string   `gorm:"type:varchar(100)" json:"position"`
	Description *string   `gorm:"type:text" json:"description"`
	CompanyID   *uint     `gorm:"index" json:"companyId"`
	Company     *Company  `gorm:"foreignKey:CompanyID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"company,omitempty"`
	Contacts    []Contact `gorm:"foreignKey:CustomerID" json:"contacts"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`
}

type Contact struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"not null;index" json:"customerId"`
	Customer   Customer  `gorm:"foreignKey:CustomerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Title      string    `gorm:"type:varchar(100)" json:"title"`
	Content    string    `gorm:"type:varchar(255)" json:"content"`
	Type       string    `gorm:"type:varchar(50)" json:"type"`
	IsNew      bool      `gorm:"not null" json:"isNew"`
	CreatedAt  time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"not null" json:"updatedAt"`
}
