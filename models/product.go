package models

import "time"

type Product struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Name           string          `gorm:"type:varchar(255);not null" json:"name"`
	Description    *string         `gorm:"type:text" json:"description"`
	ProductOptions []ProductOption `gorm:"foreignKey:ProductID" json:"productOptions"`
	CreatedAt      time.Time       `gorm:"not null" json:"createdAt"`
	UpdatedAt      time.Time       `gorm:"not null" json:"updatedAt"`
}

// ProductOption links an option to a product with the maximum number of
// selections allowed for it.
type ProductOption struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	ProductID uint    `gorm:"not null;index" json:"productId"`
	Product   Product `gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	OptionID  uint    `gorm:"not null;index" json:"optionId"`
	Option    Option  `gorm:"foreignKey:OptionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"option"`
	MaxNo     int     `gorm:"not null" json:"maxNo"`
}
