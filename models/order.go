package models

import (
	"time"
)

const (
	OrderStatusOpen = "open"

	HistoryActionCreated       = "created"
	HistoryActionUpdated       = "updated"
	HistoryActionStatusChanged = "status_changed"
)

type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	CustomerID  uint        `gorm:"not null;index" json:"customerId"`
	Customer    Customer    `gorm:"foreignKey:CustomerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	CompanyID   *uint       `gorm:"index" json:"companyId"`
	Company     *Company    `gorm:"foreignKey:CompanyID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Description string      `gorm:"type:text" json:"description"`
	Status      string      `gorm:"type:varchar(50);not null" json:"status"`
	OrderTime   int64       `gorm:"not null" json:"orderTime"`
	CreatedBy   string      `gorm:"type:varchar(100)" json:"createdBy"`
	UpdatedBy   *string     `gorm:"type:varchar(100)" json:"updatedBy"`
	CreatedAt   time.Time   `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time   `gorm:"not null" json:"updatedAt"`
	OrderItems  []OrderItem `gorm:"foreignKey:OrderID" json:"orderItems"`
}

type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"orderId"`
	// Omitting Order field from JSON to avoid recursive nesting
	Order       Order             `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ProductID   uint              `gorm:"not null;index" json:"productId"`
	Product     Product           `gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Quantity    int               `gorm:"not null" json:"quantity"`
	Description string            `gorm:"type:text" json:"description"`
	Options     []OrderItemOption `gorm:"foreignKey:OrderItemID" json:"orderItemProductOptions"`
}

// OrderItemOption is the selected value of one option for one order item.
// Selection always holds the normalized text form.
type OrderItemOption struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OrderItemID uint      `gorm:"not null;index" json:"orderItemId"`
	OrderItem   OrderItem `gorm:"foreignKey:OrderItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	OptionID    uint      `gorm:"not null;index" json:"productOptionId"`
	Option      Option    `gorm:"foreignKey:OptionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"option"`
	Selection   string    `gorm:"type:text;not null" json:"selection"`
}
