package models

import "time"

// OrderHistory is an append-only audit row. OldData, NewData and Changes hold
// JSON text; OldData and Changes are NULL when there is nothing to record.
type OrderHistory struct {
	ID        uint      `gorm:"primaryKey"`
	OrderID   uint      `gorm:"not null;index"`
	Order     Order     `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Action    string    `gorm:"type:varchar(20);not null"`
	ChangedBy string    `gorm:"type:varchar(100);not null"`
	ChangedAt time.Time `gorm:"not null;index"`
	OldData   *string   `gorm:"type:text"`
	NewData   string    `gorm:"type:text;not null"`
	Changes   *string   `gorm:"type:text"`
}

// TableName keeps the plural table name explicit for raw queries.
func (OrderHistory) TableName() string {
	return "order_histories"
}
