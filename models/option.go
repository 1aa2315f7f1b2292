package models

import (
	"encoding/json"
	"time"
)

const (
	OptionModelBoolean             = "boolean"
	OptionModelMultiState          = "multiState"
	OptionModelCountableMultiState = "countableMultiState"
)

// Option is a configurable attribute a product can expose. States holds the
// JSON text of the choice list and is NULL for single-valued models.
type Option struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Model       string    `gorm:"type:varchar(50);not null" json:"model"`
	States      *string   `gorm:"type:text" json:"-"`
	Description *string   `gorm:"type:text" json:"description"`
	IsActive    bool      `gorm:"not null" json:"isActive"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`
}

// IsMultiValued reports whether the model needs a list of states.
func IsMultiValued(model string) bool {
	return model == OptionModelMultiState || model == OptionModelCountableMultiState
}

// StateList materializes the stored states. A corrupt column reads as nil.
func (o Option) StateList() []string {
	if o.States == nil || *o.States == "" {
		return nil
	}
	var states []string
	if err := json.Unmarshal([]byte(*o.States), &states); err != nil {
		return nil
	}
	return states
}

// MarshalJSON exposes states as a list instead of the stored text.
func (o Option) MarshalJSON() ([]byte, error) {
	type plain Option
	return json.Marshal(struct {
		plain
		States []string `json:"states"`
	}{
		plain:  plain(o),
		States: o.StateList(),
	})
}
