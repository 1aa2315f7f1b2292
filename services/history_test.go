package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yeremiapane/business-manager/models"
)

func items(productIDs ...uint) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(productIDs))
	for _, id := range productIDs {
		out = append(out, models.OrderItem{ProductID: id, Quantity: 1})
	}
	return out
}

func TestDiffOrders(t *testing.T) {
	base := models.Order{CustomerID: 1, Status: "open", Description: "first", OrderItems: items(1, 2)}

	tests := []struct {
		name   string
		mutate func(o *models.Order)
		want   ChangeSet
	}{
		{
			name:   "no change",
			mutate: func(o *models.Order) {},
			want:   nil,
		},
		{
			name:   "same products in another order",
			mutate: func(o *models.Order) { o.OrderItems = items(2, 1) },
			want:   nil,
		},
		{
			name:   "status",
			mutate: func(o *models.Order) { o.Status = "closed" },
			want:   ChangeSet{"status": Change{From: "open", To: "closed"}},
		},
		{
			name:   "customer",
			mutate: func(o *models.Order) { o.CustomerID = 9 },
			want:   ChangeSet{"customerId": Change{From: uint(1), To: uint(9)}},
		},
		{
			name: "company assigned",
			mutate: func(o *models.Order) {
				company := uint(7)
				o.CompanyID = &company
			},
			want: ChangeSet{"companyId": Change{From: nil, To: uint(7)}},
		},
		{
			name:   "description cleared",
			mutate: func(o *models.Order) { o.Description = "" },
			want:   ChangeSet{"description": Change{From: "first", To: ""}},
		},
		{
			name:   "item swapped",
			mutate: func(o *models.Order) { o.OrderItems = items(1, 3) },
			want:   ChangeSet{"itemsChanged": true},
		},
		{
			name:   "item removed",
			mutate: func(o *models.Order) { o.OrderItems = items(1) },
			want: ChangeSet{
				"itemsCount":   Change{From: 2, To: 1},
				"itemsChanged": true,
			},
		},
		{
			name: "everything",
			mutate: func(o *models.Order) {
				o.Status = "done"
				o.CustomerID = 2
				o.Description = "second"
				o.OrderItems = items(5, 6, 7)
			},
			want: ChangeSet{
				"status":       Change{From: "open", To: "done"},
				"customerId":   Change{From: uint(1), To: uint(2)},
				"description":  Change{From: "first", To: "second"},
				"itemsCount":   Change{From: 2, To: 3},
				"itemsChanged": true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated := base
			updated.OrderItems = append([]models.OrderItem(nil), base.OrderItems...)
			tt.mutate(&updated)

			assert.Equal(t, tt.want, DiffOrders(&base, &updated))
		})
	}
}

func TestDiffOrdersCompanyCleared(t *testing.T) {
	company := uint(3)
	old := &models.Order{Status: "open", CompanyID: &company}
	updated := &models.Order{Status: "open"}

	assert.Equal(t, ChangeSet{"companyId": Change{From: uint(3), To: nil}}, DiffOrders(old, updated))
}

func TestDiffOrdersNeedsBothSnapshots(t *testing.T) {
	order := &models.Order{Status: "open"}
	assert.Nil(t, DiffOrders(nil, order))
	assert.Nil(t, DiffOrders(order, nil))
}

func TestDiffOrdersEmptyItemsOnOneSide(t *testing.T) {
	old := &models.Order{Status: "open"}
	updated := &models.Order{Status: "open", OrderItems: items(1)}

	assert.Equal(t, ChangeSet{"itemsCount": Change{From: 0, To: 1}}, DiffOrders(old, updated))
}

func TestNormalizeOptionStates(t *testing.T) {
	states, err := NormalizeOptionStates(models.OptionModelMultiState, []string{" S ", "", "M", "   "})
	assert.NoError(t, err)
	assert.Equal(t, []string{"S", "M"}, states)

	_, err = NormalizeOptionStates(models.OptionModelCountableMultiState, []string{" ", ""})
	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)
	assert.Equal(t, "states", validation.Field)

	_, err = NormalizeOptionStates(models.OptionModelMultiState, nil)
	assert.Error(t, err)

	states, err = NormalizeOptionStates(models.OptionModelBoolean, []string{"ignored"})
	assert.NoError(t, err)
	assert.Nil(t, states)
}
