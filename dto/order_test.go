package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/business-manager/models"
)

func TestNewOrderResponse(t *testing.T) {
	states := `["S","M"]`
	companyID := uint(4)
	order := &models.Order{
		ID:          10,
		CustomerID:  2,
		Customer:    models.Customer{ID: 2, Name: "Ali"},
		CompanyID:   &companyID,
		Company:     &models.Company{ID: 4, Name: "Acme"},
		Description: "rush",
		Status:      "open",
		OrderItems: []models.OrderItem{{
			ID:        1,
			ProductID: 3,
			Product:   models.Product{ID: 3, Name: "Shirt"},
			Quantity:  2,
			Options: []models.OrderItemOption{{
				ID:        5,
				OptionID:  6,
				Option:    models.Option{ID: 6, Title: "Size", Model: models.OptionModelMultiState, States: &states},
				Selection: "M",
			}},
		}},
	}

	resp := NewOrderResponse(order)

	assert.Equal(t, "Ali", resp.CustomerName)
	require.NotNil(t, resp.CompanyName)
	assert.Equal(t, "Acme", *resp.CompanyName)
	require.Len(t, resp.OrderItems, 1)
	assert.Equal(t, "Shirt", resp.OrderItems[0].ProductName)
	require.Len(t, resp.OrderItems[0].OrderItemProductOptions, 1)

	opt := resp.OrderItems[0].OrderItemProductOptions[0]
	assert.Equal(t, uint(6), opt.ProductOptionID)
	assert.Equal(t, "M", opt.Selection)
	require.NotNil(t, opt.Option)
	assert.Equal(t, []string{"S", "M"}, opt.Option.States)
}

func TestNewOrderResponseWithoutItems(t *testing.T) {
	resp := NewOrderResponse(&models.Order{ID: 1})

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"orderItems":[]`)
	assert.Contains(t, string(data), `"companyName":null`)
}

func TestNewOrderHistoryResponse(t *testing.T) {
	changes := `{"status":{"from":"open","to":"closed"}}`
	row := &models.OrderHistory{
		ID:        1,
		OrderID:   2,
		Action:    models.HistoryActionStatusChanged,
		ChangedBy: "admin",
		ChangedAt: time.Now(),
		NewData:   `{"id":2}`,
		Changes:   &changes,
	}

	resp := NewOrderHistoryResponse(row)
	assert.Nil(t, resp.OldData)
	assert.JSONEq(t, `{"id":2}`, string(resp.NewData))

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Nil(t, decoded["oldData"])
	assert.Equal(t, "closed", decoded["changes"].(map[string]interface{})["status"].(map[string]interface{})["to"])
}
