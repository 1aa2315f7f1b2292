package dto

import (
	"encoding/json"
	"time"

	"github.com/yeremiapane/business-manager/models"
)

type OrderItemOptionRequest struct {
	ProductOptionID uint      `json:"productOptionId"`
	Selection       Selection `json:"selection"`
}

type OrderItemRequest struct {
	ProductID               uint                     `json:"productId"`
	Quantity                int                      `json:"quantity"`
	Description             string                   `json:"description"`
	OrderItemProductOptions []OrderItemOptionRequest `json:"orderItemProductOptions"`
}

// OrderRequest is the body of both order create and order update.
type OrderRequest struct {
	CustomerID  uint               `json:"customerId"`
	CompanyID   *uint              `json:"companyId"`
	Description *string            `json:"description"`
	Status      *string            `json:"status"`
	OrderItems  []OrderItemRequest `json:"orderItems"`
}

type OptionSummary struct {
	ID     uint     `json:"id"`
	Title  string   `json:"title"`
	Model  string   `json:"model"`
	States []string `json:"states"`
}

type OrderItemOptionResponse struct {
	ID              uint           `json:"id"`
	ProductOptionID uint           `json:"productOptionId"`
	Selection       string         `json:"selection"`
	Option          *OptionSummary `json:"option"`
}

type OrderItemResponse struct {
	ID                      uint                      `json:"id"`
	ProductID               uint                      `json:"productId"`
	ProductName             string                    `json:"productName"`
	Quantity                int                       `json:"quantity"`
	Description             string                    `json:"description"`
	OrderItemProductOptions []OrderItemOptionResponse `json:"orderItemProductOptions"`
}

// OrderResponse is the order graph returned by the API and stored as the
// history snapshot.
type OrderResponse struct {
	ID           uint                `json:"id"`
	CustomerID   uint                `json:"customerId"`
	CustomerName string              `json:"customerName"`
	CompanyID    *uint               `json:"companyId"`
	CompanyName  *string             `json:"companyName"`
	Description  string              `json:"description"`
	Status       string              `json:"status"`
	OrderTime    int64               `json:"orderTime"`
	CreatedBy    string              `json:"createdBy"`
	UpdatedBy    *string             `json:"updatedBy"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
	OrderItems   []OrderItemResponse `json:"orderItems"`
}

func NewOrderResponse(o *models.Order) OrderResponse {
	resp := OrderResponse{
		ID:           o.ID,
		CustomerID:   o.CustomerID,
		CustomerName: o.Customer.Name,
		CompanyID:    o.CompanyID,
		Description:  o.Description,
		Status:       o.Status,
		OrderTime:    o.OrderTime,
		CreatedBy:    o.CreatedBy,
		UpdatedBy:    o.UpdatedBy,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
		OrderItems:   make([]OrderItemResponse, 0, len(o.OrderItems)),
	}
	if o.Company != nil {
		name := o.Company.Name
		resp.CompanyName = &name
	}

	for _, item := range o.OrderItems {
		itemResp := OrderItemResponse{
			ID:                      item.ID,
			ProductID:               item.ProductID,
			ProductName:             item.Product.Name,
			Quantity:                item.Quantity,
			Description:             item.Description,
			OrderItemProductOptions: make([]OrderItemOptionResponse, 0, len(item.Options)),
		}
		for _, opt := range item.Options {
			optResp := OrderItemOptionResponse{
				ID:              opt.ID,
				ProductOptionID: opt.OptionID,
				Selection:       opt.Selection,
			}
			if opt.Option.ID != 0 {
				optResp.Option = &OptionSummary{
					ID:     opt.Option.ID,
					Title:  opt.Option.Title,
					Model:  opt.Option.Model,
					States: opt.Option.StateList(),
				}
			}
			itemResp.OrderItemProductOptions = append(itemResp.OrderItemProductOptions, optResp)
		}
		resp.OrderItems = append(resp.OrderItems, itemResp)
	}

	return resp
}

func NewOrderResponses(orders []models.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderResponse(&orders[i]))
	}
	return out
}

// OrderHistoryResponse decodes the stored JSON columns back into structured
// form; NULL columns come out as JSON null.
type OrderHistoryResponse struct {
	ID        uint            `json:"id"`
	OrderID   uint            `json:"orderId"`
	Action    string          `json:"action"`
	ChangedBy string          `json:"changedBy"`
	ChangedAt time.Time       `json:"changedAt"`
	OldData   json.RawMessage `json:"oldData"`
	NewData   json.RawMessage `json:"newData"`
	Changes   json.RawMessage `json:"changes"`
}

func NewOrderHistoryResponse(h *models.OrderHistory) OrderHistoryResponse {
	return OrderHistoryResponse{
		ID:        h.ID,
		OrderID:   h.OrderID,
		Action:    h.Action,
		ChangedBy: h.ChangedBy,
		ChangedAt: h.ChangedAt,
		OldData:   rawOrNil(h.OldData),
		NewData:   rawOrNil(&h.NewData),
		Changes:   rawOrNil(h.Changes),
	}
}

func NewOrderHistoryResponses(rows []models.OrderHistory) []OrderHistoryResponse {
	out := make([]OrderHistoryResponse, 0, len(rows))
	for i := range rows {
		out = append(out, NewOrderHistoryResponse(&rows[i]))
	}
	return out
}

func rawOrNil(s *string) json.RawMessage {
	if s == nil || *s == "" || !json.Valid([]byte(*s)) {
		return nil
	}
	return json.RawMessage(*s)
}
