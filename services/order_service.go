package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/business-manager/dto"
	"github.com/yeremiapane/business-manager/metrics"
	"github.com/yeremiapane/business-manager/models"
	"github.com/yeremiapane/business-manager/realtime"
	"github.com/yeremiapane/business-manager/utils"
)

// OrderStore is the persistence the order lifecycle needs. Multi-row writes
// must be atomic.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	ReplaceOrder(ctx context.Context, order *models.Order) error
	FindOrder(ctx context.Context, id uint) (*models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	DeleteOrder(ctx context.Context, id uint) error
	AppendHistory(ctx context.Context, h *models.OrderHistory) error
	ListHistory(ctx context.Context, orderID uint) ([]models.OrderHistory, error)
}

// Notifier receives order events after a successful mutation.
type Notifier interface {
	Publish(event string, data interface{})
}

// Identity is the authenticated caller.
type Identity struct {
	ID       uint
	Username string
	Role     string
}

type OrderService struct {
	store    OrderStore
	notifier Notifier
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewOrderService wires the store with optional notifier and metrics; both may
// be nil.
func NewOrderService(store OrderStore, notifier Notifier, m *metrics.Metrics) *OrderService {
	return &OrderService{
		store:    store,
		notifier: notifier,
		metrics:  m,
		now:      time.Now,
	}
}

func (s *OrderService) Create(ctx context.Context, req dto.OrderRequest, who Identity) (*dto.OrderResponse, error) {
	items, err := buildOrderItems(req)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		CustomerID:  req.CustomerID,
		CompanyID:   companyOrNil(req.CompanyID),
		Description: stringOrEmpty(req.Description),
		Status:      statusOrDefault(req.Status),
		OrderTime:   s.now().Unix(),
		CreatedBy:   who.Username,
		OrderItems:  items,
	}
	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	created, err := s.store.FindOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewOrderResponse(created)

	s.recordHistory(ctx, created.ID, models.HistoryActionCreated, who.Username, nil, &resp, nil)
	s.metrics.OrderMutation(models.HistoryActionCreated)
	s.publish(realtime.EventOrderCreated, resp)

	return &resp, nil
}

func (s *OrderService) Update(ctx context.Context, id uint, req dto.OrderRequest, who Identity) (*dto.OrderResponse, error) {
	items, err := buildOrderItems(req)
	if err != nil {
		return nil, err
	}

	old, err := s.store.FindOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	updatedBy := who.Username
	order := &models.Order{
		ID:          id,
		CustomerID:  req.CustomerID,
		CompanyID:   keepCompany(old.CompanyID, req.CompanyID),
		Description: stringOrEmpty(req.Description),
		Status:      statusOrDefault(req.Status),
		UpdatedBy:   &updatedBy,
		OrderItems:  items,
	}
	if err := s.store.ReplaceOrder(ctx, order); err != nil {
		return nil, err
	}

	updated, err := s.store.FindOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	action := models.HistoryActionUpdated
	if old.Status != updated.Status {
		action = models.HistoryActionStatusChanged
	}

	oldResp := dto.NewOrderResponse(old)
	newResp := dto.NewOrderResponse(updated)
	s.recordHistory(ctx, id, action, who.Username, &oldResp, &newResp, DiffOrders(old, updated))
	s.metrics.OrderMutation(action)
	s.publish(realtime.EventOrderUpdated, newResp)

	return &newResp, nil
}

func (s *OrderService) Delete(ctx context.Context, id uint) error {
	if err := s.store.DeleteOrder(ctx, id); err != nil {
		return err
	}
	s.metrics.OrderMutation("deleted")
	s.publish(realtime.EventOrderDeleted, map[string]uint{"id": id})
	return nil
}

func (s *OrderService) Get(ctx context.Context, id uint) (*dto.OrderResponse, error) {
	order, err := s.store.FindOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewOrderResponse(order)
	return &resp, nil
}

func (s *OrderService) List(ctx context.Context) ([]dto.OrderResponse, error) {
	orders, err := s.store.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewOrderResponses(orders), nil
}

// History returns the audit trail of an order, newest first.
func (s *OrderService) History(ctx context.Context, orderID uint) ([]dto.OrderHistoryResponse, error) {
	if orderID == 0 {
		return nil, invalid("id", "invalid order id")
	}
	rows, err := s.store.ListHistory(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return dto.NewOrderHistoryResponses(rows), nil
}

// recordHistory is best-effort: a failure is logged and counted but never
// reaches the caller, and the order mutation is not rolled back.
func (s *OrderService) recordHistory(ctx context.Context, orderID uint, action, changedBy string,
	oldData, newData *dto.OrderResponse, changes ChangeSet) {
	entry := &models.OrderHistory{
		OrderID:   orderID,
		Action:    action,
		ChangedBy: changedBy,
		ChangedAt: s.now(),
	}

	err := func() error {
		newJSON, err := json.Marshal(newData)
		if err != nil {
			return err
		}
		entry.NewData = string(newJSON)

		if oldData != nil {
			oldJSON, err := json.Marshal(oldData)
			if err != nil {
				return err
			}
			text := string(oldJSON)
			entry.OldData = &text
		}

		if changes != nil {
			changesJSON, err := json.Marshal(changes)
			if err != nil {
				return err
			}
			text := string(changesJSON)
			entry.Changes = &text
		}

		return s.store.AppendHistory(ctx, entry)
	}()
	if err != nil {
		s.metrics.HistoryWriteFailed()
		utils.ErrorLogger.WithFields(logrus.Fields{
			"order_id": orderID,
			"action":   action,
		}).Errorf("Failed to write order history: %v", err)
	}
}

func (s *OrderService) publish(event string, data interface{}) {
	if s.notifier == nil {
		return
	}
	s.notifier.Publish(event, data)
}

func buildOrderItems(req dto.OrderRequest) ([]models.OrderItem, error) {
	if req.CustomerID == 0 {
		return nil, invalid("customerId", "customer is required")
	}
	if len(req.OrderItems) == 0 {
		return nil, invalid("orderItems", "at least one order item is required")
	}

	items := make([]models.OrderItem, 0, len(req.OrderItems))
	for i, reqItem := range req.OrderItems {
		if reqItem.ProductID == 0 {
			return nil, invalid(itemField(i, "productId"), "product is required")
		}
		if reqItem.Quantity <= 0 {
			return nil, invalid(itemField(i, "quantity"), "must be a positive integer")
		}

		item := models.OrderItem{
			ProductID:   reqItem.ProductID,
			Quantity:    reqItem.Quantity,
			Description: reqItem.Description,
			Options:     make([]models.OrderItemOption, 0, len(reqItem.OrderItemProductOptions)),
		}
		for j, reqOpt := range reqItem.OrderItemProductOptions {
			if reqOpt.ProductOptionID == 0 {
				return nil, invalid(optionField(i, j, "productOptionId"), "option is required")
			}
			if reqOpt.Selection.IsZero() {
				return nil, invalid(optionField(i, j, "selection"), "selection is required")
			}
			item.Options = append(item.Options, models.OrderItemOption{
				OptionID:  reqOpt.ProductOptionID,
				Selection: reqOpt.Selection.Stored(),
			})
		}
		items = append(items, item)
	}
	return items, nil
}

func itemField(i int, name string) string {
	return fmt.Sprintf("orderItems[%d].%s", i, name)
}

func optionField(i, j int, name string) string {
	return fmt.Sprintf("orderItems[%d].orderItemProductOptions[%d].%s", i, j, name)
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// companyOrNil treats a zero company id as no company.
func companyOrNil(id *uint) *uint {
	if id == nil || *id == 0 {
		return nil
	}
	return id
}

// keepCompany leaves the company unchanged when the update omits companyId.
// An explicit zero clears it.
func keepCompany(current, requested *uint) *uint {
	if requested == nil {
		return current
	}
	return companyOrNil(requested)
}

func statusOrDefault(s *string) string {
	if s == nil || *s == "" {
		return models.OrderStatusOpen
	}
	return *s
}
