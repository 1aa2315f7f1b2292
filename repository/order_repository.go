package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yeremiapane/business-manager/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderRepository persists order graphs with gorm. Every multi-row write runs
// inside a single transaction.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func preloadGraph(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Customer").
		Preload("Company").
		Preload("OrderItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_items.id ASC")
		}).
		Preload("OrderItems.Product").
		Preload("OrderItems.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_item_options.id ASC")
		}).
		Preload("OrderItems.Options.Option")
}

func (r *OrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkReferences(tx, order); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		return insertItems(tx, order.ID, order.OrderItems)
	})
}

// ReplaceOrder overwrites the order's own fields and swaps its whole item set
// for order.OrderItems.
func (r *OrderRepository) ReplaceOrder(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("lookup order: %w", err)
		}
		if count == 0 {
			return &NotFoundError{Entity: "order", ID: order.ID}
		}

		if err := checkReferences(tx, order); err != nil {
			return err
		}

		if err := deleteItems(tx, order.ID); err != nil {
			return err
		}

		err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(map[string]interface{}{
			"customer_id": order.CustomerID,
			"company_id":  order.CompanyID,
			"description": order.Description,
			"status":      order.Status,
			"updated_by":  order.UpdatedBy,
			"updated_at":  time.Now(),
		}).Error
		if err != nil {
			return fmt.Errorf("update order: %w", err)
		}

		return insertItems(tx, order.ID, order.OrderItems)
	})
}

func (r *OrderRepository) FindOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := preloadGraph(r.db.WithContext(ctx)).First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "order", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("load order %d: %w", id, err)
	}
	return &order, nil
}

func (r *OrderRepository) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := preloadGraph(r.db.WithContext(ctx)).Order("orders.id DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// DeleteOrder removes the order with its items, option selections and history.
func (r *OrderRepository) DeleteOrder(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Select("id").First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "order", ID: id}
			}
			return fmt.Errorf("lookup order: %w", err)
		}

		if err := deleteItems(tx, id); err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderHistory{}).Error; err != nil {
			return fmt.Errorf("delete order history: %w", err)
		}
		if err := tx.Delete(&models.Order{}, id).Error; err != nil {
			return fmt.Errorf("delete order: %w", err)
		}
		return nil
	})
}

func (r *OrderRepository) AppendHistory(ctx context.Context, h *models.OrderHistory) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(h).Error; err != nil {
		return fmt.Errorf("insert order history: %w", err)
	}
	return nil
}

func (r *OrderRepository) ListHistory(ctx context.Context, orderID uint) ([]models.OrderHistory, error) {
	var rows []models.OrderHistory
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("changed_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list order history: %w", err)
	}
	return rows, nil
}

func checkReferences(tx *gorm.DB, order *models.Order) error {
	if err := mustExist(tx, &models.Customer{}, "customer", order.CustomerID); err != nil {
		return err
	}
	if order.CompanyID != nil {
		if err := mustExist(tx, &models.Company{}, "company", *order.CompanyID); err != nil {
			return err
		}
	}

	seenProducts := map[uint]bool{}
	seenOptions := map[uint]bool{}
	for _, item := range order.OrderItems {
		if !seenProducts[item.ProductID] {
			if err := mustExist(tx, &models.Product{}, "product", item.ProductID); err != nil {
				return err
			}
			seenProducts[item.ProductID] = true
		}
		for _, opt := range item.Options {
			if seenOptions[opt.OptionID] {
				continue
			}
			if err := mustExist(tx, &models.Option{}, "option", opt.OptionID); err != nil {
				return err
			}
			seenOptions[opt.OptionID] = true
		}
	}
	return nil
}

func mustExist(tx *gorm.DB, model interface{}, entity string, id uint) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("lookup %s: %w", entity, err)
	}
	if count == 0 {
		return &NotFoundError{Entity: entity, ID: id}
	}
	return nil
}

func insertItems(tx *gorm.DB, orderID uint, items []models.OrderItem) error {
	for i := range items {
		item := &items[i]
		item.ID = 0
		item.OrderID = orderID
		if err := tx.Omit(clause.Associations).Create(item).Error; err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}

		for j := range item.Options {
			opt := &item.Options[j]
			opt.ID = 0
			opt.OrderItemID = item.ID
			if err := tx.Omit(clause.Associations).Create(opt).Error; err != nil {
				return fmt.Errorf("insert order item option: %w", err)
			}
		}
	}
	return nil
}

func deleteItems(tx *gorm.DB, orderID uint) error {
	itemIDs := tx.Model(&models.OrderItem{}).Select("id").Where("order_id = ?", orderID)
	if err := tx.Where("order_item_id IN (?)", itemIDs).Delete(&models.OrderItemOption{}).Error; err != nil {
		return fmt.Errorf("delete order item options: %w", err)
	}
	if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	return nil
}
