package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/business-manager/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Company{}, &models.Customer{}, &models.Contact{}, &models.Option{},
		&models.Product{}, &models.ProductOption{}, &models.Order{}, &models.OrderItem{},
		&models.OrderItemOption{}, &models.OrderHistory{},
	))
	return db
}

func seed(t *testing.T, db *gorm.DB) (models.Customer, models.Product, models.Option) {
	customer := models.Customer{Name: "Ali"}
	product := models.Product{Name: "Shirt"}
	option := models.Option{Title: "Gift wrap", Model: models.OptionModelBoolean, IsActive: true}
	require.NoError(t, db.Create(&customer).Error)
	require.NoError(t, db.Create(&product).Error)
	require.NoError(t, db.Create(&option).Error)
	return customer, product, option
}

func newOrder(customerID, productID, optionID uint) *models.Order {
	return &models.Order{
		CustomerID: customerID,
		Status:     models.OrderStatusOpen,
		OrderTime:  time.Now().Unix(),
		CreatedBy:  "admin",
		OrderItems: []models.OrderItem{{
			ProductID: productID,
			Quantity:  1,
			Options:   []models.OrderItemOption{{OptionID: optionID, Selection: "true"}},
		}},
	}
}

func TestCreateAndFindOrder(t *testing.T) {
	db := setupTestDB(t)
	customer, product, option := seed(t, db)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := newOrder(customer.ID, product.ID, option.ID)
	require.NoError(t, repo.CreateOrder(ctx, order))
	require.NotZero(t, order.ID)

	found, err := repo.FindOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ali", found.Customer.Name)
	assert.Nil(t, found.Company)
	require.Len(t, found.OrderItems, 1)
	assert.Equal(t, "Shirt", found.OrderItems[0].Product.Name)
	require.Len(t, found.OrderItems[0].Options, 1)
	assert.Equal(t, "Gift wrap", found.OrderItems[0].Options[0].Option.Title)
	assert.Equal(t, "true", found.OrderItems[0].Options[0].Selection)
}

func TestCreateOrderUnknownOption(t *testing.T) {
	db := setupTestDB(t)
	customer, product, _ := seed(t, db)
	repo := NewOrderRepository(db)

	err := repo.CreateOrder(context.Background(), newOrder(customer.ID, product.ID, 77))
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "option", notFound.Entity)
	assert.Equal(t, uint(77), notFound.ID)
	assert.Equal(t, "option 77 not found", err.Error())

	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	assert.Zero(t, orders)
}

func TestReplaceOrderMissing(t *testing.T) {
	db := setupTestDB(t)
	customer, product, option := seed(t, db)
	repo := NewOrderRepository(db)

	order := newOrder(customer.ID, product.ID, option.ID)
	order.ID = 5
	assert.ErrorIs(t, repo.ReplaceOrder(context.Background(), order), ErrNotFound)
}

func TestDeleteOrderRemovesGraph(t *testing.T) {
	db := setupTestDB(t)
	customer, product, option := seed(t, db)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	keep := newOrder(customer.ID, product.ID, option.ID)
	drop := newOrder(customer.ID, product.ID, option.ID)
	require.NoError(t, repo.CreateOrder(ctx, keep))
	require.NoError(t, repo.CreateOrder(ctx, drop))
	require.NoError(t, repo.AppendHistory(ctx, &models.OrderHistory{
		OrderID: drop.ID, Action: models.HistoryActionCreated, ChangedBy: "admin", ChangedAt: time.Now(), NewData: "{}",
	}))

	require.NoError(t, repo.DeleteOrder(ctx, drop.ID))

	var items, options, history int64
	db.Model(&models.OrderItem{}).Count(&items)
	db.Model(&models.OrderItemOption{}).Count(&options)
	db.Model(&models.OrderHistory{}).Count(&history)
	assert.Equal(t, int64(1), items)
	assert.Equal(t, int64(1), options)
	assert.Zero(t, history)

	_, err := repo.FindOrder(ctx, keep.ID)
	assert.NoError(t, err)
	assert.ErrorIs(t, repo.DeleteOrder(ctx, drop.ID), ErrNotFound)
}

func TestListHistoryNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	customer, product, option := seed(t, db)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := newOrder(customer.ID, product.ID, option.ID)
	require.NoError(t, repo.CreateOrder(ctx, order))

	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	for i, action := range []string{models.HistoryActionCreated, models.HistoryActionStatusChanged, models.HistoryActionUpdated} {
		require.NoError(t, repo.AppendHistory(ctx, &models.OrderHistory{
			OrderID:   order.ID,
			Action:    action,
			ChangedBy: "admin",
			ChangedAt: base.Add(time.Duration(i) * time.Hour),
			NewData:   "{}",
		}))
	}

	rows, err := repo.ListHistory(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, models.HistoryActionUpdated, rows[0].Action)
	assert.Equal(t, models.HistoryActionStatusChanged, rows[1].Action)
	assert.Equal(t, models.HistoryActionCreated, rows[2].Action)
}
