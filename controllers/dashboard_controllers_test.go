package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/business-manager/controllers"
	"github.com/yeremiapane/business-manager/models"
)

func TestDashboardStats(t *testing.T) {
	app := setupTestApp(t)
	s := app.seed(t)

	for _, status := range []string{"", "done", "done"} {
		w, _ := app.do(t, http.MethodPost, "/api/orders", models.RoleUser, s.orderBody(status, s.shirt.ID))
		require.Equal(t, http.StatusOK, w.Code)
	}
	yesterday := models.Call{CustomerID: s.customer.ID, Subject: "old", CallTime: time.Now().AddDate(0, 0, -2).Unix()}
	require.NoError(t, app.db.Omit("Customer").Create(&yesterday).Error)
	today := models.Call{CustomerID: s.customer.ID, Subject: "new", CallTime: time.Now().Unix()}
	require.NoError(t, app.db.Omit("Customer").Create(&today).Error)

	w, _ := app.do(t, http.MethodGet, "/api/dashboard", models.RoleUser, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env := app.do(t, http.MethodGet, "/api/dashboard", models.RoleManager, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stats controllers.DashboardStats
	decode(t, env.Data, &stats)
	assert.Equal(t, int64(3), stats.TotalOrders)
	assert.Equal(t, int64(3), stats.TodayOrders)
	assert.Equal(t, int64(1), stats.Customers)
	assert.Equal(t, int64(1), stats.Companies)
	assert.Equal(t, int64(2), stats.Products)
	assert.Equal(t, int64(1), stats.TodayCalls)

	byStatus := map[string]int64{}
	for _, row := range stats.OrdersByStatus {
		byStatus[row.Status] = row.Count
	}
	assert.Equal(t, map[string]int64{"done": 2, "open": 1}, byStatus)
}
