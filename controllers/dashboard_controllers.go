package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/business-manager/models"
	"github.com/yeremiapane/business-manager/utils"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB  *gorm.DB
	now func() time.Time
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db, now: time.Now}
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type DashboardStats struct {
	TotalOrders    int64         `json:"totalOrders"`
	TodayOrders    int64         `json:"todayOrders"`
	OrdersByStatus []StatusCount `json:"ordersByStatus"`
	Customers      int64         `json:"customers"`
	Companies      int64         `json:"companies"`
	Products       int64         `json:"products"`
	TodayCalls     int64         `json:"todayCalls"`
}

// GetDashboardStats counts today's activity against local midnight.
func (dc *DashboardController) GetDashboardStats(c *gin.Context) {
	db := dc.DB.WithContext(c.Request.Context())

	now := dc.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)

	stats := DashboardStats{OrdersByStatus: make([]StatusCount, 0)}

	queries := []*gorm.DB{
		db.Model(&models.Order{}).Count(&stats.TotalOrders),
		db.Model(&models.Order{}).Where("order_time >= ? AND order_time < ?", start.Unix(), end.Unix()).Count(&stats.TodayOrders),
		db.Model(&models.Order{}).Select("status, COUNT(*) AS count").Group("status").Order("status ASC").Scan(&stats.OrdersByStatus),
		db.Model(&models.Customer{}).Count(&stats.Customers),
		db.Model(&models.Company{}).Count(&stats.Companies),
		db.Model(&models.Product{}).Count(&stats.Products),
		db.Model(&models.Call{}).Where("call_time >= ? AND call_time < ?", start.Unix(), end.Unix()).Count(&stats.TodayCalls),
	}
	for _, q := range queries {
		if q.Error != nil {
			utils.RespondErrorDetails(c, http.StatusInternalServerError, "failed to load dashboard", q.Error)
			return
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats retrieved", stats)
}
