package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/business-manager/models"
	"github.com/yeremiapane/business-manager/repository"
	"github.com/yeremiapane/business-manager/utils"
	"gorm.io/gorm"
)

type CallController struct {
	DB *gorm.DB
}

func NewCallController(db *gorm.DB) *CallController {
	return &CallController{DB: db}
}

type callRequest struct {
	CustomerID      uint   `json:"customerId"`
	Subject         string `json:"subject"`
	Description     string `json:"description"`
	CallTime        int64  `json:"callTime"`
	DurationSeconds int    `json:"durationSeconds"`
}

func (r callRequest) validate() error {
	switch {
	case r.CustomerID == 0:
		return errors.New("customerId is required")
	case strings.TrimSpace(r.Subject) == "":
		return errors.New("subject is required")
	case r.DurationSeconds < 0:
		return errors.New("durationSeconds must not be negative")
	}
	return nil
}

func (cc *CallController) GetAllCalls(c *gin.Context) {
	var calls []models.Call
	if err := cc.DB.WithContext(c.Request.Context()).Order("call_time DESC").Order("id DESC").Find(&calls).Error; err != nil {
		utils.RespondErrorDetails(c, http.StatusInternalServerError, "failed to fetch calls", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Calls retrieved", calls)
}

// GetCustomerCalls lists one customer's calls, newest first.
func (cc *CallController) GetCustomerCalls(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	db := cc.DB.WithContext(c.Request.Context())

	if err := customerExists(db, id); err != nil {
		respondServiceError(c, "failed to fetch calls", err)
		return
	}

	var calls []models.Call
	if err := db.Where("customer_id = ?", id).Order("call_time DESC").Order("id DESC").Find(&calls).Error; err != nil {
		utils.RespondErrorDetails(c, http.StatusInternalServerError, "failed to fetch calls", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Calls retrieved", calls)
}

func (cc *CallController) GetCallByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var call models.Call
	if err := cc.DB.WithContext(c.Request.Context()).First(&call, id).Error; err != nil {
		respondServiceError(c, "failed to fetch call", notFoundOr(err, "call", id))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Call retrieved", call)
}

func (cc *CallController) CreateCall(c *gin.Context) {
	var req callRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondErrorDetails(c, http.StatusBadRequest, ErrInvalidPayload.Error(), err)
		return
	}
	if err := req.validate(); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	db := cc.DB.WithContext(c.Request.Context())

	if err := customerExists(db, req.CustomerID); err != nil {
		respondServiceError(c, "failed to create call", err)
		return
	}

	call := models.Call{
		CustomerID:      req.CustomerID,
		Subject:         strings.TrimSpace(req.Subject),
		Description:     req.Description,
		CallTime:        req.CallTime,
		DurationSeconds: req.DurationSeconds,
		CreatedBy:       currentIdentity(c).Username,
	}
	if call.CallTime == 0 {
		call.CallTime = time.Now().Unix()
	}

	if err := db.Omit("Customer").Create(&call).Error; err != nil {
		utils.RespondErrorDetails(c, http.StatusInternalServerError, "failed to create call", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Call created", call)
}

func (cc *CallController) UpdateCall(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req callRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondErrorDetails(c, http.StatusBadRequest, ErrInvalidPayload.Error(), err)
		return
	}
	if err := req.validate(); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	db := cc.DB.WithContext(c.Request.Context())

	var call models.Call
	if err := db.First(&call, id).Error; err != nil {
		respondServiceError(c, "failed to update call", notFoundOr(err, "call", id))
		return
	}
	if err := customerExists(db, req.CustomerID); err != nil {
		respondServiceError(c, "failed to update call", err)
		return
	}

	call.CustomerID = req.CustomerID
	call.Subject = strings.TrimSpace(req.Subject)
	call.Description = req.Description
	if req.CallTime != 0 {
		call.CallTime = req.CallTime
	}
	call.DurationSeconds = req.DurationSeconds

	if err := db.Omit("Customer").Save(&call).Error; err != nil {
		utils.RespondErrorDetails(c, http.StatusInternalServerError, "failed to update call", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Call updated", call)
}

func (cc *CallController) DeleteCall(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	result := cc.DB.WithContext(c.Request.Context()).Delete(&models.Call{}, id)
	if result.Error != nil {
		utils.RespondErrorDetails(c, http.StatusInternalServerError, "failed to delete call", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondServiceError(c, "failed to delete call", &repository.NotFoundError{Entity: "call", ID: id})
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Call deleted", nil)
}

func customerExists(db *gorm.DB, id uint) error {
	var count int64
	if err := db.Model(&models.Customer{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return &repository.NotFoundError{Entity: "customer", ID: id}
	}
	return nil
}
