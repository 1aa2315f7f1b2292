package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/business-manager/models"
	"github.com/yeremiapane/business-manager/repository"
	"github.com/yeremiapane/business-manager/services"
	"github.com/yeremiapane/business-manager/utils"
	"gorm.io/gorm"
)

type OptionController struct {
	DB *gorm.DB
}

func NewOptionController(db *gorm.DB) *OptionController {
	return &OptionController{DB: db}
}

type optionRequest struct {
	Title       string   `json:"title"`
	Model       string   `json:"model"`
	States      []string `json:"states"`
	Description *string  `json:"description"`
	IsActive    *bool    `json:"isActive"`
}

// apply validates the request and copies it onto option. States are only
// kept for multi-valued models.
func (r optionRequest) apply(option *models.Option) error {
	if strings.TrimSpace(r.Title) == "" || strings.TrimSpace(r.Model) == "" {
		return &services.ValidationError{Message: "title and model are required"}
	}

	states, err := services.NormalizeOptionStates(r.Model, r.States)
	if err != nil {
		return err
	}

	option.Title = strings.TrimSpace(r.Title)
	option.Model = r.Model
	option.States = nil
	if states != nil {
		encoded, err := json.Marshal(states)
		if err != nil {
			return err
		}
		text := string(encoded)
		option.States = &text
	}
	option.Description = optionalString(r.Description)
	if r.IsActive != nil {
		option.IsActive = *r.IsActive
	}
	return nil
}

func (oc *OptionController) GetAllOptions(c *gin.Context) {
	var options []models.Option
	if err := oc.DB.WithContext(c.Request.Context()).Order("id DESC").Find(&options).Error; err != nil {
		utils.RespondErrorDetails(c, http.StatusInternalServerError, "failed to fetch options", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Options retrieved", options)
}

func (oc *OptionController) GetOptionByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var option models.Option
	if err := oc.DB.WithContext(c.Request.Context()).First(&option, id).Error; err != nil {
		respondServiceError(c, "failed to fetch option", notFoundOr(err, "option", id))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Option retrieved", option)
}

func (oc *OptionController) CreateOption(c *gin.Context) {
	var req optionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondErrorDetails(c, http.StatusBadRequest, ErrInvalidPayload.Error(), err)
		return
	}

	option := models.Option{IsActive: true}
	if err := req.apply(&option); err != nil {
		respondServiceError(c, "failed to create option", err)
		return
	}

	if err := oc.DB.WithContext(c.Request.Context()).Create(&option).Error; err != nil {
		utils.RespondErrorDetails(c, http.StatusInternalServerError, "failed to create option", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Option created", option)
}

func (oc *OptionController) UpdateOption(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req optionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondErrorDetails(c, http.StatusBadRequest, ErrInvalidPayload.Error(), err)
		return
	}
	db := oc.DB.WithContext(c.Request.Context())

	var option models.Option
	if err := db.First(&option, id).Error; err != nil {
		respondServiceError(c, "failed to update option", notFoundOr(err, "option", id))
		return
	}
	if err := req.apply(&option); err != nil {
		respondServiceError(c, "failed to update option", err)
		return
	}

	if err := db.Save(&option).Error; err != nil {
		utils.RespondErrorDetails(c, http.StatusInternalServerError, "failed to update option", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Option updated", option)
}

// DeleteOption unlinks the option from products. Options already selected on
// order items cannot be deleted.
func (oc *OptionController) DeleteOption(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	err := oc.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var option models.Option
		if err := tx.Select("id").First(&option, id).Error; err != nil {
			return notFoundOr(err, "option", id)
		}

		var used int64
		if err := tx.Model(&models.OrderItemOption{}).Where("option_id = ?", id).Count(&used).Error; err != nil {
			return err
		}
		if used > 0 {
			return fmt.Errorf("option %d is selected on %d order items: %w", id, used, repository.ErrInUse)
		}

		if err := tx.Where("option_id = ?", id).Delete(&models.ProductOption{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Option{}, id).Error
	})
	if err != nil {
		respondServiceError(c, "failed to delete option", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Option deleted", nil)
}
