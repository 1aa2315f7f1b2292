package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/business-manager/models"
	"github.com/yeremiapane/business-manager/repository"
	"github.com/yeremiapane/business-manager/utils"
	"gorm.io/gorm"
)

var errCompanyNameRequired = errors.New("company name is required")

type CompanyController struct {
	DB *gorm.DB
}

func NewCompanyController(db *gorm.DB) *CompanyController {
	return &CompanyController{DB: db}
}

type companyRequest struct {
	Name        string  `json:"name"`
	Serial      *string `json:"serial"`
	TaxCode     *string `json:"taxCode"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	Description *string `json:"description"`
}

func (r companyRequest) apply(company *models.Company) {
	company.Name = strings.TrimSpace(r.Name)
	company.Serial = optionalString(r.Serial)
	company.TaxCode = optionalString(r.TaxCode)
	company.Phone = optionalString(r.Phone)
	company.Address = optionalString(r.Address)
	company.Description = optionalString(r.Description)
}

func (cc *CompanyController) GetAllCompanies(c *gin.Context) {
	var companies []models.Company
	err := cc.DB.WithContext(c.Request.Context()).Preload("Customers").Order("id ASC").Find(&companies).Error
	if err != nil {
		utils.RespondErrorDetails(c, http.StatusInternalServerError, "failed to fetch companies", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Companies retrieved", companies)
}

func (cc *CompanyController) GetCompanyByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var company models.Company
	if err := cc.DB.WithContext(c.Request.Context()).Preload("Customers").First(&company, id).Error; err != nil {
		respondServiceError(c, "failed to fetch company", notFoundOr(err, "company", id))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Company retrieved", company)
}

func (cc *CompanyController) CreateCompany(c *gin.Context) {
	var req companyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondErrorDetails(c, http.StatusBadRequest, ErrInvalidPayload.Error(), err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		utils.RespondError(c, http.StatusBadRequest, errCompanyNameRequired)
		return
	}

	var company models.Company
	req.apply(&company)
	if err := cc.DB.WithContext(c.Request.Context()).Create(&company).Error; err != nil {
		utils.RespondErrorDetails(c, http.StatusInternalServerError, "failed to create company", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Company created", company)
}

func (cc *CompanyController) UpdateCompany(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req companyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondErrorDetails(c, http.StatusBadRequest, ErrInvalidPayload.Error(), err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		utils.RespondError(c, http.StatusBadRequest, errCompanyNameRequired)
		return
	}

	company, err := updateCompany(cc.DB.WithContext(c.Request.Context()), id, req)
	if err != nil {
		respondServiceError(c, "failed to update company", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Company updated", company)
}

func (cc *CompanyController) DeleteCompany(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := deleteCompany(cc.DB.WithContext(c.Request.Context()), id); err != nil {
		respondServiceError(c, "failed to delete company", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Company deleted", nil)
}

func updateCompany(db *gorm.DB, id uint, req companyRequest) (*models.Company, error) {
	var company models.Company
	if err := db.First(&company, id).Error; err != nil {
		return nil, notFoundOr(err, "company", id)
	}
	req.apply(&company)
	if err := db.Save(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// deleteCompany detaches the company's customers and orders before removing it.
func deleteCompany(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var company models.Company
		if err := tx.Select("id").First(&company, id).Error; err != nil {
			return notFoundOr(err, "company", id)
		}
		if err := tx.Model(&models.Customer{}).Where("company_id = ?", id).Update("company_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Order{}).Where("company_id = ?", id).Update("company_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Company{}, id).Error
	})
}

// notFoundOr turns gorm's record-not-found into a typed NotFoundError.
func notFoundOr(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &repository.NotFoundError{Entity: entity, ID: id}
	}
	return err
}
