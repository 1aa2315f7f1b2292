package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/business-manager/dto"
	"github.com/yeremiapane/business-manager/models"
	"github.com/yeremiapane/business-manager/repository"
	"github.com/yeremiapane/business-manager/utils"
	"gorm.io/gorm"
)

var errCustomerNameRequired = errors.New("customer name is required")

// CustomerController serves companies and individual customers through one
// resource, distinguished by type.
type CustomerController struct {
	DB *gorm.DB
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{DB: db}
}

func isCompanyQuery(c *gin.Context) bool {
	return c.Query("type") == dto.CustomerTypeCompany
}

// GetAllCustomers lists companies first, then individuals. ?type narrows the
// listing to one kind.
func (cc *CustomerController) GetAllCustomers(c *gin.Context) {
	db := cc.DB.WithContext(c.Request.Context())
	kind := c.Query("type")
	views := make([]dto.CustomerView, 0)

	if kind == "" || kind == dto.CustomerTypeCompany {
		var companies []models.Company
		if err := db.Order("id ASC").Find(&companies).Error; err != nil {
			utils.RespondErrorDetails(c, http.StatusInternalServerError, "failed to fetch customers", err)
			return
		}
		for i := range companies {
			views = append(views, dto.CompanyView(&companies[i]))
		}
	}

	if kind == "" || kind == dto.CustomerTypeIndividual {
		var customers []models.Customer
		if err := db.Preload("Company").Preload("Contacts").Order("id ASC").Find(&customers).Error; err != nil {
			utils.RespondErrorDetails(c, http.StatusInternalServerError, "failed to fetch customers", err)
			return
		}
		for i := range customers {
			views = append(views, dto.IndividualView(&customers[i]))
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Customers retrieved", views)
}

func (cc *CustomerController) GetCustomerByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	db := cc.DB.WithContext(c.Request.Context())

	if isCompanyQuery(c) {
		var company models.Company
		if err := db.First(&company, id).Error; err != nil {
			respondServiceError(c, "failed to fetch customer", notFoundOr(err, "company", id))
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Customer retrieved", dto.CompanyView(&company))
		return
	}

	customer, err := loadCustomer(db, id)
	if err != nil {
		respondServiceError(c, "failed to fetch customer", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer retrieved", dto.IndividualView(customer))
}

func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	var req dto.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondErrorDetails(c, http.StatusBadRequest, ErrInvalidPayload.Error(), err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		utils.RespondError(c, http.StatusBadRequest, errCustomerNameRequired)
		return
	}
	db := cc.DB.WithContext(c.Request.Context())

	if req.IsCompany() {
		company := models.Company{}
		companyRequestFrom(req).apply(&company)
		if err := db.Create(&company).Error; err != nil {
			utils.RespondErrorDetails(c, http.StatusInternalServerError, "failed to create customer", err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Customer created", dto.CompanyView(&company))
		return
	}

	var customer *models.Customer
	err := db.Transaction(func(tx *gorm.DB) error {
		record := models.Customer{}
		if err := applyIndividual(tx, &record, req); err != nil {
			return err
		}
		if err := tx.Omit("Contacts", "Company").Create(&record).Error; err != nil {
			return fmt.Errorf("insert customer: %w", err)
		}
		if err := replaceContacts(tx, record.ID, req.Contacts); err != nil {
			return err
		}

		var err error
		customer, err = loadCustomer(tx, record.ID)
		return err
	})
	if err != nil {
		respondServiceError(c, "failed to create customer", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer created", dto.IndividualView(customer))
}

// UpdateCustomer replaces the contact list of an individual customer with the
// submitted one.
func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondErrorDetails(c, http.StatusBadRequest, ErrInvalidPayload.Error(), err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		utils.RespondError(c, http.StatusBadRequest, errCustomerNameRequired)
		return
	}
	db := cc.DB.WithContext(c.Request.Context())

	if req.IsCompany() {
		company, err := updateCompany(db, id, companyRequestFrom(req))
		if err != nil {
			respondServiceError(c, "failed to update customer", err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Customer updated", dto.CompanyView(company))
		return
	}

	var customer *models.Customer
	err := db.Transaction(func(tx *gorm.DB) error {
		var record models.Customer
		if err := tx.First(&record, id).Error; err != nil {
			return notFoundOr(err, "customer", id)
		}
		if err := applyIndividual(tx, &record, req); err != nil {
			return err
		}
		if err := tx.Omit("Contacts", "Company").Save(&record).Error; err != nil {
			return fmt.Errorf("update customer: %w", err)
		}
		if err := tx.Where("customer_id = ?", id).Delete(&models.Contact{}).Error; err != nil {
			return fmt.Errorf("delete contacts: %w", err)
		}
		if err := replaceContacts(tx, id, req.Contacts); err != nil {
			return err
		}

		var err error
		customer, err = loadCustomer(tx, id)
		return err
	})
	if err != nil {
		respondServiceError(c, "failed to update customer", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer updated", dto.IndividualView(customer))
}

// DeleteCustomer refuses to remove an individual that still has orders.
func (cc *CustomerController) DeleteCustomer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	db := cc.DB.WithContext(c.Request.Context())

	if isCompanyQuery(c) {
		if err := deleteCompany(db, id); err != nil {
			respondServiceError(c, "failed to delete customer", err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Customer deleted", nil)
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.Select("id").First(&customer, id).Error; err != nil {
			return notFoundOr(err, "customer", id)
		}

		var orders int64
		if err := tx.Model(&models.Order{}).Where("customer_id = ?", id).Count(&orders).Error; err != nil {
			return err
		}
		if orders > 0 {
			return fmt.Errorf("customer %d has %d orders: %w", id, orders, repository.ErrInUse)
		}

		if err := tx.Where("customer_id = ?", id).Delete(&models.Contact{}).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", id).Delete(&models.Call{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Customer{}, id).Error
	})
	if err != nil {
		respondServiceError(c, "failed to delete customer", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer deleted", nil)
}

func companyRequestFrom(req dto.CustomerRequest) companyRequest {
	return companyRequest{
		Name:        req.Name,
		Serial:      req.Serial,
		TaxCode:     req.TaxCode,
		Phone:       req.Phone,
		Address:     req.Address,
		Description: req.Description,
	}
}

// applyIndividual copies the request onto record. Mobile falls back to phone.
func applyIndividual(tx *gorm.DB, record *models.Customer, req dto.CustomerRequest) error {
	record.Name = strings.TrimSpace(req.Name)
	record.Mobile = optionalString(req.Mobile)
	if record.Mobile == nil {
		record.Mobile = optionalString(req.Phone)
	}
	record.Position = optionalString(req.Position)
	record.Description = optionalString(req.Description)
	record.CompanyID = nil

	if req.CompanyID != nil && *req.CompanyID != 0 {
		var count int64
		if err := tx.Model(&models.Company{}).Where("id = ?", *req.CompanyID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return &repository.NotFoundError{Entity: "company", ID: *req.CompanyID}
		}
		record.CompanyID = req.CompanyID
	}
	return nil
}

func replaceContacts(tx *gorm.DB, customerID uint, contacts []dto.ContactRequest) error {
	for _, in := range contacts {
		contact := models.Contact{
			CustomerID: customerID,
			Title:      in.Title,
			Content:    in.Content,
			Type:       in.Type,
			IsNew:      in.IsNew == nil || *in.IsNew,
		}
		if err := tx.Omit("Customer").Create(&contact).Error; err != nil {
			return fmt.Errorf("insert contact: %w", err)
		}
	}
	return nil
}

func loadCustomer(db *gorm.DB, id uint) (*models.Customer, error) {
	var customer models.Customer
	err := db.Preload("Company").
		Preload("Contacts", func(db *gorm.DB) *gorm.DB { return db.Order("contacts.id ASC") }).
		First(&customer, id).Error
	if err != nil {
		return nil, notFoundOr(err, "customer", id)
	}
	return &customer, nil
}
