package controllers

import (
	"errors"
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

var errProductNameRequired = errors.New("product name is required")

type ProductController struct {
	DB *gorm.DB
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{DB: db}
}

type productOptionRequest struct {
	OptionID uint `json:"optionId"`
	MaxNo    int  `json:"maxNo"`
}

type productRequest struct {
	Name           string                 `json:"name"`
	Description    *string                `json:"description"`
	ProductOptions []productOptionRequest `json:"productOptions"`
}

func (r productRequest) validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errProductNameRequired
	}
	for i, po := range r.ProductOptions {
		if po.OptionID == 0 {
			return &services.ValidationError{Field: fmt.Sprintf("productOptions[%d].optionId", i), Message: "option is required"}
		}
		if po.MaxNo < 0 {
			return &services.ValidationError{Field: fmt.Sprintf("productOptions[%d].maxNo", i), Message: "must not be negative"}
		}
	}
	return nil
}

func preloadProduct(db *gorm.DB) *gorm.DB {
	return db.Preload("ProductOptions", func(db *gorm.DB) *gorm.DB {
		return db.Order("product_options.id ASC")
	}).Preload("ProductOptions.Option")
}

func (pc *ProductController) GetAllProducts(c *gin.Context) {
	var products []models.Product
	if err := preloadProduct(pc.DB.WithContext(c.Request.Context())).Order("id ASC").Find(&products).Error; err != nil {
		utils.RespondErrorDetails(c, http.StatusInternalServerError, "failed to fetch products", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Products retrieved", products)
}

func (pc *ProductController) GetProductByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	product, err := loadProduct(pc.DB.WithContext(c.Request.Context()), id)
	if err != nil {
		respondServiceError(c, "failed to fetch product", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product retrieved", product)
}

func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondErrorDetails(c, http.StatusBadRequest, ErrInvalidPayload.Error(), err)
		return
	}
	if err := req.validate(); err != nil {
		respondValidation(c, "failed to create product", err)
		return
	}

	var product *models.Product
	err := pc.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		record := models.Product{
			Name:        strings.TrimSpace(req.Name),
			Description: optionalString(req.Description),
		}
		if err := tx.Omit("ProductOptions").Create(&record).Error; err != nil {
			return fmt.Errorf("insert product: %w", err)
		}
		if err := insertProductOptions(tx, record.ID, req.ProductOptions); err != nil {
			return err
		}

		var err error
		product, err = loadProduct(tx, record.ID)
		return err
	})
	if err != nil {
		respondServiceError(c, "failed to create product", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product created", product)
}

// UpdateProduct replaces the product's option links with the submitted ones.
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondErrorDetails(c, http.StatusBadRequest, ErrInvalidPayload.Error(), err)
		return
	}
	if err := req.validate(); err != nil {
		respondValidation(c, "failed to update product", err)
		return
	}

	var product *models.Product
	err := pc.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var record models.Product
		if err := tx.First(&record, id).Error; err != nil {
			return notFoundOr(err, "product", id)
		}

		record.Name = strings.TrimSpace(req.Name)
		record.Description = optionalString(req.Description)
		if err := tx.Omit("ProductOptions").Save(&record).Error; err != nil {
			return fmt.Errorf("update product: %w", err)
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductOption{}).Error; err != nil {
			return fmt.Errorf("delete product options: %w", err)
		}
		if err := insertProductOptions(tx, id, req.ProductOptions); err != nil {
			return err
		}

		var err error
		product, err = loadProduct(tx, id)
		return err
	})
	if err != nil {
		respondServiceError(c, "failed to update product", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product updated", product)
}

// DeleteProduct refuses to remove a product that appears on any order item.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	err := pc.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Select("id").First(&product, id).Error; err != nil {
			return notFoundOr(err, "product", id)
		}

		var used int64
		if err := tx.Model(&models.OrderItem{}).Where("product_id = ?", id).Count(&used).Error; err != nil {
			return err
		}
		if used > 0 {
			return fmt.Errorf("product %d is used by %d order items: %w", id, used, repository.ErrInUse)
		}

		if err := tx.Where("product_id = ?", id).Delete(&models.ProductOption{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, id).Error
	})
	if err != nil {
		respondServiceError(c, "failed to delete product", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product deleted", nil)
}

func insertProductOptions(tx *gorm.DB, productID uint, options []productOptionRequest) error {
	for _, in := range options {
		var count int64
		if err := tx.Model(&models.Option{}).Where("id = ?", in.OptionID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return &repository.NotFoundError{Entity: "option", ID: in.OptionID}
		}

		link := models.ProductOption{ProductID: productID, OptionID: in.OptionID, MaxNo: in.MaxNo}
		if err := tx.Omit("Product", "Option").Create(&link).Error; err != nil {
			return fmt.Errorf("insert product option: %w", err)
		}
	}
	return nil
}

func loadProduct(db *gorm.DB, id uint) (*models.Product, error) {
	var product models.Product
	if err := preloadProduct(db).First(&product, id).Error; err != nil {
		return nil, notFoundOr(err, "product", id)
	}
	return &product, nil
}

// respondValidation reports plain errors from request checks as 400.
func respondValidation(c *gin.Context, message string, err error) {
	var validation *services.ValidationError
	if errors.As(err, &validation) {
		respondServiceError(c, message, err)
		return
	}
	utils.RespondError(c, http.StatusBadRequest, err)
}
