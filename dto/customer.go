package dto

import (
	"time"

	"github.com/yeremiapane/business-manager/models"
)

const (
	CustomerTypeCompany    = "company"
	CustomerTypeIndividual = "individual"
)

type ContactRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Type    string `json:"type"`
	IsNew   *bool  `json:"isNew"`
}

// CustomerRequest creates or updates either a company (type=company) or an
// individual customer.
type CustomerRequest struct {
	Type        string           `json:"type"`
	Name        string           `json:"name"`
	Phone       *string          `json:"phone"`
	Mobile      *string          `json:"mobile"`
	Address     *string          `json:"address"`
	Description *string          `json:"description"`
	Serial      *string          `json:"serial"`
	TaxCode     *string          `json:"taxCode"`
	Position    *string          `json:"position"`
	CompanyID   *uint            `json:"companyId"`
	Contacts    []ContactRequest `json:"contacts"`
}

func (r CustomerRequest) IsCompany() bool {
	return r.Type == CustomerTypeCompany
}

// CustomerView is one row of the merged customers listing.
type CustomerView struct {
	ID          uint             `json:"id"`
	Type        string           `json:"type"`
	Name        string           `json:"name"`
	Serial      *string          `json:"serial,omitempty"`
	TaxCode     *string          `json:"taxCode,omitempty"`
	Mobile      *string          `json:"mobile,omitempty"`
	Position    *string          `json:"position,omitempty"`
	Phone       *string          `json:"phone"`
	Address     *string          `json:"address"`
	Description *string          `json:"description"`
	CompanyID   *uint            `json:"companyId,omitempty"`
	Company     *models.Company  `json:"company,omitempty"`
	Contacts    []models.Contact `json:"contacts,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

func CompanyView(c *models.Company) CustomerView {
	return CustomerView{
		ID:          c.ID,
		Type:        CustomerTypeCompany,
		Name:        c.Name,
		Serial:      c.Serial,
		TaxCode:     c.TaxCode,
		Phone:       c.Phone,
		Address:     c.Address,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// IndividualView reports the mobile number as phone too; individuals have no
// address.
func IndividualView(c *models.Customer) CustomerView {
	return CustomerView{
		ID:          c.ID,
		Type:        CustomerTypeIndividual,
		Name:        c.Name,
		Mobile:      c.Mobile,
		Position:    c.Position,
		Phone:       c.Mobile,
		Description: c.Description,
		CompanyID:   c.CompanyID,
		Company:     c.Company,
		Contacts:    c.Contacts,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
