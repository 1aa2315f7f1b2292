package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/business-manager/dto"
	"github.com/yeremiapane/business-manager/models"
)

func TestListCustomersMerged(t *testing.T) {
	app := setupTestApp(t)
	s := app.seed(t)

	w, env := app.do(t, http.MethodGet, "/api/customers", models.RoleUser, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []dto.CustomerView
	decode(t, env.Data, &all)
	require.Len(t, all, 2)
	assert.Equal(t, dto.CustomerTypeCompany, all[0].Type)
	assert.Equal(t, "Acme", all[0].Name)
	assert.Equal(t, dto.CustomerTypeIndividual, all[1].Type)
	require.NotNil(t, all[1].Company)
	assert.Equal(t, s.company.ID, all[1].Company.ID)

	w, env = app.do(t, http.MethodGet, "/api/customers?type=individual", models.RoleUser, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var individuals []dto.CustomerView
	decode(t, env.Data, &individuals)
	require.Len(t, individuals, 1)
	assert.Equal(t, "Ali", individuals[0].Name)

	w, env = app.do(t, http.MethodGet, fmt.Sprintf("/api/customers/%d?type=company", s.company.ID), models.RoleUser, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var company dto.CustomerView
	decode(t, env.Data, &company)
	assert.Equal(t, "Acme", company.Name)
}

func TestCustomerContactsReplaced(t *testing.T) {
	app := setupTestApp(t)
	s := app.seed(t)

	w, env := app.do(t, http.MethodPost, "/api/customers", models.RoleUser, map[string]interface{}{
		"name":      "Sara",
		"phone":     "0912",
		"companyId": s.company.ID,
		"contacts": []map[string]interface{}{
			{"title": "home", "content": "021-1", "type": "phone"},
			{"title": "mail", "content": "sara@example.com", "type": "email", "isNew": false},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var sara dto.CustomerView
	decode(t, env.Data, &sara)
	require.NotNil(t, sara.Mobile)
	assert.Equal(t, "0912", *sara.Mobile)
	require.Len(t, sara.Contacts, 2)
	assert.True(t, sara.Contacts[0].IsNew)
	assert.False(t, sara.Contacts[1].IsNew)

	path := fmt.Sprintf("/api/customers/%d", sara.ID)
	w, env = app.do(t, http.MethodPut, path, models.RoleUser, map[string]interface{}{
		"name":     "Sara K",
		"contacts": []map[string]interface{}{{"title": "work", "content": "021-2", "type": "phone"}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated dto.CustomerView
	decode(t, env.Data, &updated)
	assert.Equal(t, "Sara K", updated.Name)
	assert.Nil(t, updated.CompanyID)
	require.Len(t, updated.Contacts, 1)
	assert.Equal(t, "work", updated.Contacts[0].Title)

	var contacts int64
	app.db.Model(&models.Contact{}).Where("customer_id = ?", sara.ID).Count(&contacts)
	assert.Equal(t, int64(1), contacts)
}

func TestCustomerErrors(t *testing.T) {
	app := setupTestApp(t)
	s := app.seed(t)

	w, _ := app.do(t, http.MethodPost, "/api/customers", models.RoleUser, map[string]interface{}{"name": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = app.do(t, http.MethodPost, "/api/customers", models.RoleUser, map[string]interface{}{"name": "Bo", "companyId": 999})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = app.do(t, http.MethodPost, "/api/orders", models.RoleUser, s.orderBody("", s.shirt.ID))
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = app.do(t, http.MethodDelete, fmt.Sprintf("/api/customers/%d", s.customer.ID), models.RoleUser, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = app.do(t, http.MethodDelete, fmt.Sprintf("/api/customers/%d", s.customer.ID), models.RoleManager, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeleteCompanyDetachesCustomers(t *testing.T) {
	app := setupTestApp(t)
	s := app.seed(t)

	w, _ := app.do(t, http.MethodDelete, fmt.Sprintf("/api/customers/%d?type=company", s.company.ID), models.RoleManager, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var customer models.Customer
	require.NoError(t, app.db.First(&customer, s.customer.ID).Error)
	assert.Nil(t, customer.CompanyID)
}

func TestCustomerCalls(t *testing.T) {
	app := setupTestApp(t)
	s := app.seed(t)

	for i, subject := range []string{"intro", "follow up"} {
		w, _ := app.do(t, http.MethodPost, "/api/calls", models.RoleUser, map[string]interface{}{
			"customerId":      s.customer.ID,
			"subject":         subject,
			"callTime":        1700000000 + i*60,
			"durationSeconds": 90,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w, _ := app.do(t, http.MethodPost, "/api/calls", models.RoleUser, map[string]interface{}{"customerId": 999, "subject": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env := app.do(t, http.MethodGet, fmt.Sprintf("/api/customers/%d/calls", s.customer.ID), models.RoleUser, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var calls []models.Call
	decode(t, env.Data, &calls)
	require.Len(t, calls, 2)
	assert.Equal(t, "follow up", calls[0].Subject)
	assert.Equal(t, "user-user", calls[0].CreatedBy)
}
