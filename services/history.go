package services

import (
	"sort"

	"github.com/yeremiapane/business-manager/models"
)

// Change is a before/after pair in a change-set.
type Change struct {
	From interface{} `json:"from"`
	To   interface{} `json:"to"`
}

// ChangeSet maps a change kind (status, customerId, companyId, description,
// itemsCount, itemsChanged) to what changed.
type ChangeSet map[string]interface{}

// DiffOrders compares two snapshots of the same order. It returns nil when
// either side is missing or nothing tracked changed.
func DiffOrders(old, updated *models.Order) ChangeSet {
	if old == nil || updated == nil {
		return nil
	}

	changes := ChangeSet{}

	if old.Status != updated.Status {
		changes["status"] = Change{From: old.Status, To: updated.Status}
	}
	if old.CustomerID != updated.CustomerID {
		changes["customerId"] = Change{From: old.CustomerID, To: updated.CustomerID}
	}
	if from, to := companyValue(old.CompanyID), companyValue(updated.CompanyID); from != to {
		changes["companyId"] = Change{From: from, To: to}
	}
	if old.Description != updated.Description {
		changes["description"] = Change{From: old.Description, To: updated.Description}
	}
	if len(old.OrderItems) != len(updated.OrderItems) {
		changes["itemsCount"] = Change{From: len(old.OrderItems), To: len(updated.OrderItems)}
	}
	if len(old.OrderItems) > 0 && len(updated.OrderItems) > 0 &&
		!sameProducts(old.OrderItems, updated.OrderItems) {
		changes["itemsChanged"] = true
	}

	if len(changes) == 0 {
		return nil
	}
	return changes
}

// companyValue turns an optional company id into a comparable value; no
// company is nil.
func companyValue(id *uint) interface{} {
	if id == nil {
		return nil
	}
	return *id
}

func sameProducts(a, b []models.OrderItem) bool {
	left, right := sortedProductIDs(a), sortedProductIDs(b)
	if len(left) != len(right) {
		return false
	}
	for i := range left {
		if left[i] != right[i] {
			return false
		}
	}
	return true
}

func sortedProductIDs(items []models.OrderItem) []uint {
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
