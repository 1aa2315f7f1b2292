package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/business-manager/dto"
	"github.com/yeremiapane/business-manager/services"
	"github.com/yeremiapane/business-manager/utils"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

func (oc *OrderController) GetAllOrders(c *gin.Context) {
	orders, err := oc.Orders.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, "failed to fetch orders", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Orders retrieved", orders)
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	order, err := oc.Orders.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, "failed to fetch order", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order retrieved", order)
}

func (oc *OrderController) GetOrderHistory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	history, err := oc.Orders.History(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, "failed to fetch order history", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order history retrieved", history)
}

func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req dto.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondErrorDetails(c, http.StatusBadRequest, ErrInvalidPayload.Error(), err)
		return
	}

	order, err := oc.Orders.Create(c.Request.Context(), req, currentIdentity(c))
	if err != nil {
		respondServiceError(c, "failed to create order", err)
		return
	}

	utils.InfoLogger.Infof("Order %d created by %s", order.ID, order.CreatedBy)
	utils.RespondJSON(c, http.StatusOK, "Order created", order)
}

func (oc *OrderController) UpdateOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondErrorDetails(c, http.StatusBadRequest, ErrInvalidPayload.Error(), err)
		return
	}

	order, err := oc.Orders.Update(c.Request.Context(), id, req, currentIdentity(c))
	if err != nil {
		respondServiceError(c, "failed to update order", err)
		return
	}

	utils.InfoLogger.Infof("Order %d updated (status=%s)", order.ID, order.Status)
	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}

func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := oc.Orders.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, "failed to delete order", err)
		return
	}

	utils.InfoLogger.Infof("Order %d deleted", id)
	utils.RespondJSON(c, http.StatusOK, "Order deleted", nil)
}
