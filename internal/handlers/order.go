// internal/handlers/order.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/stylehub/internal/i18n"
	"github.com/javajoker/stylehub/internal/models"
	"github.com/javajoker/stylehub/internal/services"
	"github.com/javajoker/stylehub/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// POST /orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req models.Order
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err)
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		var verr *utils.ValidationError
		switch {
		case errors.As(err, &verr):
			utils.ValidationErrorResponse(c, verr)
		case errors.Is(err, utils.ErrConflict):
			utils.ConflictResponse(c, i18n.KeyOrderExists, err)
		default:
			logrus.WithError(err).WithField("order_id", req.OrderID).Error("Error creating order")
			utils.InternalErrorResponse(c, err)
		}
		return
	}

	utils.CreatedResponse(c, i18n.T(lang, i18n.KeyOrderCreated), order)
}

// GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.NotFoundResponse(c, i18n.KeyOrderNotFound)
			return
		}
		logrus.WithError(err).Error("Error fetching order")
		utils.InternalErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, order)
}
