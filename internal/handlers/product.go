// internal/handlers/product.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/stylehub/internal/i18n"
	"github.com/javajoker/stylehub/internal/services"
	"github.com/javajoker/stylehub/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	var query services.ProductQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BadRequestResponse(c, "", err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"category":   query.Category,
		"product_id": query.ProductID,
		"request_id": utils.GetRequestIDFromContext(c),
	}).Debug("Querying products")

	products, err := h.productService.Query(c.Request.Context(), query)
	if err != nil {
		var verr *utils.ValidationError
		switch {
		case errors.Is(err, utils.ErrNotFound):
			utils.ListNotFoundResponse(c, i18n.KeyProductNotFound)
		case errors.As(err, &verr):
			utils.ValidationErrorResponse(c, verr)
		default:
			logrus.WithError(err).Error("Error fetching products")
			utils.ListInternalErrorResponse(c, err)
		}
		return
	}

	utils.ListResponse(c, products, len(products))
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		var verr *utils.ValidationError
		switch {
		case errors.Is(err, utils.ErrNotFound):
			utils.NotFoundResponse(c, i18n.KeyProductNotFound)
		case errors.As(err, &verr):
			utils.ValidationErrorResponse(c, verr)
		default:
			logrus.WithError(err).Error("Error fetching product")
			utils.InternalErrorResponse(c, err)
		}
		return
	}

	utils.SuccessResponse(c, product)
}
