// internal/handlers/health.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/stylehub/internal/i18n"
	"github.com/javajoker/stylehub/internal/services"
	"github.com/javajoker/stylehub/internal/utils"
)

const Version = "1.0.0"

type HealthHandler struct {
	productService *services.ProductService
	region         string
}

func NewHealthHandler(productService *services.ProductService, region string) *HealthHandler {
	return &HealthHandler{
		productService: productService,
		region:         region,
	}
}

// GET /
func (h *HealthHandler) Root(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   i18n.T(lang, i18n.KeyAPIRunning),
		"version":   Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"config": gin.H{
			"region": h.region,
			"table":  h.productService.TableName(),
		},
	})
}

// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// GET /test-db
func (h *HealthHandler) TestStore(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	n, err := h.productService.CheckStore(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("DynamoDB test failed")
		utils.ErrorResponse(c, http.StatusInternalServerError, i18n.T(lang, i18n.KeyStoreFailed), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   i18n.T(lang, i18n.KeyStoreConnected),
		"itemCount": n,
		"table":     h.productService.TableName(),
	})
}

// NoRoute answers every unknown path.
func NoRoute(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	utils.ErrorResponse(c, http.StatusNotFound, i18n.T(lang, i18n.KeyEndpointMissing), nil)
}
