// internal/middleware/recovery.go
package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/stylehub/internal/i18n"
	"github.com/javajoker/stylehub/internal/utils"
)

// Recovery turns a panic into the 500 envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logrus.WithFields(logrus.Fields{
			"path":       c.Request.URL.Path,
			"request_id": utils.GetRequestIDFromContext(c),
			"panic":      fmt.Sprint(recovered),
		}).Error("Unhandled error")

		lang := utils.GetLangFromContext(c)
		c.AbortWithStatusJSON(http.StatusInternalServerError, utils.Envelope{
			Success: false,
			Message: i18n.T(lang, i18n.KeyInternalError),
			Error:   fmt.Sprint(recovered),
		})
	})
}
