// internal/utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/stylehub/internal/i18n"
)

// Envelope is the body shape of every API response.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

func count(n int) *int {
	return &n
}

func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    data,
	})
}

// ListResponse writes a collection together with its size.
func ListResponse(c *gin.Context, data interface{}, n int) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    data,
		Count:   count(n),
	})
}

func CreatedResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, message string, err error) {
	env := Envelope{
		Success: false,
		Message: message,
	}
	if err != nil {
		env.Error = err.Error()
	}
	c.JSON(statusCode, env)
}

func NotFoundResponse(c *gin.Context, key string) {
	lang := GetLangFromContext(c)
	ErrorResponse(c, http.StatusNotFound, i18n.T(lang, key), nil)
}

// ListNotFoundResponse is the 404 of a collection endpoint; it keeps the
// count and data fields so list clients can render an empty state.
func ListNotFoundResponse(c *gin.Context, key string) {
	lang := GetLangFromContext(c)
	c.JSON(http.StatusNotFound, Envelope{
		Success: false,
		Message: i18n.T(lang, key),
		Data:    []interface{}{},
		Count:   count(0),
	})
}

func BadRequestResponse(c *gin.Context, message string, err error) {
	lang := GetLangFromContext(c)
	if message == "" {
		message = i18n.T(lang, i18n.KeyValidationInvalid, "request")
	}
	ErrorResponse(c, http.StatusBadRequest, message, err)
}

func ValidationErrorResponse(c *gin.Context, verr *ValidationError) {
	lang := GetLangFromContext(c)
	c.JSON(http.StatusBadRequest, Envelope{
		Success: false,
		Message: i18n.T(lang, i18n.KeyValidationInvalid, "input"),
		Error:   verr.Error(),
		Code:    "VALIDATION_ERROR",
		Details: verr.Fields,
	})
}

func ConflictResponse(c *gin.Context, key string, err error) {
	lang := GetLangFromContext(c)
	ErrorResponse(c, http.StatusConflict, i18n.T(lang, key), err)
}

func InternalErrorResponse(c *gin.Context, err error) {
	lang := GetLangFromContext(c)
	ErrorResponse(c, http.StatusInternalServerError, i18n.T(lang, i18n.KeyInternalError), err)
}

// ListInternalErrorResponse is the 500 of a collection endpoint.
func ListInternalErrorResponse(c *gin.Context, err error) {
	lang := GetLangFromContext(c)
	c.JSON(http.StatusInternalServerError, Envelope{
		Success: false,
		Message: i18n.T(lang, i18n.KeyInternalError),
		Error:   err.Error(),
		Data:    []interface{}{},
		Count:   count(0),
	})
}

func GetLangFromContext(c *gin.Context) string {
	if lang, exists := c.Get("lang"); exists {
		if langStr, ok := lang.(string); ok {
			return langStr
		}
	}
	return "en"
}

func GetRequestIDFromContext(c *gin.Context) string {
	if id, exists := c.Get("request_id"); exists {
		if idStr, ok := id.(string); ok {
			return idStr
		}
	}
	return ""
}
