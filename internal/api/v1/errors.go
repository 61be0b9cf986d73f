package v1

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ravikumar1136/sailHeatPlan/internal/service/heatplan"
)

// errorStatus 错误到 HTTP 状态码与提示信息
func errorStatus(err error) (int, string) {
	var colErr *heatplan.ColumnsError
	switch {
	case errors.Is(err, heatplan.ErrMissingInput):
		return http.StatusBadRequest, "Both order and stock files are required"
	case errors.As(err, &colErr):
		return http.StatusBadRequest, "Error reading " + colErr.Role + " file: please ensure it has columns: " + strings.Join(colErr.Expected, ", ")
	case errors.Is(err, heatplan.ErrUnreadableFile):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, heatplan.ErrQuantityLimit):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, context.Canceled):
		return 499, "request canceled"
	default:
		return http.StatusInternalServerError, "Error processing data: " + err.Error()
	}
}

func abortWithError(c *gin.Context, err error) {
	status, message := errorStatus(err)
	c.JSON(status, gin.H{"error": message})
}
