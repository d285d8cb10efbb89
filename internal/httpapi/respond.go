package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/omnistock/stock-ledger-service/internal/apperrors"
	"github.com/omnistock/stock-ledger-service/internal/logger"
	"go.uber.org/zap"
)

// Error writes the taxonomy error as JSON. Anything outside the taxonomy
// is logged with full context and surfaced as an opaque 500.
func Error(c *gin.Context, log logger.ZapLogger, err error) {
	if appErr, ok := apperrors.As(err); ok {
		if appErr.Code == apperrors.CodeInternal {
			log.Error("internal error",
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
			c.JSON(appErr.HTTPStatus, gin.H{"code": appErr.Code, "message": "internal error"})
			return
		}
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	log.Error("unhandled error", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"code":    apperrors.CodeInternal,
		"message": "internal error",
	})
}

type Pagination struct {
	Page     int
	PageSize int
}

func ParsePagination(c *gin.Context) Pagination {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 200 {
		pageSize = 20
	}
	return Pagination{Page: page, PageSize: pageSize}
}

type ListResponse struct {
	Items interface{} `json:"items"`
	Total int         `json:"total"`
}
