package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/omnistock/stock-ledger-service/internal/httpapi"
	"github.com/omnistock/stock-ledger-service/internal/logger"
	"github.com/omnistock/stock-ledger-service/internal/model"
	"github.com/omnistock/stock-ledger-service/internal/unit"
)

type UnitHandler struct {
	uc     unit.UseCase
	logger logger.ZapLogger
}

func NewUnitHandler(uc unit.UseCase, log logger.ZapLogger) *UnitHandler {
	return &UnitHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *UnitHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/units/:unit_id", h.GetUnit)
	rg.GET("/units", h.ListUnits)
}

func (h *UnitHandler) GetUnit(c *gin.Context) {
	u, err := h.uc.FetchUnit(c.Request.Context(), c.Param("unit_id"))
	if err != nil {
		httpapi.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UnitHandler) ListUnits(c *gin.Context) {
	units, err := h.uc.ListByFamily(c.Request.Context(), model.UnitFamily(c.Query("family")))
	if err != nil {
		httpapi.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, httpapi.ListResponse{Items: units, Total: len(units)})
}
