package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/omnistock/stock-ledger-service/internal/apperrors"
	"github.com/omnistock/stock-ledger-service/internal/auth"
	"github.com/omnistock/stock-ledger-service/internal/httpapi"
	"github.com/omnistock/stock-ledger-service/internal/logger"
	"github.com/omnistock/stock-ledger-service/internal/order"
	"github.com/omnistock/stock-ledger-service/internal/order/dto"
)

type OrderHandler struct {
	uc     order.UseCase
	logger logger.ZapLogger
}

func NewOrderHandler(uc order.UseCase, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/orders", auth.RequirePermission(auth.PermOrderCreate), h.Create)
	rg.GET("/orders/:order_id", h.Get)
}

type createOrderRequest struct {
	StoreID string `json:"store_id" binding:"required"`
	Notes   string `json:"notes"`
	Lines   []struct {
		ItemID   string  `json:"item_id" binding:"required"`
		Quantity float64 `json:"quantity" binding:"required"`
	} `json:"lines" binding:"required,min=1"`
}

func (h *OrderHandler) Create(c *gin.Context) {
	principal := auth.GetPrincipal(c)

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Error(c, h.logger, apperrors.Validation("invalid request body").Wrap(err))
		return
	}

	input := &dto.CreateOrderInput{
		StoreID: req.StoreID,
		Notes:   req.Notes,
	}
	for _, line := range req.Lines {
		input.Lines = append(input.Lines, dto.CreateOrderLine{
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
		})
	}

	view, err := h.uc.Create(c.Request.Context(), principal, input)
	if err != nil {
		httpapi.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *OrderHandler) Get(c *gin.Context) {
	principal := auth.GetPrincipal(c)

	view, err := h.uc.Get(c.Request.Context(), principal, c.Param("order_id"))
	if err != nil {
		httpapi.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
