package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/omnistock/stock-ledger-service/internal/apperrors"
	"github.com/omnistock/stock-ledger-service/internal/auth"
	"github.com/omnistock/stock-ledger-service/internal/httpapi"
	"github.com/omnistock/stock-ledger-service/internal/inventory"
	"github.com/omnistock/stock-ledger-service/internal/inventory/dto"
	"github.com/omnistock/stock-ledger-service/internal/logger"
	"github.com/omnistock/stock-ledger-service/internal/model"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stores/:store_id/items/:item_id/stock", h.GetStock)
	rg.POST("/stores/:store_id/items/:item_id/stock", auth.RequirePermission(auth.PermRecordUpsert), h.UpsertRecord)
	rg.POST("/stores/:store_id/items/:item_id/stock/receive", auth.RequirePermission(auth.PermStockReceive), h.AddStock)
	rg.PATCH("/stores/:store_id/items/:item_id/stock", auth.RequirePermission(auth.PermStockAdjust), h.ManualAdjust)
	rg.POST("/stores/:store_id/items/:item_id/stock/sale", auth.RequirePermission(auth.PermStockSale), h.SaleDecrement)
	rg.GET("/stock/records", h.ListRecords)
	rg.GET("/stock/transactions", h.ListTransactions)
}

func (h *InventoryHandler) GetStock(c *gin.Context) {
	principal := auth.GetPrincipal(c)

	view, err := h.uc.GetStock(c.Request.Context(), principal, c.Param("item_id"), c.Param("store_id"))
	if err != nil {
		httpapi.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type upsertRecordRequest struct {
	MinStockLevel float64 `json:"min_stock_level" binding:"gte=0"`
	UnitID        string  `json:"unit_id"`
}

func (h *InventoryHandler) UpsertRecord(c *gin.Context) {
	principal := auth.GetPrincipal(c)

	var req upsertRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Error(c, h.logger, apperrors.Validation("invalid request body").Wrap(err))
		return
	}

	view, err := h.uc.UpsertRecord(c.Request.Context(), principal, &dto.UpsertRecordInput{
		ItemID:        c.Param("item_id"),
		StoreID:       c.Param("store_id"),
		MinStockLevel: req.MinStockLevel,
		UnitID:        req.UnitID,
	})
	if err != nil {
		httpapi.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

type addStockRequest struct {
	Quantity   float64 `json:"quantity" binding:"required"`
	UnitID     string  `json:"unit_id" binding:"required"`
	Source     string  `json:"source"`
	DocumentID string  `json:"document_id"`
	Notes      string  `json:"notes"`
}

func (h *InventoryHandler) AddStock(c *gin.Context) {
	principal := auth.GetPrincipal(c)

	var req addStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Error(c, h.logger, apperrors.Validation("invalid request body").Wrap(err))
		return
	}

	result, err := h.uc.AddStock(c.Request.Context(), principal, &dto.AddStockInput{
		ItemID:     c.Param("item_id"),
		StoreID:    c.Param("store_id"),
		Quantity:   req.Quantity,
		UnitID:     req.UnitID,
		Source:     model.TransactionSource(req.Source),
		DocumentID: req.DocumentID,
		Notes:      req.Notes,
	})
	if err != nil {
		httpapi.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type manualAdjustRequest struct {
	Quantity float64 `json:"quantity" binding:"required"`
	Type     string  `json:"transaction_type" binding:"required"`
	Source   string  `json:"source"`
	Notes    string  `json:"notes"`
}

func (h *InventoryHandler) ManualAdjust(c *gin.Context) {
	principal := auth.GetPrincipal(c)

	var req manualAdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Error(c, h.logger, apperrors.Validation("invalid request body").Wrap(err))
		return
	}

	result, err := h.uc.ManualAdjust(c.Request.Context(), principal, &dto.ManualAdjustInput{
		ItemID:   c.Param("item_id"),
		StoreID:  c.Param("store_id"),
		Quantity: req.Quantity,
		Type:     model.TransactionType(req.Type),
		Source:   model.TransactionSource(req.Source),
		Notes:    req.Notes,
	})
	if err != nil {
		httpapi.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type saleDecrementRequest struct {
	Quantity   float64 `json:"quantity" binding:"required"`
	DocumentID string  `json:"document_id"`
	Notes      string  `json:"notes"`
}

func (h *InventoryHandler) SaleDecrement(c *gin.Context) {
	principal := auth.GetPrincipal(c)

	var req saleDecrementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Error(c, h.logger, apperrors.Validation("invalid request body").Wrap(err))
		return
	}

	result, err := h.uc.SaleDecrement(c.Request.Context(), principal, &dto.SaleDecrementInput{
		ItemID:     c.Param("item_id"),
		StoreID:    c.Param("store_id"),
		Quantity:   req.Quantity,
		DocumentID: req.DocumentID,
		Notes:      req.Notes,
	})
	if err != nil {
		httpapi.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *InventoryHandler) ListRecords(c *gin.Context) {
	principal := auth.GetPrincipal(c)
	page := httpapi.ParsePagination(c)

	records, total, err := h.uc.ListRecords(c.Request.Context(), principal, &dto.RecordFilters{
		StoreIDs: c.QueryArray("store_id"),
		ItemID:   c.Query("item_id"),
		LowStock: c.Query("low_stock") == "true",
		Page:     page.Page,
		PageSize: page.PageSize,
	})
	if err != nil {
		httpapi.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, httpapi.ListResponse{Items: records, Total: total})
}

func (h *InventoryHandler) ListTransactions(c *gin.Context) {
	principal := auth.GetPrincipal(c)
	page := httpapi.ParsePagination(c)

	txns, total, err := h.uc.ListTransactions(c.Request.Context(), principal, &dto.TransactionFilters{
		StoreIDs: c.QueryArray("store_id"),
		ItemID:   c.Query("item_id"),
		Type:     model.TransactionType(c.Query("transaction_type")),
		Source:   model.TransactionSource(c.Query("source")),
		Page:     page.Page,
		PageSize: page.PageSize,
	})
	if err != nil {
		httpapi.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, httpapi.ListResponse{Items: txns, Total: total})
}
