package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/omnistock/stock-ledger-service/internal/apperrors"
	"github.com/omnistock/stock-ledger-service/internal/auth"
	"github.com/omnistock/stock-ledger-service/internal/inventory/dto"
	"github.com/omnistock/stock-ledger-service/internal/logger"
	"github.com/omnistock/stock-ledger-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubUseCase routes each handler call to a per-test function; unset
// methods fail loudly if reached.
type stubUseCase struct {
	getStock      func(principal *model.Principal, itemID, storeID string) (*dto.StockView, error)
	upsertRecord  func(principal *model.Principal, input *dto.UpsertRecordInput) (*dto.StockView, error)
	addStock      func(principal *model.Principal, input *dto.AddStockInput) (*dto.AdjustResult, error)
	manualAdjust  func(principal *model.Principal, input *dto.ManualAdjustInput) (*dto.AdjustResult, error)
	saleDecrement func(principal *model.Principal, input *dto.SaleDecrementInput) (*dto.AdjustResult, error)
	listRecords   func(principal *model.Principal, filters *dto.RecordFilters) ([]model.InventoryRecord, int, error)
	listTxns      func(principal *model.Principal, filters *dto.TransactionFilters) ([]model.StockTransaction, int, error)
}

func (s *stubUseCase) GetStock(_ context.Context, principal *model.Principal, itemID, storeID string) (*dto.StockView, error) {
	return s.getStock(principal, itemID, storeID)
}

func (s *stubUseCase) UpsertRecord(_ context.Context, principal *model.Principal, input *dto.UpsertRecordInput) (*dto.StockView, error) {
	return s.upsertRecord(principal, input)
}

func (s *stubUseCase) AddStock(_ context.Context, principal *model.Principal, input *dto.AddStockInput) (*dto.AdjustResult, error) {
	return s.addStock(principal, input)
}

func (s *stubUseCase) ManualAdjust(_ context.Context, principal *model.Principal, input *dto.ManualAdjustInput) (*dto.AdjustResult, error) {
	return s.manualAdjust(principal, input)
}

func (s *stubUseCase) SaleDecrement(_ context.Context, principal *model.Principal, input *dto.SaleDecrementInput) (*dto.AdjustResult, error) {
	return s.saleDecrement(principal, input)
}

func (s *stubUseCase) ListRecords(_ context.Context, principal *model.Principal, filters *dto.RecordFilters) ([]model.InventoryRecord, int, error) {
	return s.listRecords(principal, filters)
}

func (s *stubUseCase) ListTransactions(_ context.Context, principal *model.Principal, filters *dto.TransactionFilters) ([]model.StockTransaction, int, error) {
	return s.listTxns(principal, filters)
}

func (s *stubUseCase) DecrementForOrder(_ context.Context, _ *sqlx.Tx, _ *dto.OrderDecrementInput) error {
	return nil
}

func (s *stubUseCase) ApplyOrderDecrements(_ context.Context, _ *dto.OrderDecrementInput) error {
	return nil
}

func newRouter(uc *stubUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/api/v1", auth.Middleware())
	NewInventoryHandler(uc, logger.NewNop()).RegisterRoutes(group)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "mgr-1")
	req.Header.Set("X-User-Role", "manager")
	req.Header.Set("X-Store-Id", "main-1")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetStock_OK(t *testing.T) {
	uc := &stubUseCase{
		getStock: func(principal *model.Principal, itemID, storeID string) (*dto.StockView, error) {
			assert.Equal(t, "mgr-1", principal.ID)
			assert.Equal(t, "flour", itemID)
			assert.Equal(t, "main-1", storeID)
			return &dto.StockView{
				Record:   &model.InventoryRecord{ItemID: itemID, StoreID: storeID, Quantity: 6000},
				Quantity: dto.QuantityView{Base: 6000, Presentation: 6, UnitID: "kg", UnitSymbol: "kg"},
				Status:   model.StatusInStock,
			}, nil
		},
	}
	rec := doRequest(t, newRouter(uc), http.MethodGet, "/api/v1/stores/main-1/items/flour/stock", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "quantity")
	assert.Contains(t, body, "status")
}

func TestGetStock_NotFound(t *testing.T) {
	uc := &stubUseCase{
		getStock: func(*model.Principal, string, string) (*dto.StockView, error) {
			return nil, apperrors.NotFound("inventory record")
		},
	}
	rec := doRequest(t, newRouter(uc), http.MethodGet, "/api/v1/stores/main-1/items/flour/stock", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), apperrors.CodeNotFound)
}

func TestGetStock_Forbidden(t *testing.T) {
	uc := &stubUseCase{
		getStock: func(*model.Principal, string, string) (*dto.StockView, error) {
			return nil, apperrors.ScopeForbidden("other-store")
		},
	}
	rec := doRequest(t, newRouter(uc), http.MethodGet, "/api/v1/stores/other-store/items/flour/stock", "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), apperrors.CodeScopeForbidden)
}

func TestMissingPrincipalHeaders(t *testing.T) {
	router := newRouter(&stubUseCase{})

	req, err := http.NewRequest(http.MethodGet, "/api/v1/stores/main-1/items/flour/stock", nil)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNAUTHENTICATED")
}

func TestUpsertRecord_Created(t *testing.T) {
	uc := &stubUseCase{
		upsertRecord: func(_ *model.Principal, input *dto.UpsertRecordInput) (*dto.StockView, error) {
			assert.Equal(t, "flour", input.ItemID)
			assert.Equal(t, "main-1", input.StoreID)
			assert.Equal(t, float64(2), input.MinStockLevel)
			assert.Equal(t, "kg", input.UnitID)
			return &dto.StockView{
				Record: &model.InventoryRecord{ItemID: input.ItemID, StoreID: input.StoreID, MinStockLevel: 2000},
				Status: model.StatusOutOfStock,
			}, nil
		},
	}
	rec := doRequest(t, newRouter(uc), http.MethodPost, "/api/v1/stores/main-1/items/flour/stock",
		`{"min_stock_level": 2, "unit_id": "kg"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestAddStock_OK(t *testing.T) {
	uc := &stubUseCase{
		addStock: func(_ *model.Principal, input *dto.AddStockInput) (*dto.AdjustResult, error) {
			assert.Equal(t, float64(5), input.Quantity)
			assert.Equal(t, "kg", input.UnitID)
			assert.Equal(t, model.SourcePurchaseReceipt, input.Source)
			return &dto.AdjustResult{
				Record:      &model.InventoryRecord{Quantity: 6000, Status: model.StatusInStock},
				Transaction: &model.StockTransaction{Type: model.TypeComingIn, QuantityChange: 5000, ResultingQuantity: 6000},
				Quantity:    dto.QuantityView{Base: 6000, Presentation: 6, UnitID: "kg"},
			}, nil
		},
	}
	rec := doRequest(t, newRouter(uc), http.MethodPost, "/api/v1/stores/main-1/items/flour/stock/receive",
		`{"quantity": 5, "unit_id": "kg", "source": "purchase_receipt"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "coming_in")
}

func TestAddStock_MalformedBody(t *testing.T) {
	rec := doRequest(t, newRouter(&stubUseCase{}), http.MethodPost,
		"/api/v1/stores/main-1/items/flour/stock/receive", `{"quantity": "five"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), apperrors.CodeValidation)
}

func TestAddStock_MissingUnit(t *testing.T) {
	// unit_id carries a binding:"required" tag; the handler rejects the
	// body before the usecase is reached.
	rec := doRequest(t, newRouter(&stubUseCase{}), http.MethodPost,
		"/api/v1/stores/main-1/items/flour/stock/receive", `{"quantity": 5}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestManualAdjust_RoleWithoutPermission(t *testing.T) {
	router := newRouter(&stubUseCase{})

	req, err := http.NewRequest(http.MethodPatch, "/api/v1/stores/main-1/items/flour/stock",
		strings.NewReader(`{"quantity": 5, "transaction_type": "coming_in"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "clerk-1")
	req.Header.Set("X-User-Role", "user")
	req.Header.Set("X-Store-Id", "main-1")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "PERMISSION_DENIED")
}

func TestManualAdjust_InsufficientStock(t *testing.T) {
	uc := &stubUseCase{
		manualAdjust: func(*model.Principal, *dto.ManualAdjustInput) (*dto.AdjustResult, error) {
			return nil, apperrors.InsufficientStock("flour", "main-1")
		},
	}
	rec := doRequest(t, newRouter(uc), http.MethodPatch, "/api/v1/stores/main-1/items/flour/stock",
		`{"quantity": -10, "transaction_type": "going_out"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), apperrors.CodeInsufficientStock)
}

func TestSaleDecrement_OK(t *testing.T) {
	uc := &stubUseCase{
		saleDecrement: func(_ *model.Principal, input *dto.SaleDecrementInput) (*dto.AdjustResult, error) {
			assert.Equal(t, float64(30), input.Quantity)
			assert.Equal(t, "order-7", input.DocumentID)
			return &dto.AdjustResult{
				Record:      &model.InventoryRecord{Quantity: 70},
				Transaction: &model.StockTransaction{Type: model.TypeGoingOut, QuantityChange: -30},
			}, nil
		},
	}
	rec := doRequest(t, newRouter(uc), http.MethodPost, "/api/v1/stores/main-1/items/flour/stock/sale",
		`{"quantity": 30, "document_id": "order-7"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestInternalErrorIsOpaque(t *testing.T) {
	uc := &stubUseCase{
		getStock: func(*model.Principal, string, string) (*dto.StockView, error) {
			return nil, apperrors.Internal("database exploded with credentials in the message", nil)
		},
	}
	rec := doRequest(t, newRouter(uc), http.MethodGet, "/api/v1/stores/main-1/items/flour/stock", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), apperrors.CodeInternal)
	assert.NotContains(t, rec.Body.String(), "credentials")
}

func TestListRecords_PassesFilters(t *testing.T) {
	uc := &stubUseCase{
		listRecords: func(_ *model.Principal, filters *dto.RecordFilters) ([]model.InventoryRecord, int, error) {
			assert.Equal(t, []string{"main-1"}, filters.StoreIDs)
			assert.True(t, filters.LowStock)
			assert.Equal(t, 2, filters.Page)
			assert.Equal(t, 50, filters.PageSize)
			return []model.InventoryRecord{{ItemID: "flour", StoreID: "main-1"}}, 1, nil
		},
	}
	rec := doRequest(t, newRouter(uc), http.MethodGet,
		"/api/v1/stock/records?store_id=main-1&low_stock=true&page=2&page_size=50", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Items []model.InventoryRecord `json:"items"`
		Total int                     `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Total)
	require.Len(t, body.Items, 1)
}

func TestListTransactions_OK(t *testing.T) {
	uc := &stubUseCase{
		listTxns: func(_ *model.Principal, filters *dto.TransactionFilters) ([]model.StockTransaction, int, error) {
			assert.Equal(t, model.TypeGoingOut, filters.Type)
			assert.Equal(t, model.SourceSale, filters.Source)
			return []model.StockTransaction{{Type: model.TypeGoingOut, Source: model.SourceSale}}, 1, nil
		},
	}
	rec := doRequest(t, newRouter(uc), http.MethodGet,
		"/api/v1/stock/transactions?transaction_type=going_out&source=sale", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "going_out")
}
