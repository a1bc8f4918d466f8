package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	tradeapp "github.com/agencydesk/backend/internal/application/trade"
	"github.com/agencydesk/backend/internal/domain/audit"
	"github.com/agencydesk/backend/internal/domain/catalog"
	"github.com/agencydesk/backend/internal/domain/partner"
	"github.com/agencydesk/backend/internal/domain/shared"
	"github.com/agencydesk/backend/internal/domain/trade"
	"github.com/agencydesk/backend/internal/interfaces/http/middleware"
)

// Minimal in-memory stand-ins for the persistence layer.

type stubOrderRepo struct {
	orders map[uint]*trade.Order
	nextID uint
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[uint]*trade.Order), nextID: 1}
}

func (r *stubOrderRepo) Save(_ context.Context, order *trade.Order) error {
	if order.ID == 0 {
		order.ID = r.nextID
		r.nextID++
	}
	r.orders[order.ID] = order
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uint) (*trade.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, shared.NewDomainError(shared.CodeNotFound, "Order not found")
	}
	return order, nil
}

func (r *stubOrderRepo) FindAll(_ context.Context, _ shared.Filter) ([]trade.Order, error) {
	out := make([]trade.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *stubOrderRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.orders)), nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id uint, status trade.OrderStatus) error {
	order, ok := r.orders[id]
	if !ok {
		return shared.ErrNotFound
	}
	order.Status = status
	return nil
}

func (r *stubOrderRepo) UpdateDocument(_ context.Context, id uint, key, url string) error {
	order, ok := r.orders[id]
	if !ok {
		return shared.ErrNotFound
	}
	order.DocumentKey = key
	order.DocumentURL = url
	return nil
}

type stubProductRepo struct {
	products  map[uint]*catalog.Product
	adjustErr error
}

func (r *stubProductRepo) Save(_ context.Context, p *catalog.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uint) (*catalog.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, shared.NewDomainError(shared.CodeNotFound, "Product not found")
	}
	return p, nil
}

func (r *stubProductRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Product, error) {
	return nil, nil
}

func (r *stubProductRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return 0, nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uint) error {
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) AdjustStock(_ context.Context, id uint, delta int) error {
	if r.adjustErr != nil {
		return r.adjustErr
	}
	p, ok := r.products[id]
	if !ok {
		return shared.ErrInventoryUpdate
	}
	p.Quantity += delta
	return nil
}

type stubCustomerRepo struct {
	customers map[uint]*partner.Customer
}

func (r *stubCustomerRepo) Save(_ context.Context, c *partner.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id uint) (*partner.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, shared.NewDomainError(shared.CodeNotFound, "Customer not found")
	}
	return c, nil
}

func (r *stubCustomerRepo) FindAll(_ context.Context, _ shared.Filter) ([]partner.Customer, error) {
	return nil, nil
}

func (r *stubCustomerRepo) Delete(_ context.Context, id uint) error {
	delete(r.customers, id)
	return nil
}

type stubVendorRepo struct{}

func (stubVendorRepo) Save(_ context.Context, _ *partner.Vendor) error { return nil }
func (stubVendorRepo) FindByID(_ context.Context, _ uint) (*partner.Vendor, error) {
	return nil, shared.ErrNotFound
}
func (stubVendorRepo) FindAll(_ context.Context, _ shared.Filter) ([]partner.Vendor, error) {
	return nil, nil
}
func (stubVendorRepo) Delete(_ context.Context, _ uint) error { return nil }

type stubRecorder struct {
	orderActions []string
}

func (r *stubRecorder) RecordOrder(_ context.Context, _, _ uint, action string) error {
	r.orderActions = append(r.orderActions, action)
	return nil
}
func (r *stubRecorder) RecordProduct(_ context.Context, _, _ uint, _ string) error  { return nil }
func (r *stubRecorder) RecordCustomer(_ context.Context, _, _ uint, _ string) error { return nil }
func (r *stubRecorder) RecordVendor(_ context.Context, _, _ uint, _ string) error   { return nil }
func (r *stubRecorder) ListOrderLogs(_ context.Context, orderID uint) ([]audit.OrderLog, error) {
	logs := make([]audit.OrderLog, 0, len(r.orderActions))
	for _, action := range r.orderActions {
		logs = append(logs, audit.OrderLog{OrderID: orderID, UserID: 1, Action: action})
	}
	return logs, nil
}
func (r *stubRecorder) ListProductLogs(_ context.Context, _ uint) ([]audit.ProductLog, error) {
	return nil, nil
}
func (r *stubRecorder) ListCustomerLogs(_ context.Context, _ uint) ([]audit.CustomerLog, error) {
	return nil, nil
}
func (r *stubRecorder) ListVendorLogs(_ context.Context, _ uint) ([]audit.VendorLog, error) {
	return nil, nil
}

type orderFixture struct {
	router      *gin.Engine
	orderRepo   *stubOrderRepo
	productRepo *stubProductRepo
	recorder    *stubRecorder
}

// fakeSession injects a signed-in user without running the cookie gate
func fakeSession(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.SessionUserIDKey, userID)
		c.Next()
	}
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	orderRepo := newStubOrderRepo()
	productRepo := &stubProductRepo{products: map[uint]*catalog.Product{}}
	customerRepo := &stubCustomerRepo{customers: map[uint]*partner.Customer{}}
	recorder := &stubRecorder{}

	product, err := catalog.NewProduct("A4 Paper Ream", "PCs", 100, decimal.NewFromInt(250))
	require.NoError(t, err)
	product.ID = 1
	productRepo.products[1] = product

	customer := &partner.Customer{Name: "Meera Traders"}
	customer.ID = 3
	customerRepo.customers[3] = customer

	service := tradeapp.NewOrderService(orderRepo, productRepo, customerRepo, stubVendorRepo{}, recorder, zap.NewNop())
	handler := NewOrderHandler(service, nil)

	r := gin.New()
	group := r.Group("/api/v1/orders")
	group.Use(fakeSession(1))
	group.POST("", handler.Place)
	group.GET("", handler.List)
	group.GET("/:id", handler.Get)
	group.PATCH("/:id/status", handler.ChangeStatus)
	group.POST("/:id/payments", handler.RecordPayment)
	group.GET("/:id/logs", handler.Logs)

	return &orderFixture{router: r, orderRepo: orderRepo, productRepo: productRepo, recorder: recorder}
}

func (fx *orderFixture) do(t *testing.T, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	fx.router.ServeHTTP(w, req)
	return w
}

func placeSaleBody() PlaceOrderBody {
	customerID := uint(3)
	return PlaceOrderBody{
		Type:       "sale",
		CustomerID: &customerID,
		Items: []PlaceOrderItem{
			{ProductID: 1, Quantity: 4},
		},
		PaidAmount:    500,
		PaymentMethod: "Cash",
	}
}

func TestOrderHandler_Place(t *testing.T) {
	fx := newOrderFixture(t)

	w := fx.do(t, http.MethodPost, "/api/v1/orders", placeSaleBody())

	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Success bool                   `json:"success"`
		Data    tradeapp.OrderResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Equal(t, "sale", response.Data.Type)
	assert.Equal(t, "Meera Traders", response.Data.PartyName)
	require.Len(t, response.Data.Items, 1)
	assert.Equal(t, float64(1000), response.Data.TotalPayable)
	assert.Equal(t, float64(500), response.Data.PaidAmount)
	assert.Equal(t, "partiallypaid", response.Data.PaymentStatus)

	// the sale drew down stock and left an audit trail
	assert.Equal(t, 96, fx.productRepo.products[1].Quantity)
	assert.Len(t, fx.recorder.orderActions, 1)
}

func TestOrderHandler_Place_EmptyCart(t *testing.T) {
	fx := newOrderFixture(t)

	body := placeSaleBody()
	body.Items = nil
	w := fx.do(t, http.MethodPost, "/api/v1/orders", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_Place_StockConflict(t *testing.T) {
	fx := newOrderFixture(t)
	fx.productRepo.adjustErr = shared.NewDomainError(shared.CodeInventoryUpdate, "Stock adjustment failed")

	w := fx.do(t, http.MethodPost, "/api/v1/orders", placeSaleBody())

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	errInfo := response["error"].(map[string]interface{})
	assert.Equal(t, "INVENTORY_UPDATE_FAILED", errInfo["code"])
}

func TestOrderHandler_ChangeStatus(t *testing.T) {
	fx := newOrderFixture(t)
	fx.do(t, http.MethodPost, "/api/v1/orders", placeSaleBody())

	w := fx.do(t, http.MethodPatch, "/api/v1/orders/1/status", ChangeStatusBody{Status: "Cancel"})

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data tradeapp.OrderResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "cancelled", response.Data.Status)
}

func TestOrderHandler_ChangeStatus_TerminalOrder(t *testing.T) {
	fx := newOrderFixture(t)
	fx.do(t, http.MethodPost, "/api/v1/orders", placeSaleBody())
	fx.do(t, http.MethodPatch, "/api/v1/orders/1/status", ChangeStatusBody{Status: "Cancel"})

	w := fx.do(t, http.MethodPatch, "/api/v1/orders/1/status", ChangeStatusBody{Status: "Trash"})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	errInfo := response["error"].(map[string]interface{})
	assert.Equal(t, "INVALID_TRANSITION", errInfo["code"])
}

func TestOrderHandler_RecordPayment(t *testing.T) {
	fx := newOrderFixture(t)
	fx.do(t, http.MethodPost, "/api/v1/orders", placeSaleBody())

	w := fx.do(t, http.MethodPost, "/api/v1/orders/1/payments", RecordPaymentBody{Amount: 500, Method: "GPay"})

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data tradeapp.OrderResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1000), response.Data.PaidAmount)
	assert.Equal(t, float64(0), response.Data.RemainingAmount)
	assert.Equal(t, "paid", response.Data.PaymentStatus)
	assert.Equal(t, "GPay", response.Data.PaymentMethod)
}

func TestOrderHandler_Get_NotFound(t *testing.T) {
	fx := newOrderFixture(t)

	w := fx.do(t, http.MethodGet, "/api/v1/orders/99", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderHandler_Logs(t *testing.T) {
	fx := newOrderFixture(t)
	fx.do(t, http.MethodPost, "/api/v1/orders", placeSaleBody())
	fx.do(t, http.MethodPatch, "/api/v1/orders/1/status", ChangeStatusBody{Status: "Cancel"})

	w := fx.do(t, http.MethodGet, "/api/v1/orders/1/logs", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data []audit.OrderLog `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Data, 2)
	assert.Contains(t, response.Data[1].Action, "Status changed from created to cancelled")
}
