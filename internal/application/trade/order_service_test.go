package trade

import (
	"context"
	"errors"
	"testing"

	"github.com/agencydesk/backend/internal/domain/audit"
	"github.com/agencydesk/backend/internal/domain/catalog"
	"github.com/agencydesk/backend/internal/domain/partner"
	"github.com/agencydesk/backend/internal/domain/shared"
	"github.com/agencydesk/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOrderRepo is an in-memory OrderRepository
type fakeOrderRepo struct {
	orders      map[uint]*trade.Order
	nextID      uint
	saveErr     error
	statusErr   error
	documentErr error
	statusHits  int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uint]*trade.Order), nextID: 1}
}

func (r *fakeOrderRepo) Save(_ context.Context, order *trade.Order) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	if order.ID == 0 {
		order.ID = r.nextID
		r.nextID++
	}
	stored := *order
	r.orders[order.ID] = &stored
	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uint) (*trade.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *order
	return &copied, nil
}

func (r *fakeOrderRepo) FindAll(_ context.Context, _ shared.Filter) ([]trade.Order, error) {
	out := make([]trade.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *fakeOrderRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.orders)), nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id uint, status trade.OrderStatus) error {
	r.statusHits++
	if r.statusErr != nil {
		return r.statusErr
	}
	order, ok := r.orders[id]
	if !ok {
		return shared.ErrNotFound
	}
	order.Status = status
	return nil
}

func (r *fakeOrderRepo) UpdateDocument(_ context.Context, id uint, key, url string) error {
	if r.documentErr != nil {
		return r.documentErr
	}
	order, ok := r.orders[id]
	if !ok {
		return shared.ErrNotFound
	}
	order.DocumentKey = key
	order.DocumentURL = url
	return nil
}

// fakeProductRepo is an in-memory ProductRepository with adjustable failure
type fakeProductRepo struct {
	products  map[uint]*catalog.Product
	adjustErr error
}

func newFakeProductRepo(products ...*catalog.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[uint]*catalog.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (r *fakeProductRepo) Save(_ context.Context, p *catalog.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uint) (*catalog.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return 0, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uint) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) AdjustStock(_ context.Context, id uint, delta int) error {
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

// fakeCustomerRepo holds a fixed set of customers
type fakeCustomerRepo struct {
	customers map[uint]*partner.Customer
}

func (r *fakeCustomerRepo) Save(_ context.Context, c *partner.Customer) error { return nil }
func (r *fakeCustomerRepo) FindByID(_ context.Context, id uint) (*partner.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return c, nil
}
func (r *fakeCustomerRepo) FindAll(_ context.Context, _ shared.Filter) ([]partner.Customer, error) {
	return nil, nil
}
func (r *fakeCustomerRepo) Delete(_ context.Context, _ uint) error { return nil }

// fakeVendorRepo holds a fixed set of vendors
type fakeVendorRepo struct {
	vendors map[uint]*partner.Vendor
}

func (r *fakeVendorRepo) Save(_ context.Context, v *partner.Vendor) error { return nil }
func (r *fakeVendorRepo) FindByID(_ context.Context, id uint) (*partner.Vendor, error) {
	v, ok := r.vendors[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return v, nil
}
func (r *fakeVendorRepo) FindAll(_ context.Context, _ shared.Filter) ([]partner.Vendor, error) {
	return nil, nil
}
func (r *fakeVendorRepo) Delete(_ context.Context, _ uint) error { return nil }

// fakeAudit records entries in memory
type fakeAudit struct {
	orderEntries []audit.OrderLog
	recordErr    error
}

func (a *fakeAudit) RecordOrder(_ context.Context, orderID, userID uint, action string) error {
	if a.recordErr != nil {
		return a.recordErr
	}
	a.orderEntries = append(a.orderEntries, audit.OrderLog{OrderID: orderID, UserID: userID, Action: action})
	return nil
}
func (a *fakeAudit) RecordProduct(_ context.Context, _, _ uint, _ string) error  { return nil }
func (a *fakeAudit) RecordCustomer(_ context.Context, _, _ uint, _ string) error { return nil }
func (a *fakeAudit) RecordVendor(_ context.Context, _, _ uint, _ string) error   { return nil }
func (a *fakeAudit) ListOrderLogs(_ context.Context, orderID uint) ([]audit.OrderLog, error) {
	var out []audit.OrderLog
	for _, e := range a.orderEntries {
		if e.OrderID == orderID {
			out = append(out, e)
		}
	}
	return out, nil
}
func (a *fakeAudit) ListProductLogs(_ context.Context, _ uint) ([]audit.ProductLog, error) {
	return nil, nil
}
func (a *fakeAudit) ListCustomerLogs(_ context.Context, _ uint) ([]audit.CustomerLog, error) {
	return nil, nil
}
func (a *fakeAudit) ListVendorLogs(_ context.Context, _ uint) ([]audit.VendorLog, error) {
	return nil, nil
}

func testProduct(id uint, name string, quantity int, price float64) *catalog.Product {
	p, _ := catalog.NewProduct(name, "PCs", quantity, decimal.NewFromFloat(price))
	p.ID = id
	return p
}

type serviceFixture struct {
	service  *OrderService
	orders   *fakeOrderRepo
	products *fakeProductRepo
	auditLog *fakeAudit
}

func newServiceFixture(products ...*catalog.Product) *serviceFixture {
	orders := newFakeOrderRepo()
	productRepo := newFakeProductRepo(products...)
	auditLog := &fakeAudit{}
	customers := &fakeCustomerRepo{customers: map[uint]*partner.Customer{
		1: {BaseEntity: shared.BaseEntity{ID: 1}, Name: "Ravi Kumar"},
	}}
	vendors := &fakeVendorRepo{vendors: map[uint]*partner.Vendor{
		2: {BaseEntity: shared.BaseEntity{ID: 2}, Name: "Sri Traders"},
	}}

	return &serviceFixture{
		service:  NewOrderService(orders, productRepo, customers, vendors, auditLog, nil),
		orders:   orders,
		products: productRepo,
		auditLog: auditLog,
	}
}

func placeRequest(productID uint, qty int) PlaceOrderRequest {
	return PlaceOrderRequest{
		Type:          "sale",
		Items:         []PlaceOrderItemInput{{ProductID: productID, Quantity: qty}},
		DiscountType:  "flat",
		DiscountValue: decimal.Zero,
		PaidAmount:    decimal.Zero,
		PaymentMethod: "Cash",
	}
}

func TestOrderService_Place(t *testing.T) {
	t.Run("sale decrements stock and records one audit entry", func(t *testing.T) {
		f := newServiceFixture(testProduct(10, "Cement Bag", 100, 350))

		req := placeRequest(10, 5)
		customerID := uint(1)
		req.CustomerID = &customerID

		resp, err := f.service.Place(context.Background(), 1, req)
		require.NoError(t, err)
		assert.Equal(t, "created", resp.Status)
		assert.Equal(t, "Ravi Kumar", resp.PartyName)
		assert.InDelta(t, 1750, resp.TotalPrice, 0.001)

		product, _ := f.products.FindByID(context.Background(), 10)
		assert.Equal(t, 95, product.Quantity)
		assert.Len(t, f.auditLog.orderEntries, 1)
	})

	t.Run("purchase increments stock", func(t *testing.T) {
		f := newServiceFixture(testProduct(10, "Cement Bag", 100, 350))

		req := placeRequest(10, 5)
		req.Type = "purchase"
		vendorID := uint(2)
		req.VendorID = &vendorID

		_, err := f.service.Place(context.Background(), 1, req)
		require.NoError(t, err)

		product, _ := f.products.FindByID(context.Background(), 10)
		assert.Equal(t, 105, product.Quantity)
	})

	t.Run("empty cart rejected", func(t *testing.T) {
		f := newServiceFixture()

		req := placeRequest(10, 5)
		req.Items = nil

		_, err := f.service.Place(context.Background(), 1, req)
		require.Error(t, err)
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
		assert.Empty(t, f.auditLog.orderEntries)
	})

	t.Run("unknown product rejected", func(t *testing.T) {
		f := newServiceFixture()

		_, err := f.service.Place(context.Background(), 1, placeRequest(99, 5))
		require.Error(t, err)
		assert.Equal(t, shared.CodeNotFound, shared.CodeOf(err))
	})

	t.Run("stock adjustment failure is surfaced", func(t *testing.T) {
		f := newServiceFixture(testProduct(10, "Cement Bag", 100, 350))
		f.products.adjustErr = shared.ErrInventoryUpdate

		_, err := f.service.Place(context.Background(), 1, placeRequest(10, 5))
		require.Error(t, err)
		assert.Equal(t, shared.CodeInventoryUpdate, shared.CodeOf(err))
		assert.Empty(t, f.auditLog.orderEntries, "no audit entry when inventory update fails")
	})

	t.Run("persistence failure yields typed error", func(t *testing.T) {
		f := newServiceFixture(testProduct(10, "Cement Bag", 100, 350))
		f.orders.saveErr = errors.New("connection reset")

		_, err := f.service.Place(context.Background(), 1, placeRequest(10, 5))
		require.Error(t, err)
		assert.Equal(t, shared.CodePersistence, shared.CodeOf(err))
	})
}

func TestOrderService_ChangeStatus(t *testing.T) {
	place := func(t *testing.T, f *serviceFixture) uint {
		t.Helper()
		resp, err := f.service.Place(context.Background(), 1, placeRequest(10, 5))
		require.NoError(t, err)
		return resp.ID
	}

	t.Run("trash records exactly one audit entry", func(t *testing.T) {
		f := newServiceFixture(testProduct(10, "Cement Bag", 100, 350))
		orderID := place(t, f)
		entriesBefore := len(f.auditLog.orderEntries)

		resp, err := f.service.ChangeStatus(context.Background(), 1, orderID, "Trash")
		require.NoError(t, err)
		assert.Equal(t, "trashed", resp.Status)

		require.Len(t, f.auditLog.orderEntries, entriesBefore+1)
		assert.Equal(t, "Status changed from created to trashed", f.auditLog.orderEntries[entriesBefore].Action)

		stored, err := f.orders.FindByID(context.Background(), orderID)
		require.NoError(t, err)
		assert.Equal(t, trade.OrderStatusTrashed, stored.Status)
	})

	t.Run("trashed order cannot be cancelled", func(t *testing.T) {
		f := newServiceFixture(testProduct(10, "Cement Bag", 100, 350))
		orderID := place(t, f)

		_, err := f.service.ChangeStatus(context.Background(), 1, orderID, "Trash")
		require.NoError(t, err)
		entriesBefore := len(f.auditLog.orderEntries)

		_, err = f.service.ChangeStatus(context.Background(), 1, orderID, "Cancel")
		require.Error(t, err)
		assert.Equal(t, shared.CodeInvalidTransition, shared.CodeOf(err))
		assert.Len(t, f.auditLog.orderEntries, entriesBefore, "rejection writes no audit entry")
	})

	t.Run("persistence failure rolls back and writes no audit entry", func(t *testing.T) {
		f := newServiceFixture(testProduct(10, "Cement Bag", 100, 350))
		orderID := place(t, f)
		entriesBefore := len(f.auditLog.orderEntries)
		f.orders.statusErr = errors.New("write failed")

		_, err := f.service.ChangeStatus(context.Background(), 1, orderID, "Cancel")
		require.Error(t, err)
		assert.Equal(t, shared.CodePersistence, shared.CodeOf(err))
		assert.Len(t, f.auditLog.orderEntries, entriesBefore)

		stored, err := f.orders.FindByID(context.Background(), orderID)
		require.NoError(t, err)
		assert.Equal(t, trade.OrderStatusCreated, stored.Status, "stored status unchanged after failed write")
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		f := newServiceFixture(testProduct(10, "Cement Bag", 100, 350))
		orderID := place(t, f)

		_, err := f.service.ChangeStatus(context.Background(), 1, orderID, "shipped")
		require.Error(t, err)
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
		assert.Zero(t, f.orders.statusHits)
	})
}

func TestOrderService_RecordPayment(t *testing.T) {
	f := newServiceFixture(testProduct(10, "Cement Bag", 100, 350))

	req := placeRequest(10, 1) // payable 350
	req.PaidAmount = decimal.NewFromInt(100)
	resp, err := f.service.Place(context.Background(), 1, req)
	require.NoError(t, err)
	entriesBefore := len(f.auditLog.orderEntries)

	updated, err := f.service.RecordPayment(context.Background(), 1, resp.ID, RecordPaymentRequest{
		Amount: decimal.NewFromInt(250),
		Method: "GPay",
	})
	require.NoError(t, err)
	assert.InDelta(t, 350, updated.PaidAmount, 0.001)
	assert.InDelta(t, 0, updated.RemainingAmount, 0.001)
	assert.Equal(t, "paid", updated.PaymentStatus)

	require.Len(t, f.auditLog.orderEntries, entriesBefore+1)
	assert.Contains(t, f.auditLog.orderEntries[entriesBefore].Action, "PaidAmount changed from 100 to 350")
}
