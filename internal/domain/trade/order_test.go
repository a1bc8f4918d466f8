package trade

import (
	"testing"

	"github.com/agencydesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestOrder(t *testing.T) *Order {
	t.Helper()
	items := []OrderItem{item(t, 2, 50), item(t, 1, 30)}
	order, err := NewOrder(OrderTypeSale, items, DiscountTypeFlat, decimal.NewFromInt(10), decimal.NewFromInt(50), "Cash")
	require.NoError(t, err)
	return order
}

func TestOrderStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  OrderStatus
		isValid bool
	}{
		{OrderStatusCreated, true},
		{OrderStatusCancelled, true},
		{OrderStatusTrashed, true},
		{OrderStatus("draft"), false},
		{OrderStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     OrderStatus
		to       OrderStatus
		canTrans bool
	}{
		{OrderStatusCreated, OrderStatusCancelled, true},
		{OrderStatusCreated, OrderStatusTrashed, true},
		{OrderStatusCreated, OrderStatusCreated, false},
		{OrderStatusCancelled, OrderStatusCreated, false},
		{OrderStatusCancelled, OrderStatusTrashed, false},
		{OrderStatusCancelled, OrderStatusCancelled, false},
		{OrderStatusTrashed, OrderStatusCreated, false},
		{OrderStatusTrashed, OrderStatusCancelled, false},
		{OrderStatusTrashed, OrderStatusTrashed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestParseOrderStatus(t *testing.T) {
	tests := []struct {
		raw     string
		want    OrderStatus
		wantErr bool
	}{
		{"created", OrderStatusCreated, false},
		{"Trash", OrderStatusTrashed, false},
		{"trashed", OrderStatusTrashed, false},
		{"Cancel", OrderStatusCancelled, false},
		{"cancelled", OrderStatusCancelled, false},
		{"  CANCEL  ", OrderStatusCancelled, false},
		{"shipped", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseOrderStatus(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewOrder(t *testing.T) {
	t.Run("computes totals and derives payment status", func(t *testing.T) {
		order := createTestOrder(t)

		assert.Equal(t, OrderStatusCreated, order.Status)
		assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(130)))
		assert.True(t, order.TotalPayable.Equal(decimal.NewFromInt(120)))
		assert.True(t, order.RemainingAmount.Equal(decimal.NewFromInt(70)))
		assert.Equal(t, PaymentStatusPartiallyPaid, order.PaymentStatus)
	})

	t.Run("rejects empty cart", func(t *testing.T) {
		_, err := NewOrder(OrderTypeSale, nil, DiscountTypeFlat, decimal.Zero, decimal.Zero, "Cash")
		require.Error(t, err)
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
	})

	t.Run("rejects unknown order type", func(t *testing.T) {
		items := []OrderItem{item(t, 1, 10)}
		_, err := NewOrder(OrderType("transfer"), items, DiscountTypeFlat, decimal.Zero, decimal.Zero, "Cash")
		require.Error(t, err)
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
	})

	t.Run("negative discount stored as zero", func(t *testing.T) {
		items := []OrderItem{item(t, 1, 100)}
		order, err := NewOrder(OrderTypeSale, items, DiscountTypeFlat, decimal.NewFromInt(-20), decimal.Zero, "Cash")
		require.NoError(t, err)
		assert.True(t, order.DiscountValue.IsZero())
		assert.True(t, order.TotalPayable.Equal(order.TotalPrice))
	})

	t.Run("credit order with zero upfront", func(t *testing.T) {
		items := []OrderItem{item(t, 1, 100)}
		order, err := NewOrder(OrderTypePurchase, items, DiscountTypeFlat, decimal.Zero, decimal.Zero, "Credit")
		require.NoError(t, err)
		assert.Equal(t, PaymentStatusCredit, order.PaymentStatus)
	})
}

func TestNewOrderItem(t *testing.T) {
	tests := []struct {
		name      string
		productID uint
		prodName  string
		quantity  int
		price     float64
		wantErr   bool
	}{
		{"valid", 1, "Cement Bag", 5, 350, false},
		{"zero product id", 0, "Cement Bag", 5, 350, true},
		{"empty name", 1, "", 5, 350, true},
		{"zero quantity", 1, "Cement Bag", 0, 350, true},
		{"negative quantity", 1, "Cement Bag", -2, 350, true},
		{"negative price", 1, "Cement Bag", 5, -1, true},
		{"free item", 1, "Sample", 1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it, err := NewOrderItem(tt.productID, tt.prodName, tt.quantity, decimal.NewFromFloat(tt.price))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			want := decimal.NewFromFloat(tt.price).Mul(decimal.NewFromInt(int64(tt.quantity)))
			assert.True(t, it.Subtotal().Equal(want))
		})
	}
}

func TestOrder_ChangeStatus(t *testing.T) {
	t.Run("created to trashed", func(t *testing.T) {
		order := createTestOrder(t)

		description, err := order.ChangeStatus(OrderStatusTrashed)
		require.NoError(t, err)
		assert.Equal(t, "Status changed from created to trashed", description)
		assert.Equal(t, OrderStatusTrashed, order.Status)
	})

	t.Run("created to cancelled", func(t *testing.T) {
		order := createTestOrder(t)

		description, err := order.ChangeStatus(OrderStatusCancelled)
		require.NoError(t, err)
		assert.Equal(t, "Status changed from created to cancelled", description)
	})

	t.Run("trashed order cannot be cancelled", func(t *testing.T) {
		order := createTestOrder(t)
		_, err := order.ChangeStatus(OrderStatusTrashed)
		require.NoError(t, err)

		_, err = order.ChangeStatus(OrderStatusCancelled)
		require.Error(t, err)
		assert.Equal(t, shared.CodeInvalidTransition, shared.CodeOf(err))
		assert.Equal(t, OrderStatusTrashed, order.Status)
	})

	t.Run("repeated transition is rejected", func(t *testing.T) {
		order := createTestOrder(t)
		_, err := order.ChangeStatus(OrderStatusCancelled)
		require.NoError(t, err)

		_, err = order.ChangeStatus(OrderStatusCancelled)
		require.Error(t, err)
		assert.Equal(t, shared.CodeInvalidTransition, shared.CodeOf(err))
	})

	t.Run("unknown target rejected", func(t *testing.T) {
		order := createTestOrder(t)

		_, err := order.ChangeStatus(OrderStatus("archived"))
		require.Error(t, err)
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
	})
}

func TestOrder_ApplyPayment(t *testing.T) {
	t.Run("partial then full payment", func(t *testing.T) {
		order := createTestOrder(t) // payable 120, paid 50

		require.NoError(t, order.ApplyPayment(decimal.NewFromInt(30), ""))
		assert.True(t, order.PaidAmount.Equal(decimal.NewFromInt(80)))
		assert.True(t, order.RemainingAmount.Equal(decimal.NewFromInt(40)))
		assert.Equal(t, PaymentStatusPartiallyPaid, order.PaymentStatus)

		require.NoError(t, order.ApplyPayment(decimal.NewFromInt(40), "Card"))
		assert.True(t, order.RemainingAmount.IsZero())
		assert.Equal(t, PaymentStatusPaid, order.PaymentStatus)
		assert.Equal(t, "Card", order.PaymentMethod)
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		order := createTestOrder(t)
		err := order.ApplyPayment(decimal.NewFromInt(-5), "")
		require.Error(t, err)
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
	})

	t.Run("no payments on terminal orders", func(t *testing.T) {
		order := createTestOrder(t)
		_, err := order.ChangeStatus(OrderStatusCancelled)
		require.NoError(t, err)

		err = order.ApplyPayment(decimal.NewFromInt(10), "")
		require.Error(t, err)
		assert.Equal(t, shared.CodeInvalidTransition, shared.CodeOf(err))
	})
}

func TestOrder_PartyReferences(t *testing.T) {
	order := createTestOrder(t)

	order.ForCustomer(7, "Ravi Kumar")
	require.NotNil(t, order.CustomerID)
	assert.Equal(t, uint(7), *order.CustomerID)
	assert.Equal(t, "Ravi Kumar", order.PartyName)

	order.ForVendor(3, "Sri Traders")
	require.NotNil(t, order.VendorID)
	assert.Equal(t, uint(3), *order.VendorID)
}

func TestOrder_IsTerminal(t *testing.T) {
	order := createTestOrder(t)
	assert.False(t, order.IsTerminal())

	_, err := order.ChangeStatus(OrderStatusTrashed)
	require.NoError(t, err)
	assert.True(t, order.IsTerminal())
}
