package audit

import (
	"context"
	"time"
)

// Log entries are immutable records of a mutation, attributed to the user
// who performed it. They are inserted once and never updated or deleted.

// OrderLog records a change event against an order
type OrderLog struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint      `gorm:"index;not null" json:"order_id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Action    string    `gorm:"size:1000;not null" json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the gorm table name
func (OrderLog) TableName() string {
	return "orderLogs"
}

// ProductLog records a change event against a product
type ProductLog struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint      `gorm:"index;not null" json:"product_id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Action    string    `gorm:"size:1000;not null" json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the gorm table name
func (ProductLog) TableName() string {
	return "productLogs"
}

// CustomerLog records a change event against a customer
type CustomerLog struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID uint      `gorm:"index;not null" json:"customer_id"`
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	Action     string    `gorm:"size:1000;not null" json:"action"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName overrides the gorm table name
func (CustomerLog) TableName() string {
	return "customerLogs"
}

// VendorLog records a change event against a vendor
type VendorLog struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	VendorID  uint      `gorm:"index;not null" json:"vendor_id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Action    string    `gorm:"size:1000;not null" json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the gorm table name
func (VendorLog) TableName() string {
	return "vendorLogs"
}

// Recorder appends audit log entries. Implementations are insert-only.
type Recorder interface {
	RecordOrder(ctx context.Context, orderID, userID uint, action string) error
	RecordProduct(ctx context.Context, productID, userID uint, action string) error
	RecordCustomer(ctx context.Context, customerID, userID uint, action string) error
	RecordVendor(ctx context.Context, vendorID, userID uint, action string) error

	ListOrderLogs(ctx context.Context, orderID uint) ([]OrderLog, error)
	ListProductLogs(ctx context.Context, productID uint) ([]ProductLog, error)
	ListCustomerLogs(ctx context.Context, customerID uint) ([]CustomerLog, error)
	ListVendorLogs(ctx context.Context, vendorID uint) ([]VendorLog, error)
}
