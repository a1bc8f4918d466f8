package persistence

import (
	"context"

	"github.com/agencydesk/backend/internal/domain/audit"
	"gorm.io/gorm"
)

// GormAuditLogRepository implements audit.Recorder using GORM. Entries are
// insert-only; nothing here updates or deletes a log row.
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewGormAuditLogRepository creates a new GormAuditLogRepository
func NewGormAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// RecordOrder appends an order log entry
func (r *GormAuditLogRepository) RecordOrder(ctx context.Context, orderID, userID uint, action string) error {
	entry := audit.OrderLog{OrderID: orderID, UserID: userID, Action: action}
	return r.db.WithContext(ctx).Create(&entry).Error
}

// RecordProduct appends a product log entry
func (r *GormAuditLogRepository) RecordProduct(ctx context.Context, productID, userID uint, action string) error {
	entry := audit.ProductLog{ProductID: productID, UserID: userID, Action: action}
	return r.db.WithContext(ctx).Create(&entry).Error
}

// RecordCustomer appends a customer log entry
func (r *GormAuditLogRepository) RecordCustomer(ctx context.Context, customerID, userID uint, action string) error {
	entry := audit.CustomerLog{CustomerID: customerID, UserID: userID, Action: action}
	return r.db.WithContext(ctx).Create(&entry).Error
}

// RecordVendor appends a vendor log entry
func (r *GormAuditLogRepository) RecordVendor(ctx context.Context, vendorID, userID uint, action string) error {
	entry := audit.VendorLog{VendorID: vendorID, UserID: userID, Action: action}
	return r.db.WithContext(ctx).Create(&entry).Error
}

// ListOrderLogs returns the audit trail of an order, newest first
func (r *GormAuditLogRepository) ListOrderLogs(ctx context.Context, orderID uint) ([]audit.OrderLog, error) {
	var logs []audit.OrderLog
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// ListProductLogs returns the audit trail of a product, newest first
func (r *GormAuditLogRepository) ListProductLogs(ctx context.Context, productID uint) ([]audit.ProductLog, error) {
	var logs []audit.ProductLog
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// ListCustomerLogs returns the audit trail of a customer, newest first
func (r *GormAuditLogRepository) ListCustomerLogs(ctx context.Context, customerID uint) ([]audit.CustomerLog, error) {
	var logs []audit.CustomerLog
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// ListVendorLogs returns the audit trail of a vendor, newest first
func (r *GormAuditLogRepository) ListVendorLogs(ctx context.Context, vendorID uint) ([]audit.VendorLog, error) {
	var logs []audit.VendorLog
	if err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// Ensure GormAuditLogRepository implements audit.Recorder
var _ audit.Recorder = (*GormAuditLogRepository)(nil)
