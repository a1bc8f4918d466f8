package catalog

import (
	"time"

	"github.com/agencydesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StockOperation represents the direction of a stock adjustment
type StockOperation string

const (
	StockOperationSale     StockOperation = "sale"
	StockOperationPurchase StockOperation = "purchase"
)

// IsValid checks if the operation is a known StockOperation
func (op StockOperation) IsValid() bool {
	switch op {
	case StockOperationSale, StockOperationPurchase:
		return true
	}
	return false
}

// Delta returns the signed quantity delta for the operation: sales
// decrement stock, purchases increment it.
func (op StockOperation) Delta(quantity int) int {
	if op == StockOperationSale {
		return -quantity
	}
	return quantity
}

// Product represents a catalog product with its stock on hand
type Product struct {
	shared.BaseEntity
	Name     string          `gorm:"size:200;not null;index" json:"name"`
	Quantity int             `gorm:"not null;default:0" json:"quantity"`
	Unit     string          `gorm:"size:20" json:"unit"`
	Price    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"price"`
}

// TableName overrides the gorm table name
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name, unit string, quantity int, price decimal.Decimal) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Product name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeValidation, "Product price cannot be negative")
	}

	return &Product{
		Name:     name,
		Unit:     unit,
		Quantity: quantity,
		Price:    price,
	}, nil
}

// Rename changes the product name
func (p *Product) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError(shared.CodeValidation, "Product name cannot be empty")
	}
	p.Name = name
	p.UpdatedAt = time.Now()
	return nil
}

// SetPrice changes the unit price
func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError(shared.CodeValidation, "Product price cannot be negative")
	}
	p.Price = price
	p.UpdatedAt = time.Now()
	return nil
}

// Unit represents a measurement unit for products (e.g. PCs, NOs)
type Unit struct {
	shared.BaseEntity
	Name string `gorm:"size:20;not null;uniqueIndex" json:"name"`
}

// TableName overrides the gorm table name
func (Unit) TableName() string {
	return "units"
}
