package partner

import (
	"time"

	"github.com/agencydesk/backend/internal/domain/shared"
)

// Customer represents a customer of the agency
type Customer struct {
	shared.BaseEntity
	Name    string `gorm:"size:200;not null;index" json:"name"`
	Phone   string `gorm:"size:20" json:"phone"`
	Aadhaar string `gorm:"size:20" json:"aadhaar,omitempty"`
	Address string `gorm:"size:500" json:"address,omitempty"`
}

// TableName overrides the gorm table name
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer
func NewCustomer(name, phone string) (*Customer, error) {
	if name == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Customer name cannot be empty")
	}
	return &Customer{
		Name:  name,
		Phone: phone,
	}, nil
}

// Update applies new contact details to the customer
func (c *Customer) Update(name, phone, aadhaar, address string) error {
	if name == "" {
		return shared.NewDomainError(shared.CodeValidation, "Customer name cannot be empty")
	}
	c.Name = name
	c.Phone = phone
	c.Aadhaar = aadhaar
	c.Address = address
	c.UpdatedAt = time.Now()
	return nil
}
