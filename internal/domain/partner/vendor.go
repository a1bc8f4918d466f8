package partner

import (
	"time"

	"github.com/agencydesk/backend/internal/domain/shared"
)

// Vendor represents a supplier the agency purchases from
type Vendor struct {
	shared.BaseEntity
	Name     string `gorm:"size:200;not null;index" json:"name"`
	Phone    string `gorm:"size:20" json:"phone"`
	Aadhaar  string `gorm:"size:20" json:"aadhaar,omitempty"`
	Address  string `gorm:"size:500" json:"address,omitempty"`
	Products string `gorm:"size:500" json:"products,omitempty"`
}

// TableName overrides the gorm table name
func (Vendor) TableName() string {
	return "vendors"
}

// NewVendor creates a new vendor
func NewVendor(name, phone string) (*Vendor, error) {
	if name == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Vendor name cannot be empty")
	}
	return &Vendor{
		Name:  name,
		Phone: phone,
	}, nil
}

// Update applies new details to the vendor
func (v *Vendor) Update(name, phone, aadhaar, address, products string) error {
	if name == "" {
		return shared.NewDomainError(shared.CodeValidation, "Vendor name cannot be empty")
	}
	v.Name = name
	v.Phone = phone
	v.Aadhaar = aadhaar
	v.Address = address
	v.Products = products
	v.UpdatedAt = time.Now()
	return nil
}
