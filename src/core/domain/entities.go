package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockThreshold is the quantity below which a stocked resource is reported as LOW_STOCK.
const LowStockThreshold = 5

// Status is a read-time label derived from a resource's persisted state.
type Status string

const (
	StatusOutOfStock Status = "OUT_OF_STOCK"
	StatusLowStock   Status = "LOW_STOCK"
	StatusInStock    Status = "IN_STOCK"
)

// Resource is the persisted entity.
// ID and CreatedAt are assigned by storage on insert and never change afterwards.
type Resource struct {
	ID          int64
	Name        string
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Status derives the stock status from the quantity.
func (r Resource) Status() Status {
	switch {
	case r.Quantity <= 0:
		return StatusOutOfStock
	case r.Quantity < LowStockThreshold:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// TotalValue is UnitPrice multiplied by Quantity.
func (r Resource) TotalValue() decimal.Decimal {
	return r.UnitPrice.Mul(decimal.NewFromInt(int64(r.Quantity)))
}

// WithMutableFields returns a copy of r carrying the mutable fields of src.
// Identity and timestamps are kept from r.
func (r Resource) WithMutableFields(src Resource) Resource {
	r.Name = src.Name
	r.Description = src.Description
	r.Quantity = src.Quantity
	r.UnitPrice = src.UnitPrice
	return r
}
