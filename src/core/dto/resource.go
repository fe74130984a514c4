package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"resourcehub/src/core/domain"
)

// CreateDTO is the payload for POST /resource.
// Identifier and timestamps are assigned by the server.
type CreateDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   Price  `json:"unit_price"`
}

// UpdateDTO is the payload for PUT /resource/{id}.
// Every mutable field is replaced; omitted fields reset to their zero value.
type UpdateDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   Price  `json:"unit_price"`
}

// PatchDTO is the payload for PATCH /resource/{id}.
// Only fields present in the document are applied.
type PatchDTO struct {
	Name        Optional[string] `json:"name,omitzero"`
	Description Optional[string] `json:"description,omitzero"`
	Quantity    Optional[int]    `json:"quantity,omitzero"`
	UnitPrice   Optional[Price]  `json:"unit_price,omitzero"`
}

// IsEmpty reports whether the patch carries no field at all.
func (p PatchDTO) IsEmpty() bool {
	return !p.Name.Present && !p.Description.Present && !p.Quantity.Present && !p.UnitPrice.Present
}

// ReadDTO is the representation returned to clients.
// Status and TotalValue are derived at read time and never stored.
type ReadDTO struct {
	ID          int64           `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Status      domain.Status   `json:"status"`
	TotalValue  decimal.Decimal `json:"total_value"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
