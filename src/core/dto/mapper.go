package dto

import (
	"strings"

	"resourcehub/src/core/domain"
)

// FromCreateDTO builds an entity from a create payload.
// ID and timestamps are left unset for storage to assign.
func FromCreateDTO(in CreateDTO) (domain.Resource, error) {
	r := domain.Resource{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice.Decimal,
	}
	if err := Validate(r); err != nil {
		return domain.Resource{}, err
	}
	return r, nil
}

// ToReadDTO renders an entity for clients, computing its derived fields.
func ToReadDTO(r domain.Resource) ReadDTO {
	return ReadDTO{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Quantity:    r.Quantity,
		UnitPrice:   r.UnitPrice,
		Status:      r.Status(),
		TotalValue:  r.TotalValue(),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// ToReadDTOs maps a page of entities, preserving order.
func ToReadDTOs(rs []domain.Resource) []ReadDTO {
	out := make([]ReadDTO, 0, len(rs))
	for _, r := range rs {
		out = append(out, ToReadDTO(r))
	}
	return out
}

// ApplyFullUpdate produces the replacement entity for a PUT. Only the id and
// timestamps survive from original; every other field comes from the payload.
func ApplyFullUpdate(original domain.Resource, in UpdateDTO) (domain.Resource, error) {
	r := domain.Resource{
		ID:          original.ID,
		CreatedAt:   original.CreatedAt,
		UpdatedAt:   original.UpdatedAt,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice.Decimal,
	}
	if err := Validate(r); err != nil {
		return domain.Resource{}, err
	}
	return r, nil
}

// ApplyPatch overwrites the fields present in the patch and copies the rest
// from original.
func ApplyPatch(original domain.Resource, p PatchDTO) (domain.Resource, error) {
	next := original
	if v, ok := p.Name.Get(); ok {
		next.Name = strings.TrimSpace(v)
	}
	if v, ok := p.Description.Get(); ok {
		next.Description = v
	}
	if v, ok := p.Quantity.Get(); ok {
		next.Quantity = v
	}
	if v, ok := p.UnitPrice.Get(); ok {
		next.UnitPrice = v.Decimal
	}
	if err := Validate(next); err != nil {
		return domain.Resource{}, err
	}
	return next, nil
}
