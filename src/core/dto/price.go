package dto

import (
	"encoding/json"
	"reflect"

	"github.com/shopspring/decimal"
)

// Price is a decimal amount received from clients.
// Malformed input fails as a *json.UnmarshalTypeError so the decoder can
// attach the name of the offending field.
type Price struct {
	decimal.Decimal
}

// UnmarshalJSON accepts a JSON number or a numeric string.
func (p *Price) UnmarshalJSON(data []byte) error {
	if err := p.Decimal.UnmarshalJSON(data); err != nil {
		return &json.UnmarshalTypeError{
			Value: string(data),
			Type:  reflect.TypeFor[decimal.Decimal](),
		}
	}
	return nil
}
