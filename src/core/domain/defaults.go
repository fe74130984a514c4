package domain

import "math"

// DefaultPageSize is used when a list request does not specify a page size.
const DefaultPageSize = 10

// MaxPageSize caps the page size a client may request.
const MaxPageSize = 100

// MaxNameLength and MaxDescriptionLength bound the text fields of a resource.
const (
	MaxNameLength        = 200
	MaxDescriptionLength = 2000
)

// MaxQuantity is the largest quantity every storage driver can hold.
const MaxQuantity = math.MaxInt32
