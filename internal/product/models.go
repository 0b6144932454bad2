package product

import "mime/multipart"

// Product represents a stored inventory record.
//
// ImageKey names the object holding the product image; it is nil when no
// image has been attached. Any non-nil key is kept pointing at a live object
// by the service, never by the stores themselves.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int64   `json:"quantity"`
	Price    float64 `json:"price"`
	ImageKey *string `json:"imageKey"`
}

// Listed decorates a product with its signed image URL for list responses.
// Products without an image carry no imageUrl field at all.
type Listed struct {
	Product
	ImageURL *string `json:"imageUrl,omitempty"`
}

// CreateInput carries the raw multipart form values for product creation.
// Quantity and Price arrive as form strings and are validated by the service.
type CreateInput struct {
	Name     string
	Quantity string
	Price    string
	File     *multipart.FileHeader
}

// UpdateInput carries optional multipart form values for a partial update.
// Nil fields keep their stored values.
type UpdateInput struct {
	Name     *string
	Quantity *string
	Price    *string
	File     *multipart.FileHeader
}
