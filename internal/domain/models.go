package domain

import "time"

// Product is one tracked inventory item. JSON keys match the persisted document.
type Product struct {
	ID          string    `json:"id"`
	Barcode     string    `json:"barcode"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	ExpiryDate  time.Time `json:"expiryDate"`
	BatchNumber string    `json:"batchNumber,omitempty"`
	Aisle       string    `json:"aisle,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductInput carries the caller-supplied fields of a new product.
type ProductInput struct {
	Barcode     string
	Name        string
	Price       float64
	ExpiryDate  time.Time
	BatchNumber string
	Aisle       string
}

// ProductPatch is a partial update; nil fields are left untouched.
type ProductPatch struct {
	Barcode     *string
	Name        *string
	Price       *float64
	ExpiryDate  *time.Time
	BatchNumber *string
	Aisle       *string
}

// Apply merges the non-nil fields of the patch onto p.
func (pp ProductPatch) Apply(p *Product) {
	if pp.Barcode != nil {
		p.Barcode = *pp.Barcode
	}
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.ExpiryDate != nil {
		p.ExpiryDate = *pp.ExpiryDate
	}
	if pp.BatchNumber != nil {
		p.BatchNumber = *pp.BatchNumber
	}
	if pp.Aisle != nil {
		p.Aisle = *pp.Aisle
	}
}
