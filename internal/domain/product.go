package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Rate        float64   `json:"rate"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewProduct creates a new product with a fresh id
func NewProduct(name, description string, rate float64, now time.Time) *Product {
	return &Product{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(name),
		Description: description,
		Rate:        rate,
		CreatedAt:   now,
	}
}

// Validate returns an error if the product is invalid
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("product name is required")
	}
	if p.Rate < 0 {
		return errors.New("rate cannot be negative")
	}
	return nil
}

// LineItem copies the product's fields into a new line item with quantity 1.
// The copy is a snapshot: later edits to the product do not change line
// items already added to invoices.
func (p *Product) LineItem() LineItem {
	return LineItem{
		ID:          uuid.NewString(),
		Name:        p.Name,
		Description: p.Description,
		Quantity:    1,
		Rate:        p.Rate,
		Total:       p.Rate,
	}
}
