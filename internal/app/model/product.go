package model

import "github.com/shopspring/decimal"

type Product struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  uint            `json:"category_id"`
	Image       string          `json:"image,omitempty"`
	Sizes       []Size          `json:"sizes,omitempty"`
	Colors      []Color         `json:"colors,omitempty"`
}

type Size struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Color struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Hex  string `json:"hex,omitempty"`
}

// Pagination mirrors the backend's paginated list envelope.
type Pagination struct {
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
	TotalItems int `json:"totalItems"`
}

// Size returns the size with the given id, or nil.
func (p *Product) Size(id uint) *Size {
	for i := range p.Sizes {
		if p.Sizes[i].ID == id {
			return &p.Sizes[i]
		}
	}
	return nil
}

// Color returns the color with the given id, or nil.
func (p *Product) Color(id uint) *Color {
	for i := range p.Colors {
		if p.Colors[i].ID == id {
			return &p.Colors[i]
		}
	}
	return nil
}
