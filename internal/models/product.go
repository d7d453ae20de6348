package models

// Category groups products; managed from the admin dashboard.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name" validate:"required,min=3,max=100"`
	Slug string `json:"slug"`
}

// ProductPage is one page of a product listing with the total match count,
// as reported by the backend for pagination.
type ProductPage struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
}

// Product represents a product in the store, as returned by the backend API.
// Prices are Indonesian Rupiah, so values are whole numbers in practice.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" validate:"required,min=3,max=100"`
	Slug        string    `json:"slug"`
	Description string    `json:"description" validate:"omitempty,max=2000"`
	Price       float64   `json:"price" validate:"required,gt=0"`
	Stock       int       `json:"stock" validate:"gte=0"`
	Weight      int       `json:"weight,omitempty"`
	Images      []string  `json:"images"`
	CategoryID  string    `json:"categoryId,omitempty"`
	Category    *Category `json:"category,omitempty"`
}
