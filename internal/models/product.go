package models

// Product represents one catalog item; its sellable configurations live in ProductVariant.
type Product struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	ProductType string `json:"product_type"`
	Description string `json:"description,omitempty"`
	Brand       string `json:"brand,omitempty"`
	Tags        string `json:"tags,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// ProductVariant is a sellable unit configuration of a Product, identified by SKU.
type ProductVariant struct {
	ID             int     `json:"id"`
	ProductID      int     `json:"product_id"`
	SKU            string  `json:"sku"`
	Barcode        string  `json:"barcode,omitempty"`
	Name           string  `json:"name"`
	Weight         float64 `json:"weight"`
	WeightUnit     string  `json:"weight_unit"`
	Unit           string  `json:"unit"`
	ImageURL       string  `json:"image_url,omitempty"`
	RetailPrice    float64 `json:"retail_price"`
	WholesalePrice float64 `json:"wholesale_price"`
	ImportPrice    float64 `json:"import_price"`
	TaxApplied     bool    `json:"tax_applied"`
	InputTax       float64 `json:"input_tax"`
	OutputTax      float64 `json:"output_tax"`
}

// Inventory is the one-to-one stock record of a variant. Current stock starts
// equal to initial stock and only moves through purchase receiving and sales.
type Inventory struct {
	ID           int    `json:"id"`
	VariantID    int    `json:"variant_id"`
	InitialStock int    `json:"initial_stock"`
	CurrentStock int    `json:"current_stock"`
	MinStock     int    `json:"min_stock"`
	MaxStock     int    `json:"max_stock"`
	Location     string `json:"location,omitempty"`
}

// Warranty holds the warranty terms of a variant.
type Warranty struct {
	ID          int    `json:"id"`
	VariantID   int    `json:"variant_id"`
	WarningDays int    `json:"warning_days"`
	Policy      string `json:"policy,omitempty"`
}

// UnitConversion is a directed edge between two variants of the same product:
// one unit of the "to" variant equals Rate units of the "from" variant.
type UnitConversion struct {
	ID            int `json:"id"`
	FromVariantID int `json:"from_variant_id"`
	ToVariantID   int `json:"to_variant_id"`
	Rate          int `json:"rate"`
}
