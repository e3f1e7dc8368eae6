package handlers

import models "github.com/khanhvo/retail-backoffice/internal/models"

type ProductRequest struct {
	Id          int    `json:"id,omitempty"`
	Name        string `json:"name"`
	ProductType string `json:"product_type"`
	Description string `json:"description,omitempty"`
	Brand       string `json:"brand,omitempty"`
	Tags        string `json:"tags,omitempty"`
}

type ProductResponse struct {
	Id          int    `json:"id"`
	Name        string `json:"name"`
	ProductType string `json:"product_type"`
	Description string `json:"description,omitempty"`
	Brand       string `json:"brand,omitempty"`
	Tags        string `json:"tags,omitempty"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ProductsSearchResult struct {
	Data []ProductResponse `json:"data"`
	Meta Meta              `json:"meta,omitempty"`
}

type VariantRequest struct {
	ProductID      int     `json:"product_id"`
	SKU            string  `json:"sku"`
	Barcode        string  `json:"barcode,omitempty"`
	Name           string  `json:"name"`
	Weight         float64 `json:"weight"`
	WeightUnit     string  `json:"weight_unit,omitempty"`
	Unit           string  `json:"unit,omitempty"`
	ImageURL       string  `json:"image_url,omitempty"`
	RetailPrice    float64 `json:"retail_price"`
	WholesalePrice float64 `json:"wholesale_price"`
	ImportPrice    float64 `json:"import_price"`
	TaxApplied     bool    `json:"tax_applied"`
	InputTax       float64 `json:"input_tax"`
	OutputTax      float64 `json:"output_tax"`
	InitialStock   int     `json:"initial_stock"`
	MinStock       int     `json:"min_stock"`
	MaxStock       int     `json:"max_stock"`
	Location       string  `json:"location,omitempty"`
}

type VariantResponse struct {
	Variant   models.ProductVariant `json:"variant"`
	Inventory *models.Inventory     `json:"inventory,omitempty"`
	Warranty  *models.Warranty      `json:"warranty,omitempty"`
}

type QuantityAdjustmentRequest struct {
	Delta int `json:"delta"` // can be positive or negative
}

type ImportProductsResult struct {
	Products    int      `json:"products"`
	Variants    int      `json:"variants"`
	Conversions int      `json:"conversions"`
	SkippedRows int      `json:"skipped_rows"`
	Warnings    []string `json:"warnings,omitempty"`
}

type ImportJobResponse struct {
	JobID   string `json:"job_id"`
	Message string `json:"message"`
}

type SupplierRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
	TaxCode string `json:"tax_code,omitempty"`
}

type PurchaseOrderRequest struct {
	SupplierID int                        `json:"supplier_id"`
	Note       string                     `json:"note,omitempty"`
	Items      []PurchaseOrderItemRequest `json:"items"`
}

type PurchaseOrderItemRequest struct {
	VariantID int     `json:"variant_id"`
	Quantity  int     `json:"quantity"`
	UnitCost  float64 `json:"unit_cost"`
}

type CartItemRequest struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

type CartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method,omitempty"`
}

type CheckoutResponse struct {
	Sale    models.Sale `json:"sale"`
	Receipt string      `json:"receipt"`
}

type UserLogin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string `json:"token"`
}

type RegisterResult struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}
