package models

type Sale struct {
	ID            int        `json:"id"`
	Code          string     `json:"code"`
	CashierID     int        `json:"cashier_id"`
	Subtotal      float64    `json:"subtotal"`
	TaxTotal      float64    `json:"tax_total"`
	Total         float64    `json:"total"`
	PaymentMethod string     `json:"payment_method"`
	CreatedAt     string     `json:"created_at,omitempty"`
	Items         []SaleItem `json:"items,omitempty"`
}

// SaleItem snapshots the variant name and price at checkout time so the sale
// record survives later catalog changes.
type SaleItem struct {
	ID        int     `json:"id"`
	SaleID    int     `json:"sale_id"`
	VariantID int     `json:"variant_id"`
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Amount    float64 `json:"amount"`
}
