package models

type Supplier struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	Address   string `json:"address,omitempty"`
	TaxCode   string `json:"tax_code,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Purchase order lifecycle: ordered -> received | cancelled.
const (
	PurchaseOrderOrdered   = "ordered"
	PurchaseOrderReceived  = "received"
	PurchaseOrderCancelled = "cancelled"
)

type PurchaseOrder struct {
	ID         int                 `json:"id"`
	Code       string              `json:"code"`
	SupplierID int                 `json:"supplier_id"`
	Status     string              `json:"status"`
	Note       string              `json:"note,omitempty"`
	CreatedAt  string              `json:"created_at,omitempty"`
	ReceivedAt string              `json:"received_at,omitempty"`
	Items      []PurchaseOrderItem `json:"items,omitempty"`
}

type PurchaseOrderItem struct {
	ID        int     `json:"id"`
	OrderID   int     `json:"order_id"`
	VariantID int     `json:"variant_id"`
	Quantity  int     `json:"quantity"`
	UnitCost  float64 `json:"unit_cost"`
}
