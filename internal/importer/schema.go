package importer

import (
	"fmt"
	"strings"
)

// Canonical column keys of the product import sheet.
const (
	ColName              = "name"
	ColProductType       = "product_type"
	ColDescription       = "description"
	ColBrand             = "brand"
	ColTags              = "tags"
	ColVariantName       = "variant_name"
	ColSKU               = "sku"
	ColBarcode           = "barcode"
	ColWeight            = "weight"
	ColWeightUnit        = "weight_unit"
	ColUnit              = "unit"
	ColConversionRate    = "conversion_rate"
	ColImageURL          = "image_url"
	ColRetailPrice       = "retail_price"
	ColImportPrice       = "import_price"
	ColWholesalePrice    = "wholesale_price"
	ColTaxApplied        = "tax_applied"
	ColInputTax          = "input_tax"
	ColOutputTax         = "output_tax"
	ColInitialStock      = "initial_stock"
	ColMinStock          = "min_stock"
	ColMaxStock          = "max_stock"
	ColLocation          = "location"
	ColExpiryWarningDays = "expiry_warning_days"
	ColWarrantyApplied   = "warranty_applied"
)

// Column declares one column of the sheet: its canonical key and the header
// label the storefront export uses.
type Column struct {
	Key    string
	Header string
}

// Columns is the declared sheet layout, in the fixed export order. Files
// without a recognizable header row are read by this column order.
var Columns = []Column{
	{ColName, "Tên sản phẩm*"},
	{ColProductType, "Loại sản phẩm"},
	{ColDescription, "Mô tả"},
	{ColBrand, "Thương hiệu"},
	{ColTags, "Tags"},
	{ColVariantName, "Tên phiên bản sản phẩm"},
	{ColSKU, "Mã SKU*"},
	{ColBarcode, "Barcode"},
	{ColWeight, "Khối lượng"},
	{ColWeightUnit, "Đơn vị khối lượng"},
	{ColUnit, "Đơn vị tính"},
	{ColConversionRate, "Tỷ lệ quy đổi"},
	{ColImageURL, "Ảnh đại diện"},
	{ColRetailPrice, "Giá bán lẻ"},
	{ColImportPrice, "Giá nhập"},
	{ColWholesalePrice, "Giá bán buôn"},
	{ColTaxApplied, "Áp dụng thuế"},
	{ColInputTax, "Thuế đầu vào (%)"},
	{ColOutputTax, "Thuế đầu ra (%)"},
	{ColInitialStock, "Tồn kho ban đầu"},
	{ColMinStock, "Tồn tối thiểu"},
	{ColMaxStock, "Tồn tối đa"},
	{ColLocation, "Điểm lưu kho"},
	{ColExpiryWarningDays, "Số ngày cảnh báo hết hạn"},
	{ColWarrantyApplied, "Áp dụng bảo hành"},
}

// requiredKeys must be present in a header-mapped sheet; everything else may
// be absent and defaults during normalization.
var requiredKeys = []string{ColSKU, ColVariantName}

var headerToKey = func() map[string]string {
	m := make(map[string]string, len(Columns))
	for _, c := range Columns {
		m[strings.ToLower(c.Header)] = c.Key
	}
	return m
}()

// MapHeaders resolves a raw header row into column-index -> canonical key.
// Unrecognized headers are not an error but are reported back so the caller
// can surface them instead of silently dropping data. A missing required
// column is an error.
func MapHeaders(headers []string) (map[int]string, []string, error) {
	index := make(map[int]string, len(headers))
	var unknown []string
	seen := make(map[string]bool, len(headers))
	for i, h := range headers {
		key, ok := headerToKey[strings.ToLower(strings.TrimSpace(h))]
		if !ok {
			unknown = append(unknown, h)
			continue
		}
		index[i] = key
		seen[key] = true
	}
	for _, req := range requiredKeys {
		if !seen[req] {
			return nil, unknown, fmt.Errorf("required column %q not found in header row", headerFor(req))
		}
	}
	return index, unknown, nil
}

func headerFor(key string) string {
	for _, c := range Columns {
		if c.Key == key {
			return c.Header
		}
	}
	return key
}
