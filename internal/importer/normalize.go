package importer

import (
	"strconv"
	"strings"
)

// Fallback labels for rows that leave the unit columns blank.
const (
	DefaultWeightUnit = "g"
	DefaultUnit       = "unit"
)

// Row is one normalized import record. Every numeric field is a parsed,
// non-negative number; optional text fields are empty strings.
type Row struct {
	Name        string
	ProductType string
	Description string
	Brand       string
	Tags        string

	VariantName string
	SKU         string
	Barcode     string

	Weight         float64
	WeightUnit     string
	Unit           string
	ConversionRate float64
	ImageURL       string

	RetailPrice    float64
	ImportPrice    float64
	WholesalePrice float64
	TaxApplied     bool
	InputTax       float64
	OutputTax      float64

	InitialStock int
	MinStock     int
	MaxStock     int
	Location     string

	ExpiryWarningDays int
	WarrantyApplied   bool
}

// Normalize coerces one raw row into a typed record. Nothing is rejected
// here; validation belongs to the grouper and the executor.
func Normalize(raw RawRow) Row {
	return Row{
		Name:        strings.TrimSpace(raw[ColName]),
		ProductType: strings.TrimSpace(raw[ColProductType]),
		Description: strings.TrimSpace(raw[ColDescription]),
		Brand:       strings.TrimSpace(raw[ColBrand]),
		Tags:        strings.TrimSpace(raw[ColTags]),

		VariantName: strings.TrimSpace(raw[ColVariantName]),
		SKU:         strings.TrimSpace(raw[ColSKU]),
		Barcode:     strings.TrimSpace(raw[ColBarcode]),

		Weight:         parseNumber(raw[ColWeight]),
		WeightUnit:     defaultIfEmpty(raw[ColWeightUnit], DefaultWeightUnit),
		Unit:           defaultIfEmpty(raw[ColUnit], DefaultUnit),
		ConversionRate: parseNumber(raw[ColConversionRate]),
		ImageURL:       strings.TrimSpace(raw[ColImageURL]),

		RetailPrice:    parseNumber(raw[ColRetailPrice]),
		ImportPrice:    parseNumber(raw[ColImportPrice]),
		WholesalePrice: parseNumber(raw[ColWholesalePrice]),
		TaxApplied:     parseFlag(raw[ColTaxApplied]),
		InputTax:       parseNumber(raw[ColInputTax]),
		OutputTax:      parseNumber(raw[ColOutputTax]),

		InitialStock: parseCount(raw[ColInitialStock]),
		MinStock:     parseCount(raw[ColMinStock]),
		MaxStock:     parseCount(raw[ColMaxStock]),
		Location:     strings.TrimSpace(raw[ColLocation]),

		ExpiryWarningDays: parseCount(raw[ColExpiryWarningDays]),
		WarrantyApplied:   parseFlag(raw[ColWarrantyApplied]),
	}
}

// NormalizeAll maps a parsed sheet to normalized records, one per input row.
func NormalizeAll(sheet Sheet) []Row {
	rows := make([]Row, len(sheet.Rows))
	for i, raw := range sheet.Rows {
		rows[i] = Normalize(raw)
	}
	return rows
}

// parseNumber returns 0 for missing, malformed, or negative input. Exports
// sometimes carry thousands separators, which are tolerated.
func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func parseCount(s string) int {
	return int(parseNumber(s))
}

func parseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "x", "yes", "có", "co":
		return true
	}
	return false
}

func defaultIfEmpty(s, fallback string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	return s
}
