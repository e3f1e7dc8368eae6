package importer_test

import (
	"testing"

	"github.com/khanhvo/retail-backoffice/internal/importer"
)

func TestNormalize_TypedFields(t *testing.T) {
	raw := importer.RawRow{
		importer.ColName:        "  Nước suối Lavie  ",
		importer.ColVariantName: "Nước suối Lavie - thùng",
		importer.ColSKU:         " SKU001 ",
		importer.ColRetailPrice: "240,000",
		importer.ColImportPrice: "180000",
		importer.ColWeight:      "500",
		importer.ColTaxApplied:  "có",
		importer.ColOutputTax:   "10",
		importer.ColInitialStock: "12",
	}

	row := importer.Normalize(raw)

	if row.Name != "Nước suối Lavie" {
		t.Errorf("expected trimmed name, got %q", row.Name)
	}
	if row.SKU != "SKU001" {
		t.Errorf("expected trimmed SKU, got %q", row.SKU)
	}
	if row.RetailPrice != 240000 {
		t.Errorf("expected 240000 with separator stripped, got %v", row.RetailPrice)
	}
	if row.ImportPrice != 180000 {
		t.Errorf("expected 180000, got %v", row.ImportPrice)
	}
	if !row.TaxApplied {
		t.Error("expected tax applied for 'có'")
	}
	if row.OutputTax != 10 {
		t.Errorf("expected output tax 10, got %v", row.OutputTax)
	}
	if row.InitialStock != 12 {
		t.Errorf("expected initial stock 12, got %d", row.InitialStock)
	}
}

func TestNormalize_InvalidNumbersBecomeZero(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"empty", ""},
		{"text", "abc"},
		{"negative", "-500"},
		{"mixed", "12abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := importer.Normalize(importer.RawRow{importer.ColRetailPrice: tt.value})
			if row.RetailPrice != 0 {
				t.Errorf("expected 0 for %q, got %v", tt.value, row.RetailPrice)
			}
		})
	}
}

func TestNormalize_UnitDefaults(t *testing.T) {
	row := importer.Normalize(importer.RawRow{})
	if row.WeightUnit != importer.DefaultWeightUnit {
		t.Errorf("expected default weight unit %q, got %q", importer.DefaultWeightUnit, row.WeightUnit)
	}
	if row.Unit != importer.DefaultUnit {
		t.Errorf("expected default unit %q, got %q", importer.DefaultUnit, row.Unit)
	}

	row = importer.Normalize(importer.RawRow{
		importer.ColWeightUnit: "kg",
		importer.ColUnit:       "chai",
	})
	if row.WeightUnit != "kg" || row.Unit != "chai" {
		t.Errorf("expected explicit units kept, got %q / %q", row.WeightUnit, row.Unit)
	}
}

func TestNormalize_FlagParsing(t *testing.T) {
	truthy := []string{"1", "true", "x", "yes", "có", "co", " X "}
	for _, v := range truthy {
		row := importer.Normalize(importer.RawRow{importer.ColWarrantyApplied: v})
		if !row.WarrantyApplied {
			t.Errorf("expected %q to parse as true", v)
		}
	}
	falsy := []string{"", "0", "false", "không", "n"}
	for _, v := range falsy {
		row := importer.Normalize(importer.RawRow{importer.ColWarrantyApplied: v})
		if row.WarrantyApplied {
			t.Errorf("expected %q to parse as false", v)
		}
	}
}
