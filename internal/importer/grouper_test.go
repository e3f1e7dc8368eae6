package importer_test

import (
	"testing"

	"github.com/khanhvo/retail-backoffice/internal/importer"
)

func TestStripUnitSuffix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Nước suối Lavie - thùng", "Nước suối Lavie"},
		{"Nước suối Lavie - lốc", "Nước suối Lavie"},
		{"Sữa Vinamilk - Thùng", "Sữa Vinamilk"},
		{"Bánh quy - hộp - vỉ", "Bánh quy"},
		{"Trà xanh - chai lớn", "Trà xanh - chai lớn"},
		{"Kẹo dẻo", "Kẹo dẻo"},
		{"  Kẹo dẻo  ", "Kẹo dẻo"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := importer.StripUnitSuffix(tt.in); got != tt.want {
			t.Errorf("StripUnitSuffix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripUnitSuffix_FixedPoint(t *testing.T) {
	inputs := []string{
		"Nước suối Lavie - thùng",
		"Bánh quy - hộp - vỉ",
		"Trà xanh",
	}
	for _, in := range inputs {
		once := importer.StripUnitSuffix(in)
		twice := importer.StripUnitSuffix(once)
		if once != twice {
			t.Errorf("StripUnitSuffix not a fixed point for %q: %q then %q", in, once, twice)
		}
	}
}

func TestDeriveProductName(t *testing.T) {
	row := importer.Row{Name: "Nước suối Lavie", VariantName: "Khác hẳn - thùng"}
	if got := importer.DeriveProductName(row); got != "Nước suối Lavie" {
		t.Errorf("explicit name should win, got %q", got)
	}

	row = importer.Row{VariantName: "Nước suối Lavie - thùng"}
	if got := importer.DeriveProductName(row); got != "Nước suối Lavie" {
		t.Errorf("expected suffix-stripped variant name, got %q", got)
	}

	row = importer.Row{}
	if got := importer.DeriveProductName(row); got != "" {
		t.Errorf("expected empty for underivable row, got %q", got)
	}
}

func TestGroupRows(t *testing.T) {
	rows := []importer.Row{
		{Name: "Nước suối Lavie", VariantName: "Nước suối Lavie - chai", SKU: "A1", Brand: "Lavie"},
		{VariantName: "Sữa tươi - hộp", SKU: "B1"},
		{VariantName: "Nước suối Lavie - thùng", SKU: "A2"},
		{VariantName: "Sữa tươi - thùng", SKU: "B2"},
	}

	groups := importer.GroupRows(rows, nil)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Name != "Nước suối Lavie" || groups[1].Name != "Sữa tươi" {
		t.Errorf("groups out of first-seen order: %q, %q", groups[0].Name, groups[1].Name)
	}
	if len(groups[0].Rows) != 2 || len(groups[1].Rows) != 2 {
		t.Errorf("expected 2 rows per group, got %d and %d", len(groups[0].Rows), len(groups[1].Rows))
	}
	if groups[0].Brand != "Lavie" {
		t.Errorf("expected product fields from the first row, got brand %q", groups[0].Brand)
	}
	if groups[0].Rows[0].SKU != "A1" || groups[0].Rows[1].SKU != "A2" {
		t.Errorf("rows out of input order: %q, %q", groups[0].Rows[0].SKU, groups[0].Rows[1].SKU)
	}
}

func TestGroupRows_SkipsUnderivableRows(t *testing.T) {
	rows := []importer.Row{
		{SKU: "X1"}, // no product or variant name
		{Name: "Trà xanh", VariantName: "Trà xanh - chai", SKU: "T1"},
	}

	groups := importer.GroupRows(rows, nil)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if len(groups[0].Rows) != 1 {
		t.Errorf("expected the underivable row dropped, got %d rows", len(groups[0].Rows))
	}
}

func TestGroupRows_ExactNameMatch(t *testing.T) {
	rows := []importer.Row{
		{Name: "Trà Xanh", SKU: "T1", VariantName: "Trà Xanh - chai"},
		{Name: "trà xanh", SKU: "T2", VariantName: "trà xanh - chai"},
	}

	groups := importer.GroupRows(rows, nil)
	if len(groups) != 2 {
		t.Fatalf("case-differing names must not merge, got %d group(s)", len(groups))
	}
}
