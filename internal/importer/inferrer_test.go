package importer_test

import (
	"testing"

	"github.com/khanhvo/retail-backoffice/internal/importer"
)

func TestInferConversions_ExactRatio(t *testing.T) {
	rows := []importer.Row{
		{SKU: "CHAI", RetailPrice: 10000},
		{SKU: "THUNG", RetailPrice: 240000},
	}

	candidates := importer.InferConversions(rows)
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	c := candidates[0]
	if c.FromSKU != "CHAI" || c.ToSKU != "THUNG" || c.Rate != 24 {
		t.Errorf("expected CHAI -> THUNG rate 24, got %s -> %s rate %d", c.FromSKU, c.ToSKU, c.Rate)
	}
}

func TestInferConversions_NonIntegerRatioSkipped(t *testing.T) {
	rows := []importer.Row{
		{SKU: "CHAI", RetailPrice: 10000},
		{SKU: "LOC", RetailPrice: 55000}, // bulk discount, not a pack size
	}
	if got := importer.InferConversions(rows); len(got) != 0 {
		t.Errorf("expected no candidates for non-integer ratio, got %v", got)
	}
}

func TestInferConversions_Guards(t *testing.T) {
	tests := []struct {
		name string
		rows []importer.Row
	}{
		{"zero price", []importer.Row{
			{SKU: "A", RetailPrice: 0},
			{SKU: "B", RetailPrice: 240000},
		}},
		{"equal prices", []importer.Row{
			{SKU: "A", RetailPrice: 10000},
			{SKU: "B", RetailPrice: 10000},
		}},
		{"missing SKU", []importer.Row{
			{SKU: "", RetailPrice: 10000},
			{SKU: "B", RetailPrice: 240000},
		}},
		{"same SKU", []importer.Row{
			{SKU: "A", RetailPrice: 10000},
			{SKU: "A", RetailPrice: 240000},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := importer.InferConversions(tt.rows); len(got) != 0 {
				t.Errorf("expected no candidates, got %v", got)
			}
		})
	}
}

func TestInferConversions_RespectsRowOrder(t *testing.T) {
	// Pairs are examined in row order; a bulk unit listed before its base
	// unit never becomes a candidate.
	rows := []importer.Row{
		{SKU: "THUNG", RetailPrice: 240000},
		{SKU: "CHAI", RetailPrice: 10000},
	}
	if got := importer.InferConversions(rows); len(got) != 0 {
		t.Errorf("expected no candidates when prices descend, got %v", got)
	}
}

func TestInferConversions_ThreeTiers(t *testing.T) {
	rows := []importer.Row{
		{SKU: "CHAI", RetailPrice: 10000},
		{SKU: "LOC", RetailPrice: 60000},
		{SKU: "THUNG", RetailPrice: 240000},
	}
	candidates := importer.InferConversions(rows)
	if len(candidates) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(candidates))
	}
	want := map[string]int{
		"CHAI->LOC":   6,
		"CHAI->THUNG": 24,
		"LOC->THUNG":  4,
	}
	for _, c := range candidates {
		key := c.FromSKU + "->" + c.ToSKU
		rate, ok := want[key]
		if !ok {
			t.Errorf("unexpected candidate %s", key)
			continue
		}
		if c.Rate != rate {
			t.Errorf("%s: expected rate %d, got %d", key, rate, c.Rate)
		}
		delete(want, key)
	}
	for key := range want {
		t.Errorf("missing candidate %s", key)
	}
}
