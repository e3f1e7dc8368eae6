package receipt_test

import (
	"strings"
	"testing"

	"github.com/khanhvo/retail-backoffice/internal/models"
	"github.com/khanhvo/retail-backoffice/internal/receipt"
)

func sampleSale() models.Sale {
	return models.Sale{
		Code:          "POS-AB12CD34",
		Subtotal:      260000,
		TaxTotal:      26000,
		Total:         286000,
		PaymentMethod: "cash",
		CreatedAt:     "2026-08-30T10:15:00+07:00",
		Items: []models.SaleItem{
			{SKU: "CHAI", Name: "Nước suối Lavie - chai", Quantity: 2, UnitPrice: 10000, Amount: 20000},
			{SKU: "THUNG", Name: "Nước suối Lavie - thùng", Quantity: 1, UnitPrice: 240000, Amount: 240000},
		},
	}
}

func TestRender_Contents(t *testing.T) {
	out := receipt.Render(sampleSale(), receipt.Options{
		Width:     32,
		StoreName: "Tạp hóa Minh Anh",
	})

	for _, want := range []string{
		"Tạp hóa Minh Anh",
		"Số HĐ: POS-AB12CD34",
		"30/08/2026 10:15",
		"Nước suối Lavie - chai",
		"2 x 10.000",
		"Tạm tính",
		"260.000",
		"Thuế",
		"26.000",
		"TỔNG CỘNG",
		"286.000",
		"Thanh toán",
		"Cảm ơn quý khách!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("receipt missing %q:\n%s", want, out)
		}
	}
}

func TestRender_Deterministic(t *testing.T) {
	opts := receipt.Options{Width: 32, StoreName: "Tạp hóa Minh Anh"}
	if receipt.Render(sampleSale(), opts) != receipt.Render(sampleSale(), opts) {
		t.Error("rendering the same sale twice must give identical output")
	}
}

func TestRender_LineWidth(t *testing.T) {
	width := 32
	out := receipt.Render(sampleSale(), receipt.Options{Width: width})
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		if n := len([]rune(line)); n > width {
			t.Errorf("line exceeds %d columns (%d): %q", width, n, line)
		}
	}
}

func TestRender_ZeroTaxOmitsTaxLine(t *testing.T) {
	sale := sampleSale()
	sale.TaxTotal = 0
	out := receipt.Render(sale, receipt.Options{Width: 32})
	if strings.Contains(out, "Thuế") {
		t.Errorf("tax line must be omitted for tax-free sales:\n%s", out)
	}
}

func TestRender_DefaultWidth(t *testing.T) {
	out := receipt.Render(sampleSale(), receipt.Options{})
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		if n := len([]rune(line)); n > receipt.DefaultWidth {
			t.Errorf("line exceeds the default width (%d): %q", n, line)
		}
	}
}
