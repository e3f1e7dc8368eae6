// Package receipt renders plain-text sales receipts sized for thermal
// printers. It produces the text only; talking to the printer is the
// operator's tooling.
package receipt

import (
	"fmt"
	"strings"
	"time"

	"github.com/khanhvo/retail-backoffice/internal/models"
)

const DefaultWidth = 32

type Options struct {
	Width     int
	StoreName string
	Address   string
	Footer    string
}

// Render formats a sale as receipt text. Output is deterministic for a given
// sale and options.
func Render(sale models.Sale, opts Options) string {
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	footer := opts.Footer
	if footer == "" {
		footer = "Cảm ơn quý khách!"
	}

	var b strings.Builder
	line := strings.Repeat("-", width)

	if opts.StoreName != "" {
		b.WriteString(center(opts.StoreName, width) + "\n")
	}
	if opts.Address != "" {
		b.WriteString(center(opts.Address, width) + "\n")
	}
	b.WriteString(line + "\n")

	b.WriteString(leftRight("Số HĐ: "+sale.Code, "", width) + "\n")
	if t, err := time.Parse(time.RFC3339, sale.CreatedAt); err == nil {
		b.WriteString(leftRight(t.Format("02/01/2006 15:04"), "", width) + "\n")
	}
	b.WriteString(line + "\n")

	for _, item := range sale.Items {
		b.WriteString(clip(item.Name, width) + "\n")
		qty := fmt.Sprintf("  %d x %s", item.Quantity, formatMoney(item.UnitPrice))
		b.WriteString(leftRight(qty, formatMoney(item.Amount), width) + "\n")
	}
	b.WriteString(line + "\n")

	b.WriteString(leftRight("Tạm tính", formatMoney(sale.Subtotal), width) + "\n")
	if sale.TaxTotal > 0 {
		b.WriteString(leftRight("Thuế", formatMoney(sale.TaxTotal), width) + "\n")
	}
	b.WriteString(leftRight("TỔNG CỘNG", formatMoney(sale.Total), width) + "\n")
	b.WriteString(leftRight("Thanh toán", sale.PaymentMethod, width) + "\n")
	b.WriteString(line + "\n")
	b.WriteString(center(footer, width) + "\n")

	return b.String()
}

// formatMoney renders an amount in VND style with dot thousand separators
// and no decimals.
func formatMoney(amount float64) string {
	n := int64(amount + 0.5)
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var groups []string
	for n > 0 {
		groups = append([]string{fmt.Sprintf("%03d", n%1000)}, groups...)
		n /= 1000
	}
	out := strings.Join(groups, ".")
	out = strings.TrimLeft(out, "0")
	if neg {
		return "-" + out
	}
	return out
}

func center(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return string(runes[:width])
	}
	pad := (width - len(runes)) / 2
	return strings.Repeat(" ", pad) + s
}

// leftRight pads left and right onto one line, collapsing the gap to a
// single space when the two sides do not fit.
func leftRight(left, right string, width int) string {
	l, r := []rune(left), []rune(right)
	gap := width - len(l) - len(r)
	if gap < 1 {
		if len(r) == 0 {
			return clip(left, width)
		}
		gap = 1
	}
	return string(l) + strings.Repeat(" ", gap) + string(r)
}

func clip(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width])
}
