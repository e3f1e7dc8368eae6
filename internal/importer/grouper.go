package importer

import (
	"strings"

	"go.uber.org/zap"
)

// Unit-of-sale suffixes a storefront export appends to variant names, e.g.
// "Nước suối Lavie - thùng". The vocabulary is closed; anything else after a
// final " - " belongs to the name itself.
var saleSuffixes = map[string]bool{
	"lốc":   true,
	"thùng": true,
	"bịch":  true,
	"hộp":   true,
	"vỉ":    true,
	"cây":   true,
	"bao":   true,
}

// Group is one logical product with its member rows in input order. The
// product-level fields come from the row that created the group.
type Group struct {
	Name        string
	ProductType string
	Description string
	Brand       string
	Tags        string
	Rows        []Row
}

// StripUnitSuffix removes trailing " - <suffix>" unit-of-sale tokens from a
// variant name, case-insensitively, and trims whitespace. Stripping repeats
// until no recognized suffix remains, so the result is a fixed point.
func StripUnitSuffix(name string) string {
	name = strings.TrimSpace(name)
	for {
		i := strings.LastIndex(name, " - ")
		if i < 0 {
			return name
		}
		suffix := strings.ToLower(strings.TrimSpace(name[i+len(" - "):]))
		if !saleSuffixes[suffix] {
			return name
		}
		name = strings.TrimSpace(name[:i])
	}
}

// DeriveProductName returns the grouping key of a row: the explicit product
// name when present, otherwise the variant name with unit suffixes stripped.
// Empty means the row belongs to no group.
func DeriveProductName(row Row) string {
	if row.Name != "" {
		return row.Name
	}
	return StripUnitSuffix(row.VariantName)
}

// GroupRows partitions normalized rows into products. Group keys are compared
// by exact string match; groups keep first-seen order and rows keep input
// order. Rows with no derivable name are dropped with a warning.
func GroupRows(rows []Row, logger *zap.Logger) []Group {
	if logger == nil {
		logger = zap.NewNop()
	}

	var groups []Group
	byName := map[string]int{}

	for i, row := range rows {
		name := DeriveProductName(row)
		if name == "" {
			logger.Warn("skipping row with no derivable product name",
				zap.Int("row", i+1),
				zap.String("sku", row.SKU))
			continue
		}

		idx, ok := byName[name]
		if !ok {
			idx = len(groups)
			byName[name] = idx
			groups = append(groups, Group{
				Name:        name,
				ProductType: row.ProductType,
				Description: row.Description,
				Brand:       row.Brand,
				Tags:        row.Tags,
			})
		}
		groups[idx].Rows = append(groups[idx].Rows, row)
	}
	return groups
}
