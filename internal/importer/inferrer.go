package importer

import "math"

// ConversionCandidate proposes that one unit of the ToSKU variant equals Rate
// units of the FromSKU variant.
type ConversionCandidate struct {
	FromSKU string `json:"from_sku"`
	ToSKU   string `json:"to_sku"`
	Rate    int    `json:"rate"`
}

// InferConversions scans every row pair (i < j) of one product group and
// proposes a conversion whenever both retail prices are positive, the first
// is strictly lower, and their quotient is an exact integer. Exports encode
// "this is a case of 24" only through such price ratios. Non-integer ratios
// (bulk discounts) never produce a candidate.
func InferConversions(rows []Row) []ConversionCandidate {
	var candidates []ConversionCandidate
	for i := 0; i < len(rows); i++ {
		for j := i + 1; j < len(rows); j++ {
			lo, hi := rows[i], rows[j]
			if lo.RetailPrice <= 0 || hi.RetailPrice <= 0 {
				continue
			}
			if lo.RetailPrice >= hi.RetailPrice {
				continue
			}
			if lo.SKU == "" || hi.SKU == "" || lo.SKU == hi.SKU {
				continue
			}
			if math.Mod(hi.RetailPrice, lo.RetailPrice) != 0 {
				continue
			}
			candidates = append(candidates, ConversionCandidate{
				FromSKU: lo.SKU,
				ToSKU:   hi.SKU,
				Rate:    int(hi.RetailPrice / lo.RetailPrice),
			})
		}
	}
	return candidates
}
