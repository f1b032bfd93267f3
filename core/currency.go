package core

import (
	"math"

	"github.com/shopspring/decimal"
)

// ComparisonCurrency is the currency all bids are normalized to before ranking.
const ComparisonCurrency = "USD"

// comparisonScale lifts prices to cents so ranking is not decided by float noise.
var comparisonScale = decimal.NewFromInt(100)

// NormalizePrice returns a value for bid that orders consistently with every other
// bid normalized against the same snapshot. It is not a billable amount.
//
// Missing data never fails:
//   - nil snapshot or no table for the bid currency: the raw price is used
//   - table without a positive finite USD rate: a rate of 1 is used
//   - a NaN or infinite price ranks as zero
func NormalizePrice(bid Bid, snapshot *ConversionSnapshot) decimal.Decimal {
	price := decimalFromFloat(bid.Price)

	if snapshot == nil {
		return price.Mul(comparisonScale)
	}

	rates, ok := snapshot.Conversions[bid.Currency()]
	if !ok {
		return price.Mul(comparisonScale)
	}

	rate := decimal.NewFromInt(1)
	if r, ok := rates[ComparisonCurrency]; ok && r > 0 && !math.IsInf(r, 0) {
		rate = decimal.NewFromFloat(r)
	}

	return price.Mul(rate).Mul(comparisonScale)
}

// decimalFromFloat converts f, mapping NaN and infinities to zero.
func decimalFromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}
