package payment

import "math"

// ToCents converts a major-unit amount to the integer minor units the
// processor expects, rounding half away from zero.
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// SplitAmount divides a total into the platform's cut and the provider's
// remainder. feePercent is a percentage (10 means 10%). The fee is rounded to
// whole cents and the provider share is defined as the exact remainder, so the
// two always sum back to the total.
func SplitAmount(totalCents int64, feePercent float64) (feeCents, providerCents int64) {
	if totalCents <= 0 || feePercent <= 0 {
		return 0, totalCents
	}
	if feePercent >= 100 {
		return totalCents, 0
	}
	feeCents = int64(math.Round(float64(totalCents) * feePercent / 100))
	return feeCents, totalCents - feeCents
}
