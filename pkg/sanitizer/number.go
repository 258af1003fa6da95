package sanitizer

import "math"

// NormalizeMoney rounds to two decimal places.
func NormalizeMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}

func NormalizeMoneyPtr(amount *float64) {
	if amount != nil {
		*amount = NormalizeMoney(*amount)
	}
}
