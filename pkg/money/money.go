// Package money converts major-unit prices (e.g. 199.99 USD) into minor
// currency units (cents) so order arithmetic stays in integers.
package money

import "math"

// ToMinorUnits converts a major-unit amount to minor units (×100).
//
// Ties are broken round-half-to-even (banker's rounding): 0.125 → 12,
// 0.135 → 14. This matches the upstream pricing pipeline; changing the
// tie-break changes cents-level output on half-cent prices.
func ToMinorUnits(major float64) int64 {
	return int64(math.RoundToEven(major * 100))
}
