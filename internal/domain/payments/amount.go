package payments

import "fmt"

// MinorUnits is an amount expressed in a currency's smallest unit (cents
// for USD/EUR, the whole yen for JPY). Conversion to/from a major-unit
// decimal happens only at the system boundary (request decoding, response
// encoding); every internal computation and every wire transformer works
// in minor units.
type MinorUnits int64

// ToMajor converts to a decimal major-unit amount using the currency's
// exponent (e.g. 1234 minor units at exponent 2 is "12.34").
func (m MinorUnits) ToMajor(c Currency) float64 {
	exp := c.Exponent()
	divisor := 1.0
	for i := 0; i < exp; i++ {
		divisor *= 10
	}
	return float64(m) / divisor
}

// MinorUnitsFromMajor converts a decimal major-unit amount into minor
// units using the currency's exponent, rounding the scaled value half up
// to the nearest minor unit (so 12.34 EUR becomes 1234 despite float
// representation error).
func MinorUnitsFromMajor(major float64, c Currency) MinorUnits {
	exp := c.Exponent()
	multiplier := 1.0
	for i := 0; i < exp; i++ {
		multiplier *= 10
	}
	return MinorUnits(major*multiplier + 0.5)
}

func (m MinorUnits) String() string {
	return fmt.Sprintf("%d", int64(m))
}
