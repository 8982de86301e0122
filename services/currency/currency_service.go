package currency

import (
	"github.com/shopspring/decimal"
)

// minorUnitExponents maps ISO codes to the number of decimal places in
// their minor unit. Anything not listed uses the common exponent of 2.
var minorUnitExponents = map[string]int32{
	"BHD": 3,
	"JOD": 3,
	"JPY": 0,
	"KRW": 0,
	"KWD": 3,
	"VND": 0,
}

// IsValidCode reports whether the string looks like an ISO 4217 code:
// exactly three uppercase ASCII letters. The ledger accepts any
// well-formed code; it does not maintain a closed currency list.
func IsValidCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}

// MinorToDecimal renders a minor-unit integer amount as a major-unit
// decimal for API display, e.g. (USD, 6000) -> 60.00. Internal
// arithmetic always stays in minor-unit integers.
func MinorToDecimal(code string, amountMinor int64) decimal.Decimal {
	exp, ok := minorUnitExponents[code]
	if !ok {
		exp = 2
	}
	return decimal.New(amountMinor, -exp)
}
