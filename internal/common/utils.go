package common

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Round rounds v to the given number of decimal places using the exact binary
// value, so representable ties go to the even digit (0.125 -> 0.12).
func Round(v float64, places int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// CapitalizeFirst upper-cases the first rune of s and leaves the rest untouched.
func CapitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
