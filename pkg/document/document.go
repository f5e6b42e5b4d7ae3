// Package document validates the 11-digit national ID carried by users.
// The number ends in two check digits, each a weighted sum mod 11.
package document

import "regexp"

var nonDigits = regexp.MustCompile(`[^\d]+`)

// Valid reports whether s is a well-formed national ID. Punctuation is
// stripped before checking, so both "097.621.546-22" and "09762154622"
// are accepted. Sequences of eleven identical digits pass the checksum
// but are not real documents and are rejected outright.
func Valid(s string) bool {
	s = nonDigits.ReplaceAllString(s, "")
	if len(s) != 11 || allSame(s) {
		return false
	}
	if checkDigit(s, 9, 10) != int(s[9]-'0') {
		return false
	}
	return checkDigit(s, 10, 11) == int(s[10]-'0')
}

func allSame(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// checkDigit computes the verification digit over the first n digits,
// weighting the first digit by w and descending.
func checkDigit(s string, n, w int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += int(s[i]-'0') * (w - i)
	}
	rest := (sum * 10) % 11
	if rest == 10 || rest == 11 {
		rest = 0
	}
	return rest
}
