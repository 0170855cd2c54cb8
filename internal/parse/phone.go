package parse

import (
	"fmt"
	"regexp"
	"strings"
)

var nonDigitRe = regexp.MustCompile(`\D`)

// Phone normalizes a resident phone number into the digits-only form the
// messaging gateways expect (e.g. "5511999999999"). Accepts formatted
// input like "+55 (11) 99999-9999". A number without a country code is
// assumed to be Brazilian and prefixed with 55.
func Phone(raw string) (string, error) {
	s := nonDigitRe.ReplaceAllString(strings.TrimSpace(raw), "")
	if s == "" {
		return "", fmt.Errorf("phone number is empty: %q", raw)
	}

	// 10-11 digits: local number with area code, missing the country code.
	if len(s) == 10 || len(s) == 11 {
		s = "55" + s
	}

	if len(s) < 12 || len(s) > 15 {
		return "", fmt.Errorf("unable to parse phone number: %q", raw)
	}
	return s, nil
}
