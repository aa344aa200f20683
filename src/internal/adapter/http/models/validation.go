package models

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	idNumberPattern      = regexp.MustCompile(`^\d{13}$`)
	accountNumberPattern = regexp.MustCompile(`^\d{10,12}$`)
	numericPattern       = regexp.MustCompile(`^\d+$`)
	currencyPattern      = regexp.MustCompile(`^[A-Z]{3}$`)
	swiftCodePattern     = regexp.MustCompile(`^[A-Z0-9]{8,11}$`)
)

const minPasswordLength = 6

// isBlank reports whether any text field is empty after trimming. Passwords
// are checked with isEmpty instead, since whitespace is a valid password.
func isBlank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

func charCount(s string) int {
	return utf8.RuneCountInString(s)
}

func isEmpty(values ...string) bool {
	for _, v := range values {
		if v == "" {
			return true
		}
	}
	return false
}
