// utils/validation.go
package utils

import (
	"regexp"
	"strings"
	"unicode"
)

var phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

// OnlyDigits strips everything but 0-9.
func OnlyDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// NormalizeCPF returns the digits of a CPF typed with or without punctuation.
func NormalizeCPF(cpf string) string {
	return OnlyDigits(cpf)
}

// ValidCPF checks the 11-digit shape of an already normalized CPF.
func ValidCPF(cpf string) bool {
	if len(cpf) != 11 {
		return false
	}
	for _, r := range cpf {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
	return phoneRegex.MatchString(cleaned)
}
