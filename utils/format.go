package utils

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatCPF renders 11 digits as 000.000.000-00; anything else is returned as digits.
func FormatCPF(cpf string) string {
	d := OnlyDigits(cpf)
	if len(d) != 11 {
		return d
	}
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
}

// FormatPhone renders an 11-digit mobile number as (00) 00000-0000.
func FormatPhone(phone string) string {
	d := OnlyDigits(phone)
	if len(d) != 11 {
		return d
	}
	return "(" + d[0:2] + ") " + d[2:7] + "-" + d[7:11]
}

// FormatCurrency renders a value as R$ 1.234,56.
func FormatCurrency(v decimal.Decimal) string {
	s := v.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := "R$ " + b.String() + "," + frac
	if neg {
		out = "-" + out
	}
	return out
}

// FormatDate renders a day as dd/mm/yyyy; the zero time renders empty.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

// OrDash returns the string if non-empty, otherwise returns "-".
func OrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
