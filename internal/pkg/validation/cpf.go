package validation

import (
	"regexp"
)

var nonDigits = regexp.MustCompile(`[^0-9]`)

// NormalizeCPF strips punctuation from a CPF, keeping digits only.
// "123.456.789-09" becomes "12345678909".
func NormalizeCPF(cpf string) string {
	return nonDigits.ReplaceAllString(cpf, "")
}

// NormalizePhone strips punctuation from a phone number, keeping digits only.
func NormalizePhone(phone string) string {
	return nonDigits.ReplaceAllString(phone, "")
}

// IsValidCPF validates a CPF using the Brazilian check-digit algorithm.
// Input may be formatted or digits-only.
func IsValidCPF(cpf string) bool {
	cpf = NormalizeCPF(cpf)

	if len(cpf) != 11 {
		return false
	}

	// CPFs with all digits equal pass the check-digit math but are invalid
	allEqual := true
	for i := 1; i < 11; i++ {
		if cpf[i] != cpf[0] {
			allEqual = false
			break
		}
	}
	if allEqual {
		return false
	}

	// Verify both check digits
	for t := 9; t < 11; t++ {
		d := 0
		for c := 0; c < t; c++ {
			d += int(cpf[c]-'0') * ((t + 1) - c)
		}
		d = ((10 * d) % 11) % 10
		if int(cpf[t]-'0') != d {
			return false
		}
	}

	return true
}
