package validation

import (
	"fmt"
	"slices"
)

// LocalNumberLength yerel numaranın tam uzunluğu.
const LocalNumberLength = 10

// AllowedCountryCodes kabul edilen ülke kodları.
var AllowedCountryCodes = []string{"1", "44", "61", "81", "91", "353"}

// ValidatePhone ülke kodu ve yerel numarayı kontrol eder. Boş liste geçerli demektir.
func ValidatePhone(countryCode, localNumber string) []string {
	var errs []string
	if countryCode == "" {
		errs = append(errs, "ülke kodu seçilmeli")
	} else if !slices.Contains(AllowedCountryCodes, countryCode) {
		errs = append(errs, fmt.Sprintf("desteklenmeyen ülke kodu: +%s", countryCode))
	}
	if len(localNumber) != LocalNumberLength || !isDigits(localNumber) {
		errs = append(errs, "telefon numarası tam 10 rakam olmalı")
	}
	return errs
}

// E164 ülke kodu ve yerel numarayı +<kod><numara> biçiminde birleştirir.
func E164(countryCode, localNumber string) string {
	return "+" + countryCode + localNumber
}

// PrettyPhone numarayı ekranda gösterilecek biçime getirir.
// Kuzey Amerika numaraları (+1) parantezli yazılır.
func PrettyPhone(countryCode, localNumber string) string {
	if len(localNumber) != LocalNumberLength {
		return E164(countryCode, localNumber)
	}
	if countryCode == "1" {
		return fmt.Sprintf("+1 (%s) %s-%s", localNumber[:3], localNumber[3:6], localNumber[6:])
	}
	return fmt.Sprintf("+%s %s %s %s", countryCode, localNumber[:3], localNumber[3:6], localNumber[6:])
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
