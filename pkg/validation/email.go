package validation

import "strings"

// E-posta uzunluk sınırları
const (
	EmailMinLength = 5
	EmailMaxLength = 80
)

// ValidateEmail e-posta adresini kontrol eder ve hata mesajlarını döndürür.
// Boş liste geçerli demektir.
func ValidateEmail(raw string) []string {
	email := strings.TrimSpace(raw)
	var errs []string

	if n := len(email); n < EmailMinLength || n > EmailMaxLength {
		errs = append(errs, "e-posta 5-80 karakter olmalı")
	}
	if strings.Count(email, "@") != 1 {
		// Geri kalan kurallar tek bir @ olduğunu varsayar
		return append(errs, "e-posta tam olarak bir @ içermeli")
	}
	if strings.Contains(email, "..") {
		errs = append(errs, "e-posta ardışık nokta içeremez")
	}
	if strings.HasPrefix(email, ".") || strings.HasSuffix(email, ".") {
		errs = append(errs, "e-posta nokta ile başlayamaz veya bitemez")
	}
	if strings.HasPrefix(email, "-") {
		errs = append(errs, "e-posta tire ile başlayamaz")
	}

	local, domain, _ := strings.Cut(email, "@")
	if local == "" {
		errs = append(errs, "e-postanın @ öncesi boş olamaz")
	}
	errs = append(errs, validateEmailDomain(domain)...)
	return errs
}

func validateEmailDomain(domain string) []string {
	var errs []string
	if !strings.Contains(domain, ".") {
		return append(errs, "alan adı nokta içermeli")
	}
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		errs = append(errs, "alan adı nokta ile başlayamaz veya bitemez")
	}
	if strings.Contains(domain, "..") {
		errs = append(errs, "alan adı ardışık nokta içeremez")
	}
	if strings.ContainsAny(domain, "0123456789") {
		errs = append(errs, "alan adı rakam içeremez")
	}
	labels := strings.Split(domain, ".")
	if len(labels[len(labels)-1]) < 2 {
		errs = append(errs, "üst düzey alan adı en az 2 karakter olmalı")
	}
	return errs
}
