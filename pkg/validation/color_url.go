package validation

import "strings"

// ValidateColor kullanıcının yazdığı hex değeri geçerliyse onu, değilse renk seçicinin
// değerini, o da geçersizse hardDefault'u döndürür. Sonuç #rrggbb (küçük harf) biçimindedir.
func ValidateColor(text, pickerFallback, hardDefault string) string {
	if c, ok := NormalizeHexColor(text); ok {
		return c
	}
	if c, ok := NormalizeHexColor(pickerFallback); ok {
		return c
	}
	if c, ok := NormalizeHexColor(hardDefault); ok {
		return c
	}
	return hardDefault
}

// NormalizeHexColor "#AABBCC" veya "aabbcc" biçimini "#aabbcc" yapar.
func NormalizeHexColor(raw string) (string, bool) {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "#")
	if len(s) != 6 {
		return "", false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
			return "", false
		}
	}
	return "#" + strings.ToLower(s), true
}

// NormalizeURL boş değeri boş bırakır, şeması olmayan adreslerin başına https:// ekler.
func NormalizeURL(raw string) string {
	u := strings.TrimSpace(raw)
	if u == "" {
		return ""
	}
	lower := strings.ToLower(u)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return u
	}
	return "https://" + u
}
