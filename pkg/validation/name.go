// Package validation kartvizit formundaki alanların kurallarını içerir. Fonksiyonlar
// yan etkisizdir; sadece normalize eder veya hata bildirir.
package validation

import (
	"errors"
	"strings"
)

// İsim uzunluk sınırları (normalize edildikten sonra)
const (
	NameMinLength = 1
	NameMaxLength = 30
)

var (
	ErrNameLength  = errors.New("isim 1-30 karakter olmalı")
	ErrNameCharset = errors.New("isim yalnızca harf, kesme işareti ve tire içerebilir")
)

// Konumdan bağımsız olarak küçük harf kalan isim ekleri.
var nameParticles = map[string]struct{}{
	"da": {}, "das": {}, "de": {}, "del": {}, "della": {}, "den": {}, "der": {},
	"di": {}, "dos": {}, "du": {}, "la": {}, "le": {}, "ter": {}, "van": {}, "von": {},
}

// FormatName ham ismi normalize eder ve büyük harf kurallarını uygular.
//
// Ad için tüm boşluklar silinir, soyad için ardışık boşluklar teke indirilir.
// Tire, kesme işareti ve boşlukla ayrılan her parçanın ilk harfi büyütülür; isim ekleri
// (van, de, ...) küçük kalır.
func FormatName(raw string, isLastName bool) (string, error) {
	sep := ""
	if isLastName {
		sep = " "
	}
	name := strings.Join(strings.Fields(raw), sep)

	if n := len(name); n < NameMinLength || n > NameMaxLength {
		return "", ErrNameLength
	}
	for i := 0; i < len(name); i++ {
		if !isNameChar(name[i], isLastName) {
			return "", ErrNameCharset
		}
	}
	return capitalizeParts(name), nil
}

func isNameChar(b byte, allowSpace bool) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b == '\'', b == '-':
		return true
	case b == ' ':
		return allowSpace
	}
	return false
}

func capitalizeParts(name string) string {
	var sb strings.Builder
	sb.Grow(len(name))
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		sb.WriteString(capitalizeWord(name[start:end]))
		start = -1
	}
	for i := 0; i < len(name); i++ {
		switch name[i] {
		case ' ', '-', '\'':
			flush(i)
			sb.WriteByte(name[i])
		default:
			if start < 0 {
				start = i
			}
		}
	}
	flush(len(name))
	return sb.String()
}

func capitalizeWord(word string) string {
	lower := strings.ToLower(word)
	if _, ok := nameParticles[lower]; ok {
		return lower
	}
	return strings.ToUpper(lower[:1]) + lower[1:]
}
