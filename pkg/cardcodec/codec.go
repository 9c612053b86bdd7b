// Package cardcodec kartvizitin paylaşılabilir alt kümesini URL'de taşınabilen bir token'a
// çevirir ve geri çözer.
//
// Token, projeksiyonun JSON hali üzerinde dolgusuz URL-güvenli base64'tür; sorgu dizgesinde
// ek yüzde kodlaması gerektiren karakter içermez. Çözümleme, tarayıcıdaki btoa ile
// üretilmiş eski token'ları da (standart alfabe, dolgu, sorgu taşımasında + -> boşluk) kabul eder.
package cardcodec

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"kartvizit.link/models"
)

// MaxVisualCodeLength QR kodu denenmeden önce token'ın ulaşabileceği en fazla uzunluk.
const MaxVisualCodeLength = 4000

// Channel token'ın taşınacağı kanal.
type Channel int

const (
	// ChannelLink düz paylaşım linki; fotoğraf olduğu gibi taşınır.
	ChannelLink Channel = iota
	// ChannelVisualCode QR kodu; gömülü (data:) fotoğraflar çıkarılır.
	ChannelVisualCode
)

func (ch Channel) String() string {
	switch ch {
	case ChannelLink:
		return "link"
	case ChannelVisualCode:
		return "qr"
	default:
		return fmt.Sprintf("channel(%d)", int(ch))
	}
}

// DecodeError bozuk bir token çözülmeye çalışıldığında döner.
type DecodeError struct {
	Stage string // "base64", "json" veya "record"
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("kartvizit token'ı çözülemedi (%s): %v", e.Stage, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// shareable token'a yazılan alanlardır. countryCode, localNumber ve lastUpdated taşınmaz.
type shareable struct {
	FirstName           string                     `json:"firstName"`
	LastName            string                     `json:"lastName"`
	JobTitle            string                     `json:"jobTitle"`
	Email               string                     `json:"email"`
	Phone               string                     `json:"phone"`
	PhoneE164           string                     `json:"phoneE164"`
	LinkedIn            string                     `json:"linkedin"`
	CardColor           string                     `json:"cardColor"`
	BgColor             string                     `json:"bgColor"`
	Photo               string                     `json:"photo"`
	PortfolioLinks      models.PortfolioLinks      `json:"portfolioLinks"`
	PortfolioVisibility models.PortfolioVisibility `json:"portfolioVisibility"`
}

func toShareable(c models.Card) shareable {
	return shareable{
		FirstName:           c.FirstName,
		LastName:            c.LastName,
		JobTitle:            c.JobTitle,
		Email:               c.Email,
		Phone:               c.Phone,
		PhoneE164:           c.PhoneE164,
		LinkedIn:            c.LinkedIn,
		CardColor:           c.CardColor,
		BgColor:             c.BgColor,
		Photo:               c.Photo,
		PortfolioLinks:      c.PortfolioLinks,
		PortfolioVisibility: c.PortfolioVisibility,
	}
}

func (s shareable) card() models.Card {
	return models.Card{
		FirstName:           s.FirstName,
		LastName:            s.LastName,
		JobTitle:            s.JobTitle,
		Email:               s.Email,
		Phone:               s.Phone,
		PhoneE164:           s.PhoneE164,
		LinkedIn:            s.LinkedIn,
		CardColor:           s.CardColor,
		BgColor:             s.BgColor,
		Photo:               s.Photo,
		PortfolioLinks:      s.PortfolioLinks,
		PortfolioVisibility: s.PortfolioVisibility,
	}
}

// Project kartvizitin paylaşılabilir halini döndürür. Decode(Encode(c)) bu değere eşittir.
func Project(card models.Card) models.Card {
	return toShareable(card).card()
}

// ProjectFor kanal kuralını da uygular: QR kanalında gömülü fotoğraf boşaltılır.
func ProjectFor(card models.Card, ch Channel) models.Card {
	p := Project(card)
	if ch == ChannelVisualCode && p.HasEmbeddedPhoto() {
		p.Photo = ""
	}
	return p
}

// Encode kartviziti verilen kanal için token'a çevirir.
func Encode(card models.Card, ch Channel) (string, error) {
	payload, err := json.Marshal(toShareable(ProjectFor(card, ch)))
	if err != nil {
		return "", fmt.Errorf("kartvizit serileştirilemedi: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(payload), nil
}

// Decode token'ı kartvizite çevirir. Hatalı token'da *DecodeError döner.
func Decode(token string) (models.Card, error) {
	raw, err := decodeBase64(token)
	if err != nil {
		return models.Card{}, &DecodeError{Stage: "base64", Err: err}
	}

	if !isJSONObject(raw) {
		return models.Card{}, &DecodeError{Stage: "json", Err: errNotObject}
	}
	s := shareable{PortfolioVisibility: models.DefaultVisibility()}
	if err := json.Unmarshal(raw, &s); err != nil {
		return models.Card{}, &DecodeError{Stage: "json", Err: err}
	}
	if strings.TrimSpace(s.FirstName) == "" || strings.TrimSpace(s.LastName) == "" {
		return models.Card{}, &DecodeError{Stage: "record", Err: errMissingName}
	}
	return s.card(), nil
}

var (
	errNotObject   = errors.New("token bir kartvizit kaydı değil")
	errMissingName = errors.New("ad veya soyad eksik")
)

// isJSONObject ilk anlamlı karakterin '{' olup olmadığına bakar.
func isJSONObject(raw []byte) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b == '{'
	}
	return false
}

// FitsVisualCode token'ın QR kodu için yeterince kısa olup olmadığını söyler.
func FitsVisualCode(token string) bool {
	return len(token) <= MaxVisualCodeLength
}

// decodeBase64 iki alfabeyi de, dolgulu ve dolgusuz biçimi de kabul eder.
func decodeBase64(token string) ([]byte, error) {
	t := strings.TrimSpace(token)
	if t == "" {
		return nil, fmt.Errorf("boş token")
	}
	// Sorgu dizgesinde + boşluğa dönüşmüş olabilir
	t = strings.ReplaceAll(t, " ", "+")
	t = strings.NewReplacer("-", "+", "_", "/").Replace(t)
	t = strings.TrimRight(t, "=")
	return base64.RawStdEncoding.DecodeString(t)
}
