package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Card kullanıcının dijital kartvizitidir. JSON alan adları hem depolama hem paylaşım
// token'ı için kullanılır.
type Card struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	JobTitle    string `json:"jobTitle"`
	Email       string `json:"email"`
	CountryCode string `json:"countryCode"`
	LocalNumber string `json:"localNumber"`
	Phone       string `json:"phone"`     // Görüntülenen biçim, örn. +1 (555) 123-4567
	PhoneE164   string `json:"phoneE164"` // tel: linkleri için

	CardColor string `json:"cardColor"`
	BgColor   string `json:"bgColor"`
	Photo     string `json:"photo"` // Uzak URL veya data: yükü
	LinkedIn  string `json:"linkedin"`

	PortfolioLinks      PortfolioLinks      `json:"portfolioLinks"`
	PortfolioVisibility PortfolioVisibility `json:"portfolioVisibility"`

	LastUpdated time.Time `json:"lastUpdated"`
}

// FullName ad ve soyadı birleştirir.
func (c Card) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// UnmarshalJSON portfolioVisibility nesnesi hiç yoksa tüm yuvaları görünür kabul eder.
func (c *Card) UnmarshalJSON(data []byte) error {
	type plain Card
	p := plain{PortfolioVisibility: DefaultVisibility()}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = Card(p)
	return nil
}

// HasEmbeddedPhoto fotoğraf alanı gömülü bir raster yükü (data: URI) taşıyorsa true döner.
func (c Card) HasEmbeddedPhoto() bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(c.Photo)), "data:")
}

// PortfolioLinks kartvizitteki altı portfolyo yuvası.
type PortfolioLinks struct {
	Cert   string      `json:"cert"`
	Edu    string      `json:"edu"`
	Proj   string      `json:"proj"`
	Ref    string      `json:"ref"`
	Resume ResumeLinks `json:"resume"`
	Work   string      `json:"work"`
}

// ResumeLinks özgeçmişin iki yuvalı halidir.
//
// Eski kayıtlarda resume tek bir string olarak tutuluyordu. JSON çözümleme her iki biçimi
// de kabul eder ve daima iki yuvalı hale getirir; yazarken yalnızca nesne biçimi kullanılır.
type ResumeLinks struct {
	PDF  string `json:"pdf"`
	DOCX string `json:"docx"`
}

// IsEmpty iki yuva da boşsa true döner.
func (r ResumeLinks) IsEmpty() bool {
	return r.PDF == "" && r.DOCX == ""
}

// UnmarshalJSON eski string biçimini ve yeni nesne biçimini kabul eder.
func (r *ResumeLinks) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*r = ResumeLinks{}
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var legacy string
		if err := json.Unmarshal(data, &legacy); err != nil {
			return err
		}
		*r = ResumeFromLegacy(legacy)
		return nil
	}

	type modern ResumeLinks // UnmarshalJSON döngüsünü kırmak için
	var m modern
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("resume: beklenmeyen biçim: %w", err)
	}
	*r = ResumeLinks(m)
	return nil
}

// ResumeFromLegacy tek string'lik eski özgeçmiş alanını iki yuvaya taşır.
// .doc/.docx ile biten adresler docx yuvasına, diğerleri pdf yuvasına gider.
func ResumeFromLegacy(legacy string) ResumeLinks {
	legacy = strings.TrimSpace(legacy)
	if legacy == "" {
		return ResumeLinks{}
	}
	path := strings.ToLower(legacy)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if strings.HasSuffix(path, ".docx") || strings.HasSuffix(path, ".doc") {
		return ResumeLinks{DOCX: legacy}
	}
	return ResumeLinks{PDF: legacy}
}

// PortfolioVisibility her portfolyo yuvasının gösterilip gösterilmeyeceği.
type PortfolioVisibility struct {
	Cert   bool `json:"cert"`
	Edu    bool `json:"edu"`
	Proj   bool `json:"proj"`
	Ref    bool `json:"ref"`
	Resume bool `json:"resume"`
	Work   bool `json:"work"`
}

// DefaultVisibility tüm yuvaları görünür yapar.
func DefaultVisibility() PortfolioVisibility {
	return PortfolioVisibility{Cert: true, Edu: true, Proj: true, Ref: true, Resume: true, Work: true}
}

// UnmarshalJSON eksik anahtarları true kabul eder.
func (v *PortfolioVisibility) UnmarshalJSON(data []byte) error {
	type plain PortfolioVisibility
	p := plain(DefaultVisibility())
	if strings.TrimSpace(string(data)) == "null" {
		*v = PortfolioVisibility(p)
		return nil
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*v = PortfolioVisibility(p)
	return nil
}

// DefaultCard kayıtlı kartvizit yokken gösterilen yerleşik şablondur.
func DefaultCard() Card {
	return Card{
		FirstName:   "Jane",
		LastName:    "Doe",
		JobTitle:    "Software Engineer",
		Email:       "jane.doe@example.com",
		CountryCode: "1",
		LocalNumber: "5551234567",
		Phone:       "+1 (555) 123-4567",
		PhoneE164:   "+15551234567",
		CardColor:   "#1e3a5f",
		BgColor:     "#f4f6f8",
		Photo:       "",
		LinkedIn:    "https://www.linkedin.com/",
		PortfolioLinks: PortfolioLinks{
			Resume: ResumeLinks{},
		},
		PortfolioVisibility: DefaultVisibility(),
	}
}
