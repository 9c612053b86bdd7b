// Package renderer kartviziti şablonların kullandığı görünüm modeline çevirir ve
// Fiber üzerinden sayfa basar.
package renderer

import (
	"html/template"
	"net/url"
	"strconv"
	"strings"

	"kartvizit.link/models"
	"kartvizit.link/pkg/flashmessages"

	"github.com/gofiber/fiber/v2"
)

// Şablonlarda bildirimlerin anahtarları
const (
	FlashSuccessKeyView = "Success"
	FlashErrorKeyView   = "Error"
)

// PortfolioItem kartta gösterilecek tek bir portfolyo bağlantısı.
type PortfolioItem struct {
	Key   string
	Label string
	URL   string
}

// CardView kartvizitin ekranda gösterilen hali. Boş alanlar şablonda gizlenir.
type CardView struct {
	FullName    string
	FirstName   string
	LastName    string
	Initials    string
	JobTitle    string
	Email       string
	EmailHref   template.URL
	Phone       string
	PhoneHref   template.URL
	LinkedIn    string
	Photo       string
	PhotoSrc    template.URL // data: yükleri şablonda filtrelenmesin diye
	HasPhoto    bool
	CardColor   string
	BgColor     string
	TextColor   string
	Portfolio   []PortfolioItem
	LastUpdated string
}

// BuildCardView kartviziti görünüm modeline çevirir. Yalnızca görünür ve dolu portfolyo
// yuvaları listelenir.
func BuildCardView(card models.Card) CardView {
	v := CardView{
		FullName:  card.FullName(),
		FirstName: card.FirstName,
		LastName:  card.LastName,
		Initials:  initials(card.FirstName, card.LastName),
		JobTitle:  card.JobTitle,
		Email:     card.Email,
		Phone:     card.Phone,
		LinkedIn:  card.LinkedIn,
		Photo:     card.Photo,
		CardColor: card.CardColor,
		BgColor:   card.BgColor,
		TextColor: contrastColor(card.CardColor),
		Portfolio: portfolioItems(card.PortfolioLinks, card.PortfolioVisibility),
	}
	if card.Email != "" {
		v.EmailHref = template.URL("mailto:" + url.PathEscape(card.Email))
	}
	if isE164(card.PhoneE164) {
		v.PhoneHref = template.URL("tel:" + card.PhoneE164)
	}
	if src, ok := photoSource(card.Photo); ok {
		v.PhotoSrc = src
		v.HasPhoto = true
	}
	if !card.LastUpdated.IsZero() {
		v.LastUpdated = card.LastUpdated.Format("02.01.2006 15:04")
	}
	return v
}

func portfolioItems(links models.PortfolioLinks, vis models.PortfolioVisibility) []PortfolioItem {
	var items []PortfolioItem
	add := func(show bool, key, label, url string) {
		if show && url != "" {
			items = append(items, PortfolioItem{Key: key, Label: label, URL: url})
		}
	}
	add(vis.Cert, "cert", "Sertifikalar", links.Cert)
	add(vis.Edu, "edu", "Eğitim", links.Edu)
	add(vis.Proj, "proj", "Projeler", links.Proj)
	add(vis.Ref, "ref", "Referanslar", links.Ref)
	add(vis.Resume, "resume-pdf", "Özgeçmiş (PDF)", links.Resume.PDF)
	add(vis.Resume, "resume-docx", "Özgeçmiş (DOCX)", links.Resume.DOCX)
	add(vis.Work, "work", "Çalışmalar", links.Work)
	return items
}

// photoSource yalnızca görsel data: yüklerini ve http(s) adreslerini kabul eder.
func photoSource(photo string) (template.URL, bool) {
	p := strings.TrimSpace(photo)
	lower := strings.ToLower(p)
	if strings.HasPrefix(lower, "data:image/") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "http://") {
		return template.URL(p), true
	}
	return "", false
}

func isE164(phone string) bool {
	if len(phone) < 2 || phone[0] != '+' {
		return false
	}
	for i := 1; i < len(phone); i++ {
		if phone[i] < '0' || phone[i] > '9' {
			return false
		}
	}
	return true
}

func initials(first, last string) string {
	var sb strings.Builder
	for _, part := range []string{first, last} {
		if part = strings.TrimSpace(part); part != "" {
			sb.WriteString(strings.ToUpper(part[:1]))
		}
	}
	return sb.String()
}

// contrastColor arka plan rengine göre okunabilir yazı rengini seçer.
func contrastColor(hex string) string {
	h := strings.TrimPrefix(hex, "#")
	if len(h) != 6 {
		return "#ffffff"
	}
	rgb, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return "#ffffff"
	}
	r, g, b := float64(rgb>>16&0xff), float64(rgb>>8&0xff), float64(rgb&0xff)
	// ITU-R BT.601 parlaklığı
	if 0.299*r+0.587*g+0.114*b > 150 {
		return "#1a1a1a"
	}
	return "#ffffff"
}

// SetFlashMessages bildirimleri şablon verisine ekler.
func SetFlashMessages(data fiber.Map, flash flashmessages.FlashMessages) {
	if flash.Success != "" {
		data[FlashSuccessKeyView] = flash.Success
	}
	if flash.Error != "" {
		data[FlashErrorKeyView] = flash.Error
	}
}

// Render şablonu verilen layout ve HTTP durum koduyla basar.
func Render(c *fiber.Ctx, view, layout string, data fiber.Map, status int) error {
	if data == nil {
		data = fiber.Map{}
	}
	return c.Status(status).Render(view, data, layout)
}
