package services

import (
	"net/url"
	"strings"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/pkg/cardcodec"

	"go.uber.org/zap"
)

// ShareQueryParam paylaşım linkinde token'ı taşıyan sorgu parametresi.
const ShareQueryParam = "card"

// ShareLinks bir kartvizitin iki kanal için paylaşım adresleri.
type ShareLinks struct {
	Link        string `json:"link"`              // Fotoğraf dahil düz link
	QRLink      string `json:"qrLink"`            // Gömülü fotoğrafsız link
	QRImage     string `json:"qrImage,omitempty"` // QR servisinin görsel adresi
	QRAvailable bool   `json:"qrAvailable"`
}

// IShareService paylaşım linklerini üretir.
type IShareService interface {
	Links(card models.Card) (*ShareLinks, error)
	ShareURL(token string) string
}

// ShareService IShareService arayüzünü uygular.
type ShareService struct {
	baseURL string
	qr      IQRService
}

// NewShareService yeni bir ShareService oluşturur.
func NewShareService(baseURL string, qr IQRService) IShareService {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &ShareService{baseURL: baseURL, qr: qr}
}

// ShareURL <kök>?card=<token> adresini döndürür.
func (s *ShareService) ShareURL(token string) string {
	return s.baseURL + "?" + url.Values{ShareQueryParam: {token}}.Encode()
}

// Links her iki kanalı kodlar. QR token'ı sınırı aşarsa QRAvailable false olur ve
// yalnızca link gösterilmelidir.
func (s *ShareService) Links(card models.Card) (*ShareLinks, error) {
	linkToken, err := cardcodec.Encode(card, cardcodec.ChannelLink)
	if err != nil {
		return nil, err
	}
	qrToken, err := cardcodec.Encode(card, cardcodec.ChannelVisualCode)
	if err != nil {
		return nil, err
	}

	links := &ShareLinks{
		Link:   s.ShareURL(linkToken),
		QRLink: s.ShareURL(qrToken),
	}
	if cardcodec.FitsVisualCode(qrToken) {
		links.QRAvailable = true
		links.QRImage = s.qr.ImageURL(links.QRLink)
	} else {
		configslog.Log.Info("Kartvizit QR kodu için çok büyük, düz link kullanılacak",
			zap.Int("token_len", len(qrToken)), zap.Int("max", cardcodec.MaxVisualCodeLength))
	}
	return links, nil
}

var _ IShareService = (*ShareService)(nil)
