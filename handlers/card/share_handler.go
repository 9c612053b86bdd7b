package handlers

import (
	"errors"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ShareHandler paylaşım linki ve QR görseli isteklerini yönetir.
type ShareHandler struct {
	cardService  services.ICardService
	shareService services.IShareService
	qrService    services.IQRService
}

// NewShareHandler yeni bir ShareHandler örneği oluşturur.
func NewShareHandler(cards services.ICardService, share services.IShareService, qr services.IQRService) *ShareHandler {
	return &ShareHandler{cardService: cards, shareService: share, qrService: qr}
}

// ShareLinks kullanıcının kendi kartı için iki kanalın linklerini döndürür.
func (h *ShareHandler) ShareLinks(c *fiber.Ctx) error {
	links, err := h.links(c)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Paylaşım linki oluşturulamadı.")
	}
	return c.JSON(links)
}

// QRImage QR görselini dış servisten alıp iletir. Kart çok büyükse 413, servis
// zaman aşımına uğrarsa 504 ile düz link döner.
func (h *ShareHandler) QRImage(c *fiber.Ctx) error {
	links, err := h.links(c)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Paylaşım linki oluşturulamadı.")
	}
	if !links.QRAvailable {
		return jsonError(c, fiber.StatusRequestEntityTooLarge, services.ErrQRTooLarge.Error(), fiber.Map{"link": links.Link})
	}

	img, err := h.qrService.Fetch(c.UserContext(), links.QRLink)
	if err != nil {
		status := fiber.StatusBadGateway
		if errors.Is(err, services.ErrQRUnavailable) {
			status = fiber.StatusGatewayTimeout
		}
		return jsonError(c, status, services.ErrQRUnavailable.Error(), fiber.Map{"link": links.Link})
	}

	c.Set(fiber.HeaderContentType, img.ContentType)
	c.Set(fiber.HeaderCacheControl, "private, max-age=3600")
	return c.Send(img.Data)
}

func (h *ShareHandler) links(c *fiber.Ctx) (*services.ShareLinks, error) {
	owner := ownerOf(c)
	card, _, err := h.cardService.LoadMyCard(c.UserContext(), owner)
	if err != nil {
		// Okuma hatasında şablon paylaşılır
		configslog.Log.Warn("Paylaşım için kartvizit okunamadı", zap.String("owner", owner), zap.Error(err))
	}
	links, err := h.shareService.Links(card)
	if err != nil {
		configslog.Log.Error("Paylaşım linki oluşturulamadı", zap.String("owner", owner), zap.Error(err))
		return nil, err
	}
	return links, nil
}
