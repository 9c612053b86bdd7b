package handlers

import (
	"errors"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/pkg/cropengine"
	"kartvizit.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CropHandler kırpma aracının tarayıcı olaylarını motor komutlarına bağlar.
type CropHandler struct {
	cropService services.ICropService
}

// NewCropHandler yeni bir CropHandler örneği oluşturur.
func NewCropHandler(crop services.ICropService) *CropHandler {
	return &CropHandler{cropService: crop}
}

// dragRequest fare (clientX/clientY) ya da dokunma (touches) olayı taşır. Koordinatlar
// sayfaya göredir; viewport köşesi left/top ile verilir.
type dragRequest struct {
	cropengine.PointerInput
	cropengine.ViewportRect
	Touches []cropengine.PointerInput `json:"touches"`
}

func (r dragRequest) point() cropengine.Point {
	if p, ok := (cropengine.TouchInput{Touches: r.Touches}).Point(r.ViewportRect); ok {
		return p
	}
	return r.PointerInput.Point(r.ViewportRect)
}

type zoomRequest struct {
	Percent int `json:"percent" form:"percent"`
}

// Load multipart "photo" alanındaki dosyayı motora yükler.
func (h *CropHandler) Load(c *fiber.Ctx) error {
	owner := ownerOf(c)
	fh, err := c.FormFile("photo")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Fotoğraf dosyası bulunamadı.")
	}
	if fh.Size > cropengine.MaxUploadBytes {
		return jsonError(c, fiber.StatusRequestEntityTooLarge, "Fotoğraf dosyası çok büyük.")
	}
	f, err := fh.Open()
	if err != nil {
		configslog.Log.Error("Yüklenen dosya açılamadı", zap.String("owner", owner), zap.Error(err))
		return jsonError(c, fiber.StatusInternalServerError, "Fotoğraf okunamadı.")
	}
	defer f.Close()

	state, err := h.cropService.Load(owner, f)
	if errors.Is(err, cropengine.ErrImageTooLarge) {
		return jsonError(c, fiber.StatusRequestEntityTooLarge, "Fotoğraf çok büyük; en fazla 40 megapiksel yükleyin.")
	}
	if err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "Fotoğraf açılamadı; JPEG, PNG, GIF veya WebP yükleyin.")
	}
	return c.JSON(state)
}

func (h *CropHandler) DragStart(c *fiber.Ctx) error {
	var req dragRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Geçersiz koordinat.")
	}
	return c.JSON(h.cropService.BeginDrag(ownerOf(c), req.point()))
}

func (h *CropHandler) DragMove(c *fiber.Ctx) error {
	var req dragRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Geçersiz koordinat.")
	}
	return c.JSON(h.cropService.Drag(ownerOf(c), req.point()))
}

func (h *CropHandler) DragEnd(c *fiber.Ctx) error {
	return c.JSON(h.cropService.EndDrag(ownerOf(c)))
}

func (h *CropHandler) Zoom(c *fiber.Ctx) error {
	var req zoomRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Geçersiz yakınlaştırma değeri.")
	}
	return c.JSON(h.cropService.Zoom(ownerOf(c), req.Percent))
}

func (h *CropHandler) State(c *fiber.Ctx) error {
	return c.JSON(h.cropService.State(ownerOf(c)))
}

// Apply kırpılmış fotoğrafı data URL olarak döndürür; istemci bunu formun photo
// alanına yazar.
func (h *CropHandler) Apply(c *fiber.Ctx) error {
	photo, err := h.cropService.Apply(ownerOf(c))
	if err != nil {
		if errors.Is(err, cropengine.ErrNoImage) {
			return jsonError(c, fiber.StatusConflict, err.Error())
		}
		configslog.Log.Error("Fotoğraf kırpılamadı", zap.String("owner", ownerOf(c)), zap.Error(err))
		return jsonError(c, fiber.StatusInternalServerError, "Fotoğraf kırpılamadı.")
	}
	return c.JSON(fiber.Map{"photo": photo})
}

func (h *CropHandler) Cancel(c *fiber.Ctx) error {
	h.cropService.Cancel(ownerOf(c))
	return c.SendStatus(fiber.StatusNoContent)
}
