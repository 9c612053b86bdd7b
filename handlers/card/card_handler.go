package handlers

import (
	"errors"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/pkg/cropengine"
	"kartvizit.link/pkg/flashmessages"
	"kartvizit.link/pkg/renderer"
	"kartvizit.link/pkg/validation"
	"kartvizit.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CardHandler kartvizit sayfası ve ayarlar formu isteklerini yönetir.
type CardHandler struct {
	cardService  services.ICardService
	shareService services.IShareService
	crop         cropengine.Options
}

// NewCardHandler yeni bir CardHandler örneği oluşturur.
func NewCardHandler(cards services.ICardService, share services.IShareService, crop cropengine.Options) *CardHandler {
	return &CardHandler{cardService: cards, shareService: share, crop: crop}
}

// ShowCard kök sayfayı gösterir. ?card=<token> varsa paylaşılan kart salt okunur
// gösterilir, yoksa kullanıcının kendi kartı (veya şablon) düzenlenebilir gösterilir.
func (h *CardHandler) ShowCard(c *fiber.Ctx) error {
	state := h.cardService.ResolveView(c.UserContext(), ownerOf(c), c.Query(services.ShareQueryParam))
	if wantsJSON(c) {
		return c.JSON(fiber.Map{
			"viewing":   state.Viewing,
			"isDefault": state.IsDefault,
			"card":      state.Card,
			"crop": fiber.Map{
				"viewportSize":   h.crop.ViewportSize,
				"minZoomPercent": h.crop.MinZoomPercent,
				"maxZoomPercent": h.crop.MaxZoomPercent,
			},
		})
	}
	return h.renderCardPage(c, state, formFromCard(state.Card), nil, fiber.StatusOK)
}

// SaveSettings ayarlar formunu kaydeder. Doğrulama hatalarında hiçbir şey yazılmaz ve
// form hatalarla birlikte 422 ile tekrar gösterilir.
func (h *CardHandler) SaveSettings(c *fiber.Ctx) error {
	owner := ownerOf(c)
	var form validation.CardForm
	if err := c.BodyParser(&form); err != nil {
		configslog.Log.Warn("Ayarlar formu okunamadı", zap.String("owner", owner), zap.Error(err))
		if wantsJSON(c) {
			return jsonError(c, fiber.StatusBadRequest, "Geçersiz form verisi.")
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz form verisi.")
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	if !c.Is("json") {
		form.UncheckedAsHidden()
	}

	card, verrs, err := h.cardService.SaveMyCard(c.UserContext(), owner, form)
	if verrs.HasErrors() {
		if wantsJSON(c) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": verrs})
		}
		state := h.cardService.ResolveView(c.UserContext(), owner, "")
		return h.renderCardPage(c, state, form, verrs, fiber.StatusUnprocessableEntity)
	}
	if err != nil {
		msg := err.Error()
		status := fiber.StatusInternalServerError
		if errors.Is(err, services.ErrStorageFull) {
			status = fiber.StatusInsufficientStorage
		}
		if wantsJSON(c) {
			return jsonError(c, status, msg)
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, msg)
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	if wantsJSON(c) {
		return c.JSON(fiber.Map{"card": card})
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Kartvizit kaydedildi.")
	return c.Redirect("/", fiber.StatusSeeOther)
}

// ResetCard kayıtlı kartviziti siler.
func (h *CardHandler) ResetCard(c *fiber.Ctx) error {
	err := h.cardService.ResetMyCard(c.UserContext(), ownerOf(c))
	if wantsJSON(c) {
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Kartvizit varsayılana döndürüldü.")
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (h *CardHandler) renderCardPage(c *fiber.Ctx, state models.SessionState, form validation.CardForm, verrs validation.ValidationErrors, status int) error {
	data := fiber.Map{
		"Title":        state.Card.FullName(),
		"Card":         renderer.BuildCardView(state.Card),
		"State":        state,
		"ReadOnly":     state.ReadOnly(),
		"Form":         form,
		"Errors":       verrs,
		"CountryCodes": validation.AllowedCountryCodes,
		"Crop":         h.crop,
	}
	if state.Viewing {
		data["SharedToken"] = state.SharedToken
	} else if links, err := h.shareService.Links(state.Card); err == nil {
		data["Share"] = links
	} else {
		configslog.Log.Warn("Paylaşım linki üretilemedi", zap.String("owner", state.Owner), zap.Error(err))
	}

	flash, _ := flashmessages.GetFlashMessages(c)
	renderer.SetFlashMessages(data, flash)
	return renderer.Render(c, "card/index", mainLayout, data, status)
}

// formFromCard kayıtlı kartı ayarlar formuna doldurur.
func formFromCard(card models.Card) validation.CardForm {
	return validation.CardForm{
		FirstName:       card.FirstName,
		LastName:        card.LastName,
		JobTitle:        card.JobTitle,
		Email:           card.Email,
		CountryCode:     card.CountryCode,
		LocalNumber:     card.LocalNumber,
		CardColor:       card.CardColor,
		CardColorPicker: card.CardColor,
		BgColor:         card.BgColor,
		BgColorPicker:   card.BgColor,
		Photo:           card.Photo,
		LinkedIn:        card.LinkedIn,
		Cert:            card.PortfolioLinks.Cert,
		Edu:             card.PortfolioLinks.Edu,
		Proj:            card.PortfolioLinks.Proj,
		Ref:             card.PortfolioLinks.Ref,
		ResumePDF:       card.PortfolioLinks.Resume.PDF,
		ResumeDOCX:      card.PortfolioLinks.Resume.DOCX,
		Work:            card.PortfolioLinks.Work,
		ShowCert:        validation.Checked(card.PortfolioVisibility.Cert),
		ShowEdu:         validation.Checked(card.PortfolioVisibility.Edu),
		ShowProj:        validation.Checked(card.PortfolioVisibility.Proj),
		ShowRef:         validation.Checked(card.PortfolioVisibility.Ref),
		ShowResume:      validation.Checked(card.PortfolioVisibility.Resume),
		ShowWork:        validation.Checked(card.PortfolioVisibility.Work),
	}
}
