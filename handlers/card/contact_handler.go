package handlers

import (
	"errors"
	"strings"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/pkg/flashmessages"
	"kartvizit.link/pkg/renderer"
	"kartvizit.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ContactHandler kayıtlı kişi isteklerini yönetir.
type ContactHandler struct {
	contactService services.IContactService
	shareService   services.IShareService
}

// NewContactHandler yeni bir ContactHandler örneği oluşturur.
func NewContactHandler(contacts services.IContactService, share services.IShareService) *ContactHandler {
	return &ContactHandler{contactService: contacts, shareService: share}
}

type contactRow struct {
	Index   int
	SavedAt string
	Card    renderer.CardView
}

// ListContacts kayıtlı kişileri listeler.
func (h *ContactHandler) ListContacts(c *fiber.Ctx) error {
	contacts, err := h.contactService.List(c.UserContext(), ownerOf(c))
	if err != nil {
		return renderError(c, err.Error())
	}
	if wantsJSON(c) {
		return c.JSON(fiber.Map{"contacts": contacts})
	}

	rows := make([]contactRow, 0, len(contacts))
	for i, contact := range contacts {
		rows = append(rows, contactRow{
			Index:   i,
			SavedAt: contact.SavedAt.Format("02.01.2006 15:04"),
			Card:    renderer.BuildCardView(contact.Card),
		})
	}
	data := fiber.Map{"Title": "Kayıtlı Kişiler", "Contacts": rows}
	flash, _ := flashmessages.GetFlashMessages(c)
	renderer.SetFlashMessages(data, flash)
	return renderer.Render(c, "contacts/index", mainLayout, data, fiber.StatusOK)
}

// ShowContact index'teki kişiyi salt okunur kart olarak gösterir.
func (h *ContactHandler) ShowContact(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return renderNotFound(c, "Kişi bulunamadı.")
	}
	contact, err := h.contactService.Get(c.UserContext(), ownerOf(c), index)
	if err != nil {
		if errors.Is(err, services.ErrContactNotFound) {
			return renderNotFound(c, err.Error())
		}
		return renderError(c, err.Error())
	}
	if wantsJSON(c) {
		return c.JSON(contact)
	}

	state := models.SessionState{Owner: ownerOf(c), Viewing: true, Card: contact.Card}
	return renderer.Render(c, "card/index", mainLayout, fiber.Map{
		"Title":        contact.FullName(),
		"Card":         renderer.BuildCardView(contact.Card),
		"State":        state,
		"ReadOnly":     true,
		"ContactIndex": index,
	}, fiber.StatusOK)
}

// AddContact paylaşım token'ı ile gelen kartı kişilere ekler.
func (h *ContactHandler) AddContact(c *fiber.Ctx) error {
	var body struct {
		Token string `json:"token" form:"token"`
	}
	if err := c.BodyParser(&body); err != nil || strings.TrimSpace(body.Token) == "" {
		return h.contactResult(c, "", fiber.StatusBadRequest, services.ErrContactInvalid.Error(), nil)
	}

	contact, err := h.contactService.AddFromToken(c.UserContext(), ownerOf(c), body.Token)
	if err != nil {
		status := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, services.ErrDuplicateContact):
			status = fiber.StatusConflict
		case errors.Is(err, services.ErrContactInvalid):
			status = fiber.StatusBadRequest
		case errors.Is(err, services.ErrStorageFull):
			status = fiber.StatusInsufficientStorage
		}
		return h.contactResult(c, body.Token, status, err.Error(), nil)
	}
	return h.contactResult(c, body.Token, fiber.StatusCreated, "", contact)
}

// DeleteContact index'teki kişiyi siler.
func (h *ContactHandler) DeleteContact(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err == nil {
		err = h.contactService.Remove(c.UserContext(), ownerOf(c), index)
	} else {
		err = services.ErrContactNotFound
	}

	if wantsJSON(c) || c.Method() == fiber.MethodDelete {
		switch {
		case err == nil:
			return c.SendStatus(fiber.StatusNoContent)
		case errors.Is(err, services.ErrContactNotFound):
			return jsonError(c, fiber.StatusNotFound, err.Error())
		default:
			return jsonError(c, fiber.StatusInternalServerError, err.Error())
		}
	}
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Kişi silindi.")
	}
	return c.Redirect("/contacts", fiber.StatusSeeOther)
}

func (h *ContactHandler) contactResult(c *fiber.Ctx, token string, status int, errMsg string, contact *models.Contact) error {
	if wantsJSON(c) {
		if errMsg != "" {
			return jsonError(c, status, errMsg)
		}
		return c.Status(status).JSON(contact)
	}

	back := "/contacts"
	if token != "" {
		back = h.shareService.ShareURL(token)
	}
	if errMsg != "" {
		configslog.Log.Info("Kişi eklenemedi", zap.String("owner", ownerOf(c)), zap.String("reason", errMsg))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		return c.Redirect(back, fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, contact.FullName()+" kişilere eklendi.")
	return c.Redirect("/contacts", fiber.StatusSeeOther)
}
