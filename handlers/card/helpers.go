package handlers

import (
	"kartvizit.link/configs/configssession"
	"kartvizit.link/pkg/renderer"

	"github.com/gofiber/fiber/v2"
)

const (
	mainLayout  = "layouts/main_layout"
	errorLayout = "layouts/error_layout"
)

// wantsJSON istemci HTML yerine JSON bekliyorsa true döner.
func wantsJSON(c *fiber.Ctx) bool {
	return c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON
}

func ownerOf(c *fiber.Ctx) string {
	return configssession.OwnerID(c)
}

func jsonError(c *fiber.Ctx, status int, message string, extra ...fiber.Map) error {
	body := fiber.Map{"error": message}
	for _, m := range extra {
		for k, v := range m {
			body[k] = v
		}
	}
	return c.Status(status).JSON(body)
}

// renderNotFound standart 404 sayfasını basar.
func renderNotFound(c *fiber.Ctx, message string) error {
	if wantsJSON(c) {
		return jsonError(c, fiber.StatusNotFound, message)
	}
	return renderer.Render(c, "errors/404", errorLayout, fiber.Map{
		"Title":   "Bulunamadı",
		"Message": message,
	}, fiber.StatusNotFound)
}

// renderError standart 500 sayfasını basar.
func renderError(c *fiber.Ctx, message string) error {
	if wantsJSON(c) {
		return jsonError(c, fiber.StatusInternalServerError, message)
	}
	return renderer.Render(c, "errors/500", errorLayout, fiber.Map{
		"Title":   "Sunucu Hatası",
		"Message": message,
	}, fiber.StatusInternalServerError)
}
