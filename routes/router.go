package routes

import (
	"kartvizit.link/configs/configssession"
	handlers "kartvizit.link/handlers/card"
	"kartvizit.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Dependencies rotaların ihtiyaç duyduğu servisler.
type Dependencies struct {
	Sessions       *session.Store
	CardService    services.ICardService
	ContactService services.IContactService
	ShareService   services.IShareService
	QRService      services.IQRService
	CropService    services.ICropService
	// RequestLogging false ise istek logları yazılmaz (testler için)
	RequestLogging bool
}

// SetupRoutes tüm uygulama rotalarını ve genel middleware'leri ayarlar.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	app.Use(recoverMiddleware.New())
	if deps.RequestLogging {
		app.Use(logger.New())
	}

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Use(configssession.Middleware(deps.Sessions))

	registerCardRoutes(app, deps)
	registerContactRoutes(app, deps)
	registerCropRoutes(app, deps)

	// En sonda, eşleşmeyen tüm rotaları yakalar.
	app.Use(notFoundHandler)
}

func registerCardRoutes(app *fiber.App, deps Dependencies) {
	cardHandler := handlers.NewCardHandler(deps.CardService, deps.ShareService, deps.CropService.Options())
	shareHandler := handlers.NewShareHandler(deps.CardService, deps.ShareService, deps.QRService)

	app.Get("/", cardHandler.ShowCard)
	app.Post("/settings", cardHandler.SaveSettings)
	app.Post("/reset", cardHandler.ResetCard)

	app.Get("/share", shareHandler.ShareLinks)
	app.Get("/share/qr", shareHandler.QRImage)
}

func registerContactRoutes(app *fiber.App, deps Dependencies) {
	contactHandler := handlers.NewContactHandler(deps.ContactService, deps.ShareService)

	contacts := app.Group("/contacts")
	contacts.Get("/", contactHandler.ListContacts)
	contacts.Post("/", contactHandler.AddContact)
	contacts.Get("/:index", contactHandler.ShowContact)
	contacts.Post("/delete/:index", contactHandler.DeleteContact)
	contacts.Delete("/delete/:index", contactHandler.DeleteContact)
}

func registerCropRoutes(app *fiber.App, deps Dependencies) {
	cropHandler := handlers.NewCropHandler(deps.CropService)

	crop := app.Group("/crop")
	crop.Post("/load", cropHandler.Load)
	crop.Post("/drag/start", cropHandler.DragStart)
	crop.Post("/drag/move", cropHandler.DragMove)
	crop.Post("/drag/end", cropHandler.DragEnd)
	crop.Post("/zoom", cropHandler.Zoom)
	crop.Get("/state", cropHandler.State)
	crop.Post("/apply", cropHandler.Apply)
	crop.Post("/cancel", cropHandler.Cancel)
}

func notFoundHandler(c *fiber.Ctx) error {
	accepts := c.Accepts("application/json", "text/html")
	switch accepts {
	case "application/json":
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Kaynak bulunamadı"})
	default:
		return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{"Title": "Sayfa Bulunamadı"}, "layouts/error_layout")
	}
}
