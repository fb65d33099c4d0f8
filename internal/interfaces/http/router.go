package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Concesionarios-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	DealershipUC *usecase.DealershipUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	dealerships := protected.Group("/dealerships")
	handler := NewDealershipHandler(deps.DealershipUC)
	dealerships.Get("/", handler.List)
	dealerships.Post("/", handler.Create)
	// Rutas fijas antes que /:id para que Fiber no las capture como id
	dealerships.Get("/search", handler.Search)
	dealerships.Get("/by-user/:userId", handler.ByUser)
	dealerships.Get("/by-type/:type", handler.ByType)
	dealerships.Get("/by-dev-status/:status", handler.ByDevStatus)
	dealerships.Get("/:id", handler.GetByID)
	dealerships.Put("/:id", handler.Update)
	dealerships.Delete("/:id", handler.Delete)
	dealerships.Get("/:id/metrics", handler.Metrics)
	dealerships.Post("/:id/users", handler.AssignUser)
	dealerships.Delete("/:id/users/:userId", handler.RemoveUser)
}
