package engineHandler

import (
	engineService "UnicornGolang/internal/api/engine/service"
	"UnicornGolang/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type EngineHandler struct {
	log           *logrus.Logger
	validator     *validator.Validate
	middleware    middleware.Middleware
	engineService engineService.IEngineService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	es engineService.IEngineService,
) *EngineHandler {
	return &EngineHandler{
		log:           log,
		validator:     validate,
		middleware:    middleware,
		engineService: es,
	}
}

func (h *EngineHandler) Start(srv fiber.Router) {
	eng := srv.Group("/engine")

	// Ops endpoints, operator token required.
	eng.Use(h.middleware.NewTokenMiddleware)

	eng.Post("/decide", h.Decide)
	eng.Get("/cache/stats", h.CacheStats)
}
