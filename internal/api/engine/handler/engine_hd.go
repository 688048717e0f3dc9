package engineHandler

import (
	"UnicornGolang/internal/api/engine"
	contextPkg "UnicornGolang/pkg/context"
	"UnicornGolang/pkg/handlerUtil"
	"UnicornGolang/pkg/log"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *EngineHandler) Decide(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing dry-run decision request")

	var req engine.DecideRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("invalid request body"), ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	response, err := h.engineService.Decide(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "engine_decide")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
	}
}

func (h *EngineHandler) CacheStats(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	response, err := h.engineService.CacheStats(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "cache_stats")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
}
