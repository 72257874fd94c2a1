package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"shade-store/internal/integrations/checkout"
	"shade-store/internal/integrations/email"
	"shade-store/internal/shades/cart"
	"shade-store/internal/shades/wizard"
	"shade-store/internal/storefront/repository"
	"shade-store/internal/storefront/service"
	"shade-store/internal/visualizer/session"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// ============================================================
// Error Responses
// ============================================================

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrCartNotFound),
		errors.Is(err, service.ErrWizardNotFound),
		errors.Is(err, cart.ErrItemNotFound),
		errors.Is(err, repository.ErrNotFound),
		errors.Is(err, session.ErrPhotoNotFound):
		return http.StatusNotFound
	case errors.Is(err, cart.ErrIncomplete),
		errors.Is(err, wizard.ErrUnknownStep):
		return http.StatusUnprocessableEntity
	case errors.Is(err, wizard.ErrStepHidden),
		errors.Is(err, wizard.ErrNotOpen),
		errors.Is(err, session.ErrNoPhoto),
		errors.Is(err, session.ErrNoContainer),
		errors.Is(err, session.ErrWrongMode),
		errors.Is(err, session.ErrNotDragging),
		errors.Is(err, session.ErrEmptySelection),
		errors.Is(err, session.ErrSuperseded):
		return http.StatusConflict
	case errors.Is(err, checkout.ErrNotConfigured),
		errors.Is(err, email.ErrNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError maps err to a status and writes {"error": ...}. Unexpected
// errors are logged and hidden from the client.
func respondError(c fiber.Ctx, log *zap.Logger, err error) error {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))
		msg = "internal error"
	}
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

func badRequest(c fiber.Ctx, msg string) error {
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

// decodeBody reads a JSON body into v.
func decodeBody(c fiber.Ctx, v any) error {
	if len(c.Body()) == 0 {
		return errors.New("empty body")
	}
	if err := json.Unmarshal(c.Body(), v); err != nil {
		return errors.New("invalid json")
	}
	return nil
}
