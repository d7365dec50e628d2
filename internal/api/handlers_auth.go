package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/lunamia/internal/services"
)

func (handler *Handler) AuthStatus(c *fiber.Ctx) error {
	configured, err := handler.authService.PassphraseConfigured()
	if err != nil {
		log.Printf("[auth] load credential: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to load credentials")
	}

	authenticated := false
	if configured {
		authenticated = handler.authService.VerifyToken(requestToken(c), handler.now()) == nil
	}
	return c.JSON(fiber.Map{
		"passphrase_configured": configured,
		"authenticated":         authenticated,
	})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	key := clientLimiterKey(c)
	now := handler.now()
	if handler.loginLimiter.blocked(key, now) {
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts")
	}

	input := loginInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	token, expiresAt, err := handler.authService.Login(input.Passphrase, now)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPassphrase) {
			handler.loginLimiter.recordFailure(key, now)
		}
		return authAPIError(c, err)
	}

	handler.loginLimiter.clear(key)
	handler.setAuthCookie(c, token, expiresAt)
	return c.JSON(tokenResponse(token, expiresAt))
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) SetPassphrase(c *fiber.Ctx) error {
	input := passphraseInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if input.ConfirmPassphrase != "" && input.ConfirmPassphrase != input.NewPassphrase {
		return apiError(c, fiber.StatusBadRequest, "passphrases do not match")
	}

	token, expiresAt, err := handler.authService.SetPassphrase(input.CurrentPassphrase, input.NewPassphrase, handler.now())
	if err != nil {
		return authAPIError(c, err)
	}

	handler.setAuthCookie(c, token, expiresAt)
	return c.JSON(tokenResponse(token, expiresAt))
}

func authAPIError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrPassphraseRequired):
		return apiError(c, fiber.StatusBadRequest, "passphrase is required")
	case errors.Is(err, services.ErrWeakPassphrase):
		return apiError(c, fiber.StatusBadRequest, "passphrase is too weak")
	case errors.Is(err, services.ErrPassphraseUnchanged):
		return apiError(c, fiber.StatusBadRequest, "new passphrase must differ")
	case errors.Is(err, services.ErrPassphraseNotConfigured):
		return apiError(c, fiber.StatusConflict, "passphrase is not configured")
	case errors.Is(err, services.ErrInvalidPassphrase):
		return apiError(c, fiber.StatusUnauthorized, "invalid passphrase")
	default:
		log.Printf("[auth] %v", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to update credentials")
	}
}
