package api

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	authCookieName     = "lunamia_auth"
	languageCookieName = "lunamia_lang"
	contextLanguageKey = "current_language"
	contextAuthKey     = "authenticated"
)

func currentLanguage(c *fiber.Ctx) string {
	language, _ := c.Locals(contextLanguageKey).(string)
	return language
}

// LanguageMiddleware picks ?lang=, then the language cookie, then Accept-Language.
func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	language := handler.i18n.DetectFromAcceptLanguage(c.Get("Accept-Language"))
	if cookieLanguage := c.Cookies(languageCookieName); cookieLanguage != "" {
		language = handler.i18n.NormalizeLanguage(cookieLanguage)
	}
	if queryLanguage := c.Query("lang"); queryLanguage != "" {
		language = handler.i18n.NormalizeLanguage(queryLanguage)
		handler.setLanguageCookie(c, language)
	}

	c.Locals(contextLanguageKey, language)
	return c.Next()
}

func (handler *Handler) setLanguageCookie(c *fiber.Ctx, language string) {
	c.Cookie(&fiber.Cookie{
		Name:     languageCookieName,
		Value:    language,
		Path:     "/",
		HTTPOnly: false,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().AddDate(1, 0, 0),
	})
}

// AuthRequired lets every request through while no passphrase is configured. Once one
// exists, a valid owner token is required from the cookie or a bearer header.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	configured, err := handler.authService.PassphraseConfigured()
	if err != nil {
		log.Printf("[auth] load credential: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to load credentials")
	}
	if !configured {
		c.Locals(contextAuthKey, false)
		return c.Next()
	}

	if err := handler.authService.VerifyToken(requestToken(c), handler.now()); err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	c.Locals(contextAuthKey, true)
	return c.Next()
}

func requestToken(c *fiber.Ctx) string {
	if header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); header != "" {
		if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	return strings.TrimSpace(c.Cookies(authCookieName))
}
