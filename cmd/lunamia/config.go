package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/lunamia/internal/services"
)

const minSecretKeyLength = 32

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func resolveDBPath(flagValue string) string {
	if strings.TrimSpace(flagValue) != "" {
		return flagValue
	}
	return getEnv("DB_PATH", filepath.Join("data", "lunamia.db"))
}

func resolveSecretKey() (string, error) {
	secret := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secret == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secret)]; insecure {
		return "", errors.New("SECRET_KEY uses an example placeholder")
	}
	if len(secret) < minSecretKeyLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secret, nil
}

func resolvePort() (string, error) {
	raw := getEnv("PORT", "8080")
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("invalid PORT %q", raw)
	}
	return raw, nil
}

func resolveLocation() *time.Location {
	name := getEnv("TZ", "UTC")
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func resolveCookieSecure() (bool, error) {
	raw := getEnv("COOKIE_SECURE", "false")
	secure, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid COOKIE_SECURE %q", raw)
	}
	return secure, nil
}

func resolveNotifySchedule() (string, error) {
	spec := getEnv("NOTIFY_SCHEDULE", services.DefaultReminderSchedule)
	if err := services.ValidateReminderSchedule(spec); err != nil {
		return "", err
	}
	return spec, nil
}

// resolveTelegram returns ok=false when no bot token is set.
func resolveTelegram() (token string, chatID int64, ok bool, err error) {
	token = getEnv("TELEGRAM_BOT_TOKEN", "")
	if token == "" {
		return "", 0, false, nil
	}
	raw := getEnv("TELEGRAM_CHAT_ID", "")
	chatID, err = strconv.ParseInt(raw, 10, 64)
	if err != nil || chatID == 0 {
		return "", 0, false, fmt.Errorf("invalid TELEGRAM_CHAT_ID %q", raw)
	}
	return token, chatID, true, nil
}
