package services

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/lunamia/internal/models"
	"golang.org/x/crypto/bcrypt"
)

const (
	ownerTokenSubject    = "owner"
	DefaultOwnerTokenTTL = 7 * 24 * time.Hour
)

var (
	ErrPassphraseNotConfigured = errors.New("passphrase not configured")
	ErrPassphraseRequired      = errors.New("passphrase required")
	ErrInvalidPassphrase       = errors.New("invalid passphrase")
	ErrPassphraseUnchanged     = errors.New("new passphrase must differ")
	ErrCredentialLoadFailed    = errors.New("load credential failed")
	ErrCredentialSaveFailed    = errors.New("save credential failed")
	ErrOwnerTokenMissing       = errors.New("missing owner token")
	ErrOwnerTokenInvalid       = errors.New("invalid owner token")
	ErrOwnerTokenExpired       = errors.New("expired owner token")
	ErrOwnerTokenRevoked       = errors.New("owner token revoked")
)

type CredentialRepository interface {
	Load() (models.OwnerCredential, bool, error)
	SavePassphraseHash(hash string) error
}

// OwnerClaims binds a token to the passphrase hash it was issued under, so changing the
// passphrase revokes every outstanding token.
type OwnerClaims struct {
	PassphraseState string `json:"pstate"`
	jwt.RegisteredClaims
}

type OwnerAuthService struct {
	credentials CredentialRepository
	secretKey   []byte
	tokenTTL    time.Duration
}

func NewOwnerAuthService(credentials CredentialRepository, secretKey []byte) *OwnerAuthService {
	return &OwnerAuthService{
		credentials: credentials,
		secretKey:   secretKey,
		tokenTTL:    DefaultOwnerTokenTTL,
	}
}

func (service *OwnerAuthService) loadHash() (string, bool, error) {
	credential, found, err := service.credentials.Load()
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrCredentialLoadFailed, err)
	}
	hash := strings.TrimSpace(credential.PassphraseHash)
	if !found || hash == "" {
		return "", false, nil
	}
	return hash, true, nil
}

func (service *OwnerAuthService) PassphraseConfigured() (bool, error) {
	_, configured, err := service.loadHash()
	return configured, err
}

// Login checks the passphrase and returns a signed owner token.
func (service *OwnerAuthService) Login(passphrase string, now time.Time) (string, time.Time, error) {
	hash, configured, err := service.loadHash()
	if err != nil {
		return "", time.Time{}, err
	}
	if !configured {
		return "", time.Time{}, ErrPassphraseNotConfigured
	}
	if strings.TrimSpace(passphrase) == "" {
		return "", time.Time{}, ErrPassphraseRequired
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(passphrase)) != nil {
		return "", time.Time{}, ErrInvalidPassphrase
	}
	return service.issueToken(hash, now)
}

// SetPassphrase sets the first passphrase, or changes it when current matches.
func (service *OwnerAuthService) SetPassphrase(current string, next string, now time.Time) (string, time.Time, error) {
	hash, configured, err := service.loadHash()
	if err != nil {
		return "", time.Time{}, err
	}
	if configured {
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(current)) != nil {
			return "", time.Time{}, ErrInvalidPassphrase
		}
		if current == next {
			return "", time.Time{}, ErrPassphraseUnchanged
		}
	}

	nextHash, err := service.storePassphrase(next)
	if err != nil {
		return "", time.Time{}, err
	}
	return service.issueToken(nextHash, now)
}

// ResetPassphrase replaces the passphrase with a generated temporary one without
// checking the current value. It is reachable only from the local CLI.
func (service *OwnerAuthService) ResetPassphrase() (string, error) {
	temporary, err := GenerateTemporaryPassphrase()
	if err != nil {
		return "", err
	}
	if _, err := service.storePassphrase(temporary); err != nil {
		return "", err
	}
	return temporary, nil
}

// ReplacePassphrase stores next without checking the current value.
func (service *OwnerAuthService) ReplacePassphrase(next string) error {
	_, err := service.storePassphrase(next)
	return err
}

func (service *OwnerAuthService) storePassphrase(next string) (string, error) {
	if err := ValidatePassphraseStrength(next); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCredentialSaveFailed, err)
	}
	if err := service.credentials.SavePassphraseHash(string(hash)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCredentialSaveFailed, err)
	}
	return string(hash), nil
}

func (service *OwnerAuthService) issueToken(passphraseHash string, now time.Time) (string, time.Time, error) {
	if now.IsZero() {
		now = time.Now()
	}
	expiresAt := now.Add(service.tokenTTL)
	claims := OwnerClaims{
		PassphraseState: PassphraseStateFingerprint(passphraseHash),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ownerTokenSubject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(service.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// VerifyToken validates signature, expiry and that the passphrase has not changed since
// the token was issued.
func (service *OwnerAuthService) VerifyToken(rawToken string, now time.Time) error {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return ErrOwnerTokenMissing
	}
	if now.IsZero() {
		now = time.Now()
	}

	claims := &OwnerClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return service.secretKey, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrOwnerTokenExpired
		}
		return ErrOwnerTokenInvalid
	}
	if !token.Valid || claims.Subject != ownerTokenSubject {
		return ErrOwnerTokenInvalid
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(now) {
		return ErrOwnerTokenExpired
	}

	hash, configured, err := service.loadHash()
	if err != nil {
		return err
	}
	if !configured || !IsPassphraseStateMatch(claims.PassphraseState, hash) {
		return ErrOwnerTokenRevoked
	}
	return nil
}

func PassphraseStateFingerprint(passphraseHash string) string {
	normalizedHash := strings.TrimSpace(passphraseHash)
	if normalizedHash == "" {
		return ""
	}

	sum := sha256.Sum256([]byte("lunamia.owner.passphrase-state.v1:" + normalizedHash))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

func IsPassphraseStateMatch(expected string, passphraseHash string) bool {
	actual := PassphraseStateFingerprint(passphraseHash)
	if strings.TrimSpace(expected) == "" || actual == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(actual)) == 1
}
