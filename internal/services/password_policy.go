package services

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/terraincognita07/lunamia/internal/security"
)

const (
	minPassphraseLength       = 8
	temporaryPassphraseLength = 12
)

var ErrWeakPassphrase = errors.New("weak passphrase")

// passphraseClass is one character family an owner passphrase must contain. The
// alphabet is what generated passphrases draw from; it omits look-alike characters.
type passphraseClass struct {
	name     string
	matches  func(rune) bool
	alphabet string
}

var passphraseClasses = []passphraseClass{
	{name: "an upper-case letter", matches: unicode.IsUpper, alphabet: "ABCDEFGHJKLMNPQRSTUVWXYZ"},
	{name: "a lower-case letter", matches: unicode.IsLower, alphabet: "abcdefghijkmnpqrstuvwxyz"},
	{name: "a digit", matches: unicode.IsDigit, alphabet: "23456789"},
}

// ValidatePassphraseStrength checks the owner passphrase against passphraseClasses. The
// returned error wraps ErrWeakPassphrase and names the first missing requirement.
func ValidatePassphraseStrength(passphrase string) error {
	if len([]rune(passphrase)) < minPassphraseLength {
		return fmt.Errorf("%w: needs at least %d characters", ErrWeakPassphrase, minPassphraseLength)
	}

	for _, class := range passphraseClasses {
		if !containsRune(passphrase, class.matches) {
			return fmt.Errorf("%w: needs %s", ErrWeakPassphrase, class.name)
		}
	}
	return nil
}

// GenerateTemporaryPassphrase draws one character from every class, so the result
// always passes ValidatePassphraseStrength.
func GenerateTemporaryPassphrase() (string, error) {
	alphabets := make([]string, 0, len(passphraseClasses))
	for _, class := range passphraseClasses {
		alphabets = append(alphabets, class.alphabet)
	}
	return security.RandomStringFromClasses(temporaryPassphraseLength, alphabets...)
}

func containsRune(value string, matches func(rune) bool) bool {
	for _, char := range value {
		if matches(char) {
			return true
		}
	}
	return false
}
