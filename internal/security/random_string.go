package security

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
	errTooManyClasses = errors.New("length is shorter than the number of character classes")
)

// RandomString returns a cryptographically secure, unbiased string of the requested length.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if len(alphabet) == 0 {
		return "", errEmptyAlphabet
	}

	value := make([]byte, length)
	for index := range value {
		position, err := randomIndex(len(alphabet))
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position]
	}

	return string(value), nil
}

// RandomStringFromClasses draws from the union of classes and guarantees at least one
// character of every class, at a random position.
func RandomStringFromClasses(length int, classes ...string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if len(classes) > length {
		return "", errTooManyClasses
	}
	for _, class := range classes {
		if class == "" {
			return "", errEmptyAlphabet
		}
	}

	value, err := RandomString(length, strings.Join(classes, ""))
	if err != nil {
		return "", err
	}
	result := []byte(value)

	positions := make([]int, length)
	for index := range positions {
		positions[index] = index
	}
	for index, class := range classes {
		swap, err := randomIndex(length - index)
		if err != nil {
			return "", err
		}
		positions[index], positions[index+swap] = positions[index+swap], positions[index]

		pick, err := randomIndex(len(class))
		if err != nil {
			return "", err
		}
		result[positions[index]] = class[pick]
	}
	return string(result), nil
}

func randomIndex(limit int) (int, error) {
	position, err := rand.Int(rand.Reader, big.NewInt(int64(limit)))
	if err != nil {
		return 0, err
	}
	return int(position.Int64()), nil
}
