package cli

import (
	"errors"
	"fmt"
	"io"
)

type PassphraseResetter interface {
	ResetPassphrase() (string, error)
}

type PassphraseReplacer interface {
	ReplacePassphrase(next string) error
}

// PassphrasePrompt asks for a secret value without echoing it.
type PassphrasePrompt func(label string) (string, error)

var ErrPassphraseMismatch = errors.New("passphrases do not match")

// ResetPassphrase replaces the owner passphrase with a generated temporary one and
// prints it once. Existing sessions stop validating.
func ResetPassphrase(auth PassphraseResetter, out io.Writer) error {
	temporary, err := auth.ResetPassphrase()
	if err != nil {
		return fmt.Errorf("reset passphrase: %w", err)
	}

	fmt.Fprintln(out, "Passphrase reset successful")
	fmt.Fprintf(out, "Temporary passphrase: %s\n", temporary)
	fmt.Fprintln(out, "Change it after the next login.")
	return nil
}

// ChoosePassphrase prompts twice for a new passphrase and stores it.
func ChoosePassphrase(auth PassphraseReplacer, prompt PassphrasePrompt, out io.Writer) error {
	next, err := prompt("New passphrase: ")
	if err != nil {
		return fmt.Errorf("read passphrase: %w", err)
	}
	confirm, err := prompt("Repeat passphrase: ")
	if err != nil {
		return fmt.Errorf("read passphrase: %w", err)
	}
	if next != confirm {
		return ErrPassphraseMismatch
	}

	if err := auth.ReplacePassphrase(next); err != nil {
		return fmt.Errorf("set passphrase: %w", err)
	}
	fmt.Fprintln(out, "Passphrase updated")
	return nil
}
