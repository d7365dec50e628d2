package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// TerminalPrompt reads without echo when in is a terminal and falls back to a plain
// line read otherwise, so piped input keeps working.
func TerminalPrompt(in *os.File, out io.Writer) PassphrasePrompt {
	reader := bufio.NewReader(in)
	return func(label string) (string, error) {
		fmt.Fprint(out, label)

		fd := int(in.Fd())
		if term.IsTerminal(fd) {
			secret, err := term.ReadPassword(fd)
			fmt.Fprintln(out)
			if err != nil {
				return "", err
			}
			return string(secret), nil
		}

		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		if err != nil && line == "" {
			return "", io.ErrUnexpectedEOF
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
}
