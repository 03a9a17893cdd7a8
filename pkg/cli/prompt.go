package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/therippa/tesla-bitbar/pkg/owner"
)

const loginAttempts = 3

// PromptLogin interactively collects credentials, exchanges them for an access
// token, and persists the token. Rejected credentials allow up to three
// attempts; a transport failure aborts immediately so the user isn't blamed
// for a network problem.
func PromptLogin(ctx context.Context, store *TokenStore, proxy *owner.ProxyConfig, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)
	for attempt := 0; attempt < loginAttempts; attempt++ {
		fmt.Fprint(out, "\ntesla.com username (will not be saved): ")
		username, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("error reading username: %w", err)
		}
		password, err := readPassword(reader, out, "tesla.com password (will not be saved)")
		if err != nil {
			return err
		}

		fmt.Fprint(out, "Checking...")
		session, err := owner.NewSession(owner.Credentials{
			Email:    strings.TrimSpace(username),
			Password: password,
		}, proxy)
		if err != nil {
			return err
		}
		token, err := session.GetAccessToken(ctx)
		if errors.Is(err, owner.ErrNoToken) {
			fmt.Fprintln(out, " Access denied")
			continue
		}
		if err != nil {
			return err
		}
		if err := store.Save(token); err != nil {
			return err
		}
		fmt.Fprintln(out, " Success!")
		return nil
	}
	return fmt.Errorf("credentials rejected; double-check your username and password, then try again")
}

// readPassword reads a masked password when stdin is a terminal, and a plain
// line otherwise (pipes, tests).
func readPassword(reader *bufio.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprintf(out, "%s: ", prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		if err != nil {
			return "", err
		}
		fmt.Fprintln(out)
		return string(b), nil
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("error reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
