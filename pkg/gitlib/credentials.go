package gitlib

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	git2go "github.com/libgit2/git2go/v34"
	"golang.org/x/term"
)

// sshUserFallback is used when an ssh remote URL carries no username.
const sshUserFallback = "git"

// Prompter asks the user for an HTTPS username and personal access token.
type Prompter interface {
	PromptToken(url string) (username, token string, err error)
}

// Credentials resolves authentication for remote operations. SSH remotes
// authenticate through the ssh agent; HTTPS remotes prompt once for a
// username and personal access token and reuse the answer for the rest of
// the run.
type Credentials struct {
	prompter Prompter

	asked    bool
	username string
	token    string
}

// NewCredentials creates a credential resolver backed by the given
// prompter. A nil prompter disables interactive HTTPS authentication.
func NewCredentials(prompter Prompter) *Credentials {
	return &Credentials{prompter: prompter}
}

// WriteAccess reports whether the invoking credentials can plausibly push
// to url. This is a capability probe, queried once before attempting a
// push: ssh remotes need a reachable ssh agent, HTTPS remotes need a token
// (prompting for one if not yet asked). Local paths are always writable.
func (c *Credentials) WriteAccess(url string) bool {
	switch {
	case isSSHURL(url):
		return os.Getenv("SSH_AUTH_SOCK") != ""
	case isHTTPURL(url):
		c.ensureToken(url)

		return c.token != ""
	default:
		return true
	}
}

// remoteCallbacks returns the libgit2 callbacks wired to this resolver.
func (c *Credentials) remoteCallbacks() git2go.RemoteCallbacks {
	if c == nil {
		return git2go.RemoteCallbacks{}
	}

	return git2go.RemoteCallbacks{
		CredentialsCallback: c.credentialsCallback,
	}
}

// credentialsCallback answers libgit2 credential requests.
func (c *Credentials) credentialsCallback(
	url, usernameFromURL string, allowed git2go.CredentialType,
) (*git2go.Credential, error) {
	if allowed&git2go.CredentialTypeSSHKey != 0 {
		username := usernameFromURL
		if username == "" {
			username = sshUserFallback
		}

		return git2go.NewCredentialSSHKeyFromAgent(username)
	}

	if allowed&git2go.CredentialTypeUserpassPlaintext != 0 {
		c.ensureToken(url)

		if c.token == "" {
			return nil, &GitError{Op: "credentials", Err: errNoToken}
		}

		username := c.username
		if username == "" {
			username = usernameFromURL
		}

		return git2go.NewCredentialUserpassPlaintext(username, c.token)
	}

	return git2go.NewCredentialDefault()
}

// ensureToken prompts for a personal access token at most once.
func (c *Credentials) ensureToken(url string) {
	if c.asked || c.prompter == nil {
		return
	}

	c.asked = true

	username, token, err := c.prompter.PromptToken(url)
	if err != nil {
		return
	}

	c.username = username
	c.token = token
}

// isSSHURL reports whether url names an ssh remote.
func isSSHURL(url string) bool {
	return strings.HasPrefix(url, "ssh://") || strings.HasPrefix(url, "git@")
}

// isHTTPURL reports whether url names an http(s) remote.
func isHTTPURL(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}

// TerminalPrompter reads a username and personal access token from the
// controlling terminal. The token is read without echo when stdin is a
// terminal.
type TerminalPrompter struct {
	In  *os.File
	Out io.Writer
}

// NewTerminalPrompter creates a prompter on stdin/stderr.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{In: os.Stdin, Out: os.Stderr}
}

// PromptToken implements Prompter.
func (p *TerminalPrompter) PromptToken(url string) (string, string, error) {
	fmt.Fprintf(p.Out, "Authentication required for %s\n", url)
	fmt.Fprint(p.Out, "Username: ")

	reader := bufio.NewReader(p.In)

	username, err := reader.ReadString('\n')
	if err != nil {
		return "", "", fmt.Errorf("read username: %w", err)
	}

	fmt.Fprint(p.Out, "Personal access token: ")

	token, err := p.readSecret(reader)
	if err != nil {
		return "", "", fmt.Errorf("read token: %w", err)
	}

	fmt.Fprintln(p.Out)

	return strings.TrimSpace(username), strings.TrimSpace(token), nil
}

// readSecret reads the token without echo when possible.
func (p *TerminalPrompter) readSecret(reader *bufio.Reader) (string, error) {
	fd := int(p.In.Fd())
	if term.IsTerminal(fd) {
		secret, err := term.ReadPassword(fd)
		if err != nil {
			return "", err
		}

		return string(secret), nil
	}

	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}

	return line, nil
}
