package source

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"strings"
)

// allowedSchemes lists the URL schemes accepted for git remotes. The
// scp-like git@host:path shorthand is handled separately.
var allowedSchemes = map[string]bool{
	"https": true,
	"http":  true,
	"git":   true,
	"ssh":   true,
	"file":  true,
}

// IsRemote reports whether location names a git remote rather than a
// local directory.
func IsRemote(location string) bool {
	return validateGitURL(location) == nil
}

func validateGitURL(raw string) error {
	if raw == "" {
		return errors.New("empty location")
	}
	if strings.HasPrefix(raw, "git@") {
		if !strings.Contains(raw, ":") {
			return fmt.Errorf("malformed scp-style URL %q", raw)
		}
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if !allowedSchemes[u.Scheme] {
		return fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}
	if u.Scheme != "file" && u.Host == "" {
		return fmt.Errorf("URL %q has no host", raw)
	}
	return nil
}

// runGit executes one git command and returns its combined output. dir
// is the working directory; empty means inherit.
func runGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	if dir != "" {
		cmd.Dir = dir
	}
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %w: %s", args[0], err, firstLine(string(out)))
	}
	return string(out), nil
}

// remoteHead returns the commit id the remote currently serves for ref.
// An empty answer means the ref does not exist there.
func remoteHead(ctx context.Context, location, ref string) (string, error) {
	out, err := runGit(ctx, "", "ls-remote", location, ref)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, location, err)
	}
	fields := strings.Fields(out)
	if len(fields) == 0 {
		return "", fmt.Errorf("%w: ref %q not found on %s", ErrInvalidRevision, ref, location)
	}
	return fields[0], nil
}

// clone performs a shallow single-branch clone of ref into dest.
func clone(ctx context.Context, location, ref, dest string) error {
	args := []string{"clone", "--branch", ref, "--single-branch", "--depth", "1", location, dest}
	if _, err := runGit(ctx, "", args...); err != nil {
		if isUnknownRef(err) {
			return fmt.Errorf("%w: ref %q on %s: %w", ErrInvalidRevision, ref, location, err)
		}
		return fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, location, err)
	}
	return nil
}

// head returns the commit id checked out in dir.
func head(ctx context.Context, dir string) (string, error) {
	out, err := runGit(ctx, dir, "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	return strings.TrimSpace(out), nil
}

func isUnknownRef(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found in upstream") ||
		strings.Contains(msg, "remote branch") && strings.Contains(msg, "not found")
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
