package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/collisionmap/collisionmap/internal/testable"
)

// cmdExec launches the browser. Tests swap it for a mock.
var cmdExec testable.CommandExecutor = testable.DefaultExecutor()

// browserCommand returns the platform command that opens url.
func browserCommand(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}

// openBrowser opens url with the platform's default handler.
func openBrowser(ctx context.Context, ex testable.CommandExecutor, goos, url string) error {
	name, args := browserCommand(goos, url)
	if _, err := ex.LookPath(name); err != nil {
		return fmt.Errorf("find %s: %w", name, err)
	}
	out, err := ex.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
