package testable

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// MockCommandExecutor is a test double for CommandExecutor. Commands are
// replaced with "sh -c" stand-ins that succeed or fail as configured.
type MockCommandExecutor struct {
	// LookPathErr, when non-nil, is returned by LookPath for any file.
	LookPathErr error

	// Missing lists executables that LookPath reports as not found.
	Missing map[string]bool

	// CommandErrors maps a command key ("xdg-open http://...") to a stderr
	// message; matching commands exit non-zero.
	CommandErrors map[string]string

	// Calls records the command keys that were invoked.
	Calls []string
}

// LookPath returns "/usr/bin/<file>" unless configured otherwise.
func (m *MockCommandExecutor) LookPath(file string) (string, error) {
	if m.LookPathErr != nil {
		return "", m.LookPathErr
	}
	if m.Missing[file] {
		return "", &exec.Error{Name: file, Err: exec.ErrNotFound}
	}
	return "/usr/bin/" + file, nil
}

// CommandContext records the call and returns a stand-in command.
func (m *MockCommandExecutor) CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	key := strings.TrimSpace(name + " " + strings.Join(args, " "))
	m.Calls = append(m.Calls, key)

	if errMsg, ok := m.CommandErrors[key]; ok {
		return exec.CommandContext(ctx, "sh", "-c", fmt.Sprintf("echo %q >&2; exit 1", errMsg)) //nolint:gosec // test helper
	}
	return exec.CommandContext(ctx, "sh", "-c", "exit 0")
}

// Compile-time interface check.
var _ CommandExecutor = (*MockCommandExecutor)(nil)
