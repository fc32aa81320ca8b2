// ABOUTME: Real update source that shells out to the wp-cli tool.
// ABOUTME: Builds wp-cli invocations and parses their JSON output into update records.

package wpcli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/aghstrategies/check-wp-cli/internal/types"

	"github.com/sirupsen/logrus"
)

// DefaultTool is the executable name resolved via PATH when no explicit
// wp-cli path is configured.
const DefaultTool = "wp"

// ExecFailure signals that a wp-cli invocation could not produce usable
// data: the process failed to start, exited non-zero, or emitted output
// that is not the expected JSON. Output holds the raw diagnostic lines.
type ExecFailure struct {
	Tool   string
	Output []string
}

func (f *ExecFailure) Error() string {
	return fmt.Sprintf("executing %s failed: %s", f.Tool, strings.Join(f.Output, " / "))
}

// runner executes a command and returns its combined output. Tests
// substitute this to avoid spawning processes.
type runner func(ctx context.Context, bin string, args []string) ([]byte, error)

// Source queries a WordPress install through wp-cli.
type Source struct {
	installPath string
	bin         string
	run         runner
	logger      *logrus.Logger
}

// NewSource creates a wp-cli backed source. An empty toolPath resolves the
// default tool name through PATH; a failed lookup is reported as an
// ExecFailure so the caller exits UNKNOWN without querying anything.
func NewSource(installPath, toolPath string, logger *logrus.Logger) (*Source, error) {
	bin := toolPath
	if bin == "" {
		resolved, err := exec.LookPath(DefaultTool)
		if err != nil {
			return nil, &ExecFailure{Tool: DefaultTool, Output: []string{err.Error()}}
		}
		bin = resolved
	}

	return &Source{
		installPath: installPath,
		bin:         bin,
		run:         runCommand,
		logger:      logger,
	}, nil
}

// Name returns the source name.
func (s *Source) Name() string {
	return "wp-cli"
}

// CoreUpdates runs `wp core check-update` and returns the pending core
// updates.
func (s *Source) CoreUpdates(ctx context.Context) ([]types.CoreUpdate, error) {
	args := []string{"core", "check-update", "--format=json", "--path=" + s.installPath}

	out, err := s.invoke(ctx, args)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(out)
	// When core is current wp-cli prints a success notice instead of an
	// empty JSON array.
	if len(trimmed) == 0 || bytes.HasPrefix(trimmed, []byte("Success:")) {
		return nil, nil
	}

	var items []types.CoreUpdate
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, s.failure(out, fmt.Errorf("parsing core check-update output: %w", err))
	}

	s.logger.WithField("pending", len(items)).Debug("Collected core updates")
	return items, nil
}

// ExtensionUpdates runs `wp plugin list` or `wp theme list` and returns
// the raw records, including ones without a pending update.
func (s *Source) ExtensionUpdates(ctx context.Context, cat types.Category, includeDisabled bool) ([]types.ExtensionUpdate, error) {
	args := []string{string(cat), "list", "--fields=title,version,update_version", "--format=json", "--path=" + s.installPath}
	if !includeDisabled {
		args = append(args, "--status=active")
	}

	out, err := s.invoke(ctx, args)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(out)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var items []types.ExtensionUpdate
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, s.failure(out, fmt.Errorf("parsing %s list output: %w", cat, err))
	}

	s.logger.WithFields(logrus.Fields{
		"category": cat,
		"records":  len(items),
	}).Debug("Collected extension records")
	return items, nil
}

func (s *Source) invoke(ctx context.Context, args []string) ([]byte, error) {
	s.logger.WithFields(logrus.Fields{
		"bin":  s.bin,
		"args": strings.Join(args, " "),
	}).Debug("Invoking wp-cli")

	out, err := s.run(ctx, s.bin, args)
	if err != nil {
		return nil, s.failure(out, err)
	}
	return out, nil
}

// failure wraps raw command output and an error into an ExecFailure,
// keeping only non-empty lines as diagnostics.
func (s *Source) failure(out []byte, err error) *ExecFailure {
	var lines []string
	for _, line := range strings.Split(string(out), "\n") {
		if line = strings.TrimRight(line, "\r"); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		lines = []string{err.Error()}
	}
	return &ExecFailure{Tool: "wp-cli", Output: lines}
}

func runCommand(ctx context.Context, bin string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()
	return buf.Bytes(), err
}
