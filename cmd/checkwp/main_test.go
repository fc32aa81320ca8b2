// ABOUTME: Tests for configuration parsing and the top-level run flow.
// ABOUTME: Exercises the exit-code contract end to end using the mock source.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aghstrategies/check-wp-cli/internal/severity"
)

func TestParseConfigDefaults(t *testing.T) {
	t.Setenv("WP_PATH", "")
	t.Setenv("WP_CLI_BIN", "")

	var out bytes.Buffer
	cfg, err := parseConfig([]string{"-p", "/var/www/html"}, &out)
	if err != nil {
		t.Fatalf("parseConfig returned error: %v", err)
	}

	if cfg.Source.InstallPath != "/var/www/html" {
		t.Errorf("install path = %q, want /var/www/html", cfg.Source.InstallPath)
	}
	if cfg.Source.ToolPath != "" {
		t.Errorf("tool path = %q, want empty (PATH lookup)", cfg.Source.ToolPath)
	}
	if cfg.Report.Core.Major != severity.Critical {
		t.Errorf("core major severity = %v, want CRITICAL", cfg.Report.Core.Major)
	}
	if cfg.Report.Core.Minor != severity.Warning {
		t.Errorf("core minor severity = %v, want WARNING", cfg.Report.Core.Minor)
	}
	if cfg.Report.Theme.Enabled || cfg.Report.Plugin.Enabled {
		t.Error("theme/plugin checks enabled by default, want disabled")
	}
	if cfg.Report.IncludeDisabled {
		t.Error("IncludeDisabled = true by default, want false")
	}
	if cfg.Timeout != 0 {
		t.Errorf("timeout = %v, want 0", cfg.Timeout)
	}
}

func TestParseConfigMissingPath(t *testing.T) {
	t.Setenv("WP_PATH", "")

	var out bytes.Buffer
	_, err := parseConfig(nil, &out)
	if err == nil {
		t.Fatal("parseConfig succeeded without -p, want error")
	}

	if !strings.Contains(out.String(), "UNKNOWN") {
		t.Errorf("usage output missing UNKNOWN prefix:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Usage") {
		t.Errorf("usage output missing flag usage:\n%s", out.String())
	}
}

func TestParseConfigCategoryLetters(t *testing.T) {
	t.Setenv("WP_PATH", "")
	t.Setenv("WP_CLI_BIN", "")

	var out bytes.Buffer
	cfg, err := parseConfig([]string{"-p", "/srv/wp", "-T", "w", "-P", "c", "-M", "w", "-m", "c", "-d"}, &out)
	if err != nil {
		t.Fatalf("parseConfig returned error: %v", err)
	}

	if !cfg.Report.Theme.Enabled || cfg.Report.Theme.Severity != severity.Warning {
		t.Errorf("theme policy = %+v, want enabled WARNING", cfg.Report.Theme)
	}
	if !cfg.Report.Plugin.Enabled || cfg.Report.Plugin.Severity != severity.Critical {
		t.Errorf("plugin policy = %+v, want enabled CRITICAL", cfg.Report.Plugin)
	}
	if cfg.Report.Core.Major != severity.Warning || cfg.Report.Core.Minor != severity.Critical {
		t.Errorf("core policy = %+v, want inverted letters", cfg.Report.Core)
	}
	if !cfg.Report.IncludeDisabled {
		t.Error("IncludeDisabled = false with -d, want true")
	}
}

func TestParseConfigInvalidLetter(t *testing.T) {
	t.Setenv("WP_PATH", "")

	tests := []struct {
		name string
		args []string
	}{
		{"bad core major", []string{"-p", "/srv/wp", "-M", "x"}},
		{"bad core minor", []string{"-p", "/srv/wp", "-m", "crit"}},
		{"bad theme letter", []string{"-p", "/srv/wp", "-T", "C"}},
		{"bad plugin letter", []string{"-p", "/srv/wp", "-P", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if _, err := parseConfig(tt.args, &out); err == nil {
				t.Errorf("parseConfig(%v) succeeded, want error", tt.args)
			}
		})
	}
}

func TestParseConfigEnvOverrides(t *testing.T) {
	t.Setenv("WP_PATH", "/env/wp")
	t.Setenv("WP_CLI_BIN", "/env/bin/wp")

	var out bytes.Buffer
	cfg, err := parseConfig([]string{"-p", "/flag/wp"}, &out)
	if err != nil {
		t.Fatalf("parseConfig returned error: %v", err)
	}

	if cfg.Source.InstallPath != "/env/wp" {
		t.Errorf("install path = %q, want env override /env/wp", cfg.Source.InstallPath)
	}
	if cfg.Source.ToolPath != "/env/bin/wp" {
		t.Errorf("tool path = %q, want env override /env/bin/wp", cfg.Source.ToolPath)
	}
}

func TestRunMissingPathExitsUnknown(t *testing.T) {
	t.Setenv("WP_PATH", "")

	var out bytes.Buffer
	code := run(nil, &out)

	if code != 3 {
		t.Errorf("exit code = %d, want 3", code)
	}
	if !strings.Contains(out.String(), "Usage") {
		t.Errorf("output missing usage message:\n%s", out.String())
	}
}

func TestRunMockModeEndToEnd(t *testing.T) {
	t.Setenv("WP_PATH", "")
	t.Setenv("WP_CLI_BIN", "")

	var out bytes.Buffer
	code := run([]string{"-mock", "-p", "/var/www/html", "-P", "c"}, &out)

	// Mock data: one minor core update (WARNING by default) plus two
	// pending plugin updates at CRITICAL.
	if code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}

	output := out.String()
	if !strings.Contains(output, "CRITICAL: Core update, 2 plugins") {
		t.Errorf("output missing summary line:\n%s", output)
	}
	if !strings.Contains(output, "[WARNING] WordPress 6.4.2 available") {
		t.Errorf("output missing core detail line:\n%s", output)
	}
	if !strings.Contains(output, "Plugin updates:") {
		t.Errorf("output missing plugin header:\n%s", output)
	}
}

func TestRunMockModeCleanThemes(t *testing.T) {
	t.Setenv("WP_PATH", "")
	t.Setenv("WP_CLI_BIN", "")

	var out bytes.Buffer
	code := run([]string{"-mock", "-p", "/var/www/html", "-T", "c", "-M", "w"}, &out)

	// Core minor maps to WARNING, themes are clean in mock data.
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}

	output := out.String()
	if !strings.Contains(output, "WARNING: Core update") {
		t.Errorf("output missing summary line:\n%s", output)
	}
	if !strings.Contains(output, "Theme updates:\n[OK] No updates needed") {
		t.Errorf("output missing clean theme section:\n%s", output)
	}
}

func TestPrintFailure(t *testing.T) {
	t.Setenv("WP_PATH", "")
	t.Setenv("WP_CLI_BIN", "")

	var out bytes.Buffer
	code := run([]string{"-p", "/var/www/html", "-x", "/nonexistent/wp", "-t", "1s"}, &out)

	if code != 3 {
		t.Errorf("exit code = %d, want 3", code)
	}
	if !strings.Contains(out.String(), "UNKNOWN: Error executing wp-cli") {
		t.Errorf("output missing failure prefix:\n%s", out.String())
	}
}
