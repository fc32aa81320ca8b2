// ABOUTME: Entry point for the check-wp-cli monitoring probe.
// ABOUTME: Parses configuration, runs the update check, and maps the result to a Nagios exit code.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/aghstrategies/check-wp-cli/internal/metrics"
	"github.com/aghstrategies/check-wp-cli/internal/report"
	"github.com/aghstrategies/check-wp-cli/internal/severity"
	"github.com/aghstrategies/check-wp-cli/internal/source"
	"github.com/aghstrategies/check-wp-cli/internal/source/wpcli"

	"github.com/sirupsen/logrus"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run is the single place that turns results and failures into output and
// an exit code; everything below it returns errors instead of exiting.
func run(args []string, out io.Writer) int {
	config, err := parseConfig(args, out)
	if err != nil {
		return severity.Unknown.Code()
	}

	logger := newLogger()

	src, err := source.New(&config.Source, logger)
	if err != nil {
		printFailure(out, err)
		return severity.Unknown.Code()
	}

	ctx := context.Background()
	if config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.Timeout)
		defer cancel()
	}

	rep, err := report.NewRunner(src, &config.Report, logger).Run(ctx)
	if err != nil {
		printFailure(out, err)
		return severity.Unknown.Code()
	}

	fmt.Fprintln(out, rep.Render())

	if config.MetricsFile != "" {
		exporter := metrics.NewExporter(logger)
		exporter.Record(rep)
		if err := exporter.WriteFile(config.MetricsFile); err != nil {
			logger.WithError(err).Warn("Failed to write metrics file")
		}
	}

	return rep.ExitCode()
}

// config aggregates everything one run needs.
type config struct {
	Source      source.Config
	Report      report.Config
	Timeout     time.Duration
	MetricsFile string
}

func parseConfig(args []string, out io.Writer) (*config, error) {
	fs := flag.NewFlagSet("check_wp_cli", flag.ContinueOnError)
	fs.SetOutput(out)

	var (
		installPath  = fs.String("p", "", "WordPress install path (required)")
		toolPath     = fs.String("x", "", "path to the wp-cli executable (default: resolve 'wp' via PATH)")
		majorLetter  = fs.String("M", "c", "severity for core major updates: w or c")
		minorLetter  = fs.String("m", "w", "severity for core minor updates: w or c")
		themeLetter  = fs.String("T", "", "enable theme checks with the given severity: w or c")
		pluginLetter = fs.String("P", "", "enable plugin checks with the given severity: w or c")
		disabled     = fs.Bool("d", false, "include disabled plugins and themes in the scan")
		timeout      = fs.Duration("t", 0, "timeout for wp-cli invocations, 0 disables")
		mockMode     = fs.Bool("mock", false, "use canned data instead of invoking wp-cli (for testing)")
		metricsFile  = fs.String("metrics-file", "", "write Prometheus textfile-collector metrics to this path")
	)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Override with environment variables if set
	if envPath := os.Getenv("WP_PATH"); envPath != "" {
		*installPath = envPath
	}
	if envBin := os.Getenv("WP_CLI_BIN"); envBin != "" {
		*toolPath = envBin
	}

	if *installPath == "" {
		fmt.Fprintln(out, "UNKNOWN: WordPress install path (-p) is required")
		fs.Usage()
		return nil, errors.New("missing install path")
	}

	cfg := &config{
		Source: source.Config{
			InstallPath: *installPath,
			ToolPath:    *toolPath,
			MockMode:    *mockMode,
		},
		Report:      report.Config{IncludeDisabled: *disabled},
		Timeout:     *timeout,
		MetricsFile: *metricsFile,
	}

	major, err := severity.ParseLetter(*majorLetter)
	if err != nil {
		fmt.Fprintf(out, "UNKNOWN: -M: %v\n", err)
		fs.Usage()
		return nil, err
	}
	minor, err := severity.ParseLetter(*minorLetter)
	if err != nil {
		fmt.Fprintf(out, "UNKNOWN: -m: %v\n", err)
		fs.Usage()
		return nil, err
	}
	cfg.Report.Core = severity.CorePolicy{Major: major, Minor: minor}

	if *themeLetter != "" {
		sev, err := severity.ParseLetter(*themeLetter)
		if err != nil {
			fmt.Fprintf(out, "UNKNOWN: -T: %v\n", err)
			fs.Usage()
			return nil, err
		}
		cfg.Report.Theme = report.ExtensionPolicy{Enabled: true, Severity: sev}
	}
	if *pluginLetter != "" {
		sev, err := severity.ParseLetter(*pluginLetter)
		if err != nil {
			fmt.Fprintf(out, "UNKNOWN: -P: %v\n", err)
			fs.Usage()
			return nil, err
		}
		cfg.Report.Plugin = report.ExtensionPolicy{Enabled: true, Severity: sev}
	}

	return cfg, nil
}

// printFailure reports a collection failure in the fixed format the
// monitoring framework expects, followed by the raw diagnostics.
func printFailure(out io.Writer, err error) {
	var execErr *wpcli.ExecFailure
	if errors.As(err, &execErr) {
		fmt.Fprintln(out, "UNKNOWN: Error executing "+execErr.Tool)
		for _, line := range execErr.Output {
			fmt.Fprintln(out, line)
		}
		return
	}

	fmt.Fprintln(out, "UNKNOWN: Error executing "+wpcli.DefaultTool)
	fmt.Fprintln(out, err.Error())
}

// newLogger sets up structured logging on stderr; stdout is reserved for
// the plugin output consumed by the monitoring framework.
func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.ErrorLevel)

	if os.Getenv("LOG_LEVEL") == "debug" {
		logger.SetLevel(logrus.DebugLevel)
	}

	return logger
}
