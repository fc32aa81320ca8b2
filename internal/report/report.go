// ABOUTME: Report builder orchestrating the per-category update checks.
// ABOUTME: Walks categories in fixed order, classifies, and assembles the plugin output.

package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/aghstrategies/check-wp-cli/internal/classify"
	"github.com/aghstrategies/check-wp-cli/internal/severity"
	"github.com/aghstrategies/check-wp-cli/internal/types"

	"github.com/sirupsen/logrus"
)

// UpdateSource abstracts the collaborator that queries the WordPress
// install and returns pending-update records.
type UpdateSource interface {
	Name() string
	CoreUpdates(ctx context.Context) ([]types.CoreUpdate, error)
	ExtensionUpdates(ctx context.Context, cat types.Category, includeDisabled bool) ([]types.ExtensionUpdate, error)
}

// ExtensionPolicy configures one of the optional theme/plugin categories.
// A disabled category is never queried.
type ExtensionPolicy struct {
	Enabled  bool
	Severity severity.Severity
}

// Config holds the per-category severity policies for one run.
type Config struct {
	Core            severity.CorePolicy
	Theme           ExtensionPolicy
	Plugin          ExtensionPolicy
	IncludeDisabled bool
}

type categorySpec struct {
	id     types.Category
	policy ExtensionPolicy // unused for core
}

// categories returns the enabled categories in their fixed declaration
// order: core always first, then theme, then plugin.
func (c *Config) categories() []categorySpec {
	specs := []categorySpec{{id: types.CategoryCore}}
	if c.Theme.Enabled {
		specs = append(specs, categorySpec{id: types.CategoryTheme, policy: c.Theme})
	}
	if c.Plugin.Enabled {
		specs = append(specs, categorySpec{id: types.CategoryPlugin, policy: c.Plugin})
	}
	return specs
}

// CategoryResult is one classified category plus its identity.
type CategoryResult struct {
	Category types.Category
	classify.Result
}

// Report is a completed run: every enabled category's result and the
// overall severity, the ordinal maximum across categories.
type Report struct {
	Overall    severity.Severity
	Categories []CategoryResult
}

// Runner drives a single check run against an update source.
type Runner struct {
	source UpdateSource
	config *Config
	logger *logrus.Logger
}

// NewRunner creates a runner for the given source and policy configuration.
func NewRunner(source UpdateSource, config *Config, logger *logrus.Logger) *Runner {
	return &Runner{source: source, config: config, logger: logger}
}

// Run processes the enabled categories strictly in order. A source error
// aborts the run immediately: later categories are never queried and no
// partial report is returned, so the caller can map the failure straight
// to an UNKNOWN exit.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	logger := r.logger.WithField("source", r.source.Name())
	report := &Report{Overall: severity.OK}

	for _, cat := range r.config.categories() {
		var result classify.Result

		switch cat.id {
		case types.CategoryCore:
			items, err := r.source.CoreUpdates(ctx)
			if err != nil {
				return nil, fmt.Errorf("checking core updates: %w", err)
			}
			result = classify.Core(r.config.Core, items)
		default:
			items, err := r.source.ExtensionUpdates(ctx, cat.id, r.config.IncludeDisabled)
			if err != nil {
				return nil, fmt.Errorf("checking %s updates: %w", cat.id, err)
			}
			result = classify.Extensions(cat.policy.Severity, items)
		}

		report.Categories = append(report.Categories, CategoryResult{Category: cat.id, Result: result})
		report.Overall = severity.Max(report.Overall, result.Severity)

		logger.WithFields(logrus.Fields{
			"category": cat.id,
			"severity": result.Severity.String(),
			"details":  len(result.Lines),
		}).Debug("Category classified")
	}

	return report, nil
}

// Summary builds the first output line: the overall severity label and a
// comma-joined note per category with findings. Clean categories are
// omitted; if everything is clean the note says so.
func (r *Report) Summary() string {
	var notes []string
	for _, cat := range r.Categories {
		if cat.NoFindings() {
			continue
		}
		switch cat.Category {
		case types.CategoryCore:
			notes = append(notes, "Core update")
		default:
			n := len(cat.Lines)
			note := fmt.Sprintf("%d %s", n, cat.Category)
			if n != 1 {
				note += "s"
			}
			notes = append(notes, note)
		}
	}

	if len(notes) == 0 {
		notes = append(notes, "No updates needed")
	}

	return fmt.Sprintf("%s: %s", r.Overall, strings.Join(notes, ", "))
}

// Render produces the full plugin output: the summary line, then each
// category's header followed by its detail lines.
func (r *Report) Render() string {
	lines := []string{r.Summary()}
	for _, cat := range r.Categories {
		lines = append(lines, cat.Category.Header())
		lines = append(lines, cat.Lines...)
	}
	return strings.Join(lines, "\n")
}

// ExitCode returns the process exit code for the monitoring framework.
func (r *Report) ExitCode() int {
	return r.Overall.Code()
}
