// ABOUTME: Severity classifier reducing per-item update records to one category result.
// ABOUTME: Pure functions over already-collected data; no I/O, no errors.

package classify

import (
	"fmt"
	"strings"

	"github.com/aghstrategies/check-wp-cli/internal/severity"
	"github.com/aghstrategies/check-wp-cli/internal/types"
)

const (
	noUpdatesLine   = "[OK] No updates needed"
	checkFailedLine = "[UNKNOWN] Problem checking status"
)

// Result is a classified category: its reduced severity and the detail
// lines to print under the category header, in input order.
type Result struct {
	Severity severity.Severity
	Lines    []string
}

// NoFindings reports whether the result represents a clean category. The
// summary line omits these categories.
func (r Result) NoFindings() bool {
	return len(r.Lines) > 0 && strings.HasPrefix(r.Lines[0], "[OK]")
}

// Core classifies pending core updates. Each item maps through the core
// policy by its update type. The reduction rule is not a numeric max: when
// every item carries the same severity that value wins, and any mix
// escalates straight to CRITICAL. With the two possible letters a mix can
// only be one WARNING and one CRITICAL, so the escalation coincides with
// the maximum, but the equal/else branch is the contract.
func Core(policy severity.CorePolicy, items []types.CoreUpdate) Result {
	if len(items) == 0 {
		return Result{Severity: severity.OK, Lines: []string{noUpdatesLine}}
	}

	lines := make([]string, 0, len(items))
	catSev := policy.ForUpdateType(items[0].UpdateType)
	uniform := true

	for _, item := range items {
		sev := policy.ForUpdateType(item.UpdateType)
		if sev != catSev {
			uniform = false
		}
		lines = append(lines, fmt.Sprintf("[%s] WordPress %s available", sev, item.Version))
	}

	if !uniform {
		catSev = severity.Critical
	}

	return Result{Severity: catSev, Lines: lines}
}

// Extensions classifies plugin or theme records. Every surviving item gets
// the category's single configured severity; records without a pending
// update are dropped before counting or printing.
func Extensions(sev severity.Severity, items []types.ExtensionUpdate) Result {
	var lines []string
	for _, item := range items {
		if !item.HasUpdate() {
			continue
		}
		lines = append(lines, fmt.Sprintf("[%s] %s %s -> %s", sev, item.Title, item.Version, item.UpdateVersion))
	}

	if len(lines) == 0 {
		return Result{Severity: severity.OK, Lines: []string{noUpdatesLine}}
	}

	return Result{Severity: sev, Lines: lines}
}

// Failed is the result for a category whose data could not be collected.
func Failed() Result {
	return Result{Severity: severity.Unknown, Lines: []string{checkFailedLine}}
}
