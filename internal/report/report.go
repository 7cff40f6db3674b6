// Package report classifies build and nuke results for presentation.
package report

import (
	"fmt"
	"strings"

	"github.com/dshills/guildsmith/internal/builder"
)

// Outcome is the overall assessment of a build or nuke run.
type Outcome string

const (
	// OutcomeComplete: work was done and nothing failed.
	OutcomeComplete Outcome = "COMPLETE"
	// OutcomePartial: some entities succeeded, some failed.
	OutcomePartial Outcome = "PARTIAL"
	// OutcomeFailed: nothing succeeded.
	OutcomeFailed Outcome = "FAILED"
)

// Classify derives an outcome from a count of successful operations and the
// error ledger.
func Classify(succeeded int, errs []string) Outcome {
	switch {
	case len(errs) == 0:
		return OutcomeComplete
	case succeeded > 0:
		return OutcomePartial
	default:
		return OutcomeFailed
	}
}

// ForBuild classifies a build result.
func ForBuild(r *builder.BuildResult) Outcome {
	return Classify(len(r.Roles)+len(r.Categories)+len(r.Channels), r.Errors)
}

// ForNuke classifies a nuke result.
func ForNuke(r *builder.NukeResult) Outcome {
	return Classify(r.DeletedChannels+r.DeletedRoles+len(r.BaselineRoles), r.Errors)
}

// SummarizeErrors renders at most max error lines, appending a "+N more"
// trailer when the ledger is longer. Returns "" for an empty ledger.
func SummarizeErrors(errs []string, max int) string {
	if len(errs) == 0 {
		return ""
	}
	if max <= 0 || max > len(errs) {
		max = len(errs)
	}
	out := strings.Join(errs[:max], "\n")
	if rest := len(errs) - max; rest > 0 {
		out += fmt.Sprintf("\n...and %d more", rest)
	}
	return out
}
