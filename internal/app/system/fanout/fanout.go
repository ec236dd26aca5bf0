// Package fanout tracks the outcome of applying one action to many
// targets sequentially, where a failure on one target must not stop the
// rest. Meeting logging for a team and multi-file uploads both use it.
package fanout

import (
	"fmt"
	"strings"
)

// Result is the outcome for one target.
type Result struct {
	Target string
	Err    error
}

// Report accumulates per-target results.
type Report struct {
	results []Result
}

// Add records the outcome for one target.
func (r *Report) Add(target string, err error) {
	r.results = append(r.results, Result{Target: target, Err: err})
}

// Total returns the number of targets attempted.
func (r *Report) Total() int {
	return len(r.results)
}

// Succeeded returns the number of targets that completed without error.
func (r *Report) Succeeded() int {
	n := 0
	for _, res := range r.results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the results that carry an error, in attempt order.
func (r *Report) Failed() []Result {
	var out []Result
	for _, res := range r.results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// AllFailed reports whether every attempted target errored.
// An empty report is not a failure.
func (r *Report) AllFailed() bool {
	return len(r.results) > 0 && r.Succeeded() == 0
}

// Summary renders a human-readable outcome line, e.g.
// "3 of 4 succeeded (failed: Ada Park)".
func (r *Report) Summary() string {
	failed := r.Failed()
	if len(failed) == 0 {
		return fmt.Sprintf("%d of %d succeeded", r.Succeeded(), r.Total())
	}
	names := make([]string, 0, len(failed))
	for _, f := range failed {
		names = append(names, f.Target)
	}
	return fmt.Sprintf("%d of %d succeeded (failed: %s)", r.Succeeded(), r.Total(), strings.Join(names, ", "))
}
