package issues

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/alanmeadows/issuecloser/internal/provider"
)

// Outcome is the result of one close attempt. Err is nil when the issue was closed.
type Outcome struct {
	Issue CloseableIssue
	Err   error
}

// Closed reports whether the attempt succeeded.
func (o Outcome) Closed() bool {
	return o.Err == nil
}

// Summary tallies a CloseAll run.
type Summary struct {
	// Closed is the number of successful attempts.
	Closed int
	// Total is the number of input issues.
	Total int
	// Outcomes holds one entry per input issue, in input order.
	Outcomes []Outcome
}

// String renders the summary line, e.g. "Closed 1/2 issues.".
func (s Summary) String() string {
	return fmt.Sprintf("Closed %d/%d issues.", s.Closed, s.Total)
}

// Failed returns the outcomes whose attempt did not succeed.
func (s Summary) Failed() []Outcome {
	var failed []Outcome
	for _, o := range s.Outcomes {
		if !o.Closed() {
			failed = append(failed, o)
		}
	}
	return failed
}

// CloseAll requests closure of every issue concurrently, one goroutine per issue,
// and blocks until all attempts have finished. A failed attempt never affects its
// siblings: it is written to out as "Failed to close issue N: <error>" and counted
// as not closed. Successful attempts write "Closed issue N.". Lines appear in
// completion order.
func CloseAll(ctx context.Context, updater provider.IssueUpdater, issues []CloseableIssue, out io.Writer) Summary {
	var (
		wg    sync.WaitGroup
		outMu sync.Mutex
	)

	outcomes := make([]Outcome, len(issues))

	for i, issue := range issues {
		wg.Add(1)
		go func(i int, issue CloseableIssue) {
			defer wg.Done()

			err := tryClose(ctx, updater, issue)
			outcomes[i] = Outcome{Issue: issue, Err: err}

			outMu.Lock()
			defer outMu.Unlock()
			if err != nil {
				slog.Debug("close attempt failed", "issue", issue.String(), "error", err)
				fmt.Fprintf(out, "Failed to close issue %d: %v\n", issue.Number, err)
				return
			}
			fmt.Fprintf(out, "Closed issue %d.\n", issue.Number)
		}(i, issue)
	}

	wg.Wait()

	summary := Summary{Total: len(issues), Outcomes: outcomes}
	for _, o := range outcomes {
		if o.Closed() {
			summary.Closed++
		}
	}
	return summary
}

// tryClose runs a single attempt. A panic in the updater is returned as an error.
func tryClose(ctx context.Context, updater provider.IssueUpdater, issue CloseableIssue) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return updater.CloseIssue(ctx, issue.Owner, issue.Repo, issue.Number)
}
