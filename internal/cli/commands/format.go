package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"issuetree/internal/operations"
)

// stepLabels maps pipeline steps to the phrasing used in user output
var stepLabels = map[operations.Step]string{
	operations.StepValidating:        "validation",
	operations.StepResolvingIssue:    "issue fetch",
	operations.StepNaming:            "branch naming",
	operations.StepCreatingWorktree:  "worktree creation",
	operations.StepInstallingDeps:    "dependency install",
	operations.StepLaunchingTerminal: "terminal launch",
}

// printCreateResult reports a create run: one clear line for the outcome,
// then one line per advisory so the user knows the worktree is usable even
// when decoration steps failed.
func printCreateResult(w io.Writer, result *operations.WorktreeResult) {
	if result.Success {
		fmt.Fprintf(w, "Worktree created at %s (branch %s)\n", result.Path, result.BranchName)
		for _, a := range result.Advisories {
			fmt.Fprintf(w, "  note: %s failed: %s\n", stepLabel(a.Step), shortReason(a.Err))
		}
		return
	}

	failed := "provisioning"
	if n := len(result.StepsCompleted); n > 0 {
		failed = stepLabel(result.StepsCompleted[n-1])
	}
	fmt.Fprintf(w, "Worktree not created: %s failed\n", failed)
	completed := result.StepsCompleted
	if len(completed) > 0 {
		completed = completed[:len(completed)-1]
	}
	for _, s := range completed {
		fmt.Fprintf(w, "  completed: %s\n", stepLabel(s))
	}
}

// printWorktreeList renders the registry view
func printWorktreeList(w io.Writer, statuses []operations.WorktreeStatus) {
	if len(statuses) == 0 {
		fmt.Fprintln(w, "No worktrees found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tBRANCH\tHEAD\tSTATUS")
	for _, st := range statuses {
		branch := st.Branch
		if branch == "" {
			branch = "(detached)"
		}
		head := st.HeadCommit
		if len(head) > 8 {
			head = head[:8]
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", st.Path, branch, head, recordStatus(st))
	}
	tw.Flush()
}

func recordStatus(st operations.WorktreeStatus) string {
	switch {
	case st.IsBare:
		return "bare"
	case st.IsPrunable:
		return "prunable"
	case st.IsLocked:
		return "locked"
	case st.IsMain && st.Dirty:
		return "main (dirty)"
	case st.IsMain:
		return "main"
	case st.Dirty:
		return "dirty"
	default:
		return "clean"
	}
}

// printCleanupResult reports what was removed and what was skipped and why
func printCleanupResult(w io.Writer, result *operations.CleanupResult) {
	for _, path := range result.Removed {
		fmt.Fprintf(w, "removed %s\n", path)
	}
	for _, s := range result.Skipped {
		fmt.Fprintf(w, "skipped %s: %s\n", s.Path, s.Reason)
	}
	if len(result.Removed) == 0 && len(result.Skipped) == 0 {
		fmt.Fprintln(w, "Nothing to clean.")
	}
}

func stepLabel(s operations.Step) string {
	if label, ok := stepLabels[s]; ok {
		return label
	}
	return string(s)
}

// shortReason keeps advisory lines to a single readable sentence
func shortReason(err error) string {
	if err == nil {
		return "unknown"
	}
	return err.Error()
}
