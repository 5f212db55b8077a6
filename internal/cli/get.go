package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/alanmeadows/issuecloser/internal/issues"
	"github.com/alanmeadows/issuecloser/internal/store"
)

var errGetArgs = errors.New("please provide arguments: owner, repo, (optional) label, output")

var getCmd = &cobra.Command{
	Use:   "get <owner> <repo> [label] <output>",
	Short: "Export open issues to a file",
	Long: `Search owner/repo for open issues and write them to <output>.

With a label, only issues carrying that label are exported. Results are
fetched 100 at a time and capped at 1000 issues. The file is JSON unless
<output> ends in .yaml or .yml. Nothing is written if any page fails.`,
	Example: `  issuecloser get octocat hello-world out.json
  issuecloser get octocat hello-world bug out.json`,
	Args: validateGetArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, repo, label, output := parseGetArgs(args)

		backend, err := newBackend()
		if err != nil {
			return err
		}

		list, err := issues.FetchOpenIssues(cmd.Context(), backend, owner, repo, label)
		if err != nil {
			return fmt.Errorf("fetching issues: %w", err)
		}
		slog.Debug("fetched open issues", "owner", owner, "repo", repo, "label", label, "count", len(list))

		if err := store.WriteIssues(output, list); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d issues written to: %s\n", len(list), output)
		return nil
	},
}

// validateGetArgs accepts <owner> <repo> <output> or <owner> <repo> <label> <output>.
func validateGetArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 3 && len(args) != 4 {
		return errGetArgs
	}
	if args[0] == "" || args[1] == "" {
		return fmt.Errorf("owner and repo must not be empty")
	}
	if len(args) == 4 && args[2] == "" {
		return fmt.Errorf("label must not be empty; omit it to export all open issues")
	}
	if args[len(args)-1] == "" {
		return fmt.Errorf("output path must not be empty")
	}
	return nil
}

func parseGetArgs(args []string) (owner, repo, label, output string) {
	owner, repo, output = args[0], args[1], args[len(args)-1]
	if len(args) == 4 {
		label = args[2]
	}
	return owner, repo, label, output
}
