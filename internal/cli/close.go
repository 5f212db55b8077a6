package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/alanmeadows/issuecloser/internal/config"
	"github.com/alanmeadows/issuecloser/internal/issues"
	"github.com/alanmeadows/issuecloser/internal/store"
)

var errCloseArgs = errors.New("please provide a file containing issues to close")

var (
	closeReason      string
	closeInteractive bool
)

func init() {
	closeCmd.Flags().StringVar(&closeReason, "reason", "", "State reason sent with each close: completed or not_planned")
	closeCmd.Flags().BoolVarP(&closeInteractive, "interactive", "i", false, "Ask for confirmation before closing")
}

// confirmClose asks the user to confirm closing n issues. Replaced in tests.
var confirmClose = func(n int) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Close %d issues?", n)).
				Affirmative("Close").
				Negative("Cancel").
				Value(&ok),
		),
	)
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("confirmation cancelled: %w", err)
	}
	return ok, nil
}

var closeCmd = &cobra.Command{
	Use:   "close <issues-file>",
	Short: "Close every issue listed in an export file",
	Long: `Close every issue listed in a file produced by 'get'.

All close requests are sent concurrently. A failure closing one issue is
reported and counted but does not stop the others. The command ends with a
"Closed X/Y issues." summary and exits 0 even when some issues failed.`,
	Example: `  issuecloser close out.json
  issuecloser close --reason not_planned out.json
  issuecloser close -i out.json`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errCloseArgs
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if closeReason != "" {
			closeCfg := config.CloseConfig{StateReason: closeReason}
			if err := closeCfg.Validate(); err != nil {
				return err
			}
			appConfig.Close = closeCfg
		}

		backend, err := newBackend()
		if err != nil {
			return err
		}

		list, err := store.ReadIssues(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()

		if closeInteractive {
			ok, err := confirmClose(len(list))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}
		}

		summary := issues.CloseAll(cmd.Context(), backend, list, out)
		slog.Debug("close finished", "closed", summary.Closed, "total", summary.Total)

		fmt.Fprintln(out, summary.String())
		return nil
	},
}
