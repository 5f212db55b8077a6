package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/alanmeadows/issuecloser/internal/store"
)

var showCmd = &cobra.Command{
	Use:   "show <issues-file>",
	Short: "Display the issues in an export file",
	Long: `Read an export file and display its issues in a table.

Useful for reviewing a file before handing it to 'close'.`,
	Example: `  issuecloser show out.json`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := store.ReadIssues(args[0])
		if err != nil {
			return err
		}

		if len(list) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No issues.")
			return nil
		}

		headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
		cellStyle := lipgloss.NewStyle().Padding(0, 1)

		rows := make([][]string, 0, len(list))
		for _, issue := range list {
			rows = append(rows, []string{
				strconv.Itoa(issue.Number),
				issue.Owner + "/" + issue.Repo,
				issue.Title,
				issue.URL,
			})
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("NUMBER", "REPOSITORY", "TITLE", "URL").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})

		fmt.Fprintln(cmd.OutOrStdout(), t)
		return nil
	},
}
