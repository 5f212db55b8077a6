package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alanmeadows/issuecloser/internal/config"
	"github.com/alanmeadows/issuecloser/internal/logging"
	ghbackend "github.com/alanmeadows/issuecloser/internal/provider/github"
)

var errNoCommand = errors.New("please provide a command\navailable commands are: get, close")

var (
	verbose    bool
	configPath string
	appConfig  *config.Config

	rootCmd = &cobra.Command{
		Use:   "issuecloser",
		Short: "Export open GitHub issues to a file and close the issues listed in it",
		Long: `issuecloser searches a repository for open issues, optionally filtered by a
label, and writes them to a JSON file. The file can be reviewed and edited,
then handed back to 'close' to close every issue it lists.

The GitHub token is read from the GITHUB_TOKEN environment variable.`,
		Example: `  issuecloser get octocat hello-world out.json
  issuecloser get octocat hello-world bug out.json
  issuecloser close out.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return errNoCommand
		},
	}
)

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose/debug output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file merged over the user config")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		logging.Setup(cmd.ErrOrStderr(), verbose)

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		appConfig = cfg
		return nil
	}

	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(closeCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(configCmd)
}

func Execute() error {
	return rootCmd.Execute()
}

// newBackend checks for a token and builds the GitHub backend. It never
// touches the network, so a missing token fails before any request is made.
func newBackend() (*ghbackend.Backend, error) {
	token, err := appConfig.RequireToken()
	if err != nil {
		return nil, err
	}

	backend, err := ghbackend.NewBackend(token, appConfig.GitHub.APIURL)
	if err != nil {
		return nil, fmt.Errorf("creating GitHub client: %w", err)
	}
	return backend.WithStateReason(appConfig.Close.StateReason), nil
}
