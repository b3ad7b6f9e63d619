package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "conclave",
		Short:         "Interactive console for the conclave room coordinator",
		Long:          "conclave logs in against the guise auth service and opens an interactive console for creating, joining, listing, and pinging rooms on the conclave coordinator. Running it without a subcommand starts the console.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	consoleCmd := newConsoleCmd(app)

	rootCmd.AddCommand(
		newVersionCmd(),
		consoleCmd,
		newLoginCmd(app),
		newIdentityCmd(app),
	)

	// Bare "conclave" drops straight into the console.
	rootCmd.RunE = consoleCmd.RunE

	return rootCmd
}
