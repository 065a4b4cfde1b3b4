package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the meetinvite application
var rootCmd = &cobra.Command{
	Use:   "meetinvite",
	Short: "Schedules Google Calendar events with Meet links and emails the invitations",
	Long: `meetinvite is an HTTP service that signs users in with Google, creates
calendar events with a Google Meet conference on their behalf, and emails an
invitation to every attendee.

It can optionally expose the same operations as MCP (Model Context Protocol)
tools for AI assistants.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "meetinvite version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
}
