package cli

import (
	"fmt"
	"os"

	"github.com/printmarket-dev/printmarket/internal/cli/commands"
	"github.com/spf13/cobra"
)

var version = "dev" // Will be set during build

var rootCmd = &cobra.Command{
	Use:   "printmarket",
	Short: "Printmarket - Print job marketplace",
	Long: `Printmarket CLI - Post print jobs and find work from the terminal.

Customers create and publish printing jobs with their artwork attached.
Printers keep a profile of what they produce and browse the open jobs
that match it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	commands.Version = version
	commands.AddGlobalFlags(rootCmd)

	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("printmarket version %s\n", version)
		},
	})

	// Add all subcommands
	rootCmd.AddCommand(commands.NewHealthCmd())
	rootCmd.AddCommand(commands.NewLoginCmd())
	rootCmd.AddCommand(commands.NewSignupCmd())
	rootCmd.AddCommand(commands.NewLogoutCmd())
	rootCmd.AddCommand(commands.NewWhoamiCmd())
	rootCmd.AddCommand(commands.NewJobsCmd())
	rootCmd.AddCommand(commands.NewFilesCmd())
	rootCmd.AddCommand(commands.NewProfileCmd())
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
