package cmd

import (
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/abhisek/speakplan/internal/ui/layout"
)

var rootCmd = &cobra.Command{
	Use:          "speakplan",
	Short:        "IELTS speaking study planner",
	Long:         "speakplan builds a four-week IELTS speaking study plan from your availability and runs timed practice rounds.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(versionCmd)
}

// terminalStyle reports whether stdout is a terminal that should get
// colored output, and its width.
func terminalStyle(cmd *cobra.Command) (styled bool, width int) {
	width = layout.DefaultWidth
	fd := os.Stdout.Fd()
	if !term.IsTerminal(fd) {
		return false, width
	}
	if w, _, err := term.GetSize(fd); err == nil {
		width = w
	}
	noColor, _ := cmd.Flags().GetBool("no-color")
	return !noColor && os.Getenv("NO_COLOR") == "", width
}
