// ABOUTME: Logout command for the idmctl CLI
// ABOUTME: Clears the persisted session unconditionally

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the persisted session",
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runLogout(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout clears session state and returns exit code. Safe to run when
// already logged out.
func runLogout(w io.Writer) int {
	c, err := initCore()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	c.session.Logout()
	fmt.Fprintln(w, "Logged out.")
	return 0
}
