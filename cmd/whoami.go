// ABOUTME: Whoami command for the idmctl CLI
// ABOUTME: Prints the restored session user and account flags

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"idmctl/models"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session user",
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runWhoami(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami prints session state and returns exit code
func runWhoami(w io.Writer) int {
	c, err := initCore()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if !c.session.IsAuthenticated() {
		fmt.Fprintln(w, "Not logged in.")
		return 1
	}

	user := c.session.User()
	if IsJSONOutput() {
		fmt.Fprintln(w, formatWhoamiJSON(user))
	} else {
		fmt.Fprint(w, formatWhoamiHuman(user))
	}
	return 0
}

// formatWhoamiHuman formats the session user for human readability
func formatWhoamiHuman(user *models.SessionUser) string {
	out := fmt.Sprintf("User:  %s\nRole:  %s\n", user.UserName, user.Role)
	if user.RequiresTwoFactor {
		out += "Flags: requires two-factor\n"
	}
	return out
}

// formatWhoamiJSON formats the session user as JSON
func formatWhoamiJSON(user *models.SessionUser) string {
	raw, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(raw)
}
