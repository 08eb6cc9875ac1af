// ABOUTME: Login command for the idmctl CLI
// ABOUTME: Prompts for credentials and establishes an authenticated session

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var loginUsername string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the identity backend",
	Long: `Sign in to the identity backend and persist the session.

Prompts for any credential not supplied via flags. The session survives
across invocations until it expires or 'idmctl logout' is run.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Account username")
}

// runLogin executes the login flow and returns exit code
func runLogin(ctx context.Context, w io.Writer) int {
	c, err := initCore()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	username := loginUsername
	var password string

	var fields []huh.Field
	if username == "" {
		fields = append(fields, huh.NewInput().
			Title("Username").
			Value(&username))
	}
	fields = append(fields, huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(&password))

	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if !c.session.Login(ctx, username, password) {
		// All failure categories collapse to one combined message
		fmt.Fprintln(w, "Login failed: check your credentials and account status.")
		return 1
	}

	user := c.session.User()
	fmt.Fprintf(w, "Logged in as %s (%s)\n", user.UserName, user.Role)
	if user.RequiresTwoFactor {
		fmt.Fprintln(w, "Note: this account is flagged for two-factor authentication.")
	}
	return 0
}
