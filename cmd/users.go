// ABOUTME: Users commands for the idmctl CLI
// ABOUTME: Lists and inspects managed accounts on the identity backend

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"idmctl/gateway"
	"idmctl/internal/grid"
	"idmctl/models"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage users",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runUsersList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var usersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runUsersGet(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersGetCmd)
}

// runUsersList fetches and renders the user grid, returning exit code
func runUsersList(ctx context.Context, w io.Writer) int {
	c, err := initCore()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	res := c.gateway.Get(ctx, usersPath, nil)
	if !res.Success {
		fmt.Fprintf(w, "Error: %s\n", res.ErrorText())
		return 2
	}

	users, err := decodeUsers(res)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		raw, _ := json.MarshalIndent(users, "", "  ")
		fmt.Fprintln(w, string(raw))
	} else {
		fmt.Fprintln(w, formatUsersGrid(users))
	}
	return 0
}

// runUsersGet fetches and renders one user, returning exit code
func runUsersGet(ctx context.Context, w io.Writer, id string) int {
	c, err := initCore()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	res := c.gateway.Get(ctx, usersPath+"/"+id, nil)
	if !res.Success {
		fmt.Fprintf(w, "Error: %s\n", res.ErrorText())
		return 2
	}

	user, err := decodeUser(res)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		raw, _ := json.MarshalIndent(user, "", "  ")
		fmt.Fprintln(w, string(raw))
	} else {
		fmt.Fprint(w, formatUserHuman(user))
	}
	return 0
}

// decodeUsers accepts both the bare-array and {users: [...]} payload shapes
func decodeUsers(res gateway.Result) ([]models.User, error) {
	var bare []models.User
	if err := res.Decode(&bare); err == nil {
		return bare, nil
	}

	var envelope models.UsersResponse
	if err := res.Decode(&envelope); err != nil {
		return nil, fmt.Errorf("invalid users payload: %w", err)
	}
	return envelope.Users, nil
}

// decodeUser accepts both the bare-object and {user: {...}} payload shapes
func decodeUser(res gateway.Result) (*models.User, error) {
	var envelope struct {
		User *models.User `json:"user"`
	}
	if err := res.Decode(&envelope); err == nil && envelope.User != nil {
		return envelope.User, nil
	}

	var bare models.User
	if err := res.Decode(&bare); err != nil {
		return nil, fmt.Errorf("invalid user payload: %w", err)
	}
	return &bare, nil
}

// formatUsersGrid renders users as a data grid
func formatUsersGrid(users []models.User) string {
	rows := make([][]string, len(users))
	for i, u := range users {
		twoFactor := "no"
		if u.TwoFactorEnabled {
			twoFactor = "yes"
		}
		locked := "-"
		if u.LockoutEnd != nil && *u.LockoutEnd != "" {
			locked = *u.LockoutEnd
		}
		rows[i] = []string{u.ID, u.UserName, u.Email, twoFactor, locked}
	}
	return grid.Render([]string{"ID", "USERNAME", "EMAIL", "2FA", "LOCKOUT END"}, rows)
}

// formatUserHuman formats a single user for human readability
func formatUserHuman(u *models.User) string {
	out := fmt.Sprintf(`ID:        %s
Username:  %s
Email:     %s (confirmed: %v)
Phone:     %s (confirmed: %v)
2FA:       %v
`, u.ID, u.UserName, u.Email, u.EmailConfirmed, u.PhoneNumber, u.PhoneNumberConfirmed, u.TwoFactorEnabled)
	if u.LockoutEnd != nil && *u.LockoutEnd != "" {
		out += fmt.Sprintf("Lockout:   until %s\n", *u.LockoutEnd)
	}
	return out
}
