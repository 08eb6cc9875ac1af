// ABOUTME: Roles commands for the idmctl CLI
// ABOUTME: Lists, creates, updates, and deletes roles on the identity backend

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

var roleName string

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "Manage roles",
}

var rolesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all roles",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRolesList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var rolesCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a role",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRolesCreate(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var rolesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Rename a role",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRolesUpdate(ctx, os.Stdout, args[0], roleName)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var rolesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a role",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRolesDelete(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(rolesCmd)
	rolesCmd.AddCommand(rolesListCmd)
	rolesCmd.AddCommand(rolesCreateCmd)
	rolesCmd.AddCommand(rolesUpdateCmd)
	rolesCmd.AddCommand(rolesDeleteCmd)

	rolesUpdateCmd.Flags().StringVar(&roleName, "name", "", "New role name")
	_ = rolesUpdateCmd.MarkFlagRequired("name")
}

// runRolesList fetches and renders the role grid, returning exit code
func runRolesList(ctx context.Context, w io.Writer) int {
	c, err := initCore()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	res := c.gateway.Get(ctx, rolesPath, nil)
	if !res.Success {
		fmt.Fprintf(w, "Error: %s\n", res.ErrorText())
		return 2
	}

	roles, err := decodeRoles(res)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		raw, _ := json.MarshalIndent(roles, "", "  ")
		fmt.Fprintln(w, string(raw))
	} else {
		fmt.Fprintln(w, formatRolesGrid(roles))
	}
	return 0
}

// runRolesCreate creates a role, returning exit code
func runRolesCreate(ctx context.Context, w io.Writer, name string) int {
	c, err := initCore()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	res := c.gateway.Post(ctx, rolesPath, map[string]string{"name": name}, nil)
	if !res.Success {
		fmt.Fprintf(w, "Error: %s\n", res.ErrorText())
		return 2
	}

	fmt.Fprintf(w, "Role %q created.\n", name)
	return 0
}

// runRolesUpdate renames a role, returning exit code
func runRolesUpdate(ctx context.Context, w io.Writer, id, name string) int {
	c, err := initCore()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	res := c.gateway.Put(ctx, rolesPath+"/"+id, map[string]string{"name": name}, nil)
	if !res.Success {
		fmt.Fprintf(w, "Error: %s\n", res.ErrorText())
		return 2
	}

	fmt.Fprintf(w, "Role %s renamed to %q.\n", id, name)
	return 0
}

// runRolesDelete deletes a role, returning exit code
func runRolesDelete(ctx context.Context, w io.Writer, id string) int {
	c, err := initCore()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	res := c.gateway.Delete(ctx, rolesPath+"/"+id, nil)
	if !res.Success {
		fmt.Fprintf(w, "Error: %s\n", res.ErrorText())
		return 2
	}

	fmt.Fprintf(w, "Role %s deleted.\n", id)
	return 0
}

// decodeRoles accepts both the bare-array and {roles: [...]} payload shapes
func decodeRoles(res gateway.Result) ([]models.Role, error) {
	var bare []models.Role
	if err := res.Decode(&bare); err == nil {
		return bare, nil
	}

	var envelope models.RolesResponse
	if err := res.Decode(&envelope); err != nil {
		return nil, fmt.Errorf("invalid roles payload: %w", err)
	}
	return envelope.Roles, nil
}

// formatRolesGrid renders roles as a data grid
func formatRolesGrid(roles []models.Role) string {
	rows := make([][]string, len(roles))
	for i, r := range roles {
		rows[i] = []string{r.ID, r.Name, r.NormalizedName}
	}
	return grid.Render([]string{"ID", "NAME", "NORMALIZED"}, rows)
}
