// ABOUTME: Permissions commands for the idmctl CLI
// ABOUTME: Shows the permission catalog and manages role assignments

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"idmctl/gateway"
	"idmctl/models"
)

var permissionsCmd = &cobra.Command{
	Use:   "permissions",
	Short: "Manage permission assignments",
}

var permissionsCatalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show the full permission catalog",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runPermissionsCatalog(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var permissionsShowCmd = &cobra.Command{
	Use:   "show <role>",
	Short: "Show a role's assigned permissions",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runPermissionsShow(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var permissionsAssignCmd = &cobra.Command{
	Use:   "assign <role> <permission>...",
	Short: "Replace a role's permission set",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runPermissionsAssign(ctx, os.Stdout, args[0], args[1:])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(permissionsCmd)
	permissionsCmd.AddCommand(permissionsCatalogCmd)
	permissionsCmd.AddCommand(permissionsShowCmd)
	permissionsCmd.AddCommand(permissionsAssignCmd)
}

// runPermissionsCatalog fetches and renders the catalog tree, returning exit code
func runPermissionsCatalog(ctx context.Context, w io.Writer) int {
	c, err := initCore()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	res := c.gateway.Get(ctx, permissionsPath, nil)
	if !res.Success {
		fmt.Fprintf(w, "Error: %s\n", res.ErrorText())
		return 2
	}

	categories, err := decodeCategories(res)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		raw, _ := json.MarshalIndent(categories, "", "  ")
		fmt.Fprintln(w, string(raw))
	} else {
		fmt.Fprint(w, formatCatalogHuman(categories))
	}
	return 0
}

// runPermissionsShow fetches the catalog and the role's assignment
// concurrently and renders the assigned keys, returning exit code
func runPermissionsShow(ctx context.Context, w io.Writer, role string) int {
	c, err := initCore()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	var (
		categories []models.PermissionCategory
		assigned   []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res := c.gateway.Get(gctx, permissionsPath, nil)
		if !res.Success {
			return fmt.Errorf("fetching catalog: %s", res.ErrorText())
		}
		var err error
		categories, err = decodeCategories(res)
		return err
	})
	g.Go(func() error {
		res := c.gateway.Get(gctx, rolesPath+"/"+role+"/permissions", nil)
		if !res.Success {
			return fmt.Errorf("fetching role permissions: %s", res.ErrorText())
		}
		var err error
		assigned, err = decodeAssigned(res)
		return err
	})
	if err := g.Wait(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		raw, _ := json.MarshalIndent(map[string]any{"role": role, "permissions": assigned}, "", "  ")
		fmt.Fprintln(w, string(raw))
	} else {
		fmt.Fprint(w, formatAssignedHuman(role, assigned, categories))
	}
	return 0
}

// runPermissionsAssign replaces the role's permission set, returning exit code
func runPermissionsAssign(ctx context.Context, w io.Writer, role string, permissions []string) int {
	c, err := initCore()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	req := models.AssignPermissionsRequest{
		RoleName:    role,
		Permissions: permissions,
	}
	res := c.gateway.Post(ctx, assignPath, req, nil)
	if !res.Success {
		fmt.Fprintf(w, "Error: %s\n", res.ErrorText())
		return 2
	}

	fmt.Fprintf(w, "Assigned %d permissions to role %q.\n", len(permissions), role)
	return 0
}

// decodeCategories accepts both the bare-array and {categories: [...]} shapes
func decodeCategories(res gateway.Result) ([]models.PermissionCategory, error) {
	var bare []models.PermissionCategory
	if err := res.Decode(&bare); err == nil {
		return bare, nil
	}

	var envelope models.PermissionsResponse
	if err := res.Decode(&envelope); err != nil {
		return nil, fmt.Errorf("invalid permissions payload: %w", err)
	}
	return envelope.Categories, nil
}

// decodeAssigned accepts both the bare-array and {permissions: [...]} shapes
func decodeAssigned(res gateway.Result) ([]string, error) {
	var bare []string
	if err := res.Decode(&bare); err == nil {
		return bare, nil
	}

	var envelope struct {
		Permissions []string `json:"permissions"`
	}
	if err := res.Decode(&envelope); err != nil {
		return nil, fmt.Errorf("invalid role permissions payload: %w", err)
	}
	return envelope.Permissions, nil
}

// formatCatalogHuman renders the category/screen/permission tree
func formatCatalogHuman(categories []models.PermissionCategory) string {
	var b strings.Builder
	for _, cat := range categories {
		fmt.Fprintf(&b, "%s\n", cat.Label)
		for _, screen := range cat.Screens {
			fmt.Fprintf(&b, "  %s\n", screen.Label)
			for _, perm := range screen.Permissions {
				fmt.Fprintf(&b, "    %-40s %s\n", perm.Key, perm.Label)
			}
		}
	}
	if b.Len() == 0 {
		return "No permissions defined.\n"
	}
	return b.String()
}

// formatAssignedHuman renders assigned keys with labels resolved from the catalog
func formatAssignedHuman(role string, assigned []string, categories []models.PermissionCategory) string {
	labels := map[string]string{}
	for _, cat := range categories {
		for _, screen := range cat.Screens {
			for _, perm := range screen.Permissions {
				labels[perm.Key] = perm.Label
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Role %s: %d permissions\n", role, len(assigned))
	for _, key := range assigned {
		label := labels[key]
		if label == "" {
			label = "(unknown)"
		}
		fmt.Fprintf(&b, "  %-40s %s\n", key, label)
	}
	return b.String()
}
