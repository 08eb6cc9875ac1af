// ABOUTME: Entry point for the idmctl CLI
// ABOUTME: Command-line tool for managing users, roles, and permissions

package main

import (
	"fmt"
	"os"

	"idmctl/cmd"
	"idmctl/logger"
)

func main() {
	logger.Init()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
