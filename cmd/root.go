// ABOUTME: Root command for the idmctl CLI
// ABOUTME: Handles global flags and wires config, session, and gateway together

package cmd

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"idmctl/config"
	"idmctl/gateway"
	"idmctl/session"
	"idmctl/storage"
)

var (
	apiURL     string
	jsonOutput bool
)

// Resource paths on the identity backend
const (
	usersPath       = "/users"
	rolesPath       = "/roles"
	permissionsPath = "/permissions"
	assignPath      = "/roles/permissions"
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "idmctl",
	Short: "CLI for the identity admin API",
	Long: `idmctl manages users, roles, and permission assignments on an identity backend.

Environment Variables:
  IDM_API_URL          Backend API URL (default: http://localhost:8080)
  IDM_AUTH_PATH        Authenticate endpoint path (default: /authenticate)
  IDM_REQUEST_TIMEOUT  Per-request timeout in seconds (default: 10)
  IDM_SESSION_FILE     Session store location (default: XDG config dir)
  IDM_ALL_PROXY        SOCKS5-over-SSH proxy URL for the backend`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides IDM_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// core bundles the wired session manager and gateway for one invocation
type core struct {
	cfg     *config.Config
	session *session.Manager
	gateway *gateway.Gateway
}

// initCore loads configuration, restores the persisted session, and builds
// the gateway. The 401 hook tears the session down and tells the user to log
// in again; that is the CLI's equivalent of the dashboard's signin redirect.
func initCore() (*core, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.APIURL = strings.TrimRight(apiURL, "/")
	}

	store := storage.NewFileStore(cfg.SessionFile)
	timeout := time.Duration(cfg.RequestTimeout) * time.Second

	sess := session.New(store, cfg.AuthURL(), &http.Client{Timeout: timeout})
	sess.Restore()

	gw := gateway.New(cfg.APIURL, sess,
		gateway.WithTimeout(timeout),
		gateway.WithUnauthorizedHook(func() {
			sess.Logout()
			fmt.Fprintln(os.Stderr, "Session is no longer valid; run 'idmctl login' to sign in again.")
		}),
	)

	return &core{cfg: cfg, session: sess, gateway: gw}, nil
}
