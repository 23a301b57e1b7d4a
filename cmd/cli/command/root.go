package command

// root.go defines the root command for the bookhubCLI application.
// Global flags and credentials are set up here.

import (
	"fmt"
	"os"
	"time"

	"bookhub/cmd/cli/command/client"

	"github.com/spf13/cobra"
)

var (
	apiURL   string        // API server URL
	username string        // basic auth username
	password string        // basic auth password
	timeout  time.Duration // per-request timeout, 0 = none
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bookhubCLI",
	Short: "bookhubCLI - bookhub Command Line Interface",
	Long: `bookhubCLI talks to the bookhub API. With it you can:
- Add, list, update and delete books
- Post and read reviews
- Generate and read book summaries
- Get genre recommendations

Credentials come from --username/--password or BOOKHUB_USERNAME/BOOKHUB_PASSWORD.

Use "bookhubCLI command --help" to see all available commands.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err) // Print error to standard error
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags = available to all subcommands
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", envOr("BOOKHUB_API", "http://localhost:8000"), "API server URL")
	rootCmd.PersistentFlags().StringVar(&username, "username", envOr("BOOKHUB_USERNAME", "admin"), "basic auth username")
	rootCmd.PersistentFlags().StringVar(&password, "password", os.Getenv("BOOKHUB_PASSWORD"), "basic auth password")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "request timeout (0 waits indefinitely)")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newClient() *client.HTTPClient {
	httpClient := client.NewHTTPClient(apiURL, timeout)
	httpClient.SetCredentials(username, password)
	return httpClient
}
