package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"jarvis-cli/internal/client"
	"jarvis-cli/internal/config"
)

var serverURL string

// configureCmd represents the configure command
var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Point the CLI at a Jarvis device",
	Long: `Checks that the device answers at the given address and saves the address
to the config file for all future commands.

Example:
  jarvis-cli configure --server "http://jarvis.local:8000"`,
	Run: func(cmd *cobra.Command, args []string) {
		server := strings.TrimRight(serverURL, "/")

		fmt.Printf("Checking device at %s...\n", server)

		api := client.New(client.ClientConfig{BaseURL: server})
		info, err := api.Ping(context.Background())
		if err != nil {
			fmt.Printf("Error: device did not answer: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Device answered: %s\n", info.Message)

		if err := config.SaveServer(server); err != nil {
			fmt.Printf("Error saving configuration: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("Configuration saved. You can now run 'jarvis-cli dashboard'.")
	},
}

func init() {
	rootCmd.AddCommand(configureCmd)

	configureCmd.Flags().StringVar(&serverURL, "server", config.DefaultBaseURL, "Device base URL")
}
