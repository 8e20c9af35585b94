package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jarvis-cli/internal/client"
	"jarvis-cli/internal/config"
)

var cfgFile string
var jsonOutput bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jarvis-cli",
	Short: "A CLI for the Jarvis alarm clock device",
	Long: `Manage alarms, sounds, settings, audio outputs and light scenes on a
Jarvis alarm clock device over its REST API.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// Helper to build a device client from the stored config
func getClient() *client.JarvisClient {
	return client.New(client.ClientConfig{
		BaseURL: config.BaseURL(),
		Timeout: config.Timeout(),
	})
}

func init() {
	cobra.OnInitialize(func() { config.InitConfig(cfgFile) })

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.jarvis-cli.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
}
