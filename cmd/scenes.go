package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jarvis-cli/internal/client"
)

// Variables to hold flag values
var (
	sceneName     string
	sceneDuration int
)

// Parent Command
var scenesCmd = &cobra.Command{
	Use:   "scenes",
	Short: "Browse and preview Hue light scenes",
	Long:  `List the light scenes configured for the alarm room or preview one briefly.`,
}

// List Command
var scenesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available scenes",
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient()

		scenes, err := api.GetAvailableScenes(context.Background())
		if err != nil {
			if client.IsUnavailable(err) {
				fmt.Println("The Hue bridge is not reachable right now. Try again in a moment.")
			} else {
				fmt.Printf("Error fetching scenes: %v\n", err)
			}
			os.Exit(1)
		}

		// --- JSON OUTPUT ---
		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(scenes); err != nil {
				fmt.Printf("Error encoding JSON: %v\n", err)
				os.Exit(1)
			}
			return
		}
		// -------------------

		if len(scenes) == 0 {
			fmt.Println("No scenes configured.")
			return
		}

		for _, name := range scenes {
			fmt.Println(name)
		}
	},
}

// Preview Command
var scenesPreviewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Activate a scene briefly, then restore the lights",
	Long: `Saves the current light state, activates the scene for the given duration
and restores the saved state afterwards.`,
	Example: `  jarvis-cli scenes preview --name "Sonnenaufgang" --duration 10`,
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient()

		activated, err := api.ActivateSceneTemporarily(context.Background(), sceneName, sceneDuration)
		if err != nil {
			fmt.Printf("Error previewing scene: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(activated.Message)
	},
}

func init() {
	// Register Parent
	rootCmd.AddCommand(scenesCmd)

	// Register List
	scenesCmd.AddCommand(scenesListCmd)

	// Register Preview
	scenesCmd.AddCommand(scenesPreviewCmd)
	scenesPreviewCmd.Flags().StringVar(&sceneName, "name", "", "Scene name from 'scenes list'")
	scenesPreviewCmd.Flags().IntVar(&sceneDuration, "duration", 0, "Preview duration in seconds (0 uses the device default of 8)")
	_ = scenesPreviewCmd.MarkFlagRequired("name")
}
