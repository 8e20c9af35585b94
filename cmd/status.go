package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"jarvis-cli/internal/config"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the device and show its global settings",
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient()
		ctx := context.Background()

		info, err := api.Ping(ctx)
		if err != nil {
			fmt.Printf("Error: device at %s did not answer: %v\n", config.BaseURL(), err)
			os.Exit(1)
		}

		settings, err := api.GetSettings(ctx)
		if err != nil {
			fmt.Printf("Error fetching settings: %v\n", err)
			os.Exit(1)
		}

		// --- JSON OUTPUT ---
		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(settings); err != nil {
				fmt.Printf("Error encoding JSON: %v\n", err)
				os.Exit(1)
			}
			return
		}
		// -------------------

		fmt.Printf("Device at %s: %s\n\n", config.BaseURL(), info.Message)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintf(w, "Volume:\t%.2f\n", settings.Volume)
		fmt.Fprintf(w, "Max brightness:\t%.0f%%\n", settings.MaxBrightness)
		fmt.Fprintf(w, "Sunrise:\t%t\n", settings.UseSunrise)
		fmt.Fprintf(w, "Wake-up timer:\t%ds\n", settings.WakeUpTimerDuration)
		fmt.Fprintf(w, "Wake-up sound:\t%s\n", settings.WakeUpSoundID)
		fmt.Fprintf(w, "Get-up sound:\t%s\n", settings.GetUpSoundID)
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
