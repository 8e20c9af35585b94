package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// Variables to hold flag values
var (
	volumeValue     float64
	brightnessValue float64
	settingSoundID  string
)

// Parent Command
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show and change global alarm settings",
	Long:  `Show the device-wide alarm settings or change volume, brightness and sounds.`,
}

// Show Command
var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings",
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient()

		settings, err := api.GetSettings(context.Background())
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

// Volume Command
var settingsVolumeCmd = &cobra.Command{
	Use:   "volume",
	Short: "Set the playback volume",
	Long: `Sets the global volume (0.0 to 1.0). The device answers by playing a short
test sound at the new level.`,
	Example: `  jarvis-cli settings volume --value 0.6`,
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient()

		updated, err := api.SetVolume(context.Background(), volumeValue)
		if err != nil {
			fmt.Printf("Error setting volume: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Volume set to %.2f.\n", updated.Volume)
	},
}

// Brightness Command
var settingsBrightnessCmd = &cobra.Command{
	Use:     "brightness",
	Short:   "Set the maximum sunrise brightness",
	Example: `  jarvis-cli settings brightness --value 75`,
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient()

		updated, err := api.SetBrightness(context.Background(), brightnessValue)
		if err != nil {
			fmt.Printf("Error setting brightness: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Max brightness set to %.0f%%.\n", updated.Brightness)
	},
}

// Wake-up Sound Command
var settingsWakeUpSoundCmd = &cobra.Command{
	Use:     "wake-up-sound",
	Short:   "Set the wake-up sound",
	Example: `  jarvis-cli settings wake-up-sound --id "wake_up_sounds/wake-up-focus"`,
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient()

		updated, err := api.SetWakeUpSound(context.Background(), settingSoundID)
		if err != nil {
			fmt.Printf("Error setting wake-up sound: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Wake-up sound set to %s.\n", updated.WakeUpSoundID)
	},
}

// Get-up Sound Command
var settingsGetUpSoundCmd = &cobra.Command{
	Use:     "get-up-sound",
	Short:   "Set the get-up sound",
	Example: `  jarvis-cli settings get-up-sound --id "get_up_sounds/get-up-blossom"`,
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient()

		updated, err := api.SetGetUpSound(context.Background(), settingSoundID)
		if err != nil {
			fmt.Printf("Error setting get-up sound: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Get-up sound set to %s.\n", updated.GetUpSoundID)
	},
}

func init() {
	// Register Parent
	rootCmd.AddCommand(settingsCmd)

	// Register Show
	settingsCmd.AddCommand(settingsShowCmd)

	// Register Volume
	settingsCmd.AddCommand(settingsVolumeCmd)
	settingsVolumeCmd.Flags().Float64Var(&volumeValue, "value", 0.5, "Volume between 0.0 and 1.0")
	_ = settingsVolumeCmd.MarkFlagRequired("value")

	// Register Brightness
	settingsCmd.AddCommand(settingsBrightnessCmd)
	settingsBrightnessCmd.Flags().Float64Var(&brightnessValue, "value", 100, "Brightness percentage (0 to 100)")
	_ = settingsBrightnessCmd.MarkFlagRequired("value")

	// Register Sound Assignment
	settingsCmd.AddCommand(settingsWakeUpSoundCmd)
	settingsWakeUpSoundCmd.Flags().StringVar(&settingSoundID, "id", "", "Sound ID from 'sounds list'")
	_ = settingsWakeUpSoundCmd.MarkFlagRequired("id")

	settingsCmd.AddCommand(settingsGetUpSoundCmd)
	settingsGetUpSoundCmd.Flags().StringVar(&settingSoundID, "id", "", "Sound ID from 'sounds list'")
	_ = settingsGetUpSoundCmd.MarkFlagRequired("id")
}
