package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"jarvis-cli/internal/playback"
)

// Parent Command
var soundsCmd = &cobra.Command{
	Use:   "sounds",
	Short: "Browse and preview alarm sounds",
	Long:  `List the wake-up and get-up sound catalogs, or preview a sound on the device.`,
}

// List Command
var soundsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List both sound catalogs",
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient()

		options, err := api.GetAlarmOptions(context.Background())
		if err != nil {
			fmt.Printf("Error fetching sound catalogs: %v\n", err)
			os.Exit(1)
		}

		// --- JSON OUTPUT ---
		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(options); err != nil {
				fmt.Printf("Error encoding JSON: %v\n", err)
				os.Exit(1)
			}
			return
		}
		// -------------------

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tLABEL\tCATALOG")
		fmt.Fprintln(w, "--\t-----\t-------")

		for _, s := range options.WakeUpSounds {
			fmt.Fprintf(w, "%s\t%s\twake-up\n", s.ID, s.Label)
		}
		for _, s := range options.GetUpSounds {
			fmt.Fprintf(w, "%s\t%s\tget-up\n", s.ID, s.Label)
		}
		w.Flush()
	},
}

// Play Command
var soundsPlayCmd = &cobra.Command{
	Use:     "play <sound-id>",
	Short:   "Play a sound on the device",
	Args:    cobra.ExactArgs(1),
	Example: `  jarvis-cli sounds play "wake_up_sounds/wake-up-focus"`,
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient()
		coordinator := playback.New(api)

		if err := coordinator.Toggle(context.Background(), args[0]); err != nil {
			fmt.Printf("Error playing sound: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Playing %s. Run 'jarvis-cli sounds stop' to stop it.\n", args[0])
	},
}

// Stop Command
var soundsStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop whatever the device is playing",
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient()

		// The device endpoint is idempotent, so this is safe to run blind.
		if _, err := api.StopPlayback(context.Background()); err != nil {
			fmt.Printf("Error stopping playback: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("Playback stopped.")
	},
}

func init() {
	// Register Parent
	rootCmd.AddCommand(soundsCmd)

	// Register Subcommands
	soundsCmd.AddCommand(soundsListCmd)
	soundsCmd.AddCommand(soundsPlayCmd)
	soundsCmd.AddCommand(soundsStopCmd)
}
