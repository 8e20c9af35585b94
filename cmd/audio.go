package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var audioSystemID string

// Parent Command
var audioCmd = &cobra.Command{
	Use:   "audio",
	Short: "Manage audio output systems",
	Long:  `List the playback outputs the device knows about or switch between them.`,
}

// List Command
var audioListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all audio output systems",
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient()

		systems, err := api.GetAudioSystems(context.Background())
		if err != nil {
			fmt.Printf("Error fetching audio systems: %v\n", err)
			os.Exit(1)
		}

		// --- JSON OUTPUT ---
		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(systems); err != nil {
				fmt.Printf("Error encoding JSON: %v\n", err)
				os.Exit(1)
			}
			return
		}
		// -------------------

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tACTIVE\tDESCRIPTION")
		fmt.Fprintln(w, "--\t----\t------\t-----------")

		for _, sys := range systems {
			fmt.Fprintf(w, "%s\t%s\t%t\t%s\n", sys.ID, sys.Name, sys.Active, sys.Description)
		}
		w.Flush()
	},
}

// Activate Command
var audioActivateCmd = &cobra.Command{
	Use:   "activate",
	Short: "Switch playback to another output system",
	Long: `Switches the device to the given output system. The device plays a short
test sound on the new output as confirmation.`,
	Example: `  jarvis-cli audio activate --id "sonos_era_100"`,
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient()

		switched, err := api.ActivateAudioSystem(context.Background(), audioSystemID)
		if err != nil {
			fmt.Printf("Error activating audio system: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(switched.Message)
	},
}

func init() {
	// Register Parent
	rootCmd.AddCommand(audioCmd)

	// Register List
	audioCmd.AddCommand(audioListCmd)

	// Register Activate
	audioCmd.AddCommand(audioActivateCmd)
	audioActivateCmd.Flags().StringVar(&audioSystemID, "id", "", "Audio system ID from 'audio list'")
	_ = audioActivateCmd.MarkFlagRequired("id")
}
