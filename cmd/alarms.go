package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"jarvis-cli/pkg/models"
)

// Variables to hold flag values
var (
	alarmID     string
	alarmTime   string
	alarmActive bool
)

// Parent Command
var alarmsCmd = &cobra.Command{
	Use:   "alarms",
	Short: "Manage alarms",
	Long:  `List, create, toggle and delete alarms on the device.`,
}

// List Command
var alarmsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all alarms",
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient()

		alarms, err := api.GetAlarms(context.Background())
		if err != nil {
			fmt.Printf("Error fetching alarms: %v\n", err)
			os.Exit(1)
		}

		// --- JSON OUTPUT ---
		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(alarms); err != nil {
				fmt.Printf("Error encoding JSON: %v\n", err)
				os.Exit(1)
			}
			return
		}
		// -------------------

		if len(alarms) == 0 {
			fmt.Println("No alarms configured.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tTIME\tACTIVE\tNEXT EXECUTION\tIN")
		fmt.Fprintln(w, "--\t----\t------\t--------------\t--")

		for _, a := range alarms {
			next := a.NextExecution
			if next == "" {
				next = "-"
			}
			until := a.TimeUntil
			if until == "" {
				until = "-"
			}

			fmt.Fprintf(w, "%s\t%s\t%t\t%s\t%s\n",
				a.AlarmID,
				a.Time,
				a.Active,
				next,
				until,
			)
		}
		w.Flush()
	},
}

// Create Command
var alarmsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create and schedule a new alarm",
	Example: `  jarvis-cli alarms create --time "07:30"
  jarvis-cli alarms create --time "+30"`,
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient()

		created, err := api.CreateAlarm(context.Background(), models.CreateAlarmRequest{Time: alarmTime})
		if err != nil {
			fmt.Printf("Error creating alarm: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Alarm %s scheduled for %s.\n", created.AlarmID, created.Time)
	},
}

// Toggle Command
var alarmsToggleCmd = &cobra.Command{
	Use:     "toggle",
	Short:   "Activate or deactivate an alarm",
	Example: `  jarvis-cli alarms toggle --id "alarm_0730" --active=false`,
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient()

		toggled, err := api.ToggleAlarm(context.Background(), alarmID, alarmActive)
		if err != nil {
			fmt.Printf("Error toggling alarm: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(toggled.Message)
	},
}

// Delete Command
var alarmsDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Delete an alarm",
	Example: `  jarvis-cli alarms delete --id "alarm_0730"`,
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient()

		deleted, err := api.DeleteAlarm(context.Background(), alarmID)
		if err != nil {
			fmt.Printf("Error deleting alarm: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(deleted.Message)
	},
}

func init() {
	// Register Parent
	rootCmd.AddCommand(alarmsCmd)

	// Register List
	alarmsCmd.AddCommand(alarmsListCmd)

	// Register Create
	alarmsCmd.AddCommand(alarmsCreateCmd)
	alarmsCreateCmd.Flags().StringVar(&alarmTime, "time", "", `Alarm time, "HH:MM" or "+seconds"`)
	_ = alarmsCreateCmd.MarkFlagRequired("time")

	// Register Toggle
	alarmsCmd.AddCommand(alarmsToggleCmd)
	alarmsToggleCmd.Flags().StringVar(&alarmID, "id", "", "Alarm ID")
	alarmsToggleCmd.Flags().BoolVar(&alarmActive, "active", true, "Desired active state")
	_ = alarmsToggleCmd.MarkFlagRequired("id")

	// Register Delete
	alarmsCmd.AddCommand(alarmsDeleteCmd)
	alarmsDeleteCmd.Flags().StringVar(&alarmID, "id", "", "Alarm ID")
	_ = alarmsDeleteCmd.MarkFlagRequired("id")
}
