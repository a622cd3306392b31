package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

// stations gives a local debugging view of the catalog without speaking
// JSON-RPC: it dispatches through the same tool registry and prints the
// result as indented JSON.
func newStationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stations",
		Short: "Query the station catalog from the command line",
	}
	cmd.AddCommand(newStationsSearchCmd())
	cmd.AddCommand(newStationsInfoCmd())
	return cmd
}

func newStationsSearchCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search observatories by name, address, or code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			toolArgs := map[string]any{"query": args[0]}
			if category != "" {
				toolArgs["category"] = category
			}
			return runTool(cmd, "search_observatory", toolArgs)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "restrict to one category (waterlevel, rainfall, dam, weir)")
	return cmd
}

func newStationsInfoCmd() *cobra.Command {
	var station string

	cmd := &cobra.Command{
		Use:   "info <category>",
		Short: "List a category's observatories, or one station's detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			toolArgs := map[string]any{"category": args[0]}
			if station != "" {
				toolArgs["station"] = station
			}
			return runTool(cmd, "get_observatory_info", toolArgs)
		},
	}

	cmd.Flags().StringVar(&station, "station", "", "station code or exact name")
	return cmd
}

func runTool(cmd *cobra.Command, name string, args map[string]any) error {
	svc, err := buildService(log)
	if err != nil {
		return err
	}
	defer svc.Close()

	result, err := svc.registry.Call(cmd.Context(), name, args)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(result)
}
