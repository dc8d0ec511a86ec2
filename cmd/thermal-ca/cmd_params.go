package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newParamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Show the resolved run configuration",
		Long: `Print the configuration a run or sweep would use after applying the
config file, THERMAL_CA_* environment variables and flags.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}

			snap := cfg.Parameters()
			out := cmd.OutOrStdout()
			if jsonOut {
				return json.NewEncoder(out).Encode(snap)
			}
			for _, g := range snap.Groups {
				fmt.Fprintf(out, "%s:\n", g.Name)
				for _, p := range g.Params {
					fmt.Fprintf(out, "  %-18s %s\n", p.Key, p.Value)
				}
			}
			return nil
		},
	}
	addRunFlags(cmd)
	cmd.Flags().Float64Slice("temperatures", nil, "Comma-separated temperatures")
	return cmd
}
